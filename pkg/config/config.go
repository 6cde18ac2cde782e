// Package config loads the YAML configuration shared by the regform binaries.
// Defaults are applied before decoding, so a file only lists what it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrInvalid wraps every validation failure returned by Parse and Load.
var ErrInvalid = errors.New("config: invalid configuration")

const tagMessageKey = "regform_message_key"

// Config is the root of regform.yaml.
type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Log      LogConfig         `yaml:"log"`
	Rules    RulesConfig       `yaml:"rules"`
	Messages map[string]string `yaml:"messages" validate:"omitempty,dive,keys,regform_message_key,endkeys,required"`
	Theme    ThemeConfig       `yaml:"theme"`
}

// ServerConfig configures the HTTP server and the registration component.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	BasePath        string        `yaml:"base_path" validate:"omitempty,startswith=/"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// RulesConfig overrides the validation thresholds.
type RulesConfig struct {
	UsernameMinLength    int    `yaml:"username_min_length" validate:"gt=0"`
	PasswordMinLength    int    `yaml:"password_min_length" validate:"gt=0"`
	StrongPasswordLength int    `yaml:"strong_password_length" validate:"gtefield=PasswordMinLength"`
	PasswordSymbols      string `yaml:"password_symbols" validate:"required"`
}

// ThemeConfig picks and customises the HTML theme. Tokens overlay the base
// theme; Variants adds or extends named variants.
type ThemeConfig struct {
	Name     string                       `yaml:"name"`
	Variant  string                       `yaml:"variant"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	rules := validation.DefaultRules()
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxBodyBytes:    16 << 10,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Rules: RulesConfig{
			UsernameMinLength:    rules.UsernameMinLength,
			PasswordMinLength:    rules.PasswordMinLength,
			StrongPasswordLength: rules.StrongPasswordLength,
			PasswordSymbols:      rules.PasswordSymbols,
		},
		Theme: ThemeConfig{
			Name: vanilla.DefaultThemeName,
		},
	}
}

// Load reads and parses the file at path. An empty path returns Default().
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default() and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode: %w", err)
		}
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and the message keys.
func (c Config) Validate() error {
	v := playground.New()
	if err := v.RegisterValidation(tagMessageKey, validMessageKey); err != nil {
		return fmt.Errorf("config: register %s: %w", tagMessageKey, err)
	}
	if err := v.Struct(c); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %s", ErrInvalid, describe(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidationRules converts the rules section.
func (c Config) ValidationRules() validation.Rules {
	return validation.Rules{
		UsernameMinLength:    c.Rules.UsernameMinLength,
		PasswordMinLength:    c.Rules.PasswordMinLength,
		StrongPasswordLength: c.Rules.StrongPasswordLength,
		PasswordSymbols:      c.Rules.PasswordSymbols,
	}
}

// Validator builds the field validator described by the rules and messages
// sections.
func (c Config) Validator() *validation.Validator {
	return validation.New(
		validation.WithRules(c.ValidationRules()),
		validation.WithMessages(c.Messages),
	)
}

// Manifest builds the theme manifest. The built-in theme is the base when
// the name is empty or the default; any other name starts from an empty
// manifest.
func (t ThemeConfig) Manifest() *theme.Manifest {
	name := strings.TrimSpace(t.Name)
	manifest := &theme.Manifest{Name: name, Version: "1.0.0"}
	if name == "" || name == vanilla.DefaultThemeName {
		manifest = vanilla.DefaultManifest()
	}

	if len(t.Tokens) > 0 && manifest.Tokens == nil {
		manifest.Tokens = make(map[string]string, len(t.Tokens))
	}
	for key, value := range t.Tokens {
		manifest.Tokens[key] = value
	}

	for variantName, tokens := range t.Variants {
		if manifest.Variants == nil {
			manifest.Variants = make(map[string]theme.Variant)
		}
		variant := manifest.Variants[variantName]
		if variant.Tokens == nil {
			variant.Tokens = make(map[string]string, len(tokens))
		}
		for key, value := range tokens {
			variant.Tokens[key] = value
		}
		manifest.Variants[variantName] = variant
	}
	return manifest
}

// Selector returns a theme selector over Manifest, defaulting to the
// configured variant.
func (t ThemeConfig) Selector() (*vanilla.Selector, error) {
	sel, err := vanilla.NewSelector(t.Manifest())
	if err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return sel.WithDefaults("", t.Variant), nil
}

// RendererConfig resolves the configured theme and variant.
func (t ThemeConfig) RendererConfig() (*theme.RendererConfig, error) {
	sel, err := t.Selector()
	if err != nil {
		return nil, err
	}
	selection, err := sel.Select("", "")
	if err != nil {
		return nil, fmt.Errorf("config: theme: %w", err)
	}
	return vanilla.RendererConfig(selection), nil
}

func validMessageKey(fl playground.FieldLevel) bool {
	_, ok := validation.DefaultMessages()[fl.Field().String()]
	return ok
}

func describe(errs playground.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
