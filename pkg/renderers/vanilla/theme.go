package vanilla

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the built-in theme shipped with the renderer.
const DefaultThemeName = "regform"

// DefaultManifest returns the built-in theme: a light base palette and a
// "dark" variant. Token keys become CSS custom properties ("color-error" is
// emitted as "--color-error").
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-error":   "#e74c3c",
			"color-success": "#2ecc71",
			"color-accent":  "#4f46e5",
			"color-muted":   "#6b7280",
			"color-border":  "#d1d5db",
			"color-surface": "#ffffff",
			"color-text":    "#111827",
			"radius":        "8px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#111827",
					"color-text":    "#f9fafb",
					"color-border":  "#374151",
				},
			},
		},
	}
}

// Selector resolves themes from a fixed set of manifests. It satisfies
// theme.ThemeSelector.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests and uses the first one as the default.
// Each manifest is also registered with a go-theme registry, so an invalid
// or duplicate manifest fails here rather than at render time.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	registry := theme.NewRegistry()
	sel := &Selector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, fmt.Errorf("vanilla theme: manifest name is required")
		}
		if _, exists := sel.manifests[name]; exists {
			return nil, fmt.Errorf("vanilla theme: manifest %q already registered", name)
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("vanilla theme: register %q: %w", name, err)
		}
		sel.manifests[name] = manifest
		if sel.defaultTheme == "" {
			sel.defaultTheme = name
		}
	}
	if sel.defaultTheme == "" {
		return nil, fmt.Errorf("vanilla theme: at least one manifest is required")
	}
	return sel, nil
}

// WithDefaults sets the theme and variant used when Select receives empty
// names.
func (s *Selector) WithDefaults(name, variant string) *Selector {
	if name = strings.TrimSpace(name); name != "" {
		s.defaultTheme = name
	}
	s.defaultVariant = strings.TrimSpace(variant)
	return s
}

// Select implements theme.ThemeSelector.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("vanilla theme: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla theme: variant %q not found in theme %q", variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the renderer configuration:
// variant tokens, templates and asset files override the base manifest.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[sel.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + file
		},
	}
}

type rendererTheme struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: mergeStrings(cfg.CSSVars, nil),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

// cssVarsStyle renders vars as a :root block. Declarations whose name or
// value could close the block or the style element are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key, value := range vars {
		if !safeCSS(key) || !safeCSS(value) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func safeCSS(value string) bool {
	return strings.TrimSpace(value) != "" && !strings.ContainsAny(value, "<>{};")
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
