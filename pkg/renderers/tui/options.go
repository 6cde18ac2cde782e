package tui

import (
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/validation"
)

// OutputFormat controls how the created record is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat resolves a format name, returning false when unknown.
func ParseOutputFormat(name string) (OutputFormat, bool) {
	switch OutputFormat(name) {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return OutputFormat(name), true
	default:
		return "", false
	}
}

// Theme captures the markers used when printing feedback.
type Theme struct {
	ErrorPrefix string
	ValidMark   string
	InvalidMark string
}

// DefaultTheme is used when WithTheme is not supplied.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix: "✗ ",
		ValidMark:   "✓",
		InvalidMark: "✗",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithValidator sets the validator the session evaluates input with.
func WithValidator(v *validation.Validator) Option {
	return func(r *Renderer) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithFormOptions forwards options, such as success hooks, to every form the
// session creates.
func WithFormOptions(options ...form.Option) Option {
	return func(r *Renderer) {
		r.formOptions = append(r.formOptions, options...)
	}
}

// WithTheme overrides the feedback markers.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
