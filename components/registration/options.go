package registration

import (
	"log/slog"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	defaultRoutePath    = "/register"
	defaultValidatePath = "/validate"
	defaultOpenAPIPath  = "/openapi.json"
	defaultScriptURL    = "/runtime/regform-live.js"
	defaultMaxBodyBytes = 16 << 10
)

// GuardFunc runs before every request. Returning an HTTPError picks the
// status code; any other error answers 403.
type GuardFunc func(r *http.Request) error

// HiddenFunc supplies extra hidden inputs (for example a CSRF token) for the
// rendered form.
type HiddenFunc func(r *http.Request) []render.HiddenField

type Options struct {
	RoutePath    string
	ValidatePath string
	OpenAPIPath  string
	ScriptURL    string
	MaxBodyBytes int64

	Validator      *validation.Validator
	SuccessMessage string
	OnSuccess      []form.SuccessFunc

	// Renderer draws the HTML page. Nil builds the vanilla renderer wired to
	// the validate route, ScriptURL and Theme.
	Renderer render.Renderer
	Theme    *theme.RendererConfig
	// Schema customises the OpenAPI document the form model is built from.
	Schema []schema.Option
	// Transformer relabels the form model after it is built.
	Transformer orchestrator.Transformer

	Guard  GuardFunc
	Hidden HiddenFunc
	Logger *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		ValidatePath: defaultValidatePath,
		OpenAPIPath:  defaultOpenAPIPath,
		ScriptURL:    defaultScriptURL,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.ValidatePath == "" {
		opts.ValidatePath = defaultValidatePath
	}
	if opts.OpenAPIPath == "" {
		opts.OpenAPIPath = defaultOpenAPIPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Validator == nil {
		opts.Validator = validation.Default()
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess = append([]form.SuccessFunc{}, opts.OnSuccess...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithValidatePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidatePath = path
	}
}

func WithOpenAPIPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OpenAPIPath = path
	}
}

// WithScriptURL sets the live validation script URL. Empty disables the
// script and the form falls back to plain submits.
func WithScriptURL(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ScriptURL = url
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithValidator(v *validation.Validator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validator = v
	}
}

func WithSuccessMessage(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SuccessMessage = message
	}
}

// WithSuccessHook appends a hook receiving every created record.
func WithSuccessHook(fn form.SuccessFunc) OptionFn {
	return func(o *Options) {
		if o == nil || fn == nil {
			return
		}
		o.OnSuccess = append(o.OnSuccess, fn)
	}
}

func WithRenderer(r render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = r
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithHidden(fn HiddenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = fn
	}
}

// WithLogger attaches logger to every request context, so form submits log
// through it.
func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithSchemaOptions(options ...schema.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schema = append(o.Schema, options...)
	}
}

// WithTransformer applies t to the form model once, when the handlers are
// built.
func WithTransformer(t orchestrator.Transformer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Transformer = t
	}
}
