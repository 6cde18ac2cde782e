package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	"github.com/goliatone/go-regform/pkg/render/template/pongo"
)

// DefaultSubmitLabel is the text of the submit button.
const DefaultSubmitLabel = "Create account"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	inlineStyles     bool
	stylesheets      []string
	scriptURL        string
	validateURL      string
	submitLabel      string
	fragment         bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/registration.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies theme tokens as CSS custom properties on the page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithoutDefaultStyles stops inlining the embedded stylesheet. Callers then
// serve AssetsFS themselves and link it with WithStylesheet.
func WithoutDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// WithStylesheet appends a <link rel="stylesheet"> to the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithScript sets the URL of the live validation script. Empty disables it.
func WithScript(src string) Option {
	return func(cfg *config) {
		cfg.scriptURL = strings.TrimSpace(src)
	}
}

// WithValidateURL sets the endpoint the live validation script posts to.
func WithValidateURL(url string) Option {
	return func(cfg *config) {
		cfg.validateURL = strings.TrimSpace(url)
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}

// AsFragment renders only the <form> element, without the page chrome.
func AsFragment() Option {
	return func(cfg *config) {
		cfg.fragment = true
	}
}

// Renderer draws the registration form as server-side HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		inlineStyles: true,
		submitLabel:  DefaultSubmitLabel,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws view. Text reaching the page is stripped of markup first.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, view render.View) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	themeCfg := r.cfg.theme
	if view.Theme != nil {
		themeCfg = view.Theme
	}

	data := map[string]any{
		"form":         form,
		"view":         sanitizeView(view),
		"theme":        buildThemeContext(themeCfg),
		"stylesheets":  r.stylesheets(themeCfg),
		"script_url":   r.cfg.scriptURL,
		"validate_url": r.cfg.validateURL,
		"submit_label": r.cfg.submitLabel,
		"fragment":     r.cfg.fragment,
	}
	if r.cfg.inlineStyles {
		data["stylesheet_inline"] = defaultStylesheet()
	}

	result, err := r.templates.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) stylesheets(themeCfg *theme.RendererConfig) []string {
	out := append([]string(nil), r.cfg.stylesheets...)
	if themeCfg != nil && themeCfg.AssetURL != nil {
		if href := themeCfg.AssetURL("vanilla.stylesheet"); href != "" {
			out = append(out, href)
		}
	}
	return out
}
