package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaOptions forwards options to the document loader, e.g. a custom
// OpenAPI document or labeler.
func WithSchemaOptions(options ...schema.Option) Option {
	return func(o *Orchestrator) {
		o.schemaOptions = append(o.schemaOptions, options...)
	}
}

// WithValidator evaluates values with v instead of the default rules.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithSchemaTransformer registers a Transformer that can mutate the form model
// after it is built from the document.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant into a renderer
// theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// Orchestrator turns an OpenAPI operation plus the current field values into
// rendered output. The vanilla renderer is registered when no registry is
// injected.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	schemaOptions   []schema.Option
	validator       *validation.Validator
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of the registration form.
type Request struct {
	// OperationID selects the operation whose request body becomes the form.
	// Defaults to the register operation.
	OperationID string

	// Renderer names the renderer to use. Empty uses the default renderer.
	Renderer string

	// Values are evaluated to produce the per-field feedback.
	Values form.Values

	// Pristine suppresses feedback, as for a page nobody has typed into.
	Pristine bool

	// EchoValues writes Values back into the inputs (password excluded).
	EchoValues bool

	// Banner is shown as the success message when non-empty.
	Banner string

	// Hidden adds hidden inputs such as CSRF tokens.
	Hidden []render.HiddenField

	// ThemeName and ThemeVariant are resolved through the theme selector.
	ThemeName    string
	ThemeVariant string
}

// Model loads the document and builds the form model for operationID,
// applying the configured transformer.
func (o *Orchestrator) Model(ctx context.Context, operationID string) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if operationID == "" {
		operationID = schema.OperationRegister
	}

	fm, err := schema.FormModel(ctx, operationID, o.schemaOptions...)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &fm); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return fm, nil
}

// View evaluates req.Values against fm and returns the presentation state.
func (o *Orchestrator) View(fm model.FormModel, req Request) (render.View, error) {
	themeCfg, err := o.resolveTheme(req)
	if err != nil {
		return render.View{}, err
	}
	snap := form.EvaluateWith(o.validator, req.Values)
	return render.BuildView(fm, snap, render.ViewOptions{
		Rules:      o.validator.Rules(),
		Pristine:   req.Pristine,
		Banner:     req.Banner,
		EchoValues: req.EchoValues,
		Hidden:     req.Hidden,
		Theme:      themeCfg,
	}), nil
}

// Generate builds the model, evaluates the values and renders the result
// (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	fm, err := o.Model(ctx, req.OperationID)
	if err != nil {
		return nil, err
	}

	view, err := o.View(fm, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, fm, view)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return vanilla.RendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.validator == nil {
		o.validator = validation.Default()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
