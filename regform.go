package regform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
)

// Values aliases form.Values so callers can stay on the root package.
type Values = form.Values

// Snapshot aliases form.Snapshot.
type Snapshot = form.Snapshot

// Record aliases form.Record, the payload of a successful submission.
type Record = form.Record

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Evaluate validates values with the default rules.
func Evaluate(values Values) Snapshot {
	return form.Evaluate(values)
}

// NewForm returns an empty registration form.
func NewForm(options ...form.Option) *form.Form {
	return form.New(options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the registration form for req. It is the simplest
// entry point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, req Request, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, req)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
