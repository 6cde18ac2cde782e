package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ConfirmMessage is the final prompt before the account is created.
const ConfirmMessage = "Create account?"

// Renderer runs a terminal registration session. Render prompts for every
// field of the form model, re-prompting with the validator message until the
// field passes, then submits and serializes the created record.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	validator    *validation.Validator
	formOptions  []form.Option
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		validator:    validation.Default(),
		theme:        DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the session and returns the serialized record. Values present
// in view are offered as prompt defaults; the password never is.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, view render.View) ([]byte, error) {
	record, err := r.Run(ctx, fm, view)
	if err != nil {
		return nil, err
	}
	return r.serialize(record)
}

// Run prompts until every field passes, asks for confirmation and submits.
func (r *Renderer) Run(ctx context.Context, fm model.FormModel, view render.View) (form.Record, error) {
	if ctx == nil {
		return form.Record{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return form.Record{}, err
	}
	if r.driver == nil {
		return form.Record{}, errors.New("tui: prompt driver is nil")
	}

	fields := promptFields(fm)
	f := form.New(append([]form.Option{form.WithValidator(r.validator)}, r.formOptions...)...)

	for _, pf := range fields {
		if err := r.promptField(ctx, f, pf, defaultValue(view, pf)); err != nil {
			return form.Record{}, err
		}
	}
	// A later field can invalidate an earlier one (the password reads name
	// and email), so keep asking for whatever still fails.
	for !f.Submittable() {
		snap := f.Snapshot()
		for _, pf := range fields {
			if snap.Result(pf.field).Valid {
				continue
			}
			if err := r.promptField(ctx, f, pf, snap.Values.Get(pf.field)); err != nil {
				return form.Record{}, err
			}
		}
	}

	ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: ConfirmMessage, Default: true})
	if err != nil {
		return form.Record{}, err
	}
	if !ok {
		return form.Record{}, ErrDeclined
	}

	record, ok := f.Submit(ctx)
	if !ok {
		return form.Record{}, fmt.Errorf("tui: form not submittable: %v", f.Snapshot().Errors())
	}
	if banner, visible := f.Banner(); visible {
		if err := r.driver.Info(ctx, banner); err != nil {
			return form.Record{}, err
		}
	}
	return record, nil
}

type promptField struct {
	field form.Field
	label string
	help  string
}

// promptFields keeps the model order and labels. Model fields outside the
// four registration inputs are skipped; a model without any falls back to
// the default order.
func promptFields(fm model.FormModel) []promptField {
	var out []promptField
	seen := make(map[form.Field]bool, 4)
	for _, def := range fm.Fields {
		field, err := form.ParseField(def.Name)
		if err != nil || seen[field] {
			continue
		}
		seen[field] = true
		label := def.Label
		if label == "" {
			label = def.Name
		}
		out = append(out, promptField{field: field, label: label, help: def.Description})
	}
	for _, field := range form.Fields() {
		if !seen[field] {
			out = append(out, promptField{field: field, label: model.DefaultLabeler(string(field))})
		}
	}
	return out
}

func defaultValue(view render.View, pf promptField) string {
	if pf.field == form.FieldPassword {
		return ""
	}
	fv, ok := view.Field(string(pf.field))
	if !ok {
		return ""
	}
	return fv.Value
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, pf promptField, def string) error {
	for {
		cfg := InputConfig{
			Message: pf.label,
			Help:    pf.help,
			Default: def,
			Validator: func(value string) error {
				return resultError(r.preview(f, pf.field, value))
			},
		}

		var (
			response string
			err      error
		)
		if pf.field == form.FieldPassword {
			cfg.Default = ""
			response, err = r.driver.Password(ctx, cfg)
		} else {
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		snap, err := f.Input(pf.field, response)
		if err != nil {
			return err
		}
		if pf.field == form.FieldPassword {
			if err := r.printPasswordReport(ctx, snap.Password); err != nil {
				return err
			}
		}

		res := snap.Result(pf.field)
		if res.Valid {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+res.Message); err != nil {
			return err
		}
		if pf.field != form.FieldPassword {
			def = response
		}
	}
}

// preview evaluates value for field without touching the form.
func (r *Renderer) preview(f *form.Form, field form.Field, value string) validation.Result {
	values, err := f.Values().With(field, value)
	if err != nil {
		return validation.Result{}
	}
	return form.EvaluateWith(f.Validator(), values).Result(field)
}

func resultError(res validation.Result) error {
	if res.Valid {
		return nil
	}
	return errors.New(res.Message)
}

func (r *Renderer) printPasswordReport(ctx context.Context, report validation.PasswordReport) error {
	rules := r.validator.Rules()
	lines := make([]string, 0, 4)
	for _, rule := range validation.PasswordRules() {
		mark := r.theme.InvalidMark
		if report.Rule(rule) {
			mark = r.theme.ValidMark
		}
		lines = append(lines, mark+" "+rules.Label(rule))
	}
	mark := r.theme.InvalidMark
	if report.StrengthIndicator() {
		mark = r.theme.ValidMark
	}
	lines = append(lines, mark+" "+report.Strength.Text())
	return r.driver.Info(ctx, strings.Join(lines, "\n"))
}
