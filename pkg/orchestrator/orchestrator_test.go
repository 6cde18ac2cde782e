package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

type captureRenderer struct {
	form model.FormModel
	view render.View
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, fm model.FormModel, view render.View) ([]byte, error) {
	r.form = fm
	r.view = view
	return []byte("ok"), nil
}

func captureRegistry(t *testing.T) (*render.Registry, *captureRenderer) {
	t.Helper()
	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	return registry, renderer
}

func TestOrchestrator_DefaultRendererProducesHTML(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(context.Background(), orchestrator.Request{Pristine: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<form id="registerForm"`,
		`action="/register"`,
		`<button type="submit" id="submitBtn" disabled>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestOrchestrator_EvaluatesValues(t *testing.T) {
	registry, renderer := captureRegistry(t)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Values: form.Values{
			Username: "jd",
			FullName: "John Doe",
			Email:    "john@x.com",
			Password: "john1234",
		},
		EchoValues: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	username, ok := renderer.view.Field("username")
	if !ok {
		t.Fatalf("username field missing from view")
	}
	if username.State != render.StateError || username.Value != "jd" {
		t.Fatalf("unexpected username view: %+v", username)
	}
	if renderer.view.Strength != validation.StrengthMedium {
		t.Fatalf("expected medium strength, got %q", renderer.view.Strength)
	}
	if renderer.view.Submittable {
		t.Fatalf("form must not be submittable")
	}
}

func TestOrchestrator_CustomValidatorRules(t *testing.T) {
	registry, renderer := captureRegistry(t)
	rules := validation.DefaultRules()
	rules.UsernameMinLength = 2
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithValidator(validation.New(validation.WithRules(rules))),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Values: form.Values{Username: "jd"},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	username, _ := renderer.view.Field("username")
	if username.State != render.StateSuccess {
		t.Fatalf("expected username to pass with relaxed rules, got %+v", username)
	}
}

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	registry, renderer := captureRegistry(t)

	called := false
	transformer := orchestrator.TransformerFunc(func(_ context.Context, fm *model.FormModel) error {
		called = true
		fm.Metadata = map[string]string{"patched": "true"}
		return nil
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithSchemaTransformer(transformer),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Pristine: true}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !called {
		t.Fatalf("expected transformer to be invoked")
	}
	if renderer.form.Metadata["patched"] != "true" {
		t.Fatalf("transformer mutation missing: %#v", renderer.form.Metadata)
	}
}

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	registry, renderer := captureRegistry(t)
	selector, err := vanilla.NewSelector(vanilla.DefaultManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(selector),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Pristine:     true,
		ThemeVariant: "dark",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.view.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != vanilla.DefaultThemeName || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme selection: %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Tokens["color-surface"]; got != "#111827" {
		t.Fatalf("expected dark surface token, got %q", got)
	}
}

func TestOrchestrator_ThemeSelectionError(t *testing.T) {
	registry, _ := captureRegistry(t)
	selector, err := vanilla.NewSelector(vanilla.DefaultManifest())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithThemeSelector(selector),
	)
	_, err = orch.Generate(context.Background(), orchestrator.Request{ThemeName: "missing"})
	if err == nil || !strings.Contains(err.Error(), "select theme") {
		t.Fatalf("expected theme selection error, got %v", err)
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	orch := orchestrator.New()
	_, err := orch.Generate(context.Background(), orchestrator.Request{Renderer: "preact"})
	if err == nil || !strings.Contains(err.Error(), `renderer "preact"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestOrchestrator_UnknownOperation(t *testing.T) {
	orch := orchestrator.New()
	if _, err := orch.Generate(context.Background(), orchestrator.Request{OperationID: "missing"}); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orchestrator.New().Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}

func TestPresetTransformer(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.yaml": {Data: []byte(`
summary: Join us
metadata:
  layout: compact
fields:
  username:
    label: Handle
    placeholder: pick-a-handle
    metadata:
      hint: lowercase
`)},
	}
	transformer, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	fm := model.FormModel{
		Summary: "Create an account",
		Fields: []model.Field{
			{Name: "username", Label: "Username"},
			{Name: "email", Label: "Email"},
		},
	}
	if err := transformer.Transform(context.Background(), &fm); err != nil {
		t.Fatalf("transform: %v", err)
	}

	want := model.FormModel{
		Summary:  "Join us",
		Metadata: map[string]string{"layout": "compact"},
		Fields: []model.Field{
			{Name: "username", Label: "Handle", Placeholder: "pick-a-handle", Metadata: map[string]string{"hint": "lowercase"}},
			{Name: "email", Label: "Email"},
		},
	}
	if diff := cmp.Diff(want, fm); diff != "" {
		t.Fatalf("transformed model mismatch (-want +got):\n%s", diff)
	}
}

func TestPresetTransformer_AcceptsJSON(t *testing.T) {
	transformer, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"email": {"label": "Work email"}}}`))
	if err != nil {
		t.Fatalf("parse json preset: %v", err)
	}
	fm := model.FormModel{Fields: []model.Field{{Name: "email", Label: "Email"}}}
	if err := transformer.Transform(context.Background(), &fm); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if fm.Fields[0].Label != "Work email" {
		t.Fatalf("expected relabelled email, got %q", fm.Fields[0].Label)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	if _, err := orchestrator.NewPresetTransformer(nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := orchestrator.NewPresetTransformer([]byte("fields: {username: {colour: red}}")); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	transformer, err := orchestrator.NewPresetTransformer([]byte("fields: {nickname: {label: Nick}}"))
	if err != nil {
		t.Fatalf("parse preset: %v", err)
	}
	fm := model.FormModel{Fields: []model.Field{{Name: "username"}}}
	if err := transformer.Transform(context.Background(), &fm); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
