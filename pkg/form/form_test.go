package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/validation"
)

func fill(t *testing.T, f *Form, values Values) Snapshot {
	t.Helper()
	var snap Snapshot
	for _, field := range Fields() {
		var err error
		snap, err = f.Input(field, values.Get(field))
		if err != nil {
			t.Fatalf("input %s: %v", field, err)
		}
	}
	return snap
}

func validValues() Values {
	return Values{
		Username: "  jdoe ",
		FullName: "\u3000John Doe\u2028",
		Email:    "\tjohn@x.com\u202f",
		Password: "password1",
	}
}

func TestEvaluate_RunsEveryValidator(t *testing.T) {
	snap := Evaluate(Values{})

	for _, field := range Fields() {
		res := snap.Result(field)
		if res.Valid || res.Reason != validation.ReasonRequired {
			t.Fatalf("expected %s to be required, got %#v", field, res)
		}
	}
	if snap.Submittable() {
		t.Fatalf("empty form must not be submittable")
	}
	if got := len(snap.Errors()); got != 4 {
		t.Fatalf("expected 4 errors, got %d", got)
	}
}

func TestEvaluate_SubmittableOnlyWhenAllPass(t *testing.T) {
	values := validValues()
	if !Evaluate(values).Submittable() {
		t.Fatalf("expected valid values to be submittable: %#v", Evaluate(values).Errors())
	}
	if errs := Evaluate(values).Errors(); errs != nil {
		t.Fatalf("expected no errors, got %#v", errs)
	}

	for _, field := range Fields() {
		broken, err := values.With(field, "")
		if err != nil {
			t.Fatalf("with %s: %v", field, err)
		}
		if Evaluate(broken).Submittable() {
			t.Fatalf("clearing %s should disable submit", field)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	values := validValues()
	first := Evaluate(values)
	second := Evaluate(values)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-evaluation changed the snapshot (-first +second):\n%s", diff)
	}
}

func TestForm_NameChangeRescoresPassword(t *testing.T) {
	f := New()
	snap := fill(t, f, Values{Username: "mary", FullName: "Mary Major", Email: "mm@x.com", Password: "johnny123"})
	if !snap.Password.NoPersonalInfo || !snap.Submittable() {
		t.Fatalf("expected password to pass before the name change: %#v", snap.Password)
	}

	snap, err := f.Input(FieldFullName, "Johnny Cash")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if snap.Password.NoPersonalInfo {
		t.Fatalf("name change must re-run the personal-info rule")
	}
	if snap.Password.Result.Reason != validation.ReasonWeakPassword || snap.Submittable() {
		t.Fatalf("expected weak password after name change, got %#v", snap.Password.Result)
	}
}

func TestForm_InputMarksTouched(t *testing.T) {
	f := New()
	if !f.Pristine() {
		t.Fatalf("new form should be pristine")
	}

	if _, err := f.Input(FieldEmail, "a@b.c"); err != nil {
		t.Fatalf("input: %v", err)
	}
	want := Touched{Email: true}
	if diff := cmp.Diff(want, f.Touched()); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}
	if f.Pristine() {
		t.Fatalf("form should not be pristine after input")
	}

	if _, err := f.Input(Field("nickname"), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestForm_SubmitInvalidChangesNothing(t *testing.T) {
	called := false
	f := New(OnSuccess(func(context.Context, Record) { called = true }))
	values := validValues()
	values.Password = "john123"
	fill(t, f, values)

	record, ok := f.Submit(context.Background())
	if ok {
		t.Fatalf("expected submit to be rejected, got %#v", record)
	}
	if called {
		t.Fatalf("success hook must not run on invalid submit")
	}
	if diff := cmp.Diff(values, f.Values()); diff != "" {
		t.Fatalf("values must be kept (-want +got):\n%s", diff)
	}
	if f.Pristine() {
		t.Fatalf("touched flags must be kept")
	}
	if _, visible := f.Banner(); visible {
		t.Fatalf("banner must stay hidden")
	}
}

func TestForm_SubmitValidEmitsRecordAndResets(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&buf, "json", "info"))

	var hooked []Record
	f := New(OnSuccess(func(_ context.Context, rec Record) { hooked = append(hooked, rec) }))
	fill(t, f, validValues())
	if !f.Submittable() {
		t.Fatalf("expected form to be submittable")
	}

	record, ok := f.Submit(ctx)
	if !ok {
		t.Fatalf("expected submit to succeed")
	}

	want := Record{Username: "jdoe", FullName: "John Doe", Email: "john@x.com"}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Record{want}, hooked); diff != "" {
		t.Fatalf("hook mismatch (-want +got):\n%s", diff)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]any
	if err := json.Unmarshal(payload, &keys); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("record must only carry username, fullName, email: %s", payload)
	}
	if _, has := keys["password"]; has {
		t.Fatalf("record leaked the password: %s", payload)
	}

	logged := buf.String()
	if !strings.Contains(logged, `"msg":"account created"`) || !strings.Contains(logged, `"username":"jdoe"`) {
		t.Fatalf("expected account log line, got %q", logged)
	}
	if strings.Contains(logged, "password1") {
		t.Fatalf("log line leaked the password: %q", logged)
	}

	if diff := cmp.Diff(Values{}, f.Values()); diff != "" {
		t.Fatalf("values must be cleared (-want +got):\n%s", diff)
	}
	if !f.Pristine() {
		t.Fatalf("touched flags must be reset")
	}
	if f.Submittable() {
		t.Fatalf("submit must be disabled after reset")
	}
	if text, visible := f.Banner(); !visible || text != DefaultSuccessMessage {
		t.Fatalf("expected success banner, got %q visible=%v", text, visible)
	}
}

func TestForm_ResetHidesBanner(t *testing.T) {
	f := New(WithSuccessMessage("Welcome aboard"))
	fill(t, f, validValues())
	if _, ok := f.Submit(context.Background()); !ok {
		t.Fatalf("expected submit to succeed")
	}
	if text, _ := f.Banner(); text != "Welcome aboard" {
		t.Fatalf("expected custom banner, got %q", text)
	}

	f.Reset()
	if _, visible := f.Banner(); visible {
		t.Fatalf("reset must hide the banner")
	}
}

func TestForm_CustomValidator(t *testing.T) {
	v := validation.New(validation.WithRules(validation.Rules{UsernameMinLength: 6}))
	f := New(WithValidator(v))
	snap, err := f.Input(FieldUsername, "jdoe")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if snap.Username.Reason != validation.ReasonTooShort {
		t.Fatalf("expected custom threshold to apply, got %#v", snap.Username)
	}
}

func TestParseField(t *testing.T) {
	for name, want := range map[string]Field{
		"username":   FieldUsername,
		"full_name":  FieldFullName,
		" fullName ": FieldFullName,
		"email":      FieldEmail,
		"password":   FieldPassword,
	} {
		got, err := ParseField(name)
		if err != nil || got != want {
			t.Fatalf("ParseField(%q) = %q, %v; want %q", name, got, err, want)
		}
	}
	if _, err := ParseField("age"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestNewRecord_TrimsLikeTheValidators(t *testing.T) {
	got := NewRecord(Values{
		Username: "\ufeffjdoe\u00a0",
		FullName: "\u3000John Doe\u2028",
		Email:    "\tjohn@x.com\u202f",
		Password: "password1",
	})
	want := Record{Username: "jdoe", FullName: "John Doe", Email: "john@x.com"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}
