package schema

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

func TestRegistrationForm_FieldsInDeclaredOrder(t *testing.T) {
	form, err := RegistrationForm(context.Background())
	if err != nil {
		t.Fatalf("registration form: %v", err)
	}

	if form.Endpoint != "/register" || form.Method != "POST" || form.OperationID != OperationRegister {
		t.Fatalf("unexpected form header: %#v", form)
	}

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
		if !field.Required {
			t.Fatalf("expected %s to be required", field.Name)
		}
	}
	want := []string{"username", "fullName", "email", "password"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationForm_FieldHints(t *testing.T) {
	form, err := RegistrationForm(context.Background())
	if err != nil {
		t.Fatalf("registration form: %v", err)
	}

	email, ok := form.Field("email")
	if !ok {
		t.Fatalf("missing email field")
	}
	if email.InputType != "email" || email.Autocomplete != "email" || email.Placeholder != "you@example.com" {
		t.Fatalf("unexpected email hints: %#v", email)
	}

	password, _ := form.Field("password")
	if password.InputType != "password" || password.Autocomplete != "new-password" {
		t.Fatalf("unexpected password hints: %#v", password)
	}
	if rule, ok := password.Rule(model.ValidationRuleMinLength); !ok || rule.Params["value"] != "8" {
		t.Fatalf("expected minLength 8 on password, got %#v", password.Validations)
	}

	username, _ := form.Field("username")
	if username.Label != "Username" || username.InputType != "text" {
		t.Fatalf("unexpected username field: %#v", username)
	}
}

func TestRegistrationForm_PatternsMatchValidators(t *testing.T) {
	form, err := RegistrationForm(context.Background())
	if err != nil {
		t.Fatalf("registration form: %v", err)
	}

	cases := map[string]string{
		"fullName": validation.FullNamePattern,
		"email":    validation.EmailPattern,
	}
	for name, want := range cases {
		field, _ := form.Field(name)
		rule, ok := field.Rule(model.ValidationRulePattern)
		if !ok {
			t.Fatalf("expected pattern on %s", name)
		}
		if rule.Params["pattern"] != want {
			t.Fatalf("pattern drift on %s: document %q, validator %q", name, rule.Params["pattern"], want)
		}
	}
}

func TestFormModel_UnknownOperation(t *testing.T) {
	_, err := FormModel(context.Background(), "deleteAccount")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestFormModel_CustomDocumentAndLabeler(t *testing.T) {
	doc := []byte(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /signup:
    put:
      operationId: signup
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                zeta: {type: string}
                alpha_name: {type: string, x-formgen: {hint: short}}
      responses:
        "204": {description: ok}
`)
	form, err := FormModel(context.Background(), "signup",
		WithDocument(doc),
		WithLabeler(func(name string) string { return "L:" + name }),
	)
	if err != nil {
		t.Fatalf("form model: %v", err)
	}

	want := model.FormModel{
		OperationID: "signup",
		Endpoint:    "/signup",
		Method:      "PUT",
		Fields: []model.Field{
			{Name: "alpha_name", Label: "L:alpha_name", InputType: "text", Metadata: map[string]string{"hint": "short"}},
			{Name: "zeta", Label: "L:zeta", InputType: "text"},
		},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsInvalidDocument(t *testing.T) {
	if _, err := Load(context.Background(), WithDocument([]byte("openapi: [broken"))); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestJSON_EncodesDocument(t *testing.T) {
	payload, err := JSON(context.Background())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version: %#v", decoded["openapi"])
	}
	if _, ok := decoded["paths"].(map[string]any)["/register/validate"]; !ok {
		t.Fatalf("expected validate path in document")
	}
}
