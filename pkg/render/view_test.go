package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

func registrationModel() model.FormModel {
	return model.FormModel{
		OperationID: "register",
		Endpoint:    "/register",
		Method:      "post",
		Summary:     "Create an account",
		Fields: []model.Field{
			{Name: "username", Label: "Username", Required: true},
			{Name: "fullName", Label: "Full name", Required: true},
			{Name: "email", Label: "Email", InputType: "email", Required: true},
			{Name: "password", Label: "Password", InputType: "password", Required: true},
		},
	}
}

func TestBuildView_MixedFeedback(t *testing.T) {
	snap := form.Evaluate(form.Values{
		Username: "jd",
		FullName: "John Doe",
		Email:    "john@x.com",
		Password: "john1234",
	})
	view := BuildView(registrationModel(), snap, ViewOptions{EchoValues: true})

	if view.Method != "POST" || view.Action != "/register" || view.Title != "Create an account" {
		t.Fatalf("unexpected view header: %#v", view)
	}

	username, _ := view.Field("username")
	want := FieldView{
		Name:      "username",
		Label:     "Username",
		InputType: "text",
		Required:  true,
		Value:     "jd",
		State:     StateError,
		Message:   "Username must be at least 3 characters",
	}
	if diff := cmp.Diff(want, username); diff != "" {
		t.Fatalf("username view mismatch (-want +got):\n%s", diff)
	}

	fullName, _ := view.Field("fullName")
	if fullName.State != StateSuccess || fullName.Message != "" {
		t.Fatalf("expected success on full name, got %#v", fullName)
	}

	password, _ := view.Field("password")
	if password.Value != "" {
		t.Fatalf("password must never be echoed, got %q", password.Value)
	}
	if password.State != StateError || password.Message != "Password does not meet requirements" {
		t.Fatalf("unexpected password view: %#v", password)
	}

	wantRules := []RuleView{
		{Key: validation.RuleLength, Label: "At least 8 characters", Valid: true},
		{Key: validation.RuleSymbol, Label: "Contains a number or symbol", Valid: true},
		{Key: validation.RulePersonal, Label: "Does not contain your name or email", Valid: false},
	}
	if diff := cmp.Diff(wantRules, view.Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if view.Strength != validation.StrengthMedium || view.StrengthText != "Password strength: Medium" || !view.StrengthValid {
		t.Fatalf("unexpected strength: %s %q %v", view.Strength, view.StrengthText, view.StrengthValid)
	}
	if view.Submittable {
		t.Fatalf("submit must be disabled")
	}
}

func TestBuildView_PristineSuppressesFeedback(t *testing.T) {
	view := BuildView(registrationModel(), form.Evaluate(form.Values{}), ViewOptions{Pristine: true})

	for _, field := range view.Fields {
		if field.State != StateNone || field.Message != "" {
			t.Fatalf("pristine field %s must have no feedback: %#v", field.Name, field)
		}
	}
	for _, rule := range view.Rules {
		if rule.Valid {
			t.Fatalf("pristine rule %s must be off", rule.Key)
		}
	}
	if view.StrengthText != "Password strength: Weak" || view.StrengthValid {
		t.Fatalf("unexpected pristine strength: %q %v", view.StrengthText, view.StrengthValid)
	}
	if view.Submittable || view.BannerVisible {
		t.Fatalf("pristine empty form must be disabled with no banner")
	}
}

func TestBuildView_AllValidEnablesSubmit(t *testing.T) {
	snap := form.Evaluate(form.Values{
		Username: "jdoe",
		FullName: "John Doe",
		Email:    "john@x.com",
		Password: "password1",
	})
	view := BuildView(registrationModel(), snap, ViewOptions{
		Banner: " Account created successfully ",
		Hidden: []HiddenField{CSRFToken("_csrf", "t1")},
	})

	if !view.Submittable {
		t.Fatalf("expected submit enabled")
	}
	for _, field := range view.Fields {
		if field.State != StateSuccess {
			t.Fatalf("expected %s success, got %#v", field.Name, field)
		}
		if field.Value != "" {
			t.Fatalf("values must not be echoed without EchoValues")
		}
	}
	if view.Strength != validation.StrengthGood {
		t.Fatalf("expected Good, got %s", view.Strength)
	}
	if !view.BannerVisible || view.Banner != "Account created successfully" {
		t.Fatalf("unexpected banner %q", view.Banner)
	}
	if diff := cmp.Diff([]HiddenField{{Name: "_csrf", Value: "t1"}}, view.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildView_UnknownModelFieldHasNoFeedback(t *testing.T) {
	fm := registrationModel()
	fm.Fields = append(fm.Fields, model.Field{Name: "nickname"})
	view := BuildView(fm, form.Evaluate(form.Values{}), ViewOptions{})

	nickname, ok := view.Field("nickname")
	if !ok {
		t.Fatalf("expected nickname field in view")
	}
	if nickname.State != StateNone || nickname.InputType != "text" {
		t.Fatalf("unexpected nickname view: %#v", nickname)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := SortedHiddenFields(Hidden("b", 2), Hidden(" ", "x"), Hidden("a", "1"), Hidden("b", 3))
	want := []HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if SortedHiddenFields() != nil {
		t.Fatalf("expected nil for no fields")
	}
}
