package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"username":   "Username",
		"fullName":   "Full name",
		"full_name":  "Full name",
		"email-addr": "Email addr",
		"address2":   "Address 2",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormModel_FieldLookup(t *testing.T) {
	form := FormModel{Fields: []Field{
		{Name: "email", Validations: []ValidationRule{{Kind: ValidationRulePattern, Params: map[string]string{"pattern": "x"}}}},
	}}
	field, ok := form.Field(" email ")
	if !ok {
		t.Fatalf("expected email field")
	}
	if rule, ok := field.Rule(ValidationRulePattern); !ok || rule.Params["pattern"] != "x" {
		t.Fatalf("expected pattern rule, got %#v", rule)
	}
	if _, ok := form.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
}
