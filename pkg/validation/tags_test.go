package validation

import (
	"errors"
	"testing"

	playground "github.com/go-playground/validator/v10"
)

type signupDTO struct {
	Username string `validate:"regform_username"`
	FullName string `validate:"regform_fullname"`
	Email    string `validate:"regform_email"`
	Password string `validate:"regform_password=FullName Email"`
}

func newPlayground(t *testing.T) *playground.Validate {
	t.Helper()
	v := playground.New()
	if err := RegisterValidations(v, nil); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	return v
}

func TestRegisterValidations_ValidStruct(t *testing.T) {
	v := newPlayground(t)
	dto := signupDTO{
		Username: "jdoe",
		FullName: "John Doe",
		Email:    "john@x.com",
		Password: "password1",
	}
	if err := v.Struct(dto); err != nil {
		t.Fatalf("expected struct to validate, got %v", err)
	}
}

func TestRegisterValidations_ReportsFailingTags(t *testing.T) {
	v := newPlayground(t)
	dto := &signupDTO{
		Username: "jd",
		FullName: "John",
		Email:    "john@x",
		Password: "john1234",
	}

	err := v.Struct(dto)
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	got := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		got[fe.Field()] = fe.Tag()
	}
	want := map[string]string{
		"Username": TagUsername,
		"FullName": TagFullName,
		"Email":    TagEmail,
		"Password": TagPassword,
	}
	for field, tag := range want {
		if got[field] != tag {
			t.Fatalf("expected %s to fail %s, got %q (all: %#v)", field, tag, got[field], got)
		}
	}
}

func TestRegisterValidations_RequiresInstance(t *testing.T) {
	if err := RegisterValidations(nil, nil); err == nil {
		t.Fatalf("expected error for nil validator")
	}
}
