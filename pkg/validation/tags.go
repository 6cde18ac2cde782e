package validation

import (
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Struct tags registered by RegisterValidations.
const (
	TagUsername = "regform_username"
	TagFullName = "regform_fullname"
	TagEmail    = "regform_email"
	// TagPassword takes the sibling field names holding the full name and
	// email, for example `validate:"regform_password=FullName Email"`.
	TagPassword = "regform_password"
)

// RegisterValidations binds the field validators to a go-playground
// validator instance so caller DTOs can reuse the same rules through struct
// tags. A nil rv uses Default().
func RegisterValidations(v *playground.Validate, rv *Validator) error {
	if v == nil {
		return fmt.Errorf("validation: playground validator is required")
	}
	if rv == nil {
		rv = Default()
	}

	bindings := map[string]playground.Func{
		TagUsername: func(fl playground.FieldLevel) bool {
			return rv.Username(fl.Field().String()).Valid
		},
		TagFullName: func(fl playground.FieldLevel) bool {
			return rv.FullName(fl.Field().String()).Valid
		},
		TagEmail: func(fl playground.FieldLevel) bool {
			return rv.Email(fl.Field().String()).Valid
		},
		TagPassword: func(fl playground.FieldLevel) bool {
			return rv.Password(fl.Field().String(), passwordContextFrom(fl)).Valid
		},
	}
	for _, tag := range []string{TagUsername, TagFullName, TagEmail, TagPassword} {
		if err := v.RegisterValidation(tag, bindings[tag]); err != nil {
			return fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}
	return nil
}

func passwordContextFrom(fl playground.FieldLevel) PasswordContext {
	names := strings.Fields(fl.Param())
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() != reflect.Struct {
		return PasswordContext{}
	}

	sibling := func(idx int) string {
		if idx >= len(names) {
			return ""
		}
		field := parent.FieldByName(names[idx])
		if !field.IsValid() || field.Kind() != reflect.String {
			return ""
		}
		return field.String()
	}
	return PasswordContext{
		FullName: sibling(0),
		Email:    sibling(1),
	}
}
