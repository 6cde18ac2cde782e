package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Field identifies one of the four inputs.
type Field string

const (
	FieldUsername Field = validation.FieldUsername
	FieldFullName Field = validation.FieldFullName
	FieldEmail    Field = validation.FieldEmail
	FieldPassword Field = validation.FieldPassword
)

// Fields returns the inputs in display order.
func Fields() []Field {
	return []Field{FieldUsername, FieldFullName, FieldEmail, FieldPassword}
}

// ParseField resolves a field name, accepting the snake_case spelling used by
// some form posts ("full_name").
func ParseField(name string) (Field, error) {
	switch strings.TrimSpace(name) {
	case "username":
		return FieldUsername, nil
	case "fullName", "full_name", "fullname":
		return FieldFullName, nil
	case "email":
		return FieldEmail, nil
	case "password":
		return FieldPassword, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// Values holds the raw content of the four inputs.
type Values struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Get returns the value of field.
func (v Values) Get(field Field) string {
	switch field {
	case FieldUsername:
		return v.Username
	case FieldFullName:
		return v.FullName
	case FieldEmail:
		return v.Email
	case FieldPassword:
		return v.Password
	default:
		return ""
	}
}

// With returns a copy of v with field set to value.
func (v Values) With(field Field, value string) (Values, error) {
	switch field {
	case FieldUsername:
		v.Username = value
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPassword:
		v.Password = value
	default:
		return v, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return v, nil
}

// Touched records which inputs have received an event since the last reset.
type Touched struct {
	Username bool `json:"username"`
	FullName bool `json:"fullName"`
	Email    bool `json:"email"`
	Password bool `json:"password"`
}

// Get reports whether field was touched.
func (t Touched) Get(field Field) bool {
	switch field {
	case FieldUsername:
		return t.Username
	case FieldFullName:
		return t.FullName
	case FieldEmail:
		return t.Email
	case FieldPassword:
		return t.Password
	default:
		return false
	}
}

// Any reports whether at least one field was touched.
func (t Touched) Any() bool {
	return t.Username || t.FullName || t.Email || t.Password
}

func (t *Touched) mark(field Field) {
	switch field {
	case FieldUsername:
		t.Username = true
	case FieldFullName:
		t.FullName = true
	case FieldEmail:
		t.Email = true
	case FieldPassword:
		t.Password = true
	}
}
