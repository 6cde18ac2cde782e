package form

import "github.com/goliatone/go-regform/pkg/validation"

// Snapshot is the evaluated state of the four fields at one point in time.
type Snapshot struct {
	Values   Values                    `json:"-"`
	Username validation.Result         `json:"username"`
	FullName validation.Result         `json:"fullName"`
	Email    validation.Result         `json:"email"`
	Password validation.PasswordReport `json:"password"`
}

// Evaluate runs all four validators with the default rules.
func Evaluate(values Values) Snapshot {
	return EvaluateWith(validation.Default(), values)
}

// EvaluateWith runs all four validators using v. Every validator runs even
// when an earlier one fails.
func EvaluateWith(v *validation.Validator, values Values) Snapshot {
	if v == nil {
		v = validation.Default()
	}
	return Snapshot{
		Values:   values,
		Username: v.Username(values.Username),
		FullName: v.FullName(values.FullName),
		Email:    v.Email(values.Email),
		Password: v.ScorePassword(values.Password, validation.PasswordContext{
			FullName: values.FullName,
			Email:    values.Email,
		}),
	}
}

// Result returns the pass/fail outcome for field.
func (s Snapshot) Result(field Field) validation.Result {
	switch field {
	case FieldUsername:
		return s.Username
	case FieldFullName:
		return s.FullName
	case FieldEmail:
		return s.Email
	case FieldPassword:
		return s.Password.Result
	default:
		return validation.Result{}
	}
}

// Submittable reports whether all four fields pass.
func (s Snapshot) Submittable() bool {
	return s.Username.Valid && s.FullName.Valid && s.Email.Valid && s.Password.Result.Valid
}

// Errors returns the failing fields' messages keyed by field name, or nil when
// every field passes.
func (s Snapshot) Errors() map[string]string {
	var out map[string]string
	for _, field := range Fields() {
		res := s.Result(field)
		if res.Valid {
			continue
		}
		if out == nil {
			out = make(map[string]string, 4)
		}
		out[string(field)] = res.Message
	}
	return out
}
