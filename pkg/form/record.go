package form

import (
	"log/slog"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Record is emitted when a submission passes. It never carries the password.
type Record struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// NewRecord builds a Record from trimmed values.
func NewRecord(values Values) Record {
	return Record{
		Username: validation.Trim(values.Username),
		FullName: validation.Trim(values.FullName),
		Email:    validation.Trim(values.Email),
	}
}

// LogValue implements slog.LogValuer.
func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", r.Username),
		slog.String("fullName", r.FullName),
		slog.String("email", r.Email),
	)
}
