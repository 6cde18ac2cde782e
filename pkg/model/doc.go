// Package model describes the registration form the way renderers consume it:
// an ordered list of fields with labels, placeholders, input types and the
// declarative constraints they advertise (minLength, pattern). The model is
// presentation metadata only; pass/fail decisions live in pkg/validation.
package model
