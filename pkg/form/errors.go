package form

import "errors"

// ErrUnknownField is returned when an event names a field the form does not
// have.
var ErrUnknownField = errors.New("form: unknown field")
