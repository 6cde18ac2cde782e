// Package validation holds the registration field rules: the username, full
// name and email predicates, and the password scorer that also feeds the
// strength label and the three rule indicators.
//
// Every validator is a pure function over strings. Invalid input is reported
// through Result values, never through errors, so callers can re-run them on
// every keystroke.
package validation
