// Package form models the registration form as explicit state: the four
// field values, their touched flags and the success banner. Every input event
// re-evaluates all four validators so the password personal-info rule stays
// in sync with the name and email fields, and submittability is always
// derived from a Snapshot, never stored.
//
// A Form is owned by a single event loop (a terminal session, a request
// handler) and is not safe for concurrent use.
package form
