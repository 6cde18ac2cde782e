package validation

import (
	"fmt"
	"strings"
)

// Reason identifies why a field failed. The zero value means the field passed.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonRequired      Reason = "required"
	ReasonTooShort      Reason = "too_short"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonWeakPassword  Reason = "weak_password"
)

// Field names used to key messages and rendered feedback.
const (
	FieldUsername = "username"
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Result is the outcome of validating one field. Message is empty when Valid.
type Result struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func pass() Result {
	return Result{Valid: true}
}

func fail(reason Reason, message string) Result {
	return Result{Reason: reason, Message: message}
}

// Messages maps "field.reason" keys (for example "username.required") to the
// text shown next to the input.
type Messages map[string]string

// MessageKey builds the lookup key used by Messages.
func MessageKey(field string, reason Reason) string {
	return strings.TrimSpace(field) + "." + string(reason)
}

// DefaultMessages returns the stock user-facing messages for DefaultRules.
func DefaultMessages() Messages {
	return messagesFor(DefaultRules())
}

func messagesFor(rules Rules) Messages {
	return Messages{
		MessageKey(FieldUsername, ReasonRequired):      "Username is required",
		MessageKey(FieldUsername, ReasonTooShort):      fmt.Sprintf("Username must be at least %d characters", rules.UsernameMinLength),
		MessageKey(FieldFullName, ReasonRequired):      "Full name is required",
		MessageKey(FieldFullName, ReasonInvalidFormat): "Enter first and last name (letters only)",
		MessageKey(FieldEmail, ReasonRequired):         "Email is required",
		MessageKey(FieldEmail, ReasonInvalidFormat):    "Enter a valid email address",
		MessageKey(FieldPassword, ReasonRequired):      "Password is required",
		MessageKey(FieldPassword, ReasonWeakPassword):  "Password does not meet requirements",
	}
}

// Lookup returns the message for field/reason, falling back to the defaults and
// finally to the bare reason so a failure is never rendered without text.
func (m Messages) Lookup(field string, reason Reason) string {
	key := MessageKey(field, reason)
	if msg := strings.TrimSpace(m[key]); msg != "" {
		return msg
	}
	if msg := defaultMessages[key]; msg != "" {
		return msg
	}
	return string(reason)
}

// Merge returns a copy of m with overrides applied. Blank overrides are ignored.
func (m Messages) Merge(overrides map[string]string) Messages {
	out := make(Messages, len(m)+len(overrides))
	for key, value := range m {
		out[key] = value
	}
	for key, value := range overrides {
		key = strings.TrimSpace(key)
		if key == "" || strings.TrimSpace(value) == "" {
			continue
		}
		out[key] = value
	}
	return out
}

var defaultMessages = DefaultMessages()
