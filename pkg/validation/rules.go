package validation

import (
	"fmt"
	"strings"
)

// Rules holds the thresholds the validators apply. Zero values fall back to
// DefaultRules.
type Rules struct {
	UsernameMinLength    int    `json:"username_min_length" yaml:"username_min_length"`
	PasswordMinLength    int    `json:"password_min_length" yaml:"password_min_length"`
	StrongPasswordLength int    `json:"strong_password_length" yaml:"strong_password_length"`
	PasswordSymbols      string `json:"password_symbols" yaml:"password_symbols"`
}

// DefaultRules returns the stock thresholds: usernames of 3+ characters,
// passwords of 8+ characters with a digit or one of !@#$%^&*, and "Strong"
// from 10 characters.
func DefaultRules() Rules {
	return Rules{
		UsernameMinLength:    3,
		PasswordMinLength:    8,
		StrongPasswordLength: 10,
		PasswordSymbols:      "0123456789!@#$%^&*",
	}
}

func (r Rules) normalized() Rules {
	defaults := DefaultRules()
	if r.UsernameMinLength <= 0 {
		r.UsernameMinLength = defaults.UsernameMinLength
	}
	if r.PasswordMinLength <= 0 {
		r.PasswordMinLength = defaults.PasswordMinLength
	}
	if r.StrongPasswordLength <= 0 {
		r.StrongPasswordLength = defaults.StrongPasswordLength
	}
	if r.PasswordSymbols == "" {
		r.PasswordSymbols = defaults.PasswordSymbols
	}
	return r
}

// PasswordRule names one of the three scored password checks.
type PasswordRule string

const (
	RuleLength   PasswordRule = "length"
	RuleSymbol   PasswordRule = "symbol"
	RulePersonal PasswordRule = "personal"
)

// PasswordRules lists the scored checks in display order.
func PasswordRules() []PasswordRule {
	return []PasswordRule{RuleLength, RuleSymbol, RulePersonal}
}

// Label returns the indicator text for rule under these thresholds.
func (r Rules) Label(rule PasswordRule) string {
	r = r.normalized()
	switch rule {
	case RuleLength:
		return fmt.Sprintf("At least %d characters", r.PasswordMinLength)
	case RuleSymbol:
		if r.PasswordSymbols == DefaultRules().PasswordSymbols {
			return "Contains a number or symbol"
		}
		return "Contains one of " + strings.Join(strings.Split(r.PasswordSymbols, ""), " ")
	case RulePersonal:
		return "Does not contain your name or email"
	default:
		return string(rule)
	}
}
