package validation

import (
	"strings"
	"unicode/utf8"
)

// Strength is the user-facing summary of a password score.
type Strength string

const (
	StrengthWeak   Strength = "Weak"
	StrengthMedium Strength = "Medium"
	StrengthGood   Strength = "Good"
	StrengthStrong Strength = "Strong"
)

// Text renders the strength line shown under the password input.
func (s Strength) Text() string {
	return "Password strength: " + string(s)
}

// PasswordContext carries the other field values the personal-info rule reads.
type PasswordContext struct {
	FullName string
	Email    string
}

// PasswordReport is the full outcome of scoring a password. The three rule
// flags drive their own indicators independently of Result.
type PasswordReport struct {
	Length         bool     `json:"length"`
	Symbol         bool     `json:"symbol"`
	NoPersonalInfo bool     `json:"personal"`
	Score          int      `json:"score"`
	Strength       Strength `json:"strength"`
	Result         Result   `json:"result"`
}

// Rule reports the state of a single scored check.
func (r PasswordReport) Rule(rule PasswordRule) bool {
	switch rule {
	case RuleLength:
		return r.Length
	case RuleSymbol:
		return r.Symbol
	case RulePersonal:
		return r.NoPersonalInfo
	default:
		return false
	}
}

// StrengthIndicator reports whether the strength indicator is lit, which is
// the case for anything above Weak.
func (r PasswordReport) StrengthIndicator() bool {
	return r.Strength != StrengthWeak
}

// ScorePassword runs the three scored checks against raw (not trimmed) and
// derives the strength label and pass/fail outcome.
func (v *Validator) ScorePassword(raw string, ctx PasswordContext) PasswordReport {
	length := utf8.RuneCountInString(raw)

	report := PasswordReport{
		Length:         length >= v.rules.PasswordMinLength,
		Symbol:         strings.ContainsAny(raw, v.rules.PasswordSymbols),
		NoPersonalInfo: withoutPersonalInfo(raw, ctx),
	}
	for _, ok := range []bool{report.Length, report.Symbol, report.NoPersonalInfo} {
		if ok {
			report.Score++
		}
	}

	// Independent checks in this order: a score of 2 is Medium whatever the
	// length, and only a full score looks at the strong threshold.
	report.Strength = StrengthWeak
	if report.Score == 2 {
		report.Strength = StrengthMedium
	}
	if report.Score == 3 && length >= v.rules.StrongPasswordLength {
		report.Strength = StrengthStrong
	} else if report.Score == 3 {
		report.Strength = StrengthGood
	}

	switch {
	case raw == "":
		report.Result = v.fail(FieldPassword, ReasonRequired)
	case report.Score < 3:
		report.Result = v.fail(FieldPassword, ReasonWeakPassword)
	default:
		report.Result = pass()
	}
	return report
}

// Password returns only the pass/fail outcome of ScorePassword.
func (v *Validator) Password(raw string, ctx PasswordContext) Result {
	return v.ScorePassword(raw, ctx).Result
}

func withoutPersonalInfo(password string, ctx PasswordContext) bool {
	lowered := strings.ToLower(password)
	if part := namePart(ctx.FullName); part != "" && strings.Contains(lowered, part) {
		return false
	}
	if part := emailPart(ctx.Email); part != "" && strings.Contains(lowered, part) {
		return false
	}
	return true
}

// namePart is the lowercased first token of the full name.
func namePart(fullName string) string {
	tokens := strings.FieldsFunc(fullName, IsSpace)
	if len(tokens) == 0 {
		return ""
	}
	return strings.ToLower(tokens[0])
}

// emailPart is the lowercased local part of the email, empty when there is
// no "@".
func emailPart(email string) string {
	local, _, found := strings.Cut(Trim(email), "@")
	if !found {
		return ""
	}
	return strings.ToLower(local)
}
