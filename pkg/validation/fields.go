package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// FullNamePattern accepts two or more whitespace separated runs of ASCII
	// letters. Written in ECMA-262 syntax, as carried by the OpenAPI document.
	FullNamePattern = `^[A-Za-z]+(\s+[A-Za-z]+)+$`
	// EmailPattern is a loose shape check: something@something.something with
	// no whitespace or extra "@" in any part. ECMA-262 syntax.
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
)

// ecmaSpace lists what ECMAScript's \s matches. RE2's \s is ASCII only.
const ecmaSpace = `\t\n\v\f\r \p{Z}\x{FEFF}`

var (
	fullNamePattern = regexp.MustCompile(ecmaToRE2(FullNamePattern))
	emailPattern    = regexp.MustCompile(ecmaToRE2(EmailPattern))
)

// Username requires a trimmed value of at least Rules.UsernameMinLength
// characters.
func (v *Validator) Username(raw string) Result {
	value := Trim(raw)
	if value == "" {
		return v.fail(FieldUsername, ReasonRequired)
	}
	if utf8.RuneCountInString(value) < v.rules.UsernameMinLength {
		return v.fail(FieldUsername, ReasonTooShort)
	}
	return pass()
}

// FullName requires two or more space separated tokens of ASCII letters.
func (v *Validator) FullName(raw string) Result {
	value := Trim(raw)
	if value == "" {
		return v.fail(FieldFullName, ReasonRequired)
	}
	if !fullNamePattern.MatchString(value) {
		return v.fail(FieldFullName, ReasonInvalidFormat)
	}
	return pass()
}

// Email applies the loose local@domain.tld shape check.
func (v *Validator) Email(raw string) Result {
	value := Trim(raw)
	if value == "" {
		return v.fail(FieldEmail, ReasonRequired)
	}
	if !emailPattern.MatchString(value) {
		return v.fail(FieldEmail, ReasonInvalidFormat)
	}
	return pass()
}

// IsSpace reports whether r is ECMAScript whitespace, the set matched by \s
// in the patterns. Unlike unicode.IsSpace it excludes U+0085 and includes
// U+FEFF.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

// Trim removes leading and trailing IsSpace runes.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// ecmaToRE2 rewrites every \s of an ECMA-262 pattern into the equivalent RE2
// character set.
func ecmaToRE2(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			i++
			switch {
			case pattern[i] != 's':
				b.WriteByte(c)
				b.WriteByte(pattern[i])
			case inClass:
				b.WriteString(ecmaSpace)
			default:
				b.WriteString("[" + ecmaSpace + "]")
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == ']':
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
