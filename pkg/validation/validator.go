package validation

// Option configures a Validator.
type Option func(*Validator)

// WithRules overrides the thresholds. Zero fields keep their defaults.
func WithRules(rules Rules) Option {
	return func(v *Validator) {
		v.rules = rules.normalized()
	}
}

// WithMessages applies message overrides keyed by "field.reason".
func WithMessages(overrides map[string]string) Option {
	return func(v *Validator) {
		if len(overrides) == 0 {
			return
		}
		if v.overrides == nil {
			v.overrides = make(map[string]string, len(overrides))
		}
		for key, value := range overrides {
			v.overrides[key] = value
		}
	}
}

// Validator bundles the thresholds and messages used by the field validators.
// It is immutable after New and safe for concurrent use.
type Validator struct {
	rules     Rules
	overrides map[string]string
	messages  Messages
}

// New constructs a Validator with DefaultRules and DefaultMessages unless
// overridden.
func New(options ...Option) *Validator {
	v := &Validator{rules: DefaultRules()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	v.messages = messagesFor(v.rules).Merge(v.overrides)
	return v
}

var defaultValidator = New()

// Default returns the shared Validator built from the stock rules.
func Default() *Validator {
	return defaultValidator
}

// Rules returns the thresholds in effect.
func (v *Validator) Rules() Rules {
	if v == nil {
		return DefaultRules()
	}
	return v.rules
}

// Messages returns a copy of the message catalogue in effect.
func (v *Validator) Messages() Messages {
	if v == nil {
		return DefaultMessages()
	}
	return v.messages.Merge(nil)
}

func (v *Validator) fail(field string, reason Reason) Result {
	return fail(reason, v.messages.Lookup(field, reason))
}

// ValidateUsername checks raw against the default rules.
func ValidateUsername(raw string) Result {
	return defaultValidator.Username(raw)
}

// ValidateFullName checks raw against the default rules.
func ValidateFullName(raw string) Result {
	return defaultValidator.FullName(raw)
}

// ValidateEmail checks raw against the default rules.
func ValidateEmail(raw string) Result {
	return defaultValidator.Email(raw)
}

// ScorePassword scores raw against the default rules.
func ScorePassword(raw string, ctx PasswordContext) PasswordReport {
	return defaultValidator.ScorePassword(raw, ctx)
}

// ValidatePassword returns the pass/fail outcome for raw under the default
// rules.
func ValidatePassword(raw string, ctx PasswordContext) Result {
	return defaultValidator.Password(raw, ctx)
}
