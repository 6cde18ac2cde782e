package form

import (
	"context"
	"strings"

	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/validation"
)

// DefaultSuccessMessage is shown in the banner after a successful submit.
const DefaultSuccessMessage = "Account created successfully"

// SuccessFunc receives every record emitted by a successful submit.
type SuccessFunc func(ctx context.Context, record Record)

// Option configures a Form.
type Option func(*Form)

// WithValidator swaps the validator used on every evaluation.
func WithValidator(v *validation.Validator) Option {
	return func(f *Form) {
		if v != nil {
			f.validator = v
		}
	}
}

// OnSuccess registers a hook called after each successful submit, before the
// form is cleared.
func OnSuccess(fn SuccessFunc) Option {
	return func(f *Form) {
		if fn != nil {
			f.hooks = append(f.hooks, fn)
		}
	}
}

// WithSuccessMessage overrides the banner text.
func WithSuccessMessage(message string) Option {
	return func(f *Form) {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			f.successMessage = trimmed
		}
	}
}

// Form is the registration form state machine.
type Form struct {
	validator      *validation.Validator
	hooks          []SuccessFunc
	successMessage string

	values  Values
	touched Touched
	banner  string
}

// New constructs an empty, pristine form.
func New(options ...Option) *Form {
	f := &Form{
		validator:      validation.Default(),
		successMessage: DefaultSuccessMessage,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Validator returns the validator the form evaluates with.
func (f *Form) Validator() *validation.Validator {
	return f.validator
}

// Input handles an input event: it stores value, marks field touched and
// returns the re-evaluated snapshot of all four fields.
func (f *Form) Input(field Field, value string) (Snapshot, error) {
	values, err := f.values.With(field, value)
	if err != nil {
		return Snapshot{}, err
	}
	f.values = values
	f.touched.mark(field)
	return f.Snapshot(), nil
}

// Snapshot evaluates the current values.
func (f *Form) Snapshot() Snapshot {
	return EvaluateWith(f.validator, f.values)
}

// Submittable reports whether the submit control should be enabled.
func (f *Form) Submittable() bool {
	return f.Snapshot().Submittable()
}

// Values returns the current field values.
func (f *Form) Values() Values {
	return f.values
}

// Touched returns the touched flags. They record interaction only; validation
// always covers all four fields.
func (f *Form) Touched() Touched {
	return f.touched
}

// Pristine reports whether no field has been touched since the last reset.
func (f *Form) Pristine() bool {
	return !f.touched.Any()
}

// Banner returns the success banner text and whether it is visible.
func (f *Form) Banner() (string, bool) {
	return f.banner, f.banner != ""
}

// Submit re-runs validation. When any field fails nothing changes and ok is
// false. Otherwise the record is logged and handed to the success hooks, the
// banner is shown and the values and touched flags are cleared.
func (f *Form) Submit(ctx context.Context) (record Record, ok bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	snap := f.Snapshot()
	if !snap.Submittable() {
		return Record{}, false
	}

	record = NewRecord(snap.Values)
	ctxlog.FromContext(ctx).InfoContext(ctx, "account created", "record", record)
	for _, hook := range f.hooks {
		hook(ctx, record)
	}

	f.banner = f.successMessage
	f.clear()
	return record, true
}

// Reset clears values, touched flags and the banner.
func (f *Form) Reset() {
	f.clear()
	f.banner = ""
}

func (f *Form) clear() {
	f.values = Values{}
	f.touched = Touched{}
}
