package render

import (
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// FieldState is the styling applied to an input.
type FieldState string

const (
	StateNone    FieldState = ""
	StateError   FieldState = "error"
	StateSuccess FieldState = "success"
)

// FieldView is the presentation state of one input.
type FieldView struct {
	Name         string     `json:"name"`
	Label        string     `json:"label,omitempty"`
	Placeholder  string     `json:"placeholder,omitempty"`
	Description  string     `json:"description,omitempty"`
	InputType    string     `json:"inputType,omitempty"`
	Autocomplete string     `json:"autocomplete,omitempty"`
	Required     bool       `json:"required,omitempty"`
	Value        string     `json:"value,omitempty"`
	State        FieldState `json:"state"`
	Message      string     `json:"message"`
}

// RuleView is one password rule indicator.
type RuleView struct {
	Key   validation.PasswordRule `json:"key"`
	Label string                  `json:"label"`
	Valid bool                    `json:"valid"`
}

// View is everything a renderer needs to draw the form.
type View struct {
	Action        string              `json:"action,omitempty"`
	Method        string              `json:"method,omitempty"`
	Title         string              `json:"title,omitempty"`
	Fields        []FieldView         `json:"fields"`
	Rules         []RuleView          `json:"rules"`
	Strength      validation.Strength `json:"strength"`
	StrengthText  string              `json:"strengthText"`
	StrengthValid bool                `json:"strengthValid"`
	Submittable   bool                `json:"submittable"`
	Banner        string              `json:"banner,omitempty"`
	BannerVisible bool                `json:"bannerVisible"`
	Pristine      bool                `json:"pristine"`
	Hidden        []HiddenField       `json:"hidden,omitempty"`
	// Theme overrides the renderer's configured theme for this render only.
	Theme *theme.RendererConfig `json:"-"`
}

// Field returns the view of the named input.
func (v View) Field(name string) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

// Rule returns the indicator for key.
func (v View) Rule(key validation.PasswordRule) (RuleView, bool) {
	for _, rule := range v.Rules {
		if rule.Key == key {
			return rule, true
		}
	}
	return RuleView{}, false
}

// BuildView projects a snapshot onto the fields of fm. Fields of fm that are
// not part of the registration form are rendered without feedback.
func BuildView(fm model.FormModel, snap form.Snapshot, opts ViewOptions) View {
	method := strings.ToUpper(strings.TrimSpace(fm.Method))
	if method == "" {
		method = http.MethodPost
	}

	view := View{
		Action:        fm.Endpoint,
		Method:        method,
		Title:         fm.Summary,
		Fields:        make([]FieldView, 0, len(fm.Fields)),
		Submittable:   snap.Submittable(),
		Banner:        strings.TrimSpace(opts.Banner),
		Pristine:      opts.Pristine,
		Hidden:        SortedHiddenFields(opts.Hidden...),
		Theme:         opts.Theme,
		Strength:      snap.Password.Strength,
		StrengthValid: snap.Password.StrengthIndicator(),
	}
	view.BannerVisible = view.Banner != ""

	for _, def := range fm.Fields {
		view.Fields = append(view.Fields, buildFieldView(def, snap, opts))
	}

	for _, rule := range validation.PasswordRules() {
		view.Rules = append(view.Rules, RuleView{
			Key:   rule,
			Label: opts.Rules.Label(rule),
			Valid: !opts.Pristine && snap.Password.Rule(rule),
		})
	}

	if opts.Pristine {
		view.Strength = validation.StrengthWeak
		view.StrengthValid = false
	}
	view.StrengthText = view.Strength.Text()
	return view
}

func buildFieldView(def model.Field, snap form.Snapshot, opts ViewOptions) FieldView {
	fv := FieldView{
		Name:         def.Name,
		Label:        def.Label,
		Placeholder:  def.Placeholder,
		Description:  def.Description,
		InputType:    def.InputType,
		Autocomplete: def.Autocomplete,
		Required:     def.Required,
	}
	if fv.InputType == "" {
		fv.InputType = "text"
	}

	field, err := form.ParseField(def.Name)
	if err != nil {
		return fv
	}
	if opts.EchoValues && field != form.FieldPassword {
		fv.Value = snap.Values.Get(field)
	}
	if opts.Pristine {
		return fv
	}

	res := snap.Result(field)
	if res.Valid {
		fv.State = StateSuccess
		return fv
	}
	fv.State = StateError
	fv.Message = res.Message
	return fv
}
