package model

import "strings"

const (
	ValidationRuleMinLength = "minLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a declarative constraint advertised on a field. MinLength
// rules carry Params["value"]; pattern rules carry Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field is one input of the form.
type Field struct {
	Name         string            `json:"name"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty"`
	InputType    string            `json:"inputType"`
	Autocomplete string            `json:"autocomplete,omitempty"`
	Required     bool              `json:"required"`
	Validations  []ValidationRule  `json:"validations,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Rule returns the first validation rule of kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// FormModel is the top-level description renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
