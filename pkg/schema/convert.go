package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

const (
	extensionNamespace = "x-formgen"
	extensionOrder     = "x-formgen-order"
)

var requestMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"application/json",
	"multipart/form-data",
}

// BuildFormModel converts the request body of operationID into a form model.
// A nil labeler uses model.DefaultLabeler.
func BuildFormModel(doc *openapi3.T, operationID string, labeler func(string) string) (model.FormModel, error) {
	if doc == nil || doc.Paths == nil {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	if labeler == nil {
		labeler = model.DefaultLabeler
	}

	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			form := model.FormModel{
				OperationID: op.OperationID,
				Endpoint:    path,
				Method:      strings.ToUpper(method),
				Summary:     op.Summary,
				Description: op.Description,
			}
			form.Fields = convertFields(requestSchema(op.RequestBody), labeler)
			return form, nil
		}
	}
	return model.FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertFields(schema *openapi3.Schema, labeler func(string) string) []model.Field {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]model.Field, 0, len(schema.Properties))
	for _, name := range propertyOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, convertField(name, ref.Value, required[name], labeler))
	}
	return fields
}

func convertField(name string, prop *openapi3.Schema, required bool, labeler func(string) string) model.Field {
	hints := stringMap(prop.Extensions[extensionNamespace])

	field := model.Field{
		Name:         name,
		Label:        strings.TrimSpace(prop.Title),
		Placeholder:  hints["placeholder"],
		Description:  strings.TrimSpace(prop.Description),
		InputType:    inputType(prop, hints),
		Autocomplete: hints["autocomplete"],
		Required:     required,
	}
	if field.Label == "" {
		field.Label = labeler(name)
	}
	if prop.MinLength > 0 {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(prop.MinLength, 10)},
		})
	}
	if prop.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": prop.Pattern},
		})
	}
	for key, value := range hints {
		switch key {
		case "placeholder", "autocomplete", "input":
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		field.Metadata[key] = value
	}
	return field
}

func inputType(prop *openapi3.Schema, hints map[string]string) string {
	if input := strings.TrimSpace(hints["input"]); input != "" {
		return input
	}
	switch prop.Format {
	case "password":
		return "password"
	case "email":
		return "email"
	default:
		return "text"
	}
}

// propertyOrder honours x-formgen-order and appends any remaining properties
// alphabetically.
func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string

	if raw, ok := schema.Extensions[extensionOrder].([]any); ok {
		for _, entry := range raw {
			name, ok := entry.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			order = append(order, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for key, v := range raw {
		switch typed := v.(type) {
		case string:
			out[key] = strings.TrimSpace(typed)
		case nil:
		default:
			out[key] = fmt.Sprint(typed)
		}
	}
	return out
}
