package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/form"
)

var allowedInputTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"password": true,
	"tel":      true,
	"search":   true,
}

// Violation is one problem found by Lint.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks that raw can replace the embedded document: it must load, its
// register operation must accept exactly the registration fields, and its
// x-formgen extensions must be usable. Load failures are returned as errors;
// everything else is reported as sorted violations.
func Lint(ctx context.Context, raw []byte) ([]Violation, error) {
	doc, err := Load(ctx, WithDocument(raw))
	if err != nil {
		return nil, err
	}

	base := []string{"operation", OperationRegister}
	op := findOperation(doc, OperationRegister)
	if op == nil {
		return []Violation{{Location: formatLocation(base), Message: "operation is missing"}}, nil
	}

	body := requestSchema(op.RequestBody)
	location := append(base, "requestBody")
	if body == nil {
		return []Violation{{Location: formatLocation(location), Message: "no form or JSON request schema"}}, nil
	}

	var result []Violation
	result = append(result, lintFields(location, body)...)
	result = append(result, lintOrder(location, body)...)

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		result = append(result, lintHints(appendPath(location, "properties."+name), ref.Value.Extensions)...)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func lintFields(path []string, body *openapi3.Schema) []Violation {
	var result []Violation
	known := make(map[string]bool)
	for _, field := range form.Fields() {
		name := string(field)
		known[name] = true
		if _, ok := body.Properties[name]; !ok {
			result = append(result, Violation{
				Location: formatLocation(path),
				Message:  fmt.Sprintf("field %q is missing", name),
			})
		}
	}
	for name := range body.Properties {
		if !known[name] {
			result = append(result, Violation{
				Location: formatLocation(appendPath(path, "properties."+name)),
				Message:  "field is not part of the registration form",
			})
		}
	}
	return result
}

func lintOrder(path []string, body *openapi3.Schema) []Violation {
	raw, ok := body.Extensions[extensionOrder]
	if !ok {
		return nil
	}
	location := formatLocation(appendPath(path, extensionOrder))
	entries, ok := raw.([]any)
	if !ok {
		return []Violation{{Location: location, Message: fmt.Sprintf("must be a list, found %T", raw)}}
	}

	var result []Violation
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name, ok := entry.(string)
		switch {
		case !ok:
			result = append(result, Violation{Location: location, Message: fmt.Sprintf("entry must be a string, found %T", entry)})
		case seen[name]:
			result = append(result, Violation{Location: location, Message: fmt.Sprintf("%q is listed twice", name)})
		case body.Properties[name] == nil:
			result = append(result, Violation{Location: location, Message: fmt.Sprintf("%q is not a property", name)})
		default:
			seen[name] = true
		}
	}
	return result
}

func lintHints(path []string, extensions map[string]any) []Violation {
	raw, ok := extensions[extensionNamespace]
	if !ok {
		return nil
	}
	location := appendPath(path, extensionNamespace)
	hints, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{
			Location: formatLocation(location),
			Message:  fmt.Sprintf("%s must be an object, found %T", extensionNamespace, raw),
		}}
	}

	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []Violation
	for _, key := range keys {
		value := hints[key]
		switch value.(type) {
		case string, bool, float64, int, int64, nil:
		default:
			result = append(result, Violation{
				Location: formatLocation(appendPath(location, key)),
				Message:  fmt.Sprintf("value must be a string, number, or boolean (got %T)", value),
			})
			continue
		}
		if key == "input" {
			input, _ := value.(string)
			if !allowedInputTypes[strings.TrimSpace(input)] {
				result = append(result, Violation{
					Location: formatLocation(appendPath(location, key)),
					Message:  fmt.Sprintf("unsupported input type %v", value),
				})
			}
		}
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
