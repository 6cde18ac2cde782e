package vanilla

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/render"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText strips every tag from raw and returns unescaped text; the
// template engine escapes it again on output.
func plainText(raw string) string {
	if raw == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}

// sanitizeView returns a copy of view with every caller supplied string
// reduced to plain text. Echoed values and hidden field values are user data
// and only get escaped by the template.
func sanitizeView(view render.View) render.View {
	out := view
	out.Title = plainText(view.Title)
	out.Banner = plainText(view.Banner)

	out.Fields = make([]render.FieldView, len(view.Fields))
	for i, field := range view.Fields {
		field.Label = plainText(field.Label)
		field.Placeholder = plainText(field.Placeholder)
		field.Description = plainText(field.Description)
		field.Message = plainText(field.Message)
		out.Fields[i] = field
	}

	out.Rules = make([]render.RuleView, len(view.Rules))
	for i, rule := range view.Rules {
		rule.Label = plainText(rule.Label)
		out.Rules[i] = rule
	}
	return out
}
