// Package schema embeds the OpenAPI description of the registration endpoints
// and derives the renderer-facing form model from it with kin-openapi. Field
// order, labels, placeholders and autocomplete hints come from the
// Registration schema and its x-formgen extensions.
package schema
