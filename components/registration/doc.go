// Package registration serves the registration form over net/http.
//
// Three routes are mounted under a base path:
//
//	GET|HEAD|POST  /register               HTML form; POST submits it
//	POST           /register/validate      JSON view for the live validation script
//	GET|HEAD       /register/openapi.json  the OpenAPI document describing both
//
// Every request builds its own form.Form, so handlers are safe for
// concurrent use. Request bodies are capped by Options.MaxBodyBytes.
package registration
