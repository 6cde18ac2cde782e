package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

// Operation IDs declared by the embedded document.
const (
	OperationRegister = "register"
	OperationValidate = "validateRegistration"
	OperationForm     = "registerForm"
)

// ErrOperationNotFound is returned when the document has no operation with the
// requested id.
var ErrOperationNotFound = errors.New("schema: operation not found")

//go:embed openapi.yaml
var embeddedDocument []byte

// Raw returns a copy of the embedded OpenAPI document (YAML).
func Raw() []byte {
	return append([]byte(nil), embeddedDocument...)
}

// Option configures document loading.
type Option func(*config)

type config struct {
	raw     []byte
	labeler func(string) string
}

// WithDocument replaces the embedded document, for deployments that ship
// their own copy with different labels or placeholders.
func WithDocument(raw []byte) Option {
	return func(cfg *config) {
		if len(raw) > 0 {
			cfg.raw = raw
		}
	}
}

// WithLabeler overrides how labels are derived for properties without a title.
func WithLabeler(labeler func(string) string) Option {
	return func(cfg *config) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		raw:     embeddedDocument,
		labeler: model.DefaultLabeler,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Load parses and validates the OpenAPI document.
func Load(ctx context.Context, options ...Option) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := newConfig(options)

	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(cfg.raw)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("schema: validate document: %w", err)
	}
	return doc, nil
}

// JSON returns the validated document encoded as JSON.
func JSON(ctx context.Context, options ...Option) ([]byte, error) {
	doc, err := Load(ctx, options...)
	if err != nil {
		return nil, err
	}
	payload, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	return payload, nil
}

// FormModel loads the document and builds the form model for operationID.
func FormModel(ctx context.Context, operationID string, options ...Option) (model.FormModel, error) {
	doc, err := Load(ctx, options...)
	if err != nil {
		return model.FormModel{}, err
	}
	cfg := newConfig(options)
	return BuildFormModel(doc, operationID, cfg.labeler)
}

// RegistrationForm builds the model for the register operation from the
// embedded document.
func RegistrationForm(ctx context.Context) (model.FormModel, error) {
	return FormModel(ctx, OperationRegister)
}
