package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer converts a form model plus its current View into bytes (HTML,
// JSON, terminal output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, view View) ([]byte, error)
}
