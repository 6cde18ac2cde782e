package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/validation"
)

// ViewOptions carries the per-render data BuildView needs beyond the snapshot.
type ViewOptions struct {
	// Rules labels the password indicators. Zero value uses the defaults.
	Rules validation.Rules
	// Pristine suppresses all per-field feedback, matching a page that has
	// not received any input yet.
	Pristine bool
	// Banner is the success message; empty hides the banner.
	Banner string
	// EchoValues pre-populates the inputs with the snapshot values. The
	// password is never echoed.
	EchoValues bool
	// Hidden lists extra hidden inputs such as CSRF tokens.
	Hidden []HiddenField
	// Theme, when set, replaces the renderer's theme for this render.
	Theme *theme.RendererConfig
}
