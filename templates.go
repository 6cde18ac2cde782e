package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can copy or extend them and pass the result to vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedStyles exposes the default stylesheet bundle.
func EmbeddedStyles() fs.FS {
	return vanilla.AssetsFS()
}
