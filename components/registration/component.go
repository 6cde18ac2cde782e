package registration

import "net/http"

// Component bundles the options, handler and routing helpers of the
// registration endpoints.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a handler serving the three routes at the root base path.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}

// Handler builds a handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves the three routes from their default paths. A
// setup failure (for example a broken custom document) answers 500 on every
// route and is logged.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	mux := http.NewServeMux()
	routes := mountPaths("", opts)
	h := newHandlers("", opts)
	mux.Handle(routes.Form, http.HandlerFunc(h.serveForm))
	mux.Handle(routes.Validate, http.HandlerFunc(h.serveValidate))
	mux.Handle(routes.OpenAPI, http.HandlerFunc(h.serveOpenAPI))
	return mux
}
