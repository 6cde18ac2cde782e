package registration

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered by RegisterRoutes.
type Routes struct {
	Form     string
	Validate string
	OpenAPI  string
}

// MountPaths returns the full mount paths of the three routes under basePath.
func MountPaths(basePath string, fns ...OptionFn) Routes {
	return mountPaths(basePath, NewOptions(fns...))
}

// RegisterRoutes registers the form, validate and OpenAPI handlers under
// basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers using a pre-built Options
// value. Defaults are re-applied, so a zero Options is usable.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("registration: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	routes := mountPaths(basePath, opts)
	h := newHandlers(basePath, opts)
	if h.initErr != nil {
		return Routes{}, fmt.Errorf("registration: %w", h.initErr)
	}

	mux.Handle(routes.Form, http.HandlerFunc(h.serveForm))
	mux.Handle(routes.Validate, http.HandlerFunc(h.serveValidate))
	mux.Handle(routes.OpenAPI, http.HandlerFunc(h.serveOpenAPI))
	return routes, nil
}

func mountPaths(basePath string, opts Options) Routes {
	form := mountPath(basePath, opts.RoutePath)
	return Routes{
		Form:     form,
		Validate: mountPath(basePath, joinPath(opts.RoutePath, opts.ValidatePath)),
		OpenAPI:  mountPath(basePath, joinPath(opts.RoutePath, opts.OpenAPIPath)),
	}
}

func joinPath(routePath, sub string) string {
	routePath = strings.TrimRight(strings.TrimSpace(routePath), "/")
	return routePath + "/" + strings.TrimLeft(strings.TrimSpace(sub), "/")
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
