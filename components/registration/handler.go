package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// validateRequest is the body of the live validation endpoint. Touched is
// optional; when present and empty the view is pristine.
type validateRequest struct {
	form.Values
	Touched *form.Touched `json:"touched,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlers holds what every route shares: the form model, the document and
// the HTML renderer, all resolved once at mount time.
type handlers struct {
	opts     Options
	model    model.FormModel
	document []byte
	renderer render.Renderer
	initErr  error
}

func newHandlers(basePath string, opts Options) *handlers {
	h := &handlers{opts: opts}
	ctx := context.Background()

	gen := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry()),
		orchestrator.WithSchemaOptions(opts.Schema...),
		orchestrator.WithSchemaTransformer(opts.Transformer),
	)
	fm, err := gen.Model(ctx, schema.OperationRegister)
	if err != nil {
		h.initErr = err
		return h
	}
	fm.Endpoint = mountPath(basePath, opts.RoutePath)
	h.model = fm

	doc, err := schema.JSON(ctx, opts.Schema...)
	if err != nil {
		h.initErr = err
		return h
	}
	h.document = doc

	h.renderer = opts.Renderer
	if h.renderer == nil {
		r, err := vanilla.New(
			vanilla.WithScript(opts.ScriptURL),
			vanilla.WithValidateURL(mountPath(basePath, joinPath(opts.RoutePath, opts.ValidatePath))),
			vanilla.WithTheme(opts.Theme),
		)
		if err != nil {
			h.initErr = err
			return h
		}
		h.renderer = r
	}
	return h
}

func (h *handlers) newForm() *form.Form {
	options := []form.Option{
		form.WithValidator(h.opts.Validator),
		form.WithSuccessMessage(h.opts.SuccessMessage),
	}
	for _, hook := range h.opts.OnSuccess {
		options = append(options, form.OnSuccess(hook))
	}
	return form.New(options...)
}

// prepare runs the shared preamble: init failure, method check, guard and
// logger. It reports whether the request should continue.
func (h *handlers) prepare(w http.ResponseWriter, r *http.Request, methods ...string) (*http.Request, bool) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}
	if h.opts.Logger != nil {
		r = r.WithContext(ctxlog.WithLogger(r.Context(), h.opts.Logger))
	}
	if h.initErr != nil {
		ctxlog.FromContext(r.Context()).ErrorContext(r.Context(), "registration handler unavailable", "error", h.initErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	if !allowed(r.Method, methods) {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return nil, false
		}
	}
	return r, true
}

// serveForm renders the page on GET/HEAD and handles the form post.
func (h *handlers) serveForm(w http.ResponseWriter, r *http.Request) {
	r, ok := h.prepare(w, r, http.MethodGet, http.MethodHead, http.MethodPost)
	if !ok {
		return
	}
	ctx := r.Context()
	f := h.newForm()

	if r.Method != http.MethodPost {
		h.writeHTML(w, r, http.StatusOK, f, false)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeBodyError(w, err, false)
		return
	}
	for _, field := range form.Fields() {
		if _, err := f.Input(field, postedValue(r, field)); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if _, ok := f.Submit(ctx); ok {
		h.writeHTML(w, r, http.StatusOK, f, false)
		return
	}
	ctxlog.FromContext(ctx).DebugContext(ctx, "registration rejected", "errors", f.Snapshot().Errors())
	h.writeHTML(w, r, http.StatusUnprocessableEntity, f, true)
}

func (h *handlers) writeHTML(w http.ResponseWriter, r *http.Request, status int, f *form.Form, echo bool) {
	ctx := r.Context()
	banner, _ := f.Banner()
	opts := render.ViewOptions{
		Rules:      f.Validator().Rules(),
		Pristine:   f.Pristine(),
		Banner:     banner,
		EchoValues: echo,
	}
	if h.opts.Hidden != nil {
		opts.Hidden = h.opts.Hidden(r)
	}

	out, err := h.renderer.Render(ctx, h.model, render.BuildView(h.model, f.Snapshot(), opts))
	if err != nil {
		ctxlog.FromContext(ctx).ErrorContext(ctx, "render registration form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

// serveValidate answers the live validation script with the JSON view.
func (h *handlers) serveValidate(w http.ResponseWriter, r *http.Request) {
	r, ok := h.prepare(w, r, http.MethodPost)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	var req validateRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		writeBodyError(w, err, true)
		return
	}

	snap := form.EvaluateWith(h.opts.Validator, req.Values)
	view := render.BuildView(h.model, snap, render.ViewOptions{
		Rules:    h.opts.Validator.Rules(),
		Pristine: req.Touched != nil && !req.Touched.Any(),
	})
	writeJSON(w, http.StatusOK, view)
}

// serveOpenAPI returns the document the form model is built from.
func (h *handlers) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	r, ok := h.prepare(w, r, http.MethodGet, http.MethodHead)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(h.document)
}

func postedValue(r *http.Request, field form.Field) string {
	if field == form.FieldFullName {
		if _, ok := r.PostForm[string(field)]; !ok {
			return r.PostForm.Get("full_name")
		}
	}
	return r.PostForm.Get(string(field))
}

func allowed(method string, methods []string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

func writeBodyError(w http.ResponseWriter, err error, asJSON bool) {
	code := http.StatusBadRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		code = http.StatusRequestEntityTooLarge
	}
	if asJSON {
		message := http.StatusText(code)
		if code == http.StatusBadRequest {
			message = fmt.Sprintf("invalid request body: %v", err)
		}
		writeJSON(w, code, errorResponse{Error: message})
		return
	}
	http.Error(w, http.StatusText(code), code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
