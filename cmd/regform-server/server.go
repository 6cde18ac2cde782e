package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/components/registration"
	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/orchestrator"
)

const runtimePath = "/runtime/"

// newServer mounts the registration component and the runtime assets under
// cfg.Server.BasePath.
func newServer(cfg config.Config, logger *slog.Logger, preset orchestrator.Transformer) (*http.Server, registration.Routes, error) {
	themeCfg, err := cfg.Theme.RendererConfig()
	if err != nil {
		return nil, registration.Routes{}, err
	}

	base := strings.TrimRight(cfg.Server.BasePath, "/")
	runtimeMount := base + runtimePath

	component := registration.New(
		registration.WithValidator(cfg.Validator()),
		registration.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		registration.WithScriptURL(runtimeMount+"regform-live.js"),
		registration.WithTheme(themeCfg),
		registration.WithLogger(logger),
		registration.WithTransformer(preset),
	)

	mux := http.NewServeMux()
	routes, err := component.RegisterRoutes(mux, cfg.Server.BasePath)
	if err != nil {
		return nil, registration.Routes{}, err
	}
	mux.Handle(runtimeMount, http.StripPrefix(runtimeMount, http.FileServerFS(regform.RuntimeAssetsFS())))
	mux.Handle(base+"/{$}", http.RedirectHandler(routes.Form, http.StatusFound))

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      logRequests(logger, mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return srv, routes, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// logRequests attaches logger to the request context and logs one line per
// request.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		r = r.WithContext(ctxlog.WithLogger(r.Context(), logger))

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
