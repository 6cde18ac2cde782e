package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/orchestrator"
)

func main() {
	var (
		configPath = flag.String("config", "", "regform.yaml path (defaults when empty)")
		addr       = flag.String("addr", "", "listen address, overrides server.addr")
		presetPath = flag.String("preset", "", "YAML or JSON label/placeholder overrides")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := ctxlog.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)

	var preset orchestrator.Transformer
	if *presetPath != "" {
		p, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(*presetPath)), filepath.Base(*presetPath))
		if err != nil {
			log.Fatalf("preset: %v", err)
		}
		preset = p
	}

	srv, routes, err := newServer(cfg, logger, preset)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	logger.Info("listening", "addr", cfg.Server.Addr, "form", routes.Form, "validate", routes.Validate)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "grace", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
