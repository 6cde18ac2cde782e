package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goliatone/go-regform/internal/ctxlog"
	"github.com/goliatone/go-regform/pkg/config"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	modeTUI  = "tui"
	modeHTML = "html"
)

type cliOptions struct {
	mode       string
	format     string
	output     string
	configPath string
	presetPath string
	variant    string
	fragment   bool
	script     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("regform-cli: %v", err)
	}

	err = run(ctx, opts, nil, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, tui.ErrAborted):
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	case errors.Is(err, tui.ErrDeclined):
		fmt.Fprintln(os.Stderr, "registration cancelled")
		os.Exit(1)
	default:
		log.Fatalf("regform-cli: %v", err)
	}
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("regform-cli", flag.ContinueOnError)
	fs.StringVar(&opts.mode, "mode", modeTUI, "tui to register interactively, html to export the form page")
	fs.StringVar(&opts.format, "format", string(tui.OutputFormatJSON), "record format for tui mode: json, form or pretty")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.StringVar(&opts.configPath, "config", "", "regform.yaml path (defaults when empty)")
	fs.StringVar(&opts.presetPath, "preset", "", "YAML or JSON label/placeholder overrides")
	fs.StringVar(&opts.variant, "variant", "", "theme variant for html mode")
	fs.BoolVar(&opts.fragment, "fragment", false, "html mode: emit only the <form> element")
	fs.StringVar(&opts.script, "script", "", "html mode: URL of the live validation script")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nRegister an account in the terminal or export the registration form as HTML.\n\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if opts.mode != modeTUI && opts.mode != modeHTML {
		return cliOptions{}, fmt.Errorf("unknown mode %q", opts.mode)
	}
	return opts, nil
}

// run executes one CLI invocation. driver replaces the survey prompts when
// non-nil.
func run(ctx context.Context, opts cliOptions, driver tui.PromptDriver, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger := ctxlog.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	ctx = ctxlog.WithLogger(ctx, logger)

	validator := cfg.Validator()
	registry, err := buildRegistry(validator, opts, driver)
	if err != nil {
		return err
	}
	selector, err := cfg.Theme.Selector()
	if err != nil {
		return err
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithValidator(validator),
		orchestrator.WithThemeSelector(selector),
	}
	if opts.presetPath != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(opts.presetPath)), filepath.Base(opts.presetPath))
		if err != nil {
			return err
		}
		orchOpts = append(orchOpts, orchestrator.WithSchemaTransformer(preset))
	}
	gen := orchestrator.New(orchOpts...)

	rendererName := "vanilla"
	if opts.mode == modeTUI {
		rendererName = "tui"
	}

	out, err := gen.Generate(ctx, orchestrator.Request{
		Renderer:     rendererName,
		Pristine:     true,
		ThemeVariant: opts.variant,
	})
	if err != nil {
		return err
	}
	return writeOutput(opts.output, out, stdout)
}

func buildRegistry(validator *validation.Validator, opts cliOptions, driver tui.PromptDriver) (*render.Registry, error) {
	html, err := vanilla.New(vanillaOptions(opts)...)
	if err != nil {
		return nil, err
	}

	format, ok := tui.ParseOutputFormat(opts.format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	tuiOpts := []tui.Option{
		tui.WithOutputFormat(format),
		tui.WithValidator(validator),
	}
	if driver != nil {
		tuiOpts = append(tuiOpts, tui.WithPromptDriver(driver))
	}
	terminal, err := tui.New(tuiOpts...)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(terminal); err != nil {
		return nil, err
	}
	return registry, nil
}

func vanillaOptions(opts cliOptions) []vanilla.Option {
	var out []vanilla.Option
	if opts.fragment {
		out = append(out, vanilla.AsFragment())
	}
	if opts.script != "" {
		out = append(out, vanilla.WithScript(opts.script))
	}
	return out
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", path)
	return nil
}
