package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-regform/pkg/schema"
)

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nCheck OpenAPI documents meant to replace the embedded registration document.\nWith no paths the embedded document is checked.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	ctx := context.Background()
	paths := flag.Args()
	if len(paths) == 0 {
		os.Exit(report(ctx, os.Stderr, "embedded", schema.Raw()))
	}

	code := 0
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		if c := report(ctx, os.Stderr, path, raw); c != 0 {
			code = c
		}
	}
	os.Exit(code)
}

func report(ctx context.Context, w io.Writer, name string, raw []byte) int {
	violations, err := schema.Lint(ctx, raw)
	if err != nil {
		fmt.Fprintf(w, "lint %s: %v\n", name, err)
		return 1
	}
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s\n", name, v)
	}
	if len(violations) > 0 {
		return 1
	}
	return 0
}
