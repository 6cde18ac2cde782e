package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/schema"
)

func main() {
	var (
		schemaPath  = flag.String("schema", "", "OpenAPI document path (embedded document when empty)")
		presetPath  = flag.String("preset", "", "optional preset applied before the snapshot")
		operationID = flag.String("operation", schema.OperationRegister, "operation ID to snapshot")
		outputPath  = flag.String("output", "pkg/schema/testdata/register_form.json", "output path for the serialized form model")
	)
	flag.Parse()

	ctx := context.Background()

	var options []orchestrator.Option
	if *schemaPath != "" {
		raw, err := os.ReadFile(*schemaPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read schema: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithSchemaOptions(schema.WithDocument(raw)))
	}
	if *presetPath != "" {
		raw, err := os.ReadFile(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read preset: %v\n", err)
			os.Exit(1)
		}
		preset, err := orchestrator.NewPresetTransformer(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preset: %v\n", err)
			os.Exit(1)
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}

	fm, err := orchestrator.New(options...).Model(ctx, *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build form model: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(fm, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode form model: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("form model snapshot written to %s\n", *outputPath)
}
