package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/schema"
)

func TestReport_EmbeddedDocumentIsClean(t *testing.T) {
	var out bytes.Buffer
	if code := report(context.Background(), &out, "embedded", schema.Raw()); code != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", code, out.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestReport_PrintsViolations(t *testing.T) {
	raw := strings.Replace(string(schema.Raw()), "operationId: register\n", "operationId: signup\n", 1)
	if raw == string(schema.Raw()) {
		t.Fatalf("fixture did not rename the register operation")
	}

	var out bytes.Buffer
	if code := report(context.Background(), &out, "custom.yaml", []byte(raw)); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if want := "custom.yaml: operation > register -> operation is missing"; !strings.Contains(out.String(), want) {
		t.Fatalf("expected %q in output, got %q", want, out.String())
	}
}

func TestReport_BrokenDocument(t *testing.T) {
	var out bytes.Buffer
	if code := report(context.Background(), &out, "broken.yaml", []byte("openapi: [")); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(out.String(), "lint broken.yaml: ") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
