package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLint_EmbeddedDocumentIsClean(t *testing.T) {
	violations, err := Lint(context.Background(), Raw())
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestLint_ReportsViolations(t *testing.T) {
	doc := string(Raw())
	doc = strings.Replace(doc, "x-formgen-order: [username, fullName, email, password]", "x-formgen-order: [username, ghost, username]", 1)
	doc = strings.Replace(doc, "input: email", "input: colour", 1)
	doc = strings.Replace(doc, "        password:\n", "        nickname:\n          type: string\n        password:\n", 1)

	violations, err := Lint(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	var got []string
	for _, v := range violations {
		got = append(got, v.String())
	}
	want := []string{
		`operation > register > requestBody > properties.email > x-formgen > input -> unsupported input type colour`,
		`operation > register > requestBody > properties.nickname -> field is not part of the registration form`,
		`operation > register > requestBody > x-formgen-order -> "ghost" is not a property`,
		`operation > register > requestBody > x-formgen-order -> "username" is listed twice`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_MissingOperation(t *testing.T) {
	doc := strings.Replace(string(Raw()), "operationId: register\n", "operationId: signup\n", 1)
	violations, err := Lint(context.Background(), []byte(doc))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 1 || violations[0].Message != "operation is missing" {
		t.Fatalf("expected missing operation violation, got %v", violations)
	}
}

func TestLint_BrokenDocument(t *testing.T) {
	if _, err := Lint(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected load error")
	}
}
