package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/config"
)

func testServer(t *testing.T, cfg config.Config) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	srv, _, err := newServer(cfg, logger, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Handler, &logs
}

func TestServer_MountsUnderBasePath(t *testing.T) {
	cfg := config.Default()
	cfg.Server.BasePath = "/accounts"
	h, logs := testServer(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/accounts/register", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`action="/accounts/register"`,
		`data-validate-url="/accounts/register/validate"`,
		`<script src="/accounts/runtime/regform-live.js" defer></script>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
	if !strings.Contains(logs.String(), "path=/accounts/register") || !strings.Contains(logs.String(), "status=200") {
		t.Fatalf("expected request log line, got %q", logs.String())
	}
}

func TestServer_ServesRuntimeScript(t *testing.T) {
	h, _ := testServer(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/runtime/regform-live.js", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "data-validate-url") {
		t.Fatalf("unexpected script body")
	}
}

func TestServer_RootRedirectsToForm(t *testing.T) {
	h, _ := testServer(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/register" {
		t.Fatalf("expected redirect to /register, got %q", loc)
	}
}

func TestServer_SubmitLogsAccount(t *testing.T) {
	h, logs := testServer(t, config.Default())

	values := url.Values{
		"username": {"jdoe"},
		"fullName": {"John Doe"},
		"email":    {"john@x.com"},
		"password": {"password1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	out := logs.String()
	if !strings.Contains(out, "account created") || !strings.Contains(out, "record.username=jdoe") {
		t.Fatalf("expected account log line, got %q", out)
	}
	if strings.Contains(out, "password1") {
		t.Fatalf("password must never be logged")
	}
}

func TestServer_RejectsBrokenTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.Variant = "sepia"
	if _, _, err := newServer(cfg, slog.Default(), nil); err == nil {
		t.Fatalf("expected theme error")
	}
}
