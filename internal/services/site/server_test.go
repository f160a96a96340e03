package site

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/blog/source"
	"github.com/nirbhaysingh/portfolio/internal/platform/telemetry/metrics"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
)

func newTestHandler(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	content := "---\ntitle: \"Hello\"\ndate: \"2025-02-01\"\ncategory: \"Tech\"\n---\n\nHello body.\n"
	if err := os.WriteFile(filepath.Join(dir, "hello.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}
	m := metrics.New()
	catalog := blog.NewCatalog(source.LocalDir{Dir: dir}, source.ExternalFile{Path: filepath.Join(dir, "missing.json")}, m.ContentReporter())
	var logs bytes.Buffer
	h, err := NewHandler(Config{
		Dependencies: module.Dependencies{
			Site:          module.Site{Name: "Site", URL: "https://example.com"},
			Posts:         catalog,
			RecordContact: m.ContactSend,
		},
		Metrics: m,
		Logger:  log.New(&logs, "", 0),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h, &logs
}

func TestNewHandlerRoutes(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	tests := []struct {
		name   string
		method string
		path   string
		status int
		marker string
	}{
		{name: "health", method: http.MethodGet, path: "/up", status: http.StatusOK, marker: "ok"},
		{name: "home", method: http.MethodGet, path: "/", status: http.StatusOK, marker: "Hello"},
		{name: "blog", method: http.MethodGet, path: "/blog", status: http.StatusOK, marker: "Hello"},
		{name: "post", method: http.MethodGet, path: "/blog/hello", status: http.StatusOK, marker: "Hello body."},
		{name: "service", method: http.MethodGet, path: "/services/consulting", status: http.StatusOK, marker: "Consulting"},
		{name: "static css", method: http.MethodGet, path: "/static/site.css", status: http.StatusOK, marker: ".site-header"},
		{name: "static js", method: http.MethodGet, path: "/static/site.js", status: http.StatusOK, marker: "contact-form"},
		{name: "unknown page", method: http.MethodGet, path: "/nowhere", status: http.StatusNotFound, marker: "Page not found"},
		{name: "contact not configured", method: http.MethodPost, path: "/api/send-email", status: http.StatusServiceUnavailable, marker: `"error"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			body := strings.NewReader(`{"name":"A","email":"a@example.com","subject":"s","message":"m"}`)
			req := httptest.NewRequest(tc.method, tc.path, body)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			if !strings.Contains(rr.Body.String(), tc.marker) {
				t.Fatalf("body missing %q", tc.marker)
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatalf("missing request id header")
			}
		})
	}
}

func TestNewHandlerExposesMetricsAndLogsRequests(t *testing.T) {
	t.Parallel()

	h, logs := newTestHandler(t)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blog", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(`{}`)))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
	for _, marker := range []string{
		"portfolio_http_request_duration_seconds",
		`portfolio_contact_sends_total{outcome="invalid"} 1`,
	} {
		if !strings.Contains(rr.Body.String(), marker) {
			t.Fatalf("metrics missing %q", marker)
		}
	}
	if !strings.Contains(logs.String(), "path=/blog") {
		t.Fatalf("request log missing /blog: %q", logs.String())
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{}); err == nil {
		t.Fatalf("expected missing address error")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer srv.Close()
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("Addr() = %q", srv.Addr())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}
