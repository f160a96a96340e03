package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	apperrors "github.com/nirbhaysingh/portfolio/internal/services/site/platform/errors"
)

func TestShouldRenderErrorPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusNotFound, true},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, true},
		{http.StatusGatewayTimeout, true},
	}
	for _, tc := range tests {
		if got := ShouldRenderErrorPage(tc.status); got != tc.want {
			t.Fatalf("ShouldRenderErrorPage(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestWriteModuleErrorRendersBrokenContentWithoutRetry(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := apperrors.Wrap(apperrors.KindMalformed, "content is broken", errors.New("unknown block kind: Carousel"))
	WriteModuleError(rr, httptest.NewRequest(http.MethodGet, "/blog/broken", nil), err, module.Site{Name: "Site"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	doc, parseErr := goquery.NewDocumentFromReader(rr.Body)
	if parseErr != nil {
		t.Fatalf("parse body: %v", parseErr)
	}
	if got := doc.Find("#error h1").Text(); got != "This content is broken" {
		t.Fatalf("heading = %q", got)
	}
	if doc.Find(".error-retry").Length() != 0 {
		t.Fatalf("broken content page suggests retrying")
	}
	if strings.Contains(doc.Text(), "Carousel") {
		t.Fatalf("internal error detail leaked into page")
	}
}

func TestWriteModuleErrorRendersRetryableUpstreamFailure(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteModuleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.E(apperrors.KindTimeout, "took too long"), module.Site{})
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusGatewayTimeout)
	}
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if doc.Find(".error-retry").Length() != 1 {
		t.Fatalf("expected retry hint")
	}
}

func TestWriteModuleErrorUsesPlainTextForClientErrors(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteModuleError(rr, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.E(apperrors.KindInvalidInput, "bad category"), module.Site{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "bad category" {
		t.Fatalf("body = %q, want %q", got, "bad category")
	}
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil), module.Site{Name: "Site"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("body missing not found heading")
	}
}

func TestPublicMessageFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(errors.New("db password leaked")); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q, want empty", got)
	}
}
