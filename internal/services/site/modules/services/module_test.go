package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
)

func TestServicePages(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{Site: module.Site{Name: "Site"}})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/services/" {
		t.Fatalf("prefix = %q", mount.Prefix)
	}

	tests := []struct {
		path    string
		status  int
		heading string
	}{
		{path: "/services/web-development", status: http.StatusOK, heading: "Web Development"},
		{path: "/services/ui-ux-design", status: http.StatusOK, heading: "UI/UX Design"},
		{path: "/services/consulting", status: http.StatusOK, heading: "Consulting"},
		{path: "/services/space-travel", status: http.StatusNotFound, heading: "Page not found"},
		{path: "/services/", status: http.StatusNotFound, heading: "Page not found"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d", rr.Code, tc.status)
			}
			doc, err := goquery.NewDocumentFromReader(rr.Body)
			if err != nil {
				t.Fatalf("parse body: %v", err)
			}
			if got := doc.Find("main h1").First().Text(); got != tc.heading {
				t.Fatalf("heading = %q, want %q", got, tc.heading)
			}
		})
	}
}

func TestOfferingsReturnsCopy(t *testing.T) {
	t.Parallel()

	got := Offerings()
	if len(got) != 5 {
		t.Fatalf("len(Offerings()) = %d, want 5", len(got))
	}
	got[0].Name = "changed"
	if s, _ := Lookup("web-development"); s.Name != "Web Development" {
		t.Fatalf("Offerings() shares backing array")
	}
}
