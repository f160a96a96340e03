// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	sitetemplates "github.com/nirbhaysingh/portfolio/internal/services/site/templates"
)

// Page describes one full-page response.
type Page struct {
	Title       string
	Description string
	StatusCode  int
	Body        templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

var now = time.Now

// WritePage renders page inside the site layout. Nothing is written when
// rendering fails, so the caller can still send an error page.
func WritePage(w http.ResponseWriter, r *http.Request, site module.Site, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	layout := sitetemplates.Layout(sitetemplates.PageContext{
		SiteName:    site.Name,
		SiteURL:     site.URL,
		Title:       page.Title,
		Description: page.Description,
		CurrentPath: path,
		Year:        now().Year(),
	})

	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(httpx.RequestContext(r), body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
