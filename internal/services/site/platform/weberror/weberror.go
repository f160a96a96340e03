// Package weberror renders shared error responses for site modules.
package weberror

import (
	"errors"
	"log"
	"net/http"

	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	apperrors "github.com/nirbhaysingh/portfolio/internal/services/site/platform/errors"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/pagerender"
	sitetemplates "github.com/nirbhaysingh/portfolio/internal/services/site/templates"
)

// ShouldRenderErrorPage reports whether status should use the error page.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// View returns the visitor-facing copy for err.
func View(err error) sitetemplates.ErrorView {
	statusCode := apperrors.HTTPStatus(err)
	switch {
	case statusCode == http.StatusNotFound:
		return sitetemplates.ErrorView{
			Status:  statusCode,
			Heading: "Page not found",
			Message: "The page you are looking for does not exist or has moved.",
		}
	case apperrors.KindOf(err) == apperrors.KindMalformed:
		return sitetemplates.ErrorView{
			Status:  statusCode,
			Heading: "This content is broken",
			Message: "This page could not be displayed because its content is broken. It has been reported.",
		}
	default:
		if statusCode < http.StatusInternalServerError {
			statusCode = http.StatusInternalServerError
		}
		return sitetemplates.ErrorView{
			Status:  statusCode,
			Heading: "Something went wrong",
			Message: PublicMessage(err),
			Retry:   apperrors.Retryable(err),
		}
	}
}

// PublicMessage resolves a visitor-safe error message.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindUnknown && appErr.Message != "" {
		return appErr.Message
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteModuleError writes err as an error page or a plain-text response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, site module.Site) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("request failed method=%s path=%s status=%d request_id=%s err=%v", method(r), path(r), statusCode, httpx.RequestIDOf(r), err)
	}
	if !ShouldRenderErrorPage(statusCode) {
		http.Error(w, PublicMessage(err), statusCode)
		return
	}
	view := View(err)
	page := pagerender.Page{
		Title:      view.Heading,
		StatusCode: view.Status,
		Body:       sitetemplates.ErrorState(view),
	}
	if renderErr := pagerender.WritePage(w, r, site, page); renderErr != nil {
		log.Printf("render error page path=%s err=%v", path(r), renderErr)
		http.Error(w, view.Message, view.Status)
	}
}

// WriteNotFound writes the 404 page.
func WriteNotFound(w http.ResponseWriter, r *http.Request, site module.Site) {
	WriteModuleError(w, r, apperrors.E(apperrors.KindNotFound, "page not found"), site)
}

func method(r *http.Request) string {
	if r == nil {
		return "-"
	}
	return r.Method
}

func path(r *http.Request) string {
	if r == nil || r.URL == nil {
		return "-"
	}
	return r.URL.Path
}
