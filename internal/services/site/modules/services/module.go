// Package services serves the coming-soon pages for each offered service.
package services

import (
	"net/http"

	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/pagerender"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/weberror"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
	sitetemplates "github.com/nirbhaysingh/portfolio/internal/services/site/templates"
)

var offerings = []sitetemplates.Service{
	{Slug: "web-development", Name: "Web Development", Summary: "Fast, accessible websites built end to end."},
	{Slug: "frontend-development", Name: "Frontend Development", Summary: "Responsive interfaces with modern frameworks."},
	{Slug: "backend-development", Name: "Backend Development", Summary: "APIs, data models and services that scale."},
	{Slug: "ui-ux-design", Name: "UI/UX Design", Summary: "Interfaces designed around the people who use them."},
	{Slug: "consulting", Name: "Consulting", Summary: "Architecture reviews and technical guidance."},
}

// Offerings returns the services in display order.
func Offerings() []sitetemplates.Service {
	return append([]sitetemplates.Service(nil), offerings...)
}

// Lookup finds a service by slug.
func Lookup(slug string) (sitetemplates.Service, bool) {
	for _, s := range offerings {
		if s.Slug == slug {
			return s, true
		}
	}
	return sitetemplates.Service{}, false
}

// Module serves /services/{service}.
type Module struct{}

// New returns a services module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "services" }

// Mount wires service route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	site := deps.Site
	mux.HandleFunc(http.MethodGet+" "+routepath.ServicePattern, func(w http.ResponseWriter, r *http.Request) {
		service, ok := Lookup(r.PathValue("service"))
		if !ok {
			weberror.WriteNotFound(w, r, site)
			return
		}
		page := pagerender.Page{
			Title:       service.Name,
			Description: service.Summary,
			Body:        sitetemplates.ServicePage(service),
		}
		if err := pagerender.WritePage(w, r, site, page); err != nil {
			weberror.WriteModuleError(w, r, err, site)
		}
	})
	mux.HandleFunc(routepath.ServicesPrefix, func(w http.ResponseWriter, r *http.Request) {
		weberror.WriteNotFound(w, r, site)
	})
	return module.Mount{Prefix: routepath.ServicesPrefix, Handler: mux}, nil
}
