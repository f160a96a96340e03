// Package blog serves the post listing and post detail pages.
package blog

import (
	"net/http"

	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
)

// Module serves /blog and /blog/{slug}.
type Module struct{}

// New returns a blog module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "blog" }

// Mount wires blog route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.BlogPrefix, Handler: mux}, nil
}
