// Package contact serves the JSON endpoint behind the contact form.
package contact

import (
	"net/http"

	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
)

// Module serves POST /api/send-email.
type Module struct{}

// New returns a contact module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "contact" }

// Mount wires contact route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}
