// Package module defines the feature contract used by site composition.
package module

import (
	"context"
	"net/http"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/contact"
	"github.com/nirbhaysingh/portfolio/internal/portfolio"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/ratelimit"
)

// Site identifies the deployment in page chrome and canonical links.
type Site struct {
	Name string
	URL  string
}

// PostCatalog is the blog read surface used by page modules.
type PostCatalog interface {
	All(ctx context.Context) (blog.Listing, error)
	Lookup(ctx context.Context, slug string) (blog.Post, error)
	Resolve(ctx context.Context, slug string) (blog.Resolution, error)
}

// ProjectSource lists portfolio projects.
type ProjectSource interface {
	List(ctx context.Context) ([]portfolio.Project, error)
}

// ContactRelay sends one contact message.
type ContactRelay interface {
	Send(ctx context.Context, msg contact.Message) (contact.Receipt, error)
}

// RecordOutcome counts one contact submission outcome.
type RecordOutcome func(outcome string)

// Dependencies carries the collaborators modules mount with. Nil members
// degrade to empty content or to a not-configured contact relay.
type Dependencies struct {
	Site           Site
	Posts          PostCatalog
	Problems       blog.Reporter
	Projects       ProjectSource
	Contact        ContactRelay
	ContactLimiter *ratelimit.Limiter
	RecordContact  RecordOutcome
	// TrustedProxies is the number of reverse proxies in front of the site
	// whose X-Forwarded-For entries identify clients.
	TrustedProxies int
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by site composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
