// Package modules lists the site modules in mount order.
package modules

import (
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/modules/blog"
	"github.com/nirbhaysingh/portfolio/internal/services/site/modules/contact"
	"github.com/nirbhaysingh/portfolio/internal/services/site/modules/pages"
	"github.com/nirbhaysingh/portfolio/internal/services/site/modules/services"
)

// DefaultPageModules returns the browser-facing modules.
func DefaultPageModules() []module.Module {
	return []module.Module{
		pages.New(),
		services.New(),
		blog.New(),
	}
}

// DefaultAPIModules returns the JSON modules mounted under /api/.
func DefaultAPIModules() []module.Module {
	return []module.Module{
		contact.New(),
	}
}
