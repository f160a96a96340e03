// Package routepath stores canonical HTTP paths for the site modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root            = "/"
	About           = "/about"
	Portfolio       = "/portfolio"
	Contact         = "/contact"
	Health          = "/up"
	Metrics         = "/metrics"
	StaticPrefix    = "/static/"
	Blog            = "/blog"
	BlogPrefix      = "/blog/"
	BlogPostPattern = BlogPrefix + "{slug}"
	ServicesPrefix  = "/services/"
	ServicePattern  = ServicesPrefix + "{service}"
	APIPrefix       = "/api/"
	SendEmail       = APIPrefix + "send-email"
)

// Query parameter keys shared by listing pages.
const (
	QueryKey    = "q"
	CategoryKey = "category"
)

// BlogPost returns the detail route for a post slug.
func BlogPost(slug string) string {
	return BlogPrefix + escapeSegment(slug)
}

// BlogSearch returns the listing route carrying query and category. Empty
// values and the "All" category are left out so the default listing keeps
// its bare path.
func BlogSearch(query, category string) string {
	values := url.Values{}
	if q := strings.TrimSpace(query); q != "" {
		values.Set(QueryKey, q)
	}
	if c := strings.TrimSpace(category); c != "" && c != "All" {
		values.Set(CategoryKey, c)
	}
	if len(values) == 0 {
		return Blog
	}
	return Blog + "?" + values.Encode()
}

// PortfolioCategory returns the portfolio route filtered by category.
func PortfolioCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || category == "all" {
		return Portfolio
	}
	return Portfolio + "?" + url.Values{CategoryKey: {category}}.Encode()
}

// Service returns the route for a service page.
func Service(slug string) string {
	return ServicesPrefix + escapeSegment(slug)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
