// Package blog models posts and the aggregation, lookup, and filtering rules
// shared by the blog pages.
package blog

import (
	"regexp"
	"strings"
	"time"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "All"

// Author identifies who wrote a post.
type Author struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Image string `json:"image" yaml:"image" toml:"image"`
}

// Post is one blog entry, either authored locally or linked from elsewhere.
type Post struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Content     string   `json:"-"`
	Author      Author   `json:"author"`
	IsExternal  bool     `json:"isExternal"`
	ExternalURL string   `json:"externalUrl,omitempty"`
}

// Time parses Date for ordering. The zero time means the date is missing or
// not in a recognised layout.
func (p Post) Time() time.Time {
	return ParseDate(p.Date)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ParseDate parses a post date string using the layouts authors write.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// ValidSlug reports whether slug is safe to use as a single URL path segment
// and as a file name.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// Listing is the merged result of every content source.
type Listing struct {
	Posts []Post
	// ExternalUnavailable is set when the external posts file exists but
	// could not be read.
	ExternalUnavailable bool
}

// Resolution is the outcome of resolving a slug across both sources. Exactly
// one of Post or Redirect is meaningful.
type Resolution struct {
	Post     Post
	Redirect string
}

// IsRedirect reports whether the slug belongs to an external post.
func (r Resolution) IsRedirect() bool {
	return r.Redirect != ""
}
