package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/nirbhaysingh/portfolio/internal/blog"
)

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestPageTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		page PageContext
		want string
	}{
		{name: "title and site", page: PageContext{Title: "Blog", SiteName: "Nirbhay"}, want: "Blog | Nirbhay"},
		{name: "site only", page: PageContext{SiteName: "Nirbhay"}, want: "Nirbhay"},
		{name: "title only", page: PageContext{Title: "Blog"}, want: "Blog"},
		{name: "same", page: PageContext{Title: "Nirbhay", SiteName: "Nirbhay"}, want: "Nirbhay"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := pageTitle(tc.page); got != tc.want {
				t.Fatalf("pageTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDates(t *testing.T) {
	t.Parallel()

	if got := displayDate("2025-01-10"); got != "January 10, 2025" {
		t.Fatalf("displayDate() = %q", got)
	}
	if got := displayDate("someday"); got != "someday" {
		t.Fatalf("displayDate(unparsed) = %q, want raw value", got)
	}
	if got := isoDate("Jan 2, 2024"); got != "2024-01-02" {
		t.Fatalf("isoDate() = %q", got)
	}
	if got := isoDate("someday"); got != "" {
		t.Fatalf("isoDate(unparsed) = %q, want empty", got)
	}
}

func TestNavItemsMarksSection(t *testing.T) {
	t.Parallel()

	for _, item := range navItems("/blog/go-services") {
		if item.Active != (item.Href == "/blog") {
			t.Fatalf("item %q active = %v", item.Href, item.Active)
		}
	}
}

func TestBlogListMarksExternalPosts(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, BlogList(BlogListView{
		Posts: []blog.Post{
			{Slug: "local", Title: "Local"},
			{Slug: "away", Title: "Away", IsExternal: true, ExternalURL: "https://dev.to/x"},
		},
		Categories: []string{"Tech"},
		Category:   "Tech",
	}))
	if got := doc.Find(".post-card-title").Length(); got != 2 {
		t.Fatalf("post cards = %d, want 2", got)
	}
	if got := doc.Find(".badge-external").Length(); got != 1 {
		t.Fatalf("external badges = %d, want 1", got)
	}
	if got := doc.Find(".category-filter a.active").Text(); got != "Tech" {
		t.Fatalf("active chip = %q, want Tech", got)
	}
}

func TestBlogListEmptyState(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, BlogList(BlogListView{Query: "nothing"}))
	if doc.Find(".empty-state").Length() != 1 {
		t.Fatalf("missing empty state")
	}
	if got, _ := doc.Find(`input[name="q"]`).Attr("value"); got != "nothing" {
		t.Fatalf("query value = %q", got)
	}
}
