// Package templates renders the site's pages from embedded html/template
// files wrapped as templ components.
package templates

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/portfolio"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed *.gohtml
var files embed.FS

var pages = template.Must(template.New("site").Funcs(template.FuncMap{
	"pageTitle":    pageTitle,
	"canonical":    canonical,
	"navItems":     navItems,
	"label":        label,
	"displayDate":  displayDate,
	"isoDate":      isoDate,
	"postURL":      routepath.BlogPost,
	"searchURL":    routepath.BlogSearch,
	"portfolioURL": routepath.PortfolioCategory,
	"serviceURL":   routepath.Service,
}).ParseFS(files, "*.gohtml"))

// PageContext carries the layout state shared by every page.
type PageContext struct {
	SiteName    string
	SiteURL     string
	Title       string
	Description string
	CurrentPath string
	Year        int
}

// NavItem is one primary navigation link.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var primaryNav = []NavItem{
	{Label: "Home", Href: routepath.Root},
	{Label: "About", Href: routepath.About},
	{Label: "Portfolio", Href: routepath.Portfolio},
	{Label: "Blog", Href: routepath.Blog},
	{Label: "Contact", Href: routepath.Contact},
}

func navItems(currentPath string) []NavItem {
	items := make([]NavItem, len(primaryNav))
	for i, item := range primaryNav {
		item.Active = currentPath == item.Href ||
			(item.Href != routepath.Root && strings.HasPrefix(currentPath, item.Href+"/"))
		items[i] = item
	}
	return items
}

func pageTitle(page PageContext) string {
	title := strings.TrimSpace(page.Title)
	name := strings.TrimSpace(page.SiteName)
	switch {
	case title == "":
		return name
	case name == "" || title == name:
		return title
	default:
		return title + " | " + name
	}
}

func canonical(page PageContext) string {
	base := strings.TrimRight(strings.TrimSpace(page.SiteURL), "/")
	if base == "" {
		return ""
	}
	return base + page.CurrentPath
}

// label title-cases a category slug. Casers hold state, so one is built per
// call.
func label(value string) string {
	return cases.Title(language.English).String(value)
}

func displayDate(value string) string {
	t := blog.ParseDate(value)
	if t.IsZero() {
		return strings.TrimSpace(value)
	}
	return t.Format("January 2, 2006")
}

func isoDate(value string) string {
	t := blog.ParseDate(value)
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// Layout wraps the children in the ctx with the site shell.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pages.ExecuteTemplate(w, "layout_open", page); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		return pages.ExecuteTemplate(w, "layout_close", page)
	})
}

// Service is one offering advertised on the home page.
type Service struct {
	Slug    string
	Name    string
	Summary string
}

// HomeView is the landing page.
type HomeView struct {
	Headline string
	Lead     string
	Services []Service
	Projects []portfolio.Project
	Posts    []blog.Post
}

// Home renders the landing page body.
func Home(view HomeView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("home"), view)
}

// AboutView is the about page.
type AboutView struct {
	Paragraphs []string
	Skills     []string
}

// About renders the about page body.
func About(view AboutView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("about"), view)
}

// PortfolioView lists projects in the active category.
type PortfolioView struct {
	Projects   []portfolio.Project
	Categories []string
	Active     string
}

// Portfolio renders the portfolio page body.
func Portfolio(view PortfolioView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("portfolio"), view)
}

// ContactView is the contact form.
type ContactView struct {
	Action string
}

// Contact renders the contact form.
func Contact(view ContactView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("contact"), view)
}

// ServicePage renders a coming-soon page for one service.
func ServicePage(service Service) templ.Component {
	return templ.FromGoHTML(pages.Lookup("service"), service)
}

// BlogListView is the searchable post listing.
type BlogListView struct {
	Posts               []blog.Post
	Categories          []string
	Query               string
	Category            string
	ExternalUnavailable bool
}

// BlogList renders the post listing.
func BlogList(view BlogListView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("blog_list"), view)
}

// BlogPost renders a post header, the rendered body and the tag footer.
func BlogPost(post blog.Post, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pages.ExecuteTemplate(w, "post_open", post); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		return pages.ExecuteTemplate(w, "post_close", post)
	})
}

// ErrorView describes an error page.
type ErrorView struct {
	Status  int
	Heading string
	Message string
	Retry   bool
}

// ErrorState renders the body of an error page.
func ErrorState(view ErrorView) templ.Component {
	return templ.FromGoHTML(pages.Lookup("error"), view)
}
