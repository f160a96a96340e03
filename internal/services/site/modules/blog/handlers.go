package blog

import (
	"errors"
	"net/http"
	"strings"

	domain "github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/blog/render"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	apperrors "github.com/nirbhaysingh/portfolio/internal/services/site/platform/errors"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/pagerender"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/weberror"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
	sitetemplates "github.com/nirbhaysingh/portfolio/internal/services/site/templates"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get(routepath.QueryKey))
	category := strings.TrimSpace(r.URL.Query().Get(routepath.CategoryKey))
	if category == "" {
		category = domain.AllCategories
	}

	var listing domain.Listing
	if h.deps.Posts != nil {
		var err error
		listing, err = h.deps.Posts.All(httpx.RequestContext(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	view := sitetemplates.BlogListView{
		Posts:               domain.Filter(listing.Posts, query, category),
		Categories:          domain.Categories(listing.Posts),
		Query:               query,
		Category:            category,
		ExternalUnavailable: listing.ExternalUnavailable,
	}
	h.write(w, r, pagerender.Page{
		Title:       "Blog",
		Description: "Articles and notes",
		Body:        sitetemplates.BlogList(view),
	})
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if h.deps.Posts == nil {
		h.handleNotFound(w, r)
		return
	}
	resolution, err := h.deps.Posts.Resolve(httpx.RequestContext(r), slug)
	if err != nil {
		h.reportBroken(r, domain.Post{Slug: slug}, err)
		h.writeError(w, r, err)
		return
	}
	if resolution.IsRedirect() {
		httpx.WriteRedirect(w, r, resolution.Redirect)
		return
	}

	post := resolution.Post
	doc, err := render.Parse([]byte(post.Content))
	if err != nil {
		h.reportBroken(r, post, err)
		h.writeError(w, r, err)
		return
	}
	opts := render.Options{SiteURL: h.deps.Site.URL}
	err = pagerender.WritePage(w, r, h.deps.Site, pagerender.Page{
		Title:       post.Title,
		Description: post.Excerpt,
		Body:        sitetemplates.BlogPost(post, doc.Component(opts)),
	})
	if err != nil {
		h.reportBroken(r, post, err)
		h.writeError(w, r, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps.Site)
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, h.deps.Site, page); err != nil {
		h.writeError(w, r, err)
	}
}

func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, classify(err), h.deps.Site)
}

func (h handlers) reportBroken(r *http.Request, post domain.Post, err error) {
	if h.deps.Problems == nil || !isBrokenContent(err) {
		return
	}
	h.deps.Problems.Report(httpx.RequestContext(r), domain.Problem{
		Kind:   domain.ProblemUnrenderable,
		Source: routepath.BlogPost(post.Slug),
		Slug:   post.Slug,
		Err:    err,
	})
}

// classify maps content errors onto site error kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperrors.Wrap(apperrors.KindNotFound, "post not found", err)
	case isBrokenContent(err):
		return apperrors.Wrap(apperrors.KindMalformed, "this content is broken", err)
	default:
		return err
	}
}

func isBrokenContent(err error) bool {
	var unknown *render.UnknownBlockError
	var syntax *render.SyntaxError
	return domain.IsMalformed(err) || errors.As(err, &unknown) || errors.As(err, &syntax)
}
