package pages

import (
	"log"
	"net/http"
	"strings"

	"github.com/nirbhaysingh/portfolio/internal/blog"
	"github.com/nirbhaysingh/portfolio/internal/portfolio"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/modules/services"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/pagerender"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/weberror"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
	sitetemplates "github.com/nirbhaysingh/portfolio/internal/services/site/templates"
)

const (
	homeLatestPosts      = 3
	homeFeaturedProjects = 3
)

var aboutView = sitetemplates.AboutView{
	Paragraphs: []string{
		"I am a full-stack developer who enjoys turning rough ideas into fast, well-crafted products.",
		"Most of my work spans Go and TypeScript services, React frontends, and the infrastructure that keeps them running.",
		"When I am not building, I write about what I learn on the blog.",
	},
	Skills: []string{"Go", "TypeScript", "React", "Next.js", "PostgreSQL", "Docker", "Kubernetes", "UI/UX"},
}

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	view := sitetemplates.HomeView{
		Headline: "Hi, I build things for the web.",
		Lead:     "Full-stack developer crafting fast, accessible products from backend to pixel.",
		Services: services.Offerings(),
	}
	if h.deps.Posts != nil {
		listing, err := h.deps.Posts.All(ctx)
		if err != nil {
			log.Printf("home: list posts request_id=%s err=%v", httpx.RequestIDOf(r), err)
		} else {
			view.Posts = blog.Latest(listing.Posts, homeLatestPosts)
		}
	}
	if projects, ok := h.projects(r); ok {
		view.Projects = portfolio.Featured(projects, homeFeaturedProjects)
	}
	h.write(w, r, pagerender.Page{Title: "Home", Body: sitetemplates.Home(view)})
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, pagerender.Page{
		Title:       "About",
		Description: "About " + h.deps.Site.Name,
		Body:        sitetemplates.About(aboutView),
	})
}

func (h handlers) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	active := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(routepath.CategoryKey)))
	if active == "" {
		active = portfolio.AllCategories
	}
	projects, _ := h.projects(r)
	h.write(w, r, pagerender.Page{
		Title:       "Portfolio",
		Description: "Selected projects",
		Body: sitetemplates.Portfolio(sitetemplates.PortfolioView{
			Projects:   portfolio.Filter(projects, active),
			Categories: portfolio.Categories(projects),
			Active:     active,
		}),
	})
}

func (h handlers) handleContact(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, pagerender.Page{
		Title:       "Contact",
		Description: "Get in touch",
		Body:        sitetemplates.Contact(sitetemplates.ContactView{Action: routepath.SendEmail}),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps.Site)
}

func (h handlers) projects(r *http.Request) ([]portfolio.Project, bool) {
	if h.deps.Projects == nil {
		return nil, false
	}
	projects, err := h.deps.Projects.List(httpx.RequestContext(r))
	if err != nil {
		log.Printf("list projects request_id=%s err=%v", httpx.RequestIDOf(r), err)
		return nil, false
	}
	return projects, true
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePage(w, r, h.deps.Site, page); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps.Site)
	}
}
