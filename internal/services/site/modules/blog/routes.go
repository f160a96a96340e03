package blog

import (
	"net/http"

	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.Blog, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPostPattern, h.handlePost)
	mux.HandleFunc(routepath.BlogPrefix, h.handleNotFound)
}
