package contact

import (
	"net/http"

	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
	"github.com/nirbhaysingh/portfolio/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodPost+" "+routepath.SendEmail, h.handleSend)
	mux.Handle(routepath.SendEmail, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.APIPrefix, func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, "not found")
	})
}
