package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/tendant/tv-content/pkg/tvcontent"
)

// DefaultBanner is served at the root when RouterConfig.Banner is empty
const DefaultBanner = "I&Co TV Content Management"

// RouterConfig controls the top-level router
type RouterConfig struct {
	Banner      string
	Development bool
}

// NewRouter wires the content routes, the banner, CORS and the error pages
func NewRouter(service tvcontent.Service, cfg RouterConfig) chi.Router {
	if cfg.Banner == "" {
		cfg.Banner = DefaultBanner
	}
	pages := NewErrorPages(cfg.Development)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(AllowAllOrigins)
	r.Use(pages.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Set before mounting so the content subrouter inherits them
	r.NotFound(pages.NotFound)
	r.MethodNotAllowed(pages.NotFound)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, cfg.Banner)
	})

	r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.PlainText(w, r, http.StatusText(http.StatusNotFound))
	})

	r.Mount("/api/contents", NewContentHandler(service, pages).Routes())

	return r
}
