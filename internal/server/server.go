package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/backyonatan-alt/launchboard/internal/clock"
	"github.com/backyonatan-alt/launchboard/internal/config"
	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/screen"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg       *config.Config
	screens   *screen.Registry
	countries *country.Registry
	clock     *clock.Clock
	gatherer  prometheus.Gatherer
}

func New(cfg *config.Config, screens *screen.Registry, countries *country.Registry, clk *clock.Clock, gatherer prometheus.Gatherer) *Server {
	return &Server{cfg: cfg, screens: screens, countries: countries, clock: clk, gatherer: gatherer}
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", s.handleCountries)
		r.Get("/countries/{name}/time", s.handleCountryTime)

		r.Post("/screens", s.handleMount)
		r.Route("/screens/{id}", func(r chi.Router) {
			r.Get("/", s.handleView)
			r.Delete("/", s.handleUnmount)
			r.Post("/dropdown", s.handleToggle)
			r.Delete("/dropdown", s.handleDismiss)
			r.Post("/selection", s.handleSelect)
		})
	})

	r.Get("/screens/{id}", s.handlePage)
	r.Handle("/assets/*", assetHandler(country.Images()))
	return r
}
