package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calcuttahandlers "github.com/fairway-club/scorekeeper/app/modules/calcutta/infrastructure/handlers"
	leaderboardhandlers "github.com/fairway-club/scorekeeper/app/modules/leaderboard/infrastructure/handlers"
	multidayhandlers "github.com/fairway-club/scorekeeper/app/modules/multiday/infrastructure/handlers"
	sidebethandlers "github.com/fairway-club/scorekeeper/app/modules/sidebet/infrastructure/handlers"
	"github.com/fairway-club/scorekeeper/app/shared/observability/attr"
)

// correlationID threads the request ID into the context so every service log
// line carries it.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := attr.WithCorrelationID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NewRouter assembles the API surface from the module handler sets.
func NewRouter(
	leaderboard *leaderboardhandlers.Handlers,
	sidebets *sidebethandlers.Handlers,
	events *multidayhandlers.Handlers,
	calcutta *calcuttahandlers.Handlers,
	registry *prometheus.Registry,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(correlationID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/tournaments", leaderboard.Routes())
		r.Mount("/sidebets", sidebets.Routes())
		r.Mount("/events", events.Routes())
		r.Mount("/calcutta", calcutta.Routes())
	})

	return r
}
