package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedResponse)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// Stored Documents
	router.Get("/v1/index", app.GetIndex)
	router.Get("/v1/dates", app.GetDates)
	router.Get("/v1/dates/{date}/games", app.GetDateGames)
	router.Get("/v1/scores/{date}", app.GetScores)

	// Derived Game Views
	router.Route("/v1/game/{id}", func(router chi.Router) {
		router.Get("/boxscore", app.GetBoxscore)
		router.Get("/gameflow", app.GetGameflow)
		router.Get("/lineups", app.GetLineups)
		router.Get("/timeline", app.GetTimeline)
	})

	// Pipeline Control
	router.Post("/v1/pipeline/run", app.RunPipeline)
	router.Get("/v1/pipeline/watch", app.WatchPipeline)

	return router
}
