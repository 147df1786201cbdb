package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthcheck)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.register)
			r.Post("/login", app.login)
		})
		r.Route("/content", func(r chi.Router) {
			r.Get("/", app.listContent)
			r.Get("/{id}", app.getContent)
		})
		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Route("/watchlist", func(r chi.Router) {
				r.Post("/", app.addToWatchlist)
				r.Get("/", app.getWatchlist)
				r.Put("/{id}", app.updateWatchlistEntry)
				r.Delete("/{id}", app.removeWatchlistEntry)
			})
			r.Route("/progress", func(r chi.Router) {
				r.Get("/", app.continueWatching)
				r.Post("/", app.saveProgress)
				r.Get("/{contentId}", app.getProgress)
				r.Delete("/{contentId}", app.removeProgress)
			})
		})
	})
	return router
}
