package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/ymoumine/RentalAI/internal/handler"
	"github.com/ymoumine/RentalAI/internal/middleware"
)

// SetupAPIRoutes registers the JSON endpoints under /api.
func SetupAPIRoutes(mux *chi.Mux, listings *handler.ListingHandler, dashboard *handler.DashboardHandler,
	predictions *handler.PredictionHandler, limiter *middleware.IPRateLimiter) {
	mux.Route("/api", func(r chi.Router) {
		r.Get("/listings", listings.HandleListAPI)
		r.Get("/listings/{id}", listings.HandleGetAPI)
		r.Get("/dashboard", dashboard.HandleDashboardAPI)
		r.With(limiter.Limit).Post("/predictions", predictions.HandlePredictAPI)
	})
}
