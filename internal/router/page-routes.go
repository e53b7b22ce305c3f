package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/ymoumine/RentalAI/internal/handler"
	"github.com/ymoumine/RentalAI/internal/middleware"
)

// SetupPageRoutes registers the HTML pages.
func SetupPageRoutes(mux *chi.Mux, pages *handler.PageHandler, listings *handler.ListingHandler,
	dashboard *handler.DashboardHandler, predictions *handler.PredictionHandler, limiter *middleware.IPRateLimiter) {
	mux.Get("/", pages.HandleRoot)
	mux.Get("/home", pages.HandleHome)
	mux.Get("/about", pages.HandleAbout)
	mux.Get("/healthz", pages.HandleHealth)

	mux.Get("/listings", listings.HandleListingsPage)
	mux.Get("/listings/property/{id}", listings.HandlePropertyPage)

	mux.Get("/dashboard", dashboard.HandleDashboardPage)
	mux.Get("/data", dashboard.HandleDataPage)

	mux.Get("/predictions", predictions.HandleForm)
	mux.With(limiter.Limit).Post("/predictions", predictions.HandleSubmit)

	mux.NotFound(pages.HandleNotFound)
}
