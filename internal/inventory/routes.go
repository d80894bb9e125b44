package inventory

import (
	"net/http"

	"github.com/CampAtlas/CA-Backend/internal/auth"
	"github.com/CampAtlas/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/catalog", ListCatalogHandler)
	r.Get("/stock", ListStockHandler)
	r.Get("/analytics", AnalyticsHandler)
	r.Get("/alerts", AlertsHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		// Catalog definitions are shared across camps, so only admins may
		// change them. Stock levels are regular per-area data.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Post("/catalog", CreateCatalogItemHandler)
			r.Patch("/catalog/{itemID}", UpdateCatalogItemHandler)
			r.Delete("/catalog/{itemID}", DeleteCatalogItemHandler)
		})

		r.Post("/stock", CreateStockHandler)
		r.Patch("/stock/{stockID}", UpdateStockHandler)
		r.Delete("/stock/{stockID}", DeleteStockHandler)
	})

	return r
}
