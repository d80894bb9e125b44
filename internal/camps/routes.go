package camps

import (
	"net/http"

	"github.com/CampAtlas/CA-Backend/internal/auth"
	"github.com/CampAtlas/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Get("/", ListCampsHandler)
	r.Get("/locate", LocateCampHandler)
	r.Get("/types", ListAreaTypesHandler)
	r.Get("/statuses", ListAreaStatusesHandler)
	r.Get("/{campID}", GetCampHandler)
	r.Get("/{campID}/areas", ListAreasHandler)
	r.Get("/areas/{areaID}/markers", ListMarkersHandler)
	r.Get("/areas/{areaID}/files", ListFilesHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/", CreateCampHandler)
		r.Patch("/{campID}", UpdateCampHandler)
		r.Put("/{campID}/boundary", UpdateBoundaryHandler)
		r.Delete("/{campID}", DeleteCampHandler)
		r.Post("/{campID}/areas", CreateAreaHandler)
		r.Put("/areas/{areaID}/shape", UpdateAreaShapeHandler)
		r.Patch("/areas/{areaID}", UpdateAreaHandler)
		r.Delete("/areas/{areaID}", DeleteAreaHandler)
		r.Post("/areas/{areaID}/markers", CreateMarkerHandler)
		r.Delete("/markers/{markerID}", DeleteMarkerHandler)
		r.Post("/areas/{areaID}/files", CreateFileHandler)
		r.Delete("/files/{fileID}", DeleteFileHandler)
	})

	return r
}
