package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/CampAtlas/CA-Backend/internal/auth"
	"github.com/CampAtlas/CA-Backend/internal/camps"
	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/CampAtlas/CA-Backend/internal/inventory"
	"github.com/CampAtlas/CA-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	camps.Init()
	inventory.Init()

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RateLimitMiddleware(20, 40))
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/camps", camps.SetupRoutes())
	r.Mount("/inventory", inventory.SetupRoutes())

	log.Info().Str("port", port).Msg("Server listening")

	if err := http.ListenAndServe("0.0.0.0:"+port, r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
