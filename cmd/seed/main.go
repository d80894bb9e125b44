package main

import (
	"log"

	"github.com/CampAtlas/CA-Backend/internal/auth"
	"github.com/CampAtlas/CA-Backend/internal/camps"
	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/CampAtlas/CA-Backend/internal/inventory"
	"github.com/CampAtlas/CA-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	camps.Init()
	inventory.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
