package inventory

import (
	"log"

	"github.com/CampAtlas/CA-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "inventory"); err != nil {
		log.Fatal("Failed to create inventory schema: ", err)
	}

	if err := db.DB.AutoMigrate(&CatalogItem{}, &Stock{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	InitCache()
}
