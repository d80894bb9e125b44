package camps

import (
	"log"

	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/CampAtlas/CA-Backend/internal/spatial"
	zlog "github.com/rs/zerolog/log"
)

// campIndex backs /camps/locate. Rebuilt whenever a boundary changes.
var campIndex = spatial.NewIndex()

func Init() {
	if err := db.EnsureSchema(db.DB, "camps"); err != nil {
		log.Fatal("Failed to create camps schema: ", err)
	}

	if err := db.DB.AutoMigrate(&Camp{}, &Area{}, &Marker{}, &AreaFile{}, &AreaType{}, &AreaStatus{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	RefreshIndex()
}

// RefreshIndex reloads every camp boundary into the spatial index. The full
// rebuild is cheap at the camp counts this app sees and keeps the index
// trivially consistent with the table.
func RefreshIndex() {
	var camps []Camp
	if err := db.DB.Select("id", "name", "boundary").Find(&camps).Error; err != nil {
		zlog.Error().Err(err).Msg("Failed to refresh camp spatial index")
		return
	}

	refs := make([]spatial.CampRef, 0, len(camps))
	for _, c := range camps {
		refs = append(refs, spatial.CampRef{
			ID:       c.ID,
			Name:     c.Name,
			Boundary: c.Boundary.Polygon(),
		})
	}
	campIndex.Rebuild(refs)
	zlog.Debug().Int("camps", len(refs)).Msg("Camp spatial index rebuilt")
}
