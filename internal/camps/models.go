package camps

import (
	"time"

	"github.com/google/uuid"
)

// ShapeKind distinguishes the two area geometries the map editor can draw.
type ShapeKind string

const (
	ShapePolygon   ShapeKind = "polygon"
	ShapeRectangle ShapeKind = "rectangle"
)

// Camp is a top-level boundary polygon owning a set of child areas.
// Deleting a camp cascades to its areas, their markers, files and stock.
type Camp struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `gorm:"index" json:"owner_id"`
	Boundary    PointList `gorm:"type:jsonb" json:"boundary"`
	Areas       []Area    `gorm:"foreignKey:CampID" json:"areas,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Area is a child shape nested inside a camp. Its geometry is only ever
// persisted after passing containment validation against the owning camp's
// boundary, so the stored row is always the last committed geometry.
type Area struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CampID    uuid.UUID  `gorm:"type:uuid;index" json:"camp_id"`
	Name      string     `gorm:"not null" json:"name"`
	Kind      ShapeKind  `gorm:"size:20" json:"kind"`
	Points    PointList  `gorm:"type:jsonb" json:"points,omitempty"`
	Bounds    *RectShape `gorm:"type:jsonb" json:"bounds,omitempty"`
	Rotation  float64    `json:"rotation"`
	TypeKey   string     `gorm:"size:50" json:"type_key"`
	StatusKey string     `gorm:"size:50" json:"status_key"`
	Markers   []Marker   `gorm:"foreignKey:AreaID" json:"markers,omitempty"`
	Files     []AreaFile `gorm:"foreignKey:AreaID" json:"files,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Marker is a labeled point pinned inside an area's camp.
type Marker struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AreaID    uuid.UUID  `gorm:"type:uuid;index" json:"area_id"`
	Label     string     `json:"label"`
	Position  PointValue `gorm:"type:jsonb" json:"position"`
	CreatedAt time.Time  `json:"created_at"`
}

// AreaFile is the metadata record for a file attached to an area. The blob
// itself lives in external storage; only the reference is kept here.
type AreaFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AreaID      uuid.UUID `gorm:"type:uuid;index" json:"area_id"`
	FileName    string    `gorm:"not null" json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageURL  string    `json:"storage_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// AreaType and AreaStatus are seeded lookup tables the client uses to tag areas.
type AreaType struct {
	Key   string `gorm:"primaryKey;size:50" json:"key"`
	Label string `json:"label"`
}

type AreaStatus struct {
	Key   string `gorm:"primaryKey;size:50" json:"key"`
	Label string `json:"label"`
}

func (Camp) TableName() string       { return "camps.camps" }
func (Area) TableName() string       { return "camps.areas" }
func (Marker) TableName() string     { return "camps.markers" }
func (AreaFile) TableName() string   { return "camps.area_files" }
func (AreaType) TableName() string   { return "camps.area_types" }
func (AreaStatus) TableName() string { return "camps.area_statuses" }
