package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CatalogItem is an entry in the shared inventory catalog. Per-area
// quantities live in Stock rows referencing it.
type CatalogItem struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string         `gorm:"not null" json:"name"`
	SKU               string         `gorm:"uniqueIndex;size:64" json:"sku"`
	Unit              string         `gorm:"size:32" json:"unit"`
	Category          string         `gorm:"index;size:64" json:"category"`
	Tags              pq.StringArray `gorm:"type:text[]" json:"tags"`
	LowStockThreshold int            `gorm:"default:0" json:"low_stock_threshold"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Stock is a quantity of one catalog item held in one area. CampID is
// denormalized from the area so camp-level analytics don't need a join
// through the camps schema.
type Stock struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AreaID            uuid.UUID  `gorm:"type:uuid;index" json:"area_id"`
	CampID            uuid.UUID  `gorm:"type:uuid;index" json:"camp_id"`
	ItemID            uuid.UUID  `gorm:"type:uuid;index" json:"item_id"`
	Quantity          int        `gorm:"default:0" json:"quantity"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	ThresholdOverride *int       `json:"threshold_override,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (CatalogItem) TableName() string { return "inventory.catalog_items" }
func (Stock) TableName() string       { return "inventory.stocks" }

// DeleteStockForAreas removes all stock rows belonging to the given areas.
// Called from the camps package inside its cascade-delete transactions.
func DeleteStockForAreas(tx *gorm.DB, areaIDs []uuid.UUID) error {
	if len(areaIDs) == 0 {
		return nil
	}
	return tx.Where("area_id IN ?", areaIDs).Delete(&Stock{}).Error
}
