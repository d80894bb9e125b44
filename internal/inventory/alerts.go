package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Alert flags one stock entry as low on quantity or close to expiry.
type Alert struct {
	StockID   uuid.UUID  `json:"stock_id"`
	AreaID    uuid.UUID  `json:"area_id"`
	ItemName  string     `json:"item_name"`
	Kind      string     `json:"kind"` // "low_stock" | "expiring"
	Quantity  int        `json:"quantity"`
	Threshold int        `json:"threshold,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// stockRow is one stock entry joined with its catalog item, as loaded by
// the alerts query.
type stockRow struct {
	ID                uuid.UUID
	AreaID            uuid.UUID
	ItemName          string
	Quantity          int
	ExpiresAt         *time.Time
	ThresholdOverride *int
	LowStockThreshold int
}

// buildAlerts evaluates every row against its effective threshold and the
// expiry deadline. A row can raise both alert kinds at once. A threshold of
// zero disables the low-stock check for that row.
func buildAlerts(rows []stockRow, deadline time.Time) []Alert {
	alerts := []Alert{}
	for _, row := range rows {
		threshold := row.LowStockThreshold
		if row.ThresholdOverride != nil {
			threshold = *row.ThresholdOverride
		}
		if threshold > 0 && row.Quantity <= threshold {
			alerts = append(alerts, Alert{
				StockID:   row.ID,
				AreaID:    row.AreaID,
				ItemName:  row.ItemName,
				Kind:      "low_stock",
				Quantity:  row.Quantity,
				Threshold: threshold,
			})
		}
		if row.ExpiresAt != nil && row.ExpiresAt.Before(deadline) {
			alerts = append(alerts, Alert{
				StockID:   row.ID,
				AreaID:    row.AreaID,
				ItemName:  row.ItemName,
				Kind:      "expiring",
				Quantity:  row.Quantity,
				ExpiresAt: row.ExpiresAt,
			})
		}
	}
	return alerts
}
