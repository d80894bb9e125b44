package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func CreateCatalogItemHandler(w http.ResponseWriter, r *http.Request) {
	var item CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if item.Name == "" || item.SKU == "" {
		http.Error(w, "Name and SKU are required", http.StatusBadRequest)
		return
	}

	item.ID = uuid.New()
	if err := db.DB.Create(&item).Error; err != nil {
		http.Error(w, "Failed to create catalog item", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, item)
}

func ListCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var items []CatalogItem

	q := db.DB
	if category := r.URL.Query().Get("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&items).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, items)
}

func UpdateCatalogItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var input struct {
		Name              *string  `json:"name"`
		Unit              *string  `json:"unit"`
		Category          *string  `json:"category"`
		Tags              []string `json:"tags"`
		LowStockThreshold *int     `json:"low_stock_threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var item CatalogItem
	if err := db.DB.First(&item, "id = ?", itemID).Error; err != nil {
		http.Error(w, "Catalog item not found", http.StatusNotFound)
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Unit != nil {
		updates["unit"] = *input.Unit
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Tags != nil {
		updates["tags"] = pq.StringArray(input.Tags)
	}
	if input.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *input.LowStockThreshold
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&item).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update catalog item", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, item)
}

func DeleteCatalogItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var count int64
	db.DB.Model(&Stock{}).Where("item_id = ?", itemID).Count(&count)
	if count > 0 {
		http.Error(w, "Catalog item is still stocked in one or more areas", http.StatusConflict)
		return
	}

	if err := db.DB.Delete(&CatalogItem{}, "id = ?", itemID).Error; err != nil {
		http.Error(w, "Failed to delete catalog item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func CreateStockHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AreaID            uuid.UUID  `json:"area_id"`
		ItemID            uuid.UUID  `json:"item_id"`
		Quantity          int        `json:"quantity"`
		ExpiresAt         *time.Time `json:"expires_at"`
		ThresholdOverride *int       `json:"threshold_override"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Resolve the owning camp from the area row; stock carries it
	// denormalized for camp-level aggregation.
	var campID uuid.UUID
	err := db.DB.Raw(`SELECT camp_id FROM camps.areas WHERE id = ?`, input.AreaID).Scan(&campID).Error
	if err != nil || campID == uuid.Nil {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}

	var item CatalogItem
	if err := db.DB.First(&item, "id = ?", input.ItemID).Error; err != nil {
		http.Error(w, "Catalog item not found", http.StatusNotFound)
		return
	}

	stock := Stock{
		ID:                uuid.New(),
		AreaID:            input.AreaID,
		CampID:            campID,
		ItemID:            input.ItemID,
		Quantity:          input.Quantity,
		ExpiresAt:         input.ExpiresAt,
		ThresholdOverride: input.ThresholdOverride,
	}
	if err := db.DB.Create(&stock).Error; err != nil {
		http.Error(w, "Failed to create stock entry", http.StatusInternalServerError)
		return
	}

	invalidateAnalytics(r.Context(), campID.String())

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, stock)
}

func ListStockHandler(w http.ResponseWriter, r *http.Request) {
	var stocks []Stock

	q := db.DB
	if areaID := r.URL.Query().Get("area_id"); areaID != "" {
		q = q.Where("area_id = ?", areaID)
	}
	if campID := r.URL.Query().Get("camp_id"); campID != "" {
		q = q.Where("camp_id = ?", campID)
	}
	if err := q.Find(&stocks).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, stocks)
}

func UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "stockID")

	var input struct {
		Quantity          *int       `json:"quantity"`
		ExpiresAt         *time.Time `json:"expires_at"`
		ThresholdOverride *int       `json:"threshold_override"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var stock Stock
	err := db.DB.First(&stock, "id = ?", stockID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Stock entry not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	updates := map[string]any{}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.ExpiresAt != nil {
		updates["expires_at"] = *input.ExpiresAt
	}
	if input.ThresholdOverride != nil {
		updates["threshold_override"] = *input.ThresholdOverride
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&stock).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update stock entry", http.StatusInternalServerError)
			return
		}
		invalidateAnalytics(r.Context(), stock.CampID.String())
	}
	writeJSON(w, stock)
}

func DeleteStockHandler(w http.ResponseWriter, r *http.Request) {
	stockID := chi.URLParam(r, "stockID")

	var stock Stock
	if err := db.DB.First(&stock, "id = ?", stockID).Error; err != nil {
		http.Error(w, "Stock entry not found", http.StatusNotFound)
		return
	}

	if err := db.DB.Delete(&stock).Error; err != nil {
		http.Error(w, "Failed to delete stock entry", http.StatusInternalServerError)
		return
	}

	invalidateAnalytics(r.Context(), stock.CampID.String())
	w.WriteHeader(http.StatusNoContent)
}

// AnalyticsResponse aggregates a camp's stock by item category and by area.
type AnalyticsResponse struct {
	CampID        string          `json:"camp_id"`
	TotalQuantity int             `json:"total_quantity"`
	ByCategory    []CategoryTotal `json:"by_category"`
	ByArea        []AreaTotal     `json:"by_area"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type AreaTotal struct {
	AreaID   uuid.UUID `json:"area_id"`
	AreaName string    `json:"area_name"`
	Quantity int       `json:"quantity"`
}

// AnalyticsHandler serves the aggregate summary for a camp, read-through
// cached in Redis when configured.
func AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	campID := r.URL.Query().Get("camp_id")
	if campID == "" {
		http.Error(w, "camp_id query param is required", http.StatusBadRequest)
		return
	}

	if cached, ok := cachedAnalytics(r.Context(), campID); ok {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, cached)
		return
	}

	out := AnalyticsResponse{CampID: campID, ByCategory: []CategoryTotal{}, ByArea: []AreaTotal{}}

	err := db.DB.WithContext(r.Context()).Raw(`
		SELECT COALESCE(i.category, '') AS category, SUM(s.quantity) AS quantity
		FROM inventory.stocks s
		JOIN inventory.catalog_items i ON i.id = s.item_id
		WHERE s.camp_id = ?
		GROUP BY i.category
		ORDER BY i.category
	`, campID).Scan(&out.ByCategory).Error
	if err != nil {
		http.Error(w, "Analytics query failed", http.StatusInternalServerError)
		return
	}

	err = db.DB.WithContext(r.Context()).Raw(`
		SELECT s.area_id AS area_id, a.name AS area_name, SUM(s.quantity) AS quantity
		FROM inventory.stocks s
		JOIN camps.areas a ON a.id = s.area_id
		WHERE s.camp_id = ?
		GROUP BY s.area_id, a.name
		ORDER BY a.name
	`, campID).Scan(&out.ByArea).Error
	if err != nil {
		http.Error(w, "Analytics query failed", http.StatusInternalServerError)
		return
	}

	for _, c := range out.ByCategory {
		out.TotalQuantity += c.Quantity
	}

	storeAnalytics(r.Context(), campID, &out)
	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, &out)
}

// AlertsHandler reports low-stock and expiring entries for a camp. The
// expiry window defaults to 30 days and can be overridden with window_days.
func AlertsHandler(w http.ResponseWriter, r *http.Request) {
	campID := r.URL.Query().Get("camp_id")
	if campID == "" {
		http.Error(w, "camp_id query param is required", http.StatusBadRequest)
		return
	}

	windowDays := 30
	if v := r.URL.Query().Get("window_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "window_days must be a non-negative integer", http.StatusBadRequest)
			return
		}
		windowDays = n
	}

	var rows []stockRow
	err := db.DB.WithContext(r.Context()).Raw(`
		SELECT s.id, s.area_id, i.name AS item_name, s.quantity, s.expires_at,
		       s.threshold_override, i.low_stock_threshold
		FROM inventory.stocks s
		JOIN inventory.catalog_items i ON i.id = s.item_id
		WHERE s.camp_id = ?
	`, campID).Scan(&rows).Error
	if err != nil {
		http.Error(w, "Alerts query failed", http.StatusInternalServerError)
		return
	}

	deadline := time.Now().AddDate(0, 0, windowDays)
	writeJSON(w, buildAlerts(rows, deadline))
}
