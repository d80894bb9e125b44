package camps

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CampAtlas/CA-Backend/internal/db"
	"github.com/CampAtlas/CA-Backend/internal/geometry"
	"github.com/CampAtlas/CA-Backend/internal/inventory"
	"github.com/CampAtlas/CA-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// shapeInput is the geometry half of an area payload, shared by create and
// shape-edit requests.
type shapeInput struct {
	Kind     ShapeKind        `json:"kind"`
	Points   []geometry.Point `json:"points"`
	Bounds   *RectShape       `json:"bounds"`
	Rotation float64          `json:"rotation"`
}

func (in shapeInput) apply(a *Area) {
	a.Kind = in.Kind
	a.Points = PointList(in.Points)
	a.Bounds = in.Bounds
	a.Rotation = in.Rotation
}

func CreateCampHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name        string           `json:"name"`
		Description string           `json:"description"`
		Boundary    []geometry.Point `json:"boundary"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Camp name is required", http.StatusBadRequest)
		return
	}
	if len(input.Boundary) < 3 {
		http.Error(w, "Camp boundary needs at least 3 points", http.StatusUnprocessableEntity)
		return
	}

	ownerID, _ := utils.GetUserIDFromContext(r.Context())

	camp := Camp{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
		Boundary:    PointList(input.Boundary),
	}
	if err := db.DB.Create(&camp).Error; err != nil {
		http.Error(w, "Failed to create camp", http.StatusInternalServerError)
		return
	}

	RefreshIndex()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, camp)
}

func ListCampsHandler(w http.ResponseWriter, r *http.Request) {
	var camps []Camp
	if err := db.DB.Find(&camps).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, camps)
}

func GetCampHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var camp Camp
	err := db.DB.Preload("Areas").Preload("Areas.Markers").Preload("Areas.Files").
		First(&camp, "id = ?", campID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Camp not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, camp)
}

func UpdateCampHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var camp Camp
	if err := db.DB.First(&camp, "id = ?", campID).Error; err != nil {
		http.Error(w, "Camp not found", http.StatusNotFound)
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&camp).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update camp", http.StatusInternalServerError)
			return
		}
		RefreshIndex()
	}
	writeJSON(w, camp)
}

// UpdateBoundaryHandler applies the all-or-nothing boundary edit protocol:
// every child area is re-validated against the proposed boundary before
// anything is written. One orphaned child rejects the whole edit, and the
// response names every violating area so the user knows what to adjust.
func UpdateBoundaryHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var input struct {
		Boundary []geometry.Point `json:"boundary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(input.Boundary) < 3 {
		http.Error(w, "Camp boundary needs at least 3 points", http.StatusUnprocessableEntity)
		return
	}

	var camp Camp
	err := db.DB.Preload("Areas").First(&camp, "id = ?", campID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Camp not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	proposed := geometry.Polygon(input.Boundary)
	if violations := BoundaryViolations(proposed, camp.Areas); len(violations) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":      "Boundary change rejected: some areas would fall outside the new boundary",
			"camp":       camp.Name,
			"violations": violations,
		})
		return
	}

	if err := db.DB.Model(&camp).Update("boundary", PointList(input.Boundary)).Error; err != nil {
		http.Error(w, "Failed to update boundary", http.StatusInternalServerError)
		return
	}
	camp.Boundary = PointList(input.Boundary)
	RefreshIndex()
	writeJSON(w, camp)
}

func DeleteCampHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var camp Camp
	if err := db.DB.Preload("Areas").First(&camp, "id = ?", campID).Error; err != nil {
		http.Error(w, "Camp not found", http.StatusNotFound)
		return
	}

	areaIDs := make([]uuid.UUID, 0, len(camp.Areas))
	for _, a := range camp.Areas {
		areaIDs = append(areaIDs, a.ID)
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if len(areaIDs) > 0 {
			if err := tx.Where("area_id IN ?", areaIDs).Delete(&Marker{}).Error; err != nil {
				return err
			}
			if err := tx.Where("area_id IN ?", areaIDs).Delete(&AreaFile{}).Error; err != nil {
				return err
			}
			if err := inventory.DeleteStockForAreas(tx, areaIDs); err != nil {
				return err
			}
			if err := tx.Where("camp_id = ?", camp.ID).Delete(&Area{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&camp).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete camp", http.StatusInternalServerError)
		return
	}

	RefreshIndex()
	w.WriteHeader(http.StatusNoContent)
}

// CreateAreaHandler validates the drawn shape against the selected camp's
// boundary before anything is persisted. An invalid shape is discarded
// outright; there is no partial state to clean up.
func CreateAreaHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var input struct {
		Name      string `json:"name"`
		TypeKey   string `json:"type_key"`
		StatusKey string `json:"status_key"`
		shapeInput
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Area name is required", http.StatusBadRequest)
		return
	}

	var camp Camp
	err := db.DB.First(&camp, "id = ?", campID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Camp not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	area := Area{
		ID:        uuid.New(),
		CampID:    camp.ID,
		Name:      input.Name,
		TypeKey:   input.TypeKey,
		StatusKey: input.StatusKey,
	}
	input.shapeInput.apply(&area)

	if !AreaInsideBoundary(&area, camp.Boundary.Polygon()) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "Area rejected: shape is outside the camp boundary",
			"camp":  camp.Name,
			"area":  area.Name,
		})
		return
	}

	if err := db.DB.Create(&area).Error; err != nil {
		http.Error(w, "Failed to create area", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, area)
}

func ListAreasHandler(w http.ResponseWriter, r *http.Request) {
	campID := chi.URLParam(r, "campID")

	var areas []Area
	if err := db.DB.Find(&areas, "camp_id = ?", campID).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, areas)
}

// UpdateAreaShapeHandler validates a resize/move against the owning camp's
// current boundary. On rejection nothing is persisted and the response
// carries the last committed geometry so the client can revert the shape
// it is rendering.
func UpdateAreaShapeHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var input shapeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var area Area
	err := db.DB.First(&area, "id = ?", areaID).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var camp Camp
	if err := db.DB.First(&camp, "id = ?", area.CampID).Error; err != nil {
		http.Error(w, "Owning camp not found", http.StatusNotFound)
		return
	}

	proposed := area
	input.apply(&proposed)

	if !AreaInsideBoundary(&proposed, camp.Boundary.Polygon()) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "Edit rejected: shape would leave the camp boundary",
			"camp":  camp.Name,
			"area":  area.Name,
			"last_committed": shapeInput{
				Kind:     area.Kind,
				Points:   area.Points,
				Bounds:   area.Bounds,
				Rotation: area.Rotation,
			},
		})
		return
	}

	updates := map[string]any{
		"kind":     proposed.Kind,
		"points":   proposed.Points,
		"bounds":   proposed.Bounds,
		"rotation": proposed.Rotation,
	}
	if err := db.DB.Model(&area).Updates(updates).Error; err != nil {
		http.Error(w, "Failed to update area", http.StatusInternalServerError)
		return
	}
	writeJSON(w, proposed)
}

func UpdateAreaHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var input struct {
		Name      *string `json:"name"`
		TypeKey   *string `json:"type_key"`
		StatusKey *string `json:"status_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var area Area
	if err := db.DB.First(&area, "id = ?", areaID).Error; err != nil {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.TypeKey != nil {
		updates["type_key"] = *input.TypeKey
	}
	if input.StatusKey != nil {
		updates["status_key"] = *input.StatusKey
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&area).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update area", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, area)
}

func DeleteAreaHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var area Area
	if err := db.DB.First(&area, "id = ?", areaID).Error; err != nil {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", area.ID).Delete(&Marker{}).Error; err != nil {
			return err
		}
		if err := tx.Where("area_id = ?", area.ID).Delete(&AreaFile{}).Error; err != nil {
			return err
		}
		if err := inventory.DeleteStockForAreas(tx, []uuid.UUID{area.ID}); err != nil {
			return err
		}
		return tx.Delete(&area).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete area", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func CreateMarkerHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var input struct {
		Label    string         `json:"label"`
		Position geometry.Point `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var area Area
	if err := db.DB.First(&area, "id = ?", areaID).Error; err != nil {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}
	var camp Camp
	if err := db.DB.First(&camp, "id = ?", area.CampID).Error; err != nil {
		http.Error(w, "Owning camp not found", http.StatusNotFound)
		return
	}

	if !geometry.PointInPolygon(input.Position, camp.Boundary.Polygon()) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "Marker rejected: position is outside the camp boundary",
			"camp":  camp.Name,
			"area":  area.Name,
		})
		return
	}

	marker := Marker{
		ID:       uuid.New(),
		AreaID:   area.ID,
		Label:    input.Label,
		Position: PointValue(input.Position),
	}
	if err := db.DB.Create(&marker).Error; err != nil {
		http.Error(w, "Failed to create marker", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, marker)
}

func ListMarkersHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var markers []Marker
	if err := db.DB.Find(&markers, "area_id = ?", areaID).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, markers)
}

func DeleteMarkerHandler(w http.ResponseWriter, r *http.Request) {
	markerID := chi.URLParam(r, "markerID")

	if err := db.DB.Delete(&Marker{}, "id = ?", markerID).Error; err != nil {
		http.Error(w, "Failed to delete marker", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func CreateFileHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var input struct {
		FileName    string `json:"file_name"`
		ContentType string `json:"content_type"`
		SizeBytes   int64  `json:"size_bytes"`
		StorageURL  string `json:"storage_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.FileName == "" {
		http.Error(w, "File name is required", http.StatusBadRequest)
		return
	}

	var area Area
	if err := db.DB.First(&area, "id = ?", areaID).Error; err != nil {
		http.Error(w, "Area not found", http.StatusNotFound)
		return
	}

	file := AreaFile{
		ID:          uuid.New(),
		AreaID:      area.ID,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		StorageURL:  input.StorageURL,
	}
	if err := db.DB.Create(&file).Error; err != nil {
		http.Error(w, "Failed to attach file", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, file)
}

func ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")

	var files []AreaFile
	if err := db.DB.Find(&files, "area_id = ?", areaID).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, files)
}

func DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	if err := db.DB.Delete(&AreaFile{}, "id = ?", fileID).Error; err != nil {
		http.Error(w, "Failed to delete file", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LocateCampHandler answers "which camps contain this point" via the R-tree
// shortlist plus an exact containment check per candidate.
func LocateCampHandler(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "lat and lng query params are required", http.StatusBadRequest)
		return
	}

	type hit struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	hits := []hit{}
	for _, ref := range campIndex.Locate(geometry.Point{Lat: lat, Lng: lng}) {
		hits = append(hits, hit{ID: ref.ID, Name: ref.Name})
	}
	writeJSON(w, hits)
}

func ListAreaTypesHandler(w http.ResponseWriter, r *http.Request) {
	var types []AreaType
	if err := db.DB.Find(&types).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, types)
}

func ListAreaStatusesHandler(w http.ResponseWriter, r *http.Request) {
	var statuses []AreaStatus
	if err := db.DB.Find(&statuses).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, statuses)
}
