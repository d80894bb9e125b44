package camps

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/CampAtlas/CA-Backend/internal/geometry"
)

// PointList stores an ordered vertex ring as a jsonb column.
type PointList []geometry.Point

func (l PointList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]geometry.Point{})
	}
	return json.Marshal([]geometry.Point(l))
}

func (l *PointList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// Polygon converts the stored ring to its geometry type.
func (l PointList) Polygon() geometry.Polygon {
	return geometry.Polygon(l)
}

// RectShape stores a rectangle area's box, together with the explicit
// center point the editor uses as the rotation pivot.
type RectShape struct {
	SouthWest geometry.Point  `json:"south_west"`
	NorthEast geometry.Point  `json:"north_east"`
	Center    *geometry.Point `json:"center,omitempty"`
}

func (s RectShape) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *RectShape) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Rect returns the axis-aligned box.
func (s RectShape) Rect() geometry.Rect {
	return geometry.Rect{SouthWest: s.SouthWest, NorthEast: s.NorthEast}
}

// Pivot returns the explicit center when the editor sent one, otherwise the
// box midpoint. A center of exactly (0,0) is a real pivot, not an omission.
func (s RectShape) Pivot() geometry.Point {
	if s.Center != nil {
		return *s.Center
	}
	return s.Rect().Center()
}

// PointValue stores a single coordinate as a jsonb column.
type PointValue geometry.Point

func (p PointValue) Value() (driver.Value, error) {
	return json.Marshal(geometry.Point(p))
}

func (p *PointValue) Scan(src interface{}) error {
	return scanJSON(src, p)
}

func (p PointValue) Point() geometry.Point {
	return geometry.Point(p)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported jsonb source type")
	}
}
