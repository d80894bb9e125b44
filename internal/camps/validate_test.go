package camps

import (
	"testing"

	"github.com/CampAtlas/CA-Backend/internal/geometry"
)

var unitSquare = geometry.Polygon{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0}}

func polygonArea(name string, points ...geometry.Point) Area {
	return Area{Name: name, Kind: ShapePolygon, Points: PointList(points)}
}

func TestAreaInsideBoundary_Polygon(t *testing.T) {
	inside := polygonArea("mess hall",
		geometry.Point{Lat: 0.2, Lng: 0.2},
		geometry.Point{Lat: 0.2, Lng: 0.8},
		geometry.Point{Lat: 0.8, Lng: 0.8},
		geometry.Point{Lat: 0.8, Lng: 0.2},
	)
	if !AreaInsideBoundary(&inside, unitSquare) {
		t.Error("area fully inside the boundary should validate")
	}

	straddling := polygonArea("overflow tent",
		geometry.Point{Lat: 0.2, Lng: 0.2},
		geometry.Point{Lat: 0.2, Lng: 0.8},
		geometry.Point{Lat: 1.5, Lng: 0.8},
		geometry.Point{Lat: 1.5, Lng: 0.2},
	)
	if AreaInsideBoundary(&straddling, unitSquare) {
		t.Error("area with vertices outside the boundary should be rejected")
	}
}

func TestAreaInsideBoundary_Rectangle(t *testing.T) {
	area := Area{
		Name: "storage",
		Kind: ShapeRectangle,
		Bounds: &RectShape{
			SouthWest: geometry.Point{Lat: 0.3, Lng: 0.3},
			NorthEast: geometry.Point{Lat: 0.7, Lng: 0.7},
			Center:    &geometry.Point{Lat: 0.5, Lng: 0.5},
		},
	}
	if !AreaInsideBoundary(&area, unitSquare) {
		t.Error("rectangle fully inside the boundary should validate")
	}

	area.Bounds.SouthWest = geometry.Point{Lat: 1.3, Lng: 1.3}
	area.Bounds.NorthEast = geometry.Point{Lat: 1.7, Lng: 1.7}
	area.Bounds.Center = &geometry.Point{Lat: 1.5, Lng: 1.5}
	if AreaInsideBoundary(&area, unitSquare) {
		t.Error("rectangle entirely outside the boundary should be rejected")
	}
}

func TestAreaInsideBoundary_MissingOrUnknownShape(t *testing.T) {
	noBounds := Area{Name: "broken", Kind: ShapeRectangle}
	if AreaInsideBoundary(&noBounds, unitSquare) {
		t.Error("rectangle area without bounds should be rejected")
	}

	unknown := Area{Name: "mystery", Kind: ShapeKind("circle")}
	if AreaInsideBoundary(&unknown, unitSquare) {
		t.Error("unknown shape kind should be rejected")
	}
}

func TestBoundaryViolations_AllOrNothing(t *testing.T) {
	areas := []Area{
		polygonArea("mess hall",
			geometry.Point{Lat: 0.2, Lng: 0.2},
			geometry.Point{Lat: 0.2, Lng: 0.4},
			geometry.Point{Lat: 0.4, Lng: 0.4},
			geometry.Point{Lat: 0.4, Lng: 0.2},
		),
		polygonArea("infirmary",
			geometry.Point{Lat: 0.6, Lng: 0.6},
			geometry.Point{Lat: 0.6, Lng: 0.9},
			geometry.Point{Lat: 0.9, Lng: 0.9},
			geometry.Point{Lat: 0.9, Lng: 0.6},
		),
	}

	// Same boundary: nothing violates.
	if v := BoundaryViolations(unitSquare, areas); v != nil {
		t.Errorf("expected no violations for the current boundary, got %v", v)
	}

	// Shrink to the lower-left quadrant: the infirmary falls outside.
	shrunk := geometry.Polygon{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.5}, {Lat: 0.5, Lng: 0.5}, {Lat: 0.5, Lng: 0}}
	v := BoundaryViolations(shrunk, areas)
	if len(v) != 1 || v[0] != "infirmary" {
		t.Errorf("expected [infirmary], got %v", v)
	}

	// Shrink to nothing useful: both violate, both are named.
	tiny := geometry.Polygon{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.05}, {Lat: 0.05, Lng: 0.05}, {Lat: 0.05, Lng: 0}}
	v = BoundaryViolations(tiny, areas)
	if len(v) != 2 {
		t.Errorf("expected both areas named, got %v", v)
	}
}

func TestRectShapePivot(t *testing.T) {
	s := RectShape{
		SouthWest: geometry.Point{Lat: 0, Lng: 0},
		NorthEast: geometry.Point{Lat: 2, Lng: 4},
	}
	// No explicit center: fall back to the box midpoint.
	if got := s.Pivot(); got != (geometry.Point{Lat: 1, Lng: 2}) {
		t.Errorf("Pivot() = %v, want box midpoint", got)
	}

	s.Center = &geometry.Point{Lat: 0.5, Lng: 0.5}
	if got := s.Pivot(); got != (geometry.Point{Lat: 0.5, Lng: 0.5}) {
		t.Errorf("Pivot() = %v, want explicit center", got)
	}

	// An explicit center at the origin is honored, not treated as missing.
	s.Center = &geometry.Point{}
	if got := s.Pivot(); got != (geometry.Point{}) {
		t.Errorf("Pivot() = %v, want explicit (0,0) center", got)
	}
}
