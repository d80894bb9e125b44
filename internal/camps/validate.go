package camps

import "github.com/CampAtlas/CA-Backend/internal/geometry"

// AreaInsideBoundary reports whether the area's geometry is contained in the
// given camp boundary. Polygon areas are checked vertex-by-vertex; rectangle
// areas go through the three-tier corner/center policy, including rotation.
func AreaInsideBoundary(a *Area, boundary geometry.Polygon) bool {
	switch a.Kind {
	case ShapePolygon:
		return geometry.PolygonInPolygon(a.Points.Polygon(), boundary)
	case ShapeRectangle:
		if a.Bounds == nil {
			return false
		}
		return geometry.RectangleInPolygon(a.Bounds.Rect(), a.Rotation, a.Bounds.Pivot(), boundary)
	default:
		return false
	}
}

// BoundaryViolations re-validates every child area against a proposed camp
// boundary and returns the names of the areas that would end up outside it.
// Nothing is mutated: the caller commits the boundary only when the returned
// slice is empty, so the check-then-commit is all-or-nothing.
func BoundaryViolations(proposed geometry.Polygon, areas []Area) []string {
	var violations []string
	for i := range areas {
		if !AreaInsideBoundary(&areas[i], proposed) {
			violations = append(violations, areas[i].Name)
		}
	}
	return violations
}
