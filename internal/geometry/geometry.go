// Package geometry implements the containment checks used when drawing and
// editing camp boundaries and their nested areas. All functions are pure:
// they never touch the database and never return errors. A shape either
// fits inside its parent polygon or it doesn't.
//
// Coordinates are treated as planar, which is a fine approximation at the
// city/region scale camps are drawn at.
package geometry

import "math"

// Point is a lat/lng coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is a closed ring of vertices. The first and last point are
// implicitly connected; the ring does not repeat its first point.
// A polygon with fewer than 3 vertices is degenerate: it contains nothing
// and is contained in nothing.
type Polygon []Point

// Rect is an axis-aligned bounding box given by its southwest and
// northeast corners.
type Rect struct {
	SouthWest Point `json:"south_west"`
	NorthEast Point `json:"north_east"`
}

// Width returns the box extent along the latitude axis, in degrees.
func (r Rect) Width() float64 {
	return math.Abs(r.NorthEast.Lat - r.SouthWest.Lat)
}

// Height returns the box extent along the longitude axis, in degrees.
func (r Rect) Height() float64 {
	return math.Abs(r.NorthEast.Lng - r.SouthWest.Lng)
}

// Center returns the midpoint of the box. Callers that track a separate
// rotation pivot should prefer their own center point.
func (r Rect) Center() Point {
	return Point{
		Lat: (r.SouthWest.Lat + r.NorthEast.Lat) / 2,
		Lng: (r.SouthWest.Lng + r.NorthEast.Lng) / 2,
	}
}

// Corners returns the four box corners in sw, nw, ne, se order.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{Lat: r.SouthWest.Lat, Lng: r.SouthWest.Lng},
		{Lat: r.SouthWest.Lat, Lng: r.NorthEast.Lng},
		{Lat: r.NorthEast.Lat, Lng: r.NorthEast.Lng},
		{Lat: r.NorthEast.Lat, Lng: r.SouthWest.Lng},
	}
}

// RotatePoint rotates p about center by deg degrees clockwise.
func RotatePoint(p, center Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	dLat := p.Lat - center.Lat
	dLng := p.Lng - center.Lng
	return Point{
		Lat: center.Lat + dLat*cos + dLng*sin,
		Lng: center.Lng - dLat*sin + dLng*cos,
	}
}

// BoundingBox returns the axis-aligned bounding box of the polygon.
// The second return value is false for degenerate polygons.
func (poly Polygon) BoundingBox() (Rect, bool) {
	if len(poly) < 3 {
		return Rect{}, false
	}
	sw, ne := poly[0], poly[0]
	for _, p := range poly[1:] {
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lng = math.Min(sw.Lng, p.Lng)
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lng = math.Max(ne.Lng, p.Lng)
	}
	return Rect{SouthWest: sw, NorthEast: ne}, true
}
