package geometry

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	// vertexTolerance is how close (per coordinate) a test point must be to
	// a polygon vertex to count as coinciding with it.
	vertexTolerance = 1e-10

	// degenerateRectSize is the box width/height below which a rectangle is
	// treated as a point at its center. Drawing tools produce near-zero-area
	// rectangles from imprecise clicks; corner-checking those is too strict.
	degenerateRectSize = 0.001

	// cornerPassRatio is the fraction of rectangle corners that must be
	// inside the boundary when the strict all-corners check fails but the
	// center is still inside. Camp boundaries are rarely convex, so a
	// straddled concave notch shouldn't block an otherwise sane edit.
	cornerPassRatio = 0.75
)

// disagreements counts how often the winding-number and ray-casting answers
// diverged. Exposed for diagnostics; divergence means the polygon is
// numerically degenerate (self-intersecting or near-collinear edges).
var disagreements atomic.Int64

// DisagreementCount returns the number of algorithm disagreements observed
// since process start.
func DisagreementCount() int64 {
	return disagreements.Load()
}

// PointInPolygon reports whether p lies inside poly, or exactly on one of
// its vertices. Polygons with fewer than 3 vertices contain nothing.
//
// Two independent methods run on every call: the winding number is the
// authoritative answer, and the even-odd ray cast cross-checks it. When the
// two disagree the winding answer is still returned, and the event is logged
// so degenerate boundaries show up in diagnostics instead of silently
// flapping between accept and reject.
func PointInPolygon(p Point, poly Polygon) bool {
	if len(poly) < 3 {
		return false
	}
	if coincidesWithVertex(p, poly) {
		return true
	}

	winding := windingNumber(p, poly) != 0
	rayCast := rayCastInside(p, poly)
	if winding != rayCast {
		disagreements.Add(1)
		log.Warn().
			Float64("lat", p.Lat).
			Float64("lng", p.Lng).
			Int("vertices", len(poly)).
			Bool("winding", winding).
			Bool("ray_cast", rayCast).
			Msg("Point-in-polygon methods disagree; polygon is likely degenerate")
	}
	return winding
}

// PolygonInPolygon reports whether every vertex of inner passes
// PointInPolygon against outer.
//
// This is a vertex-sampling check: it does not detect an inner edge that
// bulges outside a concave outer boundary between two contained vertices.
// Shapes accepted under that behavior exist in the wild, so any tightening
// would have to revalidate stored areas first.
func PolygonInPolygon(inner, outer Polygon) bool {
	if len(inner) < 3 || len(outer) < 3 {
		return false
	}
	for _, v := range inner {
		if !PointInPolygon(v, outer) {
			return false
		}
	}
	return true
}

// RectangleInPolygon reports whether the rectangle described by bounds,
// rotated rotationDeg degrees clockwise about center, is acceptably
// contained in outer.
//
// The decision is three-tiered:
//  1. all four corners inside: contained;
//  2. center outside: not contained, regardless of corners;
//  3. center inside with some corners out: contained if at least 3 of the
//     4 corners are inside (the lenient threshold for concave boundaries).
//
// A box smaller than 0.001° in both dimensions collapses to a point test of
// its center.
func RectangleInPolygon(bounds Rect, rotationDeg float64, center Point, outer Polygon) bool {
	if len(outer) < 3 {
		return false
	}

	if bounds.Width() < degenerateRectSize && bounds.Height() < degenerateRectSize {
		return PointInPolygon(center, outer)
	}

	corners := bounds.Corners()
	if rotationDeg != 0 {
		for i := range corners {
			corners[i] = RotatePoint(corners[i], center, rotationDeg)
		}
	}

	insideCount := 0
	for _, c := range corners {
		if PointInPolygon(c, outer) {
			insideCount++
		}
	}
	if insideCount == len(corners) {
		return true
	}
	if !PointInPolygon(center, outer) {
		return false
	}

	required := int(math.Ceil(cornerPassRatio * float64(len(corners)))) // ceil(4*0.75) = 3
	return insideCount >= required
}

// coincidesWithVertex reports whether p matches any vertex of poly within
// vertexTolerance on both coordinates.
func coincidesWithVertex(p Point, poly Polygon) bool {
	for _, v := range poly {
		if abs(v.Lat-p.Lat) < vertexTolerance && abs(v.Lng-p.Lng) < vertexTolerance {
			return true
		}
	}
	return false
}

// windingNumber walks every edge of poly and accumulates signed crossings
// of the horizontal through p: +1 for an upward edge passing with p to its
// left, -1 for a downward edge passing with p to its right. Nonzero means
// the ring winds around p.
func windingNumber(p Point, poly Polygon) int {
	wn := 0
	n := len(poly)
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		if a.Lng <= p.Lng {
			if b.Lng > p.Lng && isLeft(a, b, p) > 0 {
				wn++
			}
		} else {
			if b.Lng <= p.Lng && isLeft(a, b, p) < 0 {
				wn--
			}
		}
	}
	return wn
}

// isLeft is the 2D cross product of edge a→b with a→p: positive when p is
// left of the directed edge, negative when right, zero when collinear.
func isLeft(a, b, p Point) float64 {
	return (b.Lat-a.Lat)*(p.Lng-a.Lng) - (p.Lat-a.Lat)*(b.Lng-a.Lng)
}

// rayCastInside is the even-odd rule: toggle on every edge a horizontal ray
// from p crosses. Vertex coincidence short-circuits to inside.
func rayCastInside(p Point, poly Polygon) bool {
	inside := false
	n := len(poly)
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[j]
		if abs(a.Lat-p.Lat) < vertexTolerance && abs(a.Lng-p.Lng) < vertexTolerance {
			return true
		}
		if (a.Lng > p.Lng) != (b.Lng > p.Lng) {
			crossing := (b.Lat-a.Lat)*(p.Lng-a.Lng)/(b.Lng-a.Lng) + a.Lat
			if p.Lat < crossing {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
