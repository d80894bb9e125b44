// Package spatial keeps an in-memory R-tree of camp bounding boxes so that
// point lookups ("which camps is this coordinate in?") don't scan every camp.
// The tree only shortlists by bounding box; callers confirm true containment
// with the geometry engine.
package spatial

import (
	"sync"

	"github.com/CampAtlas/CA-Backend/internal/geometry"
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
)

const (
	dimensions  = 2
	minChildren = 25
	maxChildren = 50

	// pointTolerance pads the query point into a tiny rect; rtreego can't
	// intersect against a zero-extent rectangle.
	pointTolerance = 1e-9
)

// CampRef is the slice of a camp the index needs: identity plus boundary.
type CampRef struct {
	ID       uuid.UUID
	Name     string
	Boundary geometry.Polygon
}

type campItem struct {
	ref  CampRef
	rect *rtreego.Rect
}

func (c *campItem) Bounds() *rtreego.Rect {
	return c.rect
}

// Index is a thread-safe R-tree over camp boundary bounding boxes.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Rebuild replaces the whole tree from the given camps. Camps with
// degenerate boundaries are skipped; they can't contain anything anyway.
func (ix *Index) Rebuild(refs []CampRef) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, ref := range refs {
		box, ok := ref.Boundary.BoundingBox()
		if !ok {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{box.SouthWest.Lat, box.SouthWest.Lng},
			[]float64{
				maxf(box.Width(), pointTolerance),
				maxf(box.Height(), pointTolerance),
			},
		)
		if err != nil {
			continue
		}
		tree.Insert(&campItem{ref: ref, rect: rect})
	}

	ix.mu.Lock()
	ix.tree = tree
	ix.mu.Unlock()
}

// Candidates returns camps whose bounding box contains p. A bbox hit is not
// a containment verdict; see Locate.
func (ix *Index) Candidates(p geometry.Point) []CampRef {
	queryPoint := rtreego.Point{p.Lat, p.Lng}
	rect := queryPoint.ToRect(pointTolerance)

	ix.mu.RLock()
	results := ix.tree.SearchIntersect(rect)
	ix.mu.RUnlock()

	refs := make([]CampRef, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*campItem); ok {
			refs = append(refs, item.ref)
		}
	}
	return refs
}

// Locate returns the camps whose boundary polygon actually contains p,
// confirming each bbox candidate with an exact point-in-polygon test.
func (ix *Index) Locate(p geometry.Point) []CampRef {
	var hits []CampRef
	for _, ref := range ix.Candidates(p) {
		if geometry.PointInPolygon(p, ref.Boundary) {
			hits = append(hits, ref)
		}
	}
	return hits
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
