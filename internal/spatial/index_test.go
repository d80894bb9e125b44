package spatial

import (
	"testing"

	"github.com/CampAtlas/CA-Backend/internal/geometry"
	"github.com/google/uuid"
)

func TestIndexLocate(t *testing.T) {
	north := CampRef{
		ID:   uuid.New(),
		Name: "north camp",
		Boundary: geometry.Polygon{
			{Lat: 10, Lng: 10}, {Lat: 10, Lng: 20}, {Lat: 20, Lng: 20}, {Lat: 20, Lng: 10},
		},
	}
	south := CampRef{
		ID:   uuid.New(),
		Name: "south camp",
		Boundary: geometry.Polygon{
			{Lat: -20, Lng: -20}, {Lat: -20, Lng: -10}, {Lat: -10, Lng: -10}, {Lat: -10, Lng: -20},
		},
	}

	ix := NewIndex()
	ix.Rebuild([]CampRef{north, south})

	hits := ix.Locate(geometry.Point{Lat: 15, Lng: 15})
	if len(hits) != 1 || hits[0].ID != north.ID {
		t.Errorf("expected only north camp, got %v", hits)
	}

	hits = ix.Locate(geometry.Point{Lat: -15, Lng: -15})
	if len(hits) != 1 || hits[0].ID != south.ID {
		t.Errorf("expected only south camp, got %v", hits)
	}

	if hits = ix.Locate(geometry.Point{Lat: 0, Lng: 0}); len(hits) != 0 {
		t.Errorf("expected no camps at origin, got %v", hits)
	}
}

func TestIndexBBoxHitIsNotContainment(t *testing.T) {
	// Triangle camp: its bounding box covers (0..10, 0..10) but the
	// region beyond the hypotenuse is outside the polygon.
	triangle := CampRef{
		ID:   uuid.New(),
		Name: "triangle camp",
		Boundary: geometry.Polygon{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 10}, {Lat: 10, Lng: 0},
		},
	}

	ix := NewIndex()
	ix.Rebuild([]CampRef{triangle})

	p := geometry.Point{Lat: 8, Lng: 8}
	if got := ix.Candidates(p); len(got) != 1 {
		t.Fatalf("expected a bbox candidate for %v, got %v", p, got)
	}
	if got := ix.Locate(p); len(got) != 0 {
		t.Errorf("point beyond the hypotenuse must not locate the camp, got %v", got)
	}
}

func TestIndexSkipsDegenerateBoundaries(t *testing.T) {
	degenerate := CampRef{
		ID:       uuid.New(),
		Name:     "broken camp",
		Boundary: geometry.Polygon{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}},
	}

	ix := NewIndex()
	ix.Rebuild([]CampRef{degenerate})

	if got := ix.Candidates(geometry.Point{Lat: 1, Lng: 1}); len(got) != 0 {
		t.Errorf("degenerate boundaries should not be indexed, got %v", got)
	}
}

func TestIndexRebuildReplaces(t *testing.T) {
	camp := CampRef{
		ID:   uuid.New(),
		Name: "camp",
		Boundary: geometry.Polygon{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0},
		},
	}

	ix := NewIndex()
	ix.Rebuild([]CampRef{camp})
	if got := ix.Locate(geometry.Point{Lat: 0.5, Lng: 0.5}); len(got) != 1 {
		t.Fatalf("expected a hit before rebuild, got %v", got)
	}

	ix.Rebuild(nil)
	if got := ix.Locate(geometry.Point{Lat: 0.5, Lng: 0.5}); len(got) != 0 {
		t.Errorf("rebuild with no camps should empty the index, got %v", got)
	}
}
