package mat

import (
	"testing"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/region"
	"github.com/chazu/pocketpath/internal/voronoi"
)

func square(side float64) *region.Loop {
	return region.NewPolygonLoop([]geom.Vec2{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	})
}

func TestSampleBoundaryPreservesCorners(t *testing.T) {
	r, err := region.New(square(10), nil, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pts := SampleBoundary(r, 1)
	if len(pts) == 0 {
		t.Fatal("expected boundary samples")
	}
	for _, corner := range []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}} {
		found := false
		for _, p := range pts {
			if p.Equal(corner, 1e-9) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("corner %v not present in samples", corner)
		}
	}
}

func TestStabilizeAddsPhantomBelowLeftmostBottom(t *testing.T) {
	pts := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	stabilized, bounds := Stabilize(pts)
	if len(stabilized) != len(pts)+1 {
		t.Fatalf("expected %d points, got %d", len(pts)+1, len(stabilized))
	}
	phantom := stabilized[len(stabilized)-1]
	if phantom.X != 0 {
		t.Errorf("phantom.X = %v, want 0 (leftmost-bottom x)", phantom.X)
	}
	if phantom.Y >= 0 {
		t.Errorf("phantom.Y = %v, want < 0", phantom.Y)
	}
	if bounds.Min.Y > phantom.Y {
		t.Errorf("bounds.Min.Y = %v should cover phantom.Y = %v", bounds.Min.Y, phantom.Y)
	}
}

func TestFilterDropsShortAndOutsideEdges(t *testing.T) {
	r, err := region.New(square(10), nil, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	edges := []voronoi.Edge{
		{A: geom.Vec2{X: 5, Y: 5}, B: geom.Vec2{X: 5.000001, Y: 5}},      // too short
		{A: geom.Vec2{X: 5, Y: 5}, B: geom.Vec2{X: 6, Y: 6}},             // inside, kept
		{A: geom.Vec2{X: 5, Y: 5}, B: geom.Vec2{X: 50, Y: 50}},           // endpoint outside
	}
	out := Filter(edges, r, 1e-3, false)
	if len(out) != 1 {
		t.Fatalf("expected 1 retained edge, got %d: %+v", len(out), out)
	}
}

func TestBuildEndToEndWithDefaultVoronoi(t *testing.T) {
	r, err := region.New(square(20), nil, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	segs := Build(r, 2, voronoi.Default{}, 1e-3, true, false)
	if len(segs) == 0 {
		t.Fatal("expected at least one MAT segment for a 20x20 square with a 2-radius cutter")
	}
}
