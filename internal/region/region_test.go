package region

import (
	"math"
	"testing"

	"github.com/chazu/pocketpath/internal/geom"
)

func square(side float64) *Loop {
	return NewPolygonLoop([]geom.Vec2{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	})
}

func TestRegionMICAtCenter(t *testing.T) {
	outer := square(10)
	r, err := New(outer, nil, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mic := r.MIC(geom.Vec2{X: 5, Y: 5}, 1, 0)
	want := 5.0 - 1.0
	if math.Abs(mic-want) > 1e-6 {
		t.Errorf("MIC at center = %v, want %v", mic, want)
	}
}

func TestRegionContains(t *testing.T) {
	outer := square(10)
	r, err := New(outer, nil, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !r.Contains(geom.Vec2{X: 5, Y: 5}) {
		t.Error("center should be inside")
	}
	if r.Contains(geom.Vec2{X: 50, Y: 50}) {
		t.Error("far point should be outside")
	}
}

func TestRegionWithIsland(t *testing.T) {
	outer := square(10)
	island := NewPolygonLoop([]geom.Vec2{
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
	})
	r, err := New(outer, []Polyline{island}, 1e-3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Contains(geom.Vec2{X: 5, Y: 5}) {
		t.Error("island interior should not be contained in the region")
	}
	if !r.Contains(geom.Vec2{X: 1, Y: 1}) {
		t.Error("point away from the island should be contained")
	}
}

func TestLoopGetParametricPt(t *testing.T) {
	l := square(10)
	start := l.GetParametricPt(0)
	if start != (geom.Vec2{X: 0, Y: 0}) {
		t.Errorf("u=0 -> %v, want (0,0)", start)
	}
	mid := l.GetParametricPt(0.25)
	if math.Abs(mid.DistTo(geom.Vec2{X: 10, Y: 0})) > 1e-6 {
		t.Errorf("u=0.25 -> %v, want near (10,0)", mid)
	}
}
