package geom

import (
	"math"
	"testing"
)

func TestCircleCircleIntersect(t *testing.T) {
	pts := CircleCircleIntersect(Vec2{0, 0}, 5, Vec2{6, 0}, 5)
	if len(pts) != 2 {
		t.Fatalf("expected 2 intersection points, got %d", len(pts))
	}
	for _, p := range pts {
		if math.Abs(p.DistTo(Vec2{0, 0})-5) > 1e-9 {
			t.Errorf("point %v not on circle 1", p)
		}
		if math.Abs(p.DistTo(Vec2{6, 0})-5) > 1e-9 {
			t.Errorf("point %v not on circle 2", p)
		}
	}
}

func TestCircleCircleNoIntersect(t *testing.T) {
	pts := CircleCircleIntersect(Vec2{0, 0}, 1, Vec2{10, 0}, 1)
	if pts != nil {
		t.Errorf("expected no intersection, got %v", pts)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{Min: Vec2{0, 0}, Max: Vec2{5, 5}}
	b := Rect{Min: Vec2{4, 4}, Max: Vec2{10, 10}}
	c := Rect{Min: Vec2{6, 6}, Max: Vec2{10, 10}}

	if !a.Overlaps(b) {
		t.Error("a and b should overlap")
	}
	if a.Overlaps(c) {
		t.Error("a and c should not overlap")
	}
}

func TestLineSegNearestPoint(t *testing.T) {
	l := LineSeg{P1: Vec2{0, 0}, P2: Vec2{10, 0}}
	p, d := l.NearestPoint(Vec2{5, 3})
	if p != (Vec2{5, 0}) {
		t.Errorf("nearest point = %v, want (5,0)", p)
	}
	if math.Abs(d-3) > 1e-9 {
		t.Errorf("distance = %v, want 3", d)
	}
}
