package geom

import (
	"math"
	"testing"
)

func TestComputeBiarcEqualTangentsDegenerates(t *testing.T) {
	p1 := Vec2{0, 0}
	p2 := Vec2{10, 0}
	t1 := Vec2{1, 0}
	t2 := Vec2{1, 0}

	b := ComputeBiarc(p1, t1, p2, t2)

	if !b.Degenerate() {
		t.Fatalf("expected equal-tangent biarc to degenerate to a line, got %+v", b)
	}
	if b.Line1.P1 != p1 || b.Line1.P2 != p2 {
		t.Errorf("degenerate line = %v -> %v, want %v -> %v", b.Line1.P1, b.Line1.P2, p1, p2)
	}
}

func TestComputeBiarcEndpointsMatch(t *testing.T) {
	p1 := Vec2{0, 0}
	p2 := Vec2{10, 4}
	t1 := Vec2{1, 0}
	t2 := Vec2{0, 1}

	b := ComputeBiarc(p1, t1, p2, t2)

	if b.P1 != p1 {
		t.Errorf("P1 = %v, want %v", b.P1, p1)
	}
	if b.P2 != p2 {
		t.Errorf("P2 = %v, want %v", b.P2, p2)
	}
}

func TestComputeBiarcTangentContinuity(t *testing.T) {
	p1 := Vec2{0, 0}
	p2 := Vec2{10, 4}
	t1 := Vec2{1, 0}
	t2 := Vec2{0, 1}

	b := ComputeBiarc(p1, t1, p2, t2)
	if b.Line1 != nil || b.Line2 != nil {
		t.Skip("degenerate case for these inputs, tangent check not applicable")
	}

	tanAtP1 := b.Arc1.TangentAt(0)
	angleErr := angleBetween(tanAtP1, t1.Normalize())
	if angleErr > 1e-6 {
		t.Errorf("tangent at p1 off by %g rad, want <= 1e-6", angleErr)
	}
}

func angleBetween(a, b Vec2) float64 {
	cos := a.Normalize().Dot(b.Normalize())
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

func TestSampleArcEndpoints(t *testing.T) {
	a := Arc{Center: Vec2{0, 0}, Radius: 5, Start: 0, Sweep: math.Pi / 2}
	pts := SampleArc(a, 0.01)
	if len(pts) < 2 {
		t.Fatalf("expected at least 2 points, got %d", len(pts))
	}
	if !pts[0].Equal(a.P1(), 1e-9) {
		t.Errorf("first point = %v, want %v", pts[0], a.P1())
	}
	if !pts[len(pts)-1].Equal(a.P2(), 1e-9) {
		t.Errorf("last point = %v, want %v", pts[len(pts)-1], a.P2())
	}
}
