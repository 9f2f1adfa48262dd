package medial

import "github.com/chazu/pocketpath/internal/geom"

// Ball is the inscribed circle at a slice's center (§3).
type Ball struct {
	Center geom.Vec2
	Radius float64
}

// Contains reports whether p lies within the ball (inclusive).
func (b Ball) Contains(p geom.Vec2, tol float64) bool {
	return b.Center.DistTo(p) <= b.Radius+tol
}

// Rect returns the ball's axis-aligned bounding rectangle.
func (b Ball) Rect() geom.Rect {
	return geom.CircleRect(b.Center, b.Radius)
}

// Dist returns the signed distance between two balls: the gap between
// their boundaries along the line joining their centers, negative when
// one ball is (partially) inside the other (§3's Slice.Dist).
func Dist(a, b Ball) float64 {
	return a.Center.DistTo(b.Center) - a.Radius - b.Radius
}

// Slice is a partial annular cut: a ball, a link to its predecessor in
// the cut tree, one or more circular segments with a rotation
// direction, start/end tool positions, and the peak engagement
// measured after refinement (§3).
type Slice struct {
	Ball   Ball
	Parent *Slice

	Segments []geom.Arc // >1 only when refined (§4.5)
	Dir      geom.Dir

	Start, End geom.Vec2

	MaxEngagement float64
	Dist          float64 // signed distance to Parent's ball, per Dist() above
}

// Refined reports whether the slice's sweep was split into more than
// one segment during engagement refinement (§3, §4.5).
func (s *Slice) Refined() bool { return len(s.Segments) > 1 }

// Rect returns the bounding rectangle the slice should be registered
// under in a spatial index (its ball's rect; the swept arcs never
// extend beyond the ball).
func (s *Slice) Rect() geom.Rect { return s.Ball.Rect() }
