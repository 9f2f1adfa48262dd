// Package geom provides the 2-D vector algebra, arc, biarc and spline
// primitives that the rest of the pocket toolpath generator builds on.
package geom

import "math"

// Vec2 is a point or free vector in the cutting plane.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2   { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2   { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }

// Cross returns the 2-D analogue of the cross product, a.k.a. the signed
// area of the parallelogram spanned by a and b.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

func (a Vec2) DistTo(b Vec2) float64 { return a.Sub(b).Len() }

// Normalize returns a unit vector in the direction of a, or the zero
// vector if a is (near) zero length.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l < 1e-15 {
		return Vec2{}
	}
	return a.Scale(1 / l)
}

// LeftNormal returns the vector rotated +90 degrees (CCW).
func (a Vec2) LeftNormal() Vec2 { return Vec2{-a.Y, a.X} }

// RightNormal returns the vector rotated -90 degrees (CW).
func (a Vec2) RightNormal() Vec2 { return Vec2{a.Y, -a.X} }

func (a Vec2) Equal(b Vec2, tol float64) bool {
	return a.DistTo(b) <= tol
}

// Lerp linearly interpolates between a and b at parameter u in [0,1].
func (a Vec2) Lerp(b Vec2, u float64) Vec2 {
	return a.Add(b.Sub(a).Scale(u))
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min, Max Vec2
}

// RectFromPoints returns the smallest Rect containing all of pts.
func RectFromPoints(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r = r.Extend(p)
	}
	return r
}

func (r Rect) Extend(p Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest Rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vec2{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Vec2{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Vec2{r.Min.X - d, r.Min.Y - d},
		Max: Vec2{r.Max.X + d, r.Max.Y + d},
	}
}

func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X &&
		r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// CircleRect returns the bounding rect of a circle with the given
// center and radius.
func CircleRect(center Vec2, radius float64) Rect {
	return Rect{
		Min: Vec2{center.X - radius, center.Y - radius},
		Max: Vec2{center.X + radius, center.Y + radius},
	}
}

// LineSeg is a straight segment from P1 to P2.
type LineSeg struct {
	P1, P2 Vec2
}

func (l LineSeg) Len() float64 { return l.P1.DistTo(l.P2) }

func (l LineSeg) Direction() Vec2 { return l.P2.Sub(l.P1).Normalize() }

// NearestPoint returns the closest point on the segment to p and the
// distance to it.
func (l LineSeg) NearestPoint(p Vec2) (Vec2, float64) {
	d := l.P2.Sub(l.P1)
	lenSq := d.Dot(d)
	if lenSq < 1e-18 {
		return l.P1, p.DistTo(l.P1)
	}
	t := p.Sub(l.P1).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	q := l.P1.Add(d.Scale(t))
	return q, p.DistTo(q)
}

// Intersect computes the intersection point of two line segments, if any.
func (l LineSeg) Intersect(o LineSeg) (Vec2, bool) {
	r := l.P2.Sub(l.P1)
	s := o.P2.Sub(o.P1)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-15 {
		return Vec2{}, false
	}
	qp := o.P1.Sub(l.P1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return l.P1.Add(r.Scale(t)), true
}

// RaySegmentIntersect intersects the infinite-forward ray from a in
// direction dir with the segment l, returning the distance along the
// ray to the intersection (if any, and non-negative).
func RaySegmentIntersect(a, dir Vec2, l LineSeg) (float64, bool) {
	r := dir
	s := l.P2.Sub(l.P1)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-15 {
		return 0, false
	}
	qp := l.P1.Sub(a)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
