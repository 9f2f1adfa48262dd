// Package region defines the Region data model (§3) and the Polyline
// collaborator interface (§6) the rest of the generator is built
// against, plus a default Loop implementation over a closed sequence
// of line/arc segments.
package region

import "github.com/chazu/pocketpath/internal/geom"

// Polyline is the §6 "polyline" collaborator: a closed loop of line
// and arc segments with point-in-polygon, intersection and parametric
// sampling predicates.
type Polyline interface {
	GetPerimeter() float64
	NumSegments() int
	GetSegment(i int) geom.Segment
	PointInPolyline(p geom.Vec2, tol float64) bool
	LineIntersections(l geom.LineSeg, tol float64) []geom.Vec2
	GetParametricPt(u float64) geom.Vec2
}

// Loop is the default Polyline implementation: a closed ordered list
// of segments (lines and/or arcs).
type Loop struct {
	segments []geom.Segment
	lengths  []float64 // cumulative arc length at the start of segment i
	total    float64
}

// NewLoop builds a Loop from an ordered, closed list of segments. The
// caller is responsible for ensuring seg[i].End() == seg[i+1].Start()
// (within tolerance) and that the loop closes.
func NewLoop(segments []geom.Segment) *Loop {
	l := &Loop{segments: segments}
	l.lengths = make([]float64, len(segments))
	acc := 0.0
	for i, s := range segments {
		l.lengths[i] = acc
		acc += s.Length()
	}
	l.total = acc
	return l
}

// NewPolygonLoop builds a Loop of straight segments from a closed
// vertex list (vertices[0] implicitly connects back to the last one).
func NewPolygonLoop(vertices []geom.Vec2) *Loop {
	segs := make([]geom.Segment, len(vertices))
	for i := range vertices {
		next := vertices[(i+1)%len(vertices)]
		segs[i] = geom.NewLineSegment(vertices[i], next)
	}
	return NewLoop(segs)
}

func (l *Loop) GetPerimeter() float64 { return l.total }

func (l *Loop) NumSegments() int { return len(l.segments) }

func (l *Loop) GetSegment(i int) geom.Segment { return l.segments[i] }

// Vertices returns the flattened straight-line approximation of the
// loop (arcs sampled to tol), suitable for building a RegionField.
func (l *Loop) Vertices(tol float64) []geom.Vec2 {
	var out []geom.Vec2
	for _, s := range l.segments {
		pts := s.Polyline(tol)
		if len(out) > 0 && len(pts) > 0 && out[len(out)-1].Equal(pts[0], 1e-9) {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// GetParametricPt returns the point at normalized arc-length
// parameter u in [0,1] around the loop.
func (l *Loop) GetParametricPt(u float64) geom.Vec2 {
	if len(l.segments) == 0 {
		return geom.Vec2{}
	}
	if u <= 0 {
		return l.segments[0].Start()
	}
	if u >= 1 {
		return l.segments[len(l.segments)-1].End()
	}
	target := u * l.total
	i := 0
	for i < len(l.segments)-1 && l.lengths[i+1] <= target {
		i++
	}
	seg := l.segments[i]
	segLen := seg.Length()
	if segLen < 1e-15 {
		return seg.Start()
	}
	localU := (target - l.lengths[i]) / segLen
	if seg.Kind == geom.SegArc {
		return seg.Arc.PointAt(localU)
	}
	return seg.Line.P1.Lerp(seg.Line.P2, localU)
}

// PointInPolyline is a ray-casting point-in-polygon test against the
// loop's straight-line approximation, with arcs flattened to tol.
func (l *Loop) PointInPolyline(p geom.Vec2, tol float64) bool {
	verts := l.Vertices(tol)
	inside := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xIntersect := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// LineIntersections returns every point where l crosses the loop's
// segments.
func (l *Loop) LineIntersections(line geom.LineSeg, tol float64) []geom.Vec2 {
	var out []geom.Vec2
	for _, s := range l.segments {
		if s.Kind == geom.SegArc {
			out = append(out, s.Arc.LineIntersect(line)...)
			continue
		}
		if p, ok := s.Line.Intersect(line); ok {
			out = append(out, p)
		}
	}
	return out
}
