// Package mat builds the filtered Medial-Axis-Transform segment list
// for a region (§4.3): it samples the boundary, stabilises the
// external Voronoi generator with a phantom point, and filters the
// resulting edges down to the ones that lie strictly inside the
// region.
package mat

import (
	"math"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/region"
	"github.com/chazu/pocketpath/internal/voronoi"
)

// Segment is one retained MAT segment (§3): a line between two points
// strictly inside the region.
type Segment struct {
	A, B geom.Vec2
}

// SampleBoundary walks every segment of the outer polygon and every
// island, emitting the segment's start point followed by interior
// samples at spacing cutterRadius/10 (§4.3 step 1). Sampling at a
// fixed arc-length spacing for both lines and arcs preserves sharp
// corners, since the corner vertex is always emitted exactly once as a
// segment boundary rather than being smoothed over by resampling.
func SampleBoundary(r *region.Region, cutterRadius float64) []geom.Vec2 {
	var pts []geom.Vec2
	spacing := cutterRadius / 10
	if spacing <= 0 {
		spacing = 1e-3
	}
	sampleLoop := func(p region.Polyline) {
		for i := 0; i < p.NumSegments(); i++ {
			seg := p.GetSegment(i)
			pts = append(pts, seg.Start())
			length := seg.Length()
			n := int(math.Floor(length / spacing))
			for k := 1; k < n; k++ {
				u := float64(k) * spacing / length
				pts = append(pts, pointAtSegment(seg, u))
			}
		}
	}
	sampleLoop(r.Outer)
	for _, isl := range r.Islands {
		sampleLoop(isl)
	}
	return pts
}

func pointAtSegment(s geom.Segment, u float64) geom.Vec2 {
	if s.Kind == geom.SegArc {
		return s.Arc.PointAt(u)
	}
	return s.Line.P1.Lerp(s.Line.P2, u)
}

// Stabilize implements §4.3 step 2's "Voronoi hack": it appends one
// phantom point directly below the leftmost-bottom sample, at vertical
// distance (max_x-min_x)/2, and returns the expanded bounding box. Any
// Voronoi edge the generator produces touching the phantom point will
// fall outside the returned (enlarged) bounds and be discarded
// naturally by Filter.
//
// This is a workaround for one specific sweep-line Voronoi generator's
// sensitivity to degenerate inputs; a well-behaved generator should
// have StabilizePhantomPoint turned off in Config.
func Stabilize(pts []geom.Vec2) (stabilized []geom.Vec2, bounds voronoi.Bounds) {
	if len(pts) == 0 {
		return pts, voronoi.Bounds{}
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	leftBottomIdx := 0
	for i, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		// Leftmost-bottom: smallest X, tie-broken by smallest Y.
		if p.X < pts[leftBottomIdx].X || (p.X == pts[leftBottomIdx].X && p.Y < pts[leftBottomIdx].Y) {
			leftBottomIdx = i
		}
	}
	dy := (maxX - minX) / 2
	phantom := geom.Vec2{X: pts[leftBottomIdx].X, Y: pts[leftBottomIdx].Y - dy}

	stabilized = append(append([]geom.Vec2{}, pts...), phantom)
	bounds = voronoi.Bounds{
		Min: geom.Vec2{X: minX, Y: minY - dy},
		Max: geom.Vec2{X: maxX, Y: maxY},
	}
	return stabilized, bounds
}

// Filter implements §4.3 step 3: drop edges shorter than tol, drop
// edges with either endpoint outside the outer polygon or inside any
// island (tested to tol), and optionally drop edges whose interior
// crosses any boundary segment.
func Filter(edges []voronoi.Edge, r *region.Region, tol float64, filterBoundaryCrossing bool) []Segment {
	var out []Segment
	for _, e := range edges {
		if e.A.DistTo(e.B) < tol {
			continue
		}
		if !insideRegion(r, e.A, tol) || !insideRegion(r, e.B, tol) {
			continue
		}
		if filterBoundaryCrossing && crossesBoundary(r, e, tol) {
			continue
		}
		out = append(out, Segment{A: e.A, B: e.B})
	}
	return out
}

func insideRegion(r *region.Region, p geom.Vec2, tol float64) bool {
	if !r.Outer.PointInPolyline(p, tol) {
		return false
	}
	for _, isl := range r.Islands {
		if isl.PointInPolyline(p, tol) {
			return false
		}
	}
	return true
}

func crossesBoundary(r *region.Region, e voronoi.Edge, tol float64) bool {
	line := geom.LineSeg{P1: e.A, P2: e.B}
	if len(r.Outer.LineIntersections(line, tol)) > 0 {
		return true
	}
	for _, isl := range r.Islands {
		if len(isl.LineIntersections(line, tol)) > 0 {
			return true
		}
	}
	return false
}

// Build runs the full §4.3 pipeline: sample, optionally stabilise,
// invoke gen, and filter.
func Build(r *region.Region, cutterRadius float64, gen voronoi.Generator, tol float64, stabilizePhantom, filterBoundaryCrossing bool) []Segment {
	samples := SampleBoundary(r, cutterRadius)
	if len(samples) < 3 {
		return nil
	}

	var xs, ys []float64
	var bounds voronoi.Bounds
	if stabilizePhantom {
		stabilized, b := Stabilize(samples)
		bounds = b
		for _, p := range stabilized {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	} else {
		bounds = voronoi.Bounds{Min: geom.Vec2{}, Max: geom.Vec2{}}
		minX, minY := samples[0].X, samples[0].Y
		maxX, maxY := samples[0].X, samples[0].Y
		for _, p := range samples {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		bounds = voronoi.Bounds{Min: geom.Vec2{X: minX, Y: minY}, Max: geom.Vec2{X: maxX, Y: maxY}}
	}

	edges := gen.Generate(xs, ys, bounds)
	return Filter(edges, r, tol, filterBoundaryCrossing)
}
