package voronoi

import (
	"math"

	"github.com/chazu/pocketpath/internal/geom"
)

// Default is the bundled Generator. It triangulates the sample points
// with an incremental Bowyer-Watson construction and dualizes the
// result: every Delaunay edge shared by two triangles contributes one
// Voronoi edge between their circumcenters. Edges on the convex hull
// (shared by only one triangle) have no finite dual and are omitted —
// the MAT filter in §4.3 step 3 discards boundary-touching edges
// anyway, so the unbounded rays they would otherwise produce carry no
// information this generator needs.
type Default struct{}

func (Default) Generate(xs, ys []float64, bounds Bounds) []Edge {
	n := len(xs)
	if n != len(ys) || n < 3 {
		return nil
	}
	pts := make([]geom.Vec2, n)
	for i := range xs {
		pts[i] = geom.Vec2{X: xs[i], Y: ys[i]}
	}
	tris := bowyerWatson(pts)
	return dualize(pts, tris)
}

type triangle struct {
	a, b, c int // indices into the working point slice (includes the 3 super-triangle points at the end)
}

// bowyerWatson triangulates pts and returns triangles indexed into
// pts (super-triangle vertices and any triangle touching them are
// excluded from the result).
func bowyerWatson(pts []geom.Vec2) []triangle {
	n := len(pts)
	minP, maxP := pts[0], pts[0]
	for _, p := range pts {
		minP = geom.Vec2{X: math.Min(minP.X, p.X), Y: math.Min(minP.Y, p.Y)}
		maxP = geom.Vec2{X: math.Max(maxP.X, p.X), Y: math.Max(maxP.Y, p.Y)}
	}
	dx := maxP.X - minP.X
	dy := maxP.Y - minP.Y
	delta := math.Max(dx, dy)
	if delta < 1e-9 {
		delta = 1
	}
	mid := geom.Vec2{X: (minP.X + maxP.X) / 2, Y: (minP.Y + maxP.Y) / 2}

	// Super-triangle large enough to strictly contain every input
	// point; indices n, n+1, n+2 in the working slice.
	super := []geom.Vec2{
		{X: mid.X - 20*delta, Y: mid.Y - delta},
		{X: mid.X, Y: mid.Y + 20*delta},
		{X: mid.X + 20*delta, Y: mid.Y - delta},
	}
	work := append(append([]geom.Vec2{}, pts...), super...)
	superIdx := map[int]bool{n: true, n + 1: true, n + 2: true}

	tris := []triangle{{n, n + 1, n + 2}}

	for pi := 0; pi < n; pi++ {
		p := work[pi]
		var bad []triangle
		var rest []triangle
		for _, tr := range tris {
			if inCircumcircle(work, tr, p) {
				bad = append(bad, tr)
			} else {
				rest = append(rest, tr)
			}
		}

		boundary := polygonHole(bad)
		for _, e := range boundary {
			rest = append(rest, triangle{e[0], e[1], pi})
		}
		tris = rest
	}

	out := tris[:0]
	for _, tr := range tris {
		if superIdx[tr.a] || superIdx[tr.b] || superIdx[tr.c] {
			continue
		}
		out = append(out, tr)
	}
	return out
}

// polygonHole returns the boundary edges of the union of bad
// triangles: edges that belong to exactly one bad triangle.
func polygonHole(bad []triangle) [][2]int {
	type edgeKey struct{ u, v int }
	counts := map[edgeKey]int{}
	orig := map[edgeKey][2]int{}
	add := func(u, v int) {
		k := edgeKey{u, v}
		rk := edgeKey{v, u}
		if _, ok := counts[rk]; ok {
			counts[rk]++
			return
		}
		counts[k]++
		orig[k] = [2]int{u, v}
	}
	for _, tr := range bad {
		add(tr.a, tr.b)
		add(tr.b, tr.c)
		add(tr.c, tr.a)
	}
	var out [][2]int
	for k, c := range counts {
		if c == 1 {
			e := orig[k]
			out = append(out, e)
		}
	}
	return out
}

func inCircumcircle(pts []geom.Vec2, tr triangle, p geom.Vec2) bool {
	c, r, ok := circumcircle(pts[tr.a], pts[tr.b], pts[tr.c])
	if !ok {
		return false
	}
	return c.DistTo(p) <= r+1e-9
}

// circumcircle returns the center and radius of the circle through
// a, b, c. ok is false for (near-)collinear points.
func circumcircle(a, b, c geom.Vec2) (geom.Vec2, float64, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return geom.Vec2{}, 0, false
	}
	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y
	ux := (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d
	uy := (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d
	center := geom.Vec2{X: ux, Y: uy}
	return center, center.DistTo(a), true
}

// dualize turns a Delaunay triangulation into its dual Voronoi edges:
// one segment between the circumcenters of each pair of triangles
// sharing an edge.
func dualize(pts []geom.Vec2, tris []triangle) []Edge {
	type edgeKey struct{ u, v int }
	canon := func(u, v int) edgeKey {
		if u > v {
			u, v = v, u
		}
		return edgeKey{u, v}
	}
	owners := map[edgeKey][]geom.Vec2{}
	for _, tr := range tris {
		c, _, ok := circumcircle(pts[tr.a], pts[tr.b], pts[tr.c])
		if !ok {
			continue
		}
		for _, e := range [][2]int{{tr.a, tr.b}, {tr.b, tr.c}, {tr.c, tr.a}} {
			k := canon(e[0], e[1])
			owners[k] = append(owners[k], c)
		}
	}
	var edges []Edge
	for _, centers := range owners {
		if len(centers) == 2 && centers[0].DistTo(centers[1]) > 1e-9 {
			edges = append(edges, Edge{A: centers[0], B: centers[1]})
		}
	}
	return edges
}
