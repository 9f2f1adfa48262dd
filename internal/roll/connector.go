package roll

import (
	"math"
	"sort"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/spatial"
)

// SwitchBranch computes the connector polyline between two slices
// (§4.7): a direct biarc when dst is a child of src, otherwise a route
// through the least-common-ancestor chain that short-cuts through open
// space wherever May_shortcut allows it.
func SwitchBranch(dst, src *medial.Slice, dstPt, srcPt *geom.Vec2, colliders *spatial.Index) []geom.Vec2 {
	from := src.End
	if srcPt != nil {
		from = *srcPt
	}
	to := dst.Start
	if dstPt != nil {
		to = *dstPt
	}

	if dst.Parent == src {
		return biarcChord(src, dst, from, to)
	}

	path := lcaPath(src, dst)
	out := []geom.Vec2{from}
	cur := from
	for _, mid := range path {
		c := mid.Ball.Center
		if mayShortcutIndexed(cur, to, colliders) {
			break
		}
		out = append(out, c)
		cur = c
	}
	out = append(out, to)
	return out
}

// biarcChord builds a smooth biarc connector from a to b, with tangents
// derived from each slice's outward radial direction at its endpoint,
// rotated to be consistent with the slice's own rotation sense (§4.7).
func biarcChord(src, dst *medial.Slice, a, b geom.Vec2) []geom.Vec2 {
	t1 := radialTangent(src.Ball.Center, a, src.Dir)
	t2 := radialTangent(dst.Ball.Center, b, dst.Dir)
	biarc := geom.ComputeBiarc(a, t1, b, t2)
	return geom.MaterializeBiarc(biarc, 1e-3)
}

// radialTangent turns the outward normal from center to pt into a unit
// tangent consistent with the given rotation direction.
func radialTangent(center, pt geom.Vec2, dir geom.Dir) geom.Vec2 {
	outward := pt.Sub(center).Normalize()
	if dir == geom.CW {
		return outward.RightNormal()
	}
	return outward.LeftNormal()
}

// lcaPath returns the intermediate slices on the parent-chain path from
// src to dst (excluding both endpoints), via their least common
// ancestor: src's ancestors up to the LCA, the LCA itself (unless it is
// src or dst), then dst's ancestors from the LCA back down to (but
// excluding) dst.
func lcaPath(src, dst *medial.Slice) []*medial.Slice {
	ancestors := map[*medial.Slice]bool{}
	for s := src; s != nil; s = s.Parent {
		ancestors[s] = true
	}

	var lca *medial.Slice
	var dstChain []*medial.Slice // dst, dst.Parent, ... up to (excluding) lca
	for s := dst; s != nil; s = s.Parent {
		if ancestors[s] {
			lca = s
			break
		}
		dstChain = append(dstChain, s)
	}

	var srcChain []*medial.Slice // src, src.Parent, ... up to (excluding) lca
	for s := src; s != nil && s != lca; s = s.Parent {
		srcChain = append(srcChain, s)
	}

	if len(srcChain) > 0 {
		srcChain = srcChain[1:] // drop src itself
	}
	if len(dstChain) > 0 {
		dstChain = dstChain[1:] // drop dst itself
	}

	out := append([]*medial.Slice{}, srcChain...)
	if lca != nil && lca != src && lca != dst {
		out = append(out, lca)
	}
	for i := len(dstChain) - 1; i >= 0; i-- {
		out = append(out, dstChain[i])
	}
	return out
}

// MayShortcut decides whether the straight segment a→b lies entirely
// within the union of the given collider balls (§4.7).
func MayShortcut(a, b geom.Vec2, colliders []medial.Ball) bool {
	const tol = 1e-6
	for _, c := range colliders {
		if c.Contains(a, tol) && c.Contains(b, tol) {
			return true
		}
	}

	type hit struct {
		t   float64
		idx int
	}
	var hits []hit
	inside := map[int]bool{}
	dir := b.Sub(a)
	abLen := dir.Len()
	if abLen < 1e-15 {
		return true
	}
	dirN := dir.Normalize()

	for i, c := range colliders {
		if c.Contains(a, tol) {
			inside[i] = true
		}
		for _, t := range circleRayParams(a, dirN, c) {
			if t >= -tol && t <= abLen+tol {
				hits = append(hits, hit{t: t, idx: i})
			}
		}
	}
	if len(inside) == 0 {
		return false
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	for _, h := range hits {
		if h.t > abLen {
			break
		}
		if inside[h.idx] {
			delete(inside, h.idx)
		} else {
			inside[h.idx] = true
		}
		if len(inside) == 0 {
			return false
		}
	}
	return true
}

// circleRayParams returns the ray-parameter t (distance from origin
// along dir) of the 0, 1 or 2 points where the ray origin+t*dir crosses
// ball's boundary.
func circleRayParams(origin, dir geom.Vec2, ball medial.Ball) []float64 {
	f := origin.Sub(ball.Center)
	a := dir.Dot(dir)
	b := 2 * f.Dot(dir)
	c := f.Dot(f) - ball.Radius*ball.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
}

// MayShortcutIndexed is the index-backed overload of MayShortcut: it
// first queries colliders for balls near the bounding rect of a→b.
func MayShortcutIndexed(a, b geom.Vec2, colliders *spatial.Index) bool {
	return mayShortcutIndexed(a, b, colliders)
}

func mayShortcutIndexed(a, b geom.Vec2, colliders *spatial.Index) bool {
	if colliders == nil {
		return false
	}
	rect := geom.RectFromPoints(a, b)
	hits := colliders.Query(rect)
	balls := make([]medial.Ball, 0, len(hits))
	for _, h := range hits {
		if s, ok := h.(*medial.Slice); ok {
			balls = append(balls, s.Ball)
		}
	}
	return MayShortcut(a, b, balls)
}
