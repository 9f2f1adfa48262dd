package geom

import "math"

// SampleBezier flattens a cubic Bezier to a polyline such that
// consecutive chords stay within tol of the true curve, using adaptive
// subdivision (de Casteljau) in the spirit of a flattening pass over a
// Bezier path.
func SampleBezier(p0, p1, p2, p3 Vec2, tol float64) []Vec2 {
	var out []Vec2
	flattenBezier(p0, p1, p2, p3, tol, 0, &out)
	out = append(out, p3)
	return out
}

func flattenBezier(p0, p1, p2, p3 Vec2, tol float64, depth int, out *[]Vec2) {
	*out = append(*out, p0)
	if depth > 24 || bezierFlatEnough(p0, p1, p2, p3, tol) {
		return
	}
	// de Casteljau subdivision at u=0.5.
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	left := *out
	*out = left[:len(left)-1] // drop p0, it's re-added by the recursive call
	flattenBezier(p0, p01, p012, mid, tol, depth+1, out)
	flattenBezier(mid, p123, p23, p3, tol, depth+1, out)
}

// bezierFlatEnough estimates flatness as the distance of the control
// points from the chord p0->p3.
func bezierFlatEnough(p0, p1, p2, p3 Vec2, tol float64) bool {
	chord := LineSeg{P1: p0, P2: p3}
	_, d1 := chord.NearestPoint(p1)
	_, d2 := chord.NearestPoint(p2)
	return d1 <= tol && d2 <= tol
}

// SampleHermite flattens a cubic Hermite segment (endpoints p0,p1 with
// tangents m0,m1) to a polyline within tol, by converting to the
// equivalent Bezier control points and reusing the Bezier flattener.
func SampleHermite(p0, m0, p1, m1 Vec2, tol float64) []Vec2 {
	c1 := p0.Add(m0.Scale(1.0 / 3.0))
	c2 := p1.Sub(m1.Scale(1.0 / 3.0))
	return SampleBezier(p0, c1, c2, p1, tol)
}

// ArchimedeanSpiral produces a flat spiral polyline centered at
// center, starting at start, with the given radial pitch per full
// turn and rotation direction. It grows outward until it reaches
// maxRadius, or r0+pitch (one turn beyond the start radius r0) when
// that is larger.
func ArchimedeanSpiral(center, start Vec2, pitch float64, dir Dir, maxRadius, tol float64) []Vec2 {
	r0 := center.DistTo(start)
	theta0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	if pitch <= 0 {
		pitch = 1e-6
	}
	b := pitch / (2 * math.Pi)
	sign := 1.0
	if dir == CW {
		sign = -1.0
	}

	// Step size in theta chosen so consecutive points stay within tol
	// at the largest radius we'll reach.
	maxR := math.Max(maxRadius, r0+pitch)
	step := tol / maxR
	if step < 1e-4 {
		step = 1e-4
	}
	if step > 0.2 {
		step = 0.2
	}

	var pts []Vec2
	theta := theta0
	r := r0
	for r < maxR {
		pts = append(pts, Vec2{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		})
		theta += sign * step
		r = r0 + b*math.Abs(theta-theta0)
	}
	pts = append(pts, Vec2{
		X: center.X + maxR*math.Cos(theta),
		Y: center.Y + maxR*math.Sin(theta),
	})
	return pts
}
