package geom

import "math"

// Biarc is a pair of tangent-continuous circular arcs interpolating
// two endpoints and their tangents, joined at Pm. Either arc may
// degenerate to a straight line (Line1 / Line2 non-nil,
// corresponding Arc1/Arc2 zero-valued) per Juckett's construction.
type Biarc struct {
	P1, P2 Vec2
	Pm     Vec2
	Arc1   Arc
	Arc2   Arc
	Line1  *LineSeg
	Line2  *LineSeg

	fullyDegenerate bool
}

// Degenerate reports whether the whole biarc collapsed to a single
// straight segment from p1 to p2 (equal tangents and zero cross term,
// or two collinear half-segments through pm).
func (b Biarc) Degenerate() bool {
	return b.fullyDegenerate
}

// ComputeBiarc builds a tangent-continuous biarc from p1 (unit tangent
// t1, direction of travel) to p2 (unit tangent t2), following Ryan
// Juckett's construction transcribed in the geometry-kernel design:
//
//	v = p2 - p1, t = t1 + t2, D = 2(1 - t1.t2)
//	d2 = (-v.t + sqrt((v.t)^2 + 2(1-t1.t2)(v.v))) / D
//	pm = 1/2 (p1 + p2 + d2 (t1 - t2))
//
// When D is (near) zero the tangents are equal and the construction
// falls back to D' = 4(v.t2); if that is also zero the biarc
// degenerates entirely to the straight segment p1->p2.
func ComputeBiarc(p1, t1, p2, t2 Vec2) Biarc {
	t1 = t1.Normalize()
	t2 = t2.Normalize()
	v := p2.Sub(p1)
	t := t1.Add(t2)

	dot := t1.Dot(t2)
	D := 2 * (1 - dot)

	var d2 float64
	if math.Abs(D) < 1e-12 {
		Dp := 4 * v.Dot(t2)
		if math.Abs(Dp) < 1e-12 {
			line := LineSeg{P1: p1, P2: p2}
			return Biarc{P1: p1, P2: p2, Pm: p1.Lerp(p2, 0.5), Line1: &line, Line2: &line, fullyDegenerate: true}
		}
		// D=0 fallback: pm determined from the single remaining
		// quadratic term, per Juckett's note on equal tangents.
		d2 = v.Dot(v) / Dp
	} else {
		vt := v.Dot(t)
		disc := vt*vt + 2*(1-dot)*v.Dot(v)
		if disc < 0 {
			disc = 0
		}
		d2 = (-vt + math.Sqrt(disc)) / D
	}

	pm := p1.Add(p2).Add(t1.Sub(t2).Scale(d2)).Scale(0.5)

	b := Biarc{P1: p1, P2: p2, Pm: pm}
	b.Arc1, b.Line1 = arcOrLine(p1, t1, pm)
	b.Arc2, b.Line2 = arcOrLine(p2, t2.Scale(-1), pm)

	// Both halves can independently degenerate to straight segments
	// through pm (e.g. the equal-tangent, collinear-endpoints case)
	// without hitting the D'=0 branch above. When that happens and the
	// two halves are themselves collinear, the whole biarc is just the
	// straight segment p1->p2.
	if b.Line1 != nil && b.Line2 != nil {
		dir1 := pm.Sub(p1)
		dir2 := p2.Sub(pm)
		if math.Abs(dir1.Cross(dir2)) < 1e-9*(dir1.Len()*dir2.Len()+1) {
			line := LineSeg{P1: p1, P2: p2}
			b.Line1, b.Line2 = &line, &line
			b.Arc1, b.Arc2 = Arc{}, Arc{}
			b.fullyDegenerate = true
		}
	}
	return b
}

// arcOrLine builds the arc through p tangent to t that also passes
// through pm, per:
//
//	c = p + ((pm-p).(pm-p)) / (2 n.(pm-p)) n
//
// where n is t's left normal; it degenerates to a line when the
// denominator vanishes (p, pm and the tangent direction are collinear).
func arcOrLine(p, t, pm Vec2) (Arc, *LineSeg) {
	n := t.LeftNormal()
	w := pm.Sub(p)
	denom := 2 * n.Dot(w)
	if math.Abs(denom) < 1e-12 {
		line := LineSeg{P1: p, P2: pm}
		return Arc{}, &line
	}
	c := p.Add(n.Scale(w.Dot(w) / denom))
	radius := c.DistTo(p)
	startAng := math.Atan2(p.Y-c.Y, p.X-c.X)
	endAng := math.Atan2(pm.Y-c.Y, pm.X-c.X)

	// Rotation direction from the sign of (p-c).n: negative means the
	// center lies on the left of t (CCW, positive sweep), positive means
	// it lies on the right (CW, negative sweep).
	sweepSign := -sign((p.Sub(c)).Dot(n))
	sweep := angleDiff(startAng, endAng, sweepSign)
	return Arc{Center: c, Radius: radius, Start: startAng, Sweep: sweep}, nil
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

// angleDiff returns the signed sweep from start to end consistent with
// the requested direction (positive dirSign = CCW/positive sweep).
func angleDiff(start, end, dirSign float64) float64 {
	d := normalizeAngle(end - start)
	if dirSign < 0 && d > 0 {
		d -= 2 * math.Pi
	} else if dirSign > 0 && d < 0 {
		d += 2 * math.Pi
	}
	if dirSign == 0 {
		// Degenerate turn sense: take the shorter sweep.
		if d > math.Pi {
			d -= 2 * math.Pi
		}
	}
	return d
}

// MaterializeBiarc flattens a biarc into a polyline (straight segments)
// to the given chord tolerance.
func MaterializeBiarc(b Biarc, tol float64) []Vec2 {
	if b.fullyDegenerate {
		return []Vec2{b.P1, b.P2}
	}
	var pts []Vec2
	if b.Line1 != nil {
		pts = append(pts, b.Line1.P1, b.Line1.P2)
	} else {
		pts = append(pts, SampleArc(b.Arc1, tol)...)
	}
	var second []Vec2
	if b.Line2 != nil {
		second = []Vec2{b.Line2.P2, b.Line2.P1}
	} else {
		second = reversePts(SampleArc(b.Arc2, tol))
	}
	if len(second) > 0 && len(pts) > 0 && pts[len(pts)-1].Equal(second[0], 1e-9) {
		second = second[1:]
	}
	pts = append(pts, second...)
	return pts
}

func reversePts(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// SampleArc flattens an arc to a polyline such that the chord error
// stays within tol.
func SampleArc(a Arc, tol float64) []Vec2 {
	if a.Radius < 1e-12 {
		return []Vec2{a.P1(), a.P2()}
	}
	// Chord-height formula: h = r(1-cos(theta/2)); solve for max step
	// angle given tol, then subdivide |sweep| into steps of that size.
	cosArg := 1 - tol/a.Radius
	if cosArg > 1 {
		cosArg = 1
	}
	if cosArg < -1 {
		cosArg = -1
	}
	maxStep := 2 * math.Acos(cosArg)
	if maxStep < 1e-6 {
		maxStep = 1e-6
	}
	n := int(math.Ceil(math.Abs(a.Sweep) / maxStep))
	if n < 1 {
		n = 1
	}
	pts := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		pts = append(pts, a.PointAt(u))
	}
	return pts
}
