package roll

import (
	"math"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/spatial"
)

const maxBisections = 64

// searchNextSlice binary-searches the branch parameter u in [left, 1]
// for the next slice whose engagement against parentSlice lands within
// tolerance of cfg.MaxEngagement, per §4.5's main loop.
func searchNextSlice(b *medial.Branch, left float64, parentSlice *medial.Slice, mic medial.MICFunc, colliders *spatial.Index, cfg Config) (*medial.Slice, float64, bool) {
	right := 1.0
	var candidate *medial.Slice
	candidateU := left
	dir := effectiveDir(cfg.MillDirection)

	for i := 0; i < maxBisections; i++ {
		mid := (left + right) / 2
		p := b.GetParametricPt(mid)
		r := mic(p)

		if r < cfg.minPassableMIC() {
			right = mid
		} else {
			s := tentativeSlice(parentSlice, p, r, dir)
			if s.MaxEngagement == 0 {
				if s.Dist <= 0 {
					left = mid
				} else {
					right = mid
				}
			} else {
				refine(s, collidersAround(colliders, s), cfg)
				candidate = s
				candidateU = mid
				switch {
				case cfg.MaxEngagement > 0 && s.MaxEngagement > cfg.MaxEngagement:
					right = mid
				case cfg.MaxEngagement > 0 && (cfg.MaxEngagement-s.MaxEngagement)/cfg.MaxEngagement > cfg.EngagementTolerance:
					left = mid
				default:
					left = mid
					i = maxBisections // force exit after this iteration
				}
			}
		}

		if b.GetParametricPt(left).DistTo(b.GetParametricPt(right)) < cfg.GeneralTolerance {
			break
		}
	}

	if candidate == nil {
		return nil, left, false
	}
	return candidate, candidateU, true
}

// tentativeSlice builds the single-arc estimate of §4.5: the new ball's
// overlap depth against the parent ball gives Max_engagement (0 when
// the balls fail to intersect, matching the Design Notes'
// disjoint-equivalent treatment of a degenerate/nested pair), and the
// arc runs between the two balls' intersection points, picking the
// intersection nearer the parent's current end point as the start so
// consecutive slices join without a reversal.
func tentativeSlice(parent *medial.Slice, p geom.Vec2, r float64, dir geom.Dir) *medial.Slice {
	ball := medial.Ball{Center: p, Radius: r}
	dist := medial.Dist(parent.Ball, ball)
	s := &medial.Slice{Ball: ball, Dir: dir, Dist: dist}

	pts := geom.CircleCircleIntersect(parent.Ball.Center, parent.Ball.Radius, p, r)
	if len(pts) < 2 {
		s.MaxEngagement = 0
		s.Start, s.End = p, p
		return s
	}

	engagement := -dist
	if engagement < 0 {
		engagement = 0
	}

	a, bpt := pts[0], pts[1]
	if parent.End.DistTo(bpt) < parent.End.DistTo(a) {
		a, bpt = bpt, a
	}
	arc := arcBetween(p, r, a, bpt, dir)
	s.Segments = []geom.Arc{arc}
	s.Start = arc.P1()
	s.End = arc.P2()
	s.MaxEngagement = engagement
	return s
}

// arcBetween builds the arc of the circle (center, radius) that runs
// from a to b in the given rotation direction.
func arcBetween(center geom.Vec2, radius float64, a, b geom.Vec2, dir geom.Dir) geom.Arc {
	startAngle := math.Atan2(a.Y-center.Y, a.X-center.X)
	endAngle := math.Atan2(b.Y-center.Y, b.X-center.X)
	sweep := endAngle - startAngle
	switch dir {
	case geom.CCW:
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	default: // CW (Unknown is normalized to CW before this is called)
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}
	return geom.Arc{Center: center, Radius: radius, Start: startAngle, Sweep: sweep}
}

// collidersAround returns every already-placed slice whose bounding
// rect overlaps s's, for engagement refinement.
func collidersAround(idx *spatial.Index, s *medial.Slice) []*medial.Slice {
	if idx == nil {
		return nil
	}
	hits := idx.Query(s.Rect())
	out := make([]*medial.Slice, 0, len(hits))
	for _, h := range hits {
		if c, ok := h.(*medial.Slice); ok {
			out = append(out, c)
		}
	}
	return out
}

// refine implements the two-stage engagement contract of §4.5: a point
// of the swept arc already covered by some other finished ball is
// travel through already-cut material, not a fresh cut, so those
// portions are subtracted, leaving one or more sub-segments of
// genuinely fresh engagement. Max_engagement is re-evaluated as the
// worst overlap against any collider (the parent included, since it is
// itself registered in the index by the time refine runs), derated
// when subtraction produced more than one surviving sub-segment.
func refine(s *medial.Slice, colliders []*medial.Slice, cfg Config) {
	if len(s.Segments) == 0 {
		return
	}
	arc := s.Segments[0]

	const samples = 24
	covered := make([]bool, samples+1)
	worst := s.MaxEngagement
	for i := 0; i <= samples; i++ {
		u := float64(i) / float64(samples)
		pt := arc.PointAt(u)
		for _, c := range colliders {
			if pt.DistTo(c.Ball.Center) <= c.Ball.Radius {
				covered[i] = true
			}
			if eng := c.Ball.Radius + s.Ball.Radius - c.Ball.Center.DistTo(s.Ball.Center); eng > worst {
				worst = eng
			}
		}
	}

	segments := freshRuns(arc, covered, samples)
	if len(segments) == 0 {
		s.MaxEngagement = 0
		s.Segments = nil
		return
	}
	s.Segments = segments
	if len(segments) > 1 {
		worst *= cfg.SegmentedSliceEngagementDerating
	}
	s.MaxEngagement = worst
	s.Start = segments[0].P1()
	s.End = segments[len(segments)-1].P2()
}

// freshRuns returns the contiguous sub-arcs of arc whose samples are
// not covered by any collider — the portions that actually remove new
// material.
func freshRuns(arc geom.Arc, covered []bool, samples int) []geom.Arc {
	var out []geom.Arc
	i := 0
	for i <= samples {
		if covered[i] {
			i++
			continue
		}
		j := i
		for j <= samples && !covered[j] {
			j++
		}
		out = append(out, subArc(arc, float64(i)/float64(samples), float64(j-1)/float64(samples)))
		i = j
	}
	return out
}

func subArc(arc geom.Arc, u0, u1 float64) geom.Arc {
	return geom.Arc{
		Center: arc.Center,
		Radius: arc.Radius,
		Start:  arc.Start + arc.Sweep*u0,
		Sweep:  arc.Sweep * (u1 - u0),
	}
}
