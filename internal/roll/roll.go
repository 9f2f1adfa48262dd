// Package roll implements the slice placer (§4.5): it walks the medial
// tree depth-first, placing engagement-bounded slices along each
// branch's curve and threading a running parent/last slice between
// them. It also carries the connector algorithm of §4.7 (SwitchBranch,
// MayShortcut), since the placer itself needs it the moment a branch's
// first slice is accepted — internal/stitch reuses the same functions
// for the return-to-base connector rather than duplicating them.
package roll

import (
	"math"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/spatial"
)

// Logger is the subset of the host logging collaborator the placer
// needs (§6's log/warn/err, minus the info-level log line it never
// uses). Any type with these two methods satisfies it, so the pocket
// package's Logger implementation needs no import of this package.
type Logger interface {
	Warn(format string, args ...any)
	Err(format string, args ...any)
}

// nopLogger discards everything; used when a caller passes a nil Logger.
type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Err(string, ...any)  {}

// Config bundles the engagement and passability parameters §4.5 needs.
type Config struct {
	CutterRadius                     float64
	GeneralTolerance                 float64
	MaxEngagement                    float64
	MinEngagement                    float64
	EngagementTolerance              float64 // ε_eng, fraction of max_eng
	SegmentedSliceEngagementDerating float64
	MillDirection                    geom.Dir
}

func (c Config) minPassableMIC() float64 { return 0.1 * c.CutterRadius }

func effectiveDir(d geom.Dir) geom.Dir {
	if d == geom.Unknown {
		return geom.CW
	}
	return d
}

// Roll walks root and every descendant depth-first (children must
// already be sorted short-first by medial.Build), placing slices on
// each branch and threading a single running "last finished slice"
// between branches, per §4.5.
func Roll(root *medial.Branch, mic medial.MICFunc, colliders *spatial.Index, log Logger, cfg Config) {
	if root == nil {
		return
	}
	if log == nil {
		log = nopLogger{}
	}
	var last *medial.Slice
	var walk func(b *medial.Branch)
	walk = func(b *medial.Branch) {
		rollBranch(b, &last, mic, colliders, log, cfg)
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(root)
}

// rollBranch places slices along a single branch's curve, starting
// from its root slice (branch has no parent) or by attaching to the
// nearest ancestor slice (non-root branch), per §4.5.
func rollBranch(b *medial.Branch, last **medial.Slice, mic medial.MICFunc, colliders *spatial.Index, log Logger, cfg Config) {
	var parentSlice *medial.Slice

	if b.Parent == nil {
		c0 := b.Curve[0]
		r0 := mic(c0)
		if r0 <= cfg.minPassableMIC() {
			log.Warn("roll: root branch start point is impassable, nothing to place")
			return
		}
		root := &medial.Slice{
			Ball:     medial.Ball{Center: c0, Radius: r0},
			Segments: []geom.Arc{fullCircle(c0, r0, effectiveDir(cfg.MillDirection))},
			Dir:      effectiveDir(cfg.MillDirection),
			Start:    c0,
			End:      c0,
		}
		b.Slices = append(b.Slices, root)
		registerSlice(colliders, root)
		parentSlice = root
		*last = root
	} else {
		anc := b.AncestorSlices()
		if len(anc) == 0 {
			log.Warn("roll: branch abandoned, no ancestor slice to attach to")
			return
		}
		c0 := b.Curve[0]
		best := anc[0]
		bestDist := c0.DistTo(best.Ball.Center)
		for _, s := range anc[1:] {
			if d := c0.DistTo(s.Ball.Center); d < bestDist {
				best, bestDist = s, d
			}
		}
		parentSlice = best
	}

	left := 0.0
	for left < 1 {
		candidate, newLeft, found := searchNextSlice(b, left, parentSlice, mic, colliders, cfg)
		if !found {
			return
		}

		if cfg.MaxEngagement > 0 {
			overshoot := (candidate.MaxEngagement - cfg.MaxEngagement) / cfg.MaxEngagement
			if overshoot > 10*cfg.EngagementTolerance {
				log.Err("roll: relaxed engagement overshoot %.4f exceeds tolerance, terminating branch", overshoot)
				return
			}
		}
		if candidate.MaxEngagement < cfg.MinEngagement {
			// Too light a cut to be worth emitting; silent per §4.5.
			return
		}

		candidate.Parent = parentSlice
		candidate.Dist = medial.Dist(parentSlice.Ball, candidate.Ball)

		if len(b.Slices) == 0 && b.Parent != nil && *last != nil {
			b.EntryConnector = SwitchBranch(candidate, *last, nil, nil, colliders)
		}
		b.Slices = append(b.Slices, candidate)
		registerSlice(colliders, candidate)
		parentSlice = candidate
		*last = candidate
		left = newLeft
	}
}

func registerSlice(idx *spatial.Index, s *medial.Slice) {
	if idx == nil {
		return
	}
	idx.Insert(s.Rect(), s)
}

func fullCircle(center geom.Vec2, radius float64, dir geom.Dir) geom.Arc {
	sweep := 2 * math.Pi
	if dir == geom.CW {
		sweep = -sweep
	}
	return geom.Arc{Center: center, Radius: radius, Start: 0, Sweep: sweep}
}
