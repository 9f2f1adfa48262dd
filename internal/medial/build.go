package medial

import (
	"fmt"
	"math"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/mat"
	"github.com/chazu/pocketpath/internal/region"
)

// MICFunc computes the Maximum-Inscribed-Circle radius at a point.
type MICFunc func(p geom.Vec2) float64

// quantKey is a coordinate quantised to a tolerance grid, used as a
// hash-map key for the segment pool (§4.4).
type quantKey struct{ x, y int64 }

func quantize(p geom.Vec2, tol float64) quantKey {
	if tol <= 0 {
		tol = 1e-9
	}
	return quantKey{
		x: int64(math.Round(p.X / tol)),
		y: int64(math.Round(p.Y / tol)),
	}
}

// endpoint is one end of a pool segment: the point itself, the
// opposite end of the same MAT segment, and a link to the sibling
// entry (the other end's own pool registration) so that consuming a
// segment from one side also retires it from the other — without
// this, a later traversal reaching the far endpoint would rediscover
// the segment and walk straight back the way it came.
type endpoint struct {
	p          geom.Vec2
	other      geom.Vec2
	siblingIdx int
	sealed     bool
	removed    bool
}

// pool is the segment pool of §4.4: each endpoint of each MAT segment,
// registered unless it's sealed (MIC below the passability threshold).
type pool struct {
	byKey map[quantKey][]int
	ends  []endpoint
	tol   float64
}

func newPool(segments []mat.Segment, mic MICFunc, cutterRadius float64, tol float64) *pool {
	p := &pool{byKey: make(map[quantKey][]int), tol: tol}
	passable := func(pt geom.Vec2) bool {
		return mic(pt) > 0.1*cutterRadius
	}
	for _, s := range segments {
		aSealed := !passable(s.A)
		bSealed := !passable(s.B)
		ai := len(p.ends)
		p.ends = append(p.ends, endpoint{p: s.A, other: s.B, sealed: aSealed})
		bi := len(p.ends)
		p.ends = append(p.ends, endpoint{p: s.B, other: s.A, sealed: bSealed})
		p.ends[ai].siblingIdx = bi
		p.ends[bi].siblingIdx = ai
		if !aSealed {
			k := quantize(s.A, tol)
			p.byKey[k] = append(p.byKey[k], ai)
		}
		if !bSealed {
			k := quantize(s.B, tol)
			p.byKey[k] = append(p.byKey[k], bi)
		}
	}
	return p
}

// PullFollowPoints returns and removes from the pool all other
// endpoints of segments incident to p (§4.4), retiring each segment's
// far-end registration too so it cannot be walked back over.
func (p *pool) PullFollowPoints(pt geom.Vec2) []geom.Vec2 {
	k := quantize(pt, p.tol)
	idxs, ok := p.byKey[k]
	if !ok {
		return nil
	}
	delete(p.byKey, k)
	out := make([]geom.Vec2, 0, len(idxs))
	for _, i := range idxs {
		if p.ends[i].removed {
			continue
		}
		p.ends[i].removed = true
		sib := p.ends[i].siblingIdx
		p.ends[sib].removed = true
		p.retireFromBucket(p.ends[sib].p, sib)
		out = append(out, p.ends[i].other)
	}
	return out
}

// retireFromBucket removes a single entry index from the bucket keyed
// at p (leaving any other, unrelated entries at that key untouched).
func (p *pool) retireFromBucket(at geom.Vec2, idx int) {
	k := quantize(at, p.tol)
	bucket, ok := p.byKey[k]
	if !ok {
		return
	}
	kept := bucket[:0]
	for _, i := range bucket {
		if i != idx {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		delete(p.byKey, k)
	} else {
		p.byKey[k] = kept
	}
}

// allPassableEndpoints returns every unsealed, unremoved endpoint
// still in the pool (used for auto root selection).
func (p *pool) allPassableEndpoints() []geom.Vec2 {
	var out []geom.Vec2
	for _, idxs := range p.byKey {
		for _, i := range idxs {
			if !p.ends[i].removed {
				out = append(out, p.ends[i].p)
			}
		}
	}
	return out
}

// Config bundles the small set of parameters the tree builder needs.
type Config struct {
	CutterRadius     float64
	GeneralTolerance float64
}

// Build implements §4.4 in full: segment pool construction, root
// selection (auto or from a user start point), and greedy growth with
// deep-distance pruning. It returns (nil, nil) — not an error — when
// the MAT is empty or no admissible root endpoint exists, matching §7
// kind 2. A user start point outside the region or in a channel too
// narrow to pass the cutter is instead reported as a non-nil error.
func Build(segments []mat.Segment, start *geom.Vec2, r *region.Region, mic MICFunc, cfg Config) (*Branch, error) {
	if len(segments) == 0 {
		return nil, nil
	}
	p := newPool(segments, mic, cfg.CutterRadius, cfg.GeneralTolerance)

	root, rootEnd, err := selectRoot(p, start, r, mic, cfg)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	var curve []geom.Vec2
	if start != nil {
		curve = []geom.Vec2{*start, *root}
	} else {
		curve = []geom.Vec2{*root}
	}
	branch := NewBranch(curve, nil)
	_ = rootEnd

	attachSegments(branch, p, cfg)

	branch.SortChildren()
	return branch, nil
}

// selectRoot picks the root endpoint per §4.4: without a user start
// point, the passable endpoint of maximum MIC radius; with one,
// reject if outside the region or below the passability threshold,
// otherwise the closest passable MAT endpoint reachable by a straight
// segment entirely inside the region.
func selectRoot(p *pool, start *geom.Vec2, r *region.Region, mic MICFunc, cfg Config) (*geom.Vec2, *geom.Vec2, error) {
	if start == nil {
		candidates := p.allPassableEndpoints()
		if len(candidates) == 0 {
			return nil, nil, nil
		}
		best := candidates[0]
		bestMIC := mic(best)
		for _, c := range candidates[1:] {
			if m := mic(c); m > bestMIC {
				best, bestMIC = c, m
			}
		}
		return &best, nil, nil
	}

	if !r.Contains(*start) {
		return nil, nil, fmt.Errorf("medial: startpoint is outside the pocket")
	}
	if mic(*start) <= 0.1*cfg.CutterRadius {
		return nil, nil, fmt.Errorf("medial: startpoint is in a channel too narrow to pass the cutter")
	}

	candidates := p.allPassableEndpoints()
	var best *geom.Vec2
	bestDist := math.Inf(1)
	for i := range candidates {
		c := candidates[i]
		if !straightLineInsideRegion(*start, c, r) {
			continue
		}
		d := start.DistTo(c)
		if d < bestDist {
			bestDist = d
			cc := c
			best = &cc
		}
	}
	if best == nil {
		return nil, nil, nil
	}
	return best, nil, nil
}

func straightLineInsideRegion(a, b geom.Vec2, r *region.Region) bool {
	const samples = 16
	for i := 0; i <= samples; i++ {
		u := float64(i) / samples
		if !r.Contains(a.Lerp(b, u)) {
			return false
		}
	}
	return true
}

// attachSegments implements the greedy-growth recursion of §4.4:
// starting from branch's end, repeatedly pull followers. Exactly one
// follower extends the branch linearly; more than one spawns a child
// branch per follower. After recursion, children with deep distance at
// or below general tolerance are discarded as noise.
func attachSegments(branch *Branch, p *pool, cfg Config) {
	for {
		followers := p.PullFollowPoints(branch.End())
		switch len(followers) {
		case 0:
			return
		case 1:
			branch.Append(followers[0])
		default:
			for _, f := range followers {
				child := NewBranch([]geom.Vec2{branch.End(), f}, branch)
				attachSegments(child, p, cfg)
				branch.Children = append(branch.Children, child)
			}
			pruneShallowChildren(branch, cfg.GeneralTolerance)
			return
		}
	}
}

func pruneShallowChildren(branch *Branch, tol float64) {
	kept := branch.Children[:0]
	for _, c := range branch.Children {
		if c.DeepDistance() > tol {
			kept = append(kept, c)
			c.Parent = branch
		}
	}
	branch.Children = kept
}
