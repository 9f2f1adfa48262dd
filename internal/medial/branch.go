// Package medial builds the rooted tree of medial-axis branches (§4.4)
// and defines the Branch/Slice data model (§3) that the slice placer
// (internal/roll) and path stitcher (internal/stitch) operate on.
package medial

import "github.com/chazu/pocketpath/internal/geom"

// Branch is a node in the medial tree: a contiguous corridor with an
// ordered polyline curve, a parent (nil at the root), children sorted
// by ascending deep distance, and the slices placed along it (§3).
type Branch struct {
	Curve    []geom.Vec2
	Parent   *Branch
	Children []*Branch

	Slices []*Slice

	// EntryConnector is populated when the first slice is placed on a
	// non-root branch (§4.5); nil for the root branch.
	EntryConnector []geom.Vec2

	lengths []float64 // cumulative arc length at the start of each curve point
	total   float64
}

// NewBranch creates a branch from an initial curve. Child branches
// start with two points; an auto-selected root branch starts with a
// single point that greedy growth may or may not extend.
func NewBranch(curve []geom.Vec2, parent *Branch) *Branch {
	b := &Branch{Curve: curve, Parent: parent}
	b.computeLengths()
	return b
}

func (b *Branch) computeLengths() {
	b.lengths = make([]float64, len(b.Curve))
	acc := 0.0
	for i := range b.Curve {
		b.lengths[i] = acc
		if i+1 < len(b.Curve) {
			acc += b.Curve[i].DistTo(b.Curve[i+1])
		}
	}
	b.total = acc
}

// Append extends the branch's curve with one more point (linear
// continuation during greedy growth, §4.4).
func (b *Branch) Append(p geom.Vec2) {
	b.Curve = append(b.Curve, p)
	b.computeLengths()
}

// Start returns the branch's first curve point.
func (b *Branch) Start() geom.Vec2 { return b.Curve[0] }

// End returns the branch's last curve point.
func (b *Branch) End() geom.Vec2 { return b.Curve[len(b.Curve)-1] }

// Length returns the branch's own curve length (not including
// children).
func (b *Branch) Length() float64 { return b.total }

// GetParametricPt returns the point at normalized arc-length parameter
// u in [0,1] along the branch's curve.
func (b *Branch) GetParametricPt(u float64) geom.Vec2 {
	if len(b.Curve) == 1 {
		return b.Curve[0]
	}
	if u <= 0 {
		return b.Curve[0]
	}
	if u >= 1 {
		return b.Curve[len(b.Curve)-1]
	}
	target := u * b.total
	i := 0
	for i < len(b.Curve)-2 && b.lengths[i+1] <= target {
		i++
	}
	segLen := b.lengths[i+1] - b.lengths[i]
	if segLen < 1e-15 {
		return b.Curve[i]
	}
	localU := (target - b.lengths[i]) / segLen
	return b.Curve[i].Lerp(b.Curve[i+1], localU)
}

// ParamAt returns the normalized arc-length parameter of a point at
// raw arc-length distance dist from the branch's start.
func (b *Branch) ParamAt(dist float64) float64 {
	if b.total < 1e-15 {
		return 0
	}
	return dist / b.total
}

// DeepDistance returns the total curve length of the subtree rooted at
// b: its own length plus the deep distance of every child (§3).
func (b *Branch) DeepDistance() float64 {
	total := b.Length()
	for _, c := range b.Children {
		total += c.DeepDistance()
	}
	return total
}

// SortChildren orders children by ascending deep distance, so short
// branches are visited first (§3, §4.4).
func (b *Branch) SortChildren() {
	sortBranchesByDeepDistance(b.Children)
	for _, c := range b.Children {
		c.SortChildren()
	}
}

func sortBranchesByDeepDistance(children []*Branch) {
	// Simple insertion sort: branch counts per pocket are small and
	// this keeps the tie-breaking stable (§8 "deterministic
	// tie-breaking... by segment list order"), unlike sort.Slice which
	// is not guaranteed stable.
	for i := 1; i < len(children); i++ {
		j := i
		for j > 0 && children[j-1].DeepDistance() > children[j].DeepDistance() {
			children[j-1], children[j] = children[j], children[j-1]
			j--
		}
	}
}

// Walk visits b and every descendant in depth-first pre-order: b
// before its children, children in their stored order (which must
// already be sorted).
func (b *Branch) Walk(visit func(*Branch)) {
	visit(b)
	for _, c := range b.Children {
		c.Walk(visit)
	}
}

// AncestorSlices returns every slice on b and all of its ancestors, used by
// the slice placer to find the nearest upstream slice when attaching a
// non-root branch (§4.5).
func (b *Branch) AncestorSlices() []*Slice {
	var out []*Slice
	for anc := b; anc != nil; anc = anc.Parent {
		out = append(out, anc.Slices...)
	}
	return out
}
