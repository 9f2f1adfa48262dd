// Package spatial provides the bounding-box tree used to register
// finished slices for range queries during engagement refinement and
// connector routing.
//
// It wraps github.com/dhconnelly/rtreego — already part of the host
// CAD toolkit's dependency graph, pulled in transitively but never
// directly exercised there — and offers exactly the two operations the
// slice placer and connector router need: Insert and Query. There are
// no deletions, matching the single-pass, build-once nature of a pocket
// run (§5).
package spatial

import (
	"github.com/dhconnelly/rtreego"

	"github.com/chazu/pocketpath/internal/geom"
)

// minBranchFactor/maxBranchFactor match rtreego's own constructor
// defaults used throughout its test suite; a pocket run's segment and
// slice counts are small enough that tuning beyond this never matters.
const (
	minBranchFactor = 25
	maxBranchFactor = 50
)

// Object is anything that can be registered in the index: it exposes
// its own bounding rectangle plus an opaque payload.
type Object struct {
	Rect    geom.Rect
	Payload any
}

func (o *Object) Bounds() rtreego.Rect {
	return toRtreeRect(o.Rect)
}

// Index is a bounding-box tree over Objects.
type Index struct {
	tree *rtreego.Rtree
}

// New creates an empty spatial index.
func New() *Index {
	return &Index{tree: rtreego.NewTree(2, minBranchFactor, maxBranchFactor)}
}

// Insert registers obj under the given bounding rect. There is no
// corresponding Remove: the index is populated once per run and
// discarded when it ends.
func (idx *Index) Insert(rect geom.Rect, payload any) {
	idx.tree.Insert(&Object{Rect: rect, Payload: payload})
}

// Query returns every object whose bounding rect overlaps rect.
func (idx *Index) Query(rect geom.Rect) []any {
	results := idx.tree.SearchIntersect(toRtreeRect(rect))
	out := make([]any, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*Object).Payload)
	}
	return out
}

// Len reports how many objects have been inserted.
func (idx *Index) Len() int {
	return idx.tree.Size()
}

func toRtreeRect(r geom.Rect) rtreego.Rect {
	w := r.Max.X - r.Min.X
	h := r.Max.Y - r.Min.Y
	if w <= 0 {
		w = 1e-9
	}
	if h <= 0 {
		h = 1e-9
	}
	rect, err := rtreego.NewRect(rtreego.Point{r.Min.X, r.Min.Y}, []float64{w, h})
	if err != nil {
		// Only degenerate (zero-size) rects reach here, already guarded
		// above; rtreego's own error path is unreachable in practice.
		panic(err)
	}
	return rect
}
