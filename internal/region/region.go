package region

import (
	"fmt"

	"github.com/chazu/pocketpath/internal/geom"
)

// Region is the pocket's outer polygon plus zero or more island
// (hole) polygons, per §3.
type Region struct {
	Outer   Polyline
	Islands []Polyline

	field *geom.RegionField
}

// New builds a Region and its backing signed-distance field. tol
// controls how finely any arcs in outer/islands are flattened before
// being handed to the distance field.
func New(outer Polyline, islands []Polyline, tol float64) (*Region, error) {
	r := &Region{Outer: outer, Islands: islands}

	outerLoop, ok := outer.(*Loop)
	if !ok {
		return nil, fmt.Errorf("region: outer polyline must flatten to vertices (got %T)", outer)
	}
	islandVerts := make([][]geom.Vec2, len(islands))
	for i, isl := range islands {
		loop, ok := isl.(*Loop)
		if !ok {
			return nil, fmt.Errorf("region: island %d must flatten to vertices (got %T)", i, isl)
		}
		islandVerts[i] = loop.Vertices(tol)
	}

	field, err := geom.NewRegionField(outerLoop.Vertices(tol), islandVerts)
	if err != nil {
		return nil, fmt.Errorf("region: building field: %w", err)
	}
	r.field = field
	return r, nil
}

// MIC returns the Maximum-Inscribed-Circle radius at p for a cutter of
// the given radius and margin (§3).
func (r *Region) MIC(p geom.Vec2, cutterRadius, margin float64) float64 {
	return r.field.MIC(p, cutterRadius, margin)
}

// Contains reports whether p lies inside the outer polygon and outside
// every island.
func (r *Region) Contains(p geom.Vec2) bool {
	return r.field.Contains(p)
}

// Passable reports whether p's MIC radius exceeds the passability
// threshold (10% of the cutter radius, per §3).
func (r *Region) Passable(p geom.Vec2, cutterRadius, margin float64) bool {
	return r.MIC(p, cutterRadius, margin) > 0.1*cutterRadius
}

// BoundarySegments returns every line/arc segment of the outer polygon
// and all islands, for registration in a boundary spatial index.
func (r *Region) BoundarySegments() []geom.Segment {
	var out []geom.Segment
	appendAll := func(p Polyline) {
		for i := 0; i < p.NumSegments(); i++ {
			out = append(out, p.GetSegment(i))
		}
	}
	appendAll(r.Outer)
	for _, isl := range r.Islands {
		appendAll(isl)
	}
	return out
}
