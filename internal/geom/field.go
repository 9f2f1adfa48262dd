package geom

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// RegionField is a 2-D signed-distance field for a pocket region: an
// outer polygon with zero or more island polygons subtracted out. It
// backs every Maximum-Inscribed-Circle query in the toolpath generator
// via github.com/deadsy/sdfx's sdf2 primitives — the same distance-field
// machinery the host CAD kernel already depends on for its 3-D solids,
// exercised here on its 2-D half instead of being hand-rolled.
//
// sdfx's SDF2.Evaluate follows the usual signed-distance convention:
// negative inside the solid, positive outside, magnitude equal to the
// distance to the nearest boundary.
type RegionField struct {
	field sdf.SDF2
}

// NewRegionField builds the field for an outer polygon (closed,
// ordered vertex loop) and zero or more island polygons to subtract.
func NewRegionField(outer []Vec2, islands [][]Vec2) (*RegionField, error) {
	outerSDF, err := sdf.Polygon2D(toV2(outer))
	if err != nil {
		return nil, fmt.Errorf("geom: outer polygon field: %w", err)
	}
	field := outerSDF
	for i, island := range islands {
		islandSDF, err := sdf.Polygon2D(toV2(island))
		if err != nil {
			return nil, fmt.Errorf("geom: island %d field: %w", i, err)
		}
		field = sdf.Difference2D(field, islandSDF)
	}
	return &RegionField{field: field}, nil
}

func toV2(pts []Vec2) []v2.Vec {
	out := make([]v2.Vec, len(pts))
	for i, p := range pts {
		out[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return out
}

// Distance returns the distance from p to the nearest outline/island
// edge: positive when p is inside the region, negative when outside
// (the sign flip from sdfx's raw convention makes "bigger is safer"
// match the MIC radius the rest of the generator reasons about).
func (f *RegionField) Distance(p Vec2) float64 {
	return -f.field.Evaluate(v2.Vec{X: p.X, Y: p.Y})
}

// Contains reports whether p lies inside the region (on the boundary
// counts as inside, within a small numerical slop).
func (f *RegionField) Contains(p Vec2) bool {
	return f.Distance(p) >= -1e-9
}

// MIC returns the Maximum-Inscribed-Circle radius at p for a cutter of
// the given radius and margin: the distance to the nearest boundary,
// minus the cutter radius, minus the margin.
func (f *RegionField) MIC(p Vec2, cutterRadius, margin float64) float64 {
	return f.Distance(p) - cutterRadius - margin
}
