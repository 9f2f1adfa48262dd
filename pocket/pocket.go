// Package pocket is the public API of the adaptive-clearing toolpath
// generator: it wires the geometry kernel, MAT sampler, tree builder,
// slice placer and path stitcher together behind a single Run call.
package pocket

import (
	"fmt"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/mat"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/region"
	"github.com/chazu/pocketpath/internal/roll"
	"github.com/chazu/pocketpath/internal/spatial"
	"github.com/chazu/pocketpath/internal/stitch"
	"github.com/chazu/pocketpath/internal/voronoi"
)

// PathItem is one tagged polyline of the produced toolpath.
type PathItem = stitch.PathItem

// ItemKind tags a PathItem with the emit option it came from.
type ItemKind = stitch.ItemKind

const (
	KindSpiral       = stitch.KindSpiral
	KindDebugMAT     = stitch.KindDebugMAT
	KindBranchEntry  = stitch.KindBranchEntry
	KindChord        = stitch.KindChord
	KindSmoothChord  = stitch.KindSmoothChord
	KindSlice        = stitch.KindSlice
	KindSegmentChord = stitch.KindSegmentChord
	KindReturnToBase = stitch.KindReturnToBase
)

// Run executes the full pipeline: region construction, MAT sampling,
// tree building, slice placement and path stitching, per §2's data
// flow. It returns (nil, nil) for an infeasible pocket (§7 kind 2), a
// non-nil *Error for a kind-1 config fault, and recovers a kind-6
// structural panic into a *Error as well.
func Run(outer Polyline, islands []Polyline, cfg Config) (path []PathItem, err *Error) {
	if verr := cfg.Validate(); verr != nil {
		return nil, verr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	defer func() {
		if r := recover(); r != nil {
			err = newError(KindEmptyBranchCurve, "structural invariant violated", fmt.Errorf("%v", r))
			path = nil
		}
	}()

	logger.Log("starting run: %s", cfg.describe())

	r, rerr := region.New(outer, islands, cfg.GeneralTolerance)
	if rerr != nil {
		return nil, newError(KindConfigFault, "building region", rerr)
	}

	voronoiGen := cfg.Voronoi
	if voronoiGen == nil {
		voronoiGen = voronoi.Default{}
	}

	cutterRadius := cfg.cutterRadius()
	matSegments := mat.Build(r, cutterRadius, voronoiGen, cfg.GeneralTolerance, cfg.StabilizePhantomPoint, cfg.filterBoundaryCrossing)

	mic := func(p geom.Vec2) float64 { return r.MIC(p, cutterRadius, cfg.Margin) }

	treeCfg := medial.Config{CutterRadius: cutterRadius, GeneralTolerance: cfg.GeneralTolerance}
	root, berr := medial.Build(matSegments, cfg.StartPoint, r, mic, treeCfg)
	if berr != nil {
		logger.Warn("pocket is infeasible: %v", berr)
		return nil, nil
	}
	if root == nil {
		logger.Warn("pocket is infeasible: no admissible medial-axis root found")
		return nil, nil
	}

	colliders := spatial.New()
	rollCfg := roll.Config{
		CutterRadius:                     cutterRadius,
		GeneralTolerance:                 cfg.GeneralTolerance,
		MaxEngagement:                    cfg.MaxEngagement,
		MinEngagement:                    cfg.MinEngagement,
		EngagementTolerance:              cfg.EngagementTolerance,
		SegmentedSliceEngagementDerating: cfg.SegmentedSliceEngagementDerating,
		MillDirection:                    cfg.MillDirection.toGeom(),
	}
	roll.Roll(root, mic, colliders, logger, rollCfg)

	spiralGen := cfg.Spiral
	if spiralGen == nil {
		spiralGen = stitch.DefaultSpiral{}
	}
	stitchCfg := stitch.Config{
		GeneralTolerance: cfg.GeneralTolerance,
		MaxEngagement:    cfg.MaxEngagement,
		MillDirection:    cfg.MillDirection.toGeom(),
		EmitOptions:      cfg.EmitOptions,
	}
	items := stitch.Stitch(root, stitchCfg, spiralGen, colliders)

	logger.Log("run complete: %d path items", len(items))
	return items, nil
}
