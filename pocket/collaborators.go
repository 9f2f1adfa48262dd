package pocket

import (
	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/region"
	"github.com/chazu/pocketpath/internal/stitch"
	"github.com/chazu/pocketpath/internal/voronoi"
)

// Polyline is the §6 polyline collaborator: a closed loop of line/arc
// segments with point-in-polygon, intersection and parametric sampling
// predicates. Re-exported here (rather than requiring callers outside
// this module to reach into internal/region, which Go's internal/
// visibility rule forbids) so the public API surface is self-contained.
type Polyline = region.Polyline

// ArcLike is the §6 "arc" collaborator surface; geom.Arc satisfies it
// directly, so the default geometry kernel doubles as a usable
// external collaborator.
type ArcLike interface {
	P1() geom.Vec2
	P2() geom.Vec2
	GetExtrema() []float64
	NearestPoint(p geom.Vec2) geom.Vec2
}

// VoronoiGenerator is the §6 "Voronoi edge generator" collaborator.
type VoronoiGenerator = voronoi.Generator

// VoronoiEdge and VoronoiBounds re-export the Voronoi generator's
// input/output types for callers implementing their own generator.
type VoronoiEdge = voronoi.Edge
type VoronoiBounds = voronoi.Bounds

// SpiralGenerator is the §6 spiral collaborator used for the optional
// leading flat spiral.
type SpiralGenerator = stitch.SpiralGenerator

// NewOuterPolygon and NewIslandPolygon build a straight-sided Polyline
// from a closed vertex list; NewLoopFromSegments builds one from an
// ordered, closed list of line/arc segments.
func NewOuterPolygon(vertices []geom.Vec2) Polyline   { return region.NewPolygonLoop(vertices) }
func NewIslandPolygon(vertices []geom.Vec2) Polyline  { return region.NewPolygonLoop(vertices) }
func NewLoopFromSegments(segments []geom.Segment) Polyline { return region.NewLoop(segments) }
