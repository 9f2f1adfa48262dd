// Package voronoi defines the Voronoi-edge collaborator the MAT
// sampler depends on (§6's "Voronoi edge generator: generate(xs, ys,
// bounds) -> edges"), plus a bundled default implementation so the
// generator is usable without an external collaborator.
//
// The spec treats this stage as a black box returning unordered line
// segments; callers are free to inject any Generator, including a
// production sweep-line implementation. The bundled Default here is
// deliberately simple (Bowyer-Watson Delaunay triangulation, dualized
// into Voronoi edges) rather than a full Fortune sweep, in keeping
// with the spec calling the real generator "a specific generator" to
// be swapped out (§9 design notes).
package voronoi

import "github.com/chazu/pocketpath/internal/geom"

// Edge is one unordered Voronoi edge, endpoint order unspecified.
type Edge struct {
	A, B geom.Vec2
}

// Bounds is the sample bounding box the generator should clip/reason
// about, expanded per §4.3 step 2 when phantom-point stabilisation is
// in use.
type Bounds struct {
	Min, Max geom.Vec2
}

// Generator is the external Voronoi-edge collaborator of §6.
type Generator interface {
	Generate(xs, ys []float64, bounds Bounds) []Edge
}
