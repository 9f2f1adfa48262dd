// Package stitch implements the path stitcher (F) and reuses
// internal/roll's connector algorithm (G) to turn a finished medial
// tree of placed slices into an ordered sequence of path items, per
// §4.6.
package stitch

import (
	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/roll"
	"github.com/chazu/pocketpath/internal/spatial"
)

// ItemKind tags an emitted PathItem with the §6 emit-option it came
// from.
type ItemKind int

const (
	KindSpiral ItemKind = iota
	KindDebugMAT
	KindBranchEntry
	KindChord
	KindSmoothChord
	KindSlice
	KindSegmentChord
	KindReturnToBase
)

// PathItem is one tagged polyline of the output sequence (§6): a run
// of line/arc primitives plus the emit-option kind it belongs to.
type PathItem struct {
	Kind     ItemKind
	Segments []geom.Segment
}

// Points flattens the item's segments into a single polyline at tol.
func (it PathItem) Points(tol float64) []geom.Vec2 {
	var pts []geom.Vec2
	for _, seg := range it.Segments {
		p := seg.Polyline(tol)
		if len(pts) > 0 && len(p) > 0 && pts[len(pts)-1].Equal(p[0], 1e-9) {
			p = p[1:]
		}
		pts = append(pts, p...)
	}
	return pts
}

// EmitOptions is the §6 bitmask over the closed set of emittable item
// kinds.
type EmitOptions uint16

const (
	EmitSegment EmitOptions = 1 << iota
	EmitBranchEntry
	EmitChord
	EmitSmoothChord
	EmitSegmentChord
	EmitSpiral
	EmitReturnToBase
	EmitDebugMAT
)

func (o EmitOptions) Has(flag EmitOptions) bool { return o&flag != 0 }

// SpiralGenerator is the §6 flat-spiral collaborator.
type SpiralGenerator interface {
	Generate(center, start geom.Vec2, pitch float64, dir geom.Dir, maxRadius, tol float64) []geom.Vec2
}

// DefaultSpiral is the bundled Archimedean spiral generator.
type DefaultSpiral struct{}

func (DefaultSpiral) Generate(center, start geom.Vec2, pitch float64, dir geom.Dir, maxRadius, tol float64) []geom.Vec2 {
	return geom.ArchimedeanSpiral(center, start, pitch, dir, maxRadius, tol)
}

// Config bundles the emission parameters §4.6 needs.
type Config struct {
	GeneralTolerance float64
	MaxEngagement    float64
	MillDirection    geom.Dir
	EmitOptions      EmitOptions
}

func polylineToLines(pts []geom.Vec2) []geom.Segment {
	out := make([]geom.Segment, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, geom.NewLineSegment(pts[i], pts[i+1]))
	}
	return out
}

// Stitch performs the depth-first, children-already-short-first
// traversal of §4.6, emitting items gated by cfg.EmitOptions.
func Stitch(root *medial.Branch, cfg Config, spiralGen SpiralGenerator, colliders *spatial.Index) []PathItem {
	if root == nil {
		return nil
	}

	var items []PathItem

	if cfg.EmitOptions.Has(EmitSpiral) && len(root.Slices) > 0 {
		rootSlice := root.Slices[0]
		if spiralGen == nil {
			spiralGen = DefaultSpiral{}
		}
		dir := cfg.MillDirection
		if dir == geom.Unknown {
			dir = geom.CW
		}
		pts := spiralGen.Generate(rootSlice.Ball.Center, rootSlice.Start, cfg.MaxEngagement, dir, rootSlice.Ball.Radius, cfg.GeneralTolerance)
		items = append(items, PathItem{Kind: KindSpiral, Segments: polylineToLines(pts)})
	}

	var lastSlice *medial.Slice
	var walk func(b *medial.Branch)
	walk = func(b *medial.Branch) {
		items = append(items, emitBranch(b, cfg, &lastSlice)...)
		for _, c := range b.Children {
			walk(c)
		}
	}
	walk(root)

	if cfg.EmitOptions.Has(EmitReturnToBase) && lastSlice != nil && len(root.Slices) > 0 {
		rootSlice := root.Slices[0]
		pts := roll.SwitchBranch(rootSlice, lastSlice, &rootSlice.Ball.Center, nil, colliders)
		items = append(items, PathItem{Kind: KindReturnToBase, Segments: polylineToLines(pts)})
	}

	return items
}

func emitBranch(b *medial.Branch, cfg Config, lastSlice **medial.Slice) []PathItem {
	var items []PathItem

	if cfg.EmitOptions.Has(EmitDebugMAT) {
		items = append(items, PathItem{Kind: KindDebugMAT, Segments: polylineToLines(b.Curve)})
	}

	if cfg.EmitOptions.Has(EmitBranchEntry) && len(b.EntryConnector) > 1 {
		items = append(items, PathItem{Kind: KindBranchEntry, Segments: polylineToLines(b.EntryConnector)})
	}

	for i, s := range b.Slices {
		if i > 0 {
			prev := b.Slices[i-1]
			if chord := connectSlices(prev, s, cfg); len(chord.Segments) > 0 {
				items = append(items, chord)
			}
		} else if *lastSlice != nil && len(b.EntryConnector) <= 1 {
			// First slice on this branch, no stored entry connector (e.g.
			// the root branch's own first slice): nothing to stitch to.
		}
		items = append(items, sliceItems(s, cfg)...)
		*lastSlice = s
	}

	return items
}

// connectSlices builds the inter-slice chord between two consecutive
// slices on the same branch: a straight chord or a smooth biarc chord,
// never both (§4.6).
func connectSlices(prev, curr *medial.Slice, cfg Config) PathItem {
	switch {
	case cfg.EmitOptions.Has(EmitSmoothChord) && cfg.MillDirection != geom.Unknown:
		pts := roll.SwitchBranch(curr, prev, nil, nil, nil)
		return PathItem{Kind: KindSmoothChord, Segments: polylineToLines(pts)}
	case cfg.EmitOptions.Has(EmitChord):
		return PathItem{Kind: KindChord, Segments: []geom.Segment{geom.NewLineSegment(prev.End, curr.Start)}}
	default:
		return PathItem{}
	}
}

// sliceItems emits a slice's own arc(s), gated by EmitSegment, with
// optional inter-segment chords when refinement split it into more
// than one sub-segment, gated by EmitSegmentChord.
func sliceItems(s *medial.Slice, cfg Config) []PathItem {
	var items []PathItem
	for i, arc := range s.Segments {
		if cfg.EmitOptions.Has(EmitSegment) {
			items = append(items, PathItem{Kind: KindSlice, Segments: []geom.Segment{geom.NewArcSegment(arc)}})
		}
		if i+1 < len(s.Segments) && cfg.EmitOptions.Has(EmitSegmentChord) {
			gap := arc.P2()
			next := s.Segments[i+1].P1()
			if !gap.Equal(next, 1e-9) {
				items = append(items, PathItem{Kind: KindSegmentChord, Segments: []geom.Segment{geom.NewLineSegment(gap, next)}})
			}
		}
	}
	return items
}
