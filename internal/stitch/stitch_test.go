package stitch

import (
	"testing"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
)

func makeSlice(center geom.Vec2, radius float64, start, end geom.Vec2, parent *medial.Slice) *medial.Slice {
	return &medial.Slice{
		Ball:     medial.Ball{Center: center, Radius: radius},
		Parent:   parent,
		Segments: []geom.Arc{{Center: center, Radius: radius, Start: 0, Sweep: -1.5}},
		Dir:      geom.CW,
		Start:    start,
		End:      end,
	}
}

func TestStitchEmitsSliceArcsInOrder(t *testing.T) {
	root := medial.NewBranch([]geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}, nil)
	s0 := makeSlice(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, nil)
	s1 := makeSlice(geom.Vec2{X: 3, Y: 0}, 2, geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 5, Y: 0}, s0)
	root.Slices = []*medial.Slice{s0, s1}

	cfg := Config{GeneralTolerance: 1e-3, MillDirection: geom.CW, EmitOptions: EmitSegment | EmitChord}
	items := Stitch(root, cfg, nil, nil)

	var sliceCount, chordCount int
	var kinds []ItemKind
	for _, it := range items {
		kinds = append(kinds, it.Kind)
		switch it.Kind {
		case KindSlice:
			sliceCount++
		case KindChord:
			chordCount++
		}
	}
	if sliceCount != 2 {
		t.Errorf("expected 2 slice items, got %d", sliceCount)
	}
	if chordCount != 1 {
		t.Errorf("expected 1 chord item between the two slices, got %d", chordCount)
	}
	want := []ItemKind{KindSlice, KindChord, KindSlice}
	if len(kinds) != len(want) {
		t.Fatalf("item kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("item %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestStitchChordAndSmoothChordAreMutuallyExclusive(t *testing.T) {
	root := medial.NewBranch([]geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}, nil)
	s0 := makeSlice(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 2, Y: 0}, nil)
	s1 := makeSlice(geom.Vec2{X: 3, Y: 0}, 2, geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 5, Y: 0}, s0)
	root.Slices = []*medial.Slice{s0, s1}

	cfg := Config{GeneralTolerance: 1e-3, MillDirection: geom.CW, EmitOptions: EmitSegment | EmitChord | EmitSmoothChord}
	items := Stitch(root, cfg, nil, nil)

	var chordCount, smoothCount int
	for _, it := range items {
		switch it.Kind {
		case KindChord:
			chordCount++
		case KindSmoothChord:
			smoothCount++
		}
	}
	if smoothCount != 1 || chordCount != 0 {
		t.Errorf("expected smooth chord to take priority over straight chord, got chord=%d smooth=%d", chordCount, smoothCount)
	}
}

func TestStitchOmitsDebugMATWhenNotRequested(t *testing.T) {
	root := medial.NewBranch([]geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}, nil)
	root.Slices = []*medial.Slice{makeSlice(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, nil)}

	cfg := Config{GeneralTolerance: 1e-3, MillDirection: geom.CW, EmitOptions: EmitSegment}
	items := Stitch(root, cfg, nil, nil)

	for _, it := range items {
		if it.Kind == KindDebugMAT {
			t.Error("did not request EmitDebugMAT but got a KindDebugMAT item")
		}
	}
}

func TestStitchBranchEntryConnectorEmitted(t *testing.T) {
	root := medial.NewBranch([]geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}, nil)
	rootSlice := makeSlice(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 0, Y: 0}, nil)
	root.Slices = []*medial.Slice{rootSlice}

	child := medial.NewBranch([]geom.Vec2{{X: 2, Y: 0}, {X: 2, Y: 4}}, root)
	child.EntryConnector = []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	childSlice := makeSlice(geom.Vec2{X: 2, Y: 3}, 1, geom.Vec2{X: 2, Y: 2}, geom.Vec2{X: 2, Y: 4}, rootSlice)
	child.Slices = []*medial.Slice{childSlice}
	root.Children = []*medial.Branch{child}

	cfg := Config{GeneralTolerance: 1e-3, MillDirection: geom.CW, EmitOptions: EmitSegment | EmitBranchEntry}
	items := Stitch(root, cfg, nil, nil)

	var found bool
	for _, it := range items {
		if it.Kind == KindBranchEntry {
			found = true
			if len(it.Segments) != len(child.EntryConnector)-1 {
				t.Errorf("expected %d line segments in entry connector, got %d", len(child.EntryConnector)-1, len(it.Segments))
			}
		}
	}
	if !found {
		t.Error("expected a branch-entry connector item for the child branch")
	}
}

func TestStitchSpiralOnlyWhenRequested(t *testing.T) {
	root := medial.NewBranch([]geom.Vec2{{X: 0, Y: 0}, {X: 4, Y: 0}}, nil)
	root.Slices = []*medial.Slice{makeSlice(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 2, Y: 0}, geom.Vec2{X: 2, Y: 0}, nil)}

	cfg := Config{GeneralTolerance: 1e-3, MaxEngagement: 0.5, MillDirection: geom.CW, EmitOptions: EmitSegment | EmitSpiral}
	items := Stitch(root, cfg, nil, nil)

	if items[0].Kind != KindSpiral {
		t.Fatalf("expected the first item to be the spiral, got kind %v", items[0].Kind)
	}

	cfg.EmitOptions = EmitSegment
	for _, it := range Stitch(root, cfg, nil, nil) {
		if it.Kind == KindSpiral {
			t.Error("did not request EmitSpiral but got a KindSpiral item")
		}
	}
}

func TestPathItemPointsDedupesSharedEndpoints(t *testing.T) {
	it := PathItem{Segments: []geom.Segment{
		geom.NewLineSegment(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0}),
		geom.NewLineSegment(geom.Vec2{X: 1, Y: 0}, geom.Vec2{X: 1, Y: 1}),
	}}
	pts := it.Points(1e-3)
	if len(pts) != 3 {
		t.Errorf("expected 3 deduped points, got %d: %v", len(pts), pts)
	}
}
