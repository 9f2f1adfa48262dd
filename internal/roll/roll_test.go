package roll

import (
	"math"
	"testing"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/medial"
	"github.com/chazu/pocketpath/internal/region"
	"github.com/chazu/pocketpath/internal/spatial"
)

func square(side float64) *region.Loop {
	return region.NewPolygonLoop([]geom.Vec2{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	})
}

func testConfig() Config {
	return Config{
		CutterRadius:                     1,
		GeneralTolerance:                 1e-3,
		MaxEngagement:                    1.0,
		MinEngagement:                    0.1,
		EngagementTolerance:              0.02,
		SegmentedSliceEngagementDerating: 0.5,
		MillDirection:                    geom.CW,
	}
}

func TestRollRootSliceIsFullCircle(t *testing.T) {
	r, err := region.New(square(20), nil, 1e-3)
	if err != nil {
		t.Fatalf("region.New: %v", err)
	}
	mic := func(p geom.Vec2) float64 { return r.MIC(p, 1, 0) }

	branch := medial.NewBranch([]geom.Vec2{{X: 5, Y: 10}, {X: 15, Y: 10}}, nil)
	idx := spatial.New()
	cfg := testConfig()

	Roll(branch, mic, idx, nil, cfg)

	if len(branch.Slices) == 0 {
		t.Fatal("expected at least a root slice")
	}
	root := branch.Slices[0]
	if !root.Ball.Center.Equal(branch.Curve[0], 1e-9) {
		t.Errorf("root slice center = %v, want %v", root.Ball.Center, branch.Curve[0])
	}
	wantR := mic(branch.Curve[0])
	if math.Abs(root.Ball.Radius-wantR) > 1e-9 {
		t.Errorf("root slice radius = %v, want %v", root.Ball.Radius, wantR)
	}
	if len(root.Segments) != 1 {
		t.Fatalf("expected a single full-circle segment, got %d", len(root.Segments))
	}
	if math.Abs(math.Abs(root.Segments[0].Sweep)-2*math.Pi) > 1e-9 {
		t.Errorf("root segment sweep = %v, want a full circle", root.Segments[0].Sweep)
	}
	if root.Parent != nil {
		t.Errorf("root slice should have no parent")
	}
	if idx.Len() == 0 {
		t.Error("root slice should be registered in the collider index")
	}
}

func TestRollRespectsEngagementBounds(t *testing.T) {
	r, err := region.New(square(20), nil, 1e-3)
	if err != nil {
		t.Fatalf("region.New: %v", err)
	}
	mic := func(p geom.Vec2) float64 { return r.MIC(p, 1, 0) }

	branch := medial.NewBranch([]geom.Vec2{{X: 5, Y: 10}, {X: 10, Y: 10}, {X: 15, Y: 10}}, nil)
	idx := spatial.New()
	cfg := testConfig()

	Roll(branch, mic, idx, nil, cfg)

	for i, s := range branch.Slices {
		if s.MaxEngagement < 0 {
			t.Errorf("slice %d: negative engagement %v", i, s.MaxEngagement)
		}
		if i == 0 {
			continue // the root slice has no engagement constraint
		}
		overshoot := (s.MaxEngagement - cfg.MaxEngagement) / cfg.MaxEngagement
		if overshoot > 10*cfg.EngagementTolerance+1e-9 {
			t.Errorf("slice %d: engagement %v overshoots max %v beyond tolerance", i, s.MaxEngagement, cfg.MaxEngagement)
		}
		if s.MaxEngagement < cfg.MinEngagement-1e-9 {
			t.Errorf("slice %d: engagement %v below min %v should not have been emitted", i, s.MaxEngagement, cfg.MinEngagement)
		}
		if s.Dist > 1e-6 {
			t.Errorf("slice %d: Dist = %v, expected an overlapping (non-positive) parent gap", i, s.Dist)
		}
	}
}

func TestRollNonRootBranchWithoutAncestorSliceIsAbandoned(t *testing.T) {
	r, err := region.New(square(20), nil, 1e-3)
	if err != nil {
		t.Fatalf("region.New: %v", err)
	}
	mic := func(p geom.Vec2) float64 { return r.MIC(p, 1, 0) }

	parent := medial.NewBranch([]geom.Vec2{{X: 5, Y: 5}, {X: 5, Y: 10}}, nil) // never rolled, no slices
	child := medial.NewBranch([]geom.Vec2{{X: 5, Y: 10}, {X: 10, Y: 10}}, parent)
	parent.Children = []*medial.Branch{child}

	var warned bool
	logger := &recordingLogger{onWarn: func(string, ...any) { warned = true }}

	rollBranch(child, new(*medial.Slice), mic, spatial.New(), logger, testConfig())

	if len(child.Slices) != 0 {
		t.Errorf("expected no slices on an abandoned branch, got %d", len(child.Slices))
	}
	if !warned {
		t.Error("expected a warning when a branch has no ancestor slice to attach to")
	}
}

type recordingLogger struct {
	onWarn func(string, ...any)
	onErr  func(string, ...any)
}

func (l *recordingLogger) Warn(format string, args ...any) {
	if l.onWarn != nil {
		l.onWarn(format, args...)
	}
}
func (l *recordingLogger) Err(format string, args ...any) {
	if l.onErr != nil {
		l.onErr(format, args...)
	}
}

func TestMayShortcutSingleBallContainsBoth(t *testing.T) {
	balls := []medial.Ball{{Center: geom.Vec2{X: 0, Y: 0}, Radius: 10}}
	if !MayShortcut(geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 2, Y: 2}, balls) {
		t.Error("expected true when a single ball contains both endpoints")
	}
}

func TestMayShortcutDisjointReturnsFalse(t *testing.T) {
	balls := []medial.Ball{{Center: geom.Vec2{X: 100, Y: 100}, Radius: 1}}
	if MayShortcut(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 5, Y: 5}, balls) {
		t.Error("expected false when no ball covers the start point")
	}
}

func TestMayShortcutChainedOverlappingBalls(t *testing.T) {
	balls := []medial.Ball{
		{Center: geom.Vec2{X: 0, Y: 0}, Radius: 3},
		{Center: geom.Vec2{X: 4, Y: 0}, Radius: 3},
	}
	if !MayShortcut(geom.Vec2{X: -2, Y: 0}, geom.Vec2{X: 6, Y: 0}, balls) {
		t.Error("expected true for a path fully covered by a chain of overlapping balls")
	}
}

func TestMayShortcutGapInCoverageReturnsFalse(t *testing.T) {
	balls := []medial.Ball{
		{Center: geom.Vec2{X: 0, Y: 0}, Radius: 1},
		{Center: geom.Vec2{X: 10, Y: 0}, Radius: 1},
	}
	if MayShortcut(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 10, Y: 0}, balls) {
		t.Error("expected false when the balls leave an uncovered gap along the path")
	}
}

func TestSwitchBranchDirectChildUsesBiarc(t *testing.T) {
	src := &medial.Slice{
		Ball: medial.Ball{Center: geom.Vec2{X: 0, Y: 0}, Radius: 4},
		Dir:  geom.CW,
		End:  geom.Vec2{X: 4, Y: 0},
	}
	dst := &medial.Slice{
		Ball:   medial.Ball{Center: geom.Vec2{X: 6, Y: 0}, Radius: 3},
		Dir:    geom.CW,
		Start:  geom.Vec2{X: 3, Y: 0},
		Parent: src,
	}

	path := SwitchBranch(dst, src, nil, nil, nil)
	if len(path) < 2 {
		t.Fatalf("expected a multi-point connector polyline, got %v", path)
	}
	if !path[0].Equal(src.End, 1e-6) {
		t.Errorf("connector should start at src.End, got %v", path[0])
	}
	if !path[len(path)-1].Equal(dst.Start, 1e-6) {
		t.Errorf("connector should end at dst.Start, got %v", path[len(path)-1])
	}
}

func TestSwitchBranchLCARouting(t *testing.T) {
	a := &medial.Slice{Ball: medial.Ball{Center: geom.Vec2{X: 0, Y: 0}, Radius: 1}}
	b := &medial.Slice{Ball: medial.Ball{Center: geom.Vec2{X: 2, Y: 0}, Radius: 1}, Parent: a}
	c := &medial.Slice{Ball: medial.Ball{Center: geom.Vec2{X: 4, Y: 0}, Radius: 1}, Parent: b, End: geom.Vec2{X: 5, Y: 0}}
	d := &medial.Slice{Ball: medial.Ball{Center: geom.Vec2{X: 0, Y: 2}, Radius: 1}, Parent: a, Start: geom.Vec2{X: 0, Y: 3}}

	// No collider index: every intermediate slice center must appear, since
	// mayShortcutIndexed(nil) never allows a shortcut.
	path := SwitchBranch(d, c, nil, nil, nil)
	want := []geom.Vec2{c.End, b.Ball.Center, a.Ball.Center, d.Start}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if !path[i].Equal(want[i], 1e-9) {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}
