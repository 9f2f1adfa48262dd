// Command pocketpath is a demo CLI: it builds a fixed square-with-island
// pocket, runs the generator, and writes an SVG preview of the
// resulting toolpath — the host-boundary wiring the core pocket
// package stays free of (construct collaborators, call the library,
// report errors), mirroring the teacher's own app.go shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/pocket"
)

func main() {
	var (
		side          = flag.Float64("side", 40, "outer square side length, mm")
		cutterD       = flag.Float64("cutter", 6, "cutter diameter, mm")
		islandSide    = flag.Float64("island", 10, "centred square island side length, mm (0 disables it)")
		out           = flag.String("out", "pocket.svg", "output SVG path")
		direction     = flag.String("dir", "cw", "mill direction: cw, ccw, or unknown")
		smoothChords  = flag.Bool("smooth", false, "use smooth biarc chords instead of straight ones")
	)
	flag.Parse()

	ctx := context.Background()

	outer := pocket.NewOuterPolygon([]geom.Vec2{
		{X: 0, Y: 0}, {X: *side, Y: 0}, {X: *side, Y: *side}, {X: 0, Y: *side},
	})

	var islands []pocket.Polyline
	if *islandSide > 0 {
		c := *side / 2
		h := *islandSide / 2
		islands = append(islands, pocket.NewIslandPolygon([]geom.Vec2{
			{X: c - h, Y: c - h}, {X: c + h, Y: c - h}, {X: c + h, Y: c + h}, {X: c - h, Y: c + h},
		}))
	}

	cfg := pocket.DefaultConfig(*cutterD)
	cfg.Logger = pocket.StdLogger{}
	switch *direction {
	case "cw":
		cfg.MillDirection = pocket.CW
	case "ccw":
		cfg.MillDirection = pocket.CCW
	default:
		cfg.MillDirection = pocket.Unknown
	}
	cfg.EmitOptions = pocket.EmitSegment | pocket.EmitBranchEntry
	if *smoothChords {
		cfg.EmitOptions |= pocket.EmitSmoothChord
	} else {
		cfg.EmitOptions |= pocket.EmitChord
	}

	if err := run(ctx, outer, islands, cfg, *out); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, outer pocket.Polyline, islands []pocket.Polyline, cfg pocket.Config, outPath string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	items, perr := pocket.Run(outer, islands, cfg)
	if perr != nil {
		return fmt.Errorf("generating toolpath: %w", perr)
	}
	if items == nil {
		return fmt.Errorf("pocket is infeasible for the given configuration")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := WritePathSVG(f, items, cfg); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	fmt.Printf("wrote %d path items to %s\n", len(items), outPath)
	return nil
}
