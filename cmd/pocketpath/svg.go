package main

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/pocketpath/pocket"
)

const svgScale = 10 // px per mm

var kindStyle = map[pocket.ItemKind]string{
	pocket.KindSpiral:       "fill:none;stroke:#999;stroke-width:1",
	pocket.KindDebugMAT:     "fill:none;stroke:#ddd;stroke-width:1;stroke-dasharray:2,2",
	pocket.KindBranchEntry:  "fill:none;stroke:#2a6;stroke-width:1.5",
	pocket.KindChord:        "fill:none;stroke:#aaa;stroke-width:1",
	pocket.KindSmoothChord:  "fill:none;stroke:#aaa;stroke-width:1",
	pocket.KindSlice:        "fill:none;stroke:#069;stroke-width:1.5",
	pocket.KindSegmentChord: "fill:none;stroke:#c33;stroke-width:1",
	pocket.KindReturnToBase: "fill:none;stroke:#333;stroke-width:1;stroke-dasharray:4,2",
}

// WritePathSVG renders path as an SVG preview, one polyline per item
// colored by its ItemKind, purely a debugging aid for the CLI demo —
// the core pocket package has no rendering or io dependency of its own.
func WritePathSVG(w io.Writer, path []pocket.PathItem, cfg pocket.Config) error {
	minX, minY, maxX, maxY := bounds(path)
	width := int((maxX-minX)*svgScale) + 2*svgScale
	height := int((maxY-minY)*svgScale) + 2*svgScale
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	tol := cfg.GeneralTolerance
	if tol <= 0 {
		tol = 1e-3
	}

	for _, item := range path {
		pts := item.Points(tol)
		if len(pts) < 2 {
			continue
		}
		xs := make([]int, len(pts))
		ys := make([]int, len(pts))
		for i, p := range pts {
			xs[i] = int((p.X-minX)*svgScale) + svgScale
			ys[i] = height - (int((p.Y-minY)*svgScale) + svgScale)
		}
		canvas.Polyline(xs, ys, kindStyle[item.Kind])
	}

	canvas.End()
	return nil
}

func bounds(path []pocket.PathItem) (minX, minY, maxX, maxY float64) {
	first := true
	for _, item := range path {
		for _, p := range item.Points(1e-2) {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if first {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}
