package pocket

import (
	"fmt"

	"github.com/chazu/pocketpath/internal/geom"
	"github.com/chazu/pocketpath/internal/stitch"
)

// MillDirection is the §6 cut direction: climb (CW) or conventional
// (CCW), or Unknown when the caller has no preference (in which case
// the smooth-chord emit option is rejected at Validate time, since a
// biarc chord needs a rotation sense to derive its tangents from).
type MillDirection int

const (
	Unknown MillDirection = iota
	CW
	CCW
)

func (d MillDirection) toGeom() geom.Dir {
	switch d {
	case CW:
		return geom.CW
	case CCW:
		return geom.CCW
	default:
		return geom.Unknown
	}
}

// EmitOptions is an exported alias of internal/stitch's bitmask, so
// pocket.Config doesn't force callers to import internal/stitch
// directly.
type EmitOptions = stitch.EmitOptions

const (
	EmitSegment      = stitch.EmitSegment
	EmitBranchEntry  = stitch.EmitBranchEntry
	EmitChord        = stitch.EmitChord
	EmitSmoothChord  = stitch.EmitSmoothChord
	EmitSegmentChord = stitch.EmitSegmentChord
	EmitSpiral       = stitch.EmitSpiral
	EmitReturnToBase = stitch.EmitReturnToBase
	EmitDebugMAT     = stitch.EmitDebugMAT
)

// Config is the full set of §6 configurable parameters.
type Config struct {
	CutterDiameter                   float64
	GeneralTolerance                 float64 // default 1e-3
	Margin                           float64 // default 0
	MaxEngagement                    float64 // absolute radial engagement, default 1.2
	MinEngagement                    float64 // absolute radial engagement, default 0.3
	SegmentedSliceEngagementDerating float64 // default 0.5
	StartPoint                       *geom.Vec2
	MillDirection                    MillDirection
	EmitOptions                      EmitOptions
	StabilizePhantomPoint            bool
	EngagementTolerance              float64 // default 1e-3 (0.1%)

	// filterBoundaryCrossing gates the optional §4.3 step-3 "edges
	// whose interior crosses any boundary segment" check. Unexported,
	// so only code inside this package can set it; DefaultConfig leaves
	// it off.
	filterBoundaryCrossing bool

	Voronoi VoronoiGenerator
	Spiral  SpiralGenerator
	Logger  Logger
}

// DefaultConfig returns a Config with every numeric default from §6
// filled in for the given cutter diameter; Voronoi/Spiral/Logger are
// left nil and resolved to their bundled defaults by Run.
//
// MaxEngagement and MinEngagement are §6 absolute radial-engagement
// lengths, compared directly against rp+r-dist by internal/roll; their
// defaults (1.2 and 0.3) do not depend on the cutter diameter.
func DefaultConfig(cutterDiameter float64) Config {
	return Config{
		CutterDiameter:                   cutterDiameter,
		GeneralTolerance:                 1e-3,
		Margin:                           0,
		MaxEngagement:                    1.2,
		MinEngagement:                    0.3,
		SegmentedSliceEngagementDerating: 0.5,
		MillDirection:                    Unknown,
		EmitOptions:                      EmitSegment | EmitChord,
		StabilizePhantomPoint:            true,
		EngagementTolerance:              1e-3,
	}
}

// Validate rejects structurally invalid configurations (§7 kind 1):
// a non-positive cutter diameter, mutually exclusive emit options, or
// a smooth chord requested without a known mill direction.
func (c Config) Validate() *Error {
	if c.CutterDiameter <= 0 {
		return newError(KindConfigFault, "cutter diameter must be positive", nil)
	}
	if c.GeneralTolerance <= 0 {
		return newError(KindConfigFault, "general tolerance must be positive", nil)
	}
	if c.MaxEngagement <= 0 {
		return newError(KindConfigFault, "max engagement must be positive", nil)
	}
	if c.MinEngagement < 0 || c.MinEngagement >= c.MaxEngagement {
		return newError(KindConfigFault, "min engagement must be in [0, max engagement)", nil)
	}
	if c.EmitOptions.Has(EmitChord) && c.EmitOptions.Has(EmitSmoothChord) {
		return newError(KindConfigFault, "chord and smooth_chord emit options are mutually exclusive", nil)
	}
	if c.EmitOptions.Has(EmitSmoothChord) && c.MillDirection == Unknown {
		return newError(KindConfigFault, "smooth_chord requires a known mill direction", nil)
	}
	return nil
}

func (c Config) cutterRadius() float64 { return c.CutterDiameter / 2 }

func (c Config) describe() string {
	return fmt.Sprintf("cutter_r=%.4f max_eng=%.4f min_eng=%.4f", c.cutterRadius(), c.MaxEngagement, c.MinEngagement)
}
