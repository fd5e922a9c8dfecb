package psdlayer

// Paint describes how a shape or fill layer is painted:
// either Solid, GradientPaint or PatternPaint.
type Paint interface {
	isPaint()
}

// Solid paints with a single color.
type Solid struct {
	Color Color
}

// GradientKind selects the gradient geometry.
type GradientKind uint8

const (
	LinearGradient GradientKind = iota
	RadialGradient
)

// ColorStop is a color at a normalized location of the gradient axis.
type ColorStop struct {
	Loc   float64 // in [0, 1]
	Color Color
}

// OpacityStop is an opacity at a normalized location of the gradient
// axis. Color and opacity stops are two independent sequences; the
// paint resolver merges them onto the union of their locations.
type OpacityStop struct {
	Loc     float64 // in [0, 1]
	Opacity float64 // in [0, 1]
}

// GradientPaint paints with an interpolated color ramp.
type GradientPaint struct {
	Kind  GradientKind
	Angle float64 // degrees, trigonometric convention
	Scale float64 // axis scale factor, 1 when unset

	// Reverse mirrors both stop sequences (loc' = 1 - loc).
	Reverse bool
	// AlignWithLayer anchors the gradient frame to the layer bounds
	// (object relative); otherwise the frame is the canvas, around
	// its center.
	AlignWithLayer bool
	// Offset displaces the reference point, as a fraction of the
	// frame size.
	Offset Point

	ColorStops   []ColorStop
	OpacityStops []OpacityStop
}

// PatternPaint paints with a tiled image, fetched by id from the
// document's tile provider.
type PatternPaint struct {
	TileID string
	Scale  float64 // 1 when unset
	Angle  float64 // degrees
	Phase  Point   // tile origin displacement, in pixels
}

func (Solid) isPaint()         {}
func (GradientPaint) isPaint() {}
func (PatternPaint) isPaint()  {}
