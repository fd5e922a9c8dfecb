package psdlayer

// Effect is one non destructive layer effect.
// It is a closed set of variants: the compositor dispatches with an
// exhaustive type switch, one filter construction per kind.
type Effect interface {
	isEffect()
	// Applied reports the per-effect enable switch.
	Applied() bool
}

// EffectList carries the ordered effects of a layer together with
// the master switch. When Enabled is false, no effect contributes.
type EffectList struct {
	Enabled bool
	List    []Effect
}

// Active returns the effects that actually contribute.
func (el EffectList) Active() []Effect {
	if !el.Enabled {
		return nil
	}
	var out []Effect
	for _, e := range el.List {
		if e.Applied() {
			out = append(out, e)
		}
	}
	return out
}

type common struct {
	Enabled   bool
	BlendMode BlendMode
	Opacity   float64 // in [0, 1]
}

func (c common) Applied() bool { return c.Enabled }

// DropShadow is cast outside the layer silhouette.
type DropShadow struct {
	common
	Color    Color
	Angle    float64 // light direction, degrees
	Distance float64 // pixels
	Spread   float64 // in [0, 1], widens the falloff
	Size     float64 // blur extent, pixels
}

// InnerShadow is cast inside the layer silhouette.
type InnerShadow struct {
	common
	Color    Color
	Angle    float64
	Distance float64
	Choke    float64 // in [0, 1]
	Size     float64
}

// OuterGlow surrounds the silhouette. The color source may be a plain
// color or a gradient; both absent is valid input and resolves to a
// neutral default.
type OuterGlow struct {
	common
	Color    *Color
	Gradient *GradientPaint
	Spread   float64
	Size     float64
}

// GlowSource selects where an inner glow emanates from.
type GlowSource uint8

const (
	GlowEdge GlowSource = iota
	GlowCenter
)

// InnerGlow glows inward from the silhouette edge (or center).
type InnerGlow struct {
	common
	Color    *Color
	Gradient *GradientPaint
	Source   GlowSource
	Choke    float64
	Size     float64
}

// BevelStyle enumerates the bevel/emboss variants.
type BevelStyle uint8

const (
	OuterBevel BevelStyle = iota
	InnerBevel
	Emboss
	PillowEmboss
	StrokeEmboss
)

// Bevel simulates a chiseled edge with two independent lighting
// branches, one for the highlight side and one for the shadow side.
type Bevel struct {
	Enabled  bool
	Style    BevelStyle
	Depth    float64 // in [0, 1] and above, slope strength
	Size     float64
	Soften   float64
	Angle    float64 // light azimuth, degrees
	Altitude float64 // light elevation, degrees

	HighlightMode    BlendMode
	HighlightColor   Color
	HighlightOpacity float64
	ShadowMode       BlendMode
	ShadowColor      Color
	ShadowOpacity    float64
}

func (b Bevel) Applied() bool { return b.Enabled }

// Satin drapes a tinted sheen over the interior, built from two
// offset copies of the silhouette.
type Satin struct {
	common
	Color    Color
	Angle    float64
	Distance float64
	Size     float64
	Invert   bool
}

// StrokePosition places an effect stroke relative to the silhouette
// edge.
type StrokePosition uint8

const (
	StrokeOutside StrokePosition = iota
	StrokeInside
	StrokeCenter
)

// StrokeEffect outlines the silhouette.
type StrokeEffect struct {
	common
	Position StrokePosition
	Size     float64 // width, pixels
	Paint    Paint   // solid, gradient or pattern
}

// ColorOverlay repaints the interior with a flat color.
type ColorOverlay struct {
	common
	Color Color
}

// GradientOverlay repaints the interior with a gradient.
type GradientOverlay struct {
	common
	Gradient GradientPaint
}

// PatternOverlay repaints the interior with a tiled pattern.
type PatternOverlay struct {
	common
	Pattern PatternPaint
}

func (DropShadow) isEffect()      {}
func (InnerShadow) isEffect()     {}
func (OuterGlow) isEffect()       {}
func (InnerGlow) isEffect()       {}
func (Bevel) isEffect()           {}
func (Satin) isEffect()           {}
func (StrokeEffect) isEffect()    {}
func (ColorOverlay) isEffect()    {}
func (GradientOverlay) isEffect() {}
func (PatternOverlay) isEffect()  {}
