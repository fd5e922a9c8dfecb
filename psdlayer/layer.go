// Package psdlayer defines the typed layer tree handed to the compositor.
// It is the boundary model: binary document parsers (see psdfile)
// translate their raw codes into these closed enumerations once,
// so that the compositor never matches on format-specific values.
package psdlayer

import "image"

// Kind discriminates the content of a layer.
type Kind uint8

const (
	Pixel Kind = iota // raster content
	Shape             // vector paths with a paint
	Text
	Adjustment
	Group
)

func (k Kind) String() string {
	switch k {
	case Pixel:
		return "pixel"
	case Shape:
		return "shape"
	case Text:
		return "text"
	case Adjustment:
		return "adjustment"
	case Group:
		return "group"
	default:
		return "<unknown Kind>"
	}
}

// Point is a position or vector in document pixel space.
type Point struct{ X, Y float64 }

// Mask describes a raster layer mask.
// A nil Image with a non empty Rect is valid input: the compositor
// reports it as missing data and drops the mask.
type Mask struct {
	Rect         image.Rectangle
	Image        image.Image // grayscale coverage, may be nil
	DefaultColor uint8       // coverage outside Rect (0 or 255)
	Disabled     bool
}

// Layer is one node of the document tree.
// It is immutable input for the whole conversion.
type Layer struct {
	Kind    Kind
	Name    string
	Rect    image.Rectangle // bounding box in document pixels
	Visible bool

	Opacity     float64 // in [0, 1]
	FillOpacity float64 // in [0, 1], applies to the interior only
	BlendMode   BlendMode

	// Clipping layers are restricted to the silhouette of the
	// previous (below) sibling, forming a clip group.
	Clipping bool

	Mask    *Mask
	Effects EffectList

	// payloads, by Kind
	Image      image.Image // Pixel
	Shape      []PathGroup // Shape
	Paint      Paint       // Shape and Adjustment fills
	Text       *TextInfo   // Text
	Adjustment AdjustmentKind

	// Children are listed top-to-bottom, in user visible stacking
	// order. Only groups have children.
	Children []*Layer
}

// HasContent reports whether the layer would emit anything at all:
// layers without renderable payload and without effects are skipped
// by the compositor.
func (l *Layer) HasContent() bool {
	switch l.Kind {
	case Pixel:
		return l.Image != nil
	case Shape:
		return len(l.Shape) > 0
	case Text:
		return l.Text != nil && len(l.Text.Runs) > 0
	case Adjustment, Group:
		return true
	}
	return false
}

// AdjustmentKind enumerates the supported adjustment layers.
// Levels and Curves are deliberate identity placeholders: a transfer
// function model is not part of this package.
type AdjustmentKind uint8

const (
	NoAdjustment AdjustmentKind = iota
	Levels
	Curves
	Invert
	SolidFill // fill layer carrying a Paint
	GradientFill
	PatternFill
)

func (a AdjustmentKind) String() string {
	switch a {
	case NoAdjustment:
		return "none"
	case Levels:
		return "levels"
	case Curves:
		return "curves"
	case Invert:
		return "invert"
	case SolidFill:
		return "solid-fill"
	case GradientFill:
		return "gradient-fill"
	case PatternFill:
		return "pattern-fill"
	default:
		return "<unknown AdjustmentKind>"
	}
}

// Document is the parsed input tree, owned by the caller.
type Document struct {
	Bounds image.Rectangle // canvas, origin at (0,0)
	// Layers are top-to-bottom, like Layer.Children.
	Layers []*Layer
}
