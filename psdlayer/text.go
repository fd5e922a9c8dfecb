package psdlayer

// Justification is the paragraph alignment of a text layer,
// translated once from the raw document codes.
type Justification uint8

const (
	JustifyLeft Justification = iota
	JustifyRight
	JustifyCenter
)

var justificationCodes = map[int]Justification{
	0: JustifyLeft,
	1: JustifyRight,
	2: JustifyCenter,
}

// JustificationFromCode translates a raw document code. Unknown codes
// resolve to (JustifyLeft, false).
func JustificationFromCode(code int) (Justification, bool) {
	j, ok := justificationCodes[code]
	return j, ok
}

// Orientation is the writing direction of a text layer.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// WarpStyle names the text warp applied to a layer. Only WarpArc with
// horizontal orientation produces a curved baseline; every other
// style renders on a straight baseline. This partial fidelity is
// intentional.
type WarpStyle uint8

const (
	WarpNone WarpStyle = iota
	WarpArc
	WarpArcLower
	WarpArcUpper
	WarpBulge
	WarpFlag
	WarpWave
	WarpOther
)

func (w WarpStyle) String() string {
	switch w {
	case WarpNone:
		return "none"
	case WarpArc:
		return "arc"
	case WarpArcLower:
		return "arc-lower"
	case WarpArcUpper:
		return "arc-upper"
	case WarpBulge:
		return "bulge"
	case WarpFlag:
		return "flag"
	case WarpWave:
		return "wave"
	case WarpOther:
		return "other"
	default:
		return "<unknown WarpStyle>"
	}
}

// TextRun is a span of uniformly styled characters.
type TextRun struct {
	Text  string
	Font  string // postscript name, resolved by the FontResolver
	Size  float64
	Color Color
}

// TextInfo is the structural content of a text layer. No shaping or
// line breaking is described here: runs are emitted in order on the
// baseline.
type TextInfo struct {
	Runs []TextRun

	// Transform maps text space to document space:
	// [xx xy yx yy tx ty].
	Transform [6]float64

	Justification Justification
	Orientation   Orientation

	Warp      WarpStyle
	WarpValue float64 // bend amount in [-1, 1] for the supported style
}
