package svgpath

import (
	"strings"

	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/psdsvg/svgscene"
)

// ToSVGPath returns the d attribute value of the path, with at most
// prec decimal digits and never in exponential notation.
func (p Path) ToSVGPath(prec int) string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M" + coords(prec, fixed.Point26_6(op))
		case LineTo:
			chunks[i] = "L" + coords(prec, fixed.Point26_6(op))
		case QuadTo:
			chunks[i] = "Q" + coords(prec, op[0], op[1])
		case CubicTo:
			chunks[i] = "C" + coords(prec, op[0], op[1], op[2])
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

func coords(prec int, pts ...fixed.Point26_6) string {
	parts := make([]string, 0, 2*len(pts))
	for _, pt := range pts {
		parts = append(parts,
			svgscene.FormatNumber(float64(pt.X)/64, prec),
			svgscene.FormatNumber(float64(pt.Y)/64, prec))
	}
	return strings.Join(parts, ",")
}
