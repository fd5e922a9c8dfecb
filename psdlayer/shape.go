package psdlayer

import "github.com/benoitkugler/psdsvg/svgpath"

// PathOp is the boolean operation combining a path group with the
// accumulated shape region, translated once from the raw document
// codes.
type PathOp uint8

const (
	OpUnion PathOp = iota
	OpSubtract
	OpIntersect
	OpXor
	// OpContinuation marks an even-odd continuation: the paths attach
	// to the previous group instead of starting a new operation.
	OpContinuation
)

func (op PathOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	case OpXor:
		return "xor"
	case OpContinuation:
		return "continuation"
	default:
		return "<unknown PathOp>"
	}
}

// pathOpCodes translates the raw numeric codes of the binary format.
var pathOpCodes = map[int]PathOp{
	1: OpUnion, // "normal" record
	2: OpSubtract,
	3: OpIntersect,
	0: OpXor,
	4: OpContinuation,
}

// PathOpFromCode translates a raw document code. Unknown codes
// resolve to (OpUnion, false).
func PathOpFromCode(code int) (PathOp, bool) {
	op, ok := pathOpCodes[code]
	return op, ok
}

// PathGroup is one operand of a shape layer: a path and the boolean
// operation combining it with the groups before it.
type PathGroup struct {
	Op   PathOp
	Path svgpath.Path
}
