package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// Parser for the d attribute of path elements.

var errParamMismatch = errors.New("path command has wrong number of parameters")

type pathCursor struct {
	path   Path
	points []float64

	placeX, placeY   float64 // current point
	curX, curY       float64 // subpath start
	cntlPtX, cntlPtY float64 // reflected control point for S and T

	lastKey byte
	inPath  bool
}

// Parse compiles the d attribute of an SVG path element.
// Arcs are approximated with cubic beziers.
func Parse(d string) (Path, error) {
	c := &pathCursor{}
	lastIndex := -1
	for i, r := range d {
		if unicode.IsLetter(r) && r != 'e' && r != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(d[lastIndex:i]); err != nil {
					return nil, err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex == -1 {
		return nil, nil
	}
	if err := c.addSeg(d[lastIndex:]); err != nil {
		return nil, err
	}
	return c.path, nil
}

// parseFloats scans the numeric parameters of a command.
func parseFloats(s string) ([]float64, error) {
	var out []float64
	for i := 0; i < len(s); {
		switch s[i] {
		case ' ', ',', '\t', '\n', '\r':
			i++
			continue
		}
		j := i
		if s[j] == '+' || s[j] == '-' {
			j++
		}
		seenDot, seenExp := false, false
	scan:
		for j < len(s) {
			ch := s[j]
			switch {
			case ch >= '0' && ch <= '9':
				j++
			case ch == '.' && !seenDot && !seenExp:
				seenDot = true
				j++
			case (ch == 'e' || ch == 'E') && !seenExp:
				seenExp = true
				j++
				if j < len(s) && (s[j] == '+' || s[j] == '-') {
					j++
				}
			default:
				break scan
			}
		}
		v, err := strconv.ParseFloat(s[i:j], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid path number %q: %w", s[i:j], err)
		}
		out = append(out, v)
		i = j
	}
	return out, nil
}

// rel maps (x, y) relative to the current point for lowercase
// commands.
func (c *pathCursor) rel(relative bool, x, y float64) (float64, float64) {
	if relative {
		return c.placeX + x, c.placeY + y
	}
	return x, y
}

func (c *pathCursor) lineTo(x, y float64) {
	if !c.inPath {
		// a line without an open subpath starts one
		c.path.Start(ToFixedP(x, y))
		c.curX, c.curY = x, y
		c.inPath = true
	} else {
		c.path.Line(ToFixedP(x, y))
	}
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) addSeg(seg string) error {
	k := seg[0]
	points, err := parseFloats(seg[1:])
	if err != nil {
		return err
	}
	c.points = points
	relative := k >= 'a'
	l := len(points)

	switch lower(k) {
	case 'z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.curX, c.curY
			c.inPath = false
		}
	case 'm':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		x, y := c.rel(relative, points[0], points[1])
		c.path.Start(ToFixedP(x, y))
		c.placeX, c.placeY = x, y
		c.curX, c.curY = x, y
		c.inPath = true
		for i := 2; i < l; i += 2 {
			x, y := c.rel(relative, points[i], points[i+1])
			c.path.Line(ToFixedP(x, y))
			c.placeX, c.placeY = x, y
		}
	case 'l':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			x, y := c.rel(relative, points[i], points[i+1])
			c.lineTo(x, y)
		}
	case 'h':
		if l == 0 {
			return errParamMismatch
		}
		for _, v := range points {
			if relative {
				v += c.placeX
			}
			c.lineTo(v, c.placeY)
		}
	case 'v':
		if l == 0 {
			return errParamMismatch
		}
		for _, v := range points {
			if relative {
				v += c.placeY
			}
			c.lineTo(c.placeX, v)
		}
	case 'c':
		if l < 6 || l%6 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 6 {
			x1, y1 := c.rel(relative, points[i], points[i+1])
			x2, y2 := c.rel(relative, points[i+2], points[i+3])
			x, y := c.rel(relative, points[i+4], points[i+5])
			c.path.CubeBezier(ToFixedP(x1, y1), ToFixedP(x2, y2), ToFixedP(x, y))
			c.cntlPtX, c.cntlPtY = x2, y2
			c.placeX, c.placeY = x, y
		}
	case 's':
		if l < 4 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 4 {
			x1, y1 := c.reflectControl('c')
			x2, y2 := c.rel(relative, points[i], points[i+1])
			x, y := c.rel(relative, points[i+2], points[i+3])
			c.path.CubeBezier(ToFixedP(x1, y1), ToFixedP(x2, y2), ToFixedP(x, y))
			c.cntlPtX, c.cntlPtY = x2, y2
			c.placeX, c.placeY = x, y
			c.lastKey = 'c' // chains of s reflect each other
		}
	case 'q':
		if l < 4 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 4 {
			x1, y1 := c.rel(relative, points[i], points[i+1])
			x, y := c.rel(relative, points[i+2], points[i+3])
			c.path.QuadBezier(ToFixedP(x1, y1), ToFixedP(x, y))
			c.cntlPtX, c.cntlPtY = x1, y1
			c.placeX, c.placeY = x, y
		}
	case 't':
		if l < 2 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 2 {
			x1, y1 := c.reflectControl('q')
			x, y := c.rel(relative, points[i], points[i+1])
			c.path.QuadBezier(ToFixedP(x1, y1), ToFixedP(x, y))
			c.cntlPtX, c.cntlPtY = x1, y1
			c.placeX, c.placeY = x, y
			c.lastKey = 'q'
		}
	case 'a':
		if l < 7 || l%7 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l; i += 7 {
			arc := append([]float64(nil), points[i:i+7]...)
			arc[5], arc[6] = c.rel(relative, arc[5], arc[6])
			if arc[0] == 0 || arc[1] == 0 {
				// a degenerate arc is a straight line
				c.lineTo(arc[5], arc[6])
				continue
			}
			largeArc, sweep := arc[3] != 0, arc[4] != 0
			cx, cy := findEllipseCenter(&arc[0], &arc[1], arc[2]*math.Pi/180,
				c.placeX, c.placeY, arc[5], arc[6], sweep, !largeArc)
			c.placeX, c.placeY = c.path.addArc(arc, cx, cy, c.placeX, c.placeY)
		}
	default:
		return fmt.Errorf("unsupported path command %q", string(k))
	}
	if lk := lower(k); lk != 's' && lk != 't' {
		c.lastKey = lk
	}
	return nil
}

// reflectControl mirrors the previous control point around the
// current point, per the S and T shorthand commands. The reflection
// only applies within the same curve family (S after C or S, T after
// Q or T); otherwise the control coincides with the current point.
func (c *pathCursor) reflectControl(family byte) (x, y float64) {
	if c.lastKey == family {
		return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
	}
	return c.placeX, c.placeY
}

func lower(k byte) byte {
	if k >= 'A' && k <= 'Z' {
		return k + 'a' - 'A'
	}
	return k
}
