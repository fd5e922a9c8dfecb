package compositor

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgpath"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// resolvePaint returns the fill attribute value for a paint
// descriptor: a fixed point rgb() color, or a reference to a
// gradient or pattern definition. bounds is the painted element's
// box, used as the frame of layer aligned gradients.
func (c *converter) resolvePaint(p psdlayer.Paint, bounds image.Rectangle, layer string) string {
	switch p := p.(type) {
	case psdlayer.Solid:
		return cssColor(p.Color)
	case psdlayer.GradientPaint:
		return svgscene.URL(c.gradientDef(p, layer))
	case psdlayer.PatternPaint:
		return svgscene.URL(c.patternDef(p, layer))
	case nil:
		c.diag(Warning, layer, "missing paint, defaulting to black")
		return cssColor(psdlayer.Color{})
	default:
		c.diag(Warning, layer, "unsupported paint %T, defaulting to black", p)
		return cssColor(psdlayer.Color{})
	}
}

// cssColor renders a color as a fixed point rgb() value.
func cssColor(col psdlayer.Color) string {
	n := col.NRGBA(1)
	return "rgb(" + strconv.Itoa(int(n.R)) + "," + strconv.Itoa(int(n.G)) + "," + strconv.Itoa(int(n.B)) + ")"
}

// gradientDef emits a linear or radial gradient definition and
// returns its id.
//
// Layer aligned gradients use the object bounding box frame, with
// the reference point at the box midpoint; user space gradients use
// the canvas, around its center. Scale, angle and offset compose as
// translate, rotate and scale around the reference point, then
// translate back.
func (c *converter) gradientDef(g psdlayer.GradientPaint, layer string) string {
	t := c.tree
	id := c.newID("grad")

	tag := "linearGradient"
	if g.Kind == psdlayer.RadialGradient {
		tag = "radialGradient"
	}
	el := t.NewChild(c.defs, tag)
	t.SetAttr(el, "id", id)

	var cx, cy, x0, x1, r float64
	if g.AlignWithLayer {
		// object bounding box units, the default
		cx, cy = 0.5+g.Offset.X, 0.5+g.Offset.Y
		x0, x1, r = 0, 1, 0.5
	} else {
		t.SetAttr(el, "gradientUnits", "userSpaceOnUse")
		w := float64(c.doc.Bounds.Dx())
		h := float64(c.doc.Bounds.Dy())
		cx = w/2 + g.Offset.X*w
		cy = h/2 + g.Offset.Y*h
		x0, x1, r = 0, w, w/2
	}

	switch g.Kind {
	case psdlayer.RadialGradient:
		t.SetAttr(el, "cx", c.num(cx))
		t.SetAttr(el, "cy", c.num(cy))
		t.SetAttr(el, "r", c.num(r))
	default:
		t.SetAttr(el, "x1", c.num(x0))
		t.SetAttr(el, "y1", c.num(cy))
		t.SetAttr(el, "x2", c.num(x1))
		t.SetAttr(el, "y2", c.num(cy))
	}

	scale := g.Scale
	if scale == 0 {
		scale = 1
	}
	if g.Angle != 0 || scale != 1 {
		m := svgpath.Identity.
			Translate(cx, cy).
			Rotate(-g.Angle * math.Pi / 180).
			Scale(scale, scale).
			Translate(-cx, -cy)
		t.SetAttr(el, "gradientTransform", c.matrix(m))
	}

	stops, complete := mergeStops(g.ColorStops, g.OpacityStops, g.Reverse)
	if !complete {
		c.diag(Warning, layer, "gradient has no color stops, defaulting to black")
	}
	for _, s := range stops {
		st := t.NewChild(el, "stop")
		t.SetAttr(st, "offset", svgscene.FormatPercent(s.Loc, c.opts.Precision))
		t.SetAttr(st, "stop-color", cssColor(s.Color))
		if s.Opacity < 1 {
			t.SetAttr(st, "stop-opacity", c.num(s.Opacity))
		}
	}
	return id
}

// patternDef emits a pattern definition and returns its id. An
// unavailable tile yields a colorless but valid pattern.
func (c *converter) patternDef(p psdlayer.PatternPaint, layer string) string {
	t := c.tree
	id := c.newID("pat")
	el := t.NewChild(c.defs, "pattern")
	t.SetAttr(el, "id", id)
	t.SetAttr(el, "patternUnits", "userSpaceOnUse")

	var tile image.Image
	if c.opts.Tiles != nil {
		tile, _ = c.opts.Tiles.PatternTile(p.TileID)
	}
	if tile == nil {
		c.diag(Warning, layer, "pattern tile %q unavailable, pattern is colorless", p.TileID)
		t.SetAttr(el, "width", "1")
		t.SetAttr(el, "height", "1")
		return id
	}
	href, err := c.opts.Encoder.EncodeImage(tile)
	if err != nil {
		c.diag(Warning, layer, "pattern tile %q encoding failed (%v), pattern is colorless", p.TileID, err)
		t.SetAttr(el, "width", "1")
		t.SetAttr(el, "height", "1")
		return id
	}
	b := tile.Bounds()
	t.SetAttr(el, "width", strconv.Itoa(b.Dx()))
	t.SetAttr(el, "height", strconv.Itoa(b.Dy()))

	// reference point translation, then scale, then rotation
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	var tr []string
	if p.Phase.X != 0 || p.Phase.Y != 0 {
		tr = append(tr, "translate("+c.num(p.Phase.X)+" "+c.num(p.Phase.Y)+")")
	}
	if scale != 1 {
		tr = append(tr, "scale("+c.num(scale)+")")
	}
	if p.Angle != 0 {
		tr = append(tr, "rotate("+c.num(-p.Angle)+")")
	}
	if len(tr) > 0 {
		t.SetAttr(el, "patternTransform", strings.Join(tr, " "))
	}

	img := t.NewChild(el, "image")
	t.SetAttr(img, "width", strconv.Itoa(b.Dx()))
	t.SetAttr(img, "height", strconv.Itoa(b.Dy()))
	t.SetAttr(img, "xlink:href", href)
	return id
}

// matrix renders an affine transform as a matrix() value.
func (c *converter) matrix(m svgpath.Matrix2D) string {
	parts := []string{
		c.num(m.A), c.num(m.B), c.num(m.C),
		c.num(m.D), c.num(m.E), c.num(m.F),
	}
	return "matrix(" + strings.Join(parts, " ") + ")"
}
