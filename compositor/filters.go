package compositor

import (
	"math"
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// filterBuilder assembles one filter definition primitive by
// primitive. Every primitive writes a uniquely named result channel;
// the last one written is the filter's output.
type filterBuilder struct {
	c    *converter
	node svgscene.NodeID // the <filter> element
	id   string
	n    int // result channel counter
}

// newFilter opens a filter definition with a generous region, since
// effects routinely paint outside the source bounds.
func (c *converter) newFilter() *filterBuilder {
	t := c.tree
	id := c.newID("filter")
	f := t.NewChild(c.defs, "filter")
	t.SetAttr(f, "id", id)
	t.SetAttr(f, "x", "-50%")
	t.SetAttr(f, "y", "-50%")
	t.SetAttr(f, "width", "200%")
	t.SetAttr(f, "height", "200%")
	return &filterBuilder{c: c, node: f, id: id}
}

// prim appends one primitive and names its result channel.
func (f *filterBuilder) prim(tag string, attrs ...svgscene.Attr) (svgscene.NodeID, string) {
	t := f.c.tree
	p := t.NewChild(f.node, tag)
	for _, a := range attrs {
		t.SetAttr(p, a.Name, a.Value)
	}
	f.n++
	res := "r" + strconv.Itoa(f.n)
	t.SetAttr(p, "result", res)
	return p, res
}

func (f *filterBuilder) num(v float64) string { return f.c.num(v) }

func (f *filterBuilder) flood(col psdlayer.Color, opacity float64) string {
	_, res := f.prim("feFlood",
		svgscene.Attr{Name: "flood-color", Value: cssColor(col)},
		svgscene.Attr{Name: "flood-opacity", Value: f.num(opacity)},
	)
	return res
}

func (f *filterBuilder) blur(in string, stdDev float64) string {
	_, res := f.prim("feGaussianBlur",
		svgscene.Attr{Name: "in", Value: in},
		svgscene.Attr{Name: "stdDeviation", Value: f.num(stdDev)},
	)
	return res
}

func (f *filterBuilder) offset(in string, dx, dy float64) string {
	_, res := f.prim("feOffset",
		svgscene.Attr{Name: "in", Value: in},
		svgscene.Attr{Name: "dx", Value: f.num(dx)},
		svgscene.Attr{Name: "dy", Value: f.num(dy)},
	)
	return res
}

// composite combines two channels with a Porter-Duff operator
// ("in", "out", "atop", "xor", "over").
func (f *filterBuilder) composite(in, in2, op string) string {
	_, res := f.prim("feComposite",
		svgscene.Attr{Name: "in", Value: in},
		svgscene.Attr{Name: "in2", Value: in2},
		svgscene.Attr{Name: "operator", Value: op},
	)
	return res
}

// morphology dilates or erodes a channel ("dilate", "erode").
func (f *filterBuilder) morphology(in, op string, radius float64) string {
	_, res := f.prim("feMorphology",
		svgscene.Attr{Name: "in", Value: in},
		svgscene.Attr{Name: "operator", Value: op},
		svgscene.Attr{Name: "radius", Value: f.num(radius)},
	)
	return res
}

// alphaSlope steepens the alpha falloff, the spread/choke control.
func (f *filterBuilder) alphaSlope(in string, slope float64) string {
	t := f.c.tree
	p, res := f.prim("feComponentTransfer",
		svgscene.Attr{Name: "in", Value: in},
	)
	fn := t.NewChild(p, "feFuncA")
	t.SetAttr(fn, "type", "linear")
	t.SetAttr(fn, "slope", f.num(slope))
	return res
}

// alphaInvert flips the alpha channel.
func (f *filterBuilder) alphaInvert(in string) string {
	t := f.c.tree
	p, res := f.prim("feComponentTransfer",
		svgscene.Attr{Name: "in", Value: in},
	)
	fn := t.NewChild(p, "feFuncA")
	t.SetAttr(fn, "type", "table")
	t.SetAttr(fn, "tableValues", "1 0")
	return res
}

// lighting adds a distant light specular branch over a bump channel.
func (f *filterBuilder) lighting(in string, col psdlayer.Color, surfaceScale, exponent, azimuth, elevation float64) string {
	t := f.c.tree
	p, res := f.prim("feSpecularLighting",
		svgscene.Attr{Name: "in", Value: in},
		svgscene.Attr{Name: "surfaceScale", Value: f.num(surfaceScale)},
		svgscene.Attr{Name: "specularConstant", Value: "1"},
		svgscene.Attr{Name: "specularExponent", Value: f.num(exponent)},
		svgscene.Attr{Name: "lighting-color", Value: cssColor(col)},
	)
	l := t.NewChild(p, "feDistantLight")
	t.SetAttr(l, "azimuth", f.num(azimuth))
	t.SetAttr(l, "elevation", f.num(elevation))
	return res
}

// alphaFilter returns the shared extract-alpha filter, turning a
// node's alpha channel into white coverage, suitable as mask
// content. It is built once per document.
func (c *converter) alphaFilter() string {
	const key = "extract-alpha"
	if id, ok := c.sharedFilters[key]; ok {
		return id
	}
	f := c.newFilter()
	f.prim("feColorMatrix",
		svgscene.Attr{Name: "in", Value: "SourceAlpha"},
		svgscene.Attr{Name: "type", Value: "matrix"},
		svgscene.Attr{Name: "values", Value: "0 0 0 0 1 0 0 0 0 1 0 0 0 0 1 0 0 0 1 0"},
	)
	c.sharedFilters[key] = f.id
	return f.id
}

// offsetVector converts the light angle and distance of an effect to
// the emitted offset, y growing downwards.
func offsetVector(angleDeg, distance float64) (dx, dy float64) {
	a := angleDeg * math.Pi / 180
	return distance * math.Cos(a), -distance * math.Sin(a)
}

// shadowFilter builds the drop shadow pipeline: blurred silhouette,
// widened by the spread slope, offset along the light angle and
// tinted.
func (c *converter) shadowFilter(e psdlayer.DropShadow) string {
	f := c.newFilter()
	a := f.blur("SourceAlpha", e.Size/2)
	if e.Spread > 0 {
		a = f.alphaSlope(a, 1+4*e.Spread)
	}
	dx, dy := offsetVector(e.Angle, e.Distance)
	a = f.offset(a, dx, dy)
	tint := f.flood(e.Color, e.Opacity)
	f.composite(tint, a, "in")
	return f.id
}

// innerShadowFilter tints the region of the silhouette not covered
// by its offset copy, clipped to the original.
func (c *converter) innerShadowFilter(e psdlayer.InnerShadow) string {
	f := c.newFilter()
	dx, dy := offsetVector(e.Angle, e.Distance)
	a := f.offset("SourceAlpha", dx, dy)
	a = f.blur(a, e.Size/2)
	if e.Choke > 0 {
		a = f.alphaSlope(a, 1+4*e.Choke)
	}
	tint := f.flood(e.Color, e.Opacity)
	sh := f.composite(tint, a, "out")
	f.composite(sh, "SourceAlpha", "in")
	return f.id
}

// glowColor picks the color of a glow effect; a gradient source is
// approximated by its first stop, both absent resolves to white.
func (c *converter) glowColor(layer string, col *psdlayer.Color, grad *psdlayer.GradientPaint) psdlayer.Color {
	if col != nil {
		return *col
	}
	if grad != nil {
		if len(grad.ColorStops) > 0 {
			c.diag(Info, layer, "gradient glow approximated by its first stop color")
			return grad.ColorStops[0].Color
		}
	}
	c.diag(Warning, layer, "glow has no color source, defaulting to white")
	return psdlayer.Gray(1)
}

func (c *converter) outerGlowFilter(layer string, e psdlayer.OuterGlow) string {
	col := c.glowColor(layer, e.Color, e.Gradient)
	f := c.newFilter()
	a := f.blur("SourceAlpha", e.Size/2)
	if e.Spread > 0 {
		a = f.alphaSlope(a, 1+4*e.Spread)
	}
	tint := f.flood(col, e.Opacity)
	glow := f.composite(tint, a, "in")
	f.composite(glow, "SourceAlpha", "out")
	return f.id
}

func (c *converter) innerGlowFilter(layer string, e psdlayer.InnerGlow) string {
	col := c.glowColor(layer, e.Color, e.Gradient)
	f := c.newFilter()
	a := f.blur("SourceAlpha", e.Size/2)
	if e.Choke > 0 {
		a = f.alphaSlope(a, 1+4*e.Choke)
	}
	tint := f.flood(col, e.Opacity)
	var glow string
	if e.Source == psdlayer.GlowCenter {
		glow = f.composite(tint, a, "in")
	} else {
		glow = f.composite(tint, a, "out")
	}
	f.composite(glow, "SourceAlpha", "in")
	return f.id
}

// bevelFilter builds one lighting branch of a bevel; the shadow side
// flips the azimuth.
func (c *converter) bevelFilter(e psdlayer.Bevel, shadowSide bool) string {
	f := c.newFilter()
	a := f.blur("SourceAlpha", e.Size/3.2)
	col, azimuth := e.HighlightColor, e.Angle
	if shadowSide {
		col, azimuth = e.ShadowColor, e.Angle+180
	}
	exponent := 10 - e.Soften
	if exponent < 1 {
		exponent = 1
	}
	lit := f.lighting(a, col, e.Depth*5, exponent, azimuth, e.Altitude)
	if e.Style == psdlayer.OuterBevel {
		f.composite(lit, "SourceAlpha", "out")
	} else {
		f.composite(lit, "SourceAlpha", "in")
	}
	return f.id
}

// satinFilter blurs the XOR of two opposite offsets of the
// silhouette, tints it and clips it to the interior.
func (c *converter) satinFilter(e psdlayer.Satin) string {
	f := c.newFilter()
	dx, dy := offsetVector(e.Angle, e.Distance)
	o1 := f.offset("SourceAlpha", dx, dy)
	o2 := f.offset("SourceAlpha", -dx, -dy)
	x := f.composite(o1, o2, "xor")
	a := f.blur(x, e.Size/2)
	if e.Invert {
		a = f.alphaInvert(a)
	}
	tint := f.flood(e.Color, e.Opacity)
	sheen := f.composite(tint, a, "in")
	f.composite(sheen, "SourceAlpha", "in")
	return f.id
}

// strokeColor resolves the paint of an effect stroke to a flood
// color; gradients and patterns are approximated.
func (c *converter) strokeColor(layer string, p psdlayer.Paint) psdlayer.Color {
	switch p := p.(type) {
	case psdlayer.Solid:
		return p.Color
	case psdlayer.GradientPaint:
		if len(p.ColorStops) > 0 {
			c.diag(Info, layer, "gradient stroke approximated by its first stop color")
			return p.ColorStops[0].Color
		}
	case psdlayer.PatternPaint:
		c.diag(Warning, layer, "pattern stroke approximated by black")
		return psdlayer.Color{}
	}
	c.diag(Warning, layer, "stroke has no color source, defaulting to black")
	return psdlayer.Color{}
}

// strokeEffectFilter builds a morphological ring around, inside or
// across the silhouette edge.
func (c *converter) strokeEffectFilter(layer string, e psdlayer.StrokeEffect) string {
	col := c.strokeColor(layer, e.Paint)
	f := c.newFilter()
	var ring string
	switch e.Position {
	case psdlayer.StrokeInside:
		er := f.morphology("SourceAlpha", "erode", e.Size)
		ring = f.composite("SourceAlpha", er, "out")
	case psdlayer.StrokeCenter:
		di := f.morphology("SourceAlpha", "dilate", e.Size/2)
		er := f.morphology("SourceAlpha", "erode", e.Size/2)
		ring = f.composite(di, er, "xor")
	default: // outside
		di := f.morphology("SourceAlpha", "dilate", e.Size)
		ring = f.composite(di, "SourceAlpha", "out")
	}
	tint := f.flood(col, e.Opacity)
	f.composite(tint, ring, "in")
	return f.id
}
