package compositor

import (
	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// applyEffects wraps a node with its effect pipeline. The original
// content becomes a reusable definition, re-emitted as <use> copies
// carrying one filter each, in a fixed stacking order: drop shadows
// and outer glows below, the original at its fill opacity, overlay
// fills masked by the silhouette alpha, then inner shadows, inner
// glows, bevel lighting, satin and strokes on top.
func (c *converter) applyEffects(l *psdlayer.Layer, node svgscene.NodeID, fx []psdlayer.Effect) svgscene.NodeID {
	t := c.tree
	srcID := c.newID("src")
	t.SetAttr(node, "id", srcID)
	t.Append(c.defs, node)

	g := t.New("g")
	use := func(parent svgscene.NodeID) svgscene.NodeID {
		u := t.NewChild(parent, "use")
		t.SetAttr(u, "xlink:href", svgscene.Href(srcID))
		return u
	}

	var outer, overlays, inner, bevels, satins, strokes []psdlayer.Effect
	for _, e := range fx {
		switch e.(type) {
		case psdlayer.DropShadow, psdlayer.OuterGlow:
			outer = append(outer, e)
		case psdlayer.ColorOverlay, psdlayer.GradientOverlay, psdlayer.PatternOverlay:
			overlays = append(overlays, e)
		case psdlayer.InnerShadow, psdlayer.InnerGlow:
			inner = append(inner, e)
		case psdlayer.Bevel:
			bevels = append(bevels, e)
		case psdlayer.Satin:
			satins = append(satins, e)
		case psdlayer.StrokeEffect:
			strokes = append(strokes, e)
		}
	}

	for _, e := range outer {
		u := use(g)
		switch e := e.(type) {
		case psdlayer.DropShadow:
			t.SetAttr(u, "filter", svgscene.URL(c.shadowFilter(e)))
			c.effectBlend(u, l.Name, e.BlendMode)
		case psdlayer.OuterGlow:
			t.SetAttr(u, "filter", svgscene.URL(c.outerGlowFilter(l.Name, e)))
			c.effectBlend(u, l.Name, e.BlendMode)
		}
	}

	orig := use(g)
	if l.FillOpacity < 1 {
		t.SetAttr(orig, "opacity", c.num(l.FillOpacity))
	}

	// the overlays share one silhouette alpha mask
	alphaMask := ""
	for _, e := range overlays {
		if alphaMask == "" {
			alphaMask = c.newID("mask")
			mk := t.NewChild(c.defs, "mask")
			t.SetAttr(mk, "id", alphaMask)
			c.maskCoverage(mk)
			mu := use(mk)
			t.SetAttr(mu, "filter", svgscene.URL(c.alphaFilter()))
		}
		wrap := t.NewChild(g, "g")
		t.SetAttr(wrap, "mask", svgscene.URL(alphaMask))
		var fill string
		var mode psdlayer.BlendMode
		var opacity float64
		switch e := e.(type) {
		case psdlayer.ColorOverlay:
			fill, mode, opacity = cssColor(e.Color), e.BlendMode, e.Opacity
		case psdlayer.GradientOverlay:
			fill = svgscene.URL(c.gradientDef(e.Gradient, l.Name))
			mode, opacity = e.BlendMode, e.Opacity
		case psdlayer.PatternOverlay:
			fill = svgscene.URL(c.patternDef(e.Pattern, l.Name))
			mode, opacity = e.BlendMode, e.Opacity
		}
		c.coverRect(wrap, fill, "")
		if opacity < 1 {
			t.SetAttr(wrap, "opacity", c.num(opacity))
		}
		c.effectBlend(wrap, l.Name, mode)
	}

	for _, e := range inner {
		u := use(g)
		switch e := e.(type) {
		case psdlayer.InnerShadow:
			t.SetAttr(u, "filter", svgscene.URL(c.innerShadowFilter(e)))
			c.effectBlend(u, l.Name, e.BlendMode)
		case psdlayer.InnerGlow:
			t.SetAttr(u, "filter", svgscene.URL(c.innerGlowFilter(l.Name, e)))
			c.effectBlend(u, l.Name, e.BlendMode)
		}
	}

	for _, e := range bevels {
		b := e.(psdlayer.Bevel)
		bg := t.NewChild(g, "g")
		sh := use(bg)
		t.SetAttr(sh, "filter", svgscene.URL(c.bevelFilter(b, true)))
		if b.ShadowOpacity < 1 {
			t.SetAttr(sh, "opacity", c.num(b.ShadowOpacity))
		}
		c.effectBlend(sh, l.Name, b.ShadowMode)
		hi := use(bg)
		t.SetAttr(hi, "filter", svgscene.URL(c.bevelFilter(b, false)))
		if b.HighlightOpacity < 1 {
			t.SetAttr(hi, "opacity", c.num(b.HighlightOpacity))
		}
		c.effectBlend(hi, l.Name, b.HighlightMode)
	}

	for _, e := range satins {
		s := e.(psdlayer.Satin)
		u := use(g)
		t.SetAttr(u, "filter", svgscene.URL(c.satinFilter(s)))
		c.effectBlend(u, l.Name, s.BlendMode)
	}

	for _, e := range strokes {
		s := e.(psdlayer.StrokeEffect)
		u := use(g)
		t.SetAttr(u, "filter", svgscene.URL(c.strokeEffectFilter(l.Name, s)))
		c.effectBlend(u, l.Name, s.BlendMode)
	}

	return g
}

// effectBlend carries an effect's blend mode as a style property.
func (c *converter) effectBlend(node svgscene.NodeID, layer string, mode psdlayer.BlendMode) {
	css := mode.CSS()
	if css == "" {
		if mode != psdlayer.BlendNormal && mode != psdlayer.BlendPassThrough {
			c.diag(Warning, layer, "effect blend mode %s is not supported, treated as normal", mode)
		}
		return
	}
	c.tree.SetAttr(node, "style", "mix-blend-mode:"+css)
	if !mode.Exact() {
		c.diag(Info, layer, "effect blend mode %s approximated by %s", mode, css)
	}
}
