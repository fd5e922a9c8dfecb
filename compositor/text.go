package compositor

import (
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgpath"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// textNode emits a text layer: a <text> element with one <tspan> per
// styled run. No shaping or line breaking happens here; runs sit on
// the baseline, placed by the layer's text transform.
func (c *converter) textNode(l *psdlayer.Layer) svgscene.NodeID {
	ti := l.Text
	if ti == nil || len(ti.Runs) == 0 {
		c.diag(Info, l.Name, "text layer has no runs, skipped")
		return svgscene.None
	}
	t := c.tree
	n := t.New("text")

	m := svgpath.Matrix2D{
		A: ti.Transform[0], B: ti.Transform[1],
		C: ti.Transform[2], D: ti.Transform[3],
		E: ti.Transform[4], F: ti.Transform[5],
	}
	if !m.IsIdentity() {
		t.SetAttr(n, "transform", c.matrix(m))
	}

	switch ti.Justification {
	case psdlayer.JustifyCenter:
		t.SetAttr(n, "text-anchor", "middle")
	case psdlayer.JustifyRight:
		t.SetAttr(n, "text-anchor", "end")
	}
	if ti.Orientation == psdlayer.Vertical {
		t.SetAttr(n, "writing-mode", "vertical-rl")
	}

	parent := n
	if ti.Warp != psdlayer.WarpNone {
		if ti.Warp == psdlayer.WarpArc && ti.Orientation == psdlayer.Horizontal {
			parent = c.warpArcPath(n, l, ti.WarpValue)
		} else {
			c.diag(Info, l.Name, "warp style %s rendered on a straight baseline", ti.Warp)
		}
	}

	for _, run := range ti.Runs {
		span := t.NewChild(parent, "tspan")
		t.SetText(span, run.Text)
		if run.Size > 0 {
			t.SetAttr(span, "font-size", c.num(run.Size))
		}
		t.SetAttr(span, "fill", cssColor(run.Color))
		c.annotateFont(span, l.Name, run.Font)
	}
	return n
}

// annotateFont resolves the run's postscript name through the font
// resolver, falling back to the raw name.
func (c *converter) annotateFont(span svgscene.NodeID, layer, name string) {
	if name == "" {
		return
	}
	t := c.tree
	if c.opts.Fonts != nil {
		if info, ok := c.opts.Fonts.ResolveFont(name); ok {
			t.SetAttr(span, "font-family", info.Family)
			if info.Weight != 0 && info.Weight != 400 {
				t.SetAttr(span, "font-weight", strconv.Itoa(info.Weight))
			}
			if info.Italic {
				t.SetAttr(span, "font-style", "italic")
			}
			return
		}
		c.diag(Warning, layer, "font %q not resolved, emitting its raw name", name)
	}
	t.SetAttr(span, "font-family", name)
}

// warpArcPath defines the curved baseline of an arc warped text
// layer and returns a <textPath> to hold the runs. bend is the warp
// amount in [-1, 1]; the baseline is a quadratic through the layer
// box, its midpoint lifted by a quarter of the width at full bend.
func (c *converter) warpArcPath(text svgscene.NodeID, l *psdlayer.Layer, bend float64) svgscene.NodeID {
	t := c.tree
	w := float64(l.Rect.Dx())
	if w == 0 {
		w = float64(c.doc.Bounds.Dx())
	}
	sag := bend * w / 4

	id := c.newID("warp")
	def := t.NewChild(c.defs, "path")
	t.SetAttr(def, "id", id)
	d := "M0,0 Q" + c.num(w/2) + "," + c.num(-2*sag) + " " + c.num(w) + ",0"
	t.SetAttr(def, "d", d)

	tp := t.NewChild(text, "textPath")
	t.SetAttr(tp, "xlink:href", svgscene.Href(id))
	return tp
}
