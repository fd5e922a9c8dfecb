package compositor

import (
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

const (
	white = "#fff"
	black = "#000"
)

// accum is a boolean accumulator: a mask definition holding the
// region built so far, white where covered.
type accum struct {
	id   string
	node svgscene.NodeID
}

// shapeNode builds the renderable region of a shape layer, plus an
// optional vector stroke node drawn on top.
func (c *converter) shapeNode(l *psdlayer.Layer) (node, extra svgscene.NodeID) {
	if len(l.Shape) == 0 {
		c.diag(Info, l.Name, "shape layer has no paths, skipped")
		return svgscene.None, svgscene.None
	}
	fill := c.resolvePaint(l.Paint, l.Rect, l.Name)
	node = c.shapeRegion(l.Shape, fill)
	extra = svgscene.None
	if s, ok := vectorStroke(l); ok {
		extra = c.strokeNode(l, s)
	}
	return node, extra
}

// shapeRegion combines the ordered path groups into one renderable
// region. A single union group is a plain path; anything else builds
// accumulator masks and a final full bounds rectangle masked by the
// last one.
func (c *converter) shapeRegion(shape []psdlayer.PathGroup, fill string) svgscene.NodeID {
	t := c.tree
	groups := coalesce(shape)
	prec := c.opts.Precision

	if len(groups) == 1 && groups[0].Op == psdlayer.OpUnion {
		p := t.New("path")
		t.SetAttr(p, "d", groups[0].Path.ToSVGPath(prec))
		t.SetAttr(p, "fill", fill)
		return p
	}

	var acc accum
	for _, g := range groups {
		d := g.Path.ToSVGPath(prec)
		switch g.Op {
		case psdlayer.OpSubtract:
			if acc.id == "" {
				acc = c.newAccum()
				c.coverRect(acc.node, white, "")
			}
			c.regionPath(acc.node, d, black)

		case psdlayer.OpIntersect:
			if acc.id == "" {
				acc = c.newAccum()
				c.regionPath(acc.node, d, white)
				break
			}
			next := c.newAccum()
			inside := t.NewChild(next.node, "g")
			t.SetAttr(inside, "mask", svgscene.URL(acc.id))
			c.regionPath(inside, d, white)
			acc = next

		case psdlayer.OpXor:
			acc = c.xorRegion(acc, d)

		default: // union
			if acc.id == "" {
				acc = c.newAccum()
			}
			c.regionPath(acc.node, d, white)
		}
	}

	r := t.New("rect")
	b := c.doc.Bounds
	t.SetAttr(r, "x", strconv.Itoa(b.Min.X))
	t.SetAttr(r, "y", strconv.Itoa(b.Min.Y))
	t.SetAttr(r, "width", strconv.Itoa(b.Dx()))
	t.SetAttr(r, "height", strconv.Itoa(b.Dy()))
	t.SetAttr(r, "fill", fill)
	t.SetAttr(r, "mask", svgscene.URL(acc.id))
	return r
}

// xorRegion computes previous XOR shape as union minus intersection:
// the new shape becomes a reusable definition, referenced by both a
// union mask and a nested intersection mask.
func (c *converter) xorRegion(prev accum, d string) accum {
	t := c.tree
	if prev.id == "" {
		// xor with the empty region is the shape itself
		acc := c.newAccum()
		c.regionPath(acc.node, d, white)
		return acc
	}

	sid := c.newID("shape")
	def := t.NewChild(c.defs, "path")
	t.SetAttr(def, "id", sid)
	t.SetAttr(def, "d", d)

	union := c.newAccum()
	c.coverRect(union.node, white, prev.id)
	c.useShape(union.node, sid, white)

	inter := c.newAccum()
	inside := t.NewChild(inter.node, "g")
	t.SetAttr(inside, "mask", svgscene.URL(prev.id))
	c.useShape(inside, sid, white)

	res := c.newAccum()
	c.coverRect(res.node, white, union.id)
	c.coverRect(res.node, black, inter.id)
	return res
}

// newAccum allocates an empty accumulator mask in the defs pool.
func (c *converter) newAccum() accum {
	t := c.tree
	id := c.newID("acc")
	m := t.NewChild(c.defs, "mask")
	t.SetAttr(m, "id", id)
	c.maskCoverage(m)
	return accum{id: id, node: m}
}

// maskCoverage pins a mask's region to the whole canvas, instead of
// the default 120% object box.
func (c *converter) maskCoverage(m svgscene.NodeID) {
	t := c.tree
	b := c.doc.Bounds
	t.SetAttr(m, "maskUnits", "userSpaceOnUse")
	t.SetAttr(m, "x", strconv.Itoa(b.Min.X))
	t.SetAttr(m, "y", strconv.Itoa(b.Min.Y))
	t.SetAttr(m, "width", strconv.Itoa(b.Dx()))
	t.SetAttr(m, "height", strconv.Itoa(b.Dy()))
}

// regionPath draws a filled path into an accumulator.
func (c *converter) regionPath(parent svgscene.NodeID, d, fill string) {
	t := c.tree
	p := t.NewChild(parent, "path")
	t.SetAttr(p, "d", d)
	t.SetAttr(p, "fill", fill)
}

// coverRect draws a full canvas rectangle, optionally masked.
func (c *converter) coverRect(parent svgscene.NodeID, fill, maskID string) {
	t := c.tree
	b := c.doc.Bounds
	r := t.NewChild(parent, "rect")
	t.SetAttr(r, "x", strconv.Itoa(b.Min.X))
	t.SetAttr(r, "y", strconv.Itoa(b.Min.Y))
	t.SetAttr(r, "width", strconv.Itoa(b.Dx()))
	t.SetAttr(r, "height", strconv.Itoa(b.Dy()))
	t.SetAttr(r, "fill", fill)
	if maskID != "" {
		t.SetAttr(r, "mask", svgscene.URL(maskID))
	}
}

func (c *converter) useShape(parent svgscene.NodeID, id, fill string) {
	t := c.tree
	u := t.NewChild(parent, "use")
	t.SetAttr(u, "xlink:href", svgscene.Href(id))
	t.SetAttr(u, "fill", fill)
}

// coalesce folds continuation groups into their predecessor, so
// every remaining group carries a real boolean operation.
func coalesce(groups []psdlayer.PathGroup) []psdlayer.PathGroup {
	out := make([]psdlayer.PathGroup, 0, len(groups))
	for _, g := range groups {
		if g.Op == psdlayer.OpContinuation && len(out) > 0 {
			last := &out[len(out)-1]
			last.Path = append(last.Path[:len(last.Path):len(last.Path)], g.Path...)
			continue
		}
		if g.Op == psdlayer.OpContinuation {
			g.Op = psdlayer.OpUnion
		}
		out = append(out, g)
	}
	return out
}

// vectorStroke reports whether the layer's stroke effect can be
// drawn as a plain stroked path on top of the shape (a single union
// path, centered solid stroke). Anything else goes through the
// filter pipeline.
func vectorStroke(l *psdlayer.Layer) (psdlayer.StrokeEffect, bool) {
	if l.Kind != psdlayer.Shape {
		return psdlayer.StrokeEffect{}, false
	}
	groups := coalesce(l.Shape)
	if len(groups) != 1 || groups[0].Op != psdlayer.OpUnion {
		return psdlayer.StrokeEffect{}, false
	}
	for _, e := range l.Effects.Active() {
		s, ok := e.(psdlayer.StrokeEffect)
		if !ok || s.Position != psdlayer.StrokeCenter {
			continue
		}
		if _, solid := s.Paint.(psdlayer.Solid); solid {
			return s, true
		}
	}
	return psdlayer.StrokeEffect{}, false
}

// strokeNode draws the centered vector stroke of a single path shape.
func (c *converter) strokeNode(l *psdlayer.Layer, s psdlayer.StrokeEffect) svgscene.NodeID {
	t := c.tree
	groups := coalesce(l.Shape)
	p := t.New("path")
	t.SetAttr(p, "d", groups[0].Path.ToSVGPath(c.opts.Precision))
	t.SetAttr(p, "fill", "none")
	t.SetAttr(p, "stroke", cssColor(s.Paint.(psdlayer.Solid).Color))
	t.SetAttr(p, "stroke-width", c.num(s.Size))
	if s.Opacity < 1 {
		t.SetAttr(p, "stroke-opacity", c.num(s.Opacity))
	}
	return p
}

// pipelineEffects returns the effects routed through the filter
// pipeline: the active list, minus a stroke already drawn as a
// vector node.
func (c *converter) pipelineEffects(l *psdlayer.Layer) []psdlayer.Effect {
	fx := l.Effects.Active()
	if _, ok := vectorStroke(l); !ok {
		return fx
	}
	out := make([]psdlayer.Effect, 0, len(fx))
	skipped := false
	for _, e := range fx {
		if s, isStroke := e.(psdlayer.StrokeEffect); !skipped && isStroke && s.Position == psdlayer.StrokeCenter {
			if _, solid := s.Paint.(psdlayer.Solid); solid {
				skipped = true
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
