package compositor

import (
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// baseNode builds the content node of a layer, before opacity, mask
// and effects are applied. A None node means the layer is skipped
// (with a diagnostic); extra carries a vector stroke node emitted on
// top of shape content.
func (c *converter) baseNode(l *psdlayer.Layer, depth int) (node, extra svgscene.NodeID, err error) {
	extra = svgscene.None
	switch l.Kind {
	case psdlayer.Group:
		g := c.tree.New("g")
		if err := c.children(g, l.Children, depth+1); err != nil {
			return svgscene.None, svgscene.None, err
		}
		return g, extra, nil

	case psdlayer.Pixel:
		return c.imageNode(l), extra, nil

	case psdlayer.Shape:
		node, extra = c.shapeNode(l)
		return node, extra, nil

	case psdlayer.Text:
		return c.textNode(l), extra, nil

	case psdlayer.Adjustment:
		return c.adjustmentNode(l), extra, nil
	}
	c.diag(Warning, l.Name, "unknown layer kind %d, skipped", l.Kind)
	return svgscene.None, extra, nil
}

// imageNode emits a pixel layer as an <image> at its bounding box.
// A layer may carry effects but no pixels; there is no silhouette to
// build the pipeline on, so it is skipped.
func (c *converter) imageNode(l *psdlayer.Layer) svgscene.NodeID {
	if l.Image == nil {
		c.diag(Info, l.Name, "pixel layer has no image data, skipped")
		return svgscene.None
	}
	href, err := c.opts.Encoder.EncodeImage(l.Image)
	if err != nil {
		c.diag(Warning, l.Name, "image encoding failed (%v), layer skipped", err)
		return svgscene.None
	}
	t := c.tree
	n := t.New("image")
	t.SetAttr(n, "x", strconv.Itoa(l.Rect.Min.X))
	t.SetAttr(n, "y", strconv.Itoa(l.Rect.Min.Y))
	t.SetAttr(n, "width", strconv.Itoa(l.Rect.Dx()))
	t.SetAttr(n, "height", strconv.Itoa(l.Rect.Dy()))
	t.SetAttr(n, "xlink:href", href)
	return n
}

// adjustmentNode emits fill layers as painted regions; the transfer
// function adjustments (levels, curves, invert) stay identity
// placeholders.
func (c *converter) adjustmentNode(l *psdlayer.Layer) svgscene.NodeID {
	t := c.tree
	switch l.Adjustment {
	case psdlayer.SolidFill, psdlayer.GradientFill, psdlayer.PatternFill:
		if len(l.Shape) > 0 {
			node, _ := c.shapeNode(l)
			return node
		}
		fill := c.resolvePaint(l.Paint, l.Rect, l.Name)
		r := t.New("rect")
		b := c.doc.Bounds
		t.SetAttr(r, "x", strconv.Itoa(b.Min.X))
		t.SetAttr(r, "y", strconv.Itoa(b.Min.Y))
		t.SetAttr(r, "width", strconv.Itoa(b.Dx()))
		t.SetAttr(r, "height", strconv.Itoa(b.Dy()))
		t.SetAttr(r, "fill", fill)
		return r

	default:
		c.diag(Info, l.Name, "adjustment %s is emitted as an identity placeholder", l.Adjustment)
		return t.New("g")
	}
}
