package compositor

import (
	"strconv"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// applyMask wraps a node under the layer's raster mask. Missing mask
// pixels drop the mask with a diagnostic, never abort.
func (c *converter) applyMask(l *psdlayer.Layer, node svgscene.NodeID) svgscene.NodeID {
	m := l.Mask
	if m.Image == nil {
		c.diag(Warning, l.Name, "mask image missing, mask dropped")
		return node
	}
	href, err := c.opts.Encoder.EncodeImage(m.Image)
	if err != nil {
		c.diag(Warning, l.Name, "mask image encoding failed (%v), mask dropped", err)
		return node
	}

	t := c.tree
	id := c.newID("mask")
	mk := t.NewChild(c.defs, "mask")
	t.SetAttr(mk, "id", id)
	c.maskCoverage(mk)
	if m.DefaultColor > 0 {
		// coverage outside the mask rectangle
		gray := psdlayer.Gray(float64(m.DefaultColor) / 255)
		c.coverRect(mk, cssColor(gray), "")
	}
	img := t.NewChild(mk, "image")
	t.SetAttr(img, "x", strconv.Itoa(m.Rect.Min.X))
	t.SetAttr(img, "y", strconv.Itoa(m.Rect.Min.Y))
	t.SetAttr(img, "width", strconv.Itoa(m.Rect.Dx()))
	t.SetAttr(img, "height", strconv.Itoa(m.Rect.Dy()))
	t.SetAttr(img, "xlink:href", href)

	g := t.New("g")
	t.SetAttr(g, "mask", svgscene.URL(id))
	t.Append(g, node)
	return g
}

// silhouetteMask builds a mask of the layer's silhouette, used to
// restrict a clip group to the base layer below it. Shape layers
// contribute their exact region; pixel layers contribute their alpha
// channel; everything else falls back to the bounding box.
func (c *converter) silhouetteMask(l *psdlayer.Layer) string {
	t := c.tree
	id := c.newID("clip")
	mk := t.NewChild(c.defs, "mask")
	t.SetAttr(mk, "id", id)
	c.maskCoverage(mk)

	switch {
	case l.Kind == psdlayer.Shape && len(l.Shape) > 0:
		region := c.shapeRegion(l.Shape, white)
		t.Append(mk, region)

	case l.Kind == psdlayer.Pixel && l.Image != nil:
		img := c.imageNode(l)
		if img == svgscene.None {
			c.coverRect(mk, white, "")
			break
		}
		t.SetAttr(img, "filter", svgscene.URL(c.alphaFilter()))
		t.Append(mk, img)

	default:
		c.diag(Info, l.Name, "clip base silhouette approximated by the layer bounds")
		r := t.NewChild(mk, "rect")
		t.SetAttr(r, "x", strconv.Itoa(l.Rect.Min.X))
		t.SetAttr(r, "y", strconv.Itoa(l.Rect.Min.Y))
		t.SetAttr(r, "width", strconv.Itoa(l.Rect.Dx()))
		t.SetAttr(r, "height", strconv.Itoa(l.Rect.Dy()))
		t.SetAttr(r, "fill", white)
	}
	return id
}
