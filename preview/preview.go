// Package preview rasterizes the emitted scene with rasterx, as a
// proofing aid. It renders the subset the compositor emits directly
// (rectangles, paths, images, solid and gradient fills, <use>
// copies); filters, masks and blend modes are ignored, so the output
// approximates the document rather than reproducing it.
package preview

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/psdsvg/svgpath"
	"github.com/benoitkugler/psdsvg/svgscene"
)

// RenderTree rasterizes a scene into an RGBA image of the given
// size. Zero width or height is read from the root element.
func RenderTree(t *svgscene.Tree, w, h int) (*image.RGBA, error) {
	root := t.Root()
	if w <= 0 {
		w, _ = strconv.Atoi(t.Attr(root, "width"))
	}
	if h <= 0 {
		h, _ = strconv.Atoi(t.Attr(root, "height"))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	r := &renderer{
		t:       t,
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(w, h, scanner),
		byID:    make(map[string]svgscene.NodeID),
		grads:   make(map[string]gradient),
	}
	r.index(root)
	for _, kid := range t.Children(root) {
		r.element(kid, 1, "")
	}
	return img, r.err
}

type renderer struct {
	t       *svgscene.Tree
	img     *image.RGBA
	scanner rasterx.Scanner
	filler  *rasterx.Filler

	byID  map[string]svgscene.NodeID
	grads map[string]gradient

	err error
}

type gradient struct {
	points    [5]float64
	radial    bool
	userSpace bool
	stops     []rasterx.GradStop
}

// index records element ids and parses gradient definitions.
func (r *renderer) index(root svgscene.NodeID) {
	t := r.t
	t.Walk(root, func(n svgscene.NodeID) bool {
		if id := t.Attr(n, "id"); id != "" {
			r.byID[id] = n
		}
		switch t.Tag(n) {
		case "linearGradient", "radialGradient":
			r.parseGradient(n)
		}
		return true
	})
}

func (r *renderer) parseGradient(n svgscene.NodeID) {
	t := r.t
	id := t.Attr(n, "id")
	if id == "" {
		return
	}
	g := gradient{
		radial:    t.Tag(n) == "radialGradient",
		userSpace: t.Attr(n, "gradientUnits") == "userSpaceOnUse",
	}
	num := func(name string, def float64) float64 {
		v := t.Attr(n, name)
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def
		}
		return f
	}
	if g.radial {
		g.points[0] = num("cx", 0.5)
		g.points[1] = num("cy", 0.5)
		g.points[2] = g.points[0]
		g.points[3] = g.points[1]
		g.points[4] = num("r", 0.5)
	} else {
		g.points[0] = num("x1", 0)
		g.points[1] = num("y1", 0)
		g.points[2] = num("x2", 1)
		g.points[3] = num("y2", 0)
	}
	for _, kid := range t.Children(n) {
		if t.Tag(kid) != "stop" {
			continue
		}
		off := strings.TrimSuffix(t.Attr(kid, "offset"), "%")
		loc, err := strconv.ParseFloat(off, 64)
		if err != nil {
			continue
		}
		opacity := 1.0
		if v := t.Attr(kid, "stop-opacity"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				opacity = f
			}
		}
		col, ok := parseColor(t.Attr(kid, "stop-color"))
		if !ok {
			continue
		}
		g.stops = append(g.stops, rasterx.GradStop{
			StopColor: col, Offset: loc / 100, Opacity: opacity,
		})
	}
	r.grads[id] = g
}

// element renders one node; opacity and fill inherit down.
func (r *renderer) element(n svgscene.NodeID, opacity float64, fill string) {
	t := r.t
	if t.Attr(n, "display") == "none" {
		return
	}
	if v := t.Attr(n, "opacity"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opacity *= f
		}
	}
	if v := t.Attr(n, "fill"); v != "" {
		fill = v
	}

	switch t.Tag(n) {
	case "defs", "mask", "filter", "clipPath", "pattern", "symbol",
		"linearGradient", "radialGradient", "title", "desc", "text":
		return
	case "g", "svg", "a":
		for _, kid := range t.Children(n) {
			r.element(kid, opacity, fill)
		}
	case "use":
		ref := t.Attr(n, "xlink:href")
		if ref == "" {
			ref = t.Attr(n, "href")
		}
		if id, ok := svgscene.ParseRef(ref); ok {
			if target, ok := r.byID[id]; ok {
				r.element(target, opacity, fill)
			}
		}
	case "rect":
		r.fillRect(n, opacity, fill)
	case "path":
		r.fillPath(t.Attr(n, "d"), opacity, fill)
	case "image":
		r.drawImage(n, opacity)
	}
}

func (r *renderer) attrFloat(n svgscene.NodeID, name string) float64 {
	f, _ := strconv.ParseFloat(r.t.Attr(n, name), 64)
	return f
}

func (r *renderer) fillRect(n svgscene.NodeID, opacity float64, fill string) {
	x := r.attrFloat(n, "x")
	y := r.attrFloat(n, "y")
	w := r.attrFloat(n, "width")
	h := r.attrFloat(n, "height")
	if w <= 0 || h <= 0 {
		return
	}
	var p svgpath.Path
	p.AddRect(x, y, x+w, y+h)
	r.rasterize(p, opacity, fill)
}

func (r *renderer) fillPath(d string, opacity float64, fill string) {
	if d == "" {
		return
	}
	p, err := svgpath.Parse(d)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.rasterize(p, opacity, fill)
}

func (r *renderer) rasterize(p svgpath.Path, opacity float64, fill string) {
	if fill == "none" || opacity <= 0 {
		return
	}
	f := r.filler
	open := false
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			if open {
				f.Stop(false)
			}
			f.Start(fixed.Point26_6(op))
			open = true
		case svgpath.LineTo:
			f.Line(fixed.Point26_6(op))
		case svgpath.QuadTo:
			f.QuadBezier(op[0], op[1])
		case svgpath.CubicTo:
			f.CubeBezier(op[0], op[1], op[2])
		case svgpath.Close:
			f.Stop(true)
			open = false
		}
	}
	if open {
		f.Stop(false)
	}
	r.setFill(fill, opacity)
	f.Draw()
	f.Clear()
}

// setFill resolves the fill value on the scanner: a plain color, or
// a gradient reference. The path must already be loaded, since
// object box gradients read its extent.
func (r *renderer) setFill(fill string, opacity float64) {
	if id, ok := svgscene.ParseRef(fill); ok {
		if g, ok := r.grads[id]; ok && len(g.stops) > 0 {
			r.scanner.SetColor(r.gradientFunc(g, opacity))
			return
		}
		fill = ""
	}
	col, ok := parseColor(fill)
	if !ok {
		col = color.NRGBA{A: 255}
	}
	r.scanner.SetColor(rasterx.ApplyOpacity(col, opacity))
}

func (r *renderer) gradientFunc(g gradient, opacity float64) interface{} {
	grad := rasterx.Gradient{
		Points:   g.points,
		Stops:    g.stops,
		Matrix:   rasterx.Identity,
		Spread:   rasterx.PadSpread,
		Units:    rasterx.ObjectBoundingBox,
		IsRadial: g.radial,
	}
	if g.userSpace {
		grad.Units = rasterx.UserSpaceOnUse
	} else {
		ext := r.scanner.GetPathExtent()
		minX, minY := float64(ext.Min.X)/64, float64(ext.Min.Y)/64
		maxX, maxY := float64(ext.Max.X)/64, float64(ext.Max.Y)/64
		grad.Bounds.X, grad.Bounds.Y = minX, minY
		grad.Bounds.W, grad.Bounds.H = maxX-minX, maxY-minY
	}
	return grad.GetColorFunction(opacity)
}

// drawImage decodes an embedded data URI and scales it into place.
func (r *renderer) drawImage(n svgscene.NodeID, opacity float64) {
	href := r.t.Attr(n, "xlink:href")
	if href == "" {
		href = r.t.Attr(n, "href")
	}
	src, ok := decodeDataURI(href)
	if !ok {
		return
	}
	x := int(r.attrFloat(n, "x"))
	y := int(r.attrFloat(n, "y"))
	w := int(r.attrFloat(n, "width"))
	h := int(r.attrFloat(n, "height"))
	if w <= 0 || h <= 0 {
		b := src.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	dst := image.Rect(x, y, x+w, y+h)
	op := xdraw.Over
	if opacity >= 1 && src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		xdraw.Draw(r.img, dst, src, src.Bounds().Min, xdraw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), op, nil)
}

func decodeDataURI(href string) (image.Image, bool) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(href, prefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(href[len(prefix):])
	if err != nil {
		return nil, false
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false
	}
	return img, true
}

// parseColor reads the color syntaxes the compositor emits:
// rgb(r,g,b), #rgb and #rrggbb.
func parseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.NRGBA{}, false
		}
		var v [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return color.NRGBA{}, false
			}
			v[i] = uint8(n)
		}
		return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 255}, true
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.NRGBA{}, false
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, true
	case s == "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true
	case s == "black" || s == "":
		return color.NRGBA{A: 255}, true
	}
	return color.NRGBA{}, false
}
