// Package psdfile decodes Photoshop documents into the psdlayer
// model, through github.com/oov/psd. All format specific codes are
// translated here, at the boundary: the rest of the module never
// sees them.
//
// The decoder reads raster content, folders, masks, opacity and
// blending. Vector shapes, text and adjustment payloads live in
// additional-info blocks it does not interpret; richer front ends
// build the psdlayer tree themselves.
package psdfile

import (
	"fmt"
	"io"
	"os"

	"github.com/oov/psd"

	"github.com/benoitkugler/psdsvg/psdlayer"
)

// Load decodes a document from r. The merged composite image is
// skipped: only the layer stack matters here.
func Load(r io.Reader) (*psdlayer.Document, error) {
	img, _, err := psd.Decode(r, &psd.DecodeOptions{SkipMergedImage: true})
	if err != nil {
		return nil, fmt.Errorf("decoding psd stream: %w", err)
	}
	return &psdlayer.Document{
		Bounds: img.Config.Rect,
		Layers: convertLayers(img.Layer),
	}, nil
}

// LoadFile decodes the document at path.
func LoadFile(path string) (*psdlayer.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// convertLayers reverses the file's bottom-to-top record order into
// the model's top-to-bottom stacking order.
func convertLayers(in []psd.Layer) []*psdlayer.Layer {
	out := make([]*psdlayer.Layer, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, convertLayer(&in[i]))
	}
	return out
}

func convertLayer(src *psd.Layer) *psdlayer.Layer {
	l := &psdlayer.Layer{
		Kind:        psdlayer.Pixel,
		Name:        src.Name,
		Rect:        src.Rect,
		Visible:     src.Visible(),
		Opacity:     float64(src.Opacity) / 255,
		FillOpacity: fillOpacity(src),
		Clipping:    src.Clipping,
		BlendMode:   blendMode(string(src.BlendMode)),
	}
	switch {
	case src.Folder():
		l.Kind = psdlayer.Group
		l.Children = convertLayers(src.Layer)
	case src.HasImage():
		l.Image = src.Picker
	}
	l.Mask = convertMask(src)
	return l
}

func blendMode(code string) psdlayer.BlendMode {
	mode, ok := psdlayer.BlendModeFromCode(code)
	if !ok {
		return psdlayer.BlendNormal
	}
	return mode
}

// fillOpacity reads the interior opacity block ("iOpa"), one byte.
func fillOpacity(src *psd.Layer) float64 {
	if b, ok := src.AdditionalLayerInfo[psd.AdditionalInfoKey("iOpa")]; ok && len(b) > 0 {
		return float64(b[0]) / 255
	}
	return 1
}

// maskChannelID is the channel holding the layer mask pixels; the
// mask record itself only carries geometry and flags.
const maskChannelID = -2

func convertMask(src *psd.Layer) *psdlayer.Mask {
	ch, ok := src.Channel[maskChannelID]
	if !ok || ch.Picker == nil {
		return nil
	}
	m := &src.Mask
	return &psdlayer.Mask{
		Rect:         m.Rect,
		Image:        ch.Picker,
		DefaultColor: uint8(m.DefaultColor),
		Disabled:     !m.Enabled(),
	}
}
