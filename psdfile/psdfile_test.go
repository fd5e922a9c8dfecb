package psdfile

import (
	"image"
	"strings"
	"testing"

	"github.com/oov/psd"

	"github.com/benoitkugler/psdsvg/psdlayer"
)

func TestBlendModeTranslation(t *testing.T) {
	if got := blendMode("mul "); got != psdlayer.BlendMultiply {
		t.Errorf("mul -> %v", got)
	}
	if got := blendMode("norm"); got != psdlayer.BlendNormal {
		t.Errorf("norm -> %v", got)
	}
	// unknown codes degrade to normal, never fail
	if got := blendMode("????"); got != psdlayer.BlendNormal {
		t.Errorf("unknown code -> %v", got)
	}
}

func TestFillOpacity(t *testing.T) {
	var l psd.Layer
	if got := fillOpacity(&l); got != 1 {
		t.Errorf("missing block -> %v, want 1", got)
	}

	l.AdditionalLayerInfo = map[psd.AdditionalInfoKey][]byte{
		psd.AdditionalInfoKey("iOpa"): {51},
	}
	if got := fillOpacity(&l); got != 51.0/255 {
		t.Errorf("iOpa 51 -> %v", got)
	}

	l.AdditionalLayerInfo[psd.AdditionalInfoKey("iOpa")] = nil
	if got := fillOpacity(&l); got != 1 {
		t.Errorf("empty block -> %v, want 1", got)
	}
}

func TestConvertMaskWithoutPixels(t *testing.T) {
	var l psd.Layer
	if m := convertMask(&l); m != nil {
		t.Errorf("layer without a mask channel -> %+v, want nil", m)
	}
	l.Channel = map[int]psd.Channel{0: {}}
	if m := convertMask(&l); m != nil {
		t.Errorf("layer without mask pixels -> %+v, want nil", m)
	}
}

func TestConvertMaskFromChannel(t *testing.T) {
	var l psd.Layer
	l.Channel = map[int]psd.Channel{
		maskChannelID: {Picker: image.NewGray(image.Rect(0, 0, 2, 2))},
	}
	l.Mask.Rect = image.Rect(1, 1, 3, 3)
	l.Mask.DefaultColor = 255

	m := convertMask(&l)
	if m == nil {
		t.Fatal("mask channel with pixels should convert")
	}
	if m.Image == nil {
		t.Error("mask pixels missing")
	}
	if m.Rect != image.Rect(1, 1, 3, 3) {
		t.Errorf("mask rect = %v", m.Rect)
	}
	if m.DefaultColor != 255 {
		t.Errorf("default color = %d", m.DefaultColor)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("not a photoshop document"))
	if err == nil {
		t.Fatal("garbage input should not decode")
	}
	if !strings.Contains(err.Error(), "decoding psd stream") {
		t.Errorf("err = %v, want the decode context", err)
	}
}

func TestConvertLayersReversesOrder(t *testing.T) {
	// records are stored bottom to top; the model stacks top to bottom
	in := []psd.Layer{{Name: "bottom"}, {Name: "top"}}
	out := convertLayers(in)
	if len(out) != 2 {
		t.Fatalf("got %d layers", len(out))
	}
	if out[0].Name != "top" || out[1].Name != "bottom" {
		t.Errorf("order = %q, %q", out[0].Name, out[1].Name)
	}
	for _, l := range out {
		if l.Kind != psdlayer.Pixel {
			t.Errorf("layer %q kind = %v", l.Name, l.Kind)
		}
		if l.Rect != (image.Rectangle{}) {
			t.Errorf("layer %q rect = %v", l.Name, l.Rect)
		}
	}
}
