package psdlayer

import (
	"image"
	"testing"
)

func TestBlendModeFromCode(t *testing.T) {
	tests := []struct {
		code string
		want BlendMode
	}{
		{"norm", BlendNormal},
		{"mul ", BlendMultiply},
		{"scrn", BlendScreen},
		{"pass", BlendPassThrough},
		{"lum ", BlendLuminosity},
	}
	for _, tt := range tests {
		got, ok := BlendModeFromCode(tt.code)
		if !ok || got != tt.want {
			t.Errorf("BlendModeFromCode(%q) = %v, %v", tt.code, got, ok)
		}
	}
	if _, ok := BlendModeFromCode("wxyz"); ok {
		t.Error("unknown code accepted")
	}
}

func TestBlendModeCSS(t *testing.T) {
	if got := BlendNormal.CSS(); got != "" {
		t.Errorf("normal maps to %q, want the empty identity", got)
	}
	if got := BlendPassThrough.CSS(); got != "" {
		t.Errorf("pass-through maps to %q, want the empty identity", got)
	}
	if got := BlendMultiply.CSS(); got != "multiply" {
		t.Errorf("multiply maps to %q", got)
	}
	// approximations are flagged as inexact
	if BlendLinearBurn.CSS() != "multiply" || BlendLinearBurn.Exact() {
		t.Error("linear burn should approximate multiply, inexactly")
	}
	if !BlendMultiply.Exact() {
		t.Error("multiply is an exact mapping")
	}
}

func TestColorToRGB(t *testing.T) {
	r, g, b := Gray(0.25).ToRGB()
	if r != 0.25 || g != 0.25 || b != 0.25 {
		t.Errorf("gray = %v %v %v", r, g, b)
	}
	r, g, b = CMYK(0, 0, 0, 1).ToRGB()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("full black cmyk = %v %v %v", r, g, b)
	}
	r, g, b = CMYK(1, 0, 0, 0).ToRGB()
	if r != 0 || g != 1 || b != 1 {
		t.Errorf("pure cyan = %v %v %v", r, g, b)
	}
	n := RGB(255, 128, 0).NRGBA(0.5)
	if n.R != 255 || n.G != 128 || n.B != 0 || n.A != 128 {
		t.Errorf("nrgba = %+v", n)
	}
}

func TestEffectListMasterSwitch(t *testing.T) {
	el := EffectList{
		Enabled: false,
		List: []Effect{
			DropShadow{common: common{Enabled: true, Opacity: 1}},
		},
	}
	if got := el.Active(); got != nil {
		t.Errorf("master switch off, got %d active effects", len(got))
	}
	el.Enabled = true
	if got := el.Active(); len(got) != 1 {
		t.Errorf("got %d active effects, want 1", len(got))
	}
	el.List = append(el.List, Satin{common: common{Enabled: false}})
	if got := el.Active(); len(got) != 1 {
		t.Error("disabled effect should not contribute")
	}
}

func TestHasContent(t *testing.T) {
	if (&Layer{Kind: Pixel}).HasContent() {
		t.Error("pixel layer without image is empty")
	}
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if !(&Layer{Kind: Pixel, Image: img}).HasContent() {
		t.Error("pixel layer with image has content")
	}
	if (&Layer{Kind: Shape}).HasContent() {
		t.Error("shape layer without paths is empty")
	}
	if !(&Layer{Kind: Group}).HasContent() {
		t.Error("groups always emit")
	}
}

func TestPathOpFromCode(t *testing.T) {
	op, ok := PathOpFromCode(2)
	if !ok || op != OpSubtract {
		t.Errorf("code 2 = %v, %v", op, ok)
	}
	if _, ok := PathOpFromCode(99); ok {
		t.Error("unknown path op code accepted")
	}
}
