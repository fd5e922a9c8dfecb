package preview

import (
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/psdsvg/svgscene"
)

func parseScene(t *testing.T, src string) *svgscene.Tree {
	t.Helper()
	tree, err := svgscene.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"rgb(255,0,0)", color.NRGBA{R: 255, A: 255}, true},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, true},
		{"black", color.NRGBA{A: 255}, true},
		{"", color.NRGBA{A: 255}, true},
		{"rgb(300,0,0)", color.NRGBA{}, false},
		{"url(#grad1)", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := parseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderSolidRect(t *testing.T) {
	tree := parseScene(t, `<svg width="10" height="10">
	<rect x="2" y="2" width="6" height="6" fill="rgb(255,0,0)"/>
</svg>`)
	img, err := RenderTree(tree, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 10 {
		t.Fatalf("width = %d, sizes come from the root element", got)
	}
	if r, _, _, a := img.At(5, 5).RGBA(); r>>8 != 255 || a>>8 != 255 {
		t.Errorf("interior pixel = %v, want opaque red", img.At(5, 5))
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner pixel = %v, want transparent", img.At(0, 0))
	}
}

func TestRenderPathAndStacking(t *testing.T) {
	// the green path paints over the red rect
	tree := parseScene(t, `<svg width="10" height="10">
	<rect x="0" y="0" width="10" height="10" fill="rgb(255,0,0)"/>
	<path d="M0 0 L10 0 L10 10 L0 10 Z" fill="rgb(0,255,0)"/>
</svg>`)
	img, err := RenderTree(tree, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, g, _, _ := img.At(5, 5).RGBA()
	if g>>8 != 255 {
		t.Errorf("pixel = %v, the later path should win", img.At(5, 5))
	}
}

func TestRenderInheritedOpacityAndFill(t *testing.T) {
	tree := parseScene(t, `<svg width="4" height="4">
	<g fill="rgb(0,0,255)" opacity="0.5">
		<rect x="0" y="0" width="4" height="4"/>
	</g>
</svg>`)
	img, err := RenderTree(tree, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	_, _, b, a := img.At(2, 2).RGBA()
	if b == 0 {
		t.Fatal("fill should inherit from the group")
	}
	if got := a >> 8; got < 120 || got > 135 {
		t.Errorf("alpha = %d, want about half coverage", got)
	}
}

func TestRenderSkipsHiddenAndDefs(t *testing.T) {
	tree := parseScene(t, `<svg width="4" height="4">
	<defs>
		<rect x="0" y="0" width="4" height="4" fill="rgb(255,0,0)"/>
	</defs>
	<rect x="0" y="0" width="4" height="4" fill="rgb(0,255,0)" display="none"/>
</svg>`)
	img, err := RenderTree(tree, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(2, 2).RGBA(); a != 0 {
		t.Errorf("pixel = %v, defs and hidden content must not paint", img.At(2, 2))
	}
}

func TestRenderUse(t *testing.T) {
	tree := parseScene(t, `<svg width="4" height="4">
	<defs>
		<path id="src1" d="M0 0 L4 0 L4 4 L0 4 Z" fill="rgb(0,0,255)"/>
	</defs>
	<use xlink:href="#src1"/>
</svg>`)
	img, err := RenderTree(tree, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, b, _ := img.At(2, 2).RGBA(); b>>8 != 255 {
		t.Errorf("pixel = %v, the use copy should paint its target", img.At(2, 2))
	}
}

func TestRenderGradient(t *testing.T) {
	tree := parseScene(t, `<svg width="10" height="10">
	<defs>
		<linearGradient id="grad1" x1="0" y1="0.5" x2="1" y2="0.5">
			<stop offset="0%" stop-color="rgb(0,0,0)"/>
			<stop offset="100%" stop-color="rgb(255,255,255)"/>
		</linearGradient>
	</defs>
	<rect x="0" y="0" width="10" height="10" fill="url(#grad1)"/>
</svg>`)
	img, err := RenderTree(tree, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	_, _, _, a := img.At(5, 5).RGBA()
	if a == 0 {
		t.Fatal("gradient fill did not paint")
	}
	lr, _, _, _ := img.At(1, 5).RGBA()
	rr, _, _, _ := img.At(8, 5).RGBA()
	if lr >= rr {
		t.Errorf("left %d vs right %d, the ramp should brighten to the right", lr>>8, rr>>8)
	}
}

func TestRenderBadPathReported(t *testing.T) {
	tree := parseScene(t, `<svg width="4" height="4">
	<path d="M0 0 L" fill="rgb(0,0,0)"/>
</svg>`)
	if _, err := RenderTree(tree, 4, 4); err == nil {
		t.Error("a malformed path should surface as an error")
	}
}
