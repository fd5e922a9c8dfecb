package compositor

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/psdsvg/psdlayer"
	"github.com/benoitkugler/psdsvg/svgscene"
)

func TestOffsetVector(t *testing.T) {
	type result struct{ dx, dy float64 }
	tests := []struct {
		angle, distance float64
		want            result
	}{
		{0, 10, result{10, 0}},
		{90, 10, result{0, -10}},
		{180, 10, result{-10, 0}},
		{270, 10, result{0, 10}},
	}
	for _, tt := range tests {
		dx, dy := offsetVector(tt.angle, tt.distance)
		if math.Abs(dx-tt.want.dx) > 1e-9 || math.Abs(dy-tt.want.dy) > 1e-9 {
			t.Errorf("offsetVector(%v, %v) = (%v, %v), want (%v, %v)",
				tt.angle, tt.distance, dx, dy, tt.want.dx, tt.want.dy)
		}
	}
}

func withEffects(name string, fx ...psdlayer.Effect) *psdlayer.Layer {
	l := solidShape(name, psdlayer.RGB(0, 0, 255))
	l.Effects = psdlayer.EffectList{Enabled: true, List: fx}
	return l
}

func TestConvertDropShadow(t *testing.T) {
	ds := psdlayer.DropShadow{
		Color:    psdlayer.RGB(0, 0, 0),
		Angle:    90,
		Distance: 10,
		Size:     4,
	}
	ds.Enabled = true
	ds.Opacity = 0.75

	tr, _, err := Convert(testDoc(withEffects("shadowed", ds)), Options{})
	if err != nil {
		t.Fatal(err)
	}

	// the original becomes a definition
	var src svgscene.NodeID = svgscene.None
	for _, p := range findAll(tr, "path") {
		if strings.HasPrefix(tr.Attr(p, "id"), "src") {
			src = p
		}
	}
	if src == svgscene.None {
		t.Fatal("source definition missing")
	}

	uses := findAll(tr, "use")
	if len(uses) != 2 {
		t.Fatalf("got %d uses, want shadow below the original", len(uses))
	}
	shadow, orig := uses[0], uses[1]
	ref, ok := svgscene.ParseRef(tr.Attr(shadow, "filter"))
	if !ok {
		t.Fatalf("shadow filter = %q", tr.Attr(shadow, "filter"))
	}
	if tr.HasAttr(orig, "filter") {
		t.Error("the original copy carries no filter")
	}

	f := findByID(tr, ref)
	if f == svgscene.None || tr.Tag(f) != "filter" {
		t.Fatal("shadow filter definition missing")
	}
	var tags []string
	for _, p := range tr.Children(f) {
		tags = append(tags, tr.Tag(p))
	}
	want := []string{"feGaussianBlur", "feOffset", "feFlood", "feComposite"}
	if len(tags) != len(want) {
		t.Fatalf("primitives = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("primitives = %v, want %v", tags, want)
		}
	}

	prims := tr.Children(f)
	if got := tr.Attr(prims[0], "stdDeviation"); got != "2" {
		t.Errorf("blur stdDeviation = %q, want half the size", got)
	}
	if dx, dy := tr.Attr(prims[1], "dx"), tr.Attr(prims[1], "dy"); dx != "0" || dy != "-10" {
		t.Errorf("offset = (%q, %q), light at 90 degrees casts straight down", dx, dy)
	}
	if got := tr.Attr(prims[2], "flood-opacity"); got != "0.75" {
		t.Errorf("flood-opacity = %q", got)
	}
	if got := tr.Attr(prims[3], "operator"); got != "in" {
		t.Errorf("composite operator = %q", got)
	}
}

func TestConvertEffectStackingOrder(t *testing.T) {
	ds := psdlayer.DropShadow{Size: 4}
	ds.Enabled = true
	ds.Opacity = 1

	co := psdlayer.ColorOverlay{Color: psdlayer.RGB(255, 0, 0)}
	co.Enabled = true
	co.Opacity = 1

	is := psdlayer.InnerShadow{Size: 4}
	is.Enabled = true
	is.Opacity = 1

	se := psdlayer.StrokeEffect{Position: psdlayer.StrokeOutside, Size: 2, Paint: psdlayer.Solid{}}
	se.Enabled = true
	se.Opacity = 1

	// declaration order does not matter, the stacking order is fixed
	l := withEffects("stacked", se, is, co, ds)
	tr, _, err := Convert(testDoc(l), Options{})
	if err != nil {
		t.Fatal(err)
	}

	var pipeline svgscene.NodeID = svgscene.None
	for _, g := range findAll(tr, "g") {
		if titleOf(tr, g) == "stacked" {
			pipeline = g
		}
	}
	if pipeline == svgscene.None {
		t.Fatal("effect pipeline group missing")
	}

	kids := tr.Children(pipeline)
	// title, shadow use, original use, overlay group, inner shadow
	// use, stroke use
	if len(kids) != 6 {
		t.Fatalf("pipeline has %d children, want 6", len(kids))
	}
	if tr.Tag(kids[0]) != "title" {
		t.Errorf("first child = %q", tr.Tag(kids[0]))
	}
	if tr.Tag(kids[1]) != "use" || !tr.HasAttr(kids[1], "filter") {
		t.Error("drop shadow should paint first")
	}
	if tr.Tag(kids[2]) != "use" || tr.HasAttr(kids[2], "filter") {
		t.Error("the original should paint above the shadow, unfiltered")
	}
	if tr.Tag(kids[3]) != "g" || !tr.HasAttr(kids[3], "mask") {
		t.Error("the overlay should be a masked group above the original")
	}
	if tr.Tag(kids[4]) != "use" || !tr.HasAttr(kids[4], "filter") {
		t.Error("the inner shadow should paint above the overlay")
	}
	if tr.Tag(kids[5]) != "use" || !tr.HasAttr(kids[5], "filter") {
		t.Error("the stroke should paint last")
	}
}

func TestConvertOverlaysShareSilhouetteMask(t *testing.T) {
	co := psdlayer.ColorOverlay{Color: psdlayer.RGB(255, 0, 0)}
	co.Enabled = true
	co.Opacity = 1

	po := psdlayer.GradientOverlay{Gradient: psdlayer.GradientPaint{
		AlignWithLayer: true,
		ColorStops:     []psdlayer.ColorStop{{Loc: 0, Color: psdlayer.RGB(0, 0, 0)}},
	}}
	po.Enabled = true
	po.Opacity = 1

	tr, _, err := Convert(testDoc(withEffects("dressed", co, po)), Options{})
	if err != nil {
		t.Fatal(err)
	}
	masks := findAll(tr, "mask")
	if len(masks) != 1 {
		t.Fatalf("got %d masks, overlays share one silhouette mask", len(masks))
	}
	id := tr.Attr(masks[0], "id")
	shared := 0
	for _, g := range findAll(tr, "g") {
		if tr.Attr(g, "mask") == svgscene.URL(id) {
			shared++
		}
	}
	if shared != 2 {
		t.Errorf("%d overlay groups reference the mask, want 2", shared)
	}
	// the silhouette is the source alpha, extracted by the shared
	// filter, built once
	filters := 0
	for _, f := range findAll(tr, "filter") {
		for _, p := range tr.Children(f) {
			if tr.Tag(p) == "feColorMatrix" && tr.Attr(p, "in") == "SourceAlpha" {
				filters++
			}
		}
	}
	if filters != 1 {
		t.Errorf("got %d alpha extraction filters, want 1", filters)
	}
}

func TestConvertBevelBranches(t *testing.T) {
	b := psdlayer.Bevel{
		Enabled:          true,
		Style:            psdlayer.InnerBevel,
		Depth:            1,
		Size:             6,
		Angle:            120,
		Altitude:         30,
		HighlightColor:   psdlayer.Gray(1),
		HighlightOpacity: 0.8,
		ShadowColor:      psdlayer.Gray(0),
		ShadowOpacity:    0.6,
	}
	tr, _, err := Convert(testDoc(withEffects("chiseled", b)), Options{})
	if err != nil {
		t.Fatal(err)
	}
	lit := findAll(tr, "feSpecularLighting")
	if len(lit) != 2 {
		t.Fatalf("got %d lighting primitives, want shadow and highlight", len(lit))
	}
	var azimuths []string
	for _, p := range lit {
		kids := tr.Children(p)
		if len(kids) != 1 || tr.Tag(kids[0]) != "feDistantLight" {
			t.Fatal("lighting primitive missing its distant light")
		}
		azimuths = append(azimuths, tr.Attr(kids[0], "azimuth"))
	}
	if azimuths[0] != "300" || azimuths[1] != "120" {
		t.Errorf("azimuths = %v, the shadow side flips the light", azimuths)
	}
}

func TestConvertGlowWithoutColorSource(t *testing.T) {
	og := psdlayer.OuterGlow{Size: 5}
	og.Enabled = true
	og.Opacity = 1

	tr, diags, err := Convert(testDoc(withEffects("glowing", og)), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hasDiag(diags, Warning, "white") {
		t.Errorf("missing glow color should be reported, got %v", diags)
	}
	var flood string
	for _, p := range findAll(tr, "feFlood") {
		flood = tr.Attr(p, "flood-color")
	}
	if flood != "rgb(255,255,255)" {
		t.Errorf("glow flood-color = %q, want white", flood)
	}
}

func TestConvertEffectsCastFromMaskedContent(t *testing.T) {
	ds := psdlayer.DropShadow{Color: psdlayer.RGB(0, 0, 0), Angle: 90, Distance: 10, Size: 4}
	ds.Enabled = true
	ds.Opacity = 1

	l := withEffects("masked shadow", ds)
	l.Mask = &psdlayer.Mask{
		Rect:         l.Rect,
		Image:        image.NewGray(image.Rect(0, 0, 10, 10)),
		DefaultColor: 0,
	}
	tr, _, err := Convert(testDoc(l), Options{})
	if err != nil {
		t.Fatal(err)
	}

	// the definition the effect pipeline references is the masked
	// content, so the shadow is cast from the masked silhouette
	var src svgscene.NodeID = svgscene.None
	tr.Walk(tr.Root(), func(n svgscene.NodeID) bool {
		if strings.HasPrefix(tr.Attr(n, "id"), "src") {
			src = n
			return false
		}
		return true
	})
	if src == svgscene.None {
		t.Fatal("source definition missing")
	}
	if tr.Tag(src) != "g" {
		t.Fatalf("source definition is a %s, want a masked group", tr.Tag(src))
	}
	ref, ok := svgscene.ParseRef(tr.Attr(src, "mask"))
	if !ok {
		t.Fatalf("source mask = %q", tr.Attr(src, "mask"))
	}
	if m := findByID(tr, ref); m == svgscene.None || tr.Tag(m) != "mask" {
		t.Fatal("referenced mask definition missing")
	}
	kids := tr.Children(src)
	if len(kids) != 1 || tr.Tag(kids[0]) != "path" {
		t.Errorf("masked group should hold the layer content, got %d children", len(kids))
	}
}

func TestConvertEffectsDisabledMaster(t *testing.T) {
	ds := psdlayer.DropShadow{Size: 4}
	ds.Enabled = true
	ds.Opacity = 1
	l := withEffects("off", ds)
	l.Effects.Enabled = false

	tr, _, err := Convert(testDoc(l), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if n := len(findAll(tr, "filter")); n != 0 {
		t.Errorf("got %d filters with the master switch off", n)
	}
	if n := len(findAll(tr, "use")); n != 0 {
		t.Errorf("got %d uses with the master switch off", n)
	}
}
