package fontinfo

import (
	"testing"

	"github.com/benoitkugler/psdsvg/compositor"
)

func TestSplitPostscript(t *testing.T) {
	tests := []struct {
		in, family, style string
	}{
		{"Helvetica-BoldOblique", "Helvetica", "BoldOblique"},
		{"Helvetica", "Helvetica", ""},
		{"Source-Sans-Pro", "Source", "Sans-Pro"},
	}
	for _, tt := range tests {
		family, style := splitPostscript(tt.in)
		if family != tt.family || style != tt.style {
			t.Errorf("splitPostscript(%q) = %q, %q; want %q, %q",
				tt.in, family, style, tt.family, tt.style)
		}
	}
}

func TestApplyStyle(t *testing.T) {
	tests := []struct {
		style  string
		weight int
		italic bool
	}{
		{"Bold", 700, false},
		{"BoldItalic", 700, true},
		{"Oblique", 400, true},
		{"Black", 900, false},
		{"Heavy", 900, false},
		{"Medium", 500, false},
		{"LightItalic", 300, true},
		{"Thin", 100, false},
		{"Regular", 400, false},
	}
	for _, tt := range tests {
		info := compositor.FontInfo{Family: "X", Weight: 400}
		applyStyle(&info, tt.style)
		if info.Weight != tt.weight || info.Italic != tt.italic {
			t.Errorf("applyStyle(%q) = weight %d italic %v; want %d, %v",
				tt.style, info.Weight, info.Italic, tt.weight, tt.italic)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Source Sans Pro", "sourcesanspro"},
		{"source-sans_pro", "sourcesanspro"},
		{"HELVETICA", "helvetica"},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveFontFromIndex(t *testing.T) {
	r := &SystemResolver{
		byFamily: map[string]compositor.FontInfo{
			"helvetica": {Family: "Helvetica", Weight: 400},
		},
	}
	r.once.Do(func() {}) // the index is pre-seeded

	info, ok := r.ResolveFont("Helvetica-Bold")
	if !ok {
		t.Fatal("family present in the index should resolve")
	}
	if info.Family != "Helvetica" || info.Weight != 700 {
		t.Errorf("resolved %+v", info)
	}

	if _, ok := r.ResolveFont("NoSuchFamily-Bold"); ok {
		t.Error("unknown family should not resolve")
	}
	if _, ok := r.ResolveFont(""); ok {
		t.Error("empty name should not resolve")
	}
}
