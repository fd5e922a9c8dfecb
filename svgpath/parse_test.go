package svgpath

import (
	"errors"
	"testing"
)

func TestParseAbsolute(t *testing.T) {
	p, err := Parse("M10 20 L30 40 Q50 60 70 80 C1 2 3 4 5 6 Z")
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo(ToFixedP(10, 20)),
		LineTo(ToFixedP(30, 40)),
		QuadTo{ToFixedP(50, 60), ToFixedP(70, 80)},
		CubicTo{ToFixedP(1, 2), ToFixedP(3, 4), ToFixedP(5, 6)},
		Close{},
	}
	if len(p) != len(want) {
		t.Fatalf("got %d operations, want %d", len(p), len(want))
	}
	if got := p.ToSVGPath(3); got != want.ToSVGPath(3) {
		t.Errorf("got %q, want %q", got, want.ToSVGPath(3))
	}
}

func TestParseRelative(t *testing.T) {
	abs, err := Parse("M10 10 L20 30 L10 30 Z")
	if err != nil {
		t.Fatal(err)
	}
	rel, err := Parse("m10 10 l10 20 l-10 0 z")
	if err != nil {
		t.Fatal(err)
	}
	if abs.ToSVGPath(3) != rel.ToSVGPath(3) {
		t.Errorf("relative form differs: %q vs %q", rel.ToSVGPath(3), abs.ToSVGPath(3))
	}
}

func TestParseHorizontalVertical(t *testing.T) {
	p, err := Parse("M0 0 H10 V20 h-5 v-5")
	if err != nil {
		t.Fatal(err)
	}
	want := "M0,0 L10,0 L10,20 L5,20 L5,15"
	if got := p.ToSVGPath(3); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseSmoothControls(t *testing.T) {
	// the reflected control of S continues the previous cubic
	p, err := Parse("M0 0 C0 10 10 10 10 0 S20 -10 20 0")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 {
		t.Fatalf("got %d operations, want 3", len(p))
	}
	c, ok := p[2].(CubicTo)
	if !ok {
		t.Fatalf("expected a cubic, got %T", p[2])
	}
	if got := c[0]; got != ToFixedP(10, -10) {
		t.Errorf("reflected control = %v, want %v", got, ToFixedP(10, -10))
	}
}

func TestParseSmoothAfterOtherFamily(t *testing.T) {
	// S only reflects a cubic control; after a quadratic the control
	// collapses onto the current point
	p, err := Parse("M0 0 Q5 5 10 0 S15 -5 20 0")
	if err != nil {
		t.Fatal(err)
	}
	c, ok := p[2].(CubicTo)
	if !ok {
		t.Fatalf("expected a cubic, got %T", p[2])
	}
	if got := c[0]; got != ToFixedP(10, 0) {
		t.Errorf("first control = %v, want the current point %v", got, ToFixedP(10, 0))
	}

	// and symmetrically for T after a cubic
	p, err = Parse("M0 0 C0 10 10 10 10 0 T20 0")
	if err != nil {
		t.Fatal(err)
	}
	q, ok := p[2].(QuadTo)
	if !ok {
		t.Fatalf("expected a quadratic, got %T", p[2])
	}
	if got := q[0]; got != ToFixedP(10, 0) {
		t.Errorf("control = %v, want the current point %v", got, ToFixedP(10, 0))
	}
}

func TestParseArcBecomesCubics(t *testing.T) {
	p, err := Parse("M0 0 A10 10 0 0 1 10 10")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) < 2 {
		t.Fatalf("arc produced %d operations", len(p))
	}
	for _, op := range p[1:] {
		if _, ok := op.(CubicTo); !ok {
			t.Errorf("arc expanded to %T, want cubics", op)
		}
	}
}

func TestParseScientificNotation(t *testing.T) {
	p, err := Parse("M1e1 2E1 L1.5e2 0")
	if err != nil {
		t.Fatal(err)
	}
	want := "M10,20 L150,0"
	if got := p.ToSVGPath(3); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{
		"M10",       // missing ordinate
		"M10 10 L5", // dangling parameter
		"Q1 2 3",    // quad needs two points
		"X1 2",      // unknown command
	} {
		if _, err := Parse(d); err == nil {
			t.Errorf("Parse(%q): expected an error", d)
		}
	}
	if _, err := Parse("M10"); !errors.Is(err, errParamMismatch) {
		t.Errorf("Parse(\"M10\") = %v, want errParamMismatch", err)
	}
}

func TestBounds(t *testing.T) {
	var p Path
	p.AddRect(10, 20, 110, 70)
	b := p.Bounds()
	if b.X != 10 || b.Y != 20 || b.W != 100 || b.H != 50 {
		t.Errorf("rect bounds = %+v", b)
	}

	// the extremum of this quadratic lies between its anchors
	p, err := Parse("M0 0 Q50 100 100 0")
	if err != nil {
		t.Fatal(err)
	}
	b = p.Bounds()
	if b.Y != 0 {
		t.Errorf("quad min y = %v, want 0", b.Y)
	}
	if got := b.H; got < 49 || got > 51 {
		t.Errorf("quad height = %v, want 50", got)
	}
}

func TestTransform(t *testing.T) {
	var p Path
	p.AddRect(0, 0, 10, 10)
	m := Identity.Translate(5, 5).Scale(2, 2)
	got := p.Transform(m).Bounds()
	if got.X != 5 || got.Y != 5 || got.W != 20 || got.H != 20 {
		t.Errorf("transformed bounds = %+v", got)
	}
}
