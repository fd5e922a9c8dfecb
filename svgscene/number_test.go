package svgscene

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want string
	}{
		{0.00001, 5, "0.00001"},
		{-0.00001, 5, "-0.00001"},
		{1.0, 5, "1"},
		{0, 5, "0"},
		{-0.000001, 5, "0"},
		{100, 5, "100"},
		{1234.56789, 2, "1234.57"},
		{0.5, 5, "0.5"},
		{-12.25, 1, "-12.2"},
		{1e-7, 5, "0"},
		{123456789, 5, "123456789"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v, tt.prec); got != tt.want {
			t.Errorf("FormatNumber(%v, %d) = %q, want %q", tt.v, tt.prec, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		frac float64
		want string
	}{
		{0, "0%"},
		{1, "100%"},
		{0.375, "37.5%"},
		{0.5, "50%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.frac, 5); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.frac, got, tt.want)
		}
	}
}
