package compositor

import (
	"sort"

	"github.com/benoitkugler/psdsvg/psdlayer"
)

// gradientStop is one merged stop: color and opacity at a shared
// location.
type gradientStop struct {
	Loc     float64 // in [0, 1]
	Color   psdlayer.Color
	Opacity float64 // in [0, 1]
}

// mergeStops merges the two independent stop sequences onto the
// union of their locations, interpolating linearly. The result
// always has at least two stops with strictly increasing locations:
// a lone location is duplicated to 0 and 1. reverse mirrors the
// locations (loc' = 1 - loc) and the stop order.
//
// ok is false when no color stop was supplied at all; the result is
// then an opaque black ramp.
func mergeStops(colors []psdlayer.ColorStop, opacities []psdlayer.OpacityStop, reverse bool) (stops []gradientStop, ok bool) {
	ok = len(colors) > 0
	if !ok {
		colors = []psdlayer.ColorStop{{Loc: 0}}
	}
	colors = sortedColorStops(colors)
	opacities = sortedOpacityStops(opacities)

	locs := make([]float64, 0, len(colors)+len(opacities))
	for _, s := range colors {
		locs = append(locs, clamp01(s.Loc))
	}
	for _, s := range opacities {
		locs = append(locs, clamp01(s.Loc))
	}
	sort.Float64s(locs)
	locs = dedupeLocs(locs)
	if len(locs) == 1 {
		v := locs[0]
		stops = []gradientStop{
			{Loc: 0, Color: colorAt(colors, v), Opacity: opacityAt(opacities, v)},
			{Loc: 1, Color: colorAt(colors, v), Opacity: opacityAt(opacities, v)},
		}
	} else {
		stops = make([]gradientStop, len(locs))
		for i, loc := range locs {
			stops[i] = gradientStop{
				Loc:     loc,
				Color:   colorAt(colors, loc),
				Opacity: opacityAt(opacities, loc),
			}
		}
	}

	if reverse {
		for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
			stops[i], stops[j] = stops[j], stops[i]
		}
		for i := range stops {
			stops[i].Loc = 1 - stops[i].Loc
		}
	}
	return stops, ok
}

func sortedColorStops(in []psdlayer.ColorStop) []psdlayer.ColorStop {
	out := append([]psdlayer.ColorStop(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out
}

func sortedOpacityStops(in []psdlayer.OpacityStop) []psdlayer.OpacityStop {
	out := append([]psdlayer.OpacityStop(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out
}

func dedupeLocs(locs []float64) []float64 {
	out := locs[:0]
	for i, v := range locs {
		if i > 0 && v == locs[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// colorAt samples the color ramp at loc, clamping outside the
// covered range. stops are sorted and non empty.
func colorAt(stops []psdlayer.ColorStop, loc float64) psdlayer.Color {
	if loc <= stops[0].Loc {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if loc >= last.Loc {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if loc > stops[i].Loc {
			continue
		}
		a, b := stops[i-1], stops[i]
		t := (loc - a.Loc) / (b.Loc - a.Loc)
		return lerpColor(a.Color, b.Color, t)
	}
	return last.Color
}

// opacityAt samples the opacity ramp at loc; an empty ramp is opaque.
func opacityAt(stops []psdlayer.OpacityStop, loc float64) float64 {
	if len(stops) == 0 {
		return 1
	}
	if loc <= stops[0].Loc {
		return stops[0].Opacity
	}
	last := stops[len(stops)-1]
	if loc >= last.Loc {
		return last.Opacity
	}
	for i := 1; i < len(stops); i++ {
		if loc > stops[i].Loc {
			continue
		}
		a, b := stops[i-1], stops[i]
		t := (loc - a.Loc) / (b.Loc - a.Loc)
		return a.Opacity + (b.Opacity-a.Opacity)*t
	}
	return last.Opacity
}

// lerpColor interpolates in RGB.
func lerpColor(a, b psdlayer.Color, t float64) psdlayer.Color {
	ar, ag, ab := a.ToRGB()
	br, bg, bb := b.ToRGB()
	return psdlayer.Color{
		Space: psdlayer.SpaceRGB,
		V: [4]float64{
			ar + (br-ar)*t,
			ag + (bg-ag)*t,
			ab + (bb-ab)*t,
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
