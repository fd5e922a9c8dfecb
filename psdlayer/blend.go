package psdlayer

// BlendMode is the compositing function of a layer against the
// content below it, as a closed enumeration.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendDissolve
	BlendDarken
	BlendMultiply
	BlendColorBurn
	BlendLinearBurn
	BlendDarkerColor
	BlendLighten
	BlendScreen
	BlendColorDodge
	BlendLinearDodge
	BlendLighterColor
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendVividLight
	BlendLinearLight
	BlendPinLight
	BlendHardMix
	BlendDifference
	BlendExclusion
	BlendSubtract
	BlendDivide
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
	BlendPassThrough // groups only
)

// blendCodes is the one translation table from the raw 4-byte codes
// found in the binary format. Parsers call BlendModeFromCode once at
// the boundary; the compositor only ever sees BlendMode values.
var blendCodes = map[string]BlendMode{
	"norm": BlendNormal,
	"diss": BlendDissolve,
	"dark": BlendDarken,
	"mul ": BlendMultiply,
	"idiv": BlendColorBurn,
	"lbrn": BlendLinearBurn,
	"dkCl": BlendDarkerColor,
	"lite": BlendLighten,
	"scrn": BlendScreen,
	"div ": BlendColorDodge,
	"lddg": BlendLinearDodge,
	"lgCl": BlendLighterColor,
	"over": BlendOverlay,
	"sLit": BlendSoftLight,
	"hLit": BlendHardLight,
	"vLit": BlendVividLight,
	"lLit": BlendLinearLight,
	"pLit": BlendPinLight,
	"hMix": BlendHardMix,
	"diff": BlendDifference,
	"smud": BlendExclusion,
	"fsub": BlendSubtract,
	"fdiv": BlendDivide,
	"hue ": BlendHue,
	"sat ": BlendSaturation,
	"colr": BlendColor,
	"lum ": BlendLuminosity,
	"pass": BlendPassThrough,
}

// BlendModeFromCode translates a raw document code.
// Unknown codes resolve to (BlendNormal, false): the caller is
// expected to record a diagnostic and continue.
func BlendModeFromCode(code string) (BlendMode, bool) {
	m, ok := blendCodes[code]
	return m, ok
}

// CSS returns the mix-blend-mode property value, or "" when the mode
// is the identity (normal) or has no CSS counterpart.
// Modes without an equivalent (dissolve, the linear and "darker color"
// families...) map to their closest supported value or to "".
func (b BlendMode) CSS() string {
	switch b {
	case BlendDarken, BlendDarkerColor:
		return "darken"
	case BlendMultiply, BlendLinearBurn:
		return "multiply"
	case BlendColorBurn:
		return "color-burn"
	case BlendLighten, BlendLighterColor:
		return "lighten"
	case BlendScreen, BlendLinearDodge:
		return "screen"
	case BlendColorDodge:
		return "color-dodge"
	case BlendOverlay:
		return "overlay"
	case BlendSoftLight:
		return "soft-light"
	case BlendHardLight, BlendVividLight, BlendLinearLight, BlendPinLight, BlendHardMix:
		return "hard-light"
	case BlendDifference, BlendSubtract:
		return "difference"
	case BlendExclusion, BlendDivide:
		return "exclusion"
	case BlendHue:
		return "hue"
	case BlendSaturation:
		return "saturation"
	case BlendColor:
		return "color"
	case BlendLuminosity:
		return "luminosity"
	default:
		// normal, dissolve and pass-through render as plain stacking
		return ""
	}
}

// Exact reports whether CSS() is a faithful equivalent, as opposed to
// the nearest approximation.
func (b BlendMode) Exact() bool {
	switch b {
	case BlendNormal, BlendPassThrough, BlendDarken, BlendMultiply, BlendColorBurn,
		BlendLighten, BlendScreen, BlendColorDodge, BlendOverlay, BlendSoftLight,
		BlendHardLight, BlendDifference, BlendExclusion, BlendHue, BlendSaturation,
		BlendColor, BlendLuminosity:
		return true
	}
	return false
}

func (b BlendMode) String() string {
	for code, m := range blendCodes {
		if m == b {
			return code
		}
	}
	return "<unknown BlendMode>"
}
