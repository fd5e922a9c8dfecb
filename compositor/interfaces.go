package compositor

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

// Collaborator interfaces consumed by the conversion. All calls are
// synchronous and treated as idempotent for a given input.

// ImageEncoder turns raw pixel data into a reference usable as an
// image source (embedded data URI, or a location written by the
// caller).
type ImageEncoder interface {
	EncodeImage(img image.Image) (href string, err error)
}

// DataURIEncoder embeds images as base64 PNG data URIs.
// It is the default encoder.
type DataURIEncoder struct{}

func (DataURIEncoder) EncodeImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FontInfo is the resolved identity of a font, used only to annotate
// text nodes. No shaping happens here.
type FontInfo struct {
	Family string
	Weight int // CSS weight, 400 normal, 700 bold
	Italic bool
}

// FontResolver maps a font identifier (postscript name) to an
// available family.
type FontResolver interface {
	ResolveFont(name string) (FontInfo, bool)
}

// TileProvider exposes the named pattern tiles of the source
// document.
type TileProvider interface {
	PatternTile(id string) (image.Image, bool)
}
