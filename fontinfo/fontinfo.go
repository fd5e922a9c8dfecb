// Package fontinfo resolves font names against the fonts installed
// on the host, through go-text's fontscan index. It only annotates:
// shaping stays out of scope.
package fontinfo

import (
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"

	"github.com/benoitkugler/psdsvg/compositor"
)

// SystemResolver implements compositor.FontResolver over the system
// font index, built lazily on first use and cached in the user cache
// directory. The zero value is ready to use and safe for concurrent
// calls.
type SystemResolver struct {
	once     sync.Once
	err      error
	byFamily map[string]compositor.FontInfo
}

func (r *SystemResolver) load() {
	dir, err := os.UserCacheDir()
	if err != nil {
		r.err = err
		return
	}
	fonts, err := fontscan.SystemFonts(nil, dir)
	if err != nil {
		r.err = err
		return
	}
	r.byFamily = make(map[string]compositor.FontInfo, len(fonts))
	for _, fp := range fonts {
		info := compositor.FontInfo{
			Family: fp.Family,
			Weight: int(fp.Aspect.Weight),
			Italic: fp.Aspect.Style == font.StyleItalic,
		}
		key := normalize(fp.Family)
		// one entry per family, preferring the regular face
		if _, ok := r.byFamily[key]; ok && !isRegular(info) {
			continue
		}
		r.byFamily[key] = info
	}
}

func isRegular(info compositor.FontInfo) bool {
	return !info.Italic && info.Weight == 400
}

// ResolveFont maps a postscript name ("Helvetica-BoldOblique") to an
// installed family, deriving weight and style from the name suffix
// when the exact face is not indexed.
func (r *SystemResolver) ResolveFont(name string) (compositor.FontInfo, bool) {
	r.once.Do(r.load)
	if r.err != nil || name == "" {
		return compositor.FontInfo{}, false
	}
	if info, ok := r.byFamily[normalize(name)]; ok {
		return info, true
	}
	family, style := splitPostscript(name)
	info, ok := r.byFamily[normalize(family)]
	if !ok {
		return compositor.FontInfo{}, false
	}
	applyStyle(&info, style)
	return info, true
}

// splitPostscript separates the family part of a postscript name
// from its style suffix.
func splitPostscript(name string) (family, style string) {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

func applyStyle(info *compositor.FontInfo, style string) {
	s := strings.ToLower(style)
	switch {
	case strings.Contains(s, "black"), strings.Contains(s, "heavy"):
		info.Weight = 900
	case strings.Contains(s, "bold"):
		info.Weight = 700
	case strings.Contains(s, "medium"):
		info.Weight = 500
	case strings.Contains(s, "light"):
		info.Weight = 300
	case strings.Contains(s, "thin"):
		info.Weight = 100
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		info.Italic = true
	}
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(name))
}
