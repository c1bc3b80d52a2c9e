package reflayout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/skribidi/layout"
)

// SFNTFont implements layout.Font on top of golang.org/x/image/font/sfnt.
// Fonts are registered under a (family, weight, style, stretch) key; a
// handle is just an index into the registered slice, resolved back to a
// parsed *sfnt.Font and its ppem-scaled metrics on demand.
type SFNTFont struct {
	faces []face
}

type face struct {
	family          string
	weight          int
	style           int
	stretch         int
	lang, script    string
	parsed          *sfnt.Font
	ppem            fixed.Int26_6
	metrics         layout.FontMetrics
	metricsResolved bool
}

// NewSFNTFont returns an empty font collaborator; call Register to add
// faces before handing it to an Editor.
func NewSFNTFont() *SFNTFont {
	return &SFNTFont{}
}

// Register parses raw sfnt/ttf/otf/woff2-decompressed bytes and adds it as
// a matchable face at the given point size (ppem). lang/script are matched
// loosely (empty matches everything) the way MatchFonts is queried.
func (f *SFNTFont) Register(data []byte, ppem float64, family string, weight, style, stretch int, lang, script string) error {
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return err
	}
	f.faces = append(f.faces, face{
		family: family, weight: weight, style: style, stretch: stretch,
		lang: lang, script: script,
		parsed: parsed,
		ppem:   fixed.Int26_6(ppem * 64),
	})
	return nil
}

func (f *SFNTFont) MatchFonts(lang, script, family string, weight, style, stretch int) []layout.FontHandle {
	var handles []layout.FontHandle
	best := -1
	bestScore := -1
	for i, fc := range f.faces {
		score := 0
		if fc.family == family {
			score += 4
		}
		if fc.weight == weight {
			score += 2
		}
		if fc.style == style {
			score++
		}
		if fc.stretch == stretch {
			score++
		}
		if fc.lang == "" || fc.lang == lang {
			score++
		}
		if fc.script == "" || fc.script == script {
			score++
		}
		if score > bestScore {
			bestScore, best = score, i
		}
	}
	if best >= 0 {
		handles = append(handles, layout.FontHandle(best))
	}
	for i := range f.faces {
		if i != best {
			handles = append(handles, layout.FontHandle(i))
		}
	}
	return handles
}

func (f *SFNTFont) FontMetrics(handle layout.FontHandle) layout.FontMetrics {
	idx, ok := handle.(int)
	if !ok || idx < 0 || idx >= len(f.faces) {
		return layout.FontMetrics{Ascender: 12, Descender: 3}
	}
	fc := &f.faces[idx]
	if fc.metricsResolved {
		return fc.metrics
	}
	var buf sfnt.Buffer
	m, err := fc.parsed.Metrics(&buf, fc.ppem, font.HintingNone)
	if err != nil {
		return layout.FontMetrics{Ascender: 12, Descender: 3}
	}
	fc.metrics = layout.FontMetrics{
		Ascender:  float64(m.Ascent) / 64,
		Descender: float64(m.Descent) / 64,
	}
	fc.metricsResolved = true
	return fc.metrics
}
