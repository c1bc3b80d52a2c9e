package reflayout

import (
	"bufio"
	"strings"

	"github.com/npillmayer/uax/bidi"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"

	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

// Engine is a dependency-grounded layout.Layout collaborator: it resolves
// bidi direction with uax/bidi, wraps lines with uax/uax14 when given a
// width constraint, and measures text with uax/uax11 (mirroring
// styled/formatter.firstFit's segmenter/width loop). Font is optional; a
// nil Font falls back to fixed ascender/descender metrics.
type Engine struct {
	Font    layout.Font
	Context *uax11.Context
	oracle  *GraphemeOracle
}

// NewEngine returns a ready-to-use Engine. A nil ctx defaults to
// uax11.LatinContext, the same fallback format.Print applies.
func NewEngine(font layout.Font, ctx *uax11.Context) *Engine {
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	return &Engine{Font: font, Context: ctx, oracle: NewGraphemeOracle()}
}

func (e *Engine) LayoutParagraph(params layout.Params, text *skribidi.AttributedText, attrs []skribidi.Attribute) (layout.LaidLines, error) {
	cps := text.CodePoints
	dt := resolveParagraphDirection(cps, toBidiDirection(directionFromAttrs(attrs)))

	var breaks []int
	if params.Width > 0 {
		breaks = e.lineBreaks(cps, params.Width)
	}
	ranges := rangesFromBreaks(cps, breaks)

	ll := &laidLines{
		cps:    cps,
		dirs:   dt,
		ranges: ranges,
		widths: e.lineWidths(cps, ranges),
		engine: e,
	}
	return ll, nil
}

func directionFromAttrs(attrs []skribidi.Attribute) layout.Direction {
	for _, a := range attrs {
		if a.Kind == skribidi.KindDirection {
			if d, ok := a.Value.(layout.Direction); ok {
				return d
			}
		}
	}
	return layout.LTR
}

func toBidiDirection(d layout.Direction) bidi.Direction {
	if d == layout.RTL {
		return bidi.RightToLeft
	}
	return bidi.LeftToRight
}

// lineBreaks applies the same first-fit algorithm as
// styled/formatter.firstFit: a uax14 line-wrap segmenter over the
// paragraph's bytes, measuring each fragment's width with uax11 and
// breaking once the running line exceeds width. Returned offsets are code
// points, not bytes.
func (e *Engine) lineBreaks(cps []rune, width float64) []int {
	if len(cps) == 0 {
		return nil
	}
	linewrap := uax14.NewLineWrap()
	seg := segment.NewSegmenter(linewrap)
	seg.Init(bufio.NewReader(strings.NewReader(string(cps))))

	var breaks []int
	spaceLeft := width
	runeOffset, prevBreak := 0, 0
	for seg.Next() {
		frag := string(seg.Bytes())
		fragLen := float64(uax11.StringWidth(grapheme.StringFromString(frag), e.Context))
		fragRunes := len([]rune(frag))
		if fragLen >= spaceLeft && runeOffset > prevBreak {
			breaks = append(breaks, runeOffset)
			prevBreak = runeOffset
			spaceLeft = width - fragLen
		} else {
			spaceLeft -= fragLen
		}
		runeOffset += fragRunes
	}
	return breaks
}

func rangesFromBreaks(cps []rune, breaks []int) []skribidi.Range {
	if len(breaks) == 0 {
		return []skribidi.Range{{Start: 0, End: len(cps)}}
	}
	ranges := make([]skribidi.Range, 0, len(breaks)+1)
	prev := 0
	for _, b := range breaks {
		ranges = append(ranges, skribidi.Range{Start: prev, End: b})
		prev = b
	}
	ranges = append(ranges, skribidi.Range{Start: prev, End: len(cps)})
	return ranges
}

func (e *Engine) lineWidths(cps []rune, ranges []skribidi.Range) []float64 {
	widths := make([]float64, len(ranges))
	for i, r := range ranges {
		widths[i] = float64(uax11.StringWidth(grapheme.StringFromString(string(cps[r.Start:r.End])), e.Context))
	}
	return widths
}

func (e *Engine) metrics() layout.FontMetrics {
	if e.Font == nil {
		return layout.FontMetrics{Ascender: 12, Descender: 3}
	}
	handles := e.Font.MatchFonts("", "", "", 0, 0, 0)
	if len(handles) == 0 {
		return layout.FontMetrics{Ascender: 12, Descender: 3}
	}
	return e.Font.FontMetrics(handles[0])
}
