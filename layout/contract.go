// Package layout implements the incremental, per-paragraph layout cache,
// together with the Go-native shape of the external Layout/Font
// collaborator contracts. Concrete collaborators (shapers, bidi resolvers,
// line breakers) live outside this module; see the reflayout package for a
// dependency-grounded reference implementation used by tests.
package layout

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/skribidi"
)

func tracer() tracing.Trace {
	return tracing.Select("skribidi/layout")
}

// Direction is a resolved paragraph/run reading direction.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

// MovementType discriminates the caller's navigation intent when hit
// testing, forwarded to the collaborator so it can apply word/line
// granularity.
type MovementType uint8

const (
	MovementCharacter MovementType = iota
	MovementWord
	MovementLine
)

// Rect is an axis-aligned rectangle in the laid-out coordinate space.
type Rect struct {
	X, Y, W, H float64
}

// CaretInfo is the geometry the engine reports for a single caret.
type CaretInfo struct {
	X, Y                float64
	Ascender, Descender float64
	Slope               float64
	Direction           Direction
}

// LineRecord is a single laid line within a paragraph.
type LineRecord struct {
	TextRange          skribidi.Range
	LastGraphemeOffset int
	Bounds             Rect
	Ascender           float64
	Descender          float64
}

// Params bundles the parameters that influence layout: a base attribute
// chain (the "parent" for paragraph 0), an optional container width/height
// constraint, and the vertical-alignment option applied after the
// per-paragraph pass.
type Params struct {
	Width         float64
	Height        float64 // 0 = auto; no vertical-alignment shift is applied
	Attributes    []skribidi.Attribute
	VerticalAlign skribidi.VerticalAlign
}

// LaidLines is the per-paragraph output of a Layout collaborator.
// Implementations own all shaping/line-breaking/bidi-resolution state; this
// package only ever calls through the interface.
type LaidLines interface {
	Lines() []LineRecord
	ResolvedDirection() Direction
	NextGraphemeOffset(off int) int
	PrevGraphemeOffset(off int) int
	AlignGraphemeOffset(off int) int
	GetTextDirectionAt(pos int) Direction
	HitTestAtLine(movement MovementType, lineIdx int, x float64) skribidi.TextPosition
	CaretInfoAt(pos int) CaretInfo
	RangeBoundsIter(sel skribidi.Range, offsetY float64, cb func(Rect))
}

// Layout is the collaborator contract for laying out one paragraph's worth
// of attributed text.
type Layout interface {
	LayoutParagraph(params Params, text *skribidi.AttributedText, attrs []skribidi.Attribute) (LaidLines, error)
}

// FontHandle is an opaque reference to a shaped/matched font, owned by the
// Font collaborator.
type FontHandle any

// FontMetrics is the subset of font metrics the engine needs for caret
// geometry.
type FontMetrics struct {
	Ascender, Descender float64
	Slope               float64
}

// Font is the collaborator contract for font matching and metrics.
type Font interface {
	FontMetrics(handle FontHandle) FontMetrics
	MatchFonts(lang, script, family string, weight, style, stretch int) []FontHandle
}

// mergeAttributes overlays child attributes on top of parent, child values
// winning for matching kinds: paragraph 0 merges its own attributes over
// the layout params' attributes; paragraph i>0 merges a direction override
// over its own attributes.
func mergeAttributes(parent, child []skribidi.Attribute) []skribidi.Attribute {
	out := make([]skribidi.Attribute, len(parent))
	copy(out, parent)
	for _, c := range child {
		replaced := false
		for i, p := range out {
			if p.Kind == c.Kind {
				out[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, c)
		}
	}
	return out
}

func directionAttribute(d Direction) skribidi.Attribute {
	return skribidi.Attribute{Kind: skribidi.KindDirection, Value: d}
}
