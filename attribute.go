package skribidi

import (
	"bytes"
	"reflect"
)

// AttributeKind tags the kind of an Attribute. Two attributes match when
// their kind is equal; for most kinds only one may be live at a point.
type AttributeKind uint32

// Built-in attribute kinds. Custom collaborator-defined kinds should start
// at KindUserBase to avoid colliding with future built-ins.
const (
	KindFontFamily AttributeKind = iota
	KindFontSize
	KindFontWeight
	KindFontStyle
	KindFontStretch
	KindLanguage
	KindDirection
	KindVerticalAlign
	KindIndentLevel
	KindListMarkerStyle
	KindCompositionStyle

	KindUserBase AttributeKind = 1 << 16
)

// ListMarkerStyle enumerates the paragraph-attribute values recognized by
// the ordered-list counter logic in layout.RichLayout.
type ListMarkerStyle uint8

const (
	ListMarkerNone ListMarkerStyle = iota
	ListMarkerBullet
	ListMarkerDecimal
	ListMarkerLowerAlpha
	ListMarkerUpperAlpha
	ListMarkerLowerRoman
	ListMarkerUpperRoman
)

// IsCounter reports whether a marker style consumes a counter slot.
func (m ListMarkerStyle) IsCounter() bool {
	return m != ListMarkerNone && m != ListMarkerBullet
}

// VerticalAlign enumerates the layout-attribute values used for whole-
// document vertical packing.
type VerticalAlign uint8

const (
	VerticalAlignTop VerticalAlign = iota
	VerticalAlignMiddle
	VerticalAlignBottom
)

// Attribute is a tagged value. Payload is an optional owned blob used for
// byte-equality comparisons (the has_attribute relation); Value carries a richer,
// non-serialized representation for collaborators that prefer it (e.g. a
// ListMarkerStyle or a font handle). Exactly one of Payload/Value is
// typically set, but both may be read.
type Attribute struct {
	Kind    AttributeKind
	Value   any
	Payload []byte
}

// Matches reports whether two attributes share a kind.
func (a Attribute) Matches(b Attribute) bool {
	return a.Kind == b.Kind
}

// EqualPayload reports whether two attributes of the same kind carry a
// byte-equal payload, the relation has_attribute relies on.
func (a Attribute) EqualPayload(b Attribute) bool {
	if a.Payload != nil || b.Payload != nil {
		return bytes.Equal(a.Payload, b.Payload)
	}
	return reflect.DeepEqual(a.Value, b.Value)
}

// SpanFlags modify how an AttributeSpan's range is interpreted.
type SpanFlags uint8

const (
	// FlagEndExclusive changes the containment test from [start,end) to
	// [start, end-1].
	FlagEndExclusive SpanFlags = 1 << iota
)

// AttributeSpan attaches one Attribute to a paragraph-local code-point
// range.
type AttributeSpan struct {
	Range     Range
	Attribute Attribute
	Flags     SpanFlags
}

// Contains reports whether offset lies within the span, honoring
// FlagEndExclusive.
func (s AttributeSpan) Contains(offset int) bool {
	if s.Flags&FlagEndExclusive != 0 {
		return offset >= s.Range.Start && offset <= s.Range.End-1
	}
	return offset >= s.Range.Start && offset < s.Range.End
}

// effectiveEnd returns the exclusive end of the span's covered region,
// regardless of flag representation, for interval arithmetic.
func (s AttributeSpan) effectiveEnd() int {
	if s.Flags&FlagEndExclusive != 0 {
		return s.Range.End - 1
	}
	return s.Range.End
}

func (s AttributeSpan) effectiveStart() int {
	return s.Range.Start
}

func (s AttributeSpan) covers(r Range) bool {
	return s.effectiveStart() <= r.Start && s.effectiveEnd() >= r.End
}
