package skribidi

// GraphemeBreaks is the subset of the Layout collaborator contract that
// skribidi itself consumes: a boolean oracle over code-point offsets.
// skribidi never inspects code points to determine grapheme boundaries; it
// only asks "is offset a boundary in cps".
type GraphemeBreaks interface {
	IsGraphemeBoundary(cps []rune, offset int) bool
}

// AttributedText is a code-point buffer paired with overlapping attribute
// spans, the per-paragraph unit of the editing model. It knows nothing
// about paragraph separators or global offsets; RichText layers that on top.
type AttributedText struct {
	CodePoints []rune
	spans      spanList
}

// Len returns the number of code points in the buffer.
func (t *AttributedText) Len() int {
	return len(t.CodePoints)
}

// Spans returns the attribute spans currently live over the buffer, in
// insertion order.
func (t *AttributedText) Spans() []AttributeSpan {
	return []AttributeSpan(t.spans)
}

// Append appends code points verbatim, with no attribute.
func (t *AttributedText) Append(cps []rune) {
	t.CodePoints = append(t.CodePoints, cps...)
}

// AppendRange appends the sub-range [r.Start,r.End) of src, copying its
// code points and re-based attribute spans.
func (t *AttributedText) AppendRange(src *AttributedText, r Range) {
	if src == nil {
		return
	}
	r = r.clip(len(src.CodePoints))
	if r.Void() {
		return
	}
	base := len(t.CodePoints)
	t.CodePoints = append(t.CodePoints, src.CodePoints[r.Start:r.End]...)
	t.spans = append(t.spans, src.spans.sub(r.Start, r.End).shift(base)...)
}

// AppendUTF32 appends cps carrying attrs over the freshly appended range,
// honoring flags/payload exactly as AddAttribute would.
func (t *AttributedText) AppendUTF32(cps []rune, attrs []Attribute, flags SpanFlags) {
	if len(cps) == 0 {
		return
	}
	base := len(t.CodePoints)
	t.CodePoints = append(t.CodePoints, cps...)
	r := Range{Start: base, End: base + len(cps)}
	for _, a := range attrs {
		t.spans = t.spans.setAttribute(r, a, flags)
	}
}

// AppendUTF8 decodes utf8 bytes to code points and delegates to AppendUTF32.
func (t *AttributedText) AppendUTF8(b []byte, attrs []Attribute, flags SpanFlags) {
	t.AppendUTF32([]rune(string(b)), attrs, flags)
}

// AddAttribute sets attr as the live span of its kind covering r.
func (t *AttributedText) AddAttribute(r Range, a Attribute, flags SpanFlags) {
	r = r.clip(len(t.CodePoints))
	t.spans = t.spans.setAttribute(r, a, flags)
}

// ClearAttribute removes spans of kind a.Kind intersecting r.
func (t *AttributedText) ClearAttribute(r Range, a Attribute) {
	r = r.clip(len(t.CodePoints))
	t.spans = t.spans.clearAttribute(r, a.Kind)
}

// ClearAllAttributes removes every span intersecting r, regardless of kind.
func (t *AttributedText) ClearAllAttributes(r Range) {
	r = r.clip(len(t.CodePoints))
	t.spans = t.spans.clearAllAttributes(r)
}

// AlignGraphemeOffset snaps off back to the nearest grapheme boundary at or
// before it, the start of the grapheme containing off. A nil oracle is treated as
// "every offset is a boundary" so the call remains total.
func (t *AttributedText) AlignGraphemeOffset(off int, oracle GraphemeBreaks) int {
	n := len(t.CodePoints)
	if off < 0 {
		off = 0
	}
	if off > n {
		off = n
	}
	if oracle == nil || oracle.IsGraphemeBoundary(t.CodePoints, off) {
		return off
	}
	for back := off - 1; back >= 0; back-- {
		if oracle.IsGraphemeBoundary(t.CodePoints, back) {
			return back
		}
	}
	return 0
}

// NextGraphemeOffset returns the next grapheme boundary strictly after off,
// or len(CodePoints) if none remains.
func (t *AttributedText) NextGraphemeOffset(off int, oracle GraphemeBreaks) int {
	n := len(t.CodePoints)
	if off >= n {
		return n
	}
	if off < 0 {
		off = 0
	}
	for next := off + 1; next <= n; next++ {
		if oracle == nil || oracle.IsGraphemeBoundary(t.CodePoints, next) {
			return next
		}
	}
	return n
}

// PrevGraphemeOffset returns the previous grapheme boundary strictly before
// off, or 0 if none remains.
func (t *AttributedText) PrevGraphemeOffset(off int, oracle GraphemeBreaks) int {
	if off <= 0 {
		return 0
	}
	n := len(t.CodePoints)
	if off > n {
		off = n
	}
	for prev := off - 1; prev >= 0; prev-- {
		if oracle == nil || oracle.IsGraphemeBoundary(t.CodePoints, prev) {
			return prev
		}
	}
	return 0
}

// clone deep-copies the buffer and its spans (including owned payloads).
func (t *AttributedText) clone() AttributedText {
	cps := make([]rune, len(t.CodePoints))
	copy(cps, t.CodePoints)
	return AttributedText{CodePoints: cps, spans: t.spans.clone()}
}
