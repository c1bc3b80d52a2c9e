package skribidi

// spanList holds the AttributeSpans of a single paragraph's AttributedText.
// Operations follow an interval-splitting discipline similar to the span
// merge cords.styled performs when restyling a run of text, generalized to
// arbitrary attribute kinds instead of a single Style.
type spanList []AttributeSpan

// setAttribute makes attr the single live span of its kind covering r: any
// existing spans of the same kind intersecting r are clipped or removed,
// then a fresh span for r is appended. This realizes the invariant that
// after a write, for every offset in range, at most one span of each
// singleton kind is live.
func (sl spanList) setAttribute(r Range, attr Attribute, flags SpanFlags) spanList {
	if r.Void() {
		return sl
	}
	out := sl.clearAttribute(r, attr.Kind)
	out = append(out, AttributeSpan{Range: r, Attribute: attr, Flags: flags})
	return out
}

// clearAttribute removes the portion of any span of kind covering r,
// splitting spans that only partially overlap.
func (sl spanList) clearAttribute(r Range, kind AttributeKind) spanList {
	if r.Void() {
		return sl
	}
	out := make(spanList, 0, len(sl)+1)
	for _, s := range sl {
		if s.Attribute.Kind != kind {
			out = append(out, s)
			continue
		}
		out = append(out, splitOut(s, r)...)
	}
	return out
}

// clearAllAttributes removes any span, of any kind, intersecting r.
func (sl spanList) clearAllAttributes(r Range) spanList {
	if r.Void() {
		return sl
	}
	out := make(spanList, 0, len(sl)+1)
	for _, s := range sl {
		out = append(out, splitOut(s, r)...)
	}
	return out
}

// splitOut returns the parts of span s that remain after removing the
// portion overlapping r (0, 1 or 2 fragments). Payload is shared between
// fragments; spans own their payload blob only at the paragraph-copy
// boundary (see Paragraph.clone).
func splitOut(s AttributeSpan, r Range) []AttributeSpan {
	start, end := s.effectiveStart(), s.effectiveEnd()
	if end <= r.Start || start >= r.End {
		return []AttributeSpan{s} // no overlap
	}
	var out []AttributeSpan
	if start < r.Start {
		out = append(out, AttributeSpan{
			Range:     Range{Start: start, End: r.Start},
			Attribute: s.Attribute,
		})
	}
	if end > r.End {
		out = append(out, AttributeSpan{
			Range:     Range{Start: r.End, End: end},
			Attribute: s.Attribute,
		})
	}
	return out
}

// hasAttribute reports whether attr (kind + byte-equal payload) fully
// covers every code point of r: true iff
// get_attribute_count(range,a.kind) == range_len and every such code-point
// carries a byte-equal attribute.
func (sl spanList) hasAttribute(r Range, attr Attribute) bool {
	if r.Void() {
		return false
	}
	covered := 0
	for _, s := range sl {
		if s.Attribute.Kind != attr.Kind || !s.Attribute.EqualPayload(attr) {
			continue
		}
		covered += overlapLen(s.effectiveStart(), s.effectiveEnd(), r.Start, r.End)
	}
	return covered >= r.Len()
}

func overlapLen(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

// getAttributeTextRange returns the range of the first span (in insertion
// order) whose kind matches kind and which fully covers r.
func (sl spanList) getAttributeTextRange(r Range, kind AttributeKind) (Range, bool) {
	for _, s := range sl {
		if s.Attribute.Kind == kind && s.covers(r) {
			return Range{Start: s.effectiveStart(), End: s.effectiveEnd()}, true
		}
	}
	return Range{}, false
}

// getAttributePayload returns the payload of any span of kind that
// contains r in full.
func (sl spanList) getAttributePayload(r Range, kind AttributeKind) ([]byte, bool) {
	for _, s := range sl {
		if s.Attribute.Kind == kind && s.covers(r) {
			return s.Attribute.Payload, true
		}
	}
	return nil, false
}

// shift translates every span by delta code points (used when a prefix is
// dropped/added ahead of this paragraph's slice during a merge).
func (sl spanList) shift(delta int) spanList {
	if delta == 0 {
		return sl
	}
	out := make(spanList, len(sl))
	for i, s := range sl {
		s.Range = s.Range.shift(delta)
		out[i] = s
	}
	return out
}

// sub returns the spans intersecting [lo,hi), re-based to start at 0 and
// clipped to the sub-range. Used when slicing a paragraph's prefix/suffix.
func (sl spanList) sub(lo, hi int) spanList {
	var out spanList
	for _, s := range sl {
		start, end := s.effectiveStart(), s.effectiveEnd()
		if end <= lo || start >= hi {
			continue
		}
		if start < lo {
			start = lo
		}
		if end > hi {
			end = hi
		}
		ns := s
		ns.Range = Range{Start: start - lo, End: end - lo}
		ns.Flags = s.Flags &^ FlagEndExclusive
		out = append(out, ns)
	}
	return out
}

// clone deep-copies the span list, including owned payload blobs: spans
// own their payload blobs, deep-copied on paragraph copy.
func (sl spanList) clone() spanList {
	if sl == nil {
		return nil
	}
	out := make(spanList, len(sl))
	for i, s := range sl {
		if s.Attribute.Payload != nil {
			p := make([]byte, len(s.Attribute.Payload))
			copy(p, s.Attribute.Payload)
			s.Attribute.Payload = p
		}
		out[i] = s
	}
	return out
}
