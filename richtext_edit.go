package skribidi

// clipChecked clips r to [0, total), tracing ErrIndexOutOfBounds at error
// level when the caller-supplied range actually fell outside the document
// rather than merely touching its edges. The public surface stays total:
// callers get the clipped range back either way.
func clipChecked(r Range, total int) Range {
	if r.Start < 0 || r.End > total || r.Start > r.End {
		tracer().Errorf("%v: range %v outside document of length %d, clipping", ErrIndexOutOfBounds, r, total)
	}
	return r.clip(total)
}

// Sub extracts the sub-range [r.Start,r.End) of the document as an
// independent RichText, splitting the boundary paragraphs and carrying
// paragraph attributes from the paragraph each fragment came from. This is
// the primitive both InsertRange and the undo engine's text-capture
// ("removed_text = copy(rich_text[r.lo..r.hi])") build on.
func (rt *RichText) Sub(r Range) *RichText {
	r = clipChecked(r, rt.TotalLen())
	out := &RichText{}
	if r.Void() {
		out.Paragraphs = []Paragraph{{}}
		return out
	}
	startPP := rt.resolve(TextPosition{Offset: r.Start}, IgnoreAffinity, nil)
	endPP := rt.resolve(TextPosition{Offset: r.End}, IgnoreAffinity, nil)

	if startPP.ParagraphIdx == endPP.ParagraphIdx {
		src := &rt.Paragraphs[startPP.ParagraphIdx]
		p := Paragraph{ParagraphAttributes: cloneAttrs(src.ParagraphAttributes)}
		p.Text.AppendRange(&src.Text, Range{Start: startPP.LocalOffset, End: endPP.LocalOffset})
		out.Paragraphs = []Paragraph{p}
		return out
	}
	first := &rt.Paragraphs[startPP.ParagraphIdx]
	fp := Paragraph{ParagraphAttributes: cloneAttrs(first.ParagraphAttributes)}
	fp.Text.AppendRange(&first.Text, Range{Start: startPP.LocalOffset, End: first.Len()})
	out.Paragraphs = append(out.Paragraphs, fp)

	for i := startPP.ParagraphIdx + 1; i < endPP.ParagraphIdx; i++ {
		mid := &rt.Paragraphs[i]
		mp := Paragraph{ParagraphAttributes: cloneAttrs(mid.ParagraphAttributes)}
		mp.Text.AppendRange(&mid.Text, Range{Start: 0, End: mid.Len()})
		out.Paragraphs = append(out.Paragraphs, mp)
	}

	last := &rt.Paragraphs[endPP.ParagraphIdx]
	lp := Paragraph{ParagraphAttributes: cloneAttrs(last.ParagraphAttributes)}
	lp.Text.AppendRange(&last.Text, Range{Start: 0, End: endPP.LocalOffset})
	out.Paragraphs = append(out.Paragraphs, lp)

	out.recomputeOffsets(0)
	return out
}

// Clone returns a deep, independent copy of rt.
func (rt *RichText) Clone() *RichText {
	out := &RichText{versionCounter: rt.versionCounter}
	out.Paragraphs = make([]Paragraph, len(rt.Paragraphs))
	for i := range rt.Paragraphs {
		out.Paragraphs[i] = rt.Paragraphs[i].clone()
	}
	return out
}

// Insert replaces text_range with source, the 3-way merge of the prefix
// before r, source, and the suffix after r. A nil source is treated as
// empty rich text: the call performs a pure removal.
func (rt *RichText) Insert(r Range, source *RichText) Change {
	r = clipChecked(r, rt.TotalLen())
	sourceParas := []Paragraph{{}}
	if source != nil && len(source.Paragraphs) > 0 {
		sourceParas = source.Paragraphs
	}

	startPP := rt.resolve(TextPosition{Offset: r.Start}, IgnoreAffinity, nil)
	endPP := rt.resolve(TextPosition{Offset: r.End}, IgnoreAffinity, nil)
	startPara := &rt.Paragraphs[startPP.ParagraphIdx]
	endPara := &rt.Paragraphs[endPP.ParagraphIdx]

	var prefix, suffix AttributedText
	prefix.AppendRange(&startPara.Text, Range{Start: 0, End: startPP.LocalOffset})
	suffix.AppendRange(&endPara.Text, Range{Start: endPP.LocalOffset, End: endPara.Len()})
	startAttrs := cloneAttrs(startPara.ParagraphAttributes)

	var newParas []Paragraph
	var insertedLen int
	if len(sourceParas) == 1 {
		merged := Paragraph{ParagraphAttributes: startAttrs, Version: rt.nextVersion()}
		merged.Text.AppendRange(&prefix, Range{Start: 0, End: prefix.Len()})
		merged.Text.AppendRange(&sourceParas[0].Text, Range{Start: 0, End: sourceParas[0].Text.Len()})
		merged.Text.AppendRange(&suffix, Range{Start: 0, End: suffix.Len()})
		insertedLen = sourceParas[0].Text.Len()
		newParas = []Paragraph{merged}
	} else {
		first := Paragraph{ParagraphAttributes: startAttrs, Version: rt.nextVersion()}
		first.Text.AppendRange(&prefix, Range{Start: 0, End: prefix.Len()})
		first.Text.AppendRange(&sourceParas[0].Text, Range{Start: 0, End: sourceParas[0].Text.Len()})
		newParas = append(newParas, first)
		insertedLen += sourceParas[0].Text.Len()

		for _, mid := range sourceParas[1 : len(sourceParas)-1] {
			np := Paragraph{ParagraphAttributes: cloneAttrs(mid.ParagraphAttributes), Version: rt.nextVersion()}
			np.Text.AppendRange(&mid.Text, Range{Start: 0, End: mid.Text.Len()})
			newParas = append(newParas, np)
			insertedLen += mid.Text.Len()
		}

		lastSrc := &sourceParas[len(sourceParas)-1]
		last := Paragraph{ParagraphAttributes: cloneAttrs(lastSrc.ParagraphAttributes), Version: rt.nextVersion()}
		last.Text.AppendRange(&lastSrc.Text, Range{Start: 0, End: lastSrc.Text.Len()})
		last.Text.AppendRange(&suffix, Range{Start: 0, End: suffix.Len()})
		newParas = append(newParas, last)
		insertedLen += lastSrc.Text.Len()
	}

	// The first spanned paragraph is mutated in place rather than
	// discarded and rebuilt: only the paragraphs after it, up to and
	// including the last spanned paragraph, are genuinely removed, and only the
	// paragraphs beyond newParas[0] are genuinely new. This is what lets
	// the incremental layout cache (layout.RichLayout.ApplyChange) leave
	// every paragraph outside the edit untouched.
	rt.Paragraphs[startPP.ParagraphIdx] = newParas[0]
	rt.Paragraphs = replaceSlice(rt.Paragraphs, startPP.ParagraphIdx+1, endPP.ParagraphIdx+1, newParas[1:])
	rt.recomputeOffsets(startPP.ParagraphIdx)

	editOffset := r.Start + insertedLen
	editLocal := editOffset - rt.Paragraphs[startPP.ParagraphIdx].GlobalTextOffset
	affinity := AffinityLeading
	if insertedLen == 0 && editLocal == 0 {
		affinity = AffinityTrailing
	}
	return Change{
		StartParagraphIdx:      startPP.ParagraphIdx,
		RemovedParagraphCount:  endPP.ParagraphIdx - startPP.ParagraphIdx,
		InsertedParagraphCount: len(newParas) - 1,
		EditEndPosition:        TextPosition{Offset: editOffset, Affinity: affinity},
	}
}

// InsertRange clips src to srcRange before inserting.
func (rt *RichText) InsertRange(r Range, src *RichText, srcRange Range) Change {
	if src == nil {
		return rt.Insert(r, nil)
	}
	return rt.Insert(r, src.Sub(srcRange))
}

// Remove is equivalent to Insert(r, nil).
func (rt *RichText) Remove(r Range) Change {
	return rt.Insert(r, nil)
}

func replaceSlice(s []Paragraph, lo, hi int, with []Paragraph) []Paragraph {
	out := make([]Paragraph, 0, len(s)-(hi-lo)+len(with))
	out = append(out, s[:lo]...)
	out = append(out, with...)
	out = append(out, s[hi:]...)
	return out
}

// SetParagraphAttribute overwrites the paragraph attribute for every
// paragraph touched by r and bumps their versions.
func (rt *RichText) SetParagraphAttribute(r Range, a Attribute) {
	rt.eachTouchedParagraph(r, func(p *Paragraph) {
		p.setParagraphAttribute(a)
		p.Version = rt.nextVersion()
	})
}

// SetParagraphAttributeDelta adjusts KindIndentLevel on every paragraph
// touched by r: the new level is max(0, current+delta), and the touched
// paragraphs' versions are bumped. For any other kind the call changes
// nothing.
func (rt *RichText) SetParagraphAttributeDelta(r Range, kind AttributeKind, delta int) {
	rt.eachTouchedParagraph(r, func(p *Paragraph) {
		if kind != KindIndentLevel {
			return
		}
		level := 0
		if cur, ok := p.GetParagraphAttribute(kind); ok {
			if v, ok := cur.Value.(int); ok {
				level = v
			}
		}
		level += delta
		if level < 0 {
			level = 0
		}
		p.setParagraphAttribute(Attribute{Kind: kind, Value: level})
		p.Version = rt.nextVersion()
	})
}

func (rt *RichText) eachTouchedParagraph(r Range, f func(p *Paragraph)) {
	r = r.clip(rt.TotalLen())
	if len(rt.Paragraphs) == 0 {
		return
	}
	startPP := rt.resolve(TextPosition{Offset: r.Start}, IgnoreAffinity, nil)
	endOffset := r.End
	if endOffset <= r.Start {
		endOffset = r.Start + 1 // a caret still touches its own paragraph
	}
	endPP := rt.resolve(TextPosition{Offset: endOffset - 1}, IgnoreAffinity, nil)
	for i := startPP.ParagraphIdx; i <= endPP.ParagraphIdx && i < len(rt.Paragraphs); i++ {
		f(&rt.Paragraphs[i])
	}
}

// perParagraph runs f against each paragraph's slice-local sub-range of r,
// the delegation pattern behind SetAttribute/ClearAttribute/
// ClearAllAttributes/HasAttribute/GetAttributeTextRange/GetAttributePayload:
// delegate to AttributedText within each paragraph slice.
func (rt *RichText) perParagraph(r Range, f func(p *Paragraph, local Range)) {
	r = r.clip(rt.TotalLen())
	if r.Void() {
		return
	}
	startPP := rt.resolve(TextPosition{Offset: r.Start}, IgnoreAffinity, nil)
	endPP := rt.resolve(TextPosition{Offset: r.End}, IgnoreAffinity, nil)
	for i := startPP.ParagraphIdx; i <= endPP.ParagraphIdx; i++ {
		p := &rt.Paragraphs[i]
		lo, hi := 0, p.Len()
		if i == startPP.ParagraphIdx {
			lo = startPP.LocalOffset
		}
		if i == endPP.ParagraphIdx {
			hi = endPP.LocalOffset
		}
		f(p, Range{Start: lo, End: hi})
	}
}

// SetAttribute delegates to AttributedText.AddAttribute within each
// paragraph touched by r.
func (rt *RichText) SetAttribute(r Range, a Attribute, flags SpanFlags) {
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		p.Text.AddAttribute(local, a, flags)
		p.Version = rt.nextVersion()
	})
}

// ClearAttribute delegates to AttributedText.ClearAttribute within each
// paragraph touched by r.
func (rt *RichText) ClearAttribute(r Range, a Attribute) {
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		p.Text.ClearAttribute(local, a)
		p.Version = rt.nextVersion()
	})
}

// ClearAllAttributes delegates to AttributedText.ClearAllAttributes within
// each paragraph touched by r.
func (rt *RichText) ClearAllAttributes(r Range) {
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		p.Text.ClearAllAttributes(local)
		p.Version = rt.nextVersion()
	})
}

// InsertAttributes overwrites the attribute spans within r with those
// recorded in source, leaving code points untouched: the undo/redo of an
// attribute edit is a structural insert_attributes that overwrites spans
// in-range without touching code points. source's total length must
// equal r.Len(); it is normally a snapshot taken by Sub over the same
// range before or after the original edit.
func (rt *RichText) InsertAttributes(r Range, source *RichText) {
	r = r.clip(rt.TotalLen())
	if r.Void() || source == nil {
		return
	}
	rt.ClearAllAttributes(r)
	for i := range source.Paragraphs {
		p := &source.Paragraphs[i]
		for _, span := range p.Text.Spans() {
			shifted := Range{
				Start: span.Range.Start + p.GlobalTextOffset + r.Start,
				End:   span.Range.End + p.GlobalTextOffset + r.Start,
			}
			rt.SetAttribute(shifted, span.Attribute, span.Flags)
		}
	}
}

// HasAttribute reports whether a fully covers every code point of r across
// paragraph boundaries.
func (rt *RichText) HasAttribute(r Range, a Attribute) bool {
	if r.Void() {
		return false
	}
	ok := true
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		if !local.Void() && !p.Text.spans.hasAttribute(local, a) {
			ok = false
		}
	})
	return ok
}

// GetAttributeTextRange returns the first span (globally) fully covering r
// whose kind matches a.Kind, translated to global offsets. Spans never
// cross paragraphs, so a range spanning several paragraphs finds none.
func (rt *RichText) GetAttributeTextRange(r Range, a Attribute) (Range, bool) {
	var found Range
	var ok bool
	slices := 0
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		if local.Void() {
			return
		}
		slices++
		if ok {
			return
		}
		if lr, hit := p.Text.spans.getAttributeTextRange(local, a.Kind); hit {
			found = lr.shift(p.GlobalTextOffset)
			ok = true
		}
	})
	if slices > 1 {
		return Range{}, false
	}
	return found, ok
}

// GetAttributePayload returns the payload of any span of kind a.Kind that
// contains r. A range spanning several paragraphs is contained by no span.
func (rt *RichText) GetAttributePayload(r Range, a Attribute) ([]byte, bool) {
	var payload []byte
	var ok bool
	slices := 0
	rt.perParagraph(r, func(p *Paragraph, local Range) {
		if local.Void() {
			return
		}
		slices++
		if ok {
			return
		}
		if pl, hit := p.Text.spans.getAttributePayload(local, a.Kind); hit {
			payload, ok = pl, true
		}
	})
	if slices > 1 {
		return nil, false
	}
	return payload, ok
}

// RemoveIf scans the document code point by code point, coalescing
// contiguous matches of predicate into a single Remove per run. After a
// removal eats a paragraph's terminator, the now-merged paragraph is
// re-scanned.
func (rt *RichText) RemoveIf(predicate func(r rune) bool) []Change {
	if predicate == nil {
		tracer().Errorf("%v: RemoveIf called with a nil predicate", ErrIllegalArguments)
		return nil
	}
	var changes []Change
	for {
		runStart, runEnd, found := rt.firstMatchingRun(predicate)
		if !found {
			break
		}
		changes = append(changes, rt.Remove(Range{Start: runStart, End: runEnd}))
	}
	return changes
}

func (rt *RichText) firstMatchingRun(predicate func(r rune) bool) (start, end int, found bool) {
	offset := 0
	for i := range rt.Paragraphs {
		cps := rt.Paragraphs[i].Text.CodePoints
		for j, r := range cps {
			if !predicate(r) {
				continue
			}
			runStart := offset + j
			k := j
			for k < len(cps) && predicate(cps[k]) {
				k++
			}
			return runStart, offset + k, true
		}
		offset += rt.Paragraphs[i].Len()
	}
	return 0, 0, false
}
