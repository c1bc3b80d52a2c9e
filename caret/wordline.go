package caret

import (
	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

// ForwardWord advances to the next word boundary, paragraph bounded: word
// motion never searches past the end of the owning paragraph, matching the
// paragraph as the unit of reflow.
func ForwardWord(rt *skribidi.RichText, wb WordBreaks, pos skribidi.TextPosition, behavior Behavior) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	p := &rt.Paragraphs[cur.ParagraphIdx]
	cps := p.Text.CodePoints
	n := len(cps)
	local := cur.LocalOffset

	switch behavior {
	case MacOSBehavior:
		for local < n && (wb.IsWhitespace(cps[local]) || wb.IsPunctuation(cps[local])) {
			local++
		}
		for local < n {
			local++
			if wb.IsWordBoundary(cps, local) {
				break
			}
		}
	default:
		for local < n {
			local++
			if wb.IsWordBoundary(cps, local) {
				break
			}
		}
		for local < n && wb.IsWhitespace(cps[local]) {
			local++
		}
	}
	aff := skribidi.AffinityTrailing
	if local >= n && cur.ParagraphIdx == len(rt.Paragraphs)-1 {
		aff = skribidi.AffinityEOL
	}
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + local, Affinity: aff}
}

// BackwardWord is the mirror of ForwardWord.
func BackwardWord(rt *skribidi.RichText, wb WordBreaks, pos skribidi.TextPosition, behavior Behavior) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	p := &rt.Paragraphs[cur.ParagraphIdx]
	cps := p.Text.CodePoints
	local := cur.LocalOffset

	switch behavior {
	case MacOSBehavior:
		for local > 0 && (wb.IsWhitespace(cps[local-1]) || wb.IsPunctuation(cps[local-1])) {
			local--
		}
		for local > 0 {
			local--
			if wb.IsWordBoundary(cps, local) {
				break
			}
		}
	default:
		for local > 0 && wb.IsWhitespace(cps[local-1]) {
			local--
		}
		for local > 0 {
			local--
			if wb.IsWordBoundary(cps, local) {
				break
			}
		}
	}
	aff := skribidi.AffinityTrailing
	if local == 0 && cur.ParagraphIdx == 0 {
		aff = skribidi.AffinitySOL
	}
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + local, Affinity: aff}
}

// PreferredX is the sticky horizontal coordinate vertical line motion uses
// to pick a landing column; owned by the editor façade, set on the first
// vertical move and cleared by any horizontal or mouse action.
type PreferredX struct {
	Set bool
	X   float64
}

// Clear resets the preferred-X state.
func (p *PreferredX) Clear() {
	p.Set = false
	p.X = 0
}

// LineVertical moves up or down one line using the laid paragraph's line
// table, crossing paragraph boundaries at the first/last line.
func LineVertical(rt *skribidi.RichText, rl *layout.RichLayout, pos skribidi.TextPosition, dir VerticalDirection, pref *PreferredX) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	if !pref.Set {
		info := rl.CaretInfo(pos, rt)
		pref.X, pref.Set = info.X, true
	}

	paraIdx := cur.ParagraphIdx
	ll := laidOf(rl, paraIdx)
	if ll == nil {
		return pos
	}
	lineIdx := lineIndexAt(ll, cur.LocalOffset)
	lines := ll.Lines()

	switch dir {
	case Up:
		lineIdx--
		for lineIdx < 0 {
			if paraIdx == 0 {
				return skribidi.TextPosition{Offset: 0, Affinity: skribidi.AffinitySOL}
			}
			paraIdx--
			ll = laidOf(rl, paraIdx)
			if ll == nil {
				return pos
			}
			lines = ll.Lines()
			lineIdx = len(lines) - 1
		}
	case Down:
		lineIdx++
		for lineIdx >= len(lines) {
			if paraIdx >= len(rt.Paragraphs)-1 {
				p := &rt.Paragraphs[paraIdx]
				return skribidi.TextPosition{Offset: p.GlobalTextOffset + p.Len(), Affinity: skribidi.AffinityEOL}
			}
			paraIdx++
			ll = laidOf(rl, paraIdx)
			if ll == nil {
				return pos
			}
			lines = ll.Lines()
			lineIdx = 0
		}
	}

	local := ll.HitTestAtLine(layout.MovementLine, lineIdx, pref.X)
	p := &rt.Paragraphs[paraIdx]
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + local.Offset, Affinity: local.Affinity}
}

// LineStart moves to the start of the visual line containing pos (Home).
func LineStart(rt *skribidi.RichText, rl *layout.RichLayout, pos skribidi.TextPosition) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	p := &rt.Paragraphs[cur.ParagraphIdx]
	ll := laidOf(rl, cur.ParagraphIdx)
	if ll == nil {
		return skribidi.TextPosition{Offset: p.GlobalTextOffset, Affinity: skribidi.AffinitySOL}
	}
	lines := ll.Lines()
	lineIdx := lineIndexAt(ll, cur.LocalOffset)
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + lines[lineIdx].TextRange.Start, Affinity: skribidi.AffinitySOL}
}

// LineEndPos moves to the end of the visual line containing pos (End).
func LineEndPos(rt *skribidi.RichText, rl *layout.RichLayout, pos skribidi.TextPosition) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	p := &rt.Paragraphs[cur.ParagraphIdx]
	ll := laidOf(rl, cur.ParagraphIdx)
	if ll == nil {
		return skribidi.TextPosition{Offset: p.GlobalTextOffset + p.Len(), Affinity: skribidi.AffinityEOL}
	}
	lines := ll.Lines()
	lineIdx := lineIndexAt(ll, cur.LocalOffset)
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + lines[lineIdx].LastGraphemeOffset, Affinity: skribidi.AffinityEOL}
}

// DocumentStart returns the position at the very start of the document.
func DocumentStart() skribidi.TextPosition {
	return skribidi.TextPosition{Offset: 0, Affinity: skribidi.AffinitySOL}
}

// DocumentEnd returns the position at the very end of the document,
// snapped to the last grapheme with EOL.
func DocumentEnd(rt *skribidi.RichText) skribidi.TextPosition {
	last := len(rt.Paragraphs) - 1
	return snapDocEnd(rt, last, rt.Paragraphs[last].Len(), skribidi.AffinityTrailing)
}
