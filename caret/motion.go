package caret

import (
	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

// nextGraphemeGlobal advances one grapheme from (paraIdx, local), crossing
// into the next paragraph at its own offset 0 when local lands on the
// current paragraph's trailing separator.
func nextGraphemeGlobal(rt *skribidi.RichText, oracle skribidi.GraphemeBreaks, paraIdx, local int) (int, int) {
	p := &rt.Paragraphs[paraIdx]
	next := p.Text.NextGraphemeOffset(local, oracle)
	if next < p.Len() {
		return paraIdx, next
	}
	if paraIdx+1 < len(rt.Paragraphs) {
		return paraIdx + 1, 0
	}
	return paraIdx, p.Len()
}

// prevGraphemeGlobal is the backward counterpart: stepping back from local
// offset 0 of a non-first paragraph crosses into the previous paragraph,
// searching backward from its full length (which includes its trailing
// separator grapheme).
func prevGraphemeGlobal(rt *skribidi.RichText, oracle skribidi.GraphemeBreaks, paraIdx, local int) (int, int) {
	if local == 0 {
		if paraIdx == 0 {
			return 0, 0
		}
		prev := &rt.Paragraphs[paraIdx-1]
		return paraIdx - 1, prev.Text.PrevGraphemeOffset(prev.Len(), oracle)
	}
	p := &rt.Paragraphs[paraIdx]
	return paraIdx, p.Text.PrevGraphemeOffset(local, oracle)
}

func laidOf(rl *layout.RichLayout, paraIdx int) layout.LaidLines {
	if paraIdx < 0 || paraIdx >= len(rl.Paragraphs) {
		return nil
	}
	return rl.Paragraphs[paraIdx].Layout
}

// isRTLAt queries direction at local, querying one grapheme earlier when
// aff is LEADING, since the caret is then anchored to the preceding
// grapheme.
func isRTLAt(ll layout.LaidLines, local int, aff skribidi.Affinity) bool {
	if ll == nil {
		return false
	}
	q := local
	if aff == skribidi.AffinityLeading && local > 0 {
		q = local - 1
	}
	return ll.GetTextDirectionAt(q) == layout.RTL
}

func lineIndexAt(ll layout.LaidLines, offset int) int {
	lines := ll.Lines()
	for i, ln := range lines {
		if offset <= ln.TextRange.End {
			return i
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}

func sameLineIdx(ll layout.LaidLines, a, b int) bool {
	if ll == nil {
		return false
	}
	return lineIndexAt(ll, a) == lineIndexAt(ll, b)
}

func isLastLine(ll layout.LaidLines, offset int) bool {
	if ll == nil {
		return false
	}
	return lineIndexAt(ll, offset) == len(ll.Lines())-1
}

// dirChange is the outcome of the direction-stop test.
type dirChange struct {
	stop            bool
	curRTL, nextRTL bool
}

func evalDirChange(rt *skribidi.RichText, rl *layout.RichLayout, mode Mode, shiftSelect bool, paraIdx, local int, aff skribidi.Affinity, nParaIdx, nLocal int) dirChange {
	curLL := laidOf(rl, paraIdx)
	nextLL := laidOf(rl, nParaIdx)
	curRTL := isRTLAt(curLL, local, aff)
	nextRTL := isRTLAt(nextLL, nLocal, skribidi.AffinityTrailing)
	same := paraIdx == nParaIdx && sameLineIdx(curLL, local, nLocal)
	last := nParaIdx == len(rt.Paragraphs)-1 && isLastLine(nextLL, nLocal)
	return dirChange{
		stop:    mode == Skribidi && (same || last) && !shiftSelect,
		curRTL:  curRTL,
		nextRTL: nextRTL,
	}
}

// snapDocEnd reports that a position at or past the end of the document's
// last paragraph is the final caret location, with EOL rather than
// whatever affinity motion would otherwise assign.
func snapDocEnd(rt *skribidi.RichText, paraIdx, local int, aff skribidi.Affinity) skribidi.TextPosition {
	p := &rt.Paragraphs[paraIdx]
	if paraIdx == len(rt.Paragraphs)-1 && local >= p.Len() {
		return skribidi.TextPosition{Offset: p.GlobalTextOffset + p.Len(), Affinity: skribidi.AffinityEOL}
	}
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + local, Affinity: aff}
}

// snapDocStart applies the backward counterpart: arriving at offset 0 of
// the first paragraph snaps to SOL.
func snapDocStart(rt *skribidi.RichText, paraIdx, local int, aff skribidi.Affinity) skribidi.TextPosition {
	p := &rt.Paragraphs[paraIdx]
	if paraIdx == 0 && local == 0 {
		return skribidi.TextPosition{Offset: 0, Affinity: skribidi.AffinitySOL}
	}
	return skribidi.TextPosition{Offset: p.GlobalTextOffset + local, Affinity: aff}
}

// Forward computes the next caret position under the character-motion
// algorithm. shiftSelect disables the bidi direction-change stop, which
// only applies to a plain move.
func Forward(rt *skribidi.RichText, rl *layout.RichLayout, oracle skribidi.GraphemeBreaks, pos skribidi.TextPosition, mode Mode, shiftSelect bool) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, oracle)
	nParaIdx, nLocal := nextGraphemeGlobal(rt, oracle, cur.ParagraphIdx, cur.LocalOffset)

	dt := evalDirChange(rt, rl, mode, shiftSelect, cur.ParagraphIdx, cur.LocalOffset, pos.Affinity, nParaIdx, nLocal)
	if dt.stop && dt.curRTL != dt.nextRTL {
		switch pos.Affinity {
		case skribidi.AffinityLeading, skribidi.AffinityEOL:
			return snapDocEnd(rt, nParaIdx, nLocal, skribidi.AffinityTrailing)
		case skribidi.AffinitySOL:
			return skribidi.TextPosition{Offset: pos.Offset, Affinity: skribidi.AffinityTrailing}
		default:
			return skribidi.TextPosition{Offset: pos.Offset, Affinity: skribidi.AffinityLeading}
		}
	}

	paraIdx, local := cur.ParagraphIdx, cur.LocalOffset
	if pos.Affinity == skribidi.AffinityLeading || pos.Affinity == skribidi.AffinityEOL {
		paraIdx, local = nParaIdx, nLocal
		nParaIdx, nLocal = nextGraphemeGlobal(rt, oracle, paraIdx, local)
		dt = evalDirChange(rt, rl, mode, shiftSelect, paraIdx, local, skribidi.AffinityTrailing, nParaIdx, nLocal)
		if dt.stop && dt.curRTL != dt.nextRTL {
			return snapDocEnd(rt, paraIdx, local, skribidi.AffinityLeading)
		}
	}
	return snapDocEnd(rt, nParaIdx, nLocal, skribidi.AffinityTrailing)
}

// Backward computes the previous caret position, mirroring Forward:
// symmetric, with an extra case that may produce SOL. This implementation
// resolves that symmetry by swapping the roles pos/npos play relative to
// the direction of travel.
func Backward(rt *skribidi.RichText, rl *layout.RichLayout, oracle skribidi.GraphemeBreaks, pos skribidi.TextPosition, mode Mode, shiftSelect bool) skribidi.TextPosition {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, oracle)
	pParaIdx, pLocal := prevGraphemeGlobal(rt, oracle, cur.ParagraphIdx, cur.LocalOffset)

	dt := evalDirChange(rt, rl, mode, shiftSelect, cur.ParagraphIdx, cur.LocalOffset, pos.Affinity, pParaIdx, pLocal)
	if dt.stop && dt.curRTL != dt.nextRTL {
		switch pos.Affinity {
		case skribidi.AffinityLeading, skribidi.AffinityEOL:
			return snapDocStart(rt, cur.ParagraphIdx, cur.LocalOffset, skribidi.AffinityLeading)
		default:
			return snapDocStart(rt, pParaIdx, pLocal, skribidi.AffinityTrailing)
		}
	}
	return snapDocStart(rt, pParaIdx, pLocal, skribidi.AffinityTrailing)
}
