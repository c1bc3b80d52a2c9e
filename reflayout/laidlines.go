package reflayout

import (
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"

	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

// laidLines is the per-paragraph result Engine.LayoutParagraph returns. It
// keeps the code-point buffer alongside the resolved direction table and
// line ranges so every LaidLines query can be answered without re-running
// the break iterators.
type laidLines struct {
	cps    []rune
	dirs   dirTable
	ranges []skribidi.Range
	widths []float64
	engine *Engine
}

func (l *laidLines) Lines() []layout.LineRecord {
	m := l.engine.metrics()
	recs := make([]layout.LineRecord, len(l.ranges))
	for i, r := range l.ranges {
		recs[i] = layout.LineRecord{
			TextRange:          r,
			LastGraphemeOffset: l.lastGraphemeOffsetIn(r),
			Bounds:             layout.Rect{W: l.widths[i], H: m.Ascender + m.Descender},
			Ascender:           m.Ascender,
			Descender:          m.Descender,
		}
	}
	return recs
}

func (l *laidLines) lastGraphemeOffsetIn(r skribidi.Range) int {
	off := r.End
	for off > r.Start && !l.isGraphemeBoundary(off) {
		off--
	}
	return off
}

func (l *laidLines) ResolvedDirection() layout.Direction {
	return l.dirs.embedding
}

func (l *laidLines) isGraphemeBoundary(off int) bool {
	return l.engine.oracle.IsGraphemeBoundary(l.cps, off)
}

func (l *laidLines) NextGraphemeOffset(off int) int {
	if off >= len(l.cps) {
		return len(l.cps)
	}
	next := off + 1
	for next < len(l.cps) && !l.isGraphemeBoundary(next) {
		next++
	}
	return next
}

func (l *laidLines) PrevGraphemeOffset(off int) int {
	if off <= 0 {
		return 0
	}
	prev := off - 1
	for prev > 0 && !l.isGraphemeBoundary(prev) {
		prev--
	}
	return prev
}

func (l *laidLines) AlignGraphemeOffset(off int) int {
	aligned := off
	for aligned > 0 && !l.isGraphemeBoundary(aligned) {
		aligned--
	}
	return aligned
}

func (l *laidLines) GetTextDirectionAt(pos int) layout.Direction {
	return l.dirs.at(pos)
}

// lineAt returns the index of the line containing code-point offset pos.
func (l *laidLines) lineAt(pos int) int {
	for i, r := range l.ranges {
		if pos >= r.Start && (pos < r.End || i == len(l.ranges)-1) {
			return i
		}
	}
	return len(l.ranges) - 1
}

// widthOf measures the rendered width of cps[from:to] with the engine's
// uax11 context, the same measurement Engine.lineBreaks uses.
func (l *laidLines) widthOf(from, to int) float64 {
	if from >= to {
		return 0
	}
	return float64(uax11.StringWidth(grapheme.StringFromString(string(l.cps[from:to])), l.engine.Context))
}

func (l *laidLines) HitTestAtLine(movement layout.MovementType, lineIdx int, x float64) skribidi.TextPosition {
	if lineIdx < 0 || lineIdx >= len(l.ranges) {
		lineIdx = 0
	}
	r := l.ranges[lineIdx]
	if x <= 0 {
		return skribidi.TextPosition{Offset: r.Start, Affinity: skribidi.AffinityLeading}
	}
	offset := r.Start
	accum := 0.0
	for offset < r.End {
		next := l.NextGraphemeOffset(offset)
		w := l.widthOf(offset, next)
		if accum+w/2 >= x {
			return skribidi.TextPosition{Offset: offset, Affinity: skribidi.AffinityLeading}
		}
		if accum+w >= x {
			return skribidi.TextPosition{Offset: next, Affinity: skribidi.AffinityTrailing}
		}
		accum += w
		offset = next
	}
	return skribidi.TextPosition{Offset: r.End, Affinity: skribidi.AffinityTrailing}
}

func (l *laidLines) CaretInfoAt(pos int) layout.CaretInfo {
	idx := l.lineAt(pos)
	r := l.ranges[idx]
	m := l.engine.metrics()
	return layout.CaretInfo{
		X:         l.widthOf(r.Start, pos),
		Ascender:  m.Ascender,
		Descender: m.Descender,
		Direction: l.dirs.at(pos),
	}
}

func (l *laidLines) RangeBoundsIter(sel skribidi.Range, offsetY float64, cb func(layout.Rect)) {
	m := l.engine.metrics()
	lineH := m.Ascender + m.Descender
	for i, r := range l.ranges {
		from, to := sel.Start, sel.End
		if from < r.Start {
			from = r.Start
		}
		if to > r.End {
			to = r.End
		}
		if from >= to {
			continue
		}
		cb(layout.Rect{
			X: l.widthOf(r.Start, from),
			Y: offsetY + float64(i)*lineH,
			W: l.widthOf(from, to),
			H: lineH,
		})
	}
}
