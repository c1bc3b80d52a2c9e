package reflayout

import (
	"strings"

	"github.com/npillmayer/uax/bidi"

	"github.com/npillmayer/skribidi/layout"
)

// dirTable resolves the UAX#9 embedding direction of a paragraph and, from
// the resolved run ordering, the direction in force at any code-point
// offset inside it — the same bidi.ResolveParagraph / ResolvedLevels.Reorder
// sequence styled.ParagraphFromText and Paragraph.WrapAt use, but applied to
// the whole paragraph in one piece rather than line by line.
type dirTable struct {
	embedding layout.Direction
	runs      []dirRun
}

type dirRun struct {
	from, to int // code-point range [from, to)
	dir      layout.Direction
}

// resolveParagraphDirection runs the bidi algorithm over cps and returns
// the paragraph's embedding direction plus a per-offset direction lookup.
// defaultDir seeds bidi.DefaultDirection the way ParagraphFromText's caller
// supplies embBidi; it is the "parent" direction attribute inherited from
// the layout params or the preceding paragraph.
func resolveParagraphDirection(cps []rune, defaultDir bidi.Direction) dirTable {
	t := dirTable{embedding: fromBidiDirection(defaultDir)}
	if len(cps) == 0 {
		return t
	}
	levels := bidi.ResolveParagraph(strings.NewReader(string(cps)), nil,
		bidi.DefaultDirection(defaultDir), bidi.IgnoreParagraphSeparators(true))
	ordering := levels.Reorder()

	for _, run := range ordering.Runs {
		segit := run.SegmentIterator()
		for segit.Next() {
			dir, segFrom, segTo := segit.Segment()
			t.runs = append(t.runs, dirRun{
				from: byteOffsetToRune(cps, int(segFrom)),
				to:   byteOffsetToRune(cps, int(segTo)),
				dir:  fromBidiDirection(dir),
			})
		}
	}
	if len(t.runs) > 0 {
		t.embedding = t.runs[0].dir
	}
	return t
}

// byteOffsetToRune converts a byte offset within string(cps) back to a
// code-point offset, since uax/bidi reports segment bounds in bytes.
func byteOffsetToRune(cps []rune, byteOff int) int {
	if byteOff <= 0 {
		return 0
	}
	n := 0
	for i := range string(cps) {
		if i >= byteOff {
			return n
		}
		n++
	}
	return len(cps)
}

// at returns the resolved direction at code-point offset pos, falling
// back to the paragraph's embedding direction outside every recorded run.
func (t dirTable) at(pos int) layout.Direction {
	for _, r := range t.runs {
		if pos >= r.from && pos < r.to {
			return r.dir
		}
	}
	return t.embedding
}

func fromBidiDirection(d bidi.Direction) layout.Direction {
	if d == bidi.RightToLeft {
		return layout.RTL
	}
	return layout.LTR
}
