package caret

import (
	"testing"

	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

// plain character motion walks forward/backward one grapheme at a time
// with no layout collaborator (ltr-only document, Simple mode).
func TestForwardBackwardPlain(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("abc"), nil, 0)
	rl := layout.NewRichLayout()

	pos := skribidi.TextPosition{Offset: 0, Affinity: skribidi.AffinitySOL}
	pos = Forward(rt, rl, nil, pos, Simple, false)
	if pos.Offset != 1 {
		t.Fatalf("expected offset 1, got %d", pos.Offset)
	}
	pos = Forward(rt, rl, nil, pos, Simple, false)
	if pos.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", pos.Offset)
	}
	pos = Backward(rt, rl, nil, pos, Simple, false)
	if pos.Offset != 1 {
		t.Fatalf("expected offset 1 after backward, got %d", pos.Offset)
	}
}

func TestForwardCrossesParagraphBoundary(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("a\nb"), nil, 0)
	rl := layout.NewRichLayout()

	// one grapheme before the paragraph split (the 'a').
	pos := skribidi.TextPosition{Offset: 0}
	pos = Forward(rt, rl, nil, pos, Simple, false) // -> offset 1, before '\n'
	if pos.Offset != 1 {
		t.Fatalf("expected offset 1, got %d", pos.Offset)
	}
	pos = Forward(rt, rl, nil, pos, Simple, false) // crosses '\n' -> paragraph 2 offset 0 == global 2
	if pos.Offset != 2 {
		t.Fatalf("expected offset 2 (start of paragraph 2), got %d", pos.Offset)
	}
}

func TestForwardSnapsToEOLAtDocumentEnd(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("ab"), nil, 0)
	rl := layout.NewRichLayout()

	pos := skribidi.TextPosition{Offset: 1}
	pos = Forward(rt, rl, nil, pos, Simple, false)
	if pos.Offset != 2 || pos.Affinity != skribidi.AffinityEOL {
		t.Fatalf("expected (2, EOL), got (%d, %v)", pos.Offset, pos.Affinity)
	}
}

func TestBackwardSnapsToSOLAtDocumentStart(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("ab"), nil, 0)
	rl := layout.NewRichLayout()

	pos := skribidi.TextPosition{Offset: 1}
	pos = Backward(rt, rl, nil, pos, Simple, false)
	if pos.Offset != 0 || pos.Affinity != skribidi.AffinitySOL {
		t.Fatalf("expected (0, SOL), got (%d, %v)", pos.Offset, pos.Affinity)
	}
}

// asciiWords treats runs of non-space code points as words.
type asciiWords struct{}

func (asciiWords) IsWordBoundary(cps []rune, offset int) bool {
	if offset <= 0 || offset >= len(cps) {
		return true
	}
	return (cps[offset-1] == ' ') != (cps[offset] == ' ')
}
func (asciiWords) IsWhitespace(r rune) bool  { return r == ' ' }
func (asciiWords) IsPunctuation(r rune) bool { return r == '.' || r == ',' }

func TestForwardWordDefaultStopsAfterTrailingWhitespace(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("foo bar baz"), nil, 0)

	pos := skribidi.TextPosition{Offset: 0}
	pos = ForwardWord(rt, asciiWords{}, pos, DefaultBehavior)
	if pos.Offset != 4 {
		t.Fatalf("expected offset 4 (just after 'foo '), got %d", pos.Offset)
	}
}

func TestBackwardWordDefault(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("foo bar baz"), nil, 0)

	pos := skribidi.TextPosition{Offset: 11}
	pos = BackwardWord(rt, asciiWords{}, pos, DefaultBehavior)
	if pos.Offset != 8 {
		t.Fatalf("expected offset 8 (start of 'baz'), got %d", pos.Offset)
	}
}

func TestBackspaceUnitsDefaultSingleUnit(t *testing.T) {
	if got := BackspaceUnits([]rune("abc")); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestBackspaceUnitsCRLF(t *testing.T) {
	if got := BackspaceUnits([]rune("a\r\n")); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestBackspaceUnitsRegionalIndicatorPair(t *testing.T) {
	flag := []rune{0x1F1FA, 0x1F1F8} // US flag
	if got := BackspaceUnits(flag); got != 2 {
		t.Fatalf("expected 2 (remove whole flag), got %d", got)
	}
}

func TestBackspaceCrossesIntoPreviousParagraph(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("ab\nc"), nil, 0)

	r := Backspace(rt, skribidi.TextPosition{Offset: 3}) // offset 3 == start of second paragraph
	if r.Start != 2 || r.End != 3 {
		t.Fatalf("expected to remove the paragraph separator [2,3), got [%d,%d)", r.Start, r.End)
	}
}

func TestDragStateClickCountEscalates(t *testing.T) {
	var d DragState
	noop := func(hit skribidi.TextPosition) (skribidi.TextPosition, skribidi.TextPosition) { return hit, hit }

	d.Click(skribidi.TextPosition{Offset: 5}, 0.0, noop, noop)
	if d.Mode != ClickChar {
		t.Fatalf("expected ClickChar on first click")
	}
	d.Click(skribidi.TextPosition{Offset: 5}, 0.1, noop, noop)
	if d.Mode != ClickWord {
		t.Fatalf("expected ClickWord on second click within window")
	}
	d.Click(skribidi.TextPosition{Offset: 5}, 0.2, noop, noop)
	if d.Mode != ClickLine {
		t.Fatalf("expected ClickLine on third click within window")
	}
	d.Click(skribidi.TextPosition{Offset: 5}, 0.3, noop, noop)
	if d.Mode != ClickChar {
		t.Fatalf("expected wraparound to ClickChar on fourth click")
	}
}

func TestDragExtendsPastInitialEnd(t *testing.T) {
	d := DragState{InitialStart: skribidi.TextPosition{Offset: 2}, InitialEnd: skribidi.TextPosition{Offset: 5}}
	sel := d.Drag(skribidi.TextPosition{Offset: 9})
	if sel.Start.Offset != 2 || sel.End.Offset != 9 {
		t.Fatalf("expected [2,9), got [%d,%d)", sel.Start.Offset, sel.End.Offset)
	}
	sel = d.Drag(skribidi.TextPosition{Offset: 0})
	if sel.Start.Offset != 0 || sel.End.Offset != 5 {
		t.Fatalf("expected [0,5), got [%d,%d)", sel.Start.Offset, sel.End.Offset)
	}
}
