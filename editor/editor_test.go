package editor

import (
	"testing"

	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/caret"
	"github.com/npillmayer/skribidi/layout"
)

// fakeLines lays text out as a single line, uniform direction, one unit of
// width per code point — enough to drive HitTest/CaretInfo/line motion
// without a real shaping engine (mirrors layout.fakeLines).
type fakeLines struct {
	length int
	dir    layout.Direction
	dirAt  func(int) layout.Direction
}

func (f *fakeLines) Lines() []layout.LineRecord {
	return []layout.LineRecord{{
		TextRange:          skribidi.Range{Start: 0, End: f.length},
		LastGraphemeOffset: f.length,
		Bounds:             layout.Rect{W: float64(f.length), H: 10},
		Ascender:           8,
		Descender:          2,
	}}
}

func (f *fakeLines) ResolvedDirection() layout.Direction { return f.dir }
func (f *fakeLines) NextGraphemeOffset(off int) int {
	if off < f.length {
		return off + 1
	}
	return off
}
func (f *fakeLines) PrevGraphemeOffset(off int) int {
	if off > 0 {
		return off - 1
	}
	return off
}
func (f *fakeLines) AlignGraphemeOffset(off int) int { return off }
func (f *fakeLines) GetTextDirectionAt(pos int) layout.Direction {
	if f.dirAt != nil {
		return f.dirAt(pos)
	}
	return f.dir
}
func (f *fakeLines) HitTestAtLine(movement layout.MovementType, lineIdx int, x float64) skribidi.TextPosition {
	off := int(x)
	if off > f.length {
		off = f.length
	}
	if off < 0 {
		off = 0
	}
	return skribidi.TextPosition{Offset: off, Affinity: skribidi.AffinityTrailing}
}
func (f *fakeLines) CaretInfoAt(pos int) layout.CaretInfo {
	return layout.CaretInfo{X: float64(pos), Ascender: 8, Descender: 2, Direction: f.dir}
}
func (f *fakeLines) RangeBoundsIter(sel skribidi.Range, offsetY float64, cb func(layout.Rect)) {
	cb(layout.Rect{X: float64(sel.Start), Y: offsetY, W: float64(sel.Len()), H: 10})
}

// fakeEngine is a layout.Layout collaborator backed by fakeLines. dirAt, if
// set, is installed on every laid paragraph so tests can model a bidi
// document without a real resolver.
type fakeEngine struct {
	dirAt func(int) layout.Direction
}

func (e fakeEngine) LayoutParagraph(params layout.Params, text *skribidi.AttributedText, attrs []skribidi.Attribute) (layout.LaidLines, error) {
	return &fakeLines{length: text.Len(), dirAt: e.dirAt}, nil
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

func newTestEditor() *Editor {
	return NewEditor(fakeEngine{}, nil, nil, asciiWords{}, 0)
}

func typeString(e *Editor, s string) {
	for _, r := range s {
		e.InsertChar(r)
	}
}

// typing "abc", moving the caret between 'b' and 'c', then pressing Enter
// splits the paragraph there.
func TestEnterSplitsParagraph(t *testing.T) {
	e := newTestEditor()
	typeString(e, "abc")

	e.SetSelection(skribidi.TextRange{
		Start: skribidi.TextPosition{Offset: 2, Affinity: skribidi.AffinityTrailing},
		End:   skribidi.TextPosition{Offset: 2, Affinity: skribidi.AffinityTrailing},
	})
	e.HandleKey(KeyEnter, 0)

	rt := e.Text()
	if len(rt.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs after split, got %d", len(rt.Paragraphs))
	}
	if got := string(rt.Paragraphs[0].Text.CodePoints); got != "ab\n" {
		t.Fatalf("expected first paragraph %q, got %q", "ab\n", got)
	}
	if got := string(rt.Paragraphs[1].Text.CodePoints); got != "c" {
		t.Fatalf("expected second paragraph %q, got %q", "c", got)
	}
	sel := e.Selection()
	if !sel.IsCaret() || sel.End.Offset != 3 || sel.End.Affinity != skribidi.AffinityTrailing {
		t.Fatalf("expected caret at (3, TRAILING), start of the new second paragraph, got %+v", sel.End)
	}
	if !e.CanUndo() {
		t.Fatalf("expected the split to be undoable")
	}
}

// in SKRIBIDI caret mode, forward motion across a bidi direction change
// on the same line stops in place (same offset, flipped affinity) before
// actually crossing the boundary on the next Forward call.
func TestForwardStopsAtDirectionChange(t *testing.T) {
	dirAt := func(pos int) layout.Direction {
		if pos < 3 {
			return layout.LTR
		}
		return layout.RTL
	}
	e := NewEditor(fakeEngine{dirAt: dirAt}, nil, nil, asciiWords{}, 0)
	typeString(e, "abcd")
	if e.CaretMode != caret.Skribidi {
		t.Fatalf("expected default caret mode SKRIBIDI")
	}

	e.SetSelection(skribidi.TextRange{
		Start: skribidi.TextPosition{Offset: 2, Affinity: skribidi.AffinityTrailing},
		End:   skribidi.TextPosition{Offset: 2, Affinity: skribidi.AffinityTrailing},
	})

	e.HandleKey(KeyRight, 0)
	sel := e.Selection()
	if sel.End.Offset != 2 || sel.End.Affinity != skribidi.AffinityLeading {
		t.Fatalf("expected the first Right to stop in place with flipped affinity, got %+v", sel.End)
	}

	e.HandleKey(KeyRight, 0)
	sel = e.Selection()
	if sel.End.Offset != 3 {
		t.Fatalf("expected the second Right to cross the boundary to offset 3, got %+v", sel.End)
	}
}

// committing an IME composition after it replaced a non-empty selection
// produces exactly one undo state.
func TestIMECommitProducesOneUndoState(t *testing.T) {
	e := newTestEditor()
	typeString(e, "hello world")
	levelsBefore := undoDepth(e)

	// select "world" (offsets 6..11) and start composing over it.
	e.SetSelection(skribidi.TextRange{
		Start: skribidi.TextPosition{Offset: 6, Affinity: skribidi.AffinityTrailing},
		End:   skribidi.TextPosition{Offset: 11, Affinity: skribidi.AffinityTrailing},
	})

	e.SetComposition([]rune("w"), 1)
	e.SetComposition([]rune("wo"), 2)
	e.CommitComposition([]rune("world!"))

	if got := string(e.Text().Paragraphs[0].Text.CodePoints); got != "hello world!" {
		t.Fatalf("expected %q, got %q", "hello world!", got)
	}
	if undoDepth(e) != levelsBefore+1 {
		t.Fatalf("expected exactly one new undo state from selection-clear + commit, depth went from %d to %d", levelsBefore, undoDepth(e))
	}
	e.Undo()
	if got := string(e.Text().Paragraphs[0].Text.CodePoints); got != "hello world" {
		t.Fatalf("expected undo to restore %q, got %q", "hello world", got)
	}
}

func undoDepth(e *Editor) int {
	n := 0
	for e.CanUndo() {
		e.Undo()
		n++
	}
	for i := 0; i < n; i++ {
		e.Redo()
	}
	return n
}

func TestToggleAttributeRoundTripsThroughUndo(t *testing.T) {
	e := newTestEditor()
	typeString(e, "hello")
	bold := skribidi.Attribute{Kind: skribidi.KindFontWeight, Value: "bold"}

	e.SetSelection(skribidi.TextRange{
		Start: skribidi.TextPosition{Offset: 0},
		End:   skribidi.TextPosition{Offset: 5},
	})
	e.ToggleAttribute(bold, 0)
	if !e.Text().HasAttribute(skribidi.Range{Start: 0, End: 5}, bold) {
		t.Fatalf("expected selection to carry the bold attribute after toggle-on")
	}

	e.ToggleAttribute(bold, 0)
	if e.Text().HasAttribute(skribidi.Range{Start: 0, End: 5}, bold) {
		t.Fatalf("expected toggle-off to clear the bold attribute")
	}

	e.Undo()
	if !e.Text().HasAttribute(skribidi.Range{Start: 0, End: 5}, bold) {
		t.Fatalf("expected undo of toggle-off to restore the bold attribute")
	}
	e.Undo()
	if e.Text().HasAttribute(skribidi.Range{Start: 0, End: 5}, bold) {
		t.Fatalf("expected undo of toggle-on to clear the bold attribute")
	}
	e.Redo()
	if !e.Text().HasAttribute(skribidi.Range{Start: 0, End: 5}, bold) {
		t.Fatalf("expected redo of toggle-on to reapply the bold attribute")
	}
}

func TestClickThenDragExtendsSelection(t *testing.T) {
	e := newTestEditor()
	typeString(e, "hello world")

	e.Click(2, 5, 0, 0.0)
	sel := e.Selection()
	if !sel.IsCaret() || sel.End.Offset != 2 {
		t.Fatalf("expected a caret at offset 2 after single click, got %+v", sel)
	}

	e.Drag(9, 5)
	sel = e.Selection()
	if sel.Start.Offset != 2 || sel.End.Offset != 9 {
		t.Fatalf("expected selection [2,9) after drag, got [%d,%d)", sel.Start.Offset, sel.End.Offset)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := newTestEditor()
	typeString(e, "ab")
	if e.Text().TotalLen() != 2 {
		t.Fatalf("expected 2 code points, got %d", e.Text().TotalLen())
	}
	e.Undo()
	if e.Text().TotalLen() != 0 {
		t.Fatalf("expected undo to empty the document, got len %d", e.Text().TotalLen())
	}
	e.Redo()
	if got := string(e.Text().Paragraphs[0].Text.CodePoints); got != "ab" {
		t.Fatalf("expected redo to restore %q, got %q", "ab", got)
	}
}
