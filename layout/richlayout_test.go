package layout

import (
	"testing"

	"github.com/npillmayer/skribidi"
)

// fakeLines is a minimal LaidLines stand-in that lays text out as a single
// line of width 1 unit per code point, for exercising RichLayout without a
// real shaping engine.
type fakeLines struct {
	length int
	dir    Direction
}

func (f *fakeLines) Lines() []LineRecord {
	return []LineRecord{{
		TextRange:          skribidi.Range{Start: 0, End: f.length},
		LastGraphemeOffset: f.length,
		Bounds:             Rect{W: float64(f.length), H: 10},
		Ascender:           8,
		Descender:          2,
	}}
}

func (f *fakeLines) ResolvedDirection() Direction { return f.dir }
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
func (f *fakeLines) GetTextDirectionAt(pos int) Direction { return f.dir }
func (f *fakeLines) HitTestAtLine(movement MovementType, lineIdx int, x float64) skribidi.TextPosition {
	off := int(x)
	if off > f.length {
		off = f.length
	}
	if off < 0 {
		off = 0
	}
	return skribidi.TextPosition{Offset: off, Affinity: skribidi.AffinityTrailing}
}
func (f *fakeLines) CaretInfoAt(pos int) CaretInfo {
	return CaretInfo{X: float64(pos), Ascender: 8, Descender: 2, Direction: f.dir}
}
func (f *fakeLines) RangeBoundsIter(sel skribidi.Range, offsetY float64, cb func(Rect)) {
	cb(Rect{X: float64(sel.Start), Y: offsetY, W: float64(sel.Len()), H: 10})
}

type fakeEngine struct{}

func (fakeEngine) LayoutParagraph(params Params, text *skribidi.AttributedText, attrs []skribidi.Attribute) (LaidLines, error) {
	return &fakeLines{length: text.Len()}, nil
}

func TestSetFromRichTextBuildsAllParagraphs(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("hello\nworld"), nil, 0)

	rl := NewRichLayout()
	rl.ApplyChange(skribidi.Change{StartParagraphIdx: 0, RemovedParagraphCount: 1, InsertedParagraphCount: len(rt.Paragraphs)})

	if err := rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rl.Paragraphs) != 2 {
		t.Fatalf("expected 2 laid paragraphs, got %d", len(rl.Paragraphs))
	}
	if rl.Paragraphs[0].VersionUsed != rt.Paragraphs[0].Version {
		t.Fatalf("paragraph 0 not marked in sync")
	}
	if rl.Paragraphs[1].OffsetY != rl.Paragraphs[0].OffsetY+10 {
		t.Fatalf("expected paragraph 1 to stack below paragraph 0, got offsetY=%v", rl.Paragraphs[1].OffsetY)
	}
}

func TestSetFromRichTextSkipsUnchangedParagraph(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("hello\nworld"), nil, 0)

	rl := NewRichLayout()
	rl.ApplyChange(skribidi.Change{StartParagraphIdx: 0, RemovedParagraphCount: 1, InsertedParagraphCount: len(rt.Paragraphs)})
	if err := rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	firstLayout := rl.Paragraphs[0].Layout
	secondLayout := rl.Paragraphs[1].Layout

	rt.SetAttribute(skribidi.Range{Start: 7, End: 9}, skribidi.Attribute{Kind: skribidi.KindFontWeight, Value: "bold"}, 0)
	if err := rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Paragraphs[0].Layout != firstLayout {
		t.Fatalf("expected paragraph 0 to be skipped, got a relayout")
	}
	if rl.Paragraphs[1].Layout == secondLayout {
		t.Fatalf("expected paragraph 1 to be relaid out")
	}
}

func TestHitTestTranslatesToGlobalOffset(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("hello\nworld"), nil, 0)

	rl := NewRichLayout()
	rl.ApplyChange(skribidi.Change{StartParagraphIdx: 0, RemovedParagraphCount: 1, InsertedParagraphCount: len(rt.Paragraphs)})
	rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil)

	pos := rl.HitTest(MovementCharacter, 2, 15)
	if pos.Offset != rt.Paragraphs[1].GlobalTextOffset+2 {
		t.Fatalf("expected offset in paragraph 1, got %d", pos.Offset)
	}
}

func TestCaretInfoAddsParagraphOffsetY(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("hello\nworld"), nil, 0)

	rl := NewRichLayout()
	rl.ApplyChange(skribidi.Change{StartParagraphIdx: 0, RemovedParagraphCount: 1, InsertedParagraphCount: len(rt.Paragraphs)})
	rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil)

	info := rl.CaretInfo(skribidi.TextPosition{Offset: rt.Paragraphs[1].GlobalTextOffset + 1}, rt)
	if info.Y != rl.Paragraphs[1].OffsetY {
		t.Fatalf("expected caret Y to match paragraph offset, got %v want %v", info.Y, rl.Paragraphs[1].OffsetY)
	}
}

func TestIterateRangeBoundsSpansParagraphs(t *testing.T) {
	rt := skribidi.NewRichText()
	rt.AppendUTF32([]rune("hello\nworld"), nil, 0)

	rl := NewRichLayout()
	rl.ApplyChange(skribidi.Change{StartParagraphIdx: 0, RemovedParagraphCount: 1, InsertedParagraphCount: len(rt.Paragraphs)})
	rl.SetFromRichText(Params{}, rt, fakeEngine{}, nil)

	var rects []Rect
	rl.IterateRangeBounds(rt, skribidi.Range{Start: 3, End: 8}, func(r Rect) { rects = append(rects, r) })
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects spanning the paragraph boundary, got %d", len(rects))
	}
}
