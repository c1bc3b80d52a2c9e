package skribidi

import "testing"

func textOf(rt *RichText) []string {
	out := make([]string, len(rt.Paragraphs))
	for i, p := range rt.Paragraphs {
		out[i] = string(p.Text.CodePoints)
	}
	return out
}

// paragraph split on LF insertion.
func TestInsertLFSplitsParagraph(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("abc"), nil, 0)

	lf := NewRichText()
	lf.AppendUTF32([]rune("\n"), nil, 0)

	ch := rt.Insert(Range{Start: 2, End: 2}, lf)

	paras := textOf(rt)
	if len(paras) != 2 || paras[0] != "ab\n" || paras[1] != "c" {
		t.Fatalf("unexpected paragraphs: %#v", paras)
	}
	if ch.StartParagraphIdx != 0 || ch.RemovedParagraphCount != 0 || ch.InsertedParagraphCount != 1 {
		t.Fatalf("unexpected change: %#v", ch)
	}
	if ch.EditEndPosition.Offset != 3 {
		t.Fatalf("expected edit end offset 3, got %d", ch.EditEndPosition.Offset)
	}
}

func TestGlobalOffsetsInvariant(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("line one\nline two\nline three"), nil, 0)

	total := 0
	for i, p := range rt.Paragraphs {
		if p.GlobalTextOffset != total {
			t.Fatalf("paragraph %d: got offset %d, want %d", i, p.GlobalTextOffset, total)
		}
		total += p.Len()
	}
	if total != rt.TotalLen() {
		t.Fatalf("sum of paragraph lengths %d != TotalLen %d", total, rt.TotalLen())
	}
}

func TestRemoveIsInsertWithNilSource(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("hello world"), nil, 0)
	rt.Remove(Range{Start: 5, End: 11})
	if got := textOf(rt)[0]; got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestSetAttributeHasAttributeRoundtrip(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("hello"), nil, 0)
	bold := Attribute{Kind: KindFontWeight, Value: "bold"}
	rt.SetAttribute(Range{Start: 1, End: 4}, bold, 0)

	if !rt.HasAttribute(Range{Start: 1, End: 4}, bold) {
		t.Fatalf("expected attribute to fully cover [1,4)")
	}
	if rt.HasAttribute(Range{Start: 0, End: 4}, bold) {
		t.Fatalf("attribute should not cover [0,4)")
	}
}

func TestAppendParagraphOpensNewParagraph(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("abc"), nil, 0)
	rt.AppendParagraph(nil)
	paras := textOf(rt)
	if len(paras) != 2 || paras[0] != "abc\n" || paras[1] != "" {
		t.Fatalf("unexpected paragraphs: %#v", paras)
	}
}

func TestRemoveIfCoalescesRuns(t *testing.T) {
	rt := NewRichText()
	rt.AppendUTF32([]rune("a  b   c"), nil, 0)
	rt.RemoveIf(func(r rune) bool { return r == ' ' })
	if got := textOf(rt)[0]; got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}
