package skribidi

import "testing"

// boundaryEvery reports a boundary at every other offset, used to exercise
// the nil-oracle fallback versus an actual oracle.
type boundaryEvery struct{ n int }

func (b boundaryEvery) IsGraphemeBoundary(cps []rune, offset int) bool {
	return offset%b.n == 0
}

func TestAlignGraphemeOffsetNilOracleIsNoOp(t *testing.T) {
	var at AttributedText
	at.Append([]rune("hello"))
	if got := at.AlignGraphemeOffset(3, nil); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestAlignGraphemeOffsetSnapsBack(t *testing.T) {
	var at AttributedText
	at.Append([]rune("abcdef"))
	oracle := boundaryEvery{n: 2}
	if got := at.AlignGraphemeOffset(3, oracle); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestNextPrevGraphemeOffset(t *testing.T) {
	var at AttributedText
	at.Append([]rune("abcdef"))
	oracle := boundaryEvery{n: 2}
	if got := at.NextGraphemeOffset(2, oracle); got != 4 {
		t.Fatalf("next: got %d, want 4", got)
	}
	if got := at.PrevGraphemeOffset(4, oracle); got != 2 {
		t.Fatalf("prev: got %d, want 2", got)
	}
}

func TestSetAttributeSingletonPerKind(t *testing.T) {
	var at AttributedText
	at.Append([]rune("hello world"))
	at.AddAttribute(Range{Start: 0, End: 5}, Attribute{Kind: KindFontWeight, Value: "bold"}, 0)
	at.AddAttribute(Range{Start: 2, End: 8}, Attribute{Kind: KindFontWeight, Value: "italic"}, 0)

	// offset 3 should now carry exactly one KindFontWeight span: "italic".
	count := 0
	for _, s := range at.Spans() {
		if s.Attribute.Kind == KindFontWeight && s.Contains(3) {
			count++
			if s.Attribute.Value != "italic" {
				t.Fatalf("expected italic to win at offset 3, got %v", s.Attribute.Value)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 live span at offset 3, got %d", count)
	}
}
