package reflayout

import (
	"testing"

	"github.com/npillmayer/uax/bidi"

	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/layout"
)

func TestEngineLaysOutSingleLineWithoutWidth(t *testing.T) {
	text := &skribidi.AttributedText{}
	text.AppendUTF8([]byte("hello world"), nil, 0)

	e := NewEngine(nil, nil)
	ll, err := e.LayoutParagraph(layout.Params{}, text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := ll.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single line with no width constraint, got %d", len(lines))
	}
	if lines[0].TextRange.Start != 0 || lines[0].TextRange.End != 11 {
		t.Fatalf("expected the line to span the whole paragraph, got %+v", lines[0].TextRange)
	}
	if ll.ResolvedDirection() != layout.LTR {
		t.Fatalf("expected LTR for plain ASCII text")
	}
}

func TestEngineWrapsAtWidth(t *testing.T) {
	text := &skribidi.AttributedText{}
	text.AppendUTF8([]byte("aaaa bbbb cccc"), nil, 0)

	e := NewEngine(nil, nil)
	ll, err := e.LayoutParagraph(layout.Params{Width: 9}, text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := ll.Lines()
	if len(lines) < 2 {
		t.Fatalf("expected the text to wrap across more than one line at width 9, got %d", len(lines))
	}
}

func TestGraphemeOracleTreatsEveryOffsetAsBoundaryForASCII(t *testing.T) {
	g := NewGraphemeOracle()
	cps := []rune("abc")
	for i := 0; i <= len(cps); i++ {
		if !g.IsGraphemeBoundary(cps, i) {
			t.Fatalf("expected offset %d to be a grapheme boundary in plain ASCII", i)
		}
	}
}

func TestWordOracleSplitsOnWhitespace(t *testing.T) {
	w := WordOracle{}
	cps := []rune("hi there")
	if !w.IsWordBoundary(cps, 2) {
		t.Fatalf("expected a word boundary right after 'hi'")
	}
	if w.IsWordBoundary(cps, 1) {
		t.Fatalf("expected no word boundary inside 'hi'")
	}
}

func TestResolveParagraphDirectionLTRForASCII(t *testing.T) {
	dt := resolveParagraphDirection([]rune("hello"), bidi.LeftToRight)
	if dt.at(0) != layout.LTR {
		t.Fatalf("expected LTR direction for plain ASCII text")
	}
}
