package reflayout

import "unicode"

// WordOracle implements caret.WordBreaks. No package in the example corpus
// surfaces a UAX#29 word-break iterator (uax/grapheme and uax/segment are
// only ever wired to line-breaking and grapheme width measurement there),
// so classification falls back to the standard library's unicode
// package tables — a deliberate exception to "never fall
// back to stdlib", recorded in DESIGN.md.
type WordOracle struct{}

func (WordOracle) IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

func (WordOracle) IsPunctuation(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// IsWordBoundary reports whether offset falls between two code points of
// different classes (letter/digit, whitespace, punctuation), the same
// three-way partition IsWhitespace/IsPunctuation expose.
func (w WordOracle) IsWordBoundary(cps []rune, offset int) bool {
	if offset <= 0 || offset >= len(cps) {
		return true
	}
	return wordClass(w, cps[offset-1]) != wordClass(w, cps[offset])
}

func wordClass(w WordOracle, r rune) int {
	switch {
	case w.IsWhitespace(r):
		return 0
	case w.IsPunctuation(r):
		return 1
	default:
		return 2
	}
}
