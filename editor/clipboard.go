package editor

import "github.com/npillmayer/skribidi"

// SelectionRichText returns an independent copy of the current selection,
// attributes included.
func (e *Editor) SelectionRichText() *skribidi.RichText {
	return e.rt.Sub(e.Selection().AsRange())
}

// SelectionTextUTF32 returns the code points of the current selection.
func (e *Editor) SelectionTextUTF32() []rune {
	sub := e.SelectionRichText()
	var out []rune
	for i := range sub.Paragraphs {
		out = append(out, sub.Paragraphs[i].Text.CodePoints...)
	}
	return out
}

// SelectionTextUTF8 returns the current selection as a UTF-8 string.
func (e *Editor) SelectionTextUTF8() string {
	return string(e.SelectionTextUTF32())
}

// PasteUTF32 inserts cps at the current selection as plain text, carrying
// ActiveAttributes. The paste is its own undo state and is never merged
// with surrounding typing.
func (e *Editor) PasteUTF32(cps []rune) {
	src := skribidi.NewRichText()
	src.AppendUTF32(cps, e.activeAttributes, 0)
	if e.InputFilter != nil {
		e.InputFilter(src)
	}
	if src.TotalLen() == 0 {
		return
	}
	e.replace(e.Selection().AsRange(), src, false)
}

// PasteUTF8 decodes s and delegates to PasteUTF32.
func (e *Editor) PasteUTF8(s string) {
	e.PasteUTF32([]rune(s))
}

// PasteText is an alias for PasteUTF8, matching the clipboard surface's
// paste_text naming.
func (e *Editor) PasteText(s string) {
	e.PasteUTF8(s)
}

// PasteRichText replaces the current selection with an independent
// RichText, preserving its attributes. Like PasteUTF32/PasteUTF8, this
// is never amend-eligible: a structured paste is not coalesced with
// surrounding typing.
func (e *Editor) PasteRichText(src *skribidi.RichText) {
	e.replace(e.Selection().AsRange(), src, false)
}

// Cut copies the current selection, then deletes it.
func (e *Editor) Cut() *skribidi.RichText {
	cut := e.SelectionRichText()
	e.deleteRange(e.Selection().AsRange())
	return cut
}
