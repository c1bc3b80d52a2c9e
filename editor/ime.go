package editor

import "github.com/npillmayer/skribidi"

// SetComposition begins or updates an IME composition overlay. On
// the first call the composition base is the ordered start of the current
// selection; if that selection was non-empty it is deleted from the
// document right away, with allow_amend=true so a later CommitComposition
// merges into the same undo state instead of producing a second one.
// caretOffsetInCPs is the IME's own caret position relative to cps.
func (e *Editor) SetComposition(cps []rune, caretOffsetInCPs int) {
	if !e.compositionActive {
		sel := e.selection.Ordered()
		e.compositionBase = sel.Start.Offset
		if !sel.IsCaret() {
			e.replace(skribidi.Range{Start: sel.Start.Offset, End: sel.End.Offset}, nil, true)
			e.compositionBase = e.selection.Start.Offset
		}
		e.compositionActive = true
	}
	e.compositionCaret = caretOffsetInCPs
	e.compositionText = append(e.compositionText[:0], cps...)
	e.rl.SetIMEOverlay(true, e.compositionBase)
	e.relayout()
}

// CommitComposition clears the overlay and inserts the committed text (or,
// if cps is nil, whatever composition text SetComposition last recorded)
// as a normal edit. A commit with no prior SetComposition is treated as a
// plain insert at the current selection.
func (e *Editor) CommitComposition(cps []rune) {
	if !e.compositionActive {
		if len(cps) == 0 {
			return
		}
		e.insertRunesAt(e.Selection().AsRange(), cps)
		return
	}
	text := e.compositionText
	if cps != nil {
		text = cps
	}
	base := e.compositionBase
	e.compositionActive = false
	e.compositionText = nil
	e.rl.SetIMEOverlay(false, 0)
	e.insertRunesAt(skribidi.Range{Start: base, End: base}, text)
}

// ClearComposition removes the overlay without inserting anything,
// collapsing the selection back to the composition base.
func (e *Editor) ClearComposition() {
	if !e.compositionActive {
		return
	}
	e.compositionActive = false
	e.compositionText = nil
	e.rl.SetIMEOverlay(false, 0)
	e.relayout()
	pos := skribidi.TextPosition{Offset: e.compositionBase, Affinity: skribidi.AffinityTrailing}
	e.selection = skribidi.TextRange{Start: pos, End: pos}
	e.deriveActiveAttributes()
}
