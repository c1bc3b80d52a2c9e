package editor

import (
	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/caret"
	"github.com/npillmayer/skribidi/layout"
	"github.com/npillmayer/skribidi/undo"
)

// Editor is the stateful façade of the rich-text editing surface. It
// borrows a Layout and a Font collaborator and owns everything else: the
// document, the layout cache, the undo log, the selection, active
// attributes, and the IME composition overlay.
type Editor struct {
	// Engine lays out one paragraph at a time; Font resolves font
	// metrics for the preview-caret feature. Both are borrowed
	// collaborators: the editor never owns their lifetime.
	Engine layout.Layout
	Font   layout.Font

	// Oracle is the grapheme-break oracle character motion and
	// resolution consult; WordOracle is its word-motion counterpart.
	// Oracle may be nil, in which case every offset is treated as a
	// grapheme boundary. WordOracle has no such fallback: word motion and
	// WORD-mode clicks call it directly.
	Oracle     skribidi.GraphemeBreaks
	WordOracle caret.WordBreaks

	// Behavior selects the DEFAULT/MACOS key-binding convention;
	// CaretMode selects SIMPLE/SKRIBIDI character motion.
	Behavior  caret.Behavior
	CaretMode caret.Mode

	// Params feeds layout.RichLayout.SetFromRichText: the base attribute
	// chain, container size and vertical alignment.
	Params layout.Params

	// InputFilter, if set, may mutate the scratch rich-text built for a
	// user-initiated insert before it is applied; if it empties the
	// text the insert is skipped.
	InputFilter func(scratch *skribidi.RichText)

	// ChangeCallback fires once per externally visible mutation, never
	// on selection-only changes. It MUST NOT mutate the editor.
	ChangeCallback func()

	rt   *skribidi.RichText
	rl   *layout.RichLayout
	undo *undo.Engine

	selection        skribidi.TextRange
	activeAttributes []skribidi.Attribute
	pref             caret.PreferredX
	drag             caret.DragState

	compositionActive bool
	compositionBase   int
	compositionCaret  int
	compositionText   []rune
}

// NewEditor returns an Editor over a fresh, empty document.
func NewEditor(engine layout.Layout, font layout.Font, oracle skribidi.GraphemeBreaks, wordOracle caret.WordBreaks, maxUndoLevels int) *Editor {
	e := &Editor{
		Engine:     engine,
		Font:       font,
		Oracle:     oracle,
		WordOracle: wordOracle,
		Behavior:   caret.DefaultBehavior,
		CaretMode:  caret.Skribidi,
		rt:         skribidi.NewRichText(),
		rl:         layout.NewRichLayout(),
		undo:       undo.NewEngine(maxUndoLevels),
		selection: skribidi.TextRange{
			Start: skribidi.TextPosition{Affinity: skribidi.AffinityTrailing},
			End:   skribidi.TextPosition{Affinity: skribidi.AffinityTrailing},
		},
	}
	e.relayout()
	return e
}

// Text returns the live document. Callers must not mutate it directly;
// use the Editor's own edit methods so the layout cache and undo log stay
// in sync.
func (e *Editor) Text() *skribidi.RichText { return e.rt }

// Layout returns the live layout cache.
func (e *Editor) Layout() *layout.RichLayout { return e.rl }

// Selection resolves the sentinel "current selection": the composition
// selection while an IME composition is active, else the stored
// selection.
func (e *Editor) Selection() skribidi.TextRange {
	if e.compositionActive {
		pos := skribidi.TextPosition{Offset: e.compositionBase + e.compositionCaret, Affinity: skribidi.AffinityTrailing}
		return skribidi.TextRange{Start: pos, End: pos}
	}
	return e.selection
}

// SetSelection replaces the stored selection directly (e.g. a
// programmatic "select all"), clearing preferred-X and re-deriving active
// attributes. It has no effect while an IME composition is active: the
// composition owns caret placement until committed or cleared.
func (e *Editor) SetSelection(r skribidi.TextRange) {
	if e.compositionActive {
		return
	}
	e.selection = r
	e.pref.Clear()
	e.deriveActiveAttributes()
}

// ActiveAttributes returns the attributes that will be applied to the
// next typed character.
func (e *Editor) ActiveAttributes() []skribidi.Attribute { return e.activeAttributes }

// CanUndo/CanRedo report whether Undo/Redo would do anything.
func (e *Editor) CanUndo() bool { return e.undo.CanUndo() }
func (e *Editor) CanRedo() bool { return e.undo.CanRedo() }

// Undo reverts the most recent transaction.
func (e *Editor) Undo() {
	sel, ok := e.undo.ApplyUndo(e.rt, e.rl.ApplyChange)
	if !ok {
		return
	}
	e.selection = sel
	e.relayout()
	e.deriveActiveAttributes()
	e.fireChange()
}

// Redo reapplies the most recently undone transaction.
func (e *Editor) Redo() {
	sel, ok := e.undo.ApplyRedo(e.rt, e.rl.ApplyChange)
	if !ok {
		return
	}
	e.selection = sel
	e.relayout()
	e.deriveActiveAttributes()
	e.fireChange()
}

func (e *Editor) relayout() error {
	if e.Engine == nil {
		return nil
	}
	return e.rl.SetFromRichText(e.Params, e.rt, e.Engine, e.compositionText)
}

func (e *Editor) fireChange() {
	if e.ChangeCallback != nil {
		e.ChangeCallback()
	}
}

// deriveActiveAttributes re-derives ActiveAttributes from the grapheme
// immediately before the caret. It is a no-op when the current
// selection is not a caret (a non-empty selection has no "typed input"
// attribute set of its own; toggle/apply act on the document directly).
func (e *Editor) deriveActiveAttributes() {
	sel := e.Selection()
	if !sel.IsCaret() {
		return
	}
	pp := e.rt.Resolve(sel.End, skribidi.IgnoreAffinity, e.Oracle)
	local := pp.LocalOffset - 1
	if local < 0 {
		e.activeAttributes = nil
		return
	}
	p := &e.rt.Paragraphs[pp.ParagraphIdx]
	var attrs []skribidi.Attribute
	for _, s := range p.Text.Spans() {
		if s.Contains(local) {
			attrs = append(attrs, s.Attribute)
		}
	}
	e.activeAttributes = attrs
}

// replace is the shared structural edit: r is captured by the undo engine
// before mutation (allowAmend is recorded on the captured state), then
// rt.Insert(r, source) applies it and the layout cache, selection and
// active attributes are brought back in sync. It returns the resulting
// caret position.
func (e *Editor) replace(r skribidi.Range, source *skribidi.RichText, allowAmend bool) skribidi.TextPosition {
	selBefore := e.Selection()
	e.undo.Begin(selBefore)
	e.undo.CaptureText(e.rt, r, source, allowAmend)
	ch := e.rt.Insert(r, source)
	e.rl.ApplyChange(ch)
	e.relayout()
	// Re-align the raw edit_end_position unconditionally rather than
	// trusting its affinity, so a resulting caret always lands TRAILING
	// the edit regardless of where it fell mid-paragraph or at a
	// paragraph boundary.
	pos := ch.EditEndPosition
	pos.Affinity = skribidi.AffinityTrailing
	selAfter := skribidi.TextRange{Start: pos, End: pos}
	e.undo.End(selAfter)
	e.selection = selAfter
	e.pref.Clear()
	e.deriveActiveAttributes()
	e.fireChange()
	return pos
}

// insertRunesAt is the shared amend-eligible insertion path used by typed
// characters and IME commits: a pure insertion at r
// (r.Start == r.End, or a selection to replace first) that may coalesce
// into a preceding amend-eligible undo state.
func (e *Editor) insertRunesAt(r skribidi.Range, cps []rune) {
	if r.Start != r.End {
		src := skribidi.NewRichText()
		if len(cps) > 0 {
			src.AppendUTF32(cps, e.activeAttributes, 0)
		}
		if e.InputFilter != nil {
			e.InputFilter(src)
		}
		if src.TotalLen() == 0 {
			return
		}
		e.replace(r, src, true)
		return
	}

	src := skribidi.NewRichText()
	if len(cps) > 0 {
		src.AppendUTF32(cps, e.activeAttributes, 0)
	}
	if e.InputFilter != nil {
		e.InputFilter(src)
	}
	if src.TotalLen() == 0 {
		return
	}

	selBefore := skribidi.TextRange{
		Start: skribidi.TextPosition{Offset: r.Start, Affinity: skribidi.AffinityTrailing},
		End:   skribidi.TextPosition{Offset: r.Start, Affinity: skribidi.AffinityTrailing},
	}
	ch := e.rt.Insert(r, src)
	e.rl.ApplyChange(ch)
	e.relayout()
	pos := ch.EditEndPosition
	pos.Affinity = skribidi.AffinityTrailing
	selAfter := skribidi.TextRange{Start: pos, End: pos}
	e.undo.RecordTypedInsert(e.rt, r, src, selBefore, selAfter)
	e.selection = selAfter
	e.pref.Clear()
	e.deriveActiveAttributes()
	e.fireChange()
}

// InsertChar types a single rune at the caret using ActiveAttributes,
// amend-coalescing into the previous keystroke's undo state when eligible.
// A non-empty selection is replaced first.
func (e *Editor) InsertChar(r rune) {
	e.insertRunesAt(e.Selection().AsRange(), []rune{r})
}

// deleteRange removes r as a single, non-amendable undo state.
func (e *Editor) deleteRange(r skribidi.Range) {
	if r.Void() {
		return
	}
	e.replace(r, nil, false)
}

// Backspace performs a backspace at the caret (or deletes the selection,
// if non-empty), using the 14-state cluster machine.
func (e *Editor) Backspace() {
	sel := e.Selection()
	if !sel.IsCaret() {
		e.deleteRange(sel.AsRange())
		return
	}
	e.deleteRange(caret.Backspace(e.rt, sel.End))
}

// Delete removes one grapheme forward of the caret (or the selection, if
// non-empty). At the end of a non-last paragraph this removes the
// paragraph separator, merging it with the next.
func (e *Editor) Delete() {
	sel := e.Selection()
	if !sel.IsCaret() {
		e.deleteRange(sel.AsRange())
		return
	}
	pp := e.rt.Resolve(sel.End, skribidi.IgnoreAffinity, e.Oracle)
	p := &e.rt.Paragraphs[pp.ParagraphIdx]
	next := p.Text.NextGraphemeOffset(pp.LocalOffset, e.Oracle)
	e.deleteRange(skribidi.Range{Start: pp.GlobalOffset, End: p.GlobalTextOffset + next})
}

// InsertLineBreak splits the paragraph at the caret (Enter), a
// non-amendable edit.
func (e *Editor) InsertLineBreak() {
	src := skribidi.NewRichText()
	src.AppendUTF32([]rune{'\n'}, nil, 0)
	e.replace(e.Selection().AsRange(), src, false)
}

// ToggleAttribute implements the per-kind toggle rule. On a caret
// selection it flips ActiveAttributes (the next typed character's
// formatting); on a non-empty selection, if every code point already
// carries an equal span of a.Kind the span is cleared, otherwise it is
// applied to the whole selection.
func (e *Editor) ToggleAttribute(a skribidi.Attribute, flags skribidi.SpanFlags) {
	sel := e.Selection()
	if sel.IsCaret() {
		e.toggleActiveAttribute(a)
		return
	}
	r := sel.AsRange()
	if e.rt.HasAttribute(r, a) {
		e.clearAttributeRange(r, a)
	} else {
		e.applyAttributeRange(r, a, flags)
	}
}

// ApplyAttribute unconditionally applies a, the non-toggling counterpart
// to ToggleAttribute.
func (e *Editor) ApplyAttribute(a skribidi.Attribute, flags skribidi.SpanFlags) {
	sel := e.Selection()
	if sel.IsCaret() {
		e.setActiveAttribute(a)
		return
	}
	e.applyAttributeRange(sel.AsRange(), a, flags)
}

func (e *Editor) toggleActiveAttribute(a skribidi.Attribute) {
	for i, ex := range e.activeAttributes {
		if ex.Matches(a) {
			if ex.EqualPayload(a) {
				e.activeAttributes = append(e.activeAttributes[:i], e.activeAttributes[i+1:]...)
				return
			}
			e.activeAttributes[i] = a
			return
		}
	}
	e.activeAttributes = append(e.activeAttributes, a)
}

func (e *Editor) setActiveAttribute(a skribidi.Attribute) {
	for i, ex := range e.activeAttributes {
		if ex.Matches(a) {
			e.activeAttributes[i] = a
			return
		}
	}
	e.activeAttributes = append(e.activeAttributes, a)
}

func (e *Editor) applyAttributeRange(r skribidi.Range, a skribidi.Attribute, flags skribidi.SpanFlags) {
	sel := e.Selection()
	e.undo.Begin(sel)
	capture := e.undo.BeginAttributeCapture(e.rt, r)
	e.rt.SetAttribute(r, a, flags)
	e.undo.EndAttributeCapture(e.rt, capture)
	e.undo.End(sel)
	e.relayout()
	e.fireChange()
}

func (e *Editor) clearAttributeRange(r skribidi.Range, a skribidi.Attribute) {
	sel := e.Selection()
	e.undo.Begin(sel)
	capture := e.undo.BeginAttributeCapture(e.rt, r)
	e.rt.ClearAttribute(r, a)
	e.undo.EndAttributeCapture(e.rt, capture)
	e.undo.End(sel)
	e.relayout()
	e.fireChange()
}

// CaretInfo returns the caret geometry at the current selection's active
// end. As a preview-caret-metrics feature, if ActiveAttributes specify a
// font-affecting value different from the live span at the caret, the
// Font collaborator is queried under the active ▷ paragraph ▷ layout
// attribute chain and its metrics override the geometry RichLayout
// reports.
func (e *Editor) CaretInfo() layout.CaretInfo {
	sel := e.Selection()
	info := e.rl.CaretInfo(sel.End, e.rt)
	if e.Font == nil || len(e.activeAttributes) == 0 {
		return info
	}
	pp := e.rt.Resolve(sel.End, skribidi.IgnoreAffinity, e.Oracle)
	p := &e.rt.Paragraphs[pp.ParagraphIdx]
	if !activeFontDiffersFromLive(e.activeAttributes, p, pp.LocalOffset) {
		return info
	}
	chain := mergeAttrChain(e.activeAttributes, p.ParagraphAttributes, e.Params.Attributes)
	lang := stringAttr(chain, skribidi.KindLanguage, "")
	family := stringAttr(chain, skribidi.KindFontFamily, "")
	weight := intAttr(chain, skribidi.KindFontWeight, 400)
	style := intAttr(chain, skribidi.KindFontStyle, 0)
	stretch := intAttr(chain, skribidi.KindFontStretch, 100)
	handles := e.Font.MatchFonts(lang, "", family, weight, style, stretch)
	if len(handles) == 0 {
		return info
	}
	m := e.Font.FontMetrics(handles[0])
	info.Ascender, info.Descender, info.Slope = m.Ascender, m.Descender, m.Slope
	return info
}
