package undo

import "github.com/npillmayer/skribidi"

// Kind discriminates the two state shapes a transaction can hold.
type Kind uint8

const (
	TextEdit Kind = iota
	AttributeEdit
)

// State is one captured edit within a Transaction. For TextEdit,
// RemovedText/InsertedText hold the replaced and replacing rich text; for
// AttributeEdit they hold Sub snapshots of the range taken before and
// after the edit. Those snapshots copy the code points too, which are
// identical in both, since attribute edits never change length; only
// their spans differ.
type State struct {
	Kind          Kind
	RemovedRange  skribidi.Range
	InsertedRange skribidi.Range
	RemovedText   *skribidi.RichText
	InsertedText  *skribidi.RichText
	AllowAmend    bool
}

// Transaction groups the states produced between a matching Begin/End
// pair, along with the selection to restore on undo/redo.
type Transaction struct {
	SelectionBefore skribidi.TextRange
	SelectionAfter  skribidi.TextRange
	States          []State
}

// Engine is the undo/redo log itself: a bounded stack of transactions plus
// the nesting depth of the current begin/end pair.
type Engine struct {
	MaxUndoLevels int

	undoStack []*Transaction
	redoStack []*Transaction
	depth     int
}

// NewEngine returns an Engine bounded to maxUndoLevels transactions (0 or
// negative means unbounded).
func NewEngine(maxUndoLevels int) *Engine {
	return &Engine{MaxUndoLevels: maxUndoLevels}
}

// Begin opens (or, if already open, nests into) a transaction. Only the
// outermost Begin/End pair materializes: on the outermost Begin, any
// future (redo-able) transactions are discarded, the undo stack evicts its
// oldest entry if it would exceed MaxUndoLevels, and a new transaction
// capturing selectionBefore is pushed.
func (e *Engine) Begin(selectionBefore skribidi.TextRange) {
	e.depth++
	if e.depth > 1 {
		return
	}
	e.redoStack = nil
	e.undoStack = append(e.undoStack, &Transaction{SelectionBefore: selectionBefore})
	if e.MaxUndoLevels > 0 && len(e.undoStack) > e.MaxUndoLevels {
		e.undoStack = e.undoStack[1:]
	}
}

// End closes a transaction level, recording selectionAfter. On the
// outermost End, a transaction that captured zero states is discarded.
func (e *Engine) End(selectionAfter skribidi.TextRange) {
	if e.depth == 0 {
		tracer().Errorf("%v: End called with no matching Begin, ignoring", ErrIllegalArguments)
		return
	}
	e.depth--
	if e.depth > 0 || len(e.undoStack) == 0 {
		return
	}
	top := e.undoStack[len(e.undoStack)-1]
	top.SelectionAfter = selectionAfter
	if len(top.States) == 0 {
		e.undoStack = e.undoStack[:len(e.undoStack)-1]
	}
}

func (e *Engine) current() *Transaction {
	if e.depth == 0 || len(e.undoStack) == 0 {
		return nil
	}
	return e.undoStack[len(e.undoStack)-1]
}

// CaptureText records a text replacement of range r (in rt, before
// mutation) by inserted (nil means a pure removal). It must be called
// before rt.Insert/Remove applies the edit, since it snapshots the
// replaced text itself.
//
// Amend rule: if the previous state in the current transaction is a
// TextEdit with AllowAmend set and this operation is a pure insertion
// starting exactly where the previous state's inserted range ended, the
// inserted text is appended into the previous state instead of pushing a
// new one. This intentionally does not require the previous state's own
// removal to be empty: it also covers set_composition's "clear a non-empty
// selection, then let commit_composition's insert merge into that same
// state" case.
func (e *Engine) CaptureText(rt *skribidi.RichText, r skribidi.Range, inserted *skribidi.RichText, allowAmend bool) {
	txn := e.current()
	if txn == nil {
		return
	}
	insertedLen := 0
	if inserted != nil {
		insertedLen = inserted.TotalLen()
	}

	if n := len(txn.States); n > 0 {
		prev := &txn.States[n-1]
		if prev.Kind == TextEdit && prev.AllowAmend &&
			r.Start == r.End && r.Start == prev.InsertedRange.End {
			tail := prev.InsertedText.TotalLen()
			prev.InsertedText.Insert(skribidi.Range{Start: tail, End: tail}, inserted)
			prev.InsertedRange.End += insertedLen
			return
		}
	}

	removed := rt.Sub(r)
	ins := skribidi.NewRichText()
	if inserted != nil {
		ins = inserted.Clone()
	}
	txn.States = append(txn.States, State{
		Kind:          TextEdit,
		RemovedRange:  r,
		InsertedRange: skribidi.Range{Start: r.Start, End: r.Start + insertedLen},
		RemovedText:   removed,
		InsertedText:  ins,
		AllowAmend:    allowAmend,
	})
}

// RecordTypedInsert is the entry point insert_codepoint uses as its amend
// policy for typing. r must be a pure insertion (r.Start ==
// r.End). If the top transaction's last state is still amend-eligible,
// the insertion merges into it with no new transaction; otherwise a
// fresh, single-state transaction is opened and closed around it. Unlike
// CaptureText, this may be called after rt already applied the insert,
// since a pure insertion's removed text is always empty regardless of
// capture order.
func (e *Engine) RecordTypedInsert(rt *skribidi.RichText, r skribidi.Range, inserted *skribidi.RichText, selectionBefore, selectionAfter skribidi.TextRange) {
	if n := len(e.undoStack); n > 0 {
		top := e.undoStack[n-1]
		if m := len(top.States); m > 0 {
			prev := &top.States[m-1]
			if prev.Kind == TextEdit && prev.AllowAmend &&
				r.Start == r.End && r.Start == prev.InsertedRange.End {
				tail := prev.InsertedText.TotalLen()
				prev.InsertedText.Insert(skribidi.Range{Start: tail, End: tail}, inserted)
				prev.InsertedRange.End += inserted.TotalLen()
				top.SelectionAfter = selectionAfter
				e.redoStack = nil
				return
			}
		}
	}
	e.Begin(selectionBefore)
	e.CaptureText(rt, r, inserted, true)
	e.End(selectionAfter)
}

// AttrCapture is the in-flight handle between BeginAttributeCapture and
// EndAttributeCapture.
type AttrCapture struct {
	r      skribidi.Range
	before *skribidi.RichText
}

// BeginAttributeCapture snapshots the attribute spans covering r before an
// attribute edit is applied.
func (e *Engine) BeginAttributeCapture(rt *skribidi.RichText, r skribidi.Range) *AttrCapture {
	if e.current() == nil {
		return nil
	}
	return &AttrCapture{r: r, before: rt.Sub(r)}
}

// EndAttributeCapture snapshots the spans after the edit and pushes an
// AttributeEdit state. Call after applying the attribute edit to rt.
func (e *Engine) EndAttributeCapture(rt *skribidi.RichText, c *AttrCapture) {
	if c == nil {
		return
	}
	txn := e.current()
	if txn == nil {
		return
	}
	after := rt.Sub(c.r)
	txn.States = append(txn.States, State{
		Kind:          AttributeEdit,
		RemovedRange:  c.r,
		InsertedRange: c.r,
		RemovedText:   c.before,
		InsertedText:  after,
	})
}

// CanUndo reports whether ApplyUndo would do anything.
func (e *Engine) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether ApplyRedo would do anything.
func (e *Engine) CanRedo() bool { return len(e.redoStack) > 0 }

// ApplyUndo pops the most recent transaction and replays its states in
// reverse onto rt, invoking applyChange (if non-nil) with the Change each
// replayed edit produces so the caller can keep a RichLayout in sync. It
// returns the selection to restore and whether a transaction was popped;
// undo past the oldest transaction is a no-op.
func (e *Engine) ApplyUndo(rt *skribidi.RichText, applyChange func(skribidi.Change)) (skribidi.TextRange, bool) {
	if len(e.undoStack) == 0 {
		return skribidi.TextRange{}, false
	}
	txn := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]

	for i := len(txn.States) - 1; i >= 0; i-- {
		s := txn.States[i]
		switch s.Kind {
		case TextEdit:
			ch := rt.Insert(s.InsertedRange, s.RemovedText)
			if applyChange != nil {
				applyChange(ch)
			}
		case AttributeEdit:
			rt.InsertAttributes(s.InsertedRange, s.RemovedText)
		}
	}
	e.redoStack = append(e.redoStack, txn)
	return txn.SelectionBefore, true
}

// ApplyRedo pops the most recent undone transaction and replays its states
// forward onto rt.
func (e *Engine) ApplyRedo(rt *skribidi.RichText, applyChange func(skribidi.Change)) (skribidi.TextRange, bool) {
	if len(e.redoStack) == 0 {
		return skribidi.TextRange{}, false
	}
	txn := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]

	for _, s := range txn.States {
		switch s.Kind {
		case TextEdit:
			ch := rt.Insert(s.RemovedRange, s.InsertedText)
			if applyChange != nil {
				applyChange(ch)
			}
		case AttributeEdit:
			rt.InsertAttributes(s.RemovedRange, s.InsertedText)
		}
	}
	e.undoStack = append(e.undoStack, txn)
	return txn.SelectionAfter, true
}
