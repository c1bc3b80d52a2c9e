package editor

import (
	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/caret"
)

// Key enumerates the keyboard surface the editor dispatches on.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
)

// Modifiers is the keyboard modifier bitmask.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Control
	Command
	Option
)

// HandleKey dispatches a keypress per the key-binding table, honoring
// Editor.Behavior for the DEFAULT/MACOS variants.
func (e *Editor) HandleKey(key Key, mods Modifiers) {
	shift := mods&Shift != 0
	switch key {
	case KeyLeft, KeyRight:
		e.handleHorizontal(key, mods, shift)
	case KeyUp, KeyDown:
		e.handleVertical(key, mods, shift)
	case KeyHome:
		e.pref.Clear()
		e.moveTo(caret.LineStart(e.rt, e.rl, e.Selection().End), shift)
	case KeyEnd:
		e.pref.Clear()
		e.moveTo(caret.LineEndPos(e.rt, e.rl, e.Selection().End), shift)
	case KeyEnter:
		e.InsertLineBreak()
	case KeyBackspace:
		e.Backspace()
	case KeyDelete:
		e.Delete()
	}
}

func (e *Editor) handleHorizontal(key Key, mods Modifiers, shift bool) {
	pos := e.Selection().End
	forward := key == KeyRight
	wordMove := (e.Behavior == caret.DefaultBehavior && mods&Control != 0) ||
		(e.Behavior == caret.MacOSBehavior && mods&Option != 0)
	lineMove := e.Behavior == caret.MacOSBehavior && mods&Command != 0

	var next skribidi.TextPosition
	switch {
	case lineMove && forward:
		next = caret.LineEndPos(e.rt, e.rl, pos)
	case lineMove:
		next = caret.LineStart(e.rt, e.rl, pos)
	case wordMove && forward:
		next = caret.ForwardWord(e.rt, e.WordOracle, pos, e.Behavior)
	case wordMove:
		next = caret.BackwardWord(e.rt, e.WordOracle, pos, e.Behavior)
	case forward:
		next = caret.Forward(e.rt, e.rl, e.Oracle, pos, e.CaretMode, shift)
	default:
		next = caret.Backward(e.rt, e.rl, e.Oracle, pos, e.CaretMode, shift)
	}
	e.pref.Clear()
	e.moveTo(next, shift)
}

func (e *Editor) handleVertical(key Key, mods Modifiers, shift bool) {
	pos := e.Selection().End
	if e.Behavior == caret.MacOSBehavior && mods&Command != 0 {
		e.pref.Clear()
		if key == KeyUp {
			e.moveTo(caret.DocumentStart(), shift)
		} else {
			e.moveTo(caret.DocumentEnd(e.rt), shift)
		}
		return
	}
	dir := caret.Up
	if key == KeyDown {
		dir = caret.Down
	}
	next := caret.LineVertical(e.rt, e.rl, pos, dir, &e.pref)
	e.moveTo(next, shift)
}

// moveTo collapses the selection to next, or (if shift is set) extends
// the stored selection's End to next while keeping Start fixed. It has no
// effect while an IME composition is active.
func (e *Editor) moveTo(next skribidi.TextPosition, shift bool) {
	if e.compositionActive {
		return
	}
	if shift {
		e.selection = skribidi.TextRange{Start: e.selection.Start, End: next}
	} else {
		e.selection = skribidi.TextRange{Start: next, End: next}
	}
	e.deriveActiveAttributes()
}
