package caret

import "github.com/npillmayer/skribidi"

// ClickMode is the unit a drag selection extends by.
type ClickMode uint8

const (
	ClickChar ClickMode = iota
	ClickWord
	ClickLine
)

// doubleClickWindow is the maximum gap between clicks that counts towards
// the click-count escalation.
const doubleClickWindow = 0.4

// DragState tracks an in-progress mouse selection: the click count that
// picked CHAR/WORD/LINE mode, and the initial (pre-drag) selection that
// subsequent drags extend from. It is promoted out of editor.Editor so
// other façades could reuse the same state machine, though only
// editor.Editor currently constructs one.
type DragState struct {
	Mode                     ClickMode
	InitialStart, InitialEnd skribidi.TextPosition

	lastClickTime float64
	clickCount    int
}

// Expander resolves a hit point to the word or line selection it falls in,
// supplied by the caller (the editor façade, which owns access to
// RichLayout).
type Expander func(hit skribidi.TextPosition) (start, end skribidi.TextPosition)

// Click registers a mouse-down at hit and timeSec (seconds, monotonic for
// the purposes of the double-click window), returning the resulting
// selection. A click within doubleClickWindow of the previous one
// escalates the click count (1→2→3→1...), selecting CHAR/WORD/LINE mode.
func (d *DragState) Click(hit skribidi.TextPosition, timeSec float64, wordAt, lineAt Expander) skribidi.TextRange {
	if timeSec-d.lastClickTime <= doubleClickWindow {
		d.clickCount++
	} else {
		d.clickCount = 1
	}
	d.lastClickTime = timeSec
	if d.clickCount > 3 {
		d.clickCount = 1
	}

	switch d.clickCount {
	case 2:
		d.Mode = ClickWord
		d.InitialStart, d.InitialEnd = wordAt(hit)
	case 3:
		d.Mode = ClickLine
		d.InitialStart, d.InitialEnd = lineAt(hit)
	default:
		d.Mode = ClickChar
		d.InitialStart, d.InitialEnd = hit, hit
	}
	return skribidi.TextRange{Start: d.InitialStart, End: d.InitialEnd}
}

// Drag extends the initial selection towards hit: before the initial
// start, the start moves; past the initial end, the end moves; otherwise
// the initial selection is restored unchanged. For WORD/LINE mode the
// caller is expected to have already expanded hit to word/line granularity
// before calling Drag.
func (d *DragState) Drag(hit skribidi.TextPosition) skribidi.TextRange {
	switch {
	case hit.Offset < d.InitialStart.Offset:
		return skribidi.TextRange{Start: hit, End: d.InitialEnd}
	case hit.Offset > d.InitialEnd.Offset:
		return skribidi.TextRange{Start: d.InitialStart, End: hit}
	default:
		return skribidi.TextRange{Start: d.InitialStart, End: d.InitialEnd}
	}
}
