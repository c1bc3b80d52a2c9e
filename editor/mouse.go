package editor

import (
	"github.com/npillmayer/skribidi"
	"github.com/npillmayer/skribidi/caret"
	"github.com/npillmayer/skribidi/layout"
)

// Click resolves (x,y) to a text position via hit-testing and feeds it to
// the click/drag state machine, escalating CHAR/WORD/LINE selection mode
// on rapid repeat clicks within the double-click window.
func (e *Editor) Click(x, y float64, mods Modifiers, timeSec float64) {
	hit := e.rl.HitTest(layout.MovementCharacter, x, y)
	e.selection = e.drag.Click(hit, timeSec, e.expandWord, e.expandLine)
	e.pref.Clear()
	e.compositionActive = false
	e.deriveActiveAttributes()
}

// Drag extends the in-progress mouse selection towards (x,y), expanding
// the hit point to word/line granularity first when the click that
// started the drag picked WORD/LINE mode.
func (e *Editor) Drag(x, y float64) {
	hit := e.rl.HitTest(layout.MovementCharacter, x, y)
	switch e.drag.Mode {
	case caret.ClickWord:
		hit = e.nearestWordBoundary(hit)
	case caret.ClickLine:
		hit = e.nearestLineBoundary(hit)
	}
	e.selection = e.drag.Drag(hit)
	e.deriveActiveAttributes()
}

func (e *Editor) expandWord(hit skribidi.TextPosition) (skribidi.TextPosition, skribidi.TextPosition) {
	return caret.BackwardWord(e.rt, e.WordOracle, hit, e.Behavior), caret.ForwardWord(e.rt, e.WordOracle, hit, e.Behavior)
}

func (e *Editor) expandLine(hit skribidi.TextPosition) (skribidi.TextPosition, skribidi.TextPosition) {
	return caret.LineStart(e.rt, e.rl, hit), caret.LineEndPos(e.rt, e.rl, hit)
}

// nearestWordBoundary picks whichever of hit's enclosing word boundaries
// is closer, so a WORD-mode drag extends by whole words.
func (e *Editor) nearestWordBoundary(hit skribidi.TextPosition) skribidi.TextPosition {
	start, end := e.expandWord(hit)
	if hit.Offset-start.Offset <= end.Offset-hit.Offset {
		return start
	}
	return end
}

func (e *Editor) nearestLineBoundary(hit skribidi.TextPosition) skribidi.TextPosition {
	start, end := e.expandLine(hit)
	if hit.Offset-start.Offset <= end.Offset-hit.Offset {
		return start
	}
	return end
}
