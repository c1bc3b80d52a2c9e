// Package caret implements character/word/line motion, the backspace
// cluster machine, and the click/drag selection state machine. It consumes
// RichText/RichLayout read-only; all functions are pure queries that return
// the new TextPosition or Range, leaving mutation to the editor façade.
package caret

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("skribidi/caret")
}

// Mode selects how character motion treats bidi direction changes.
type Mode uint8

const (
	// Simple motion stops at each grapheme boundary only.
	Simple Mode = iota
	// Skribidi motion adds stops at bidi direction changes on the same
	// line, and at end-of-last-line.
	Skribidi
)

// Behavior selects the word-motion convention.
type Behavior uint8

const (
	// DefaultBehavior is the Windows/Linux convention.
	DefaultBehavior Behavior = iota
	// MacOSBehavior is the macOS convention.
	MacOSBehavior
)

// VerticalDirection selects Up/Down line motion.
type VerticalDirection uint8

const (
	Up VerticalDirection = iota
	Down
)

// WordBreaks is the per-code-point classification oracle word motion
// consumes. Like skribidi.GraphemeBreaks, caret never inspects code points
// itself beyond indexing into cps; the classification is entirely
// delegated.
type WordBreaks interface {
	IsWordBoundary(cps []rune, offset int) bool
	IsWhitespace(r rune) bool
	IsPunctuation(r rune) bool
}
