// Package undo implements the transactional undo/redo log: nested
// begin/end transactions, text-edit capture with the amend rule, and
// structural attribute-edit capture, replayed over a skribidi.RichText.
package undo

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("skribidi/undo")
}
