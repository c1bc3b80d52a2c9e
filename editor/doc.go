// Package editor implements the stateful editing façade: it owns the
// selection and the IME composition overlay, and ties together
// skribidi.RichText, layout.RichLayout, the caret package's
// motion/backspace/drag functions, and the undo package's transaction log
// into a single stateful Editor.
package editor

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("skribidi/editor")
}
