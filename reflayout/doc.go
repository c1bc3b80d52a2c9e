// Package reflayout is a dependency-grounded reference implementation of
// the layout.Layout/layout.Font collaborator contracts, built on top of
// github.com/npillmayer/uax's UAX break-iterators and bidi resolver and
// golang.org/x/image/font/sfnt for font metrics. It lays out each
// paragraph on word-wrapped lines, using UAX#14 for line-break
// opportunities and UAX#9 to resolve the text direction at each offset;
// lines are not visually reordered.
//
// Only this package's own tests exercise it; the tests of the core
// packages use hand-written fake collaborators. It is not a
// production-quality typesetter.
package reflayout

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("skribidi/reflayout")
}
