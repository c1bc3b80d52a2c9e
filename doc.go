/*
Package skribidi implements the logical half of a rich-text editing engine:
a paragraph-structured, attributed-text document model.

A RichText is an ordered sequence of Paragraphs. Each Paragraph holds a
buffer of Unicode code points plus a set of AttributeSpans describing typed
formatting over ranges of that buffer. Global code-point offsets across
paragraph boundaries are tracked incrementally and resolved with a binary
search (see RichText.resolve), the same role cords.Pos plays for a Cord.

This package intentionally knows nothing about glyphs, shaping, line
breaking or bidi resolution: those are supplied by a collaborator through
the layout package. skribidi only ever asks a GraphemeBreaks oracle "is
there a grapheme boundary here", mirroring how cords delegates rune
decoding to the Leaf interface rather than hard-coding UTF-8 itself.

See the layout, caret, undo and editor subpackages for the rest of the
engine: incremental per-paragraph layout, caret/selection motion, the
undo/redo log, and the façade that ties them together.
*/
package skribidi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'skribidi'.
func tracer() tracing.Trace {
	return tracing.Select("skribidi")
}
