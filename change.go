package skribidi

// Change is the descriptor returned by every mutating RichText call,
// summarizing the edit well enough for layout.RichLayout to reshape its
// paragraph vector without re-reading the whole document.
type Change struct {
	StartParagraphIdx      int
	RemovedParagraphCount  int
	InsertedParagraphCount int
	EditEndPosition        TextPosition
}

// noChange is returned by edits that had no effect, such as AppendUTF32
// with no code points.
var noChange = Change{EditEndPosition: TextPosition{Affinity: AffinityNone}}
