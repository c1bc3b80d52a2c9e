package skribidi

import "sort"

// RichText is an ordered sequence of Paragraphs plus a monotonic version
// counter, the document-level type of the editing model.
type RichText struct {
	Paragraphs     []Paragraph
	versionCounter uint32
}

// NewRichText returns an empty RichText holding a single, open, empty
// paragraph — the minimal valid document.
func NewRichText() *RichText {
	rt := &RichText{}
	rt.Paragraphs = []Paragraph{{GlobalTextOffset: 0}}
	return rt
}

// nextVersion returns a fresh, strictly increasing version number.
func (rt *RichText) nextVersion() uint32 {
	rt.versionCounter++
	return rt.versionCounter
}

// TotalLen returns the total code-point length of the document.
func (rt *RichText) TotalLen() int {
	if len(rt.Paragraphs) == 0 {
		return 0
	}
	last := &rt.Paragraphs[len(rt.Paragraphs)-1]
	return last.GlobalTextOffset + last.Len()
}

// recomputeOffsets recomputes GlobalTextOffset for every paragraph from
// index `from` forward.
func (rt *RichText) recomputeOffsets(from int) {
	off := 0
	if from > 0 {
		p := &rt.Paragraphs[from-1]
		off = p.GlobalTextOffset + p.Len()
	}
	for i := from; i < len(rt.Paragraphs); i++ {
		rt.Paragraphs[i].GlobalTextOffset = off
		off += rt.Paragraphs[i].Len()
	}
}

// AffinityUsage controls whether resolve() applies the affinity-driven
// grapheme advance.
type AffinityUsage int

const (
	IgnoreAffinity AffinityUsage = iota
	UseAffinity
)

// ParagraphPosition is a TextPosition resolved down to an owning paragraph.
type ParagraphPosition struct {
	ParagraphIdx int
	LocalOffset  int
	GlobalOffset int
}

// resolve maps a global TextPosition to a ParagraphPosition. oracle
// may be nil, in which case grapheme alignment is a no-op.
func (rt *RichText) resolve(pos TextPosition, usage AffinityUsage, oracle GraphemeBreaks) ParagraphPosition {
	total := rt.TotalLen()
	offset := pos.Offset
	if offset <= 0 {
		return ParagraphPosition{ParagraphIdx: 0, LocalOffset: 0, GlobalOffset: 0}
	}
	if offset >= total {
		idx := len(rt.Paragraphs) - 1
		p := &rt.Paragraphs[idx]
		return ParagraphPosition{ParagraphIdx: idx, LocalOffset: p.Len(), GlobalOffset: total}
	}
	idx := sort.Search(len(rt.Paragraphs), func(i int) bool {
		return rt.Paragraphs[i].GlobalTextOffset > offset
	}) - 1
	if idx < 0 {
		idx = 0
	}
	p := &rt.Paragraphs[idx]
	local := offset - p.GlobalTextOffset
	local = p.Text.AlignGraphemeOffset(local, oracle)

	if usage == UseAffinity && (pos.Affinity == AffinityLeading || pos.Affinity == AffinityEOL) {
		local = p.Text.NextGraphemeOffset(local, oracle)
		if local >= p.Len() && pos.Affinity == AffinityLeading && idx+1 < len(rt.Paragraphs) {
			idx++
			p = &rt.Paragraphs[idx]
			local = 0
		}
	}
	return ParagraphPosition{ParagraphIdx: idx, LocalOffset: local, GlobalOffset: p.GlobalTextOffset + local}
}

// Resolve is the exported form of resolve, for callers outside the package
// (layout.RichLayout, caret motion) that need to map a TextPosition to a
// paragraph/local offset.
func (rt *RichText) Resolve(pos TextPosition, usage AffinityUsage, oracle GraphemeBreaks) ParagraphPosition {
	return rt.resolve(pos, usage, oracle)
}

// AppendParagraph appends a new, empty paragraph with the given paragraph
// attributes. If the current last paragraph is open, a trailing LF is
// appended to it first and its version bumped.
func (rt *RichText) AppendParagraph(attrs []Attribute) Change {
	lastIdx := len(rt.Paragraphs) - 1
	last := &rt.Paragraphs[lastIdx]
	if last.IsOpen() {
		last.Text.Append([]rune{'\n'})
		last.Version = rt.nextVersion()
	}
	np := Paragraph{ParagraphAttributes: attrs, Version: rt.nextVersion()}
	rt.Paragraphs = append(rt.Paragraphs, np)
	rt.recomputeOffsets(lastIdx)
	end := rt.Paragraphs[lastIdx+1].GlobalTextOffset
	return Change{
		StartParagraphIdx:      lastIdx,
		RemovedParagraphCount:  1,
		InsertedParagraphCount: 2,
		EditEndPosition:        TextPosition{Offset: end, Affinity: AffinityTrailing},
	}
}

// AppendUTF32 splits cps on paragraph separators and appends the fragments,
// inheriting paragraph attributes from the previously open paragraph for
// any newly created paragraph.
func (rt *RichText) AppendUTF32(cps []rune, attrs []Attribute, flags SpanFlags) Change {
	if len(cps) == 0 {
		return noChange
	}
	startIdx := len(rt.Paragraphs) - 1
	fragments := splitOnSeparators(cps)

	inherited := rt.Paragraphs[startIdx].ParagraphAttributes
	last := &rt.Paragraphs[startIdx]
	last.Text.AppendUTF32(fragments[0], attrs, flags)
	last.Version = rt.nextVersion()

	for _, frag := range fragments[1:] {
		np := Paragraph{ParagraphAttributes: cloneAttrs(inherited), Version: rt.nextVersion()}
		np.Text.AppendUTF32(frag, attrs, flags)
		rt.Paragraphs = append(rt.Paragraphs, np)
	}
	rt.recomputeOffsets(startIdx)
	endIdx := len(rt.Paragraphs) - 1
	endLocal := rt.Paragraphs[endIdx].Len()
	return Change{
		StartParagraphIdx:      startIdx,
		RemovedParagraphCount:  1,
		InsertedParagraphCount: len(fragments),
		EditEndPosition: TextPosition{
			Offset:   rt.Paragraphs[endIdx].GlobalTextOffset + endLocal,
			Affinity: AffinityLeading,
		},
	}
}

// splitOnSeparators splits cps into fragments, each fragment (but possibly
// the last) ending with exactly one paragraph separator.
func splitOnSeparators(cps []rune) [][]rune {
	var out [][]rune
	start := 0
	for i, r := range cps {
		if isParagraphSeparator(r) {
			out = append(out, cps[start:i+1])
			start = i + 1
		}
	}
	out = append(out, cps[start:])
	return out
}

func cloneAttrs(attrs []Attribute) []Attribute {
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}
