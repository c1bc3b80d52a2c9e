package skribidi

// isParagraphSeparator reports whether r terminates a paragraph. LF and the
// Unicode paragraph separator both qualify; a CR immediately preceding an
// LF is treated as part of the same, single separator.
func isParagraphSeparator(r rune) bool {
	return r == '\n' || r == '\u2029'
}

// Paragraph is an ordered code-point buffer plus paragraph-level attributes,
// one element of a RichText.
type Paragraph struct {
	Text                AttributedText
	ParagraphAttributes []Attribute
	GlobalTextOffset    int
	Version             uint32
}

// Len returns the number of code points in the paragraph.
func (p *Paragraph) Len() int {
	return p.Text.Len()
}

// IsOpen reports whether the paragraph lacks a trailing paragraph
// separator. Only the last paragraph of a RichText may be open.
func (p *Paragraph) IsOpen() bool {
	n := p.Text.Len()
	if n == 0 {
		return true
	}
	return !isParagraphSeparator(p.Text.CodePoints[n-1])
}

// attributeIndex returns the index of the paragraph attribute of kind k, or
// -1.
func (p *Paragraph) attributeIndex(k AttributeKind) int {
	for i, a := range p.ParagraphAttributes {
		if a.Kind == k {
			return i
		}
	}
	return -1
}

// GetParagraphAttribute returns the paragraph attribute of kind k, if any.
func (p *Paragraph) GetParagraphAttribute(k AttributeKind) (Attribute, bool) {
	if i := p.attributeIndex(k); i >= 0 {
		return p.ParagraphAttributes[i], true
	}
	return Attribute{}, false
}

// setParagraphAttribute overwrites the first paragraph attribute matching
// a.Kind, removing any duplicates, or appends a if absent.
func (p *Paragraph) setParagraphAttribute(a Attribute) {
	out := p.ParagraphAttributes[:0:0]
	set := false
	for _, existing := range p.ParagraphAttributes {
		if existing.Kind == a.Kind {
			if !set {
				out = append(out, a)
				set = true
			}
			continue
		}
		out = append(out, existing)
	}
	if !set {
		out = append(out, a)
	}
	p.ParagraphAttributes = out
}

// clone deep-copies the paragraph, including owned attribute payloads.
func (p *Paragraph) clone() Paragraph {
	attrs := make([]Attribute, len(p.ParagraphAttributes))
	for i, a := range p.ParagraphAttributes {
		if a.Payload != nil {
			pl := make([]byte, len(a.Payload))
			copy(pl, a.Payload)
			a.Payload = pl
		}
		attrs[i] = a
	}
	return Paragraph{
		Text:                p.Text.clone(),
		ParagraphAttributes: attrs,
		GlobalTextOffset:    p.GlobalTextOffset,
		Version:             p.Version,
	}
}
