package layout

import (
	"fmt"
	"hash/maphash"
	"strconv"

	"github.com/npillmayer/skribidi"
)

// MaxCounterLevels bounds the ordered-list counter stack.
const MaxCounterLevels = 8

// LaidParagraph is the per-paragraph cache entry of a RichLayout.
type LaidParagraph struct {
	Layout            LaidLines
	DirectionUsed     Direction
	GlobalTextOffset  int
	OffsetY           float64
	VersionUsed       uint32
	ListMarkerCounter int

	inheritedDirection    Direction
	inheritedDirectionSet bool
}

// RichLayout is the parallel, per-paragraph laid-out line cache.
type RichLayout struct {
	Paragraphs  []LaidParagraph
	TotalBounds Rect

	paramsHash    uint64
	hashSeed      maphash.Seed
	seedAssigned  bool
	counters      [MaxCounterLevels]int
	imeOffset     int
	imeActive     bool
}

// NewRichLayout returns an empty RichLayout.
func NewRichLayout() *RichLayout {
	return &RichLayout{hashSeed: maphash.MakeSeed(), seedAssigned: true}
}

// ApplyChange performs the structural-only reshape: remove
// RemovedParagraphCount entries starting at StartParagraphIdx, splice in
// InsertedParagraphCount default-initialized slots. Content of kept slots
// is left untouched so the next SetFromRichText can skip re-layout for
// them.
func (rl *RichLayout) ApplyChange(ch skribidi.Change) {
	lo := ch.StartParagraphIdx
	hi := lo + ch.RemovedParagraphCount
	clamped := false
	if lo < 0 {
		lo = 0
		clamped = true
	}
	if hi > len(rl.Paragraphs) {
		hi = len(rl.Paragraphs)
		clamped = true
	}
	if lo > hi {
		lo = hi
		clamped = true
	}
	if clamped {
		tracer().Errorf("%v: change %+v outside cache of %d paragraphs, clamping", ErrIndexOutOfBounds, ch, len(rl.Paragraphs))
	}
	fresh := make([]LaidParagraph, ch.InsertedParagraphCount)
	out := make([]LaidParagraph, 0, len(rl.Paragraphs)-(hi-lo)+ch.InsertedParagraphCount)
	out = append(out, rl.Paragraphs[:lo]...)
	out = append(out, fresh...)
	out = append(out, rl.Paragraphs[hi:]...)
	rl.Paragraphs = out
}

// SetIMEOverlay records where a composition overlay should be spliced in on
// the next SetFromRichText call. Passing active=false clears the overlay.
func (rl *RichLayout) SetIMEOverlay(active bool, offset int) {
	rl.imeActive = active
	rl.imeOffset = offset
}

// SetFromRichText synchronizes the cache with rt, rebuilding exactly the
// paragraphs whose content changed, whose inherited direction changed,
// whose ordered-list counter changed, or every paragraph if params changed.
func (rl *RichLayout) SetFromRichText(params Params, rt *skribidi.RichText, engine Layout, imeText []rune) error {
	if len(rl.Paragraphs) != len(rt.Paragraphs) {
		tracer().Errorf("%v: cache has %d paragraphs, rich text has %d, resynchronizing", ErrIndexOutOfBounds, len(rl.Paragraphs), len(rt.Paragraphs))
		rl.Paragraphs = make([]LaidParagraph, len(rt.Paragraphs))
	}

	h := rl.hashParams(params)
	rebuildAll := h != rl.paramsHash
	rl.paramsHash = h

	var paragraph0Direction Direction
	runningY := 0.0
	maxWidth := 0.0

	for i := range rt.Paragraphs {
		p := &rt.Paragraphs[i]
		laid := &rl.Paragraphs[i]
		laid.GlobalTextOffset = p.GlobalTextOffset

		indentLevel := clampIndent(p)
		for lvl := indentLevel + 1; lvl < MaxCounterLevels; lvl++ {
			rl.counters[lvl] = 0
		}
		marker, _ := listMarkerStyle(p)
		assignedCounter := 0
		if marker.IsCounter() {
			rl.counters[indentLevel]++
			assignedCounter = rl.counters[indentLevel]
		} else {
			rl.counters[indentLevel] = 0
		}

		var effectiveAttrs []skribidi.Attribute
		directionChanged := false
		if i == 0 {
			effectiveAttrs = mergeAttributes(params.Attributes, p.ParagraphAttributes)
		} else {
			effectiveAttrs = mergeAttributes(p.ParagraphAttributes, []skribidi.Attribute{directionAttribute(paragraph0Direction)})
			directionChanged = laid.inheritedDirectionSet && laid.inheritedDirection != paragraph0Direction
		}

		imeHere := rl.imeActive && rl.imeOffset >= p.GlobalTextOffset && rl.imeOffset <= p.GlobalTextOffset+p.Len()
		var err error
		switch {
		case imeHere:
			scratch := compositionOverlay(&p.Text, rl.imeOffset-p.GlobalTextOffset, imeText)
			laid.Layout, err = engine.LayoutParagraph(params, scratch, effectiveAttrs)
			laid.VersionUsed = 0
		case rebuildAll || p.Version != laid.VersionUsed || laid.ListMarkerCounter != assignedCounter || directionChanged:
			laid.Layout, err = engine.LayoutParagraph(params, &p.Text, effectiveAttrs)
			laid.VersionUsed = p.Version
		default:
			// in sync; nothing to do.
		}
		if i > 0 {
			laid.inheritedDirection = paragraph0Direction
			laid.inheritedDirectionSet = true
		}
		if err != nil {
			return err
		}
		laid.ListMarkerCounter = assignedCounter
		if laid.Layout != nil {
			laid.DirectionUsed = laid.Layout.ResolvedDirection()
		}
		if i == 0 {
			paragraph0Direction = laid.DirectionUsed
		}

		laid.OffsetY = runningY
		ph, pw := paragraphBounds(laid.Layout)
		runningY += ph
		if pw > maxWidth {
			maxWidth = pw
		}
	}

	rl.TotalBounds = Rect{W: maxWidth, H: runningY}
	rl.applyVerticalAlignment(params)
	return nil
}

func (rl *RichLayout) applyVerticalAlignment(params Params) {
	if params.Height <= 0 || params.Height <= rl.TotalBounds.H {
		return
	}
	var shift float64
	switch params.VerticalAlign {
	case skribidi.VerticalAlignMiddle:
		shift = (params.Height - rl.TotalBounds.H) / 2
	case skribidi.VerticalAlignBottom:
		shift = params.Height - rl.TotalBounds.H
	default:
		return
	}
	for i := range rl.Paragraphs {
		rl.Paragraphs[i].OffsetY += shift
	}
	rl.TotalBounds.Y = shift
}

// HitTest resolves a point in the laid-out coordinate space to a text
// position: the paragraph is found by bottom-Y comparison against each
// paragraph's OffsetY plus its own height, the line within that paragraph
// by the same bottom-Y comparison over its LineRecords, and the X
// coordinate is handed to the Layout collaborator for that line. The
// collaborator's local offset is translated back to a global TextPosition.
func (rl *RichLayout) HitTest(movement MovementType, x, y float64) skribidi.TextPosition {
	if len(rl.Paragraphs) == 0 {
		return skribidi.TextPosition{}
	}
	pIdx := 0
	for i := range rl.Paragraphs {
		pIdx = i
		laid := &rl.Paragraphs[i]
		h, _ := paragraphBounds(laid.Layout)
		if y < laid.OffsetY+h || i == len(rl.Paragraphs)-1 {
			break
		}
	}
	laid := &rl.Paragraphs[pIdx]
	if laid.Layout == nil {
		return skribidi.TextPosition{Offset: laid.GlobalTextOffset, Affinity: skribidi.AffinityTrailing}
	}
	lines := laid.Layout.Lines()
	lineIdx := 0
	cursorY := laid.OffsetY
	for i, ln := range lines {
		lineIdx = i
		cursorY += ln.Bounds.H
		if y < cursorY || i == len(lines)-1 {
			break
		}
	}
	local := laid.Layout.HitTestAtLine(movement, lineIdx, x)
	return skribidi.TextPosition{
		Offset:   laid.GlobalTextOffset + local.Offset,
		Affinity: local.Affinity,
	}
}

// CaretInfo resolves pos to its owning paragraph and local offset, then
// delegates to that paragraph's Layout collaborator for caret geometry,
// adding the paragraph's Y offset.
func (rl *RichLayout) CaretInfo(pos skribidi.TextPosition, rt *skribidi.RichText) CaretInfo {
	resolved := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	if resolved.ParagraphIdx >= len(rl.Paragraphs) {
		return CaretInfo{}
	}
	laid := &rl.Paragraphs[resolved.ParagraphIdx]
	if laid.Layout == nil {
		return CaretInfo{Y: laid.OffsetY}
	}
	info := laid.Layout.CaretInfoAt(resolved.LocalOffset)
	info.Y += laid.OffsetY
	return info
}

// IterateRangeBounds emits the selection-highlight rectangles covering r: a
// single-paragraph range yields one call into its Layout collaborator, a
// multi-paragraph range yields the first paragraph's tail, each
// fully-covered middle paragraph, and the last paragraph's head, in that
// order. Each rectangle carries its paragraph's Y offset.
func (rl *RichLayout) IterateRangeBounds(rt *skribidi.RichText, r skribidi.Range, cb func(Rect)) {
	if r.Len() <= 0 || len(rl.Paragraphs) == 0 {
		return
	}
	start := rt.Resolve(skribidi.TextPosition{Offset: r.Start}, skribidi.IgnoreAffinity, nil)
	end := rt.Resolve(skribidi.TextPosition{Offset: r.End}, skribidi.IgnoreAffinity, nil)

	for idx := start.ParagraphIdx; idx <= end.ParagraphIdx; idx++ {
		if idx >= len(rl.Paragraphs) {
			break
		}
		laid := &rl.Paragraphs[idx]
		if laid.Layout == nil {
			continue
		}
		p := &rt.Paragraphs[idx]
		lo, hi := 0, p.Len()
		if idx == start.ParagraphIdx {
			lo = start.LocalOffset
		}
		if idx == end.ParagraphIdx {
			hi = end.LocalOffset
		}
		if lo >= hi {
			continue
		}
		laid.Layout.RangeBoundsIter(skribidi.Range{Start: lo, End: hi}, laid.OffsetY, cb)
	}
}

func paragraphBounds(ll LaidLines) (height, width float64) {
	if ll == nil {
		return 0, 0
	}
	for _, ln := range ll.Lines() {
		height += ln.Bounds.H
		if ln.Bounds.W > width {
			width = ln.Bounds.W
		}
	}
	return height, width
}

func clampIndent(p *skribidi.Paragraph) int {
	level := 0
	if a, ok := p.GetParagraphAttribute(skribidi.KindIndentLevel); ok {
		if v, ok := a.Value.(int); ok {
			level = v
		}
	}
	if level < 0 {
		level = 0
	}
	if level >= MaxCounterLevels {
		level = MaxCounterLevels - 1
	}
	return level
}

func listMarkerStyle(p *skribidi.Paragraph) (skribidi.ListMarkerStyle, bool) {
	a, ok := p.GetParagraphAttribute(skribidi.KindListMarkerStyle)
	if !ok {
		return skribidi.ListMarkerNone, false
	}
	m, ok := a.Value.(skribidi.ListMarkerStyle)
	return m, ok
}

// compositionOverlay splices composition text into a scratch
// AttributedText: prefix, composition (tagged KindCompositionStyle),
// suffix.
func compositionOverlay(base *skribidi.AttributedText, localOffset int, comp []rune) *skribidi.AttributedText {
	scratch := &skribidi.AttributedText{}
	scratch.AppendRange(base, skribidi.Range{Start: 0, End: localOffset})
	scratch.AppendUTF32(comp, []skribidi.Attribute{{Kind: skribidi.KindCompositionStyle, Value: true}}, 0)
	scratch.AppendRange(base, skribidi.Range{Start: localOffset, End: base.Len()})
	return scratch
}

// hashParams computes a content hash of params sufficient to detect a
// change that forces a full relayout. hash/maphash is the one ambient
// piece of this package built on the standard library rather than a pack
// dependency: no library in the retrieved pack offers a generic content
// hash, and the teacher repo computes its own tree weights rather than
// hashing, so there is nothing to ground this on beyond stdlib (see
// DESIGN.md).
func (rl *RichLayout) hashParams(params Params) uint64 {
	if !rl.seedAssigned {
		rl.hashSeed = maphash.MakeSeed()
		rl.seedAssigned = true
	}
	var h maphash.Hash
	h.SetSeed(rl.hashSeed)
	h.WriteString(strconv.FormatFloat(params.Width, 'g', -1, 64))
	h.WriteString(strconv.FormatFloat(params.Height, 'g', -1, 64))
	h.WriteByte(byte(params.VerticalAlign))
	for _, a := range params.Attributes {
		h.WriteString(strconv.FormatUint(uint64(a.Kind), 10))
		h.Write(a.Payload)
		h.WriteString(fmt.Sprintf("%#v", a.Value))
	}
	return h.Sum64()
}
