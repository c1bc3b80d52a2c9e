package editor

import "github.com/npillmayer/skribidi"

// fontAttributeKinds are the attribute kinds the preview-caret feature
// compares against the live document.
var fontAttributeKinds = []skribidi.AttributeKind{
	skribidi.KindFontFamily,
	skribidi.KindFontSize,
	skribidi.KindFontWeight,
	skribidi.KindFontStyle,
	skribidi.KindFontStretch,
}

func attrOfKind(attrs []skribidi.Attribute, kind skribidi.AttributeKind) (skribidi.Attribute, bool) {
	for _, a := range attrs {
		if a.Kind == kind {
			return a, true
		}
	}
	return skribidi.Attribute{}, false
}

// liveAttrAt returns the span of kind covering the grapheme immediately
// before local within p, mirroring deriveActiveAttributes's own lookup.
func liveAttrAt(p *skribidi.Paragraph, local int, kind skribidi.AttributeKind) (skribidi.Attribute, bool) {
	q := local - 1
	if q < 0 {
		q = 0
	}
	for _, s := range p.Text.Spans() {
		if s.Attribute.Kind == kind && s.Contains(q) {
			return s.Attribute, true
		}
	}
	return skribidi.Attribute{}, false
}

// activeFontDiffersFromLive reports whether any font-affecting attribute
// in active disagrees with the live span at local.
func activeFontDiffersFromLive(active []skribidi.Attribute, p *skribidi.Paragraph, local int) bool {
	for _, kind := range fontAttributeKinds {
		av, aok := attrOfKind(active, kind)
		if !aok {
			continue
		}
		lv, lok := liveAttrAt(p, local, kind)
		if !lok || !av.EqualPayload(lv) {
			return true
		}
	}
	return false
}

// mergeAttrChain overlays chains in priority order: the first chain
// supplying a kind wins over later chains ("active ▷ paragraph ▷
// layout").
func mergeAttrChain(chains ...[]skribidi.Attribute) []skribidi.Attribute {
	var out []skribidi.Attribute
	for _, chain := range chains {
		for _, c := range chain {
			seen := false
			for _, o := range out {
				if o.Kind == c.Kind {
					seen = true
					break
				}
			}
			if !seen {
				out = append(out, c)
			}
		}
	}
	return out
}

func stringAttr(attrs []skribidi.Attribute, kind skribidi.AttributeKind, def string) string {
	if a, ok := attrOfKind(attrs, kind); ok {
		if s, ok := a.Value.(string); ok {
			return s
		}
	}
	return def
}

func intAttr(attrs []skribidi.Attribute, kind skribidi.AttributeKind, def int) int {
	if a, ok := attrOfKind(attrs, kind); ok {
		if v, ok := a.Value.(int); ok {
			return v
		}
	}
	return def
}
