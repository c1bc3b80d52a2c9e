package caret

import (
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/skribidi"
)

// combiningClass looks up the canonical combining class of r, the one
// piece of Unicode classification the backspace machine needs that isn't
// supplied by a collaborator oracle: combining class is a character
// property independent of any particular layout engine.
func combiningClass(r rune) int {
	props := norm.NFC.PropertiesString(string(r))
	return int(props.CCC())
}

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }
func isVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}
func isKeycapBase(r rune) bool   { return (r >= '0' && r <= '9') || r == '#' || r == '*' }
func isKeycapMark(r rune) bool   { return r == 0x20E3 }
func isZWJ(r rune) bool          { return r == 0x200D }
func isTagChar(r rune) bool      { return r >= 0xE0020 && r <= 0xE007E }
func isCancelTag(r rune) bool    { return r == 0xE007F }
func isSkinToneMod(r rune) bool  { return r >= 0x1F3FB && r <= 0x1F3FF }
func isEmojiPictographic(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	}
	return false
}

// BackspaceUnits implements the 14-state right-to-left backspace cluster
// machine over before, the code points strictly preceding the caret,
// returning how many trailing code points a single Backspace removes.
func BackspaceUnits(before []rune) int {
	n := len(before)
	if n == 0 {
		return 0
	}
	i := n - 1
	last := before[i]

	// CR+LF pair.
	if last == '\n' && i > 0 && before[i-1] == '\r' {
		return 2
	}

	// Regional-indicator pairs (flags): an odd run removes one, an even
	// run removes the trailing pair.
	if isRegionalIndicator(last) {
		count := 0
		for j := i; j >= 0 && isRegionalIndicator(before[j]); j-- {
			count++
		}
		if count%2 == 1 {
			return 1
		}
		return 2
	}

	// Keycap sequence: base [VS] KEYCAP, walked backward from the keycap.
	if isKeycapMark(last) {
		j := i - 1
		if j >= 0 && isVariationSelector(before[j]) {
			j--
		}
		if j >= 0 && isKeycapBase(before[j]) {
			return i - j + 1
		}
		return 1
	}

	// Emoji tag sequence terminated by CANCEL_TAG: consume tag spec chars
	// back to the base emoji.
	if isCancelTag(last) {
		j := i - 1
		for j >= 0 && isTagChar(before[j]) {
			j--
		}
		if j >= 0 && isEmojiPictographic(before[j]) {
			return i - j + 1
		}
		return i - j
	}

	// Emoji + optional skin-tone modifier, optional VS, and zero-or-more
	// ZWJ <emoji> extensions, walked back to the first base emoji.
	if isEmojiPictographic(last) || isZWJ(last) || isSkinToneMod(last) || isVariationSelector(last) {
		j := i
		needBase := true
		for j >= 0 {
			r := before[j]
			if isZWJ(r) {
				needBase = true
			} else if isEmojiPictographic(r) && needBase {
				needBase = false
			} else if !(needBase && (isSkinToneMod(r) || isVariationSelector(r))) {
				break
			}
			j--
		}
		if i-j > 0 {
			return i - j
		}
		return 1
	}

	// Otherwise: a base grapheme with any trailing combining marks
	// (combining_class != 0) absorbed together with their base.
	if combiningClass(last) != 0 {
		j := i
		for j >= 0 && combiningClass(before[j]) != 0 {
			j--
		}
		if j >= 0 {
			j--
		}
		return i - j
	}
	return 1
}

// Backspace resolves the document range a Backspace at pos should remove,
// crossing into the previous paragraph when pos is at paragraph offset 0,
// walking to the end of that paragraph.
func Backspace(rt *skribidi.RichText, pos skribidi.TextPosition) skribidi.Range {
	cur := rt.Resolve(pos, skribidi.IgnoreAffinity, nil)
	paraIdx, local := cur.ParagraphIdx, cur.LocalOffset
	if local == 0 && paraIdx > 0 {
		paraIdx--
		local = rt.Paragraphs[paraIdx].Len()
	}
	if local == 0 {
		return skribidi.Range{}
	}
	p := &rt.Paragraphs[paraIdx]
	before := p.Text.CodePoints[:local]
	units := BackspaceUnits(before)
	if units > local {
		units = local
	}
	end := p.GlobalTextOffset + local
	return skribidi.Range{Start: end - units, End: end}
}
