package reflayout

import (
	"bufio"
	"reflect"
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// GraphemeOracle implements skribidi.GraphemeBreaks on top of
// uax/segment's grapheme-cluster breaker, the same Segmenter/UnicodeBreaker
// pairing the teacher uses for line-break segmentation in
// styled/formatter/firstfit.go, but fed a grapheme breaker instead of a
// uax14 line-wrap breaker.
//
// IsGraphemeBoundary is a point query over a whole code-point buffer, so
// the oracle memoizes the boundary set for the last buffer it scanned,
// keyed by the buffer's backing array address: skribidi re-queries the
// same cps slice repeatedly while walking a paragraph.
type GraphemeOracle struct {
	cacheAddr uintptr
	cacheLen  int
	bounds    map[int]bool
}

// NewGraphemeOracle returns a ready-to-use grapheme-boundary oracle.
func NewGraphemeOracle() *GraphemeOracle {
	return &GraphemeOracle{}
}

func (g *GraphemeOracle) IsGraphemeBoundary(cps []rune, offset int) bool {
	if offset <= 0 || offset >= len(cps) {
		return true
	}
	g.ensureScanned(cps)
	return g.bounds[offset]
}

func (g *GraphemeOracle) ensureScanned(cps []rune) {
	if len(cps) == 0 {
		g.bounds = map[int]bool{}
		return
	}
	addr := reflect.ValueOf(cps).Pointer()
	if addr == g.cacheAddr && len(cps) == g.cacheLen && g.bounds != nil {
		return
	}
	g.cacheAddr, g.cacheLen = addr, len(cps)
	g.bounds = scanGraphemeBoundaries(cps)
}

// scanGraphemeBoundaries runs a fresh segmenter over cps and records every
// offset (in code points, not bytes) at which a grapheme cluster ends.
func scanGraphemeBoundaries(cps []rune) map[int]bool {
	bounds := map[int]bool{0: true, len(cps): true}
	breaker := grapheme.NewBreaker()
	seg := segment.NewSegmenter(breaker)
	seg.Init(bufio.NewReader(strings.NewReader(string(cps))))
	runeOffset := 0
	for seg.Next() {
		frag := seg.Bytes()
		runeOffset += len([]rune(string(frag)))
		bounds[runeOffset] = true
	}
	return bounds
}
