// Package normalize cleans the free-text labels feeds hand us (league names,
// genres, feed titles) so equal labels group together
// Pipeline order for Label
// 1 Sanitize control bytes and repair UTF-8
// 2 Unicode NFKC normalization
// 3 Remove format chars (zero-width, BOM)
// 4 Width fold fullwidth to ASCII
// 5 Collapse whitespace to single spaces and trim
//
// Key additionally case folds and strips combining marks, for lookups only;
// Label keeps case and accents since it is displayed
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pools of fresh transformer chains
var (
	labelPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKC,
				runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
				width.Fold,                         // map fullwidth forms to ASCII
			)
		},
	}
	keyPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFD,
				runes.Remove(runes.In(unicode.Mn)), // strip combining marks
				cases.Fold(),
				norm.NFC,
			)
		},
	}
)

func apply(p *sync.Pool, s string) string {
	tr := p.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	return out
}

// Label returns the display form of a category label
func Label(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(Sanitize(s), "")
	return collapseSpaces(apply(&labelPool, s))
}

// Key returns a case and accent insensitive lookup key for s
// Key("Süper  Lig") == Key("super lig")
func Key(s string) string {
	l := Label(s)
	if l == "" {
		return ""
	}
	return apply(&keyPool, l)
}

// Equal reports whether two labels share a Key
func Equal(a, b string) bool { return Key(a) == Key(b) }

// collapseSpaces converts whitespace runs, newlines included, to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
