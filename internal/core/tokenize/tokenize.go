// Package tokenize turns raw field text into ordered token sequences.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Split on any non-alphanumeric run
package tokenize

import (
	"strings"
	"sync"
	"unicode"

	"asolens/internal/core/keyword"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// FieldTokens holds both token views of one field.
// Raw keeps every instance including stopwords and backs field-presence
// checks; Filtered drops stopwords and is the generation alphabet
type FieldTokens struct {
	Field    keyword.Field
	Raw      []keyword.Token
	Filtered []keyword.Token
}

// Stopwords is an explicit stopword set passed in as configuration,
// never read from ambient state
type Stopwords map[string]struct{}

// NewStopwords builds a set from words, normalizing each entry
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Has reports whether w is a stopword
func (s Stopwords) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// DefaultStopwords is the baseline English list used when a caller does
// not supply a vertical-specific one. Stopwords inflate phrase count
// without adding discoverability value
func DefaultStopwords() Stopwords {
	return NewStopwords(
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"in", "is", "it", "of", "on", "or", "the", "to", "with", "your",
	)
}

// pool of fresh transformer chains, one per concurrent caller
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalize returns the folded lowercase form of s
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	return ns
}

// Field tokenizes one field's text. Any run of non-alphanumeric runes
// (punctuation, separators like - & : ,) acts as whitespace. Empty or
// missing text yields empty sequences, never an error, so an app missing
// a field still gets partial analysis from its other fields
func Field(text string, f keyword.Field, stop Stopwords) FieldTokens {
	ft := FieldTokens{Field: f}
	folded := Normalize(text)
	if folded == "" {
		return ft
	}

	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	for i, w := range words {
		tok := keyword.Token{Text: w, Field: f, Index: i}
		ft.Raw = append(ft.Raw, tok)
		if !stop.Has(w) {
			ft.Filtered = append(ft.Filtered, tok)
		}
	}
	return ft
}

// Fields tokenizes every active field of an app listing.
// Keys are present only for fields that produced at least one raw token
func Fields(texts map[keyword.Field]string, stop Stopwords) map[keyword.Field]FieldTokens {
	out := make(map[keyword.Field]FieldTokens, len(texts))
	for _, f := range keyword.AllFields() {
		text, ok := texts[f]
		if !ok {
			continue
		}
		ft := Field(text, f, stop)
		if len(ft.Raw) > 0 {
			out[f] = ft
		}
	}
	return out
}
