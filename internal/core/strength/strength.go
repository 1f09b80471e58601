// Package strength assigns each phrase its tier in the field hierarchy.
// Tier is a pure function of provenance and contiguity; external signals
// never move a phrase between tiers
package strength

import (
	"strings"

	"asolens/internal/core/keyword"
	"asolens/internal/core/tokenize"
)

// Classified is a phrase with its tier and remediation hint.
// Immutable once produced for a run
type Classified struct {
	Phrase        keyword.Phrase
	Tier          keyword.Tier
	CanStrengthen bool
	Suggestion    string
}

// Classify tiers a generated phrase from its recorded provenance
func Classify(p keyword.Phrase) Classified {
	tier := keyword.TierFor(p.Fields, p.Consecutive)
	return Classified{
		Phrase:        p,
		Tier:          tier,
		CanStrengthen: tier != keyword.TierTitleRun,
		Suggestion:    suggestionFor(tier),
	}
}

// ClassifyAll tiers a whole generation result in order
func ClassifyAll(phrases []keyword.Phrase) []Classified {
	out := make([]Classified, len(phrases))
	for i, p := range phrases {
		out[i] = Classify(p)
	}
	return out
}

// Classifier tests arbitrary text against a concrete set of field
// tokens, for phrases that did not come out of the generator (reference
// sets, competitor phrases). Raw tokens are used so stopwords still
// count as present
type Classifier struct {
	words map[keyword.Field]map[string]struct{}
	seqs  map[keyword.Field][]string
}

// NewClassifier indexes the tokenized fields for membership and
// contiguity lookups
func NewClassifier(fields map[keyword.Field]tokenize.FieldTokens) *Classifier {
	c := &Classifier{
		words: make(map[keyword.Field]map[string]struct{}, len(fields)),
		seqs:  make(map[keyword.Field][]string, len(fields)),
	}
	for f, ft := range fields {
		set := make(map[string]struct{}, len(ft.Raw))
		seq := make([]string, len(ft.Raw))
		for i, t := range ft.Raw {
			set[t.Text] = struct{}{}
			seq[i] = t.Text
		}
		c.words[f] = set
		c.seqs[f] = seq
	}
	return c
}

// ClassifyText tiers free text by the strongest field combination that
// can assemble it. Text assembleable from no combination is Missing
func (c *Classifier) ClassifyText(text string) Classified {
	parts := strings.Fields(tokenize.Normalize(text))
	p := keyword.Phrase{Text: strings.Join(parts, " "), Length: len(parts)}

	if len(parts) == 0 {
		return Classified{
			Phrase:        p,
			Tier:          keyword.TierMissing,
			CanStrengthen: true,
			Suggestion:    suggestionFor(keyword.TierMissing),
		}
	}

	fields, consecutive := c.strongest(parts)
	tier := keyword.TierFor(fields, consecutive)
	p.Fields = fields
	p.Consecutive = consecutive
	return Classified{
		Phrase:        p,
		Tier:          tier,
		CanStrengthen: tier != keyword.TierTitleRun,
		Suggestion:    suggestionFor(tier),
	}
}

// strongest picks the best-tier field combination able to cover every
// word. Title-bearing combinations are tried first since title presence
// outranks contiguity in weaker fields
func (c *Classifier) strongest(parts []string) (keyword.FieldSet, bool) {
	title := keyword.NewFieldSet(keyword.FieldTitle)
	if c.covers(parts, title) {
		return title, c.consecutiveIn(parts, keyword.FieldTitle)
	}

	inTitle := c.anyIn(parts, keyword.FieldTitle)
	if inTitle {
		tk := title.With(keyword.FieldKeywords)
		if c.covers(parts, tk) {
			return tk, false
		}
		ts := title.With(keyword.FieldSubtitle)
		if c.covers(parts, ts) {
			return ts, false
		}
		all := tk.With(keyword.FieldSubtitle)
		if c.covers(parts, all) {
			return all, false
		}
	}

	for _, f := range []keyword.Field{keyword.FieldKeywords, keyword.FieldSubtitle, keyword.FieldPromo} {
		set := keyword.NewFieldSet(f)
		if c.covers(parts, set) && c.consecutiveIn(parts, f) {
			return set, true
		}
	}
	ks := keyword.NewFieldSet(keyword.FieldKeywords, keyword.FieldSubtitle)
	if c.covers(parts, ks) && c.anyIn(parts, keyword.FieldKeywords) && c.anyIn(parts, keyword.FieldSubtitle) {
		return ks, false
	}
	for _, f := range []keyword.Field{keyword.FieldKeywords, keyword.FieldSubtitle, keyword.FieldPromo} {
		set := keyword.NewFieldSet(f)
		if c.covers(parts, set) {
			return set, false
		}
	}

	// wider spread: anchor each word to the strongest field holding it
	var spread keyword.FieldSet
	for _, w := range parts {
		placed := false
		for _, f := range keyword.AllFields() {
			if _, ok := c.words[f][w]; ok {
				spread = spread.With(f)
				placed = true
				break
			}
		}
		if !placed {
			return 0, false
		}
	}
	return spread, false
}

func (c *Classifier) covers(parts []string, fields keyword.FieldSet) bool {
	for _, w := range parts {
		found := false
		for _, f := range fields.Fields() {
			if _, ok := c.words[f][w]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (c *Classifier) anyIn(parts []string, f keyword.Field) bool {
	for _, w := range parts {
		if _, ok := c.words[f][w]; ok {
			return true
		}
	}
	return false
}

// consecutiveIn reports whether parts occurs as a contiguous run in the
// field's raw token sequence
func (c *Classifier) consecutiveIn(parts []string, f keyword.Field) bool {
	seq := c.seqs[f]
	if len(parts) == 0 || len(parts) > len(seq) {
		return false
	}
outer:
	for i := 0; i+len(parts) <= len(seq); i++ {
		for k, w := range parts {
			if seq[i+k] != w {
				continue outer
			}
		}
		return true
	}
	return false
}

// suggestionFor names the minimal field move promoting the phrase to the
// next-best tier
func suggestionFor(t keyword.Tier) string {
	switch t {
	case keyword.TierTitleRun:
		return ""
	case keyword.TierTitleLoose:
		return "reorder the title so the words sit next to each other"
	case keyword.TierTitleKeyword, keyword.TierTitleSubtitle, keyword.TierSingleRun, keyword.TierKeywordSubtitle:
		return "move the full phrase into the title"
	case keyword.TierSingleLoose:
		return "make the words consecutive or move the phrase into the title"
	case keyword.TierCrossAll:
		return "consolidate the keyword-field and subtitle tokens into the title"
	case keyword.TierMissing:
		return "not present in any field"
	default:
		return ""
	}
}
