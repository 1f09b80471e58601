// Package combine enumerates candidate search phrases from field tokens.
// Combination counts grow exponentially in alphabet size, so the generator
// caps the alphabet before generating and counts with early-exit storage:
// uniques past the hard cap are tallied but never materialized
package combine

import (
	"sort"
	"strings"

	"asolens/internal/core/keyword"
	"asolens/internal/core/tokenize"
	perr "asolens/internal/platform/errors"
)

// Defaults for Options
const (
	DefaultMinLength   = 2
	DefaultMaxLength   = 4
	DefaultHardCap     = 2500
	DefaultMaxAlphabet = 40
)

// Options bounds the generation run
type Options struct {
	MinLength   int
	MaxLength   int
	HardCap     int
	MaxAlphabet int
}

// DefaultOptions returns the standard bounds
func DefaultOptions() Options {
	return Options{
		MinLength:   DefaultMinLength,
		MaxLength:   DefaultMaxLength,
		HardCap:     DefaultHardCap,
		MaxAlphabet: DefaultMaxAlphabet,
	}
}

// Validate rejects programmer-error configurations. These are the only
// hard failures the engine surfaces; everything else degrades gracefully
func (o Options) Validate() error {
	if o.MinLength < 1 {
		return perr.InvalidArgf("min length %d must be >= 1", o.MinLength)
	}
	if o.MinLength > o.MaxLength {
		return perr.InvalidArgf("min length %d exceeds max length %d", o.MinLength, o.MaxLength)
	}
	if o.HardCap < 1 {
		return perr.InvalidArgf("hard cap %d must be >= 1", o.HardCap)
	}
	if o.MaxAlphabet < 1 {
		return perr.InvalidArgf("max alphabet %d must be >= 1", o.MaxAlphabet)
	}
	return nil
}

// Result is the deduplicated phrase set plus cap accounting.
// TotalGenerated is the unique count that would exist without the cap;
// when it exceeds HardCap the stored set holds exactly HardCap phrases
// and LimitReached tells the scorer to rank and truncate
type Result struct {
	Phrases        []keyword.Phrase
	TotalGenerated int
	LimitReached   bool
}

// Generate produces every phrase category from the filtered field tokens:
// same-field contiguous runs, same-field combinations, two-field crosses,
// and the three-field cross. Exceeding the cap is a signal, not an error
func Generate(fields map[keyword.Field]tokenize.FieldTokens, opt Options) (Result, error) {
	if err := opt.Validate(); err != nil {
		return Result{}, err
	}

	g := &generator{
		opt:  opt,
		seen: make(map[string]int),
	}

	active := activeFields(fields)
	seqs := capAlphabet(fields, active, opt.MaxAlphabet)

	// 1 same-field contiguous runs
	for _, f := range active {
		g.runs(f, seqs[f])
	}

	// 2 same-field combinations beyond the runs
	for _, f := range active {
		g.loose(f, uniqueEntries(seqs[f]))
	}

	// 3 two-field crosses
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			g.cross([]keyword.Field{active[i], active[j]}, seqs)
		}
	}

	// 4 three-field cross
	if len(active) >= 3 {
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				for k := j + 1; k < len(active); k++ {
					g.cross([]keyword.Field{active[i], active[j], active[k]}, seqs)
				}
			}
		}
	}

	return Result{
		Phrases:        g.phrases,
		TotalGenerated: g.total,
		LimitReached:   g.total > opt.HardCap,
	}, nil
}

type generator struct {
	opt     Options
	seen    map[string]int // canonical text -> index in phrases, -1 when past cap
	phrases []keyword.Phrase
	total   int
}

// emit records one candidate. Duplicate texts keep the provenance with
// the strongest tier; strength follows provenance, not discovery order
func (g *generator) emit(text string, fields keyword.FieldSet, consecutive bool, source string) {
	if idx, ok := g.seen[text]; ok {
		if idx < 0 {
			return
		}
		p := &g.phrases[idx]
		if keyword.TierFor(fields, consecutive) > keyword.TierFor(p.Fields, p.Consecutive) {
			p.Fields = fields
			p.Consecutive = consecutive
			p.Source = source
		}
		return
	}

	g.total++
	if len(g.phrases) >= g.opt.HardCap {
		g.seen[text] = -1
		return
	}
	g.phrases = append(g.phrases, keyword.Phrase{
		Text:        text,
		Length:      strings.Count(text, " ") + 1,
		Fields:      fields,
		Consecutive: consecutive,
		Source:      source,
	})
	g.seen[text] = len(g.phrases) - 1
}

// runs emits every contiguous window of the field's filtered sequence
func (g *generator) runs(f keyword.Field, seq []keyword.Token) {
	set := keyword.NewFieldSet(f)
	src := f.String() + ":run"
	for l := g.opt.MinLength; l <= g.opt.MaxLength; l++ {
		for i := 0; i+l <= len(seq); i++ {
			parts := make([]string, l)
			for k := 0; k < l; k++ {
				parts[k] = seq[i+k].Text
			}
			g.emit(strings.Join(parts, " "), set, true, src)
		}
	}
}

// entry is one distinct token text with canonical ordering metadata
type entry struct {
	text   string
	field  keyword.Field // strongest field containing the text
	index  int           // first occurrence index within that field
	member keyword.FieldSet
}

// loose emits every in-order combination of the field's distinct texts.
// Windows already emitted as runs survive dedup with their stronger tier
func (g *generator) loose(f keyword.Field, uniq []entry) {
	set := keyword.NewFieldSet(f)
	src := f.String() + ":loose"
	maxL := min(g.opt.MaxLength, len(uniq))
	for l := max(g.opt.MinLength, 2); l <= maxL; l++ {
		combinations(len(uniq), l, func(idx []int) {
			parts := make([]string, l)
			for k, ix := range idx {
				parts[k] = uniq[ix].text
			}
			g.emit(strings.Join(parts, " "), set, false, src)
		})
	}
}

// cross emits combinations over the union of two or three fields that
// genuinely draw from all of them; anything coverable by fewer fields
// was produced by an earlier, stronger branch
func (g *generator) cross(fs []keyword.Field, seqs map[keyword.Field][]keyword.Token) {
	union := unionEntries(fs, seqs)
	if len(union) == 0 {
		return
	}

	var set keyword.FieldSet
	names := make([]string, len(fs))
	for i, f := range fs {
		set = set.With(f)
		names[i] = f.String()
	}
	src := strings.Join(names, "+") + ":cross"

	// masks of every strict field subset; combos covered by one are rejected
	subsets := strictSubsetMasks(fs)

	minL := max(g.opt.MinLength, len(fs))
	maxL := min(g.opt.MaxLength, len(union))
	for l := minL; l <= maxL; l++ {
		combinations(len(union), l, func(idx []int) {
			for _, sub := range subsets {
				covered := true
				for _, ix := range idx {
					if union[ix].member&sub == 0 {
						covered = false
						break
					}
				}
				if covered {
					return
				}
			}
			parts := make([]string, l)
			for k, ix := range idx {
				parts[k] = union[ix].text
			}
			g.emit(strings.Join(parts, " "), set, false, src)
		})
	}
}

// strictSubsetMasks lists the field-set masks of every nonempty strict
// subset of fs, used to reject combinations coverable by fewer fields
func strictSubsetMasks(fs []keyword.Field) []keyword.FieldSet {
	var out []keyword.FieldSet
	n := len(fs)
	for bits := 1; bits < (1<<n)-1; bits++ {
		var m keyword.FieldSet
		for i := 0; i < n; i++ {
			if bits&(1<<i) != 0 {
				m = m.With(fs[i])
			}
		}
		out = append(out, m)
	}
	return out
}

// uniqueEntries returns the field's distinct texts in first-occurrence order
func uniqueEntries(seq []keyword.Token) []entry {
	seen := make(map[string]struct{}, len(seq))
	out := make([]entry, 0, len(seq))
	for _, t := range seq {
		if _, ok := seen[t.Text]; ok {
			continue
		}
		seen[t.Text] = struct{}{}
		out = append(out, entry{
			text:   t.Text,
			field:  t.Field,
			index:  t.Index,
			member: keyword.NewFieldSet(t.Field),
		})
	}
	return out
}

// unionEntries merges the distinct texts of several fields in canonical
// order: strongest field first, then first occurrence. A text present in
// several fields is anchored to the strongest and remembers all of them
func unionEntries(fs []keyword.Field, seqs map[keyword.Field][]keyword.Token) []entry {
	byText := make(map[string]int)
	var out []entry
	for _, f := range fs { // fs comes in rank order
		for _, e := range uniqueEntries(seqs[f]) {
			if i, ok := byText[e.text]; ok {
				out[i].member = out[i].member.With(f)
				continue
			}
			byText[e.text] = len(out)
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].field != out[b].field {
			return out[a].field < out[b].field
		}
		return out[a].index < out[b].index
	})
	// rebuild the text index after sorting
	for i := range out {
		byText[out[i].text] = i
	}
	return out
}

// combinations visits every k-subset of [0,n) in lexicographic index order
func combinations(n, k int, visit func(idx []int)) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)
		// advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// activeFields lists fields with at least one filtered token, rank order
func activeFields(fields map[keyword.Field]tokenize.FieldTokens) []keyword.Field {
	var out []keyword.Field
	for _, f := range keyword.AllFields() {
		if ft, ok := fields[f]; ok && len(ft.Filtered) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// capAlphabet bounds the distinct token texts considered across all
// fields. When over budget, texts are ranked by frequency, then field
// strength, then position; instances of dropped texts vanish from every
// sequence so later stages see a consistent alphabet
func capAlphabet(
	fields map[keyword.Field]tokenize.FieldTokens,
	active []keyword.Field,
	budget int,
) map[keyword.Field][]keyword.Token {
	type stat struct {
		text  string
		freq  int
		field keyword.Field
		index int
	}

	order := make([]string, 0, 64)
	stats := make(map[string]*stat, 64)
	for _, f := range active {
		for _, t := range fields[f].Filtered {
			s, ok := stats[t.Text]
			if !ok {
				s = &stat{text: t.Text, field: t.Field, index: t.Index}
				stats[t.Text] = s
				order = append(order, t.Text)
			}
			s.freq++
			if t.Field < s.field || (t.Field == s.field && t.Index < s.index) {
				s.field = t.Field
				s.index = t.Index
			}
		}
	}

	out := make(map[keyword.Field][]keyword.Token, len(active))
	if len(order) <= budget {
		for _, f := range active {
			out[f] = fields[f].Filtered
		}
		return out
	}

	ranked := make([]*stat, 0, len(order))
	for _, text := range order {
		ranked = append(ranked, stats[text])
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].freq != ranked[b].freq {
			return ranked[a].freq > ranked[b].freq
		}
		if ranked[a].field != ranked[b].field {
			return ranked[a].field < ranked[b].field
		}
		if ranked[a].index != ranked[b].index {
			return ranked[a].index < ranked[b].index
		}
		return ranked[a].text < ranked[b].text
	})

	keep := make(map[string]struct{}, budget)
	for _, s := range ranked[:budget] {
		keep[s.text] = struct{}{}
	}

	for _, f := range active {
		seq := make([]keyword.Token, 0, len(fields[f].Filtered))
		for _, t := range fields[f].Filtered {
			if _, ok := keep[t.Text]; ok {
				seq = append(seq, t)
			}
		}
		out[f] = seq
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
