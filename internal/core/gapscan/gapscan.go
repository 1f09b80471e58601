// Package gapscan compares a target app's phrase set against competitor
// sets and surfaces coverage opportunities. All aggregation is order
// independent across competitors so callers may fan the classification
// out without changing results
package gapscan

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"asolens/internal/core/strength"
)

// Kind tags the three opportunity categories
type Kind uint8

const (
	KindMissingKeyword Kind = iota
	KindMissingPhrase
	KindFrequencyGap
)

func (k Kind) String() string {
	switch k {
	case KindMissingKeyword:
		return "missing_keyword"
	case KindMissingPhrase:
		return "missing_phrase"
	case KindFrequencyGap:
		return "frequency_gap"
	default:
		return "unknown"
	}
}

// DefaultTopN bounds each category independently
const DefaultTopN = 15

// Target is the app under audit: its classified phrases plus how often
// each single word occurs across its metadata fields
type Target struct {
	Phrases          []strength.Classified
	KeywordFrequency map[string]int
}

// CompetitorProfile is one competitor's view, read-only input
type CompetitorProfile struct {
	AppID            string
	Phrases          []strength.Classified
	KeywordFrequency map[string]int
}

// Opportunity is one surfaced gap
type Opportunity struct {
	Kind           Kind    `json:"kind"`
	Subject        string  `json:"subject"`
	Score          float64 `json:"score"`
	Competitors    int     `json:"competitors"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// Report groups opportunities by category, each truncated to TopN
type Report struct {
	MissingKeywords []Opportunity `json:"missing_keywords"`
	MissingPhrases  []Opportunity `json:"missing_phrases"`
	FrequencyGaps   []Opportunity `json:"frequency_gaps"`
}

// Options bounds the report
type Options struct {
	TopN int
}

// DefaultOptions returns the standard bounds
func DefaultOptions() Options { return Options{TopN: DefaultTopN} }

// Analyze produces the gap report. An empty competitor list yields an
// empty report, never an error
func Analyze(target Target, competitors []CompetitorProfile, opt Options) Report {
	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}
	if len(competitors) == 0 {
		return Report{}
	}

	targetTexts := make(map[string]struct{}, len(target.Phrases))
	targetWords := make(map[string]struct{})
	for _, c := range target.Phrases {
		targetTexts[c.Phrase.Text] = struct{}{}
		for _, w := range strings.Fields(c.Phrase.Text) {
			targetWords[w] = struct{}{}
		}
	}
	for w := range target.KeywordFrequency {
		targetWords[w] = struct{}{}
	}

	return Report{
		MissingKeywords: truncate(missingKeywords(targetWords, competitors), opt.TopN),
		MissingPhrases:  truncate(missingPhrases(targetTexts, competitors), opt.TopN),
		FrequencyGaps:   truncate(frequencyGaps(target.KeywordFrequency, competitors), opt.TopN),
	}
}

// missingKeywords finds single words competitors lean on that the target
// never uses. Half the score rewards breadth of adoption, half rewards
// usage depth among the adopters
func missingKeywords(targetWords map[string]struct{}, competitors []CompetitorProfile) []Opportunity {
	type agg struct {
		using int
		total int
	}
	byWord := make(map[string]*agg)
	for _, comp := range competitors {
		for w, n := range comp.KeywordFrequency {
			if _, ok := targetWords[w]; ok {
				continue
			}
			a, ok := byWord[w]
			if !ok {
				a = &agg{}
				byWord[w] = a
			}
			a.using++
			a.total += n
		}
	}

	out := make([]Opportunity, 0, len(byWord))
	for w, a := range byWord {
		avg := float64(a.total) / float64(a.using)
		score := float64(a.using)/float64(len(competitors))*50 + math.Min(avg/10, 1)*50
		out = append(out, Opportunity{
			Kind:        KindMissingKeyword,
			Subject:     w,
			Score:       score,
			Competitors: a.using,
			Recommendation: fmt.Sprintf(
				"add %q, used by %d of %d competitors", w, a.using, len(competitors)),
		})
	}
	return out
}

// missingPhrases finds multi-word phrases competitors carry that the
// target cannot produce. Scored purely by breadth of adoption
func missingPhrases(targetTexts map[string]struct{}, competitors []CompetitorProfile) []Opportunity {
	byText := make(map[string]int)
	for _, comp := range competitors {
		seen := make(map[string]struct{})
		for _, c := range comp.Phrases {
			text := c.Phrase.Text
			if !strings.Contains(text, " ") {
				continue
			}
			if _, ok := targetTexts[text]; ok {
				continue
			}
			if _, ok := seen[text]; ok {
				continue
			}
			seen[text] = struct{}{}
			byText[text]++
		}
	}

	out := make([]Opportunity, 0, len(byText))
	for text, using := range byText {
		out = append(out, Opportunity{
			Kind:        KindMissingPhrase,
			Subject:     text,
			Score:       float64(using) / float64(len(competitors)) * 100,
			Competitors: using,
			Recommendation: fmt.Sprintf(
				"cover %q, present for %d of %d competitors", text, using, len(competitors)),
		})
	}
	return out
}

// frequencyGaps finds words both sides use where the competitor average
// runs well ahead of the target. Gaps of one or less are noise
func frequencyGaps(targetFreq map[string]int, competitors []CompetitorProfile) []Opportunity {
	type agg struct {
		using int
		total int
	}
	byWord := make(map[string]*agg)
	for _, comp := range competitors {
		for w, n := range comp.KeywordFrequency {
			if _, ok := targetFreq[w]; !ok {
				continue
			}
			a, ok := byWord[w]
			if !ok {
				a = &agg{}
				byWord[w] = a
			}
			a.using++
			a.total += n
		}
	}

	out := make([]Opportunity, 0, len(byWord))
	for w, a := range byWord {
		avg := float64(a.total) / float64(a.using)
		gap := avg - float64(targetFreq[w])
		if gap <= 1 {
			continue
		}
		want := int(math.Ceil(avg))
		out = append(out, Opportunity{
			Kind:        KindFrequencyGap,
			Subject:     w,
			Score:       math.Min(gap/10, 1) * 100,
			Competitors: a.using,
			Recommendation: fmt.Sprintf(
				"increase usage of %q from %d to %d", w, targetFreq[w], want),
		})
	}
	return out
}

// truncate sorts by score descending, breaking ties by supporting
// competitor count descending then subject ascending, and keeps topN
func truncate(out []Opportunity, topN int) []Opportunity {
	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if out[a].Competitors != out[b].Competitors {
			return out[a].Competitors > out[b].Competitors
		}
		return out[a].Subject < out[b].Subject
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
