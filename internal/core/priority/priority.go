// Package priority folds strength tiers and external market signals
// into one comparable 0-100 score.
//
// Absent signals are scored at the midpoint (50), not zero. This is
// deliberate policy: a phrase must never sink in the ranking purely
// because enrichment data was unavailable for it
package priority

import (
	"sort"

	"asolens/internal/core/keyword"
	"asolens/internal/core/strength"
)

// Component weights. They sum to 1 so Value stays within [0,100]
const (
	WeightStrength    = 0.30
	WeightDemand      = 0.25
	WeightOpportunity = 0.20
	WeightTrend       = 0.15
	WeightIntent      = 0.10
)

// Midpoint substitutes for any absent signal
const Midpoint = 50

// Signals carries the optional external inputs for one phrase.
// Nil means the provider had nothing for it
type Signals struct {
	Demand      *float64
	Opportunity *float64
	Trend       *float64
	Intent      *float64
}

// Components are the resolved 0-100 inputs that produced a Value
type Components struct {
	Strength    float64 `json:"strength"`
	Demand      float64 `json:"demand"`
	Opportunity float64 `json:"opportunity"`
	Trend       float64 `json:"trend"`
	Intent      float64 `json:"intent"`
}

// Score is the composite priority for one classified phrase
type Score struct {
	Value      float64    `json:"value"`
	Components Components `json:"components"`
}

// Base maps a tier to its fixed strength component. Monotonic in tier
// order: a stronger tier never scores below a weaker one
func Base(t keyword.Tier) float64 {
	switch t {
	case keyword.TierTitleRun:
		return 100
	case keyword.TierTitleLoose:
		return 85
	case keyword.TierTitleKeyword:
		return 80
	case keyword.TierTitleSubtitle:
		return 70
	case keyword.TierSingleRun:
		return 55
	case keyword.TierKeywordSubtitle:
		return 40
	case keyword.TierSingleLoose:
		return 25
	case keyword.TierCrossAll:
		return 10
	default:
		return 0
	}
}

// Compute scores one classified phrase. Pure function of its inputs
func Compute(c strength.Classified, sig Signals) Score {
	comp := Components{
		Strength:    Base(c.Tier),
		Demand:      resolve(sig.Demand),
		Opportunity: resolve(sig.Opportunity),
		Trend:       resolve(sig.Trend),
		Intent:      resolve(sig.Intent),
	}
	value := WeightStrength*comp.Strength +
		WeightDemand*comp.Demand +
		WeightOpportunity*comp.Opportunity +
		WeightTrend*comp.Trend +
		WeightIntent*comp.Intent
	return Score{Value: clamp(value), Components: comp}
}

// Scored pairs a classified phrase with its priority
type Scored struct {
	strength.Classified
	Score Score
}

// Provider supplies signals per canonical phrase text. A nil Provider
// scores everything at the midpoint
type Provider func(text string) Signals

// ComputeAll scores a classified set, preserving input order
func ComputeAll(items []strength.Classified, provider Provider) []Scored {
	out := make([]Scored, len(items))
	for i, c := range items {
		var sig Signals
		if provider != nil {
			sig = provider(c.Phrase.Text)
		}
		out[i] = Scored{Classified: c, Score: Compute(c, sig)}
	}
	return out
}

// Sort orders by score descending; ties break by tier strength
// descending then text ascending so rankings are reproducible
func Sort(items []Scored) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Score.Value != items[b].Score.Value {
			return items[a].Score.Value > items[b].Score.Value
		}
		if items[a].Tier != items[b].Tier {
			return items[a].Tier > items[b].Tier
		}
		return items[a].Phrase.Text < items[b].Phrase.Text
	})
}

// Top sorts a copy and returns its first n entries
func Top(items []Scored, n int) []Scored {
	cp := make([]Scored, len(items))
	copy(cp, items)
	Sort(cp)
	if n < len(cp) {
		cp = cp[:n]
	}
	return cp
}

func resolve(v *float64) float64 {
	if v == nil {
		return Midpoint
	}
	return clamp(*v)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
