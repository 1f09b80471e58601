package keyword

// Tier is the strength classification of a phrase, a pure function of
// which fields supplied its tokens and whether they were contiguous.
// Larger values are stronger so tiers compare with plain < and >
type Tier uint8

const (
	// TierMissing marks a phrase that cannot be assembled from any field
	TierMissing Tier = iota
	// TierCrossAll is a title+subtitle+keywords three-way cross without
	// title backing, the weakest assembleable shape
	TierCrossAll
	// TierSingleLoose is a non-consecutive phrase within subtitle or keywords
	TierSingleLoose
	// TierKeywordSubtitle is a keywords+subtitle cross, no title
	TierKeywordSubtitle
	// TierSingleRun is a consecutive phrase within subtitle or keywords
	TierSingleRun
	// TierTitleSubtitle is a title+subtitle cross (also any title-bearing
	// three-way: title presence dominates field count)
	TierTitleSubtitle
	// TierTitleKeyword is a title+keywords cross
	TierTitleKeyword
	// TierTitleLoose is a non-consecutive phrase entirely within the title
	TierTitleLoose
	// TierTitleRun is a consecutive phrase within the title, the strongest
	TierTitleRun
)

// Label returns the product-facing rank label for the tier
func (t Tier) Label() string {
	switch t {
	case TierTitleRun:
		return "1"
	case TierTitleLoose:
		return "2"
	case TierTitleKeyword:
		return "2b"
	case TierTitleSubtitle:
		return "3"
	case TierSingleRun:
		return "4"
	case TierKeywordSubtitle:
		return "5"
	case TierSingleLoose:
		return "6"
	case TierCrossAll:
		return "7"
	default:
		return "missing"
	}
}

// String returns a descriptive name for logs
func (t Tier) String() string {
	switch t {
	case TierTitleRun:
		return "title_run"
	case TierTitleLoose:
		return "title_loose"
	case TierTitleKeyword:
		return "title_keyword_cross"
	case TierTitleSubtitle:
		return "title_subtitle_cross"
	case TierSingleRun:
		return "single_field_run"
	case TierKeywordSubtitle:
		return "keyword_subtitle_cross"
	case TierSingleLoose:
		return "single_field_loose"
	case TierCrossAll:
		return "three_way_cross"
	default:
		return "missing"
	}
}

// TierFor derives the tier from provenance alone.
//
// Title presence is tested first and dominates field count: a title-bearing
// three-way classifies with the title+subtitle cross rather than dropping to
// the bottom. Only a cross that touches three fields without the title lands
// on TierCrossAll. Naive field-count logic gets this wrong, hence the
// explicit branches
func TierFor(fields FieldSet, consecutive bool) Tier {
	n := fields.Count()
	if n == 0 {
		return TierMissing
	}

	if fields.Has(FieldTitle) {
		if n == 1 {
			if consecutive {
				return TierTitleRun
			}
			return TierTitleLoose
		}
		if n == 2 {
			if fields.Has(FieldKeywords) {
				return TierTitleKeyword
			}
			return TierTitleSubtitle
		}
		return TierTitleSubtitle
	}

	switch n {
	case 1:
		if consecutive {
			return TierSingleRun
		}
		return TierSingleLoose
	case 2:
		return TierKeywordSubtitle
	default:
		return TierCrossAll
	}
}
