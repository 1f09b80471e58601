package keyword

// Token is a single normalized word occurrence within one field.
// The same text may occur in several fields (or twice in one field);
// every occurrence is tracked separately so field membership and
// contiguity can be judged per occurrence
type Token struct {
	Text  string
	Field Field
	Index int // position within that field's token sequence
}

// Phrase is a space-joined run of token texts treated as one
// discoverability unit. Text is the case-insensitive dedup key
type Phrase struct {
	Text        string
	Length      int
	Fields      FieldSet
	Consecutive bool // tokens adjacent, in order, within a single field

	// Source labels the generation branch that produced the phrase,
	// e.g. "title:run", "title+keywords:cross". Diagnostic only
	Source string
}
