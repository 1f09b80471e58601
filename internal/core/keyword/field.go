// Package keyword defines the shared vocabulary of the audit engine:
// metadata fields, tokens, phrases, and the strength tier hierarchy
package keyword

// Field is one distinct metadata text slot on an app listing
type Field uint8

const (
	// FieldTitle is the app title
	FieldTitle Field = iota
	// FieldSubtitle is the subtitle shown under the title
	FieldSubtitle
	// FieldKeywords is the hidden comma separated keyword field
	FieldKeywords
	// FieldPromo is the promotional text slot (not yet indexed, reserved)
	FieldPromo

	numFields
)

// MaxRunes is the platform character budget for the field
func (f Field) MaxRunes() int {
	switch f {
	case FieldTitle, FieldSubtitle:
		return 30
	case FieldKeywords:
		return 100
	case FieldPromo:
		return 170
	default:
		return 0
	}
}

// String returns the canonical lowercase field name
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldSubtitle:
		return "subtitle"
	case FieldKeywords:
		return "keywords"
	case FieldPromo:
		return "promo"
	default:
		return "unknown"
	}
}

// AllFields returns every field in rank order, strongest first
func AllFields() []Field {
	return []Field{FieldTitle, FieldSubtitle, FieldKeywords, FieldPromo}
}

// FieldSet is a small bitmask over Field
type FieldSet uint8

// NewFieldSet builds a set from the given fields
func NewFieldSet(fs ...Field) FieldSet {
	var s FieldSet
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// With returns the set with f added
func (s FieldSet) With(f Field) FieldSet { return s | 1<<f }

// Has reports whether f is in the set
func (s FieldSet) Has(f Field) bool { return s&(1<<f) != 0 }

// Count returns the number of fields in the set
func (s FieldSet) Count() int {
	n := 0
	for f := Field(0); f < numFields; f++ {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// Fields returns the members in rank order
func (s FieldSet) Fields() []Field {
	out := make([]Field, 0, 3)
	for _, f := range AllFields() {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Strings returns the member names in rank order
func (s FieldSet) Strings() []string {
	fs := s.Fields()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}
