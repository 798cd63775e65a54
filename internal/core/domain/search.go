package domain

import (
	"fmt"
	"time"
)

// SearchField names a searchable document field.
type SearchField string

// Searchable fields. The zero value is not a valid field.
const (
	FieldTitle    SearchField = "title"
	FieldContent  SearchField = "content"
	FieldTags     SearchField = "tags"
	FieldCategory SearchField = "category"
)

// AllFields returns every searchable field in weighting order.
func AllFields() []SearchField {
	return []SearchField{FieldTitle, FieldTags, FieldCategory, FieldContent}
}

// Valid reports whether f names a searchable field.
func (f SearchField) Valid() bool {
	switch f {
	case FieldTitle, FieldContent, FieldTags, FieldCategory:
		return true
	}
	return false
}

// SearchFilters narrows a result set before scoring.
// Filters are AND-combined: a document must satisfy every set filter.
type SearchFilters struct {
	// Category keeps only documents in this category (case-insensitive
	// equality). Empty means no category filter.
	Category string

	// Tags keeps only documents carrying at least one of these tags.
	Tags []string

	// PublishedAfter keeps only documents published at or after this time.
	PublishedAfter *time.Time

	// PublishedBefore keeps only documents published at or before this time.
	PublishedBefore *time.Time
}

// Empty reports whether no filter is set.
func (f SearchFilters) Empty() bool {
	return f.Category == "" && len(f.Tags) == 0 &&
		f.PublishedAfter == nil && f.PublishedBefore == nil
}

// SearchQuery describes a single search request.
type SearchQuery struct {
	// Text is the raw query string. Empty text yields an empty result
	// set rather than an error.
	Text string

	// Fields is the non-empty set of fields to search.
	Fields []SearchField

	// Limit is the maximum number of results. Non-positive falls back
	// to the engine's configured default.
	Limit int

	// Filters optionally narrows the candidate set.
	Filters *SearchFilters

	// Highlight requests marked-up snippets per matched field.
	Highlight bool

	// ExactMatch rewards exact term and phrase matches over partial
	// (prefix) token matches.
	ExactMatch bool
}

// Validate checks the query for programmer misuse. Empty query text is
// not an error; missing or unknown fields are.
func (q SearchQuery) Validate() error {
	if len(q.Fields) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyFields)
	}
	for _, f := range q.Fields {
		if !f.Valid() {
			return fmt.Errorf("%w: %w %q", ErrInvalidInput, ErrUnknownField, string(f))
		}
	}
	return nil
}

// RelevanceFactors breaks down why a document scored the way it did.
// Exposed so callers and tests can assert on individual components
// rather than only on the aggregate score.
type RelevanceFactors struct {
	// TitleMatches counts query terms matched in the title.
	TitleMatches int `json:"titleMatches"`

	// ContentMatches counts query terms matched in the content.
	ContentMatches int `json:"contentMatches"`

	// TagMatches counts query terms matched in the tags.
	TagMatches int `json:"tagMatches"`

	// CategoryMatches counts query terms matched in the category.
	CategoryMatches int `json:"categoryMatches"`

	// Uniqueness measures how rare the rarest matched term is across
	// the corpus, normalised to [0, 1]. A term found in a single
	// document of a large corpus approaches 1; a term found in every
	// document is 0.
	Uniqueness float64 `json:"uniqueness"`

	// ExactPhrase reports whether the full query occurred verbatim in
	// at least one searched field.
	ExactPhrase bool `json:"exactPhrase"`
}

// Highlight is a marked-up snippet for one field.
type Highlight struct {
	// Field is the field the snippet was taken from.
	Field SearchField `json:"field"`

	// Snippet embeds <mark> tags around matched terms. Text outside
	// the marks is byte-identical to the source field.
	Snippet string `json:"snippet"`
}

// SearchResult represents a single scored match.
type SearchResult struct {
	// Document is the matched document, unmodified.
	Document Document `json:"document"`

	// Score is the relevance score. Ordering is meaningful only within
	// one query's result set.
	Score float64 `json:"score"`

	// Highlights holds per-field snippets when the query requested them.
	Highlights []Highlight `json:"highlights,omitempty"`

	// Relevance is the score breakdown.
	Relevance RelevanceFactors `json:"relevanceFactors"`
}
