package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery_Validate(t *testing.T) {
	valid := SearchQuery{Text: "glass", Fields: []SearchField{FieldTitle, FieldTags}}
	assert.NoError(t, valid.Validate())

	empty := SearchQuery{Text: "glass", Fields: []SearchField{}}
	err := empty.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrEmptyFields)

	unknown := SearchQuery{Text: "glass", Fields: []SearchField{FieldTitle, "author"}}
	err = unknown.Validate()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "author")

	// Empty text is not a validation error.
	blank := SearchQuery{Fields: []SearchField{FieldTitle}}
	assert.NoError(t, blank.Validate())
}

func TestSearchField_Valid(t *testing.T) {
	for _, f := range AllFields() {
		assert.True(t, f.Valid(), string(f))
	}
	assert.False(t, SearchField("").Valid())
	assert.False(t, SearchField("author").Valid())
	assert.False(t, SearchField("Title").Valid(), "field names are case-sensitive")
}

func TestSearchFilters_Empty(t *testing.T) {
	assert.True(t, SearchFilters{}.Empty())
	assert.False(t, SearchFilters{Category: "frontend"}.Empty())
	assert.False(t, SearchFilters{Tags: []string{"css"}}.Empty())

	now := time.Now()
	assert.False(t, SearchFilters{PublishedAfter: &now}.Empty())
	assert.False(t, SearchFilters{PublishedBefore: &now}.Empty())
}
