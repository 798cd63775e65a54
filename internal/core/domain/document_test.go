package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Field(t *testing.T) {
	doc := Document{
		Title:    "Liquid Glass Effects",
		Content:  "Glassmorphism with blur.",
		Tags:     []string{"css", "javascript"},
		Category: "frontend",
	}

	assert.Equal(t, "Liquid Glass Effects", doc.Field(FieldTitle))
	assert.Equal(t, "Glassmorphism with blur.", doc.Field(FieldContent))
	assert.Equal(t, "css javascript", doc.Field(FieldTags))
	assert.Equal(t, "frontend", doc.Field(FieldCategory))
	assert.Empty(t, doc.Field("author"))
}

func TestDocument_HasTag(t *testing.T) {
	doc := Document{Tags: []string{"CSS", "javascript"}}

	assert.True(t, doc.HasTag("css"))
	assert.True(t, doc.HasTag("JavaScript"))
	assert.False(t, doc.HasTag("gpu"))
	assert.False(t, Document{}.HasTag("css"))
}
