package domain

import (
	"strings"
	"time"
)

// Document represents a blog post as supplied by the content source.
// It is read-only to the engine; indexing never mutates it.
type Document struct {
	// ID uniquely identifies the document across the indexed set.
	// Re-indexing the same ID replaces the prior entry.
	ID string

	// Title is the post title. Titles are curated for subject-matching
	// and carry the highest field weight when scoring.
	Title string

	// Content is the full body text of the post.
	Content string

	// Tags is the ordered list of tags attached to the post.
	Tags []string

	// Category is the single category the post belongs to.
	Category string

	// PublishedAt is the publication timestamp.
	PublishedAt time.Time

	// Metadata carries display-only attributes (author, images, counts).
	// The engine passes it through unchanged and never inspects it.
	Metadata map[string]any
}

// Field returns the searchable text of the named field.
// Tags are joined with a single space so the tokenizer sees each
// tag as its own term.
func (d Document) Field(f SearchField) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldContent:
		return d.Content
	case FieldTags:
		return strings.Join(d.Tags, " ")
	case FieldCategory:
		return d.Category
	default:
		return ""
	}
}

// HasTag reports whether the document carries the given tag.
// Comparison is case-insensitive like all matching in the engine.
func (d Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
