package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

func writePost(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadOne(t *testing.T, dir string) domain.Document {
	t.Helper()
	docs, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

func TestSource_Load_FrontMatter(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "liquid-glass.md", `+++
id = "post-1"
title = "Introduction to Liquid Glass Effects"
category = "frontend"
tags = ["css", "javascript"]
date = 2025-03-01
draft = true
+++

Glassmorphism with backdrop filters and blur.
`)

	doc := loadOne(t, dir)

	assert.Equal(t, "post-1", doc.ID)
	assert.Equal(t, "Introduction to Liquid Glass Effects", doc.Title)
	assert.Equal(t, "frontend", doc.Category)
	assert.Equal(t, []string{"css", "javascript"}, doc.Tags)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), doc.PublishedAt)
	assert.Equal(t, "Glassmorphism with backdrop filters and blur.", doc.Content)
	assert.Equal(t, true, doc.Metadata["draft"], "unknown keys pass through as metadata")
}

func TestSource_Load_NoFrontMatter_TitleFromHeading(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "plain.md", "# Plain Post\n\nJust a body.\n")

	doc := loadOne(t, dir)

	assert.Equal(t, "Plain Post", doc.Title)
	assert.Contains(t, doc.Content, "# Plain Post")
	assert.NotEmpty(t, doc.ID)
}

func TestSource_Load_TitleFromFilenameFallback(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "liquid-glass_effects.md", "No heading in this body.\n")

	doc := loadOne(t, dir)

	assert.Equal(t, "liquid glass effects", doc.Title)
}

func TestSource_Load_MalformedFrontMatterKeepsBody(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", `+++
title = "Unclosed quote
+++

# Recovered Heading

Body text that must still be indexed.
`)

	doc := loadOne(t, dir)

	assert.Equal(t, "Recovered Heading", doc.Title, "heading fallback after bad front matter")
	assert.Contains(t, doc.Content, "Body text that must still be indexed.")
}

func TestSource_Load_DateFormats(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "rfc3339.md", `+++
title = "A"
date = "2025-03-01T10:30:00Z"
+++
body`)
	writePost(t, dir, "plain-date.md", `+++
title = "B"
date = "2025-03-02"
+++
body`)

	docs, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	byTitle := map[string]domain.Document{}
	for _, d := range docs {
		byTitle[d.Title] = d
	}
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), byTitle["A"].PublishedAt)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), byTitle["B"].PublishedAt)
}

func TestSource_Load_DeterministicIDsAndOrder(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "b.md", "# B\nbody")
	writePost(t, dir, "a.md", "# A\nbody")
	writePost(t, dir, filepath.Join("nested", "c.md"), "# C\nbody")

	first, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3, "walks nested directories")

	second, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same tree loads identically every time")
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID, "documents sorted by ID")
	}
}

func TestSource_Load_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "post.md", "# Post\nbody")
	writePost(t, dir, "notes.txt", "not a post")
	writePost(t, dir, "image.png", "binary-ish")

	docs, err := NewSource(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSource_Load_MissingDirectory(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := src.Load(context.Background())

	assert.Error(t, err)
}

func TestSplitFrontMatter(t *testing.T) {
	meta, body := splitFrontMatter("+++\ntitle = \"X\"\n+++\nbody here")
	assert.Equal(t, "title = \"X\"", meta)
	assert.Equal(t, "body here", body)

	meta, body = splitFrontMatter("no front matter at all")
	assert.Empty(t, meta)
	assert.Equal(t, "no front matter at all", body)

	// Unterminated block: treat the whole file as body.
	meta, body = splitFrontMatter("+++\ntitle = \"X\"\nbody here")
	assert.Empty(t, meta)
	assert.Equal(t, "+++\ntitle = \"X\"\nbody here", body)

	// Leading BOM must not hide the delimiter.
	meta, _ = splitFrontMatter("\ufeff+++\ntitle = \"X\"\n+++\nbody")
	assert.Equal(t, "title = \"X\"", meta)
}
