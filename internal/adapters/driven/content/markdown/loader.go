package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driven"
	"github.com/s-hiraoku/blogsearch/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// markdownExtensions are the file extensions treated as posts.
var markdownExtensions = map[string]bool{
	".md":       true,
	".mdx":      true,
	".markdown": true,
}

// Source loads blog posts from a directory tree.
type Source struct {
	dir string
}

// NewSource creates a content source over the given directory.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Dir returns the content directory.
func (s *Source) Dir() string {
	return s.dir
}

// Load walks the content directory and parses every markdown post.
// A malformed post is returned with whatever fields could be read
// rather than dropped; only an unreadable directory is an error.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !markdownExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		doc, err := s.loadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable post %s: %v", path, err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", s.dir, err)
	}

	// Deterministic document order regardless of filesystem iteration.
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	logger.Info("Loaded %d posts from %s", len(docs), s.dir)
	return docs, nil
}

// loadFile parses a single post file.
func (s *Source) loadFile(path string) (domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, err
	}

	meta, body := splitFrontMatter(string(raw))
	doc := domain.Document{
		ID:      documentID(path),
		Content: strings.TrimSpace(body),
	}

	if meta != "" {
		fields := make(map[string]any)
		if err := toml.Unmarshal([]byte(meta), &fields); err != nil {
			// Partial indexing beats losing the post: keep the body,
			// fall back to heading/filename for the title.
			logger.Warn("Malformed front matter in %s: %v", path, err)
		} else {
			applyFrontMatter(&doc, fields)
		}
	}

	if doc.Title == "" {
		doc.Title = extractTitle(body)
	}
	if doc.Title == "" {
		doc.Title = titleFromFilename(path)
	}
	return doc, nil
}

// applyFrontMatter maps the structured front matter keys onto the
// document and passes everything else through as opaque metadata.
func applyFrontMatter(doc *domain.Document, fields map[string]any) {
	for key, val := range fields {
		switch key {
		case "id":
			if id, ok := val.(string); ok && id != "" {
				doc.ID = id
			}
		case "title":
			if title, ok := val.(string); ok {
				doc.Title = title
			}
		case "category":
			if category, ok := val.(string); ok {
				doc.Category = category
			}
		case "tags":
			doc.Tags = stringSlice(val)
		case "date":
			if t, ok := frontMatterTime(val); ok {
				doc.PublishedAt = t
			}
		default:
			if doc.Metadata == nil {
				doc.Metadata = make(map[string]any)
			}
			doc.Metadata[key] = val
		}
	}
}

// documentID derives a stable ID from the file path, so re-loading the
// same post upserts instead of duplicating. SHA1 namespace UUIDs are
// deterministic for a given path.
func documentID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(path))).String()
}

// titleFromFilename turns "liquid-glass_effects.md" into
// "liquid glass effects".
func titleFromFilename(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}

func stringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func frontMatterTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case toml.LocalDate:
		return v.AsTime(time.UTC), true
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
