package driving

import (
	"context"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

// SearchService is the public surface of the search engine.
//
// Lifecycle: construct, index, query any number of times, discard.
// There is no hidden process-wide state; callers own the instance.
// All methods are synchronous computations; Search and Suggestions take
// a context for caller integration, not because they parallelise
// internally.
type SearchService interface {
	// IndexDocuments adds or replaces the given documents in the index.
	// Upsert per ID: re-indexing an ID overwrites, never duplicates.
	// The rebuild is atomic from the caller's perspective.
	IndexDocuments(ctx context.Context, docs []domain.Document) error

	// ReplaceDocuments rebuilds the index from exactly the given
	// documents. IDs absent from the batch are dropped. This is the
	// operation for full corpus reloads; IndexDocuments is for
	// incremental additions.
	ReplaceDocuments(ctx context.Context, docs []domain.Document) error

	// IndexSize returns the number of indexed documents.
	IndexSize() int

	// Search runs a query and returns results sorted by descending
	// score. Invalid fields are a caller error; empty query text is
	// not and yields an empty slice.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error)

	// SearchHistory returns past queries, most recent first.
	SearchHistory() []domain.SearchHistoryEntry

	// Suggestions returns autocomplete suggestions for a partial query,
	// ranked by frequency then recency.
	Suggestions(ctx context.Context, partial string) ([]string, error)

	// ClearSearchHistory deletes all persisted history.
	ClearSearchHistory(ctx context.Context) error
}
