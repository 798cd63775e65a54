package driven

import (
	"context"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
)

// ContentSource supplies the documents fed to the search index.
// The engine only requires the searchable fields to exist and is
// agnostic to how they were produced.
type ContentSource interface {
	// Load returns the current document set. Malformed documents are
	// returned partially populated rather than dropped; only unreadable
	// sources produce an error.
	Load(ctx context.Context) ([]domain.Document, error)
}
