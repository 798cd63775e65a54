package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driving"
	"github.com/s-hiraoku/blogsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// searchBudget is the per-query latency target. It is a design target
// verified by timing instrumentation, not a hard cutoff: a slow search
// still runs to completion.
const searchBudget = 200 * time.Millisecond

// SearchService is the query engine. It orchestrates tokenization,
// candidate retrieval, filtering, scoring, highlighting, sorting and
// history recording for every search call.
type SearchService struct {
	cfg         Config
	tok         Tokenizer
	index       *Index
	scorer      *Scorer
	highlighter *Highlighter
	history     *HistoryStore
}

// NewSearchService creates a search service. The history store is
// optional; without it searches simply go unrecorded.
func NewSearchService(history *HistoryStore, cfg Config) *SearchService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	index := NewIndex()
	return &SearchService{
		cfg:         cfg,
		index:       index,
		scorer:      NewScorer(index, cfg.Weights),
		highlighter: NewHighlighter(cfg.SnippetLength),
		history:     history,
	}
}

// IndexDocuments adds or replaces documents in the index. Upsert per
// ID; the batch is atomic from the caller's perspective.
func (s *SearchService) IndexDocuments(_ context.Context, docs []domain.Document) error {
	logger.Section("Indexing")
	logger.Debug("Documents in batch: %d", len(docs))

	s.index.Upsert(docs)

	logger.Info("Index size: %d documents", s.index.Size())
	return nil
}

// ReplaceDocuments rebuilds the index from exactly the given
// documents, dropping anything indexed before. Content reloads go
// through here so deleted posts stop being searchable.
func (s *SearchService) ReplaceDocuments(_ context.Context, docs []domain.Document) error {
	logger.Section("Reindexing")
	logger.Debug("Documents in corpus: %d", len(docs))

	s.index.ReplaceAll(docs)

	logger.Info("Index size: %d documents", s.index.Size())
	return nil
}

// IndexSize returns the number of indexed documents.
func (s *SearchService) IndexSize() int {
	return s.index.Size()
}

// Search runs one query against the index.
//
// Empty query text yields an empty result set, not an error. Missing
// or unknown fields are programmer misuse and are reported as errors
// wrapping domain.ErrInvalidInput. Every search with non-empty text is
// recorded into the history, including zero-result searches.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q fields=%v exact=%t highlight=%t",
		query.Text, query.Fields, query.ExactMatch, query.Highlight)

	if err := query.Validate(); err != nil {
		logger.Warn("Invalid query: %v", err)
		return nil, err
	}

	text := strings.TrimSpace(query.Text)
	if text == "" {
		logger.Debug("Empty query text, returning no results")
		return []domain.SearchResult{}, nil
	}

	start := time.Now()

	terms := s.tok.Tokenize(text)
	logger.Debug("Query terms: %v", terms)

	results := s.run(query, terms)

	elapsed := time.Since(start)
	logger.Timing("search", elapsed)
	if elapsed > searchBudget {
		logger.Warn("Search exceeded %s budget: %s", searchBudget, elapsed)
	}

	s.record(ctx, text)

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// run executes the scoring pipeline for already-validated input.
func (s *SearchService) run(query domain.SearchQuery, terms []string) []domain.SearchResult {
	candidates := s.candidates(query.Fields, terms, query.ExactMatch)
	logger.Debug("Candidates: %d", len(candidates))
	if len(candidates) == 0 {
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0, len(candidates))
	for _, id := range candidates {
		doc, ok := s.index.Document(id)
		if !ok {
			continue
		}
		if query.Filters != nil && !matchesFilters(doc, *query.Filters) {
			continue
		}
		m := s.scorer.Score(doc, terms, query.Fields, query.ExactMatch)
		if m.score <= 0 {
			continue
		}
		result := domain.SearchResult{
			Document:  doc,
			Score:     m.score,
			Relevance: m.factors,
		}
		if query.Highlight {
			result.Highlights = s.highlights(doc, query.Fields, m.fieldTerms)
		}
		results = append(results, result)
	}
	logger.Debug("Scored results after filters: %d", len(results))

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return s.index.Position(results[i].Document.ID) < s.index.Position(results[j].Document.ID)
	})

	limit := query.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// candidates unions matching document IDs across terms within each
// field, then across fields. One field/term hit is enough to make a
// document a candidate; the scorer rewards hits in several.
// Order is the deterministic index insertion order.
func (s *SearchService) candidates(fields []domain.SearchField, terms []string, exact bool) []string {
	seen := make(map[string]struct{})
	for _, f := range fields {
		for _, t := range terms {
			for _, id := range s.index.Candidates(f, t) {
				seen[id] = struct{}{}
			}
			if exact {
				continue
			}
			for _, it := range s.index.TermsWithPrefix(f, t) {
				for _, id := range s.index.Candidates(f, it) {
					seen[id] = struct{}{}
				}
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.index.Position(ids[i]) < s.index.Position(ids[j])
	})
	return ids
}

// matchesFilters applies the AND-combined query filters.
func matchesFilters(doc domain.Document, f domain.SearchFilters) bool {
	if f.Category != "" && !strings.EqualFold(doc.Category, f.Category) {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, tag := range f.Tags {
			if doc.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if f.PublishedAfter != nil && doc.PublishedAt.Before(*f.PublishedAfter) {
		return false
	}
	if f.PublishedBefore != nil && doc.PublishedAt.After(*f.PublishedBefore) {
		return false
	}
	return true
}

// highlights produces one snippet per requested field that matched.
func (s *SearchService) highlights(
	doc domain.Document, fields []domain.SearchField, fieldTerms map[domain.SearchField][]string,
) []domain.Highlight {
	var out []domain.Highlight
	for _, f := range fields {
		terms := fieldTerms[f]
		if len(terms) == 0 {
			continue
		}
		snippet, ok := s.highlighter.Highlight(doc.Field(f), terms)
		if !ok {
			continue
		}
		out = append(out, domain.Highlight{Field: f, Snippet: snippet})
	}
	return out
}

// record stores the query text into the history. Recording is a side
// concern; a missing or failing history store never surfaces here.
func (s *SearchService) record(ctx context.Context, text string) {
	if s.history == nil {
		return
	}
	s.history.Record(ctx, text)
}

// SearchHistory returns past queries, most recent first.
func (s *SearchService) SearchHistory() []domain.SearchHistoryEntry {
	if s.history == nil {
		return []domain.SearchHistoryEntry{}
	}
	return s.history.Entries()
}

// Suggestions returns autocomplete suggestions for a partial query.
func (s *SearchService) Suggestions(_ context.Context, partial string) ([]string, error) {
	if s.history == nil {
		return []string{}, nil
	}
	return s.history.Suggestions(partial), nil
}

// ClearSearchHistory deletes all persisted history.
func (s *SearchService) ClearSearchHistory(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx)
}
