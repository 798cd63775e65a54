package services

import (
	"github.com/s-hiraoku/blogsearch/internal/core/domain"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driven"
)

// Config holds the tunable knobs of the search engine.
type Config struct {
	// DefaultLimit is the result cap used when a query sets none.
	DefaultLimit int

	// SnippetLength bounds highlight excerpts, in bytes.
	SnippetLength int

	// MaxHistoryEntries caps the persisted search history.
	MaxHistoryEntries int

	// MaxSuggestions caps the autocomplete suggestion list.
	MaxSuggestions int

	// Weights are the per-field scoring weights.
	Weights FieldWeights
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:      10,
		SnippetLength:     160,
		MaxHistoryEntries: 100,
		MaxSuggestions:    5,
		Weights:           DefaultFieldWeights(),
	}
}

// ConfigFromStore overlays persisted settings onto the defaults.
// Missing or zero-valued keys keep their default.
func ConfigFromStore(store driven.ConfigStore) Config {
	cfg := DefaultConfig()
	if store == nil {
		return cfg
	}
	if v := store.GetInt("search.default_limit"); v > 0 {
		cfg.DefaultLimit = v
	}
	if v := store.GetInt("search.snippet_length"); v > 0 {
		cfg.SnippetLength = v
	}
	if v := store.GetInt("history.max_entries"); v > 0 {
		cfg.MaxHistoryEntries = v
	}
	if v := store.GetInt("search.max_suggestions"); v > 0 {
		cfg.MaxSuggestions = v
	}
	weightKeys := map[domain.SearchField]string{
		domain.FieldTitle:    "weights.title",
		domain.FieldTags:     "weights.tags",
		domain.FieldCategory: "weights.category",
		domain.FieldContent:  "weights.content",
	}
	for f, key := range weightKeys {
		if v := store.GetFloat(key); v > 0 {
			cfg.Weights[f] = v
		}
	}
	return cfg
}
