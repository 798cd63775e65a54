package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/s-hiraoku/blogsearch/internal/core/domain"
	"github.com/s-hiraoku/blogsearch/internal/core/ports/driven"
	"github.com/s-hiraoku/blogsearch/internal/logger"
)

// historyKey is the single well-known key the serialized history lives
// under in the persistence substrate.
const historyKey = "blogsearch:history"

// HistoryStore records past queries and serves ranked autocomplete
// suggestions.
//
// Entries are kept in memory ordered most recent first and mirrored to
// the key-value substrate as JSON after every mutation. Persistence
// failures degrade to in-memory-only operation: history is a side
// concern and must never break the search contract.
type HistoryStore struct {
	mu      sync.Mutex
	kv      driven.KeyValueStore
	entries []domain.SearchHistoryEntry

	maxEntries     int
	maxSuggestions int

	// now is swappable for tests.
	now func() time.Time
}

// NewHistoryStore creates a history store backed by kv, reading any
// previously persisted history. A nil kv, a missing key and corrupt
// stored JSON all start with an empty history.
func NewHistoryStore(ctx context.Context, kv driven.KeyValueStore, cfg Config) *HistoryStore {
	h := &HistoryStore{
		kv:             kv,
		maxEntries:     cfg.MaxHistoryEntries,
		maxSuggestions: cfg.MaxSuggestions,
		now:            time.Now,
	}
	if h.maxEntries <= 0 {
		h.maxEntries = DefaultConfig().MaxHistoryEntries
	}
	if h.maxSuggestions <= 0 {
		h.maxSuggestions = DefaultConfig().MaxSuggestions
	}
	h.load(ctx)
	return h
}

// load reads persisted history. All failures leave the store empty.
func (h *HistoryStore) load(ctx context.Context) {
	if h.kv == nil {
		return
	}
	raw, err := h.kv.Get(ctx, historyKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("History load failed: %v (starting empty)", err)
		}
		return
	}
	var entries []domain.SearchHistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("History is corrupt: %v (starting empty)", err)
		return
	}
	h.entries = entries
}

// Record upserts an entry for text: an existing identical query gets
// its frequency incremented and timestamp refreshed, a new query is
// inserted at the front. The history is persisted after the mutation.
func (h *HistoryStore) Record(ctx context.Context, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	for i, e := range h.entries {
		if e.Text == text {
			e.Frequency++
			e.Timestamp = now
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			h.entries = append([]domain.SearchHistoryEntry{e}, h.entries...)
			h.persist(ctx)
			return
		}
	}

	h.entries = append([]domain.SearchHistoryEntry{{
		Text:      text,
		Timestamp: now,
		Frequency: 1,
	}}, h.entries...)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[:h.maxEntries]
	}
	h.persist(ctx)
}

// Entries returns the history, most recent first.
func (h *HistoryStore) Entries() []domain.SearchHistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.SearchHistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Suggestions returns past query texts matching partial
// (case-insensitive prefix or substring), ordered by frequency and,
// for equal frequency, by recency.
func (h *HistoryStore) Suggestions(partial string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	needle := strings.ToLower(strings.TrimSpace(partial))
	if needle == "" {
		return nil
	}

	var matched []domain.SearchHistoryEntry
	for _, e := range h.entries {
		if strings.Contains(strings.ToLower(e.Text), needle) {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Frequency != matched[j].Frequency {
			return matched[i].Frequency > matched[j].Frequency
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if len(matched) > h.maxSuggestions {
		matched = matched[:h.maxSuggestions]
	}
	texts := make([]string, len(matched))
	for i, e := range matched {
		texts[i] = e.Text
	}
	return texts
}

// Clear deletes all history, including the persisted key.
func (h *HistoryStore) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	if h.kv == nil {
		return nil
	}
	if err := h.kv.Remove(ctx, historyKey); err != nil {
		logger.Warn("History clear failed: %v", err)
		return errors.Join(domain.ErrHistoryUnavailable, err)
	}
	return nil
}

// persist mirrors the in-memory history to the substrate. Failures are
// logged and swallowed. Caller holds the lock.
func (h *HistoryStore) persist(ctx context.Context) {
	if h.kv == nil {
		return
	}
	raw, err := json.Marshal(h.entries)
	if err != nil {
		logger.Warn("History encode failed: %v", err)
		return
	}
	if err := h.kv.Set(ctx, historyKey, string(raw)); err != nil {
		logger.Warn("History persist failed: %v (continuing in-memory)", err)
	}
}
