package domain

import "time"

// SearchHistoryEntry is one persisted past query.
// Entries are keyed by exact query text: repeating a search increments
// Frequency and refreshes Timestamp instead of inserting a duplicate.
type SearchHistoryEntry struct {
	// Text is the raw query text as the caller typed it.
	Text string `json:"text"`

	// Timestamp is when the query was last issued.
	Timestamp time.Time `json:"timestamp"`

	// Frequency counts how often the query has been issued.
	Frequency int `json:"frequency"`
}
