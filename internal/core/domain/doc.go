// Package domain defines the core business entities for blogsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A blog post with searchable fields and opaque payload
//   - SearchQuery: A single search request
//   - SearchResult: A scored match with highlights and relevance factors
//   - SearchHistoryEntry: A persisted past query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
