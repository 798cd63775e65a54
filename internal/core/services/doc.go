// Package services implements the driving port interfaces.
// Services contain the core search logic and orchestrate calls to
// driven ports (adapters).
//
// The search pipeline lives here end to end: tokenizer, inverted index,
// TF-IDF scorer, highlighter, query engine and history store.
// Services are pure Go with no external dependencies.
package services
