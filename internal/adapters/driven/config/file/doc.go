// Package file provides the TOML file-backed configuration store.
//
// Configuration lives in config.toml under the blogsearch config
// directory and holds the engine tuning knobs: result limit, snippet
// length, history caps and per-field scoring weights.
package file
