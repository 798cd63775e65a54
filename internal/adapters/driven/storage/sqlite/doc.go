// Package sqlite provides the durable key-value store backing search
// history persistence.
//
// The get/set/remove contract is backed by a SQLite database under
// the blogsearch data directory, so history survives process restarts.
// Schema changes are applied through embedded SQL migrations.
package sqlite
