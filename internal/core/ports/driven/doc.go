// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KeyValueStore: Durable string key-value persistence for search history
//   - ContentSource: Supplies the documents fed to the index
//   - ConfigStore: Application configuration
//
// The engine degrades gracefully when KeyValueStore fails at runtime:
// history becomes in-memory only, search itself is unaffected.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
