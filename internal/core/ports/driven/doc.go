// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FoodStore: Food catalog access (memory, bundled JSON, JSON file, SQLite)
//   - CandidateSource: Produces the candidate list for a committed query
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Navigator: Follows result targets. Without it, selecting a result
//     that has no handler reports domain.ErrNoTarget.
//   - SlugIndex: Prefix completion of slugs. Without it, completion is empty.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
