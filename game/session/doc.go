// Package session provides game session storage for the numrace server.
//
// The package implements:
//   - The Session data model: target, players, move history, outcome
//   - Thread-safe session storage and retrieval
//   - Unique game ID generation
//   - TTL-based eviction via a background Reaper
//
// Core Types:
//
// Store is the authoritative in-memory table of active games. Session
// represents an individual game round with its own audit trail and metadata
// like creation and finish times.
//
// Game Identifiers:
//
// Games use 6-character hex IDs for easy sharing between players. The store
// ensures IDs are unique within the active set and retries generation on
// collision.
//
// Concurrency:
//
// The store is thread-safe and supports concurrent operations. The store's
// own lock guards only the id-to-game mapping; every game carries its own
// lock, so operations on different games never block each other. Store.Update
// gives the caller exclusive access to one game, which is what makes the
// open-check plus finish-transition atomic: of any number of concurrent
// attempts to finish a game, exactly one TryFinish returns true.
//
// Usage:
//
//	store := session.NewStore()
//
//	// Create a new game
//	snap := store.Create("123")
//
//	// Mutate under the game's lock
//	err := store.Update(snap.ID, func(s *session.Session) error {
//		s.AddPlayer("Alice")
//		return nil
//	})
//
// Cleanup:
//
// Games are evicted once their age exceeds the retention window, regardless
// of whether they finished. The Reaper sweeps on a fixed interval and stops
// when its context is canceled.
package session
