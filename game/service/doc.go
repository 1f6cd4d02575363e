// Package service implements the game state machine for numrace.
//
// The service package implements:
//   - Game creation from the number pool
//   - Player admission with idempotent joins
//   - Move submission against the validation oracle
//   - Give-up resolution via the solver oracle
//   - Read-only game snapshots
//   - Single-player practice operations (random target, check, reveal)
//
// A game moves through exactly one transition, Open -> Finished, triggered by
// the first accepted move or by a give-up. The transition is committed under
// the game's lock in the session store, so concurrent winning moves cannot
// double-finish a game or overwrite the winner: whichever commit executes
// first wins, and every later attempt observes the finished state and reports
// the existing winner.
//
// Oracle calls are the only slow step and run without any game lock held.
// Oracle failures propagate to the caller untouched and never mutate game
// state. Broadcasts fan out through the Broadcaster interface after a commit
// and never fail the triggering operation.
package service
