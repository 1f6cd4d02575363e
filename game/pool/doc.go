// Package pool stores the set of valid puzzle targets the server draws from
// when creating games.
//
// The Pool interface exposes just Count and PickRandom; from the game core's
// perspective the pool is read-only and needs no write coordination. Two
// implementations are provided: SQLiteStore persists the set in a SQLite
// database (seeded with cmd/loadnumbers), and MemoryPool keeps it in memory
// for tests and quick local runs.
package pool
