package pool

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS valid_numbers (
	number TEXT PRIMARY KEY
);
`

// SQLiteStore is a Pool backed by a SQLite table of valid targets.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates, if needed) the pool database at path.
// Use ":memory:" for an ephemeral pool.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("pool path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open pool db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping pool db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create pool schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Count returns the number of targets in the pool.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM valid_numbers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count numbers: %w", err)
	}
	return n, nil
}

// PickRandom draws one target uniformly at random. Returns ErrEmpty when the
// pool has no rows.
func (s *SQLiteStore) PickRandom(ctx context.Context) (string, error) {
	var number string
	err := s.db.QueryRowContext(ctx,
		`SELECT number FROM valid_numbers ORDER BY RANDOM() LIMIT 1`).Scan(&number)
	if err == sql.ErrNoRows {
		return "", ErrEmpty
	}
	if err != nil {
		return "", fmt.Errorf("pick random number: %w", err)
	}
	return number, nil
}

// Add inserts a target into the pool, ignoring duplicates. It exists for the
// seeding tool and tests; the game server itself never calls it.
func (s *SQLiteStore) Add(ctx context.Context, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return fmt.Errorf("empty number")
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO valid_numbers (number) VALUES (?)`, number); err != nil {
		return fmt.Errorf("insert number: %w", err)
	}
	return nil
}
