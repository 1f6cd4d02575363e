package pool

import (
	"context"
	"errors"
)

// ErrEmpty is returned when the pool holds no targets to draw from.
var ErrEmpty = errors.New("no numbers in pool")

// Pool is a read-only source of puzzle targets. The game core never writes
// to it; seeding happens out of band (see cmd/loadnumbers).
type Pool interface {
	Count(ctx context.Context) (int, error)
	PickRandom(ctx context.Context) (string, error)
}
