package pool

import (
	"context"
	"math/rand"
	"sync"
)

// MemoryPool is an in-memory Pool, handy for tests and for running the
// server without a seeded database.
type MemoryPool struct {
	mu      sync.RWMutex
	numbers []string
}

// NewMemoryPool creates a pool holding the given targets.
func NewMemoryPool(numbers ...string) *MemoryPool {
	return &MemoryPool{numbers: append([]string{}, numbers...)}
}

// Count returns the number of targets in the pool.
func (p *MemoryPool) Count(ctx context.Context) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.numbers), nil
}

// PickRandom draws one target uniformly at random.
func (p *MemoryPool) PickRandom(ctx context.Context) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.numbers) == 0 {
		return "", ErrEmpty
	}
	return p.numbers[rand.Intn(len(p.numbers))], nil
}
