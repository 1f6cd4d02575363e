package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("game not found")
)

// entry pairs a session with its own lock so operations on different games
// never contend with each other. The store's lock protects the mapping only.
type entry struct {
	mu      sync.Mutex
	session *Session
}

// Store is the authoritative in-memory table of active games. All reads and
// writes of a single game are serialized through its entry lock; the check
// that a game is still open and the mutation that depends on it always happen
// inside one Update call.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewStore creates an empty game store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
	}
}

// Create stores a new open game for the given target and returns its snapshot.
func (st *Store) Create(target string) Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := generateGameID()
	for _, exists := st.entries[id]; exists; _, exists = st.entries[id] {
		id = generateGameID()
	}

	s := &Session{
		ID:        id,
		Target:    target,
		Players:   []string{},
		Status:    StatusOpen,
		Moves:     []Move{},
		CreatedAt: time.Now(),
	}
	st.entries[id] = &entry{session: s}

	return s.Snapshot()
}

// View returns a read-only snapshot of the game.
func (st *Store) View(id string) (Snapshot, error) {
	e, err := st.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Snapshot(), nil
}

// Update runs fn with exclusive access to the game's state. Everything fn
// observes and mutates is atomic with respect to other Update and View calls
// for the same id; updates to different games proceed in parallel.
func (st *Store) Update(id string, fn func(*Session) error) error {
	e, err := st.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Remove deletes the game from the store. Removing an unknown id is a no-op.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, id)
}

// Count returns the number of active games.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

// ForEachExpired calls fn with the id of every game created more than ttl
// before now, finished or not. fn runs without any lock held, so it may call
// Remove.
func (st *Store) ForEachExpired(now time.Time, ttl time.Duration, fn func(id string)) {
	cutoff := now.Add(-ttl)

	st.mu.RLock()
	var expired []string
	for id, e := range st.entries {
		if e.session.CreatedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	st.mu.RUnlock()

	for _, id := range expired {
		fn(id)
	}
}

func (st *Store) lookup(id string) (*entry, error) {
	st.mu.RLock()
	e, exists := st.entries[id]
	st.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	return e, nil
}

// generateGameID produces a random 6-character game ID. Collisions within
// the active set are handled by the caller retrying.
func generateGameID() string {
	bytes := make([]byte, 3)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
