package session

import (
	"time"
)

// Status describes where a game is in its lifecycle. There is no separate
// "in progress" state: a game accepts moves from creation until it finishes.
type Status string

const (
	StatusOpen     Status = "open"
	StatusFinished Status = "finished"
)

// Move is one entry in a game's audit trail. Moves are append-only; failed
// attempts are recorded alongside the winning one.
type Move struct {
	Player  string    `json:"player"`
	Text    string    `json:"solution"`
	Verdict string    `json:"verdict"`
	Time    time.Time `json:"time"`
}

// VerdictGiveUp tags the terminal move record appended when a game ends via
// give-up with the solver's revealed solution.
const VerdictGiveUp = "GIVEUP_SOLUTION"

// Session is one puzzle round: a target, the players racing to solve it, and
// the outcome. All mutation goes through the Store, which serializes access
// per session; the fields here are never touched directly by callers.
type Session struct {
	ID         string
	Target     string
	Players    []string
	Status     Status
	Winner     string
	Moves      []Move
	CreatedAt  time.Time
	FinishedAt time.Time
}

// Snapshot is a read-only copy of a session's externally visible state,
// safe to hand out after the store's lock is released.
type Snapshot struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	Players    []string  `json:"players"`
	Finished   bool      `json:"finished"`
	Winner     string    `json:"winner,omitempty"`
	Moves      []Move    `json:"moves"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Snapshot copies the session's visible state. Callers outside this package
// must only invoke it inside Store.Update.
func (s *Session) Snapshot() Snapshot {
	players := make([]string, len(s.Players))
	copy(players, s.Players)
	moves := make([]Move, len(s.Moves))
	copy(moves, s.Moves)

	return Snapshot{
		ID:         s.ID,
		Target:     s.Target,
		Players:    players,
		Finished:   s.Status == StatusFinished,
		Winner:     s.Winner,
		Moves:      moves,
		CreatedAt:  s.CreatedAt,
		FinishedAt: s.FinishedAt,
	}
}

// AddPlayer appends name if not already present. Returns true if the player
// list changed. Callers outside this package must only invoke it inside
// Store.Update.
func (s *Session) AddPlayer(name string) bool {
	for _, p := range s.Players {
		if p == name {
			return false
		}
	}
	s.Players = append(s.Players, name)
	return true
}

// RecordMove appends a move to the audit trail. The trail is append-only and
// includes rejected attempts. Callers outside this package must only invoke
// it inside Store.Update.
func (s *Session) RecordMove(m Move) {
	s.Moves = append(s.Moves, m)
}

// TryFinish transitions Open -> Finished exactly once. It returns true only
// for the call that performs the transition; the winner is never overwritten.
// Callers outside this package must only invoke it inside Store.Update.
func (s *Session) TryFinish(winner string, at time.Time) bool {
	if s.Status == StatusFinished {
		return false
	}
	s.Status = StatusFinished
	s.Winner = winner
	s.FinishedAt = at
	return true
}
