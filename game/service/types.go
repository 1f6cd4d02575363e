package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a missing or empty required field.
var ErrInvalidInput = errors.New("missing required field")

// FinishedError reports an operation attempted after the game reached its
// terminal state. It carries the existing winner so clients can reconcile.
type FinishedError struct {
	Winner string
}

func (e *FinishedError) Error() string {
	if e.Winner == "" {
		return "game already finished"
	}
	return fmt.Sprintf("game already finished by %s", e.Winner)
}

// CreateResult is the outcome of creating a new game.
type CreateResult struct {
	GameID string `json:"gameId"`
	Target string `json:"target"`
}

// JoinResult is the outcome of a player joining a game.
type JoinResult struct {
	Players []string `json:"players"`
	Winner  string   `json:"winner,omitempty"`
	Message string   `json:"message"`
}

// MoveResult is the outcome of a committed move. Winner is set only when the
// game is finished.
type MoveResult struct {
	Player       string `json:"player"`
	Verdict      string `json:"verdict"`
	GameFinished bool   `json:"gameFinished"`
	Winner       string `json:"winner,omitempty"`
	Message      string `json:"message,omitempty"`
}

// GiveUpResult is the outcome of a give-up. When the game was already
// finished, Solution is empty and Winner reports the prior outcome.
type GiveUpResult struct {
	Solution string `json:"solution,omitempty"`
	Winner   string `json:"winner,omitempty"`
	Message  string `json:"message"`
}

// MoveEvent is the realtime payload published when a move resolves.
type MoveEvent struct {
	PlayerName   string `json:"playerName"`
	Solution     string `json:"solution"`
	Verdict      string `json:"verdict"`
	GameFinished bool   `json:"gameFinished"`
	Winner       string `json:"winner,omitempty"`
}

// GiveUpEvent is the realtime payload published when a game ends by give-up.
type GiveUpEvent struct {
	Quitter  string `json:"quitter"`
	Solution string `json:"solution"`
	Winner   string `json:"winner,omitempty"`
}

// Broadcaster publishes game events to everyone in a game's room. Delivery is
// fire-and-forget: a failed or dropped broadcast never fails the operation
// that triggered it.
type Broadcaster interface {
	RoomUpdate(gameID string, players []string)
	PlayerMove(gameID string, ev MoveEvent)
	PlayerGiveUp(gameID string, ev GiveUpEvent)
}

// NopBroadcaster discards all events. Useful in tests and headless runs.
type NopBroadcaster struct{}

func (NopBroadcaster) RoomUpdate(string, []string)      {}
func (NopBroadcaster) PlayerMove(string, MoveEvent)     {}
func (NopBroadcaster) PlayerGiveUp(string, GiveUpEvent) {}
