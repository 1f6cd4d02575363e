package service

import (
	"context"

	"github.com/vkoval/numrace/game/session"
)

// GameService defines all game-related operations.
type GameService interface {
	// Multiplayer
	CreateGame(ctx context.Context) (*CreateResult, error)
	Join(ctx context.Context, gameID, playerName string) (*JoinResult, error)
	SubmitMove(ctx context.Context, gameID, playerName, candidate string) (*MoveResult, error)
	GiveUp(ctx context.Context, gameID, playerName string) (*GiveUpResult, error)
	GameInfo(ctx context.Context, gameID string) (*session.Snapshot, error)

	// Single-player
	RandomTarget(ctx context.Context) (string, error)
	CheckSolution(ctx context.Context, target, candidate string) (string, error)
	RevealSolution(ctx context.Context, target string) (string, error)
}
