package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vkoval/numrace/game/pool"
	"github.com/vkoval/numrace/game/session"
	"github.com/vkoval/numrace/oracle"
)

// gameServiceImpl implements the GameService interface. It owns no state of
// its own: games live in the store, targets come from the pool, verdicts come
// from the oracle.
type gameServiceImpl struct {
	store     *session.Store
	pool      pool.Pool
	validator oracle.Validator
	solver    oracle.Solver
	broadcast Broadcaster
	logger    zerolog.Logger
}

// NewGameService creates a new game service instance.
func NewGameService(store *session.Store, numbers pool.Pool, validator oracle.Validator, solver oracle.Solver, broadcast Broadcaster, logger zerolog.Logger) GameService {
	if broadcast == nil {
		broadcast = NopBroadcaster{}
	}
	return &gameServiceImpl{
		store:     store,
		pool:      numbers,
		validator: validator,
		solver:    solver,
		broadcast: broadcast,
		logger:    logger,
	}
}

// CreateGame draws a random target from the pool and opens a new game.
func (s *gameServiceImpl) CreateGame(ctx context.Context) (*CreateResult, error) {
	target, err := s.pool.PickRandom(ctx)
	if err != nil {
		return nil, err
	}

	snap := s.store.Create(target)
	s.logger.Info().Str("game", snap.ID).Str("target", target).Msg("game created")

	return &CreateResult{GameID: snap.ID, Target: snap.Target}, nil
}

// Join admits a player into a game. Joining with a name that is already in
// the game is a no-op; the player list keeps no duplicates.
func (s *gameServiceImpl) Join(ctx context.Context, gameID, playerName string) (*JoinResult, error) {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var snap session.Snapshot
	err := s.store.Update(strings.TrimSpace(gameID), func(g *session.Session) error {
		if g.Status == session.StatusFinished {
			return &FinishedError{Winner: g.Winner}
		}
		g.AddPlayer(name)
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast.RoomUpdate(snap.ID, snap.Players)

	return &JoinResult{
		Players: snap.Players,
		Winner:  snap.Winner,
		Message: fmt.Sprintf("%s joined", name),
	}, nil
}

// SubmitMove evaluates a candidate against the game's target and commits the
// result. The oracle call runs without any game lock held; only the final
// commit needs exclusive access, so any number of moves for the same game may
// be in flight at once. The first accepted move to commit finishes the game;
// later moves are still recorded but reported against the existing winner.
func (s *gameServiceImpl) SubmitMove(ctx context.Context, gameID, playerName, candidate string) (*MoveResult, error) {
	name := strings.TrimSpace(playerName)
	text := strings.TrimSpace(candidate)
	if name == "" || text == "" {
		return nil, ErrInvalidInput
	}
	gameID = strings.TrimSpace(gameID)

	// Fast-path rejection before paying for the oracle call.
	snap, err := s.store.View(gameID)
	if err != nil {
		return nil, err
	}
	if snap.Finished {
		return nil, &FinishedError{Winner: snap.Winner}
	}

	verdict, err := s.validator.Check(ctx, snap.Target, text)
	if err != nil {
		return nil, err
	}

	// Commit: the finished re-check and the transition are atomic under the
	// game's lock. The audit trail records the attempt either way.
	now := time.Now()
	move := session.Move{Player: name, Text: text, Verdict: verdict.Raw, Time: now}

	var won bool
	var winner string
	err = s.store.Update(gameID, func(g *session.Session) error {
		g.RecordMove(move)
		if g.Status == session.StatusFinished {
			return &FinishedError{Winner: g.Winner}
		}
		if verdict.Accepted {
			won = g.TryFinish(name, now)
		}
		winner = g.Winner
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast.PlayerMove(gameID, MoveEvent{
		PlayerName:   name,
		Solution:     text,
		Verdict:      verdict.Raw,
		GameFinished: won,
		Winner:       winner,
	})

	result := &MoveResult{
		Player:       name,
		Verdict:      verdict.Raw,
		GameFinished: won,
		Winner:       winner,
	}
	if won {
		result.Message = fmt.Sprintf("%s won", name)
		s.logger.Info().Str("game", gameID).Str("winner", name).Msg("game finished")
	}
	return result, nil
}

// GiveUp ends a game by revealing the solver's solution. The winner is the
// first other joined player, if any. Calling GiveUp on a finished game is
// idempotent: it returns the existing outcome and reveals nothing new.
func (s *gameServiceImpl) GiveUp(ctx context.Context, gameID, playerName string) (*GiveUpResult, error) {
	name := strings.TrimSpace(playerName)
	gameID = strings.TrimSpace(gameID)

	snap, err := s.store.View(gameID)
	if err != nil {
		return nil, err
	}
	if snap.Finished {
		return alreadyFinished(snap.Winner), nil
	}

	solution, err := s.solver.Solve(ctx, snap.Target)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var res *GiveUpResult
	err = s.store.Update(gameID, func(g *session.Session) error {
		// A winning move may have committed while the solver ran; the prior
		// outcome stands and no terminal record is appended.
		if g.Status == session.StatusFinished {
			res = alreadyFinished(g.Winner)
			return nil
		}

		winner := ""
		if name != "" {
			for _, p := range g.Players {
				if p != name {
					winner = p
					break
				}
			}
		}

		g.TryFinish(winner, now)
		g.RecordMove(session.Move{Player: name, Text: solution, Verdict: session.VerdictGiveUp, Time: now})

		message := "Game ended (no winner)"
		if winner != "" {
			message = fmt.Sprintf("%s wins (other player gave up)", winner)
		}
		res = &GiveUpResult{Solution: solution, Winner: winner, Message: message}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Solution != "" {
		s.broadcast.PlayerGiveUp(gameID, GiveUpEvent{Quitter: name, Solution: res.Solution, Winner: res.Winner})
		s.logger.Info().Str("game", gameID).Str("quitter", name).Str("winner", res.Winner).Msg("game ended by give-up")
	}
	return res, nil
}

// GameInfo returns a read-only snapshot of the game.
func (s *gameServiceImpl) GameInfo(ctx context.Context, gameID string) (*session.Snapshot, error) {
	snap, err := s.store.View(strings.TrimSpace(gameID))
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// RandomTarget draws a target for single-player practice.
func (s *gameServiceImpl) RandomTarget(ctx context.Context) (string, error) {
	return s.pool.PickRandom(ctx)
}

// CheckSolution evaluates a candidate outside any game and returns the raw
// verdict.
func (s *gameServiceImpl) CheckSolution(ctx context.Context, target, candidate string) (string, error) {
	target = strings.TrimSpace(target)
	candidate = strings.TrimSpace(candidate)
	if target == "" || candidate == "" {
		return "", ErrInvalidInput
	}

	verdict, err := s.validator.Check(ctx, target, candidate)
	if err != nil {
		return "", err
	}
	return verdict.Raw, nil
}

// RevealSolution returns the solver's solution for a target outside any game.
func (s *gameServiceImpl) RevealSolution(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrInvalidInput
	}
	return s.solver.Solve(ctx, target)
}

func alreadyFinished(winner string) *GiveUpResult {
	return &GiveUpResult{Winner: winner, Message: "Game finished"}
}
