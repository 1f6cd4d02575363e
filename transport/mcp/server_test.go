package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vkoval/numrace/game/service"
	"github.com/vkoval/numrace/game/session"
)

// mockGameService implements service.GameService for testing
type mockGameService struct {
	CreateGameFunc func(ctx context.Context) (*service.CreateResult, error)
	JoinFunc       func(ctx context.Context, gameID, playerName string) (*service.JoinResult, error)
	SubmitMoveFunc func(ctx context.Context, gameID, playerName, candidate string) (*service.MoveResult, error)
	GiveUpFunc     func(ctx context.Context, gameID, playerName string) (*service.GiveUpResult, error)
	GameInfoFunc   func(ctx context.Context, gameID string) (*session.Snapshot, error)
}

func (m *mockGameService) CreateGame(ctx context.Context) (*service.CreateResult, error) {
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(ctx)
	}
	return &service.CreateResult{GameID: "abc123", Target: "123"}, nil
}

func (m *mockGameService) Join(ctx context.Context, gameID, playerName string) (*service.JoinResult, error) {
	if m.JoinFunc != nil {
		return m.JoinFunc(ctx, gameID, playerName)
	}
	return &service.JoinResult{Players: []string{playerName}, Message: playerName + " joined"}, nil
}

func (m *mockGameService) SubmitMove(ctx context.Context, gameID, playerName, candidate string) (*service.MoveResult, error) {
	if m.SubmitMoveFunc != nil {
		return m.SubmitMoveFunc(ctx, gameID, playerName, candidate)
	}
	return &service.MoveResult{Player: playerName, Verdict: "valid"}, nil
}

func (m *mockGameService) GiveUp(ctx context.Context, gameID, playerName string) (*service.GiveUpResult, error) {
	if m.GiveUpFunc != nil {
		return m.GiveUpFunc(ctx, gameID, playerName)
	}
	return &service.GiveUpResult{Solution: "1+2", Message: "Game ended (no winner)"}, nil
}

func (m *mockGameService) GameInfo(ctx context.Context, gameID string) (*session.Snapshot, error) {
	if m.GameInfoFunc != nil {
		return m.GameInfoFunc(ctx, gameID)
	}
	return &session.Snapshot{ID: gameID, Target: "123", Players: []string{}}, nil
}

func (m *mockGameService) RandomTarget(ctx context.Context) (string, error) {
	return "123", nil
}

func (m *mockGameService) CheckSolution(ctx context.Context, target, candidate string) (string, error) {
	return "valid", nil
}

func (m *mockGameService) RevealSolution(ctx context.Context, target string) (string, error) {
	return "1+2", nil
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	server := NewServer(&mockGameService{})

	if server == nil {
		t.Fatal("Expected server to be created")
	}

	if server.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestHandleCreateGame(t *testing.T) {
	server := NewServer(&mockGameService{
		CreateGameFunc: func(ctx context.Context) (*service.CreateResult, error) {
			return &service.CreateResult{GameID: "a1b2c3", Target: "456"}, nil
		},
	})

	result, err := server.handleCreateGame(context.Background(), toolRequest("create_game", map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleCreateGame failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "a1b2c3") || !strings.Contains(text, "456") {
		t.Errorf("Expected game id and target in response, got %q", text)
	}
}

func TestHandleJoinGame(t *testing.T) {
	var gotGameID, gotPlayer string
	server := NewServer(&mockGameService{
		JoinFunc: func(ctx context.Context, gameID, playerName string) (*service.JoinResult, error) {
			gotGameID, gotPlayer = gameID, playerName
			return &service.JoinResult{Players: []string{"Alice", "Bob"}, Message: "Bob joined"}, nil
		},
	})

	result, err := server.handleJoinGame(context.Background(), toolRequest("join_game", map[string]interface{}{
		"game_id":     "a1b2c3",
		"player_name": "Bob",
	}))
	if err != nil {
		t.Fatalf("handleJoinGame failed: %v", err)
	}

	if gotGameID != "a1b2c3" || gotPlayer != "Bob" {
		t.Errorf("Arguments not passed through: %s %s", gotGameID, gotPlayer)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Bob joined") || !strings.Contains(text, "Alice, Bob") {
		t.Errorf("Expected join message and player list, got %q", text)
	}
}

func TestHandleSubmitMove(t *testing.T) {
	t.Run("winning move", func(t *testing.T) {
		server := NewServer(&mockGameService{
			SubmitMoveFunc: func(ctx context.Context, gameID, playerName, candidate string) (*service.MoveResult, error) {
				return &service.MoveResult{
					Player:       playerName,
					Verdict:      "valid",
					GameFinished: true,
					Winner:       playerName,
				}, nil
			},
		})

		result, err := server.handleSubmitMove(context.Background(), toolRequest("submit_move", map[string]interface{}{
			"game_id":     "a1b2c3",
			"player_name": "Alice",
			"solution":    "1+2+3",
		}))
		if err != nil {
			t.Fatalf("handleSubmitMove failed: %v", err)
		}

		text := resultText(t, result)
		if !strings.Contains(text, "Verdict: valid") {
			t.Errorf("Expected verdict in response, got %q", text)
		}
		if !strings.Contains(text, "Alice won the game!") {
			t.Errorf("Expected win announcement, got %q", text)
		}
	})

	t.Run("rejected move", func(t *testing.T) {
		server := NewServer(&mockGameService{
			SubmitMoveFunc: func(ctx context.Context, gameID, playerName, candidate string) (*service.MoveResult, error) {
				return &service.MoveResult{Player: playerName, Verdict: "invalid"}, nil
			},
		})

		result, err := server.handleSubmitMove(context.Background(), toolRequest("submit_move", map[string]interface{}{
			"game_id":     "a1b2c3",
			"player_name": "Bob",
			"solution":    "1-1",
		}))
		if err != nil {
			t.Fatalf("handleSubmitMove failed: %v", err)
		}

		text := resultText(t, result)
		if !strings.Contains(text, "Verdict: invalid") {
			t.Errorf("Expected verdict in response, got %q", text)
		}
		if strings.Contains(text, "won the game") {
			t.Errorf("Rejected move must not announce a winner, got %q", text)
		}
	})

	t.Run("finished game becomes error result", func(t *testing.T) {
		server := NewServer(&mockGameService{
			SubmitMoveFunc: func(ctx context.Context, gameID, playerName, candidate string) (*service.MoveResult, error) {
				return nil, &service.FinishedError{Winner: "Alice"}
			},
		})

		result, err := server.handleSubmitMove(context.Background(), toolRequest("submit_move", map[string]interface{}{
			"game_id":     "a1b2c3",
			"player_name": "Bob",
			"solution":    "1+2+3",
		}))
		if err != nil {
			t.Fatalf("handleSubmitMove failed: %v", err)
		}

		if !result.IsError {
			t.Error("Expected error result for a finished game")
		}
		if !strings.Contains(resultText(t, result), "Alice") {
			t.Errorf("Expected winner in error message, got %q", resultText(t, result))
		}
	})
}

func TestHandleGiveUp(t *testing.T) {
	server := NewServer(&mockGameService{
		GiveUpFunc: func(ctx context.Context, gameID, playerName string) (*service.GiveUpResult, error) {
			return &service.GiveUpResult{
				Solution: "(1+2)*41",
				Winner:   "Bob",
				Message:  "Bob wins (other player gave up)",
			}, nil
		},
	})

	result, err := server.handleGiveUp(context.Background(), toolRequest("give_up", map[string]interface{}{
		"game_id":     "a1b2c3",
		"player_name": "Alice",
	}))
	if err != nil {
		t.Fatalf("handleGiveUp failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Bob wins") || !strings.Contains(text, "Solution: (1+2)*41") {
		t.Errorf("Expected outcome and solution, got %q", text)
	}
}

func TestHandleGameInfo(t *testing.T) {
	server := NewServer(&mockGameService{
		GameInfoFunc: func(ctx context.Context, gameID string) (*session.Snapshot, error) {
			return &session.Snapshot{
				ID:       gameID,
				Target:   "123",
				Players:  []string{"Alice", "Bob"},
				Finished: true,
				Winner:   "Alice",
				Moves: []session.Move{
					{Player: "Bob", Text: "1-1", Verdict: "invalid"},
					{Player: "Alice", Text: "1+2+3", Verdict: "valid"},
				},
			}, nil
		},
	})

	result, err := server.handleGameInfo(context.Background(), toolRequest("game_info", map[string]interface{}{
		"game_id": "a1b2c3",
	}))
	if err != nil {
		t.Fatalf("handleGameInfo failed: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{"Target: 123", "Status: finished", "Winner: Alice", "Alice, Bob", "1. Bob: 1-1 -> invalid", "2. Alice: 1+2+3 -> valid"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in response, got %q", want, text)
		}
	}
}

func TestHandleGameInfo_NotFound(t *testing.T) {
	server := NewServer(&mockGameService{
		GameInfoFunc: func(ctx context.Context, gameID string) (*session.Snapshot, error) {
			return nil, session.ErrNotFound
		},
	})

	result, err := server.handleGameInfo(context.Background(), toolRequest("game_info", map[string]interface{}{
		"game_id": "nope",
	}))
	if err != nil {
		t.Fatalf("handleGameInfo failed: %v", err)
	}

	if !result.IsError {
		t.Error("Expected error result for an unknown game")
	}
}
