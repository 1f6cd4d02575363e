package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vkoval/numrace/game/service"
)

// Server exposes the game operations as MCP tools, calling the game service
// directly.
type Server struct {
	service   service.GameService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given game service.
func NewServer(gameService service.GameService) *Server {
	s := &Server{
		service: gameService,
	}

	s.initMCPServer()
	return s
}

// GetMCPServer returns the underlying MCP server for message handling.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// initMCPServer initializes the MCP server with all tools.
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"numrace",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`numrace - MCP Interface

Two or more players race to submit a valid expression for a shared target
number. The first accepted submission wins the game.

AVAILABLE TOOLS:
- create_game: Create a new game and learn its target
- join_game: Join a game under a display name
- submit_move: Submit a candidate expression for the game's target
- give_up: End the game, revealing a solution; another joined player wins
- game_info: Inspect a game's target, players, status, and move history`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "create_game",
		Description: "Create a new multiplayer game with a random target",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleCreateGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "join_game",
		Description: "Join a game under a display name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to join",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name to join under",
				},
			},
			Required: []string{"game_id", "player_name"},
		},
	}, s.handleJoinGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_move",
		Description: "Submit a candidate expression for the game's target",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to play in",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the submitting player",
				},
				"solution": map[string]interface{}{
					"type":        "string",
					"description": "Candidate expression for the target",
				},
			},
			Required: []string{"game_id", "player_name", "solution"},
		},
	}, s.handleSubmitMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "give_up",
		Description: "Give up: the game ends, a solution is revealed, and the first other joined player wins",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to give up in",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the quitting player",
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleGiveUp)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_info",
		Description: "Get a game's target, players, status, winner, and move history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID to inspect",
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleGameInfo)
}

// Tool handlers

func (s *Server) handleCreateGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.CreateGame(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created game %s with target %s", result.GameID, result.Target)), nil
}

func (s *Server) handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	playerName, _ := args["player_name"].(string)

	result, err := s.service.Join(ctx, gameID, playerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\nPlayers: %s", result.Message, strings.Join(result.Players, ", "))), nil
}

func (s *Server) handleSubmitMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	playerName, _ := args["player_name"].(string)
	solution, _ := args["solution"].(string)

	result, err := s.service.SubmitMove(ctx, gameID, playerName, solution)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Verdict: %s", result.Verdict)
	if result.GameFinished {
		response += fmt.Sprintf("\n%s won the game!", result.Winner)
	}
	return mcp.NewToolResultText(response), nil
}

func (s *Server) handleGiveUp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)
	playerName, _ := args["player_name"].(string)

	result, err := s.service.GiveUp(ctx, gameID, playerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := result.Message
	if result.Solution != "" {
		response += fmt.Sprintf("\nSolution: %s", result.Solution)
	}
	return mcp.NewToolResultText(response), nil
}

func (s *Server) handleGameInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	snap, err := s.service.GameInfo(ctx, gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status := "open"
	if snap.Finished {
		status = "finished"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Game %s\nTarget: %s\nStatus: %s\n", snap.ID, snap.Target, status)
	if snap.Winner != "" {
		fmt.Fprintf(&b, "Winner: %s\n", snap.Winner)
	}
	fmt.Fprintf(&b, "Players: %s\nMoves:\n", strings.Join(snap.Players, ", "))
	for i, m := range snap.Moves {
		fmt.Fprintf(&b, "  %d. %s: %s -> %s\n", i+1, m.Player, m.Text, m.Verdict)
	}
	return mcp.NewToolResultText(b.String()), nil
}
