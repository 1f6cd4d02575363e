// Package mcp exposes the numrace game operations as MCP tools.
//
// The Server registers one tool per game operation (create_game, join_game,
// submit_move, give_up, game_info) and calls the game service directly, so
// agents can play games over the same state machine the REST API uses. The
// underlying MCP server is mounted at /mcp by main.
package mcp
