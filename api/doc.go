// Package api provides the HTTP REST surface for the numrace server.
//
// The api package implements:
//   - RESTful endpoints for multiplayer game operations
//   - Single-player practice endpoints
//   - WebSocket upgrade handling into game rooms
//   - Static file serving
//
// Endpoints:
//
// Multiplayer:
//   - POST /api/games - Create a new game
//   - GET /api/games/{id} - Game info (target, players, status, moves)
//   - POST /api/games/{id}/join - Join a game
//   - POST /api/games/{id}/move - Submit a candidate expression
//   - POST /api/games/{id}/giveup - End the game, revealing a solution
//
// Single-player:
//   - GET /api/random - Draw a random target
//   - POST /api/check - Check a candidate against a target
//   - POST /api/solution - Reveal a solution for a target
//
// Realtime:
//   - GET /ws?game=<id> - Subscribe to a game's room events
//
// All endpoints accept and return JSON. Errors are returned as JSON with
// appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// An operation attempted on a finished game additionally carries the winner:
//
//	{
//	  "error": "Game finished",
//	  "winner": "Alice"
//	}
package api
