// Package websocket provides the realtime transport for numrace game rooms.
//
// The Hub groups connected clients into rooms keyed by game ID and fans out
// game events to every member of a room. It implements service.Broadcaster,
// translating state-machine outcomes into the wire events clients listen for:
//
//   - roomUpdate: the player list after a join
//   - playerMove: a resolved move with verdict, finished flag, and winner
//   - playerGiveup: the quitter, the revealed solution, and the winner
//
// Delivery is best-effort and fire-and-forget. No ordering is guaranteed
// across rooms, a slow client gets disconnected rather than blocking the
// room, and a dropped broadcast never fails the operation that produced it.
//
// Clients subscribe via ServeWS, typically through GET /ws?game=<id>. The
// connection is kept alive with ping/pong; inbound messages are ignored.
package websocket
