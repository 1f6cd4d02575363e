package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/vkoval/numrace/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is the wire format for room events.
type Message struct {
	GameID string      `json:"gameId"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client subscribed to one game's room.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// Hub maintains the set of active clients grouped into per-game rooms and
// broadcasts game events to them. It implements service.Broadcaster.
type Hub struct {
	// Registered clients by game ID
	rooms map[string]map[*Client]bool

	// Outbound events to fan out
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	logger zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS upgrades an HTTP request into a room subscription for gameID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// RoomUpdate publishes the current player list to the game's room.
func (h *Hub) RoomUpdate(gameID string, players []string) {
	h.publish(gameID, "roomUpdate", players)
}

// PlayerMove publishes a resolved move to the game's room.
func (h *Hub) PlayerMove(gameID string, ev service.MoveEvent) {
	h.publish(gameID, "playerMove", ev)
}

// PlayerGiveUp publishes a give-up resolution to the game's room.
func (h *Hub) PlayerGiveUp(gameID string, ev service.GiveUpEvent) {
	h.publish(gameID, "playerGiveup", ev)
}

// publish hands an event to the hub loop. Delivery is best-effort: when the
// hub is backed up the event is dropped and logged, never blocking the
// operation that produced it.
func (h *Hub) publish(gameID, event string, data interface{}) {
	message := &Message{
		GameID: gameID,
		Event:  event,
		Data:   data,
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Str("game", gameID).Str("event", event).Msg("broadcast dropped, hub busy")
	}
}

// registerClient adds a client to its game's room.
func (h *Hub) registerClient(client *Client) {
	if h.rooms[client.gameID] == nil {
		h.rooms[client.gameID] = make(map[*Client]bool)
	}
	h.rooms[client.gameID][client] = true

	h.logger.Debug().Str("game", client.gameID).
		Int("clients", len(h.rooms[client.gameID])).
		Msg("client joined room")
}

// unregisterClient removes a client from its game's room.
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.rooms[client.gameID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty rooms
			if len(clients) == 0 {
				delete(h.rooms, client.gameID)
			}

			h.logger.Debug().Str("game", client.gameID).
				Int("clients", len(clients)).
				Msg("client left room")
		}
	}
}

// broadcastMessage sends a message to all clients in the game's room.
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal broadcast message")
		return
	}

	if clients, ok := h.rooms[message.GameID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// We don't process incoming messages from clients currently
		// Just keep the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug().Err(err).Msg("websocket read error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
