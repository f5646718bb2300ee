package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"guess-master/internal/models"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 16
)

// pongWait is how long a spectator may stay silent, pongs included, before
// it is dropped. Pings go out at nine tenths of it.
var pongWait = 60 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams game events to spectators. It implements
// services.Broadcaster and never carries a game's secret.
type WebSocketHandler struct {
	hub      *WebSocketHub
	pongWait time.Duration
}

type WebSocketHub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}
	closeOnce  sync.Once
}

type Client struct {
	Conn *websocket.Conn
	send chan *Message
}

type Message struct {
	Type   string      `json:"type"`
	GameID string      `json:"game_id,omitempty"`
	Data   interface{} `json:"data"`
}

// outbound targets one client, or every client when client is nil.
type outbound struct {
	client *Client
	msg    *Message
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 100),
		done:       make(chan struct{}),
	}

	go hub.run()

	return &WebSocketHandler{hub: hub, pongWait: pongWait}
}

// Close stops the hub and disconnects every spectator.
func (h *WebSocketHandler) Close() {
	h.hub.closeOnce.Do(func() { close(h.hub.done) })
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		Conn: conn,
		send: make(chan *Message, clientSendSize),
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump(h.pongWait * 9 / 10)

	defer func() {
		select {
		case h.hub.unregister <- client:
		case <-h.hub.done:
		}
	}()

	conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(h.pongWait))

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.enqueue(outbound{client: client, msg: &Message{
			Type: "PONG",
			Data: gin.H{"timestamp": time.Now().Unix()},
		}})
	}
}

func (h *WebSocketHandler) enqueue(out outbound) {
	select {
	case h.hub.broadcast <- out:
	case <-h.hub.done:
	default:
		log.Printf("WebSocket broadcast queue full, dropping %s", out.msg.Type)
	}
}

// writePump owns every write to the connection, including keepalive pings.
func (c *Client) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteJSON(msg); err != nil {
				log.Printf("WebSocket write failed: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = true
			log.Printf("Spectator connected (%d total)", len(hub.clients))

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.send)
				log.Printf("Spectator disconnected (%d total)", len(hub.clients))
			}

		case out := <-hub.broadcast:
			hub.deliver(out)

		case <-hub.done:
			for client := range hub.clients {
				close(client.send)
			}
			hub.clients = nil
			return
		}
	}
}

func (hub *WebSocketHub) deliver(out outbound) {
	if out.client != nil {
		if hub.clients[out.client] {
			hub.push(out.client, out.msg)
		}
		return
	}
	for client := range hub.clients {
		hub.push(client, out.msg)
	}
}

// push never blocks the hub; a spectator that cannot keep up is dropped.
func (hub *WebSocketHub) push(client *Client, msg *Message) {
	select {
	case client.send <- msg:
	default:
		delete(hub.clients, client)
		close(client.send)
	}
}

func (h *WebSocketHandler) BroadcastGameStarted(gameID string, prize float64) {
	h.enqueue(outbound{msg: &Message{
		Type:   "GAME_STARTED",
		GameID: gameID,
		Data: gin.H{
			"game_id":   gameID,
			"prize":     prize,
			"timestamp": time.Now().Unix(),
		},
	}})
}

func (h *WebSocketHandler) BroadcastGuess(gameID string, guess int, outcome models.GuessOutcome, prize float64) {
	h.enqueue(outbound{msg: &Message{
		Type:   "GUESS_RESULT",
		GameID: gameID,
		Data: gin.H{
			"game_id":   gameID,
			"guess":     guess,
			"outcome":   outcome,
			"prize":     prize,
			"timestamp": time.Now().Unix(),
		},
	}})
}
