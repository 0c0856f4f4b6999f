package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"nepbet-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler owns the hub of live connections and doubles as the
// broadcaster the crash loop pushes its ticks through.
type WebSocketHandler struct {
	ledger *services.Ledger
	hub    *WebSocketHub
}

type WebSocketHub struct {
	clients    map[int64]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	UserID int64
	Conn   *websocket.Conn
}

type Message struct {
	Type   string      `json:"type"`
	UserID int64       `json:"user_id,omitempty"`
	GameID string      `json:"game_id,omitempty"`
	Data   interface{} `json:"data"`
}

func NewWebSocketHandler(ledger *services.Ledger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[int64]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		ledger: ledger,
		hub:    hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Int64("user", userID).Msg("WebSocket error")
			}
			break
		}

		h.handleMessage(client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(client *Client, msg *Message) {
	switch msg.Type {
	case "PING":
		h.sendPong(client)
	case "GET_BALANCE":
		h.sendBalance(client)
	}
}

func (h *WebSocketHandler) sendBalance(client *Client) {
	balance, err := h.ledger.Balance(client.UserID)
	if err != nil {
		log.Warn().Err(err).Int64("user", client.UserID).Msg("Failed to get balance for WS")
		return
	}

	msg := Message{
		Type: "BALANCE_UPDATE",
		Data: gin.H{
			"balance": balance,
		},
	}

	client.Conn.WriteJSON(msg)
}

func (h *WebSocketHandler) sendPong(client *Client) {
	msg := Message{
		Type: "PONG",
		Data: gin.H{
			"timestamp": time.Now().Unix(),
		},
	}

	client.Conn.WriteJSON(msg)
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.UserID] = client.Conn
			log.Debug().Int64("user", client.UserID).Msg("WS client registered")

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.UserID]; ok {
				delete(hub.clients, client.UserID)
				log.Debug().Int64("user", client.UserID).Msg("WS client unregistered")
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

// broadcastMessage routes a message to its owning user's connection, or
// to every connection when no user is set.
func (hub *WebSocketHub) broadcastMessage(message *Message) {
	if message.UserID != 0 {
		if conn, ok := hub.clients[message.UserID]; ok {
			conn.WriteJSON(message)
		}
	} else {
		for _, conn := range hub.clients {
			conn.WriteJSON(message)
		}
	}
}

// BroadcastGameUpdate pushes a live multiplier tick to the round owner.
func (h *WebSocketHandler) BroadcastGameUpdate(userID int64, gameID string, multiplier float64) {
	msg := &Message{
		Type:   "GAME_UPDATE",
		UserID: userID,
		GameID: gameID,
		Data: gin.H{
			"game_id":    gameID,
			"multiplier": multiplier,
			"timestamp":  time.Now().Unix(),
		},
	}

	h.hub.broadcast <- msg
}

// BroadcastGameCrash tells the round owner their round busted.
func (h *WebSocketHandler) BroadcastGameCrash(userID int64, gameID string, crashPoint float64) {
	msg := &Message{
		Type:   "GAME_CRASH",
		UserID: userID,
		GameID: gameID,
		Data: gin.H{
			"game_id":     gameID,
			"crash_point": crashPoint,
			"timestamp":   time.Now().Unix(),
		},
	}

	h.hub.broadcast <- msg
}
