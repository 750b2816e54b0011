package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"SalesDashboard/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	TypeConnected         MessageType = "connected"
	TypeNotification      MessageType = "notification"
	TypeCollectionChanged MessageType = "collection_changed"
	TypeHeartbeat         MessageType = "heartbeat"
)

const (
	heartbeatInterval = 30 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = 54 * time.Second
	writeWait         = 10 * time.Second
	sendBuffer        = 256
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType     `json:"type"`
	ClientID  string          `json:"client_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// CollectionChange tells dashboards which record to refetch
type CollectionChange struct {
	Entity string `json:"entity"`
	ID     int    `json:"id"`
	Action string `json:"action"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID          string
	Connection  *websocket.Conn
	Send        chan []byte
	Hub         *Hub
	ConnectedAt time.Time
	RemoteAddr  string
}

// envelope is a message for a single client
type envelope struct {
	client  *Client
	payload []byte
}

// Hub fans dashboard outcomes out to every connected browser
type Hub struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	direct     chan envelope
	done       chan struct{}
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
	log        *zap.Logger
}

// NewHub creates a new hub; call Run to start it
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan envelope),
		done:       make(chan struct{}),
		log:        log.Named("websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard may be served from another origin on the local network
				return true
			},
		},
	}
}

// Run handles the hub loop until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.log.Info("Client registered", zap.String("client_id", client.ID), zap.String("remote", client.RemoteAddr))
			h.sendTo(client, TypeConnected, map[string]string{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				h.log.Info("Client unregistered", zap.String("client_id", client.ID))
			}
			h.mu.Unlock()

		case e := <-h.direct:
			h.mu.RLock()
			if _, ok := h.clients[e.client.ID]; ok {
				select {
				case e.client.Send <- e.payload:
				default:
				}
			}
			h.mu.RUnlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Client buffer is full, disconnect
					delete(h.clients, id)
					close(client.Send)
				}
			}
			h.mu.Unlock()

		case <-ticker.C:
			h.BroadcastMessage(newMessage(TypeHeartbeat, map[string]string{"ping": "pong"}))

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Notify implements services.Notifier. Every outcome becomes a notification;
// successful changes also announce which collection changed.
func (h *Hub) Notify(o services.Outcome) {
	h.BroadcastMessage(newMessage(TypeNotification, o))
	if o.Type == services.OutcomeSuccess && o.Entity != "" && o.Action != "" {
		h.BroadcastMessage(newMessage(TypeCollectionChanged, CollectionChange{
			Entity: o.Entity,
			ID:     o.EntityID,
			Action: o.Action,
		}))
	}
}

// BroadcastMessage queues message for every client. It never blocks: when
// the hub is not keeping up the message is dropped.
func (h *Hub) BroadcastMessage(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Error("Error marshaling message", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("Broadcast queue full, dropping message", zap.String("type", string(message.Type)))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ClientInfo describes a connected client
type ClientInfo struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remote_addr"`
	ConnectedAt time.Time `json:"connected_at"`
}

// Clients lists the connected clients, oldest connection first
func (h *Hub) Clients() []ClientInfo {
	h.mu.RLock()
	out := make([]ClientInfo, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, ClientInfo{ID: c.ID, RemoteAddr: c.RemoteAddr, ConnectedAt: c.ConnectedAt})
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ConnectedAt.Before(out[j].ConnectedAt) })
	return out
}

// ServeHTTP upgrades the request to a WebSocket connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}

	client := &Client{
		ID:          uuid.NewString(),
		Connection:  conn,
		Send:        make(chan []byte, sendBuffer),
		Hub:         h,
		ConnectedAt: time.Now(),
		RemoteAddr:  r.RemoteAddr,
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// sendTo queues a message for one client; called from the hub loop only
func (h *Hub) sendTo(client *Client, t MessageType, data interface{}) {
	message := newMessage(t, data)
	message.ClientID = client.ID
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

func newMessage(t MessageType, data interface{}) Message {
	raw, err := json.Marshal(data)
	if err != nil {
		raw = json.RawMessage(`null`)
	}
	return Message{Type: t, Timestamp: time.Now(), Data: raw}
}

// readPump handles reading messages from the client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Connection.Close()
	}()

	c.Connection.SetReadDeadline(time.Now().Add(pongWait))
	c.Connection.SetPongHandler(func(string) error {
		c.Connection.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warn("WebSocket error", zap.Error(err))
			}
			break
		}

		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			c.Hub.log.Debug("Error parsing message", zap.Error(err))
			continue
		}

		// The feed is one-way; clients may only ping
		if message.Type == TypeHeartbeat {
			reply := newMessage(TypeHeartbeat, map[string]string{"pong": "ok"})
			reply.ClientID = c.ID
			if payload, err := json.Marshal(reply); err == nil {
				select {
				case c.Hub.direct <- envelope{client: c, payload: payload}:
				case <-c.Hub.done:
					return
				}
			}
		}
	}
}

// writePump handles writing messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Connection.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Connection.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Connection.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
