package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"komal-chat/internal/models"
)

const (
	writeWait = 5 * time.Second

	// sendBuffer is how many events a tab may fall behind before new ones
	// are dropped for it.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// client owns one browser connection. Only its writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket write failed: %v", err)
			return
		}
	}
}

// Hub pushes message events to every open browser tab. With a Redis client
// it relays the shared pub/sub channel; without one, Publish broadcasts
// locally.
type Hub struct {
	mu          sync.Mutex
	connections map[*client]struct{}
	redisClient *redis.Client
	channel     string
}

func NewHub(redisClient *redis.Client, channel string) *Hub {
	return &Hub{
		connections: make(map[*client]struct{}),
		redisClient: redisClient,
		channel:     channel,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.registerClient(c)
	go c.writePump()

	// Drain reads so close frames are noticed.
	go func() {
		defer h.unregisterClient(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Run relays the Redis channel until ctx is cancelled. It returns at once
// when the hub has no Redis client.
func (h *Hub) Run(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	pubsub := h.redisClient.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast([]byte(msg.Payload))
		}
	}
}

// Publish sends an event straight to local connections.
func (h *Hub) Publish(ctx context.Context, event models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("WARNING: failed to encode %s event: %v", event.Type, err)
		return
	}
	h.broadcast(data)
}

func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.connections {
		close(c.send)
		c.conn.Close()
		delete(h.connections, c)
	}
}

func (h *Hub) registerClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[c] = struct{}{}
	log.Printf("WebSocket connected (total: %d)", len(h.connections))
}

func (h *Hub) unregisterClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.conn.Close()
	if _, ok := h.connections[c]; !ok {
		return
	}
	close(c.send)
	delete(h.connections, c)
	log.Printf("WebSocket disconnected (total: %d)", len(h.connections))
}

// broadcast queues data on every client without blocking; a tab whose
// buffer is full misses the event.
func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.connections {
		select {
		case c.send <- data:
		default:
			log.Println("WARNING: WebSocket client is not keeping up, dropping event")
		}
	}
}
