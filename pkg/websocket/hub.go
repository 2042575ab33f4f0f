package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rentit/pkg/logger"
)

// NotificationChannel is the redis channel every instance listens on.
const NotificationChannel = "rentit:notifications"

type Hub struct {
	clients    map[primitive.ObjectID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan Message
	mutex      sync.RWMutex
	logger     *logger.Logger
}

// Message is a notification addressed to a single user.
type Message struct {
	Type      string                 `json:"type"`
	UserID    primitive.ObjectID     `json:"user_id"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan Message, 256),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.deliver:
			h.sendToUser(message)
		}
	}
}

// ListenRedis forwards messages published on the notification channel to
// local sockets until ctx is cancelled.
func (h *Hub) ListenRedis(ctx context.Context, sub *redis.PubSub) {
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handlePayload([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handlePayload(payload []byte) {
	var message Message
	if err := json.Unmarshal(payload, &message); err != nil {
		h.logger.WithError(err).Warn("Dropping malformed notification")
		return
	}
	h.SendToUser(message)
}

// SendToUser queues message for every socket the user has open on this
// instance.
func (h *Hub) SendToUser(message Message) {
	if message.Timestamp == 0 {
		message.Timestamp = getCurrentTimestamp()
	}

	select {
	case h.deliver <- message:
	default:
		h.logger.WithUserID(message.UserID).Warn("Notification queue full, dropping message")
	}
}

// Connected reports whether the user has at least one socket on this instance.
func (h *Hub) Connected(userID primitive.ObjectID) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients[userID]) > 0
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true
	h.mutex.Unlock()

	h.logger.WithUserID(client.UserID).Debug("WebSocket client registered")

	h.sendToClient(client, Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	})
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.removeLocked(client)
	h.logger.WithUserID(client.UserID).Debug("WebSocket client unregistered")
}

func (h *Hub) removeLocked(client *Client) {
	sockets, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := sockets[client]; !ok {
		return
	}

	delete(sockets, client)
	close(client.send)
	if len(sockets) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) sendToUser(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal notification")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients[message.UserID] {
		select {
		case client.send <- data:
		default:
			h.removeLocked(client)
		}
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	select {
	case client.send <- data:
	default:
		h.removeLocked(client)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, sockets := range h.clients {
		for client := range sockets {
			h.removeLocked(client)
		}
	}
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
