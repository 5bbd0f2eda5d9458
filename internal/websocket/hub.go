package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/ikkim/landing-studio/pkg/logger"
)

// ClientMessage is a message sent by a dashboard client.
type ClientMessage struct {
	Type string `json:"type"` // ping
}

// Client is one dashboard connection subscribed to a single site.
type Client struct {
	Hub           *Hub
	Conn          *Conn
	SiteID        string
	UserID        string
	Send          chan []byte
	MessageCount  int       // messages received in the current second
	LastResetTime time.Time // start of the current rate window
	RateMu        sync.Mutex
}

// NewClient creates a client with a buffered send queue.
func NewClient(hub *Hub, conn *Conn, siteID, userID string) *Client {
	return &Client{
		Hub:    hub,
		Conn:   conn,
		SiteID: siteID,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

// Hub fans metric events out to the clients watching each site.
type Hub struct {
	// siteID -> connected clients
	sites map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	stop       chan struct{}

	mu sync.RWMutex
}

// BroadcastMessage is an encoded payload for every client of a site.
type BroadcastMessage struct {
	SiteID  string
	Message []byte
}

func NewHub() *Hub {
	return &Hub{
		sites:      make(map[string]map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *BroadcastMessage, 1024),
		stop:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.stop:
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.sites[client.SiteID]; !ok {
				h.sites[client.SiteID] = make(map[*Client]bool)
			}
			h.sites[client.SiteID][client] = true
			watchers := len(h.sites[client.SiteID])
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"site_id":  client.SiteID,
				"user_id":  client.UserID,
				"watchers": watchers,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.sites[client.SiteID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
				}
				if len(clients) == 0 {
					delete(h.sites, client.SiteID)
				}
			}
			h.mu.Unlock()
			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"site_id": client.SiteID,
				"user_id": client.UserID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.sites[message.SiteID] {
				select {
				case client.Send <- message.Message:
				default:
					// slow consumer
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"site_id": message.SiteID,
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop ends Run.
func (h *Hub) Stop() {
	close(h.stop)
}

// BroadcastMetric queues payload for every client watching siteID. Drops the
// message when the queue is full.
func (h *Hub) BroadcastMetric(siteID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal metric payload", err, map[string]interface{}{
			"site_id": siteID,
		})
		return
	}

	select {
	case h.broadcast <- &BroadcastMessage{SiteID: siteID, Message: data}:
	default:
		logger.Warn("Broadcast channel full, message dropped", map[string]interface{}{
			"site_id": siteID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Watchers returns the number of clients subscribed to siteID.
func (h *Hub) Watchers(siteID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sites[siteID])
}

// HandleClientMessage answers pings, rate limited per client.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"site_id": client.SiteID,
			"count":   count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"site_id": client.SiteID,
			"error":   err.Error(),
		})
		return
	}

	if msg.Type == "ping" {
		select {
		case client.Send <- []byte(`{"type":"pong"}`):
		default:
		}
	}
}
