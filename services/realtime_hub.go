package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// HouseholdNotifier delivers events to everyone watching a household.
type HouseholdNotifier interface {
	BroadcastHousehold(householdID uint, payload any)
}

// wsWriteWait bounds every websocket write.
var wsWriteWait = 5 * time.Second

type WSClient struct {
	HouseholdID uint
	Conn        *websocket.Conn

	writeMu sync.Mutex
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.Conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return c.Conn.WriteMessage(messageType, data)
}

// Ping sends a websocket ping; serialized with broadcasts.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.HouseholdID] == nil {
		h.clients[c.HouseholdID] = make(map[*WSClient]struct{})
	}
	h.clients[c.HouseholdID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.HouseholdID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.HouseholdID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Subscribers reports how many connections watch a household.
func (h *RealtimeHub) Subscribers(householdID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[householdID])
}

// BroadcastHousehold sends payload to every connection of the household and
// drops connections whose write fails.
func (h *RealtimeHub) BroadcastHousehold(householdID uint, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[householdID]))
	for c := range h.clients[householdID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			h.Unregister(c)
		}
	}
}
