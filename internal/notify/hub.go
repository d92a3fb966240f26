package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tesBack/internal/logger"
	"tesBack/internal/models"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 5 * time.Second
)

// Event is the frame sent to a connected user.
type Event struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

// Hub keeps one live websocket per user and pushes new notifications to it.
type Hub struct {
	upgrader websocket.Upgrader
	logger   logger.Logger

	mu    sync.RWMutex
	conns map[int]*websocket.Conn
	wmu   map[int]*sync.Mutex
}

func NewHub(l logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   l,
		conns:    make(map[int]*websocket.Conn),
		wmu:      make(map[int]*sync.Mutex),
	}
}

// ServeWS upgrades the request and registers the connection for userID.
// A newer connection replaces the older one.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorf("notification ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if old, ok := h.conns[userID]; ok {
		_ = old.Close()
	}
	h.conns[userID] = conn
	if _, ok := h.wmu[userID]; !ok {
		h.wmu[userID] = &sync.Mutex{}
	}
	h.mu.Unlock()

	go h.readLoop(userID, conn)
}

func (h *Hub) readLoop(userID int, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		h.mu.Lock()
		if h.conns[userID] == conn {
			delete(h.conns, userID)
			delete(h.wmu, userID)
		}
		h.mu.Unlock()
	}()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(msg)), "ping") {
			h.safeWrite(userID, func(c *websocket.Conn) error {
				return c.WriteMessage(websocket.TextMessage, []byte("pong"))
			})
		}
	}
}

func (h *Hub) safeWrite(userID int, writer func(*websocket.Conn) error) {
	h.mu.RLock()
	conn := h.conns[userID]
	mu := h.wmu[userID]
	h.mu.RUnlock()
	if conn == nil || mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := writer(conn); err != nil {
		h.logger.Errorf("user %d write failed: %v", userID, err)
	}
}

// Connected reports whether userID has a live connection.
func (h *Hub) Connected(userID int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// Push sends n to its recipient if they are connected. Offline users are skipped.
func (h *Hub) Push(_ context.Context, n models.Notification) error {
	if !h.Connected(n.UserID) {
		return nil
	}
	data, err := json.Marshal(Event{Type: "notification", Notification: n})
	if err != nil {
		return err
	}
	h.safeWrite(n.UserID, func(conn *websocket.Conn) error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
	return nil
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, id)
		delete(h.wmu, id)
	}
}
