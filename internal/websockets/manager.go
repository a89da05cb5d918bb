package websockets

import (
	"errors"
	"sync"
	"time"

	"offerdesk/internal/logger"
	. "offerdesk/internal/models"

	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

var errClientGone = errors.New("websocket client disconnected")

type client struct {
	conn Conn
	mu   sync.Mutex
	gone bool
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gone {
		return errClientGone
	}
	return c.conn.WriteJSON(v)
}

// detach marks the client so no write reaches a connection that the
// websocket handler has already handed back to its pool.
func (c *client) detach() {
	c.mu.Lock()
	c.gone = true
	c.mu.Unlock()
}

// Manager fans notifications out to the browser tabs that own a form.
// Notifications for forms with no open socket are dropped.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	closed  bool
	log     logger.Logger
}

func New() *Manager {
	return &Manager{
		clients: make(map[string]map[*client]struct{}),
		log:     logger.New("websockets"),
	}
}

// Register attaches conn to formID and returns the function that detaches it.
func (m *Manager) Register(formID string, conn Conn) func() {
	c := &client{conn: conn}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = conn.Close()
		return func() {}
	}
	if m.clients[formID] == nil {
		m.clients[formID] = make(map[*client]struct{})
	}
	m.clients[formID][c] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.clients[formID], c)
			if len(m.clients[formID]) == 0 {
				delete(m.clients, formID)
			}
			m.mu.Unlock()
			c.detach()
		})
	}
}

// HandleWebSocket serves /ws/:formID. The socket is write-only from the
// server's side; reads only detect the client going away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")
	formID := c.Params("formID")
	if formID == "" {
		log.Warn("websocket opened without form id")
		_ = c.Close()
		return
	}

	unregister := m.Register(formID, c)
	defer unregister()
	log.Debug("websocket connected", "formID", formID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug("websocket disconnected", "formID", formID, "error", err)
			return
		}
	}
}

// Notify delivers n to every socket of its form and reports how many
// received it.
func (m *Manager) Notify(formID string, n Notification) int {
	log := m.log.Function("Notify")
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	n.FormID = formID

	m.mu.RLock()
	targets := make([]*client, 0, len(m.clients[formID]))
	for c := range m.clients[formID] {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.send(n); err != nil {
			if errors.Is(err, errClientGone) {
				continue
			}
			log.Warn("failed to deliver notification", "formID", formID, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (m *Manager) Connections(formID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[formID])
}

// Close disconnects every socket and refuses new registrations.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for formID, set := range m.clients {
		for c := range set {
			_ = c.conn.Close()
		}
		delete(m.clients, formID)
	}
	return nil
}
