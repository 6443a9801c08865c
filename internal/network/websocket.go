package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn is one tracked WebSocket connection, buffering inbound messages so
// `ws-recv` can poll without blocking the connection's own read loop.
type conn struct {
	ws       *websocket.Conn
	mu       sync.Mutex
	closed   bool
	inbound  chan []byte
}

// Manager tracks WebSocket connections by caller-chosen id.
type Manager struct {
	mu    sync.RWMutex
	conns map[string]*conn
}

func NewManager() *Manager {
	return &Manager{conns: make(map[string]*conn)}
}

// Connect dials url and registers the resulting connection under id.
func (m *Manager) Connect(id, url string) error {
	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}

	c := &conn{ws: ws, inbound: make(chan []byte, 100)}
	go c.readLoop()

	m.mu.Lock()
	if old, exists := m.conns[id]; exists {
		old.ws.Close()
	}
	m.conns[id] = c
	m.mu.Unlock()
	return nil
}

func (c *conn) readLoop() {
	defer close(c.inbound)
	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			c.mu.Lock()
			c.closed = true
			c.mu.Unlock()
			return
		}
		select {
		case c.inbound <- msg:
		default:
			<-c.inbound
			c.inbound <- msg
		}
	}
}

// Send writes a text message on the named connection.
func (m *Manager) Send(id, message string) error {
	c, err := m.get(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("websocket connection %s is closed", id)
	}
	return c.ws.WriteMessage(websocket.TextMessage, []byte(message))
}

// Recv waits up to timeout for the next inbound message.
func (m *Manager) Recv(id string, timeout time.Duration) (string, error) {
	c, err := m.get(id)
	if err != nil {
		return "", err
	}
	select {
	case msg, ok := <-c.inbound:
		if !ok {
			return "", fmt.Errorf("websocket connection %s closed", id)
		}
		return string(msg), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("receive timeout on %s", id)
	}
}

// Close closes and forgets the named connection.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	c, exists := m.conns[id]
	if exists {
		delete(m.conns, id)
	}
	m.mu.Unlock()
	if !exists {
		return fmt.Errorf("websocket connection %s not found", id)
	}
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}

func (m *Manager) get(id string) (*conn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, exists := m.conns[id]
	if !exists {
		return nil, fmt.Errorf("websocket connection %s not found", id)
	}
	return c, nil
}
