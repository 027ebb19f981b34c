package loop

import (
	"sync"
	"time"
)

// Notice is a message from the hub to a terminal.
type Notice int

const (
	// NoticeShutdown asks the terminal to show the shutdown screen and
	// disconnect.
	NoticeShutdown Notice = iota
)

// Handle represents a terminal's registration with the hub.
type Handle struct {
	ID      int
	User    string
	Joined  time.Time
	Notices chan Notice
}

// Hub tracks the terminals served by one process so a server can announce
// a shutdown and wait for them to leave.
type Hub struct {
	mu       sync.RWMutex
	clients  map[int]*Handle
	nextID   int
	stopping bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
	}
}

// Register adds a terminal and returns its handle. Terminals registered
// after Shutdown started are told to leave right away.
func (h *Hub) Register(user string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:      h.nextID,
		User:    user,
		Joined:  time.Now(),
		Notices: make(chan Notice, 4),
	}
	h.nextID++
	h.clients[handle.ID] = handle

	if h.stopping {
		handle.Notices <- NoticeShutdown
	}
	return handle
}

// Unregister removes a terminal from the hub and closes its notices.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.clients[id]; ok {
		close(handle.Notices)
		delete(h.clients, id)
	}
}

// Count returns the number of registered terminals.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every terminal and waits until all of them have
// unregistered or timeout passes. It reports whether everyone left.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.stopping = true
	for _, handle := range h.clients {
		select {
		case handle.Notices <- NoticeShutdown:
		default:
		}
	}
	h.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
