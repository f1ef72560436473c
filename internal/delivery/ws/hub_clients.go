package ws

import "github.com/mmuslimabdulj/likechat/internal/domain"

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Dispatch queues an inbound event from c for the event loop
func (h *Hub) Dispatch(c *Client, ev domain.InboundEvent) {
	select {
	case h.inbound <- inboundEvent{client: c, event: ev}:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
