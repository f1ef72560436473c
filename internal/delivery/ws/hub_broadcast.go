package ws

import (
	"encoding/json"
	"log"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// encodeEvent serializes an outbound envelope once for any number of sends
func encodeEvent(ev domain.Event) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[hub] Failed to encode %s: %v", ev.Type, err)
		return nil, false
	}
	return data, true
}

// sendTo delivers an event to a single client
func (h *Hub) sendTo(c *Client, ev domain.Event) {
	data, ok := encodeEvent(ev)
	if !ok {
		return
	}
	c.Send(data)
}

// sendToConnection delivers an event to a connection id if it is still open
func (h *Hub) sendToConnection(connID string, ev domain.Event) {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.sendTo(c, ev)
}

// sendToNickname delivers an event to the live holder of nickname.
// Returns false when nobody holds it.
func (h *Hub) sendToNickname(nickname string, ev domain.Event) bool {
	identity, err := h.chat.LookupByNickname(nickname)
	if err != nil {
		return false
	}
	h.sendToConnection(identity.ConnectionID, ev)
	return true
}

// broadcastAll sends an event to every connection, joined or not
func (h *Hub) broadcastAll(ev domain.Event) {
	h.broadcastExcept(nil, ev)
}

// broadcastExcept sends an event to every connection except skip
func (h *Hub) broadcastExcept(skip *Client, ev domain.Event) {
	data, ok := encodeEvent(ev)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c == skip {
			continue
		}
		c.Send(data)
	}
}
