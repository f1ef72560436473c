package ws

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
	"github.com/mmuslimabdulj/likechat/internal/usecase"
)

// ErrHubStopped is returned by calls made after the event loop exited
var ErrHubStopped = errors.New("hub stopped")

// SnapshotSink receives the chat state after every durable change
type SnapshotSink interface {
	Submit(snapshot domain.Snapshot)
}

type inboundEvent struct {
	client *Client
	event  domain.InboundEvent
}

// Hub owns the chat state and every live connection. All mutation of the
// chat happens on the goroutine running Run.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	chat *usecase.Chat
	sink SnapshotSink

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent
	calls      chan func()
	done       chan struct{}

	saveInterval   time.Duration
	maxMessageSize int64

	final domain.Snapshot
}

// NewHub creates a new Hub around chat. sink may be nil.
func NewHub(chat *usecase.Chat, sink SnapshotSink) *Hub {
	return &Hub{
		clients:        make(map[string]*Client),
		chat:           chat,
		sink:           sink,
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		inbound:        make(chan inboundEvent, 256),
		calls:          make(chan func()),
		done:           make(chan struct{}),
		saveInterval:   domain.SaveInterval,
		maxMessageSize: domain.MaxMessageSize,
	}
}

// SetSaveInterval sets the periodic snapshot interval. Zero disables it.
// Must be called before Run.
func (h *Hub) SetSaveInterval(d time.Duration) {
	h.saveInterval = d
}

// SetMaxMessageSize sets the read limit for new clients
func (h *Hub) SetMaxMessageSize(n int64) {
	if n > 0 {
		h.maxMessageSize = n
	}
}

// Run starts the hub's main event loop. It returns once ctx is cancelled
// and every client has been closed.
func (h *Hub) Run(ctx context.Context) {
	var tick <-chan time.Time
	if h.saveInterval > 0 {
		ticker := time.NewTicker(h.saveInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	defer func() {
		h.closeAllClients()
		h.final = h.chat.Snapshot()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; !ok {
				h.mu.Unlock()
				continue
			}
			delete(h.clients, client.ID)
			close(client.send)
			h.mu.Unlock()

			h.handleLeave(client)

		case in := <-h.inbound:
			h.dispatch(in.client, in.event)

		case fn := <-h.calls:
			fn()

		case <-tick:
			h.persist()
		}
	}
}

// Done is closed when Run has returned
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until Run has returned and yields the final chat state
func (h *Hub) Wait() domain.Snapshot {
	<-h.done
	return h.final
}

// do runs fn on the event loop and waits for it to finish
func (h *Hub) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	call := func() {
		fn()
		close(finished)
	}

	select {
	case h.calls <- call:
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once handed off, fn owns the caller's variables until it returns.
	// The loop runs it synchronously, so this never blocks for long.
	<-finished
	return nil
}

// RecentMessages returns up to n of the newest public messages
func (h *Hub) RecentMessages(ctx context.Context, n int) ([]domain.PublicMessage, error) {
	var msgs []domain.PublicMessage
	err := h.do(ctx, func() {
		msgs = h.chat.RecentMessages(n)
	})
	return msgs, err
}

// Users returns the live identities in join order
func (h *Hub) Users(ctx context.Context) ([]domain.Identity, error) {
	var users []domain.Identity
	err := h.do(ctx, func() {
		users = h.chat.Users()
	})
	return users, err
}

// RemoveMessage deletes a public message and tells every connection.
// The caller is responsible for authorizing the request.
func (h *Hub) RemoveMessage(ctx context.Context, id string) error {
	var removeErr error
	err := h.do(ctx, func() {
		if _, removeErr = h.chat.RemoveMessage(id); removeErr != nil {
			return
		}
		h.broadcastAll(domain.Event{
			Type:    domain.EventMessageRemoved,
			Payload: domain.MessageRemovedPayload{MessageID: id},
		})
		h.persist()
		log.Printf("[hub] Message %s removed by admin", id)
	})
	if err != nil {
		return err
	}
	return removeErr
}

// persist hands the current state to the sink
func (h *Hub) persist() {
	if h.sink == nil {
		return
	}
	h.sink.Submit(h.chat.Snapshot())
}

// closeAllClients drops every connection on shutdown
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}
