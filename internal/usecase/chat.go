package usecase

import (
	"strings"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// Options tunes the limits of a Chat
type Options struct {
	MaxLogSize        int              // in-memory public log capacity
	RecentMessages    int              // messages sent on join and by the API
	PersistedMessages int              // messages kept in a snapshot
	Now               func() time.Time // clock, time.Now when nil
}

// DefaultOptions returns the standard limits
func DefaultOptions() Options {
	return Options{
		MaxLogSize:        domain.MaxLogSize,
		RecentMessages:    domain.RecentMessagesLimit,
		PersistedMessages: domain.PersistedMessagesLimit,
	}
}

// Chat is the process-wide chat state: live identities, the public
// message log, likes and private rooms. All methods must be called from a
// single goroutine (the hub event loop); Chat does no locking of its own.
type Chat struct {
	registry *Registry
	log      *RingBuffer[domain.PublicMessage]
	matcher  *Matcher
	ids      *IDGenerator
	now      func() time.Time

	recentLimit  int
	persistLimit int
}

// NewChat creates an empty Chat
func NewChat(opts Options) (*Chat, error) {
	defaults := DefaultOptions()
	if opts.MaxLogSize <= 0 {
		opts.MaxLogSize = defaults.MaxLogSize
	}
	if opts.RecentMessages <= 0 {
		opts.RecentMessages = defaults.RecentMessages
	}
	if opts.PersistedMessages <= 0 {
		opts.PersistedMessages = defaults.PersistedMessages
	}
	if opts.MaxLogSize < opts.PersistedMessages {
		opts.MaxLogSize = opts.PersistedMessages
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ids, err := NewIDGenerator()
	if err != nil {
		return nil, err
	}

	return &Chat{
		registry:     NewRegistry(),
		log:          NewRingBuffer[domain.PublicMessage](opts.MaxLogSize),
		matcher:      NewMatcher(),
		ids:          ids,
		now:          opts.Now,
		recentLimit:  opts.RecentMessages,
		persistLimit: opts.PersistedMessages,
	}, nil
}

// ==== Identities ====

// Join binds nickname to connID
func (c *Chat) Join(connID, nickname string) (domain.Identity, error) {
	return c.registry.Join(connID, nickname, c.now())
}

// Leave releases the identity of connID
func (c *Chat) Leave(connID string) (domain.Identity, error) {
	return c.registry.Leave(connID)
}

// Identity returns the identity bound to connID
func (c *Chat) Identity(connID string) (domain.Identity, bool) {
	return c.registry.Get(connID)
}

// LookupByNickname finds a live identity by nickname
func (c *Chat) LookupByNickname(nickname string) (domain.Identity, error) {
	return c.registry.LookupByNickname(nickname)
}

// Users lists live identities in join order
func (c *Chat) Users() []domain.Identity {
	return c.registry.List()
}

// SuggestNickname proposes a free variant of a rejected nickname
func (c *Chat) SuggestNickname(nickname string) string {
	nickname, err := NormalizeNickname(nickname)
	if err != nil {
		return ""
	}
	return suggestNickname(nickname, c.registry.IsTaken)
}

// ==== Messages ====

// PostPublic stores a public message from connID. The caller broadcasts
// the returned message to every connection, the sender included.
func (c *Chat) PostPublic(connID, content string) (domain.PublicMessage, error) {
	sender, ok := c.registry.Get(connID)
	if !ok {
		return domain.PublicMessage{}, domain.ErrNotJoined
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.PublicMessage{}, domain.ErrEmptyContent
	}

	now := c.now()
	msg := domain.PublicMessage{
		ID:        c.ids.Next(now),
		Nickname:  sender.Nickname,
		Content:   content,
		Timestamp: now,
		Kind:      domain.MessageKindPublic,
	}
	c.log.Add(msg)

	return msg, nil
}

// PostPrivate builds a private message from connID to target. The target
// must be live now; nothing is stored.
func (c *Chat) PostPrivate(connID, target, content string) (domain.PrivateDelivery, error) {
	sender, ok := c.registry.Get(connID)
	if !ok {
		return domain.PrivateDelivery{}, domain.ErrNotJoined
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.PrivateDelivery{}, domain.ErrEmptyContent
	}
	target, err := NormalizeNickname(target)
	if err != nil {
		return domain.PrivateDelivery{}, domain.ErrUnknownRecipient
	}
	recipient, err := c.registry.LookupByNickname(target)
	if err != nil {
		return domain.PrivateDelivery{}, domain.ErrUnknownRecipient
	}

	now := c.now()
	delivery := domain.PrivateDelivery{
		Message: domain.PrivateMessage{
			ID:        c.ids.Next(now),
			From:      sender.Nickname,
			To:        recipient.Nickname,
			Content:   content,
			Timestamp: now,
			Kind:      domain.MessageKindPrivate,
		},
		Recipients: []string{sender.ConnectionID},
	}
	if recipient.ConnectionID != sender.ConnectionID {
		delivery.Recipients = append(delivery.Recipients, recipient.ConnectionID)
	}

	return delivery, nil
}

// RemoveMessage deletes a public message from the log
func (c *Chat) RemoveMessage(id string) (domain.PublicMessage, error) {
	msg, ok := c.log.RemoveFunc(func(m domain.PublicMessage) bool {
		return m.ID == id
	})
	if !ok {
		return domain.PublicMessage{}, domain.ErrNotFound
	}
	return msg, nil
}

// RecentMessages returns the newest public messages, oldest first.
// n <= 0 or above the configured limit uses the limit.
func (c *Chat) RecentMessages(n int) []domain.PublicMessage {
	if n <= 0 || n > c.recentLimit {
		n = c.recentLimit
	}
	msgs := c.log.Last(n)
	if msgs == nil {
		msgs = []domain.PublicMessage{}
	}
	return msgs
}

// MessageCount returns the number of public messages held in memory
func (c *Chat) MessageCount() int {
	return c.log.Len()
}

// ==== Likes ====

// Like records a like from connID to the target nickname. The target does
// not have to be online.
func (c *Chat) Like(connID, target string) (domain.LikeOutcome, error) {
	liker, ok := c.registry.Get(connID)
	if !ok {
		return domain.LikeOutcome{}, domain.ErrNotJoined
	}
	target, err := NormalizeNickname(target)
	if err != nil {
		return domain.LikeOutcome{}, domain.ErrInvalidTarget
	}
	return c.matcher.Like(liker.Nickname, target, c.now())
}

// Room returns a private room by id
func (c *Chat) Room(roomID string) (domain.PrivateRoom, bool) {
	return c.matcher.Room(roomID)
}

// ==== Persistence ====

// Snapshot copies the persistable state
func (c *Chat) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Messages:     c.log.Last(c.persistLimit),
		Likes:        c.matcher.Edges(),
		PrivateChats: c.matcher.Rooms(),
	}
}

// Restore replaces messages, likes and rooms with the snapshot contents.
// Live identities are untouched.
func (c *Chat) Restore(s domain.Snapshot) {
	c.log.Clear()
	for _, msg := range s.Messages {
		if msg.ID == "" || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		msg.Kind = domain.MessageKindPublic
		c.log.Add(msg)
	}
	c.matcher.Restore(s.Likes, s.PrivateChats)
}
