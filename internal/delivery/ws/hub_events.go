package ws

import (
	"errors"
	"fmt"
	"log"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// dispatch routes one inbound event. Unknown types are ignored.
func (h *Hub) dispatch(c *Client, ev domain.InboundEvent) {
	// Events still queued from a connection that already closed
	h.mu.RLock()
	_, live := h.clients[c.ID]
	h.mu.RUnlock()
	if !live {
		return
	}

	switch ev.Type {
	case domain.EventJoin, domain.EventJoinChat:
		h.handleJoin(c, ev)
	case domain.EventSendMessage:
		h.handleSendMessage(c, ev)
	case domain.EventSendPrivateMessage:
		h.handleSendPrivateMessage(c, ev)
	case domain.EventLikeUser:
		h.handleLikeUser(c, ev)
	case domain.EventTyping:
		h.handleTyping(c, ev)
	}
}

func (h *Hub) handleJoin(c *Client, ev domain.InboundEvent) {
	var p domain.JoinPayload
	if err := decodePayload(ev.Payload, &p); err != nil {
		h.sendTo(c, nicknameError("Invalid join request", ""))
		return
	}

	identity, err := h.chat.Join(c.ID, p.Nickname)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateNickname):
			h.sendTo(c, nicknameError("Nickname already taken", h.chat.SuggestNickname(p.Nickname)))
		case errors.Is(err, domain.ErrAlreadyJoined):
			h.sendTo(c, nicknameError("You have already joined", ""))
		case domain.IsValidation(err):
			h.sendTo(c, nicknameError(capitalize(err.Error()), ""))
		default:
			h.sendTo(c, nicknameError("Unable to join", ""))
		}
		return
	}

	users := h.chat.Users()

	h.sendTo(c, domain.Event{Type: domain.EventJoinSuccess, Payload: domain.NicknamePayload{Nickname: identity.Nickname}})
	h.sendTo(c, domain.Event{Type: domain.EventRecentMessages, Payload: h.chat.RecentMessages(0)})
	h.sendTo(c, domain.Event{Type: domain.EventUserList, Payload: users})

	h.broadcastExcept(c, domain.Event{Type: domain.EventUserJoined, Payload: domain.NicknamePayload{Nickname: identity.Nickname}})
	h.broadcastAll(domain.Event{Type: domain.EventUserListUpdate, Payload: users})

	log.Printf("[hub] %s joined (%d online)", identity.Nickname, len(users))
}

func (h *Hub) handleLeave(c *Client) {
	identity, err := h.chat.Leave(c.ID)
	if err != nil {
		// Never joined
		return
	}

	users := h.chat.Users()
	h.broadcastAll(domain.Event{Type: domain.EventUserLeft, Payload: domain.NicknamePayload{Nickname: identity.Nickname}})
	h.broadcastAll(domain.Event{Type: domain.EventUserListUpdate, Payload: users})

	log.Printf("[hub] %s left (%d online)", identity.Nickname, len(users))
}

func (h *Hub) handleSendMessage(c *Client, ev domain.InboundEvent) {
	var p domain.SendMessagePayload
	if err := decodePayload(ev.Payload, &p); err != nil {
		return
	}

	msg, err := h.chat.PostPublic(c.ID, p.Content)
	if err != nil {
		return
	}

	h.broadcastAll(domain.Event{Type: domain.EventNewMessage, Payload: msg})
	h.persist()
}

func (h *Hub) handleSendPrivateMessage(c *Client, ev domain.InboundEvent) {
	var p domain.SendPrivateMessagePayload
	if err := decodePayload(ev.Payload, &p); err != nil {
		return
	}

	delivery, err := h.chat.PostPrivate(c.ID, p.TargetNickname, p.Content)
	if err != nil {
		return
	}

	out := domain.Event{Type: domain.EventNewPrivateMessage, Payload: delivery.Message}
	for _, connID := range delivery.Recipients {
		h.sendToConnection(connID, out)
	}
}

func (h *Hub) handleLikeUser(c *Client, ev domain.InboundEvent) {
	var p domain.LikeUserPayload
	if err := decodePayload(ev.Payload, &p); err != nil {
		return
	}

	outcome, err := h.chat.Like(c.ID, p.TargetNickname)
	if err != nil {
		return
	}

	switch outcome.Result {
	case domain.LikeAlreadyLiked:
		h.sendTo(c, domain.Event{
			Type: domain.EventLikeWarning,
			Payload: domain.LikeWarningPayload{
				Nickname: outcome.Target,
				Message:  fmt.Sprintf("You already liked %s", outcome.Target),
			},
		})
		return

	case domain.LikeOneSided:
		h.sendToNickname(outcome.Target, domain.Event{
			Type:    domain.EventLikeReceived,
			Payload: domain.LikeReceivedPayload{From: outcome.Liker},
		})

	case domain.LikeMutual:
		h.sendTo(c, domain.Event{
			Type:    domain.EventMutualLike,
			Payload: domain.MutualLikePayload{Nickname: outcome.Target, RoomID: outcome.RoomID},
		})
		h.sendToNickname(outcome.Target, domain.Event{
			Type:    domain.EventMutualLike,
			Payload: domain.MutualLikePayload{Nickname: outcome.Liker, RoomID: outcome.RoomID},
		})
		if outcome.RoomCreated {
			log.Printf("[hub] Private room %s created", outcome.RoomID)
		}
	}

	h.persist()
}

func (h *Hub) handleTyping(c *Client, ev domain.InboundEvent) {
	var p domain.TypingPayload
	if err := decodePayload(ev.Payload, &p); err != nil {
		return
	}

	identity, ok := h.chat.Identity(c.ID)
	if !ok {
		return
	}

	h.broadcastExcept(c, domain.Event{
		Type:    domain.EventUserTyping,
		Payload: domain.UserTypingPayload{Nickname: identity.Nickname, IsTyping: p.IsTyping},
	})
}

func nicknameError(message, suggestion string) domain.Event {
	return domain.Event{
		Type:    domain.EventNicknameError,
		Payload: domain.NicknameErrorPayload{Message: message, Suggestion: suggestion},
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
