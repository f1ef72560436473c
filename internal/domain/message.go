package domain

import (
	"encoding/json"
	"time"
)

// EventType names an event exchanged with clients
type EventType string

// Inbound events
const (
	EventJoin               EventType = "join"
	EventJoinChat           EventType = "joinChat" // Legacy alias of join
	EventSendMessage        EventType = "sendMessage"
	EventSendPrivateMessage EventType = "sendPrivateMessage"
	EventLikeUser           EventType = "likeUser"
	EventTyping             EventType = "typing"
)

// Outbound events
const (
	EventJoinSuccess       EventType = "joinSuccess"
	EventNicknameError     EventType = "nicknameError"
	EventRecentMessages    EventType = "recentMessages"
	EventUserList          EventType = "userList"
	EventUserListUpdate    EventType = "userListUpdate"
	EventUserJoined        EventType = "userJoined"
	EventUserLeft          EventType = "userLeft"
	EventNewMessage        EventType = "newMessage"
	EventNewPrivateMessage EventType = "newPrivateMessage"
	EventLikeReceived      EventType = "likeReceived"
	EventLikeWarning       EventType = "likeWarning"
	EventMutualLike        EventType = "mutualLike"
	EventUserTyping        EventType = "userTyping"
	EventMessageRemoved    EventType = "messageRemoved"
)

// MessageKind distinguishes public and private messages
type MessageKind string

const (
	MessageKindPublic  MessageKind = "public"
	MessageKindPrivate MessageKind = "private"
)

// Event is the envelope written to a client
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// InboundEvent is the envelope read from a client
type InboundEvent struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PublicMessage is a message broadcast to every connection
type PublicMessage struct {
	ID        string      `json:"id"`
	Nickname  string      `json:"nickname"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      MessageKind `json:"type"`
}

// PrivateMessage is delivered to exactly two parties and never stored
type PrivateMessage struct {
	ID        string      `json:"id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Kind      MessageKind `json:"type"`
}

// PrivateDelivery pairs a private message with the connections it goes to
type PrivateDelivery struct {
	Message    PrivateMessage
	Recipients []string
}

// ==== Inbound payloads ====

// JoinPayload is the payload of join
type JoinPayload struct {
	Nickname string `json:"nickname"`
}

// SendMessagePayload is the payload of sendMessage
type SendMessagePayload struct {
	Content string `json:"content"`
}

// SendPrivateMessagePayload is the payload of sendPrivateMessage
type SendPrivateMessagePayload struct {
	TargetNickname string `json:"targetNickname"`
	Content        string `json:"content"`
}

// LikeUserPayload is the payload of likeUser
type LikeUserPayload struct {
	TargetNickname string `json:"targetNickname"`
}

// TypingPayload is the payload for typing indicator
type TypingPayload struct {
	IsTyping bool `json:"isTyping"`
}

// ==== Outbound payloads ====

// NicknamePayload carries a single nickname (joinSuccess, userJoined, userLeft)
type NicknamePayload struct {
	Nickname string `json:"nickname"`
}

// NicknameErrorPayload explains a rejected join
type NicknameErrorPayload struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// LikeReceivedPayload tells the target who liked them
type LikeReceivedPayload struct {
	From string `json:"from"`
}

// LikeWarningPayload tells the liker the like already existed
type LikeWarningPayload struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

// MutualLikePayload tells each party about the match and its room
type MutualLikePayload struct {
	Nickname string `json:"nickname"`
	RoomID   string `json:"roomId"`
}

// UserTypingPayload relays a typing state
type UserTypingPayload struct {
	Nickname string `json:"nickname"`
	IsTyping bool   `json:"isTyping"`
}

// MessageRemovedPayload announces an admin deletion
type MessageRemovedPayload struct {
	MessageID string `json:"messageId"`
}
