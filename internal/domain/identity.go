package domain

import "time"

// Identity is the live binding between a connection and a nickname
type Identity struct {
	ConnectionID string    `json:"-"`
	Nickname     string    `json:"nickname"`
	Status       string    `json:"status"`
	JoinedAt     time.Time `json:"joinTime"`
}

// NewIdentity creates an online Identity
func NewIdentity(connectionID, nickname string, joinedAt time.Time) Identity {
	return Identity{
		ConnectionID: connectionID,
		Nickname:     nickname,
		Status:       StatusOnline,
		JoinedAt:     joinedAt,
	}
}
