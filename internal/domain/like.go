package domain

import "time"

// LikeEdge is a directed like from one nickname to another
type LikeEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Reverse returns the edge pointing the other way
func (e LikeEdge) Reverse() LikeEdge {
	return LikeEdge{From: e.To, To: e.From}
}

// PrivateRoom is created once per mutual match and never destroyed
type PrivateRoom struct {
	RoomID    string    `json:"roomId"`
	Users     [2]string `json:"users"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeResult enumerates like outcomes
type LikeResult int

const (
	LikeAlreadyLiked LikeResult = iota
	LikeOneSided
	LikeMutual
)

func (r LikeResult) String() string {
	switch r {
	case LikeAlreadyLiked:
		return "already_liked"
	case LikeOneSided:
		return "one_sided"
	case LikeMutual:
		return "mutual"
	}
	return "unknown"
}

// LikeOutcome is the result of a like. RoomID and RoomCreated are only
// meaningful for LikeMutual.
type LikeOutcome struct {
	Result      LikeResult
	Liker       string
	Target      string
	RoomID      string
	RoomCreated bool
}
