package domain

// Snapshot is the bounded subset of state written to durable storage
type Snapshot struct {
	Messages     []PublicMessage `json:"messages"`
	Likes        []LikeEdge      `json:"likes"`
	PrivateChats []PrivateRoom   `json:"privateChats"`
}

// IsEmpty reports whether the snapshot carries no state
func (s Snapshot) IsEmpty() bool {
	return len(s.Messages) == 0 && len(s.Likes) == 0 && len(s.PrivateChats) == 0
}
