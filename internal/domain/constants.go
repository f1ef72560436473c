package domain

import "time"

// ==== Nickname Constants ====

const (
	// MinNicknameLength is the minimum nickname length in runes
	MinNicknameLength = 2

	// MaxNicknameLength is the maximum nickname length in runes
	MaxNicknameLength = 20
)

// ==== History Constants ====

const (
	// RecentMessagesLimit is how many public messages a client receives on join
	RecentMessagesLimit = 50

	// PersistedMessagesLimit is how many public messages a snapshot keeps
	PersistedMessagesLimit = 100

	// MaxLogSize caps the in-memory public message log
	MaxLogSize = 1000
)

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket message size in bytes
const MaxMessageSize = 4096

// ==== Timing Constants ====

const (
	// SaveInterval is the safety-net persistence period
	SaveInterval = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown including the final flush
	ShutdownTimeout = 30 * time.Second
)

// StatusOnline is the only status a live identity can have
const StatusOnline = "online"

// RoomIDSeparator joins the two sorted nicknames of a private room
const RoomIDSeparator = "_"
