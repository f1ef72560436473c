package usecase

import (
	"sort"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// RoomID derives the private room id for a pair of nicknames.
// The order of a and b does not matter.
func RoomID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + domain.RoomIDSeparator + pair[1]
}

// Matcher records directed likes and opens a private room on mutual likes.
// Edges are permanent. It is not safe for concurrent use.
type Matcher struct {
	edges     map[domain.LikeEdge]struct{}
	edgeOrder []domain.LikeEdge
	rooms     map[string]domain.PrivateRoom
	roomOrder []string
}

// NewMatcher creates an empty matcher
func NewMatcher() *Matcher {
	return &Matcher{
		edges: make(map[domain.LikeEdge]struct{}),
		rooms: make(map[string]domain.PrivateRoom),
	}
}

// Like records liker -> target and reports whether the like became mutual
func (m *Matcher) Like(liker, target string, now time.Time) (domain.LikeOutcome, error) {
	if target == "" || liker == target {
		return domain.LikeOutcome{}, domain.ErrInvalidTarget
	}

	outcome := domain.LikeOutcome{Liker: liker, Target: target}
	edge := domain.LikeEdge{From: liker, To: target}

	if m.HasEdge(edge) {
		outcome.Result = domain.LikeAlreadyLiked
		return outcome, nil
	}
	m.addEdge(edge)

	if !m.HasEdge(edge.Reverse()) {
		outcome.Result = domain.LikeOneSided
		return outcome, nil
	}

	outcome.Result = domain.LikeMutual
	outcome.RoomID, outcome.RoomCreated = m.ensureRoom(liker, target, now)
	return outcome, nil
}

// HasEdge reports whether the directed like exists
func (m *Matcher) HasEdge(edge domain.LikeEdge) bool {
	_, ok := m.edges[edge]
	return ok
}

// IsMutual reports whether a and b like each other
func (m *Matcher) IsMutual(a, b string) bool {
	edge := domain.LikeEdge{From: a, To: b}
	return m.HasEdge(edge) && m.HasEdge(edge.Reverse())
}

// Room returns the private room with the given id
func (m *Matcher) Room(roomID string) (domain.PrivateRoom, bool) {
	room, ok := m.rooms[roomID]
	return room, ok
}

// Edges returns all likes in insertion order
func (m *Matcher) Edges() []domain.LikeEdge {
	return append([]domain.LikeEdge(nil), m.edgeOrder...)
}

// Rooms returns all private rooms in creation order
func (m *Matcher) Rooms() []domain.PrivateRoom {
	result := make([]domain.PrivateRoom, 0, len(m.roomOrder))
	for _, id := range m.roomOrder {
		result = append(result, m.rooms[id])
	}
	return result
}

// Restore replaces all state with the given edges and rooms. Duplicate
// edges and rooms are collapsed; rooms without an id get a derived one.
func (m *Matcher) Restore(edges []domain.LikeEdge, rooms []domain.PrivateRoom) {
	m.edges = make(map[domain.LikeEdge]struct{}, len(edges))
	m.edgeOrder = m.edgeOrder[:0]
	m.rooms = make(map[string]domain.PrivateRoom, len(rooms))
	m.roomOrder = m.roomOrder[:0]

	for _, e := range edges {
		if e.From == "" || e.To == "" || e.From == e.To || m.HasEdge(e) {
			continue
		}
		m.addEdge(e)
	}

	for _, room := range rooms {
		if room.Users[0] == "" || room.Users[1] == "" {
			continue
		}
		room.RoomID = RoomID(room.Users[0], room.Users[1])
		if _, exists := m.rooms[room.RoomID]; exists {
			continue
		}
		m.rooms[room.RoomID] = room
		m.roomOrder = append(m.roomOrder, room.RoomID)
	}
}

func (m *Matcher) addEdge(edge domain.LikeEdge) {
	m.edges[edge] = struct{}{}
	m.edgeOrder = append(m.edgeOrder, edge)
}

// ensureRoom returns the room id for a and b, creating the room once
func (m *Matcher) ensureRoom(a, b string, now time.Time) (string, bool) {
	id := RoomID(a, b)
	if _, exists := m.rooms[id]; exists {
		return id, false
	}

	m.rooms[id] = domain.PrivateRoom{
		RoomID:    id,
		Users:     [2]string{a, b},
		CreatedAt: now,
	}
	m.roomOrder = append(m.roomOrder, id)
	return id, true
}
