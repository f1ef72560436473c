package usecase

import (
	"errors"
	"testing"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

func TestRoomID(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
	}{
		{"Alice", "Bob", "Alice_Bob"},
		{"Bob", "Alice", "Alice_Bob"},
		{"bob", "Bob", "Bob_bob"}, // byte order, uppercase first
		{"zed", "amy", "amy_zed"},
	}

	for _, tc := range tests {
		if got := RoomID(tc.a, tc.b); got != tc.expected {
			t.Errorf("RoomID(%s, %s) = %s, expected %s", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestMatcher_OneSided(t *testing.T) {
	m := NewMatcher()

	outcome, err := m.Like("Alice", "Bob", testNow)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if outcome.Result != domain.LikeOneSided {
		t.Errorf("Expected one-sided, got %s", outcome.Result)
	}
	if len(m.Rooms()) != 0 {
		t.Error("One-sided like must not create a room")
	}
}

func TestMatcher_MutualThenAlreadyLiked(t *testing.T) {
	m := NewMatcher()

	m.Like("Alice", "Bob", testNow)
	outcome, _ := m.Like("Bob", "Alice", testNow)
	if outcome.Result != domain.LikeMutual {
		t.Fatalf("Expected mutual, got %s", outcome.Result)
	}
	if outcome.RoomID != "Alice_Bob" {
		t.Errorf("Expected room Alice_Bob, got %s", outcome.RoomID)
	}
	if !outcome.RoomCreated {
		t.Error("Expected room to be created")
	}

	again, _ := m.Like("Alice", "Bob", testNow)
	if again.Result != domain.LikeAlreadyLiked {
		t.Errorf("Expected already liked, got %s", again.Result)
	}
	if len(m.Rooms()) != 1 {
		t.Errorf("Expected exactly 1 room, got %d", len(m.Rooms()))
	}
	if !m.IsMutual("Bob", "Alice") {
		t.Error("Expected pair to be mutual")
	}
}

func TestMatcher_RoomCreationIsIdempotent(t *testing.T) {
	m := NewMatcher()

	// A room restored from storage without the edges that created it
	m.Restore(nil, []domain.PrivateRoom{{Users: [2]string{"Alice", "Bob"}, CreatedAt: testNow}})

	m.Like("Alice", "Bob", testNow)
	outcome, _ := m.Like("Bob", "Alice", testNow)
	if outcome.Result != domain.LikeMutual {
		t.Fatalf("Expected mutual, got %s", outcome.Result)
	}
	if outcome.RoomCreated {
		t.Error("Existing room must be reused")
	}
	if len(m.Rooms()) != 1 {
		t.Errorf("Expected 1 room, got %d", len(m.Rooms()))
	}
}

func TestMatcher_InvalidTarget(t *testing.T) {
	m := NewMatcher()

	if _, err := m.Like("Alice", "", testNow); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for empty target, got %v", err)
	}
	if _, err := m.Like("Alice", "Alice", testNow); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("Expected ErrInvalidTarget for self like, got %v", err)
	}
	if len(m.Edges()) != 0 {
		t.Error("Rejected likes must not record edges")
	}
}

func TestMatcher_Restore(t *testing.T) {
	m := NewMatcher()
	m.Restore(
		[]domain.LikeEdge{
			{From: "Alice", To: "Bob"},
			{From: "Alice", To: "Bob"}, // duplicate
			{From: "Carl", To: "Carl"}, // self
			{From: "", To: "Bob"},      // incomplete
		},
		[]domain.PrivateRoom{
			{RoomID: "wrong", Users: [2]string{"Dan", "Cat"}},
			{Users: [2]string{"Cat", "Dan"}},
		},
	)

	if len(m.Edges()) != 1 {
		t.Errorf("Expected 1 edge, got %d", len(m.Edges()))
	}
	rooms := m.Rooms()
	if len(rooms) != 1 || rooms[0].RoomID != "Cat_Dan" {
		t.Errorf("Expected single room Cat_Dan, got %+v", rooms)
	}

	outcome, _ := m.Like("Bob", "Alice", testNow)
	if outcome.Result != domain.LikeMutual {
		t.Errorf("Expected restored edge to produce mutual, got %s", outcome.Result)
	}
}
