// Package store persists chat snapshots. Storage is best-effort: the
// in-memory state stays authoritative and failures are only logged.
package store

import (
	"context"
	"log"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// Store loads and saves whole snapshots, overwriting prior content
type Store interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Close() error
}

// LoadOrEmpty reads the stored snapshot. Any failure yields an empty
// snapshot so the process can start fresh.
func LoadOrEmpty(ctx context.Context, s Store) domain.Snapshot {
	snapshot, err := s.Load(ctx)
	if err != nil {
		log.Printf("[store] Starting with fresh state: %v", err)
		return domain.Snapshot{}
	}
	return snapshot
}

// normalize replaces nil slices so the stored document always has arrays
func normalize(s domain.Snapshot) domain.Snapshot {
	if s.Messages == nil {
		s.Messages = []domain.PublicMessage{}
	}
	if s.Likes == nil {
		s.Likes = []domain.LikeEdge{}
	}
	if s.PrivateChats == nil {
		s.PrivateChats = []domain.PrivateRoom{}
	}
	return s
}
