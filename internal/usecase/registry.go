package usecase

import (
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
)

// Registry maps live connections to identities and keeps nicknames unique.
// It is not safe for concurrent use; the hub event loop owns it.
type Registry struct {
	byConn map[string]*domain.Identity // connectionID -> identity
	byNick map[string]string           // nickname -> connectionID
	order  []string                    // connectionIDs in join order
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[string]*domain.Identity),
		byNick: make(map[string]string),
	}
}

// Join registers nickname for connID
func (r *Registry) Join(connID, nickname string, now time.Time) (domain.Identity, error) {
	nickname, err := NormalizeNickname(nickname)
	if err != nil {
		return domain.Identity{}, err
	}
	if _, ok := r.byConn[connID]; ok {
		return domain.Identity{}, domain.ErrAlreadyJoined
	}
	if _, taken := r.byNick[nickname]; taken {
		return domain.Identity{}, domain.ErrDuplicateNickname
	}

	identity := domain.NewIdentity(connID, nickname, now)
	r.byConn[connID] = &identity
	r.byNick[nickname] = connID
	r.order = append(r.order, connID)

	return identity, nil
}

// Leave removes the identity bound to connID, freeing its nickname
func (r *Registry) Leave(connID string) (domain.Identity, error) {
	identity, ok := r.byConn[connID]
	if !ok {
		return domain.Identity{}, domain.ErrNotFound
	}

	delete(r.byConn, connID)
	delete(r.byNick, identity.Nickname)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return *identity, nil
}

// Get returns the identity bound to connID
func (r *Registry) Get(connID string) (domain.Identity, bool) {
	identity, ok := r.byConn[connID]
	if !ok {
		return domain.Identity{}, false
	}
	return *identity, true
}

// LookupByNickname finds the live identity holding nickname
func (r *Registry) LookupByNickname(nickname string) (domain.Identity, error) {
	connID, ok := r.byNick[nickname]
	if !ok {
		return domain.Identity{}, domain.ErrNotFound
	}
	return *r.byConn[connID], nil
}

// IsTaken reports whether a live identity holds nickname
func (r *Registry) IsTaken(nickname string) bool {
	_, ok := r.byNick[nickname]
	return ok
}

// List returns identities in join order
func (r *Registry) List() []domain.Identity {
	result := make([]domain.Identity, 0, len(r.order))
	for _, connID := range r.order {
		result = append(result, *r.byConn[connID])
	}
	return result
}

// Len returns the number of live identities
func (r *Registry) Len() int {
	return len(r.byConn)
}
