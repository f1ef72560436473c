package usecase

import (
	"errors"
	"fmt"

	"github.com/mmuslimabdulj/likechat/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth verifies the shared admin secret. Only a bcrypt hash of the
// secret is kept in memory.
type AdminAuth struct {
	hash []byte
}

// NewAdminAuth builds an AdminAuth from a bcrypt hash, or from a plain
// password when hash is empty. With neither set every secret is rejected.
func NewAdminAuth(password, hash string) (*AdminAuth, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &AdminAuth{hash: []byte(hash)}, nil
	}

	if password == "" {
		return &AdminAuth{}, nil
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminAuth{hash: h}, nil
}

// Enabled reports whether an admin secret is configured
func (a *AdminAuth) Enabled() bool {
	return len(a.hash) > 0
}

// Verify returns domain.ErrUnauthorized unless secret matches
func (a *AdminAuth) Verify(secret string) error {
	if !a.Enabled() || secret == "" {
		return domain.ErrUnauthorized
	}
	err := bcrypt.CompareHashAndPassword(a.hash, []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return nil
}
