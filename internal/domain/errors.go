package domain

import "errors"

var (
	// ErrDuplicateNickname means a live identity already holds the nickname
	ErrDuplicateNickname = errors.New("nickname already taken")

	// ErrInvalidNickname means the nickname is outside the allowed length
	ErrInvalidNickname = errors.New("nickname must be between 2 and 20 characters")

	// ErrAlreadyJoined means the connection already holds an identity
	ErrAlreadyJoined = errors.New("connection already joined")

	// ErrNotJoined means the connection has no identity yet
	ErrNotJoined = errors.New("connection has not joined")

	// ErrEmptyContent means the message content was blank
	ErrEmptyContent = errors.New("message content is empty")

	// ErrUnknownRecipient means the target nickname has no live identity
	ErrUnknownRecipient = errors.New("unknown recipient")

	// ErrInvalidTarget means a like target was empty or the liker itself
	ErrInvalidTarget = errors.New("invalid like target")

	// ErrNotFound is returned for lookups and removals of absent records
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the admin secret did not match
	ErrUnauthorized = errors.New("unauthorized")
)

// IsValidation reports whether err was rejected before any mutation
// because the input itself was malformed.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidNickname) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrInvalidTarget)
}
