package usecase

import (
	"strconv"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 9
)

// IDGenerator produces message ids of the form <unix millis><random base36>.
// Ids are not ordered; the suffix keeps ids created in the same
// millisecond apart.
type IDGenerator struct {
	mu     sync.Mutex
	suffix func() string
}

// NewIDGenerator creates an IDGenerator
func NewIDGenerator() (*IDGenerator, error) {
	suffix, err := nanoid.CustomASCII(idAlphabet, idSuffixLength)
	if err != nil {
		return nil, err
	}
	return &IDGenerator{suffix: suffix}, nil
}

// Next returns a new id stamped with t
func (g *IDGenerator) Next(t time.Time) string {
	g.mu.Lock()
	s := g.suffix()
	g.mu.Unlock()
	return strconv.FormatInt(t.UnixMilli(), 10) + s
}
