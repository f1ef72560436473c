package store

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
	"golang.org/x/time/rate"
)

// saveTimeout bounds a single background write
const saveTimeout = 10 * time.Second

type pendingSnapshot struct {
	seq      uint64
	snapshot domain.Snapshot
}

// Persister writes snapshots in the background so the event loop never
// waits on I/O. Only the newest submitted snapshot is kept; older pending
// ones are dropped because every snapshot is a full dump.
type Persister struct {
	store   Store
	limiter *rate.Limiter
	pending chan pendingSnapshot
	done    chan struct{}

	seq     atomic.Uint64
	saves   atomic.Int64
	mu      sync.Mutex // serializes writes
	lastSeq uint64
}

// NewPersister creates a Persister writing at most perSecond times a second
func NewPersister(store Store, perSecond float64) *Persister {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Persister{
		store:   store,
		limiter: rate.NewLimiter(limit, 1),
		pending: make(chan pendingSnapshot, 1),
		done:    make(chan struct{}),
	}
}

// Submit queues a snapshot for writing without blocking. It must be called
// from a single goroutine.
func (p *Persister) Submit(snapshot domain.Snapshot) {
	item := pendingSnapshot{seq: p.seq.Add(1), snapshot: snapshot}
	for {
		select {
		case p.pending <- item:
			return
		default:
		}
		// Replace the stale pending snapshot
		select {
		case <-p.pending:
		default:
		}
	}
}

// Run writes submitted snapshots until ctx is cancelled
func (p *Persister) Run(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		case item := <-p.pending:
			if err := p.limiter.Wait(ctx); err != nil {
				return
			}
			p.write(ctx, item)
		}
	}
}

// Done is closed once Run has returned
func (p *Persister) Done() <-chan struct{} {
	return p.done
}

// Flush writes snapshot synchronously, bypassing the pacing limiter
func (p *Persister) Flush(ctx context.Context, snapshot domain.Snapshot) error {
	return p.save(ctx, pendingSnapshot{seq: p.seq.Add(1), snapshot: snapshot})
}

// Saves returns the number of successful writes
func (p *Persister) Saves() int64 {
	return p.saves.Load()
}

func (p *Persister) write(ctx context.Context, item pendingSnapshot) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := p.save(ctx, item); err != nil {
		log.Printf("[store] Failed to save snapshot: %v", err)
	}
}

// save skips snapshots older than the last one written
func (p *Persister) save(ctx context.Context, item pendingSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if item.seq <= p.lastSeq {
		return nil
	}
	p.lastSeq = item.seq

	if err := p.store.Save(ctx, item.snapshot); err != nil {
		return err
	}
	p.saves.Add(1)
	return nil
}
