package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mmuslimabdulj/likechat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Messages: []domain.PublicMessage{
			{ID: "1a", Nickname: "Alice", Content: "hi", Timestamp: testNow, Kind: domain.MessageKindPublic},
			{ID: "2b", Nickname: "Bob", Content: "hey", Timestamp: testNow.Add(time.Second), Kind: domain.MessageKindPublic},
		},
		Likes: []domain.LikeEdge{
			{From: "Alice", To: "Bob"},
			{From: "Bob", To: "Alice"},
		},
		PrivateChats: []domain.PrivateRoom{
			{RoomID: "Alice_Bob", Users: [2]string{"Bob", "Alice"}, CreatedAt: testNow},
		},
	}
}

// memoryStore records saves for persister tests
type memoryStore struct {
	mu    sync.Mutex
	saved []domain.Snapshot
	err   error
	block chan struct{}
}

func (m *memoryStore) Load(ctx context.Context) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return domain.Snapshot{}, m.err
	}
	return m.saved[len(m.saved)-1], m.err
}

func (m *memoryStore) Save(ctx context.Context, s domain.Snapshot) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, s)
	return nil
}

func (m *memoryStore) Close() error { return nil }

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func (m *memoryStore) last() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[len(m.saved)-1]
}

// === FileStore ===

func TestFileStore_LoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "database.json"))

	snapshot, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "database.json")
	s := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 2)
	assert.Equal(t, "hi", loaded.Messages[0].Content)
	assert.True(t, loaded.Messages[0].Timestamp.Equal(testNow))
	assert.Equal(t, sampleSnapshot().Likes, loaded.Likes)
	require.Len(t, loaded.PrivateChats, 1)
	assert.Equal(t, "Alice_Bob", loaded.PrivateChats[0].RoomID)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_DocumentLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	s := NewFileStore(path)
	require.NoError(t, s.Save(context.Background(), domain.Snapshot{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[],"likes":[],"privateChats":[]}`, string(data))
}

func TestFileStore_Overwrites(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	require.NoError(t, s.Save(ctx, domain.Snapshot{Likes: []domain.LikeEdge{{From: "C", To: "D"}}}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Messages)
	assert.Equal(t, []domain.LikeEdge{{From: "C", To: "D"}}, loaded.Likes)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewFileStore(path)
	_, err := s.Load(context.Background())
	assert.Error(t, err)

	// LoadOrEmpty degrades to a fresh start
	assert.True(t, LoadOrEmpty(context.Background(), s).IsEmpty())
}

func TestFileStore_SaveCancelled(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Save(ctx, sampleSnapshot()), context.Canceled)
}

// === SQLiteStore ===

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	require.NoError(t, s.Save(ctx, sampleSnapshot()))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, "1a", loaded.Messages[0].ID)
	assert.Equal(t, "2b", loaded.Messages[1].ID)
	assert.Equal(t, domain.MessageKindPublic, loaded.Messages[0].Kind)
	assert.Equal(t, sampleSnapshot().Likes, loaded.Likes)
	require.Len(t, loaded.PrivateChats, 1)
	assert.Equal(t, [2]string{"Bob", "Alice"}, loaded.PrivateChats[0].Users)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSnapshot()))
	require.NoError(t, s.Save(ctx, domain.Snapshot{
		Messages: []domain.PublicMessage{{ID: "9z", Nickname: "Carl", Content: "only", Timestamp: testNow}},
	}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 1)
	assert.Equal(t, "9z", loaded.Messages[0].ID)
	assert.Empty(t, loaded.Likes)
	assert.Empty(t, loaded.PrivateChats)
}

// === Persister ===

func TestPersister_WritesSubmittedSnapshot(t *testing.T) {
	mem := &memoryStore{}
	p := NewPersister(mem, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.Submit(sampleSnapshot())

	require.Eventually(t, func() bool { return mem.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), p.Saves())
}

func TestPersister_LatestSnapshotWins(t *testing.T) {
	mem := &memoryStore{block: make(chan struct{})}
	p := NewPersister(mem, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	// First write blocks inside Save while more snapshots queue up
	p.Submit(domain.Snapshot{Likes: []domain.LikeEdge{{From: "a", To: "b"}}})
	time.Sleep(20 * time.Millisecond)
	for i := 0; i < 10; i++ {
		p.Submit(domain.Snapshot{Likes: []domain.LikeEdge{{From: "x", To: "y"}}})
	}
	p.Submit(domain.Snapshot{Likes: []domain.LikeEdge{{From: "last", To: "one"}}})
	close(mem.block)

	require.Eventually(t, func() bool {
		return mem.count() > 0 && mem.last().Likes[0].From == "last"
	}, time.Second, 5*time.Millisecond)
	assert.LessOrEqual(t, mem.count(), 2)
}

func TestPersister_FailuresAreNotFatal(t *testing.T) {
	mem := &memoryStore{err: errors.New("disk full")}
	p := NewPersister(mem, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go p.Run(ctx)

	p.Submit(sampleSnapshot())
	p.Submit(sampleSnapshot())
	time.Sleep(30 * time.Millisecond)

	cancel()
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("Persister did not stop")
	}
	assert.Equal(t, int64(0), p.Saves())
}

func TestPersister_FlushSkipsStaleBackgroundWrite(t *testing.T) {
	mem := &memoryStore{}
	p := NewPersister(mem, 0)

	stale := pendingSnapshot{seq: p.seq.Add(1), snapshot: domain.Snapshot{Likes: []domain.LikeEdge{{From: "old", To: "x"}}}}
	require.NoError(t, p.Flush(context.Background(), sampleSnapshot()))

	// A background write of an older snapshot finishing late is ignored
	p.write(context.Background(), stale)

	assert.Equal(t, 1, mem.count())
	assert.Equal(t, sampleSnapshot().Likes, mem.last().Likes)
}
