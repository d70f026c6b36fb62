package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/durakfree/durak-server-go/internal/game"
)

// ErrNoSnapshot is returned by Load when no game state has been stored
// yet.
var ErrNoSnapshot = errors.New("store: no snapshot")

// UpdateFunc computes the successor of the current snapshot. It receives
// nil when no snapshot exists yet and must either return a complete new
// snapshot or an error, in which case the stored state is untouched.
type UpdateFunc func(current *game.GameState) (*game.GameState, error)

// Store owns the authoritative GameState snapshot. The engine itself is
// pure; the store provides the at-most-one-writer discipline the engine
// requires: Apply serializes read-modify-write cycles so every update
// sees the latest snapshot.
type Store interface {
	// Load returns the current snapshot, ErrNoSnapshot if none exists.
	Load(ctx context.Context) (*game.GameState, error)
	// Replace overwrites the current snapshot and notifies subscribers.
	Replace(ctx context.Context, s *game.GameState) error
	// Apply atomically replaces the snapshot with fn(current). The
	// returned snapshot is the committed one; an error from fn aborts
	// the update and is returned unchanged.
	Apply(ctx context.Context, fn UpdateFunc) (*game.GameState, error)
	// Subscribe returns a channel of committed snapshots and a cancel
	// function releasing the subscription.
	Subscribe(ctx context.Context) (<-chan *game.GameState, func(), error)
	// Close releases all resources and subscriber channels.
	Close() error
}

// MemoryStore is the in-process Store used for single-node games and
// tests. Snapshots are deep-cloned on the way in and out so no caller
// can mutate the authoritative state behind the store's back.
type MemoryStore struct {
	mu      sync.Mutex
	current *game.GameState
	subs    map[int]chan *game.GameState
	nextSub int
	closed  bool
	logger  *zap.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		subs:   make(map[int]chan *game.GameState),
		logger: logger,
	}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context) (*game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, ErrNoSnapshot
	}
	return m.current.Clone(), nil
}

// Replace implements Store.
func (m *MemoryStore) Replace(ctx context.Context, s *game.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked(s)
	return nil
}

// Apply implements Store.
func (m *MemoryStore) Apply(ctx context.Context, fn UpdateFunc) (*game.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var current *game.GameState
	if m.current != nil {
		current = m.current.Clone()
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	m.commitLocked(next)
	return next.Clone(), nil
}

// Subscribe implements Store.
func (m *MemoryStore) Subscribe(ctx context.Context) (<-chan *game.GameState, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan *game.GameState, 16)
	m.subs[id] = ch
	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	return nil
}

// commitLocked stores the snapshot and fans it out. Slow subscribers
// drop updates rather than block the writer; every delivered snapshot is
// complete, so a dropped intermediate state is harmless.
func (m *MemoryStore) commitLocked(s *game.GameState) {
	m.current = s.Clone()
	for id, ch := range m.subs {
		select {
		case ch <- s.Clone():
		default:
			m.logger.Debug("subscriber lagging, snapshot dropped", zap.Int("subscriber", id))
		}
	}
}
