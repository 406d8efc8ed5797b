// Package mirror keeps an in-memory copy of one synced collection. The mirror
// loads the full snapshot once on start, then re-reads it whenever the change
// feed signals, so readers always see a complete, recent view without holding
// a DB connection.
package mirror

import (
	"context"
	"sync"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

// ReadAllFunc loads the full current contents of the collection.
type ReadAllFunc[T any] func(ctx context.Context) ([]T, error)

// Mirror tracks a single collection. Safe for concurrent use once Start
// returns.
type Mirror[T any] struct {
	collection string
	readAll    ReadAllFunc[T]
	feed       collections.Feed
	logg       *logger.Logger

	mu       sync.RWMutex
	snapshot []T
	err      error

	onChange []func([]T)

	sub    collections.Subscription
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func New[T any](collection string, readAll ReadAllFunc[T], feed collections.Feed, logg *logger.Logger) *Mirror[T] {
	return &Mirror[T]{
		collection: collection,
		readAll:    readAll,
		feed:       feed,
		logg:       logg,
	}
}

// OnChange registers a callback invoked with each fresh snapshot, including
// the initial load. Must be called before Start.
func (m *Mirror[T]) OnChange(fn func([]T)) {
	m.onChange = append(m.onChange, fn)
}

// Start performs the initial load and begins following the change feed. The
// error return covers the initial load and subscription only; later feed
// failures surface through Err.
func (m *Mirror[T]) Start(ctx context.Context) error {
	rows, err := m.readAll(ctx)
	if err != nil {
		return err
	}
	m.store(rows)

	if m.feed == nil {
		return nil
	}

	sub, err := m.feed.Subscribe(ctx, m.collection)
	if err != nil {
		return err
	}
	m.sub = sub

	runCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.wg.Add(1)
	go m.follow(runCtx, sub)
	return nil
}

func (m *Mirror[T]) follow(ctx context.Context, sub collections.Subscription) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.Signals():
			if !ok {
				m.setErr(sub.Err())
				return
			}
			rows, err := m.readAll(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if m.logg != nil {
					m.logg.Error(m.logg.WithCollection(ctx, m.collection), "mirror refresh failed", err)
				}
				continue
			}
			m.store(rows)
		}
	}
}

func (m *Mirror[T]) store(rows []T) {
	m.mu.Lock()
	m.snapshot = rows
	m.mu.Unlock()
	for _, fn := range m.onChange {
		fn(rows)
	}
}

// Snapshot returns the latest full copy. Callers must not mutate the
// returned slice.
func (m *Mirror[T]) Snapshot() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Refresh forces an immediate re-read, bypassing the feed. Used after writes
// performed by this process so its own views update without waiting for the
// published signal to round-trip.
func (m *Mirror[T]) Refresh(ctx context.Context) error {
	rows, err := m.readAll(ctx)
	if err != nil {
		return err
	}
	m.store(rows)
	return nil
}

func (m *Mirror[T]) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err == nil && err != nil {
		m.err = err
	}
}

// Err reports a terminal feed failure, if any. A mirror with a failed feed
// keeps serving its last snapshot.
func (m *Mirror[T]) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// Close stops following the feed. Idempotent.
func (m *Mirror[T]) Close() error {
	var err error
	m.once.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		if m.sub != nil {
			err = m.sub.Close()
		}
		m.wg.Wait()
	})
	return err
}
