// Package appstate is the single owner of the live in-memory view. It loads
// the static collections once, follows the requests and vendor-prices change
// feeds, and on every change rebuilds the domain index and the vendor board
// from scratch. Readers pull immutable snapshots; render callbacks are pushed
// fresh view models.
package appstate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/internal/mirror"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/metrics"
)

// Rebuild triggers recorded in metrics.
const (
	TriggerInitial      = "initial"
	TriggerRequests     = "requests"
	TriggerVendorPrices = "vendor_prices"
	TriggerStatics      = "statics"
)

// Snapshot is one immutable-per-render view of the world.
type Snapshot struct {
	Index     *catalog.Index
	Requests  []models.Request
	Board     []requests.Group
	RebuiltAt time.Time
}

// RenderFunc receives each recomputed snapshot.
type RenderFunc func(Snapshot)

// StaticsReader is the slice of the catalog repository the container reads
// from. Statics are loaded once and on explicit refresh, never subscribed.
type StaticsReader interface {
	ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	ListVendorPrices(ctx context.Context) ([]models.VendorPrice, error)
}

// RequestsReader loads the full live request set.
type RequestsReader interface {
	ListAll(ctx context.Context) ([]models.Request, error)
}

// State owns the mirrored collections and the derived view.
type State struct {
	repo     StaticsReader
	reqRepo  RequestsReader
	feed     collections.Feed
	logg     *logger.Logger
	liveview *metrics.LiveViewMetrics
	debounce time.Duration

	requestsMirror *mirror.Mirror[models.Request]
	pricesMirror   *mirror.Mirror[models.VendorPrice]

	mu       sync.RWMutex
	items    []models.CatalogItem
	vendors  []models.Vendor
	cats     []models.Category
	units    []models.Unit
	snapshot Snapshot

	renderMu  sync.Mutex
	renderFns []RenderFunc

	debounceMu    sync.Mutex
	debounceTimer *time.Timer
	pending       string

	closeOnce sync.Once
}

// Options wires the state container.
type Options struct {
	CatalogRepo     StaticsReader
	RequestsRepo    RequestsReader
	Feed            collections.Feed
	Logger          *logger.Logger
	LiveViewMetrics *metrics.LiveViewMetrics
	// RebuildDebounce caps rebuild frequency under bursts of change signals.
	// Zero rebuilds immediately on every signal.
	RebuildDebounce time.Duration
}

func New(opts Options) *State {
	return &State{
		repo:     opts.CatalogRepo,
		reqRepo:  opts.RequestsRepo,
		feed:     opts.Feed,
		logg:     opts.Logger,
		liveview: opts.LiveViewMetrics,
		debounce: opts.RebuildDebounce,
	}
}

// OnRender registers a callback pushed after every rebuild. Must be called
// before Start.
func (s *State) OnRender(fn RenderFunc) {
	s.renderMu.Lock()
	s.renderFns = append(s.renderFns, fn)
	s.renderMu.Unlock()
}

// Start blocks until every static collection has loaded and both live
// mirrors are following their feeds, then performs the first rebuild.
func (s *State) Start(ctx context.Context) error {
	if err := s.loadStatics(ctx); err != nil {
		return err
	}

	s.requestsMirror = mirror.New(collections.Requests, s.reqRepo.ListAll, s.feed, s.logg)
	s.pricesMirror = mirror.New(collections.VendorPrices, s.repo.ListVendorPrices, s.feed, s.logg)

	// Callbacks fire on the initial load too; the explicit rebuild below
	// covers that, so skip signals until both mirrors are up.
	var started atomic.Bool
	s.requestsMirror.OnChange(func([]models.Request) {
		if started.Load() {
			s.scheduleRebuild(TriggerRequests)
		}
	})
	s.pricesMirror.OnChange(func([]models.VendorPrice) {
		if started.Load() {
			s.scheduleRebuild(TriggerVendorPrices)
		}
	})

	if err := s.requestsMirror.Start(ctx); err != nil {
		return err
	}
	if err := s.pricesMirror.Start(ctx); err != nil {
		_ = s.requestsMirror.Close()
		return err
	}
	started.Store(true)

	s.rebuild(TriggerInitial)
	return nil
}

// RefreshStatics re-reads the load-once collections. Called after this
// process writes catalog items, vendors or reference rows, since statics are
// not subscribed.
func (s *State) RefreshStatics(ctx context.Context) error {
	if err := s.loadStatics(ctx); err != nil {
		return err
	}
	if s.pricesMirror != nil {
		if err := s.pricesMirror.Refresh(ctx); err != nil {
			return err
		}
	}
	s.rebuild(TriggerStatics)
	return nil
}

// RefreshRequests forces a requests re-read after an own-process write, so
// the local view updates without waiting for the published signal.
func (s *State) RefreshRequests(ctx context.Context) error {
	if s.requestsMirror == nil {
		return nil
	}
	if err := s.requestsMirror.Refresh(ctx); err != nil {
		return err
	}
	s.rebuild(TriggerRequests)
	return nil
}

// Current returns the latest snapshot.
func (s *State) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Index returns the latest domain index.
func (s *State) Index() *catalog.Index {
	return s.Current().Index
}

// Board returns the latest vendor-view grouping.
func (s *State) Board() []requests.Group {
	return s.Current().Board
}

// Requests returns the latest raw request snapshot.
func (s *State) Requests() []models.Request {
	return s.Current().Requests
}

// Err reports a terminal feed failure on either live mirror. A failed feed
// stalls that collection; it does not crash the sibling.
func (s *State) Err() error {
	if s.requestsMirror != nil {
		if err := s.requestsMirror.Err(); err != nil {
			return err
		}
	}
	if s.pricesMirror != nil {
		if err := s.pricesMirror.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every live subscription before returning. Required on
// shutdown so no stale reads or writes happen after the session ends.
func (s *State) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.debounceMu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.debounceMu.Unlock()

		if s.requestsMirror != nil {
			err = s.requestsMirror.Close()
		}
		if s.pricesMirror != nil {
			if cerr := s.pricesMirror.Close(); err == nil {
				err = cerr
			}
		}
	})
	return err
}

func (s *State) loadStatics(ctx context.Context) error {
	items, err := s.repo.ListCatalogItems(ctx)
	if err != nil {
		return err
	}
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		return err
	}
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items, s.vendors, s.cats, s.units = items, vendors, cats, units
	s.mu.Unlock()
	return nil
}

func (s *State) scheduleRebuild(trigger string) {
	if s.debounce <= 0 {
		s.rebuild(trigger)
		return
	}

	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()
	s.pending = trigger
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.debounceMu.Lock()
		trigger := s.pending
		s.debounceMu.Unlock()
		s.rebuild(trigger)
	})
}

// rebuild recomputes the index and the vendor board from the current
// snapshots. The whole derivation is pure; only the swap takes the lock.
func (s *State) rebuild(trigger string) {
	start := time.Now()

	s.mu.RLock()
	items, vendors, cats, units := s.items, s.vendors, s.cats, s.units
	s.mu.RUnlock()

	var reqRows []models.Request
	var priceRows []models.VendorPrice
	if s.requestsMirror != nil {
		reqRows = s.requestsMirror.Snapshot()
	}
	if s.pricesMirror != nil {
		priceRows = s.pricesMirror.Snapshot()
	}

	idx := catalog.BuildIndex(items, vendors, cats, units, priceRows)
	board := requests.BoardByVendor(idx, reqRows)

	snapshot := Snapshot{
		Index:     idx,
		Requests:  reqRows,
		Board:     board,
		RebuiltAt: time.Now(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.liveview.ObserveRebuild(trigger, time.Since(start), len(reqRows))

	s.renderMu.Lock()
	fns := make([]RenderFunc, len(s.renderFns))
	copy(fns, s.renderFns)
	s.renderMu.Unlock()
	for _, fn := range fns {
		fn(snapshot)
	}
}
