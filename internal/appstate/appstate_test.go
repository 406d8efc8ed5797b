package appstate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/internal/resolution"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStatics struct {
	mu      sync.Mutex
	items   []models.CatalogItem
	vendors []models.Vendor
	cats    []models.Category
	units   []models.Unit
	prices  []models.VendorPrice
}

func (m *memStatics) ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CatalogItem(nil), m.items...), nil
}

func (m *memStatics) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Vendor(nil), m.vendors...), nil
}

func (m *memStatics) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Category(nil), m.cats...), nil
}

func (m *memStatics) ListUnits(ctx context.Context) ([]models.Unit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Unit(nil), m.units...), nil
}

func (m *memStatics) ListVendorPrices(ctx context.Context) ([]models.VendorPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.VendorPrice(nil), m.prices...), nil
}

type memRequests struct {
	mu   sync.Mutex
	rows []models.Request
}

func (m *memRequests) ListAll(ctx context.Context) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Request(nil), m.rows...), nil
}

func (m *memRequests) add(row models.Request) {
	m.mu.Lock()
	m.rows = append(m.rows, row)
	m.mu.Unlock()
}

type memSub struct {
	signals chan struct{}
	once    sync.Once
}

func (s *memSub) Signals() <-chan struct{} { return s.signals }
func (s *memSub) Err() error               { return nil }
func (s *memSub) Close() error {
	s.once.Do(func() { close(s.signals) })
	return nil
}

type memFeed struct {
	mu   sync.Mutex
	subs map[string]*memSub
}

func newMemFeed() *memFeed {
	return &memFeed{subs: map[string]*memSub{}}
}

func (f *memFeed) Subscribe(ctx context.Context, collection string) (collections.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := &memSub{signals: make(chan struct{}, 8)}
	f.subs[collection] = sub
	return sub, nil
}

func (f *memFeed) signal(collection string) {
	f.mu.Lock()
	sub := f.subs[collection]
	f.mu.Unlock()
	if sub != nil {
		sub.signals <- struct{}{}
	}
}

func testWorld() (*memStatics, *memRequests, uuid.UUID) {
	itemID := uuid.New()
	vendorID := uuid.New()
	statics := &memStatics{
		items:   []models.CatalogItem{{ID: itemID, ItemName: "Gauze", IsActive: true}},
		vendors: []models.Vendor{{ID: vendorID, Name: "Acme Supply", ServiceFee: decimal.Zero}},
		prices: []models.VendorPrice{{
			ID:           uuid.New(),
			CatalogID:    itemID,
			VendorID:     vendorID,
			UnitPrice:    decimal.NewFromInt(3),
			VendorStatus: enums.VendorStockStatusInStock,
		}},
	}
	reqs := &memRequests{rows: []models.Request{{
		ID:        uuid.New(),
		CatalogID: &itemID,
		Qty:       1,
		Status:    enums.RequestStatusOpen,
		CreatedAt: time.Now(),
	}}}
	return statics, reqs, itemID
}

func waitForRender(t *testing.T, ch <-chan Snapshot, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if cond(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for render")
		}
	}
}

func TestStartBuildsInitialBoard(t *testing.T) {
	statics, reqs, _ := testWorld()
	state := New(Options{CatalogRepo: statics, RequestsRepo: reqs, Feed: newMemFeed()})

	require.NoError(t, state.Start(context.Background()))
	defer state.Close()

	board := state.Board()
	require.Len(t, board, 1)
	assert.Equal(t, "Acme Supply", board[0].Label)
	require.Len(t, board[0].Entries, 1)
	assert.Equal(t, resolution.TagCheapest, board[0].Entries[0].Resolution.Tag)
	assert.NotNil(t, state.Index())
}

func TestChangeSignalRebuildsBoard(t *testing.T) {
	statics, reqs, itemID := testWorld()
	feed := newMemFeed()
	state := New(Options{CatalogRepo: statics, RequestsRepo: reqs, Feed: feed})

	renders := make(chan Snapshot, 16)
	state.OnRender(func(snap Snapshot) { renders <- snap })

	require.NoError(t, state.Start(context.Background()))
	defer state.Close()

	reqs.add(models.Request{
		ID:        uuid.New(),
		CatalogID: &itemID,
		Qty:       2,
		Status:    enums.RequestStatusOpen,
		CreatedAt: time.Now(),
	})
	feed.signal(collections.Requests)

	snap := waitForRender(t, renders, func(s Snapshot) bool {
		return len(s.Requests) == 2
	})
	require.Len(t, snap.Board, 1)
	assert.Len(t, snap.Board[0].Entries, 2)
}

func TestRefreshStaticsPicksUpNewVendor(t *testing.T) {
	statics, reqs, itemID := testWorld()
	state := New(Options{CatalogRepo: statics, RequestsRepo: reqs, Feed: newMemFeed()})

	require.NoError(t, state.Start(context.Background()))
	defer state.Close()

	// A cheaper in-stock vendor appears.
	cheaper := uuid.New()
	statics.mu.Lock()
	statics.vendors = append(statics.vendors, models.Vendor{ID: cheaper, Name: "Budget Medical", ServiceFee: decimal.Zero})
	statics.prices = append(statics.prices, models.VendorPrice{
		ID:           uuid.New(),
		CatalogID:    itemID,
		VendorID:     cheaper,
		UnitPrice:    decimal.NewFromInt(1),
		VendorStatus: enums.VendorStockStatusInStock,
	})
	statics.mu.Unlock()

	require.NoError(t, state.RefreshStatics(context.Background()))

	board := state.Board()
	require.Len(t, board, 1)
	assert.Equal(t, "Budget Medical", board[0].Label)
}

func TestSnapshotIsImmutablePerRender(t *testing.T) {
	statics, reqs, _ := testWorld()
	state := New(Options{CatalogRepo: statics, RequestsRepo: reqs, Feed: newMemFeed()})

	require.NoError(t, state.Start(context.Background()))
	defer state.Close()

	before := state.Current()
	require.NoError(t, state.RefreshRequests(context.Background()))
	after := state.Current()

	// The old snapshot keeps its own index; rebuilds swap, never mutate.
	assert.NotSame(t, before.Index, after.Index)
}

func TestCloseIsIdempotent(t *testing.T) {
	statics, reqs, _ := testWorld()
	state := New(Options{CatalogRepo: statics, RequestsRepo: reqs, Feed: newMemFeed()})

	require.NoError(t, state.Start(context.Background()))
	require.NoError(t, state.Close())
	require.NoError(t, state.Close())
}
