// Package collections names the synced datasets and defines the change-feed
// contract the live views are built on. A change signal carries only the
// collection name; subscribers respond by re-reading the full snapshot.
package collections

import "context"

const (
	CatalogItems   = "catalog_items"
	Vendors        = "vendors"
	VendorPrices   = "vendor_prices"
	Categories     = "categories"
	Units          = "units"
	Compartments   = "compartments"
	Requests       = "requests"
	InventoryItems = "inventory_items"
)

// Notifier publishes a change signal after a write to a collection.
type Notifier interface {
	NotifyChanged(ctx context.Context, collection string) error
}

// Subscription is one live change feed for a single collection. Signals()
// is closed when the feed terminates; after that Err() reports why.
type Subscription interface {
	Signals() <-chan struct{}
	Err() error
	Close() error
}

// Feed opens change subscriptions.
type Feed interface {
	Subscribe(ctx context.Context, collection string) (Subscription, error)
}
