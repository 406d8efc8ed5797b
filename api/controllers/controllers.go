// Package controllers holds the HTTP handlers. Each controller is a thin
// adapter: decode and validate the payload, call the service, translate the
// result. Writes that land in the database also nudge the live view so the
// writer sees its own change without waiting for the published signal.
package controllers

import (
	"context"

	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/requests"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
)

// LiveView is the slice of the reactive state container the HTTP layer reads
// and refreshes. Satisfied by *appstate.State.
type LiveView interface {
	Index() *catalog.Index
	Board() []requests.Group
	Requests() []models.Request
	RefreshStatics(ctx context.Context) error
	RefreshRequests(ctx context.Context) error
	Err() error
}

// refreshStatics nudges the live view after an own-process write to a static
// collection. The write already landed, so a refresh failure is logged and the
// response stays successful; the next change signal repairs the view.
func refreshStatics(ctx context.Context, live LiveView, logg *logger.Logger) {
	if live == nil {
		return
	}
	if err := live.RefreshStatics(ctx); err != nil && logg != nil {
		logg.Error(ctx, "refreshing live view statics failed", err)
	}
}

func refreshRequests(ctx context.Context, live LiveView, logg *logger.Logger) {
	if live == nil {
		return
	}
	if err := live.RefreshRequests(ctx); err != nil && logg != nil {
		logg.Error(ctx, "refreshing live view requests failed", err)
	}
}
