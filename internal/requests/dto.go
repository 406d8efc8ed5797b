package requests

import (
	"time"

	"github.com/crestviewems/supplyline-backend/internal/resolution"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequestInput opens a new purchase request. Exactly one of CatalogID
// and OtherItemName must be set.
type CreateRequestInput struct {
	CatalogID     *uuid.UUID `json:"catalogId"`
	OtherItemName *string    `json:"otherItemName"`
	Qty           int        `json:"qty" validate:"gte=1"`
	Notes         *string    `json:"notes"`
}

// UpdateRequestInput edits the mutable request fields outside the status
// lifecycle.
type UpdateRequestInput struct {
	Qty   *int    `json:"qty" validate:"omitempty,gte=1"`
	Notes *string `json:"notes"`
}

// SetOverrideInput pins or clears a request's manual vendor override. A nil
// VendorID clears the pin.
type SetOverrideInput struct {
	VendorID *uuid.UUID `json:"vendorId"`
}

// UpdateStatusInput moves a request through its lifecycle.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderBatchInput selects requests to roll into one vendor order.
type OrderBatchInput struct {
	RequestIDs []uuid.UUID `json:"requestIds" validate:"required,min=1"`
	// VendorID constrains the batch to one vendor group; requests resolving
	// elsewhere are rejected rather than silently reassigned.
	VendorID *uuid.UUID `json:"vendorId"`
	// MarkOrdered also transitions every request to Ordered.
	MarkOrdered bool `json:"markOrdered"`
}

// BatchLine is one request priced out inside an order batch.
type BatchLine struct {
	RequestID      uuid.UUID       `json:"requestId"`
	ItemName       string          `json:"itemName"`
	VendorItemNo   *string         `json:"vendorItemNo,omitempty"`
	Qty            int             `json:"qty"`
	VendorName     string          `json:"vendorName"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	Tag            string          `json:"tag"`
}

// OrderBatch is the print/export-ready summary of one batch.
type OrderBatch struct {
	VendorID    *uuid.UUID      `json:"vendorId,omitempty"`
	VendorName  string          `json:"vendorName"`
	Lines       []BatchLine     `json:"lines"`
	TotalQty    int             `json:"totalQty"`
	Total       decimal.Decimal `json:"total"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Ordered     bool            `json:"ordered"`
}

// Entry is one request joined with its catalog item and vendor resolution,
// ready for display.
type Entry struct {
	Request    models.Request          `json:"request"`
	ItemName   string                  `json:"itemName"`
	Resolution resolution.Resolution   `json:"resolution"`
	Prices     []resolution.PriceQuote `json:"prices"`
}

// Group is one vendor-view bucket.
type Group struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}
