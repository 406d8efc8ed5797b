// Package resolution selects which vendor a purchase request should be
// ordered from. The precedence is the load-bearing business rule of the
// whole system:
//
//	manual override > in-stock preferred > in-stock cheapest >
//	out-of-stock preferred > out-of-stock cheapest > unassigned
package resolution

import (
	"fmt"
	"sort"

	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TagManualOverride = "Manual Override"
	TagPreferred      = "Preferred"
	TagCheapest       = "Cheapest"

	// UnassignedKey is the group key used when no vendor can be resolved.
	UnassignedKey = "unassigned"
	// UnassignedName is the sentinel display name for that group.
	UnassignedName = "Unassigned / No Pricing"
	// NoPricingStatus is the sentinel stock-status text.
	NoPricingStatus = "No Pricing"
)

var oneHundred = decimal.NewFromInt(100)

// PriceQuote is one vendor's offer for a catalog item with the service fee
// applied.
type PriceQuote struct {
	PriceID        uuid.UUID               `json:"priceId"`
	VendorID       uuid.UUID               `json:"vendorId"`
	VendorName     string                  `json:"vendorName"`
	UnitPrice      decimal.Decimal         `json:"unitPrice"`
	EffectivePrice decimal.Decimal         `json:"effectivePrice"`
	VendorItemNo   *string                 `json:"vendorItemNo,omitempty"`
	Status         enums.VendorStockStatus `json:"status"`
}

// Resolution is the selected vendor and price for one request. A nil VendorID
// means the unassigned sentinel.
type Resolution struct {
	VendorID       *uuid.UUID      `json:"vendorId,omitempty"`
	VendorName     string          `json:"vendorName"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	Status         string          `json:"status"`
	Tag            string          `json:"tag"`
}

// GroupKey returns the vendor-view grouping key: the vendor id, or the
// unassigned sentinel key.
func (r Resolution) GroupKey() string {
	if r.VendorID == nil {
		return UnassignedKey
	}
	return r.VendorID.String()
}

// EffectivePrice applies a vendor's percent service fee to a unit price.
func EffectivePrice(unitPrice decimal.Decimal, serviceFee decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(1).Add(serviceFee.Div(oneHundred)))
}

// Quotes builds the item's price list sorted ascending by effective price.
// The sort is stable, so equal prices keep their insertion order and the
// resolution below never breaks ties arbitrarily.
func Quotes(idx *catalog.Index, catalogID uuid.UUID) []PriceQuote {
	rows := idx.Prices(catalogID)
	quotes := make([]PriceQuote, 0, len(rows))
	for _, row := range rows {
		fee := decimal.Zero
		if vendor, ok := idx.Vendor(row.VendorID); ok {
			fee = vendor.ServiceFee
		}
		quotes = append(quotes, PriceQuote{
			PriceID:        row.ID,
			VendorID:       row.VendorID,
			VendorName:     idx.VendorName(row.VendorID),
			UnitPrice:      row.UnitPrice,
			EffectivePrice: EffectivePrice(row.UnitPrice, fee),
			VendorItemNo:   row.VendorItemNo,
			Status:         row.VendorStatus,
		})
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].EffectivePrice.LessThan(quotes[j].EffectivePrice)
	})
	return quotes
}

// Resolve picks the vendor for one catalog item given the request's manual
// override and the item's preferred vendor, if any.
func Resolve(idx *catalog.Index, catalogID uuid.UUID, overrideVendorID *uuid.UUID, preferredVendorID *uuid.UUID) Resolution {
	quotes := Quotes(idx, catalogID)

	// A manual override always wins, price data or not.
	if overrideVendorID != nil {
		for _, q := range quotes {
			if q.VendorID == *overrideVendorID {
				return fromQuote(q, TagManualOverride)
			}
		}
		// No price row for the pinned vendor: a zero-price placeholder
		// whose status says there is no pricing data, not "In Stock".
		id := *overrideVendorID
		return Resolution{
			VendorID:       &id,
			VendorName:     idx.VendorName(id),
			UnitPrice:      decimal.Zero,
			EffectivePrice: decimal.Zero,
			Status:         NoPricingStatus,
			Tag:            TagManualOverride,
		}
	}

	var preferredQuote *PriceQuote
	if preferredVendorID != nil {
		for i, q := range quotes {
			if q.VendorID == *preferredVendorID {
				preferredQuote = &quotes[i]
				break
			}
		}
	}

	if preferredQuote != nil && preferredQuote.Status.CountsAsInStock() {
		return fromQuote(*preferredQuote, TagPreferred)
	}

	for _, q := range quotes {
		if q.Status.CountsAsInStock() {
			return fromQuote(q, TagCheapest)
		}
	}

	// Everything below here is out of stock; the tag carries the status so
	// the operator sees why the pick is degraded.
	if preferredQuote != nil {
		return fromQuote(*preferredQuote, fmt.Sprintf("%s (%s)", TagPreferred, preferredQuote.Status.Display()))
	}

	if len(quotes) > 0 {
		q := quotes[0]
		return fromQuote(q, fmt.Sprintf("%s (%s)", TagCheapest, q.Status.Display()))
	}

	return Unassigned()
}

// ResolveRequest resolves a full request row against the index.
func ResolveRequest(idx *catalog.Index, req models.Request) Resolution {
	if req.CatalogID == nil {
		return Unassigned()
	}
	var preferred *uuid.UUID
	if item, ok := idx.Item(*req.CatalogID); ok {
		preferred = item.PreferredVendorID
	}
	return Resolve(idx, *req.CatalogID, req.OverrideVendorID, preferred)
}

// Unassigned returns the sentinel resolution for items with no usable pricing.
func Unassigned() Resolution {
	return Resolution{
		VendorID:       nil,
		VendorName:     UnassignedName,
		UnitPrice:      decimal.Zero,
		EffectivePrice: decimal.Zero,
		Status:         NoPricingStatus,
		Tag:            NoPricingStatus,
	}
}

func fromQuote(q PriceQuote, tag string) Resolution {
	id := q.VendorID
	return Resolution{
		VendorID:       &id,
		VendorName:     q.VendorName,
		UnitPrice:      q.UnitPrice,
		EffectivePrice: q.EffectivePrice,
		Status:         q.Status.Display(),
		Tag:            tag,
	}
}
