package requests

import (
	"context"
	"fmt"

	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/resolution"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	errs "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildOrderBatch prices out the selected requests into one order summary.
// When the input names a vendor, every request must resolve (or be pinned) to
// that vendor's group; mismatches are rejected rather than reassigned. When
// MarkOrdered is set the Ordered transition is applied to all requests in one
// transaction.
func (s *Service) BuildOrderBatch(ctx context.Context, idx *catalog.Index, input OrderBatchInput) (*OrderBatch, error) {
	if len(input.RequestIDs) == 0 {
		return nil, errs.New(errs.CodeValidation, "requestIds must not be empty")
	}

	ids := dedupe(input.RequestIDs)
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "loading batch requests")
	}
	if len(rows) != len(ids) {
		return nil, errs.New(errs.CodeNotFound, "one or more requests not found")
	}

	batch := &OrderBatch{
		VendorID:    input.VendorID,
		Total:       decimal.Zero,
		GeneratedAt: s.now(),
	}
	if input.VendorID != nil {
		batch.VendorName = idx.VendorName(*input.VendorID)
	}

	groupKeys := map[string]struct{}{}
	for _, row := range rows {
		if row.Status.IsHistory() {
			return nil, errs.New(errs.CodeStateConflict, fmt.Sprintf("request %s is already closed", row.ID))
		}

		res := resolution.ResolveRequest(idx, row)
		key := res.GroupKey()
		if row.OverrideVendorID != nil {
			key = row.OverrideVendorID.String()
		}
		groupKeys[key] = struct{}{}

		if input.VendorID != nil && key != input.VendorID.String() {
			return nil, errs.New(errs.CodeValidation, fmt.Sprintf("request %s does not belong to the selected vendor", row.ID))
		}

		itemName := ""
		var vendorItemNo *string
		if row.CatalogID != nil {
			if item, ok := idx.Item(*row.CatalogID); ok {
				itemName = item.ItemName
			}
			for _, quote := range resolution.Quotes(idx, *row.CatalogID) {
				if res.VendorID != nil && quote.VendorID == *res.VendorID {
					vendorItemNo = quote.VendorItemNo
					break
				}
			}
		}
		if itemName == "" && row.OtherItemName != nil {
			itemName = *row.OtherItemName
		}

		lineTotal := res.EffectivePrice.Mul(decimal.NewFromInt(int64(row.Qty)))
		batch.Lines = append(batch.Lines, BatchLine{
			RequestID:      row.ID,
			ItemName:       itemName,
			VendorItemNo:   vendorItemNo,
			Qty:            row.Qty,
			VendorName:     res.VendorName,
			UnitPrice:      res.UnitPrice,
			EffectivePrice: res.EffectivePrice,
			LineTotal:      lineTotal,
			Tag:            res.Tag,
		})
		batch.TotalQty += row.Qty
		batch.Total = batch.Total.Add(lineTotal)
	}

	// A batch with no vendor constraint still gets a usable heading when all
	// its requests landed in one group.
	if input.VendorID == nil {
		if len(groupKeys) == 1 {
			for key := range groupKeys {
				if id, err := uuid.Parse(key); err == nil {
					vendorID := id
					batch.VendorID = &vendorID
					batch.VendorName = idx.VendorName(id)
				} else {
					batch.VendorName = resolution.UnassignedName
				}
			}
		} else {
			batch.VendorName = "Mixed Vendors"
		}
	}

	if input.MarkOrdered {
		updates := StatusTransitionUpdates(enums.RequestStatusOrdered, s.now())
		err := s.withTx(ctx, func(repo Repository) error {
			return repo.UpdateMany(ctx, ids, updates)
		})
		if err != nil {
			return nil, errs.Wrap(errs.CodeInternal, err, "marking batch ordered")
		}
		batch.Ordered = true
		s.notify(ctx)
	}

	return batch, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
