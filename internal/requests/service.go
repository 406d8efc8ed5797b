package requests

import (
	"context"
	"errors"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/pkg/db"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	errs "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRefs is the slice of the catalog repository the request service
// needs to validate foreign keys on write.
type CatalogRefs interface {
	FindCatalogItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

// Service owns the request lifecycle. Status transitions carry their side
// effects in the same single-row update, so a request is never observed with
// an inconsistent status/override combination.
type Service struct {
	repo     Repository
	refs     CatalogRefs
	client   *db.Client
	notifier collections.Notifier
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, refs CatalogRefs, client *db.Client, notifier collections.Notifier, logg *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		refs:     refs,
		client:   client,
		notifier: notifier,
		logg:     logg,
		now:      time.Now,
	}
}

func (s *Service) ListAll(ctx context.Context) ([]models.Request, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing requests")
	}
	return rows, nil
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "finding request")
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, requesterEmail string, input CreateRequestInput) (*models.Request, error) {
	if (input.CatalogID == nil) == (input.OtherItemName == nil) {
		return nil, errs.New(errs.CodeValidation, "exactly one of catalogId and otherItemName is required")
	}
	if input.Qty < 1 {
		return nil, errs.New(errs.CodeValidation, "qty must be at least 1")
	}
	if input.CatalogID != nil {
		if _, err := s.refs.FindCatalogItem(ctx, *input.CatalogID); err != nil {
			return nil, s.notFoundOrInternal(err, "finding catalog item")
		}
	}
	if input.OtherItemName != nil && *input.OtherItemName == "" {
		return nil, errs.New(errs.CodeValidation, "otherItemName must not be empty")
	}

	row := &models.Request{
		CatalogID:      input.CatalogID,
		OtherItemName:  input.OtherItemName,
		Qty:            input.Qty,
		Status:         enums.RequestStatusOpen,
		RequesterEmail: requesterEmail,
		Notes:          input.Notes,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating request")
	}
	s.notify(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*models.Request, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, s.notFoundOrInternal(err, "finding request")
	}

	updates := map[string]any{}
	if input.Qty != nil {
		if *input.Qty < 1 {
			return nil, errs.New(errs.CodeValidation, "qty must be at least 1")
		}
		updates["qty"] = *input.Qty
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return nil, errs.New(errs.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating request")
	}
	s.notify(ctx)
	return s.reload(ctx, id)
}

// UpdateStatus applies a lifecycle transition together with its side effects
// in one write:
//
//	Received/Completed  stamp received_at, clear the vendor override
//	Open                clear the vendor override
//	Ordered             stamp last_ordered
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Request, error) {
	status, err := enums.ParseRequestStatus(input.Status)
	if err != nil {
		return nil, errs.New(errs.CodeValidation, err.Error())
	}
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, s.notFoundOrInternal(err, "finding request")
	}

	updates := StatusTransitionUpdates(status, s.now())
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating request status")
	}
	s.notify(ctx)
	return s.reload(ctx, id)
}

// StatusTransitionUpdates builds the single update map for a status change,
// including the transition side effects. Shared with the batch builder so
// both write paths enforce the same rules.
func StatusTransitionUpdates(status enums.RequestStatus, now time.Time) map[string]any {
	updates := map[string]any{"status": status}
	switch status {
	case enums.RequestStatusReceived, enums.RequestStatusCompleted:
		updates["received_at"] = now
		updates["override_vendor_id"] = nil
	case enums.RequestStatusOpen:
		updates["override_vendor_id"] = nil
	case enums.RequestStatusOrdered:
		updates["last_ordered"] = now
	}
	return updates
}

// SetOverride pins the request to one vendor, or clears the pin when the
// input vendor is nil.
func (s *Service) SetOverride(ctx context.Context, id uuid.UUID, input SetOverrideInput) (*models.Request, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, s.notFoundOrInternal(err, "finding request")
	}
	if row.Status.IsHistory() {
		return nil, errs.New(errs.CodeStateConflict, "request is already closed")
	}

	var value any
	if input.VendorID != nil {
		if _, err := s.refs.FindVendor(ctx, *input.VendorID); err != nil {
			return nil, s.notFoundOrInternal(err, "finding vendor")
		}
		value = *input.VendorID
	}

	if err := s.repo.Update(ctx, id, map[string]any{"override_vendor_id": value}); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating request override")
	}
	s.notify(ctx)
	return s.reload(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return s.notFoundOrInternal(err, "finding request")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting request")
	}
	s.notify(ctx)
	return nil
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "reloading request")
	}
	return row, nil
}

func (s *Service) notify(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyChanged(ctx, collections.Requests); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithCollection(ctx, collections.Requests), "publishing change signal failed", err)
	}
}

// withTx runs fn inside a transaction when a DB client is attached, and
// directly against the base repository otherwise (stub repositories in tests
// have no transaction to offer).
func (s *Service) withTx(ctx context.Context, fn func(repo Repository) error) error {
	if s.client == nil {
		return fn(s.repo)
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(s.repo.WithTx(tx))
	})
}

func (s *Service) notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.CodeNotFound, "request target not found")
	}
	return errs.Wrap(errs.CodeInternal, err, msg)
}
