package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	errs "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns the expiry-tracked rig inventory. Its lifecycle is independent
// of purchase requests and never feeds vendor resolution.
type Service struct {
	repo     Repository
	notifier collections.Notifier
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier collections.Notifier, logg *logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logg: logg, now: time.Now}
}

func (s *Service) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing inventory")
	}
	return rows, nil
}

// ListExpiring returns rows whose expiry date falls inside the trailing
// window, soonest first.
func (s *Service) ListExpiring(ctx context.Context, within time.Duration) ([]models.InventoryItem, error) {
	if within <= 0 {
		return nil, errs.New(errs.CodeValidation, "window must be positive")
	}
	rows, err := s.repo.ListExpiringBefore(ctx, s.now().Add(within))
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing expiring inventory")
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, input CreateItemInput) (*models.InventoryItem, error) {
	if input.CatalogID == nil && (input.ItemName == nil || *input.ItemName == "") {
		return nil, errs.New(errs.CodeValidation, "catalogId or itemName is required")
	}
	if input.Qty < 1 {
		return nil, errs.New(errs.CodeValidation, "qty must be at least 1")
	}
	status, err := enums.ParseInventoryStatus(input.Status)
	if err != nil {
		return nil, errs.New(errs.CodeValidation, err.Error())
	}

	row := &models.InventoryItem{
		CatalogID:     input.CatalogID,
		ItemName:      input.ItemName,
		UnitID:        input.UnitID,
		CompartmentID: input.CompartmentID,
		Qty:           input.Qty,
		ExpiryDate:    input.ExpiryDate,
		Status:        status,
		CrewStatus:    input.CrewStatus,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating inventory item")
	}
	s.notify(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.InventoryItem, error) {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return nil, s.notFoundOrInternal(err)
	}

	updates := map[string]any{}
	if input.UnitID != nil {
		updates["unit_id"] = *input.UnitID
	}
	if input.CompartmentID != nil {
		updates["compartment_id"] = *input.CompartmentID
	}
	if input.Qty != nil {
		updates["qty"] = *input.Qty
	}
	if input.ExpiryDate != nil {
		updates["expiry_date"] = *input.ExpiryDate
	}
	if input.Status != nil {
		status, err := enums.ParseInventoryStatus(*input.Status)
		if err != nil {
			return nil, errs.New(errs.CodeValidation, err.Error())
		}
		updates["status"] = status
	}
	if input.CrewStatus != nil {
		updates["crew_status"] = *input.CrewStatus
	}
	if len(updates) == 0 {
		return nil, errs.New(errs.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating inventory item")
	}
	s.notify(ctx)

	row, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "reloading inventory item")
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Find(ctx, id); err != nil {
		return s.notFoundOrInternal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting inventory item")
	}
	s.notify(ctx)
	return nil
}

func (s *Service) notify(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyChanged(ctx, collections.InventoryItems); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithCollection(ctx, collections.InventoryItems), "publishing change signal failed", err)
	}
}

func (s *Service) notFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.CodeNotFound, "inventory item not found")
	}
	return errs.Wrap(errs.CodeInternal, err, "finding inventory item")
}
