package catalog

import (
	"context"
	"errors"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	errs "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service owns writes to the static collections. Every successful write
// publishes a change signal so live mirrors re-read their snapshot.
type Service struct {
	repo     Repository
	notifier collections.Notifier
	logg     *logger.Logger
}

func NewService(repo Repository, notifier collections.Notifier, logg *logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logg: logg}
}

func (s *Service) ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := s.repo.ListCatalogItems(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing catalog items")
	}
	return items, nil
}

func (s *Service) CreateCatalogItem(ctx context.Context, input CreateCatalogItemInput) (*models.CatalogItem, error) {
	item := &models.CatalogItem{
		ItemName:          input.ItemName,
		ItemNameAlt:       pq.StringArray(input.ItemNameAlt),
		CategoryID:        input.CategoryID,
		UnitID:            input.UnitID,
		ParLevel:          input.ParLevel,
		PreferredVendorID: input.PreferredVendorID,
		IsActive:          true,
	}
	created, err := s.repo.CreateCatalogItem(ctx, item)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating catalog item")
	}
	s.notify(ctx, collections.CatalogItems)
	return created, nil
}

func (s *Service) UpdateCatalogItem(ctx context.Context, id uuid.UUID, input UpdateCatalogItemInput) (*models.CatalogItem, error) {
	if _, err := s.repo.FindCatalogItem(ctx, id); err != nil {
		return nil, notFoundOrInternal(err, "catalog item not found", "finding catalog item")
	}

	updates := map[string]any{}
	if input.ItemName != nil {
		updates["item_name"] = *input.ItemName
	}
	if input.ItemNameAlt != nil {
		updates["item_name_alt"] = pq.StringArray(*input.ItemNameAlt)
	}
	if input.CategoryID != nil {
		updates["category_id"] = nullableRef(*input.CategoryID)
	}
	if input.UnitID != nil {
		updates["unit_id"] = nullableRef(*input.UnitID)
	}
	if input.ParLevel != nil {
		updates["par_level"] = *input.ParLevel
	}
	if input.PreferredVendorID != nil {
		updates["preferred_vendor_id"] = nullableRef(*input.PreferredVendorID)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, errs.New(errs.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateCatalogItem(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating catalog item")
	}
	s.notify(ctx, collections.CatalogItems)

	item, err := s.repo.FindCatalogItem(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "reloading catalog item")
	}
	return item, nil
}

// SetCatalogItemActive flips the soft-delete flag. Items stay in the table so
// existing prices and requests keep resolving.
func (s *Service) SetCatalogItemActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.repo.FindCatalogItem(ctx, id); err != nil {
		return notFoundOrInternal(err, "catalog item not found", "finding catalog item")
	}
	if err := s.repo.UpdateCatalogItem(ctx, id, map[string]any{"is_active": active}); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "updating catalog item")
	}
	s.notify(ctx, collections.CatalogItems)
	return nil
}

func (s *Service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing vendors")
	}
	return vendors, nil
}

func (s *Service) CreateVendor(ctx context.Context, input CreateVendorInput) (*models.Vendor, error) {
	if input.ServiceFee.IsNegative() {
		return nil, errs.New(errs.CodeValidation, "serviceFee must not be negative")
	}
	vendor := &models.Vendor{
		Name:         input.Name,
		ServiceFee:   input.ServiceFee,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		WebURL:       input.WebURL,
	}
	created, err := s.repo.CreateVendor(ctx, vendor)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating vendor")
	}
	s.notify(ctx, collections.Vendors)
	return created, nil
}

func (s *Service) UpdateVendor(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*models.Vendor, error) {
	if _, err := s.repo.FindVendor(ctx, id); err != nil {
		return nil, notFoundOrInternal(err, "vendor not found", "finding vendor")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.ServiceFee != nil {
		if input.ServiceFee.IsNegative() {
			return nil, errs.New(errs.CodeValidation, "serviceFee must not be negative")
		}
		updates["service_fee"] = *input.ServiceFee
	}
	if input.ContactEmail != nil {
		updates["contact_email"] = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = *input.ContactPhone
	}
	if input.WebURL != nil {
		updates["web_url"] = *input.WebURL
	}
	if len(updates) == 0 {
		return nil, errs.New(errs.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateVendor(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating vendor")
	}
	s.notify(ctx, collections.Vendors)

	vendor, err := s.repo.FindVendor(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "reloading vendor")
	}
	return vendor, nil
}

func (s *Service) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindVendor(ctx, id); err != nil {
		return notFoundOrInternal(err, "vendor not found", "finding vendor")
	}
	if err := s.repo.DeleteVendor(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting vendor")
	}
	s.notify(ctx, collections.Vendors)
	return nil
}

func (s *Service) ListVendorPrices(ctx context.Context) ([]models.VendorPrice, error) {
	prices, err := s.repo.ListVendorPrices(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing vendor prices")
	}
	return prices, nil
}

func (s *Service) CreateVendorPrice(ctx context.Context, input CreateVendorPriceInput) (*models.VendorPrice, error) {
	if input.UnitPrice.IsNegative() {
		return nil, errs.New(errs.CodeValidation, "unitPrice must not be negative")
	}
	status, err := enums.ParseVendorStockStatus(input.VendorStatus)
	if err != nil {
		return nil, errs.New(errs.CodeValidation, err.Error())
	}
	if _, err := s.repo.FindCatalogItem(ctx, input.CatalogID); err != nil {
		return nil, notFoundOrInternal(err, "catalog item not found", "finding catalog item")
	}
	if _, err := s.repo.FindVendor(ctx, input.VendorID); err != nil {
		return nil, notFoundOrInternal(err, "vendor not found", "finding vendor")
	}

	price := &models.VendorPrice{
		CatalogID:    input.CatalogID,
		VendorID:     input.VendorID,
		UnitPrice:    input.UnitPrice,
		VendorItemNo: input.VendorItemNo,
		VendorStatus: status,
	}
	created, err := s.repo.CreateVendorPrice(ctx, price)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating vendor price")
	}
	s.notify(ctx, collections.VendorPrices)
	return created, nil
}

func (s *Service) UpdateVendorPrice(ctx context.Context, id uuid.UUID, input UpdateVendorPriceInput) (*models.VendorPrice, error) {
	if _, err := s.repo.FindVendorPrice(ctx, id); err != nil {
		return nil, notFoundOrInternal(err, "vendor price not found", "finding vendor price")
	}

	updates := map[string]any{}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, errs.New(errs.CodeValidation, "unitPrice must not be negative")
		}
		updates["unit_price"] = *input.UnitPrice
	}
	if input.VendorItemNo != nil {
		updates["vendor_item_no"] = *input.VendorItemNo
	}
	if input.VendorStatus != nil {
		status, err := enums.ParseVendorStockStatus(*input.VendorStatus)
		if err != nil {
			return nil, errs.New(errs.CodeValidation, err.Error())
		}
		updates["vendor_status"] = status
	}
	if len(updates) == 0 {
		return nil, errs.New(errs.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateVendorPrice(ctx, id, updates); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating vendor price")
	}
	s.notify(ctx, collections.VendorPrices)

	price, err := s.repo.FindVendorPrice(ctx, id)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "reloading vendor price")
	}
	return price, nil
}

func (s *Service) DeleteVendorPrice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindVendorPrice(ctx, id); err != nil {
		return notFoundOrInternal(err, "vendor price not found", "finding vendor price")
	}
	if err := s.repo.DeleteVendorPrice(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting vendor price")
	}
	s.notify(ctx, collections.VendorPrices)
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing categories")
	}
	return rows, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateReferenceInput) (*models.Category, error) {
	row, err := s.repo.CreateCategory(ctx, &models.Category{Name: input.Name})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating category")
	}
	s.notify(ctx, collections.Categories)
	return row, nil
}

// DeleteCategory removes the reference row without touching catalog items
// that point at it; those degrade to the missing-ref display name.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting category")
	}
	s.notify(ctx, collections.Categories)
	return nil
}

func (s *Service) ListUnits(ctx context.Context) ([]models.Unit, error) {
	rows, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing units")
	}
	return rows, nil
}

func (s *Service) CreateUnit(ctx context.Context, input CreateReferenceInput) (*models.Unit, error) {
	row, err := s.repo.CreateUnit(ctx, &models.Unit{Name: input.Name})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating unit")
	}
	s.notify(ctx, collections.Units)
	return row, nil
}

func (s *Service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting unit")
	}
	s.notify(ctx, collections.Units)
	return nil
}

func (s *Service) ListCompartments(ctx context.Context) ([]models.Compartment, error) {
	rows, err := s.repo.ListCompartments(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing compartments")
	}
	return rows, nil
}

func (s *Service) CreateCompartment(ctx context.Context, input CreateReferenceInput) (*models.Compartment, error) {
	row, err := s.repo.CreateCompartment(ctx, &models.Compartment{Name: input.Name})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "creating compartment")
	}
	s.notify(ctx, collections.Compartments)
	return row, nil
}

func (s *Service) DeleteCompartment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCompartment(ctx, id); err != nil {
		return errs.Wrap(errs.CodeInternal, err, "deleting compartment")
	}
	s.notify(ctx, collections.Compartments)
	return nil
}

// notify publishes the change signal. The write already landed, so a failed
// publish is logged and swallowed; mirrors catch up on the next signal.
func (s *Service) notify(ctx context.Context, collection string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyChanged(ctx, collection); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithCollection(ctx, collection), "publishing change signal failed", err)
	}
}

func nullableRef(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func notFoundOrInternal(err error, notFoundMsg string, internalMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.CodeNotFound, notFoundMsg)
	}
	return errs.Wrap(errs.CodeInternal, err, internalMsg)
}
