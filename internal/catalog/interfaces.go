package catalog

import (
	"context"

	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository defines persistence for the static collections: catalog items,
// vendors, vendor prices and the flat reference tables.
type Repository interface {
	ListCatalogItems(ctx context.Context) ([]models.CatalogItem, error)
	FindCatalogItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
	CreateCatalogItem(ctx context.Context, item *models.CatalogItem) (*models.CatalogItem, error)
	UpdateCatalogItem(ctx context.Context, id uuid.UUID, updates map[string]any) error

	ListVendors(ctx context.Context) ([]models.Vendor, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteVendor(ctx context.Context, id uuid.UUID) error

	ListVendorPrices(ctx context.Context) ([]models.VendorPrice, error)
	FindVendorPrice(ctx context.Context, id uuid.UUID) (*models.VendorPrice, error)
	CreateVendorPrice(ctx context.Context, price *models.VendorPrice) (*models.VendorPrice, error)
	UpdateVendorPrice(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteVendorPrice(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, row *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListUnits(ctx context.Context) ([]models.Unit, error)
	CreateUnit(ctx context.Context, row *models.Unit) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id uuid.UUID) error

	ListCompartments(ctx context.Context) ([]models.Compartment, error)
	CreateCompartment(ctx context.Context, row *models.Compartment) (*models.Compartment, error)
	DeleteCompartment(ctx context.Context, id uuid.UUID) error
}
