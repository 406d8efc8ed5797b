package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCatalogItemInput carries the fields for a new catalog entry.
type CreateCatalogItemInput struct {
	ItemName          string      `json:"itemName" validate:"required"`
	ItemNameAlt       []string    `json:"itemNameAlt"`
	CategoryID        *uuid.UUID  `json:"categoryId"`
	UnitID            *uuid.UUID  `json:"unitId"`
	ParLevel          int         `json:"parLevel" validate:"gte=0"`
	PreferredVendorID *uuid.UUID  `json:"preferredVendorId"`
}

// UpdateCatalogItemInput carries a partial update. Nil fields are untouched;
// a uuid.Nil reference clears the link.
type UpdateCatalogItemInput struct {
	ItemName          *string     `json:"itemName" validate:"omitempty,min=1"`
	ItemNameAlt       *[]string   `json:"itemNameAlt"`
	CategoryID        *uuid.UUID  `json:"categoryId"`
	UnitID            *uuid.UUID  `json:"unitId"`
	ParLevel          *int        `json:"parLevel" validate:"omitempty,gte=0"`
	PreferredVendorID *uuid.UUID  `json:"preferredVendorId"`
	IsActive          *bool       `json:"isActive"`
}

// CreateVendorInput carries the fields for a new vendor.
type CreateVendorInput struct {
	Name         string          `json:"name" validate:"required"`
	ServiceFee   decimal.Decimal `json:"serviceFee"`
	ContactEmail *string         `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string         `json:"contactPhone"`
	WebURL       *string         `json:"webUrl" validate:"omitempty,url"`
}

// UpdateVendorInput carries a partial vendor update.
type UpdateVendorInput struct {
	Name         *string          `json:"name" validate:"omitempty,min=1"`
	ServiceFee   *decimal.Decimal `json:"serviceFee"`
	ContactEmail *string          `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string          `json:"contactPhone"`
	WebURL       *string          `json:"webUrl" validate:"omitempty,url"`
}

// CreateVendorPriceInput quotes one vendor's price for one catalog item.
type CreateVendorPriceInput struct {
	CatalogID    uuid.UUID       `json:"catalogId" validate:"required"`
	VendorID     uuid.UUID       `json:"vendorId" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	VendorItemNo *string         `json:"vendorItemNo"`
	VendorStatus string          `json:"vendorStatus"`
}

// UpdateVendorPriceInput carries a partial price update.
type UpdateVendorPriceInput struct {
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	VendorItemNo *string          `json:"vendorItemNo"`
	VendorStatus *string          `json:"vendorStatus"`
}

// CreateReferenceInput names a new category, unit or compartment.
type CreateReferenceInput struct {
	Name string `json:"name" validate:"required"`
}
