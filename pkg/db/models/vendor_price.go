package models

import (
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorPrice is one vendor's quote for one catalog item. The pair is not
// unique: re-quoted rows coexist and resolution breaks ties by insertion order.
type VendorPrice struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CatalogID    uuid.UUID               `gorm:"column:catalog_id;type:uuid;not null;index" json:"catalogId"`
	VendorID     uuid.UUID               `gorm:"column:vendor_id;type:uuid;not null;index" json:"vendorId"`
	UnitPrice    decimal.Decimal         `gorm:"column:unit_price;type:numeric(12,2);not null;default:0" json:"unitPrice"`
	VendorItemNo *string                 `gorm:"column:vendor_item_no" json:"vendorItemNo,omitempty"`
	VendorStatus enums.VendorStockStatus `gorm:"column:vendor_status;not null;default:''" json:"vendorStatus"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
