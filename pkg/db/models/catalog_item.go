package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CatalogItem is one supply in the station catalog. Items are never hard
// deleted while pricing or requests reference them; IsActive flips instead.
type CatalogItem struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemName          string         `gorm:"column:item_name;not null" json:"itemName"`
	ItemNameAlt       pq.StringArray `gorm:"column:item_name_alt;type:text[]" json:"itemNameAlt"`
	CategoryID        *uuid.UUID     `gorm:"column:category_id;type:uuid" json:"categoryId,omitempty"`
	UnitID            *uuid.UUID     `gorm:"column:unit_id;type:uuid" json:"unitId,omitempty"`
	ParLevel          int            `gorm:"column:par_level;not null;default:0" json:"parLevel"`
	PreferredVendorID *uuid.UUID     `gorm:"column:preferred_vendor_id;type:uuid" json:"preferredVendorId,omitempty"`
	IsActive          bool           `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
