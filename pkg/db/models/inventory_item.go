package models

import (
	"encoding/json"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/crestviewems/supplyline-backend/pkg/types"
	"github.com/google/uuid"
)

// InventoryItem is one expiring unit-stocked item tracked per rig compartment.
// Its lifecycle is independent of purchase requests and vendor resolution.
type InventoryItem struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CatalogID     *uuid.UUID            `gorm:"column:catalog_id;type:uuid;index" json:"catalogId,omitempty"`
	ItemName      *string               `gorm:"column:item_name" json:"itemName,omitempty"`
	UnitID        *uuid.UUID            `gorm:"column:unit_id;type:uuid" json:"unitId,omitempty"`
	CompartmentID *uuid.UUID            `gorm:"column:compartment_id;type:uuid" json:"compartmentId,omitempty"`
	Qty           int                   `gorm:"column:qty;not null;default:1" json:"qty"`
	ExpiryDate    *time.Time            `gorm:"column:expiry_date" json:"-"`
	Status        enums.InventoryStatus `gorm:"column:status;not null;default:''" json:"status"`
	CrewStatus    *string               `gorm:"column:crew_status" json:"crewStatus,omitempty"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// MarshalJSON emits the expiry date and the server-assigned timestamps in the
// collection store's {seconds, nanoseconds} read-back shape.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type plain InventoryItem
	return json.Marshal(struct {
		plain
		ExpiryDate *types.Timestamp `json:"expiryDate,omitempty"`
		CreatedAt  types.Timestamp  `json:"createdAt"`
		UpdatedAt  types.Timestamp  `json:"updatedAt"`
	}{
		plain:      plain(i),
		ExpiryDate: types.TimestampPtr(i.ExpiryDate),
		CreatedAt:  types.TimestampFrom(i.CreatedAt),
		UpdatedAt:  types.TimestampFrom(i.UpdatedAt),
	})
}
