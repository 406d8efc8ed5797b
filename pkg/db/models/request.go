package models

import (
	"encoding/json"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/crestviewems/supplyline-backend/pkg/types"
	"github.com/google/uuid"
)

// Request is an open purchase request. Either CatalogID references a catalog
// item or OtherItemName carries a free-text description for unlisted supplies.
// OverrideVendorID pins resolution to one vendor; the status-transition service
// clears it when the request is received, completed, or reopened.
type Request struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CatalogID        *uuid.UUID          `gorm:"column:catalog_id;type:uuid;index" json:"catalogId,omitempty"`
	OtherItemName    *string             `gorm:"column:other_item_name" json:"otherItemName,omitempty"`
	Qty              int                 `gorm:"column:qty;not null;default:1" json:"qty"`
	Status           enums.RequestStatus `gorm:"column:status;not null;default:'Open'" json:"status"`
	OverrideVendorID *uuid.UUID          `gorm:"column:override_vendor_id;type:uuid" json:"overrideVendorId,omitempty"`
	RequesterEmail   string              `gorm:"column:requester_email;not null" json:"requesterEmail"`
	Notes            *string             `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	ReceivedAt       *time.Time          `gorm:"column:received_at" json:"-"`
	LastOrdered      *time.Time          `gorm:"column:last_ordered" json:"-"`
}

// MarshalJSON emits the server-assigned timestamps in the collection store's
// {seconds, nanoseconds} read-back shape.
func (r Request) MarshalJSON() ([]byte, error) {
	type plain Request
	return json.Marshal(struct {
		plain
		CreatedAt   types.Timestamp  `json:"createdAt"`
		UpdatedAt   types.Timestamp  `json:"updatedAt"`
		ReceivedAt  *types.Timestamp `json:"receivedAt,omitempty"`
		LastOrdered *types.Timestamp `json:"lastOrdered,omitempty"`
	}{
		plain:       plain(r),
		CreatedAt:   types.TimestampFrom(r.CreatedAt),
		UpdatedAt:   types.TimestampFrom(r.UpdatedAt),
		ReceivedAt:  types.TimestampPtr(r.ReceivedAt),
		LastOrdered: types.TimestampPtr(r.LastOrdered),
	})
}
