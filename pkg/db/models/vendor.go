package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vendor is a supplier the station can order from. ServiceFee is a percent
// surcharge applied on top of every unit price quoted by the vendor.
type Vendor struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	ServiceFee   decimal.Decimal `gorm:"column:service_fee;type:numeric(6,3);not null;default:0" json:"serviceFee"`
	ContactEmail *string         `gorm:"column:contact_email" json:"contactEmail,omitempty"`
	ContactPhone *string         `gorm:"column:contact_phone" json:"contactPhone,omitempty"`
	WebURL       *string         `gorm:"column:web_url" json:"webUrl,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
