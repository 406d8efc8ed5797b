package inventory

import (
	"time"

	"github.com/google/uuid"
)

// CreateItemInput stocks one tracked inventory row. Either CatalogID or the
// free-text ItemName identifies the supply.
type CreateItemInput struct {
	CatalogID     *uuid.UUID `json:"catalogId"`
	ItemName      *string    `json:"itemName"`
	UnitID        *uuid.UUID `json:"unitId"`
	CompartmentID *uuid.UUID `json:"compartmentId"`
	Qty           int        `json:"qty" validate:"gte=1"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	Status        string     `json:"status"`
	CrewStatus    *string    `json:"crewStatus"`
}

// UpdateItemInput carries a partial inventory update.
type UpdateItemInput struct {
	UnitID        *uuid.UUID `json:"unitId"`
	CompartmentID *uuid.UUID `json:"compartmentId"`
	Qty           *int       `json:"qty" validate:"omitempty,gte=0"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	Status        *string    `json:"status"`
	CrewStatus    *string    `json:"crewStatus"`
}
