package inventory

import (
	"context"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository defines persistence for rig inventory rows.
type Repository interface {
	ListAll(ctx context.Context) ([]models.InventoryItem, error)
	Find(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	Create(ctx context.Context, row *models.InventoryItem) (*models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]models.InventoryItem, error)
}
