package requests

import (
	"context"

	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for purchase requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAll(ctx context.Context) ([]models.Request, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Request, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Request, error)
	Create(ctx context.Context, req *models.Request) (*models.Request, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateMany(ctx context.Context, ids []uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
