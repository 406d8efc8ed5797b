package users

import (
	"context"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository defines persistence for station members.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// SessionStore is the slice of the redis client the auth flow needs.
type SessionStore interface {
	StoreSession(ctx context.Context, sessionID string, ttl time.Duration) error
	RevokeSession(ctx context.Context, sessionID string) error
}
