package models

import (
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/enums"
	"github.com/google/uuid"
)

// User is a station member. Rows are created lazily on first successful login
// with the default Staff role.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;not null;default:'Staff'" json:"role"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"-"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
