package users

import (
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
)

// LoginInput carries the credentials presented at sign-in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResult is the issued token plus the signed-in profile.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// UpdateRoleInput changes a member's role.
type UpdateRoleInput struct {
	Role string `json:"role" validate:"required"`
}

// SetActiveInput enables or disables an account.
type SetActiveInput struct {
	IsActive bool `json:"isActive"`
}
