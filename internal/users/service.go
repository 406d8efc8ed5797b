package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/auth"
	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	errs "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns sign-in and member administration. Accounts are provisioned
// lazily: the first successful sign-in from the allowed email domain creates
// the row with the default Staff role.
type Service struct {
	repo     Repository
	sessions SessionStore
	jwtCfg   config.JWTConfig
	authCfg  config.AuthConfig
	pwCfg    config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, sessions SessionStore, jwtCfg config.JWTConfig, authCfg config.AuthConfig, pwCfg config.PasswordConfig, logg *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		authCfg:  authCfg,
		pwCfg:    pwCfg,
		logg:     logg,
		now:      time.Now,
	}
}

// Login authenticates a member, provisioning the account on first sign-in.
// Non-domain emails are denied outright, before any credential handling.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !s.emailAllowed(email) {
		return nil, errs.New(errs.CodeForbidden, fmt.Sprintf("access is restricted to %s accounts", s.authCfg.AllowedEmailDomain))
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		ok, verr := security.VerifyPassword(input.Password, user.PasswordHash)
		if verr != nil {
			return nil, errs.Wrap(errs.CodeInternal, verr, "verifying password")
		}
		if !ok {
			return nil, errs.New(errs.CodeUnauthorized, "invalid credentials")
		}
		if !user.IsActive {
			return nil, errs.New(errs.CodeForbidden, "account is disabled")
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err = s.provision(ctx, email, input.Password)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errs.Wrap(errs.CodeInternal, err, "finding user")
	}

	now := s.now()
	if err := s.repo.Update(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "stamping last login")
	}
	user.LastLoginAt = &now

	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    jti,
	})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "minting access token")
	}

	if s.sessions != nil {
		if err := s.sessions.StoreSession(ctx, jti, s.authCfg.IdleTTL()); err != nil {
			return nil, errs.Wrap(errs.CodeDependency, err, "storing session")
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user signed in")
	}
	return &LoginResult{Token: token, User: *user}, nil
}

// Logout revokes the redis session; the JWT dies with it since every request
// touches the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if s.sessions == nil || sessionID == "" {
		return nil
	}
	if err := s.sessions.RevokeSession(ctx, sessionID); err != nil {
		return errs.Wrap(errs.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "listing users")
	}
	return rows, nil
}

// UpdateRole changes a member's role.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*models.User, error) {
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return nil, errs.New(errs.CodeValidation, err.Error())
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.notFoundOrInternal(err)
	}
	if err := s.repo.Update(ctx, id, map[string]any{"role": role}); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating role")
	}
	return s.repo.FindByID(ctx, id)
}

// SetActive enables or disables an account. Disabled accounts fail the next
// sign-in; existing sessions expire on the idle timeout.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, input SetActiveInput) (*models.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.notFoundOrInternal(err)
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": input.IsActive}); err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "updating user")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) provision(ctx context.Context, email string, password string) (*models.User, error) {
	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "hashing password")
	}
	user, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleStaff,
		IsActive:     true,
	})
	if err != nil {
		return nil, errs.Wrap(errs.CodeInternal, err, "provisioning user")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "provisioned user on first sign-in")
	}
	return user, nil
}

func (s *Service) emailAllowed(email string) bool {
	domain := strings.ToLower(strings.TrimSpace(s.authCfg.AllowedEmailDomain))
	if domain == "" {
		return false
	}
	return strings.HasSuffix(email, "@"+domain)
}

func (s *Service) notFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.CodeNotFound, "user not found")
	}
	return errs.Wrap(errs.CodeInternal, err, "finding user")
}
