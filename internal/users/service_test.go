package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/crestviewems/supplyline-backend/pkg/config"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/crestviewems/supplyline-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsersRepo struct {
	byEmail map[string]*models.User
	updates map[string]any
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUsersRepo) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.byEmail[strings.ToLower(user.Email)] = user
	return user, nil
}

func (s *stubUsersRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	for _, u := range s.byEmail {
		if u.ID != id {
			continue
		}
		if role, ok := updates["role"].(enums.UserRole); ok {
			u.Role = role
		}
		if active, ok := updates["is_active"].(bool); ok {
			u.IsActive = active
		}
		if at, ok := updates["last_login_at"].(time.Time); ok {
			u.LastLoginAt = &at
		}
	}
	return nil
}

type stubSessions struct {
	stored  []string
	revoked []string
	ttl     time.Duration
}

func (s *stubSessions) StoreSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	s.stored = append(s.stored, sessionID)
	s.ttl = ttl
	return nil
}

func (s *stubSessions) RevokeSession(ctx context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func testConfigs() (config.JWTConfig, config.AuthConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret-test-secret-12345678", Issuer: "supplyline-test", ExpirationMinutes: 60}
	authCfg := config.AuthConfig{AllowedEmailDomain: "crestviewems.org", IdleTimeout: 30 * time.Minute}
	pwCfg := config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
	return jwtCfg, authCfg, pwCfg
}

func newTestUsersService(repo Repository, sessions SessionStore) *Service {
	jwtCfg, authCfg, pwCfg := testConfigs()
	return NewService(repo, sessions, jwtCfg, authCfg, pwCfg, nil)
}

func TestLoginRejectsForeignDomain(t *testing.T) {
	svc := newTestUsersService(newStubUsersRepo(), &stubSessions{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "mallory@gmail.com", Password: "hunter2hunter2"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestLoginProvisionsStaffOnFirstSignIn(t *testing.T) {
	repo := newStubUsersRepo()
	sessions := &stubSessions{}
	svc := newTestUsersService(repo, sessions)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Medic@CrestviewEMS.org", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "medic@crestviewems.org", result.User.Email)
	assert.Equal(t, enums.UserRoleStaff, result.User.Role)
	require.NotNil(t, result.User.LastLoginAt)
	require.Len(t, sessions.stored, 1)
	assert.Equal(t, 30*time.Minute, sessions.ttl)
}

func TestLoginVerifiesPassword(t *testing.T) {
	repo := newStubUsersRepo()
	_, _, pwCfg := testConfigs()
	hash, err := security.HashPassword("correct-horse-battery", pwCfg)
	require.NoError(t, err)
	repo.byEmail["medic@crestviewems.org"] = &models.User{
		ID:           uuid.New(),
		Email:        "medic@crestviewems.org",
		PasswordHash: hash,
		Role:         enums.UserRoleStaff,
		IsActive:     true,
	}
	svc := newTestUsersService(repo, &stubSessions{})

	_, err = svc.Login(context.Background(), LoginInput{Email: "medic@crestviewems.org", Password: "wrong-password-1"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	result, err := svc.Login(context.Background(), LoginInput{Email: "medic@crestviewems.org", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	repo := newStubUsersRepo()
	_, _, pwCfg := testConfigs()
	hash, err := security.HashPassword("correct-horse-battery", pwCfg)
	require.NoError(t, err)
	repo.byEmail["medic@crestviewems.org"] = &models.User{
		ID:           uuid.New(),
		Email:        "medic@crestviewems.org",
		PasswordHash: hash,
		Role:         enums.UserRoleStaff,
		IsActive:     false,
	}
	svc := newTestUsersService(repo, &stubSessions{})

	_, err = svc.Login(context.Background(), LoginInput{Email: "medic@crestviewems.org", Password: "correct-horse-battery"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestUsersService(newStubUsersRepo(), sessions)

	require.NoError(t, svc.Logout(context.Background(), "session-123"))
	assert.Equal(t, []string{"session-123"}, sessions.revoked)

	// Missing session id is a no-op, not an error.
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestUpdateRoleParsesAndApplies(t *testing.T) {
	repo := newStubUsersRepo()
	user := &models.User{ID: uuid.New(), Email: "medic@crestviewems.org", Role: enums.UserRoleStaff, IsActive: true}
	repo.byEmail[user.Email] = user
	svc := newTestUsersService(repo, &stubSessions{})

	updated, err := svc.UpdateRole(context.Background(), user.ID, UpdateRoleInput{Role: "Admin"})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, updated.Role)

	_, err = svc.UpdateRole(context.Background(), user.ID, UpdateRoleInput{Role: "Superuser"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetActiveUnknownUserIsNotFound(t *testing.T) {
	svc := newTestUsersService(newStubUsersRepo(), &stubSessions{})

	_, err := svc.SetActive(context.Background(), uuid.New(), SetActiveInput{IsActive: false})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
