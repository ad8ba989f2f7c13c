package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/internal/users"
	pkgauth "github.com/veermani/kitchen-backend/pkg/auth"
	"github.com/veermani/kitchen-backend/pkg/auth/session"
	"github.com/veermani/kitchen-backend/pkg/config"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/security"
)

type stubSessions struct {
	generated map[string]string
	revoked   []string
	rotateErr error
}

func newStubSessions() *stubSessions {
	return &stubSessions{generated: map[string]string{}}
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := session.NewAccessID()
	token := "refresh-" + newID
	s.generated[newID] = token
	return newID, token, nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-please-rotate",
		Issuer:                 "veermani-kitchen",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff',
  is_active BOOLEAN NOT NULL DEFAULT true,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Counter Staff",
		Role:         enums.UserRoleStaff,
		IsActive:     active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newAuthService(t *testing.T, db *gorm.DB, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       users.NewRepository(db),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestLoginSuccess(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := newStubSessions()
	svc := newAuthService(t, db, sessions)

	seedUser(t, db, "staff@veermani.in", "laddu-counter-1", true)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Staff@Veermani.in",
		Password: "laddu-counter-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "staff@veermani.in", resp.User.Email)
	require.NotNil(t, resp.User.LastLoginAt)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleStaff, claims.Role)
	_, ok := sessions.generated[claims.ID]
	assert.True(t, ok)

	var persisted models.User
	require.NoError(t, db.First(&persisted, "email = ?", "staff@veermani.in").Error)
	assert.NotNil(t, persisted.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, newStubSessions())

	seedUser(t, db, "staff@veermani.in", "laddu-counter-1", true)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "staff@veermani.in",
		Password: "wrong",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	assert.Equal(t, invalidCredentialsMessage, appErr.Message())
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, newStubSessions())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@veermani.in",
		Password: "whatever",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, invalidCredentialsMessage, appErr.Message())
}

func TestLoginInactiveUserRejected(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(t, db, newStubSessions())

	seedUser(t, db, "former@veermani.in", "laddu-counter-1", false)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "former@veermani.in",
		Password: "laddu-counter-1",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := newStubSessions()
	svc := newAuthService(t, db, sessions)

	seedUser(t, db, "staff@veermani.in", "laddu-counter-1", true)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "staff@veermani.in",
		Password: "laddu-counter-1",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old pair is burned after rotation.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	db := setupAuthTestDB(t)
	sessions := newStubSessions()
	svc := newAuthService(t, db, sessions)

	seedUser(t, db, "staff@veermani.in", "laddu-counter-1", true)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "staff@veermani.in",
		Password: "laddu-counter-1",
	})
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(context.Background(), claims.ID))
	assert.Contains(t, sessions.revoked, claims.ID)
}
