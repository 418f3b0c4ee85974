package services

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))
	return db
}

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	}
	return NewAuthService(db, cfg)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	appID := "test-" + uuid.NewString()[:8]
	req := &dto.RegisterRequest{
		Email:    uuid.NewString()[:13] + "@example.com",
		Password: "correct-horse",
		Nickname: "first",
	}

	resp, err := svc.Register(appID, req)
	require.NoError(t, err)
	assert.Equal(t, req.Email, resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)

	// Same tenant, same email: the unique index rejects the second signup.
	req.Nickname = "second"
	_, err = svc.Register(appID, req)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.As(err).Code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).
		Where("app_id = ? AND email = ?", appID, req.Email).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterSameEmailDifferentTenants(t *testing.T) {
	db := openTestDB(t)
	svc := newTestAuthService(db)

	email := uuid.NewString()[:13] + "@example.com"
	req := &dto.RegisterRequest{Email: email, Password: "correct-horse", Nickname: "member"}

	_, err := svc.Register("test-"+uuid.NewString()[:8], req)
	require.NoError(t, err)

	// The uniqueness scope is per tenant, not global.
	_, err = svc.Register("test-"+uuid.NewString()[:8], req)
	require.NoError(t, err)
}
