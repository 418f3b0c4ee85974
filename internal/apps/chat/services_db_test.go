package chat

import (
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/apps/facility"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &facility.Facility{}, &ChatRoom{}, &ChatMessage{}))
	return db
}

func testTenant() string {
	return "test-" + uuid.NewString()[:8]
}

func createTestFacility(t *testing.T, db *gorm.DB, appID string) *facility.Facility {
	t.Helper()
	f := &facility.Facility{
		AppID:     appID,
		Name:      "Maple Grove Care Home",
		Address:   "12 Maple St",
		Latitude:  37.5,
		Longitude: 127.0,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestOpenRoomUnknownFacilityNotFound(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := NewService(db, services.NewContentFilter())

	_, err := svc.OpenRoom(appID, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).Code)
}

func TestOpenRoomFacilityInOtherTenantNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db, services.NewContentFilter())

	owner := testTenant()
	f := createTestFacility(t, db, owner)

	// The facility exists, but not under the caller's tenant.
	_, err := svc.OpenRoom(testTenant(), f.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).Code)
}

func TestOpenRoomCreatesThenReuses(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := NewService(db, services.NewContentFilter())

	f := createTestFacility(t, db, appID)
	memberID := uuid.New()

	room, err := svc.OpenRoom(appID, f.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, room.FacilityID)
	assert.Equal(t, memberID, room.MemberID)

	again, err := svc.OpenRoom(appID, f.ID, memberID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&ChatRoom{}).
		Where("app_id = ? AND facility_id = ? AND member_id = ?", appID, f.ID, memberID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSendMessageNonParticipantForbidden(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := NewService(db, services.NewContentFilter())

	f := createTestFacility(t, db, appID)
	memberID := uuid.New()

	room, err := svc.OpenRoom(appID, f.ID, memberID)
	require.NoError(t, err)

	_, err = svc.SendMessage(appID, room.ID, uuid.New(), models.RoleUser, "hello")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).Code)

	// Staff can answer any room in their tenant.
	msg, err := svc.SendMessage(appID, room.ID, uuid.New(), models.RoleStaff, "how can we help?")
	require.NoError(t, err)
	assert.Equal(t, room.ID, msg.RoomID)
}
