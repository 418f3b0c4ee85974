package community

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

	"github.com/carelinkhq/carelink-backend/internal/adapter"
	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
)

// openTestDB connects to the database named by TEST_DATABASE_URL and
// migrates the tables these tests touch. Tests using it are skipped when
// the variable is unset. Each test writes under its own tenant id, so
// runs do not interfere with each other.
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Report{}, &Post{}, &Comment{}))
	return db
}

func testTenant() string {
	return "test-" + uuid.NewString()[:8]
}

func createTestUser(t *testing.T, db *gorm.DB, appID string) *models.User {
	t.Helper()
	user := &models.User{
		AppID:    appID,
		Email:    uuid.NewString()[:13] + "@example.com",
		Password: "hash",
		Nickname: "tester",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestService(db *gorm.DB) *Service {
	return NewService(db, services.NewContentFilter(), adapter.NewStorageAdapter(&config.Config{}))
}

func requireAppErrCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperr.As(err).Code)
}

func TestDeleteCommentCascadesThreeLevels(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	user := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, user.ID, "Visiting hours", "When can family drop by?", "")
	require.NoError(t, err)

	c1, err := svc.CreateComment(appID, post.ID, user.ID, nil, "Weekdays after 2pm")
	require.NoError(t, err)
	c2, err := svc.CreateComment(appID, post.ID, user.ID, &c1.ID, "Weekends too?")
	require.NoError(t, err)
	c3, err := svc.CreateComment(appID, post.ID, user.ID, &c2.ID, "Saturday mornings only")
	require.NoError(t, err)
	other, err := svc.CreateComment(appID, post.ID, user.ID, nil, "Call ahead first")
	require.NoError(t, err)

	// The grandchild carries the chain root, not its direct parent.
	assert.Equal(t, c1.ID, c3.RootID)

	require.NoError(t, svc.DeleteComment(appID, post.ID, c1.ID, user.ID))

	var gone []Comment
	require.NoError(t, db.Where("id IN ?", []uuid.UUID{c1.ID, c2.ID, c3.ID}).Find(&gone).Error)
	require.Len(t, gone, 3)
	for i := range gone {
		assert.Equal(t, models.StatusDeleted, gone[i].Status)
		require.NotNil(t, gone[i].DeletedAt)
		// The whole subtree is stamped with one timestamp.
		assert.True(t, gone[i].DeletedAt.Equal(*gone[0].DeletedAt))
	}

	var survivor Comment
	require.NoError(t, db.First(&survivor, "id = ?", other.ID).Error)
	assert.Equal(t, models.StatusActive, survivor.Status)
	assert.Nil(t, survivor.DeletedAt)
}

func TestDeletePostCascadesToComments(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	user := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, user.ID, "Meal plans", "Does anyone like the new menu?", "")
	require.NoError(t, err)
	c1, err := svc.CreateComment(appID, post.ID, user.ID, nil, "Soup is better now")
	require.NoError(t, err)
	c2, err := svc.CreateComment(appID, post.ID, user.ID, &c1.ID, "Agreed")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(appID, post.ID, user.ID))

	var stored Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, models.StatusDeleted, stored.Status)
	require.NotNil(t, stored.DeletedAt)

	var comments []Comment
	require.NoError(t, db.Where("id IN ?", []uuid.UUID{c1.ID, c2.ID}).Find(&comments).Error)
	require.Len(t, comments, 2)
	for i := range comments {
		assert.Equal(t, models.StatusDeleted, comments[i].Status)
	}

	// Deleted posts drop out of public reads.
	_, _, err = svc.GetPost(appID, post.ID)
	requireAppErrCode(t, err, http.StatusNotFound)
}

func TestUpdatePostNonAuthorForbidden(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	author := createTestUser(t, db, appID)
	stranger := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, author.ID, "Garden club", "Thursday planting session", "")
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.UpdatePost(appID, post.ID, stranger.ID, &newTitle, nil, nil)
	requireAppErrCode(t, err, http.StatusForbidden)

	var stored Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, "Garden club", stored.Title)
}

func TestSubmitDuplicateReportConflict(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	author := createTestUser(t, db, appID)
	reporter := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, author.ID, "Ad blitz", "Buy now", "")
	require.NoError(t, err)

	mod := services.NewModerationService(db)
	mod.RegisterTarget(models.ReportTypeCommunity, postTarget{})

	first, err := mod.Submit(appID, reporter.ID, models.ReportTypeCommunity, post.ID, models.CategorySpam, "advertising")
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, first.Status)

	// Second submission for the same (reporter, type, target) loses at
	// the unique constraint.
	_, err = mod.Submit(appID, reporter.ID, models.ReportTypeCommunity, post.ID, models.CategorySpam, "still advertising")
	requireAppErrCode(t, err, http.StatusConflict)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("app_id = ? AND reporter_id = ? AND target_id = ?", appID, reporter.ID, post.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveReportLifecycle(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	author := createTestUser(t, db, appID)
	reporter := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, author.ID, "Questionable", "Borderline content", "")
	require.NoError(t, err)

	mod := services.NewModerationService(db)
	mod.RegisterTarget(models.ReportTypeCommunity, postTarget{})

	report, err := mod.Submit(appID, reporter.ID, models.ReportTypeCommunity, post.ID, models.CategoryAbuse, "looks abusive")
	require.NoError(t, err)

	// Keeping the report open degrades the target but stamps nothing.
	require.NoError(t, mod.Resolve(appID, report.ID, models.ReportPending))

	var stored Post
	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, models.StatusReportPending, stored.Status)

	var storedReport models.Report
	require.NoError(t, db.First(&storedReport, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportPending, storedReport.Status)
	assert.Nil(t, storedReport.ResolvedAt)

	// Rejecting restores the target and closes the report.
	require.NoError(t, mod.Resolve(appID, report.ID, models.ReportRejected))

	require.NoError(t, db.First(&stored, "id = ?", post.ID).Error)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.Nil(t, stored.DeletedAt)

	require.NoError(t, db.First(&storedReport, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportRejected, storedReport.Status)
	require.NotNil(t, storedReport.ResolvedAt)

	// A closed report cannot be resolved again.
	err = mod.Resolve(appID, report.ID, models.ReportApproved)
	requireAppErrCode(t, err, http.StatusBadRequest)
}

func TestResolveApprovedDeletesTargetWithCascade(t *testing.T) {
	db := openTestDB(t)
	appID := testTenant()
	svc := newTestService(db)
	author := createTestUser(t, db, appID)
	reporter := createTestUser(t, db, appID)

	post, err := svc.CreatePost(appID, author.ID, "Dubious listing", "Send money here", "")
	require.NoError(t, err)
	comment, err := svc.CreateComment(appID, post.ID, author.ID, nil, "Totally legit")
	require.NoError(t, err)

	mod := services.NewModerationService(db)
	mod.RegisterTarget(models.ReportTypeCommunity, postTarget{})
	mod.RegisterTarget(models.ReportTypeComment, commentTarget{})

	report, err := mod.Submit(appID, reporter.ID, models.ReportTypeCommunity, post.ID, models.CategoryFalseInfo, "fraud")
	require.NoError(t, err)

	require.NoError(t, mod.Resolve(appID, report.ID, models.ReportApproved))

	var storedReport models.Report
	require.NoError(t, db.First(&storedReport, "id = ?", report.ID).Error)
	assert.Equal(t, models.ReportApproved, storedReport.Status)
	require.NotNil(t, storedReport.ResolvedAt)

	// Approval takes the post and its comments down together.
	var storedPost Post
	require.NoError(t, db.First(&storedPost, "id = ?", post.ID).Error)
	assert.Equal(t, models.StatusDeleted, storedPost.Status)
	require.NotNil(t, storedPost.DeletedAt)

	var storedComment Comment
	require.NoError(t, db.First(&storedComment, "id = ?", comment.ID).Error)
	assert.Equal(t, models.StatusDeleted, storedComment.Status)

	// A new report on a deleted target fails the existence check.
	_, err = mod.Submit(appID, reporter.ID, models.ReportTypeComment, comment.ID, models.CategorySpam, "spam")
	requireAppErrCode(t, err, http.StatusNotFound)
}
