package facility

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// reviewTarget plugs reviews into the moderation dispatch map. Reviews
// have no descendants, so DELETED is a single-row transition.
type reviewTarget struct{}

func (reviewTarget) Find(tx *gorm.DB, appID string, id uuid.UUID) error {
	var review Review
	err := tx.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("review not found")
	}
	return err
}

func (reviewTarget) SetStatus(tx *gorm.DB, appID string, id uuid.UUID, status models.ContentStatus, deletedAt *time.Time) error {
	switch status {
	case models.StatusDeleted:
		return softDeleteReview(tx, appID, id, deletedAt)
	case models.StatusActive:
		return tx.Model(&Review{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status <> ?", id, models.StatusDeleted).
			Updates(map[string]interface{}{"status": models.StatusActive, "deleted_at": nil}).Error
	case models.StatusReportPending:
		return tx.Model(&Review{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status = ?", id, models.StatusActive).
			Update("status", models.StatusReportPending).Error
	}
	return apperr.Internal("unknown content status")
}

func (reviewTarget) Summary(db *gorm.DB, appID string, id uuid.UUID) map[string]interface{} {
	var review Review
	if err := db.Scopes(tenant.ForTenant(appID)).First(&review, "id = ?", id).Error; err != nil {
		return nil
	}
	return map[string]interface{}{
		"facility_id": review.FacilityID,
		"author_id":   review.AuthorID,
		"rating":      review.Rating,
		"content":     review.Content,
		"status":      review.Status,
		"created_at":  review.CreatedAt,
	}
}
