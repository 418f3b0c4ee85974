package community

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// postTarget and commentTarget plug the community tables into the
// moderation dispatch map. Transitions:
//   DELETED        — terminal, cascades to descendants, stamps deleted_at
//   ACTIVE         — restore, only for rows not already DELETED
//   REPORT_PENDING — degrade, only for currently ACTIVE rows

type postTarget struct{}

func (postTarget) Find(tx *gorm.DB, appID string, id uuid.UUID) error {
	var post Post
	err := tx.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("post not found")
	}
	return err
}

func (postTarget) SetStatus(tx *gorm.DB, appID string, id uuid.UUID, status models.ContentStatus, deletedAt *time.Time) error {
	switch status {
	case models.StatusDeleted:
		return softDeletePostCascade(tx, appID, id, deletedAt)
	case models.StatusActive:
		return tx.Model(&Post{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status <> ?", id, models.StatusDeleted).
			Updates(map[string]interface{}{"status": models.StatusActive, "deleted_at": nil}).Error
	case models.StatusReportPending:
		return tx.Model(&Post{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status = ?", id, models.StatusActive).
			Update("status", models.StatusReportPending).Error
	}
	return apperr.Internal("unknown content status")
}

func (postTarget) Summary(db *gorm.DB, appID string, id uuid.UUID) map[string]interface{} {
	var post Post
	if err := db.Scopes(tenant.ForTenant(appID)).First(&post, "id = ?", id).Error; err != nil {
		return nil
	}
	return map[string]interface{}{
		"title":      post.Title,
		"author_id":  post.AuthorID,
		"status":     post.Status,
		"created_at": post.CreatedAt,
	}
}

type commentTarget struct{}

func (commentTarget) Find(tx *gorm.DB, appID string, id uuid.UUID) error {
	var comment Comment
	err := tx.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("comment not found")
	}
	return err
}

func (commentTarget) SetStatus(tx *gorm.DB, appID string, id uuid.UUID, status models.ContentStatus, deletedAt *time.Time) error {
	switch status {
	case models.StatusDeleted:
		return softDeleteCommentCascade(tx, appID, id, deletedAt)
	case models.StatusActive:
		return tx.Model(&Comment{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status <> ?", id, models.StatusDeleted).
			Updates(map[string]interface{}{"status": models.StatusActive, "deleted_at": nil}).Error
	case models.StatusReportPending:
		return tx.Model(&Comment{}).
			Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND status = ?", id, models.StatusActive).
			Update("status", models.StatusReportPending).Error
	}
	return apperr.Internal("unknown content status")
}

func (commentTarget) Summary(db *gorm.DB, appID string, id uuid.UUID) map[string]interface{} {
	var comment Comment
	if err := db.Scopes(tenant.ForTenant(appID)).First(&comment, "id = ?", id).Error; err != nil {
		return nil
	}
	return map[string]interface{}{
		"post_id":    comment.PostID,
		"author_id":  comment.AuthorID,
		"content":    comment.Content,
		"status":     comment.Status,
		"created_at": comment.CreatedAt,
	}
}
