package community

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/adapter"
	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// Service handles community posts and nested comments.
type Service struct {
	db      *gorm.DB
	filter  *services.ContentFilter
	storage *adapter.StorageAdapter
}

func NewService(db *gorm.DB, filter *services.ContentFilter, storage *adapter.StorageAdapter) *Service {
	return &Service{db: db, filter: filter, storage: storage}
}

func (s *Service) CreatePost(appID string, authorID uuid.UUID, title, content, imageURL string) (*Post, error) {
	if ok, reason := s.filter.Check(title + " " + content); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	post := &Post{
		ID:       uuid.New(),
		AppID:    appID,
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		Status:   models.StatusActive,
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) ListPosts(appID string, page, limit int) ([]Post, int64, error) {
	var posts []Post
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&Post{}).
		Scopes(tenant.ForTenant(appID)).
		Where("status IN ?", models.VisibleStatuses)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPost returns a visible post with its assembled comment tree.
func (s *Service) GetPost(appID string, id uuid.UUID) (*Post, []Thread, error) {
	post, err := s.visiblePost(s.db, appID, id)
	if err != nil {
		return nil, nil, err
	}

	var comments []Comment
	if err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("post_id = ? AND status IN ?", id, models.VisibleStatuses).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, nil, err
	}

	return post, AssembleThreads(comments), nil
}

// UpdatePost is an author-only partial edit: nil fields keep their prior
// values. Ownership is checked before any write.
func (s *Service) UpdatePost(appID string, id, callerID uuid.UUID, title, content, imageURL *string) (*Post, error) {
	post, err := s.visiblePost(s.db, appID, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can edit this post")
	}

	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
	}
	if content != nil {
		updates["content"] = *content
	}
	if imageURL != nil {
		updates["image_url"] = *imageURL
	}
	if len(updates) == 0 {
		return post, nil
	}

	if ok, reason := s.filter.Check(stringOr(title, "") + " " + stringOr(content, "")); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost is the author self-delete path to DELETED: the post and all
// of its comments flip in one transaction, then media cleanup runs
// best-effort outside it.
func (s *Service) DeletePost(appID string, id, callerID uuid.UUID) error {
	post, err := s.visiblePost(s.db, appID, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return apperr.Forbidden("only the author can delete this post")
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return softDeletePostCascade(tx, appID, id, &now)
	})
	if err != nil {
		return err
	}

	s.storage.CleanupObject(post.ImageURL)
	return nil
}

// CreateComment creates a root comment or a reply. A reply's root id is
// taken from its parent, so the stored root is resolved in one hop no
// matter how deep the chain goes.
func (s *Service) CreateComment(appID string, postID, authorID uuid.UUID, parentID *uuid.UUID, content string) (*Comment, error) {
	if ok, reason := s.filter.Check(content); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	if _, err := s.visiblePost(s.db, appID, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		AppID:    appID,
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
		Status:   models.StatusActive,
	}

	if parentID == nil {
		comment.RootID = comment.ID
	} else {
		var parent Comment
		err := s.db.Scopes(tenant.ForTenant(appID)).
			Where("id = ? AND post_id = ? AND status IN ?", *parentID, postID, models.VisibleStatuses).
			First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("parent comment not found")
			}
			return nil, err
		}
		comment.RootID = parent.RootID
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) UpdateComment(appID string, postID, commentID, callerID uuid.UUID, content string) (*Comment, error) {
	comment, err := s.visibleComment(s.db, appID, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can edit this comment")
	}

	if ok, reason := s.filter.Check(content); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	if err := s.db.Model(comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes the comment and every descendant, all
// stamped with one timestamp in one transaction.
func (s *Service) DeleteComment(appID string, postID, commentID, callerID uuid.UUID) error {
	comment, err := s.visibleComment(s.db, appID, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return apperr.Forbidden("only the author can delete this comment")
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		return softDeleteCommentCascade(tx, appID, commentID, &now)
	})
}

func (s *Service) visiblePost(tx *gorm.DB, appID string, id uuid.UUID) (*Post, error) {
	var post Post
	err := tx.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status IN ?", id, models.VisibleStatuses).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (s *Service) visibleComment(tx *gorm.DB, appID string, postID, id uuid.UUID) (*Comment, error) {
	var comment Comment
	err := tx.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND post_id = ? AND status IN ?", id, postID, models.VisibleStatuses).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// collectDescendantIDs walks the reply tree breadth-first: one query per
// depth level, filtering parent_id against the previous level's ids, until
// a level comes back empty. The returned set includes id itself. Query
// count is bounded by tree depth, not node count.
func collectDescendantIDs(tx *gorm.DB, appID string, id uuid.UUID) ([]uuid.UUID, error) {
	all := []uuid.UUID{id}
	level := []uuid.UUID{id}

	for len(level) > 0 {
		var next []uuid.UUID
		err := tx.Model(&Comment{}).
			Scopes(tenant.ForTenant(appID)).
			Where("parent_id IN ?", level).
			Pluck("id", &next).Error
		if err != nil {
			return nil, err
		}
		all = append(all, next...)
		level = next
	}
	return all, nil
}

// softDeleteCommentCascade computes the full descendant closure first and
// then issues a single batch update, so a failure mid-computation changes
// nothing.
func softDeleteCommentCascade(tx *gorm.DB, appID string, id uuid.UUID, deletedAt *time.Time) error {
	ids, err := collectDescendantIDs(tx, appID, id)
	if err != nil {
		return err
	}
	return tx.Model(&Comment{}).
		Scopes(tenant.ForTenant(appID)).
		Where("id IN ? AND status <> ?", ids, models.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     models.StatusDeleted,
			"deleted_at": deletedAt,
		}).Error
}

// softDeletePostCascade flips the post and every comment under it.
func softDeletePostCascade(tx *gorm.DB, appID string, postID uuid.UUID, deletedAt *time.Time) error {
	err := tx.Model(&Post{}).
		Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status <> ?", postID, models.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     models.StatusDeleted,
			"deleted_at": deletedAt,
		}).Error
	if err != nil {
		return err
	}

	return tx.Model(&Comment{}).
		Scopes(tenant.ForTenant(appID)).
		Where("post_id = ? AND status <> ?", postID, models.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     models.StatusDeleted,
			"deleted_at": deletedAt,
		}).Error
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
