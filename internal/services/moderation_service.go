package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// ReportTarget is one content table the ledger can act on. Feature plugins
// register their targets at startup, so resolution dispatches through a
// single table instead of per-call-site conditionals.
type ReportTarget interface {
	// Find fails with NotFound when the item is missing or already DELETED.
	Find(tx *gorm.DB, appID string, id uuid.UUID) error

	// SetStatus applies a lifecycle transition inside tx. A DELETED
	// transition must also cascade to descendant rows in the same tx.
	SetStatus(tx *gorm.DB, appID string, id uuid.UUID, status models.ContentStatus, deletedAt *time.Time) error

	// Summary returns display fields for the admin queue join; nil when
	// the row has vanished entirely.
	Summary(db *gorm.DB, appID string, id uuid.UUID) map[string]interface{}
}

// ModerationService owns the report ledger and the content status machine:
// ACTIVE <-> REPORT_PENDING -> DELETED (terminal).
type ModerationService struct {
	db      *gorm.DB
	targets map[models.ReportType]ReportTarget
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{
		db:      db,
		targets: make(map[models.ReportType]ReportTarget),
	}
}

// RegisterTarget binds a report type to its content table. Called by
// feature plugins during construction, before the server accepts traffic.
func (s *ModerationService) RegisterTarget(t models.ReportType, target ReportTarget) {
	s.targets[t] = target
}

// Submit records a PENDING report. The composite unique constraint on
// (app_id, reporter_id, type, target_id) decides concurrent duplicates;
// the losing insert comes back as Conflict.
func (s *ModerationService) Submit(appID string, reporterID uuid.UUID, typ models.ReportType, targetID uuid.UUID, category models.ReportCategory, reason string) (*models.Report, error) {
	target, ok := s.targets[typ]
	if !ok {
		return nil, apperr.Validation("unknown report type: " + string(typ))
	}

	if err := target.Find(s.db, appID, targetID); err != nil {
		return nil, err
	}

	report := &models.Report{
		ID:         uuid.New(),
		AppID:      appID,
		ReporterID: reporterID,
		Type:       typ,
		TargetID:   targetID,
		Category:   category,
		Reason:     reason,
		Status:     models.ReportPending,
	}

	if err := s.db.Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("report already submitted for this target")
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// List returns the moderation queue, newest first, with reporter identity
// and a per-type target summary joined in.
func (s *ModerationService) List(appID string, typ models.ReportType, status models.ReportStatus, limit, offset int) ([]dto.ReportView, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{}).Scopes(tenant.ForTenant(appID))
	if typ != "" {
		query = query.Where("type = ?", typ)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Preload("Reporter").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	views := make([]dto.ReportView, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		view := dto.ReportView{
			ID:         r.ID,
			Type:       r.Type,
			TargetID:   r.TargetID,
			Category:   r.Category,
			Reason:     r.Reason,
			Status:     r.Status,
			ResolvedAt: r.ResolvedAt,
			CreatedAt:  r.CreatedAt,
			Reporter: dto.UserResponse{
				ID:       r.Reporter.ID,
				Email:    r.Reporter.Email,
				Nickname: r.Reporter.Nickname,
				Role:     r.Reporter.Role,
			},
		}
		if target, ok := s.targets[r.Type]; ok {
			view.Target = target.Summary(s.db, appID, r.TargetID)
		}
		views = append(views, view)
	}
	return views, total, nil
}

// Resolve applies an admin decision to a pending report and,
// transactionally, to its target. resolved_at is stamped exactly once,
// on the transition away from PENDING.
func (s *ModerationService) Resolve(appID string, reportID uuid.UUID, decision models.ReportStatus) error {
	contentStatus, resolves, err := decisionOutcome(decision)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.Scopes(tenant.ForTenant(appID)).First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("report not found")
			}
			return err
		}
		if report.Status != models.ReportPending {
			return apperr.Validation("report already resolved")
		}

		target, ok := s.targets[report.Type]
		if !ok {
			return apperr.Internal("no target registered for type " + string(report.Type))
		}

		now := time.Now()
		var deletedAt *time.Time
		if contentStatus == models.StatusDeleted {
			deletedAt = &now
		}

		if err := target.SetStatus(tx, appID, report.TargetID, contentStatus, deletedAt); err != nil {
			return err
		}

		updates := map[string]interface{}{"status": decision}
		if resolves {
			updates["resolved_at"] = now
		}
		return tx.Model(&report).Updates(updates).Error
	})
}

// FlagPending degrades a target to REPORT_PENDING without resolving any
// report. Used by the report-spike job; no-op for non-ACTIVE items.
func (s *ModerationService) FlagPending(appID string, typ models.ReportType, targetID uuid.UUID) error {
	target, ok := s.targets[typ]
	if !ok {
		return apperr.Internal("no target registered for type " + string(typ))
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return target.SetStatus(tx, appID, targetID, models.StatusReportPending, nil)
	})
}

// decisionOutcome is the single place the moderation state machine lives:
// APPROVED deletes the target, REJECTED restores it, PENDING degrades it
// to REPORT_PENDING while the report stays open.
func decisionOutcome(decision models.ReportStatus) (models.ContentStatus, bool, error) {
	switch decision {
	case models.ReportApproved:
		return models.StatusDeleted, true, nil
	case models.ReportRejected:
		return models.StatusActive, true, nil
	case models.ReportPending:
		return models.StatusReportPending, false, nil
	default:
		return "", false, apperr.Validation("invalid decision: " + string(decision))
	}
}
