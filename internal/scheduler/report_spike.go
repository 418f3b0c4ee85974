package scheduler

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// reportSpikeJob degrades content that accumulates too many open
// reports in a short window. Targets crossing the threshold drop to
// REPORT_PENDING ahead of any admin decision.
type reportSpikeJob struct {
	db         *gorm.DB
	moderation *services.ModerationService
	registry   *tenant.Registry
	threshold  int
	window     time.Duration
}

type spikeRow struct {
	Type     models.ReportType
	TargetID uuid.UUID
	Count    int64
}

func (j *reportSpikeJob) Run() {
	since := time.Now().Add(-j.window)

	for _, partner := range j.registry.All() {
		var rows []spikeRow
		err := j.db.Model(&models.Report{}).
			Select("type, target_id, COUNT(*) AS count").
			Where("app_id = ? AND status = ? AND created_at >= ?", partner.AppID, models.ReportPending, since).
			Group("type, target_id").
			Having("COUNT(*) >= ?", j.threshold).
			Scan(&rows).Error
		if err != nil {
			slog.Error("report spike scan failed", "app_id", partner.AppID, "error", err)
			continue
		}

		for _, row := range rows {
			if err := j.moderation.FlagPending(partner.AppID, row.Type, row.TargetID); err != nil {
				slog.Error("report spike flag failed",
					"app_id", partner.AppID,
					"type", row.Type,
					"target_id", row.TargetID,
					"error", err)
				continue
			}
			slog.Warn("report spike detected",
				"app_id", partner.AppID,
				"type", row.Type,
				"target_id", row.TargetID,
				"count", row.Count)
		}
	}
}
