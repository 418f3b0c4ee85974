package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

const defaultLogRetentionDays = 30

// StartCleanup runs a daily goroutine that deletes system_logs older than
// retentionDays. Non-positive retentionDays falls back to the default.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = defaultLogRetentionDays
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
