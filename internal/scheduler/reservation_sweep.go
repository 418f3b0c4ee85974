package scheduler

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/apps/facility"
)

// reservationSweepJob cancels visit requests nobody confirmed before
// the visit date passed.
type reservationSweepJob struct {
	db *gorm.DB
}

func (j *reservationSweepJob) Run() {
	result := j.db.Model(&facility.Reservation{}).
		Where("status = ? AND visit_date < ?", facility.ReservationRequested, time.Now()).
		Update("status", facility.ReservationCancelled)
	if result.Error != nil {
		slog.Error("reservation sweep failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("stale reservations cancelled", "count", result.RowsAffected)
	}
}
