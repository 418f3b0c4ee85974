package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

type SubmitReportRequest struct {
	Category string `json:"category" validate:"required,report_category"`
	Reason   string `json:"reason" validate:"omitempty,max=500"`
}

// ReportView is one row of the admin moderation queue: the ledger entry
// joined with reporter identity and a type-specific target summary.
type ReportView struct {
	ID         uuid.UUID              `json:"id"`
	Type       models.ReportType      `json:"type"`
	TargetID   uuid.UUID              `json:"target_id"`
	Category   models.ReportCategory  `json:"category"`
	Reason     string                 `json:"reason"`
	Status     models.ReportStatus    `json:"status"`
	ResolvedAt *time.Time             `json:"resolved_at"`
	CreatedAt  time.Time              `json:"created_at"`
	Reporter   UserResponse           `json:"reporter"`
	Target     map[string]interface{} `json:"target"`
}
