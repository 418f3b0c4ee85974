package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType identifies which content table a report targets.
type ReportType string

const (
	ReportTypeReview    ReportType = "REVIEW"
	ReportTypeCommunity ReportType = "COMMUNITY"
	ReportTypeComment   ReportType = "COMMENT"
)

// ReportStatus is the ledger-side lifecycle of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "PENDING"
	ReportApproved ReportStatus = "APPROVED"
	ReportRejected ReportStatus = "REJECTED"
)

// ReportCategory is the reporter-selected reason bucket.
type ReportCategory string

const (
	CategoryAbuse     ReportCategory = "ABUSE"
	CategorySpam      ReportCategory = "SPAM"
	CategoryFalseInfo ReportCategory = "FALSE_INFO"
	CategoryPrivacy   ReportCategory = "PRIVACY"
	CategoryOther     ReportCategory = "OTHER"
)

// Report is one moderation flag against a content item. The composite
// unique index makes the store reject a second report for the same
// (reporter, type, target) — concurrent duplicates lose the insert race
// at the constraint, not in handler code.
type Report struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID      string         `gorm:"size:50;not null;uniqueIndex:idx_reports_reporter_target" json:"-"`
	ReporterID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reporter_target" json:"reporter_id"`
	Type       ReportType     `gorm:"size:20;not null;uniqueIndex:idx_reports_reporter_target;index" json:"type"`
	TargetID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_reports_reporter_target;index" json:"target_id"`
	Category   ReportCategory `gorm:"size:20;not null" json:"category"`
	Reason     string         `gorm:"size:500" json:"reason"`
	Status     ReportStatus   `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ResolvedAt *time.Time     `json:"resolved_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Reporter   User           `gorm:"foreignKey:ReporterID" json:"-"`
}

func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeReview, ReportTypeCommunity, ReportTypeComment:
		return true
	}
	return false
}

func ValidReportCategory(c ReportCategory) bool {
	switch c {
	case CategoryAbuse, CategorySpam, CategoryFalseInfo, CategoryPrivacy, CategoryOther:
		return true
	}
	return false
}
