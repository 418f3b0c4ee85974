package models

// ContentStatus is the lifecycle state shared by posts, comments and reviews.
// Items are created ACTIVE; a pending report may degrade them to
// REPORT_PENDING (still publicly visible); DELETED is terminal and always
// soft — rows stay behind for audit and report history.
type ContentStatus string

const (
	StatusActive        ContentStatus = "ACTIVE"
	StatusReportPending ContentStatus = "REPORT_PENDING"
	StatusDeleted       ContentStatus = "DELETED"
)

// VisibleStatuses are the states returned by public reads.
var VisibleStatuses = []ContentStatus{StatusActive, StatusReportPending}
