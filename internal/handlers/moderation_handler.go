package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

type ModerationHandler struct {
	service *services.ModerationService
}

func NewModerationHandler(service *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// ListReports serves the admin moderation queue, filterable by report
// type and status.
func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	typ := models.ReportType(strings.ToUpper(c.Query("type")))
	if typ != "" && !models.ValidReportType(typ) {
		return dto.Failure(c, fiber.StatusBadRequest, "invalid report type")
	}

	status := models.ReportStatus(strings.ToUpper(c.Query("status")))
	switch status {
	case "", models.ReportPending, models.ReportApproved, models.ReportRejected:
	default:
		return dto.Failure(c, fiber.StatusBadRequest, "invalid report status")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reports, total, err := h.service.List(appID, typ, status, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "reports fetched", fiber.Map{
		"Reports": reports,
		"Total":   total,
		"Page":    page,
		"Limit":   limit,
	})
}

// ResolveReport applies an admin decision to a pending report. The
// decision path segment is one of approved, rejected or pending.
func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	reportID, err := uuid.Parse(c.Params("reportId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	var decision models.ReportStatus
	switch strings.ToLower(c.Params("decision")) {
	case "approved":
		decision = models.ReportApproved
	case "rejected":
		decision = models.ReportRejected
	case "pending":
		decision = models.ReportPending
	default:
		return dto.Failure(c, fiber.StatusBadRequest, "decision must be approved, rejected or pending")
	}

	if err := h.service.Resolve(appID, reportID, decision); err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "report resolved", fiber.Map{
		"ReportID": reportID,
		"Decision": decision,
	})
}
