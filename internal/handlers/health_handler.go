package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/carelinkhq/carelink-backend/internal/database"
	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

type HealthHandler struct {
	registry *tenant.Registry
}

func NewHealthHandler(registry *tenant.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	status := fiber.StatusOK
	if err := database.Ping(); err != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		AppCount:  len(h.registry.All()),
	})
}

// Meta returns the tenant-facing portal metadata: name, region,
// support contact and legal document links from the partner registry.
func (h *HealthHandler) Meta(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	partner := h.registry.Get(appID)
	if partner == nil {
		return dto.Failure(c, fiber.StatusNotFound, "unknown app")
	}

	return dto.SuccessMap(c, fiber.StatusOK, "meta fetched", fiber.Map{
		"AppID":        partner.AppID,
		"AppName":      partner.AppName,
		"Region":       partner.Region,
		"SupportEmail": partner.SupportEmail,
		"TermsURL":     partner.TermsURL,
		"PrivacyURL":   partner.PrivacyURL,
		"Features":     partner.Features,
	})
}
