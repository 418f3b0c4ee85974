package chat

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

type Handlers struct {
	service  *Service
	validate *validator.Validate
}

func NewHandlers(service *Service, validate *validator.Validate) *Handlers {
	return &Handlers{service: service, validate: validate}
}

type openRoomRequest struct {
	FacilityID string `json:"facility_id" validate:"required,uuid4"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *Handlers) OpenRoom(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req openRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}
	facilityID, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	room, err := h.service.OpenRoom(appID, facilityID, userID)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "room opened", "Room", room)
}

func (h *Handlers) ListRooms(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	page, limit := paging(c)

	rooms, total, err := h.service.ListRooms(appID, userID, tenant.GetUserRole(c), page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "rooms fetched", fiber.Map{
		"Rooms": rooms,
		"Total": total,
		"Page":  page,
		"Limit": limit,
	})
}

func (h *Handlers) SendMessage(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid room ID")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	msg, err := h.service.SendMessage(appID, roomID, userID, tenant.GetUserRole(c), req.Content)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "message sent", "ChatMessage", msg)
}

func (h *Handlers) ListMessages(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid room ID")
	}
	page, limit := paging(c)

	messages, total, err := h.service.ListMessages(appID, roomID, userID, tenant.GetUserRole(c), page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "messages fetched", fiber.Map{
		"ChatMessages": messages,
		"Total":        total,
		"Page":         page,
		"Limit":        limit,
	})
}

func paging(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
