package facility

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/carelinkhq/carelink-backend/internal/dto"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

type Handlers struct {
	service    *Service
	moderation *services.ModerationService
	validate   *validator.Validate
}

func NewHandlers(service *Service, moderation *services.ModerationService, validate *validator.Validate) *Handlers {
	return &Handlers{service: service, moderation: moderation, validate: validate}
}

type facilityRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Address     string   `json:"address" validate:"required,max=300"`
	Phone       string   `json:"phone" validate:"omitempty,max=30"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Latitude    float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64  `json:"longitude" validate:"min=-180,max=180"`
	Capacity    int      `json:"capacity" validate:"min=0"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url,max=500"`
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"omitempty,max=2000"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Content *string `json:"content" validate:"omitempty,max=2000"`
}

type reservationRequest struct {
	VisitDate    time.Time `json:"visit_date" validate:"required"`
	VisitorCount int       `json:"visitor_count" validate:"required,min=1,max=20"`
	Note         string    `json:"note" validate:"omitempty,max=500"`
}

func (h *Handlers) List(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	page, limit := paging(c)

	rows, total, err := h.service.List(appID, page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "facilities fetched", fiber.Map{
		"Facilities": rows,
		"Total":      total,
		"Page":       page,
		"Limit":      limit,
	})
}

func (h *Handlers) Search(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "lat and lng query params are required")
	}
	radius, err := strconv.ParseFloat(c.Query("radius", "10"), 64)
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "invalid radius")
	}

	rows, err := h.service.Search(c.Context(), appID, lat, lng, radius)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "facilities found", "Facilities", rows)
}

func (h *Handlers) Get(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	facility, avgRating, reviewCount, err := h.service.Get(c.Context(), appID, facilityID)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "facility fetched", fiber.Map{
		"Facility":    facility,
		"AvgRating":   avgRating,
		"ReviewCount": reviewCount,
	})
}

func (h *Handlers) Create(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var req facilityRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	facility := &Facility{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Capacity:    req.Capacity,
		Amenities:   amenitiesJSON(req.Amenities),
		ImageURL:    req.ImageURL,
	}
	if err := h.service.Create(c.Context(), appID, facility); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "facility created", "Facility", facility)
}

func (h *Handlers) Update(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	delete(updates, "id")
	delete(updates, "app_id")

	facility, err := h.service.Update(c.Context(), appID, facilityID, updates)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "facility updated", "Facility", facility)
}

func (h *Handlers) Delete(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	if err := h.service.Delete(c.Context(), appID, facilityID); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "facility deleted", "", nil)
}

func (h *Handlers) CreateReview(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	review, err := h.service.CreateReview(appID, facilityID, userID, req.Rating, req.Content)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "review created", "Review", review)
}

func (h *Handlers) ListReviews(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}
	page, limit := paging(c)

	rows, total, err := h.service.ListReviews(appID, facilityID, page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "reviews fetched", fiber.Map{
		"Reviews": rows,
		"Total":   total,
		"Page":    page,
		"Limit":   limit,
	})
}

func (h *Handlers) UpdateReview(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var req updateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	review, err := h.service.UpdateReview(appID, reviewID, userID, req.Rating, req.Content)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "review updated", "Review", review)
}

func (h *Handlers) DeleteReview(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	if err := h.service.DeleteReview(appID, reviewID, userID); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "review deleted", "", nil)
}

func (h *Handlers) ReportReview(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	reviewID, err := uuid.Parse(c.Params("reviewId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid review ID")
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.moderation.Submit(appID, userID, models.ReportTypeReview, reviewID, models.ReportCategory(req.Category), req.Reason)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "report submitted", "Report", report)
}

func (h *Handlers) CreateReservation(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	facilityID, err := uuid.Parse(c.Params("facilityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid facility ID")
	}

	var req reservationRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	reservation, err := h.service.CreateReservation(appID, facilityID, userID, req.VisitDate, req.VisitorCount, req.Note)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "reservation requested", "Reservation", reservation)
}

func (h *Handlers) ListReservations(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	page, limit := paging(c)

	rows, total, err := h.service.ListReservations(appID, userID, page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "reservations fetched", fiber.Map{
		"Reservations": rows,
		"Total":        total,
		"Page":         page,
		"Limit":        limit,
	})
}

func (h *Handlers) CancelReservation(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid reservation ID")
	}

	if err := h.service.CancelReservation(appID, reservationID, userID); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "reservation cancelled", "", nil)
}

func (h *Handlers) SetReservationStatus(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid reservation ID")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}

	reservation, err := h.service.SetReservationStatus(appID, reservationID, req.Status)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "reservation updated", "Reservation", reservation)
}

func amenitiesJSON(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
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
