package community

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

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

type createPostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=5000"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=500"`
}

type updatePostRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=200"`
	Content  *string `json:"content" validate:"omitempty,max=5000"`
	ImageURL *string `json:"image_url" validate:"omitempty,url,max=500"`
}

type createCommentRequest struct {
	Content  string     `json:"content" validate:"required,max=1000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (h *Handlers) CreatePost(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	post, err := h.service.CreatePost(appID, userID, req.Title, req.Content, req.ImageURL)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "post created", "Community", post)
}

func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	page, limit := paging(c)

	posts, total, err := h.service.ListPosts(appID, page, limit)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "posts fetched", fiber.Map{
		"Communities": posts,
		"Total":       total,
		"Page":        page,
		"Limit":       limit,
	})
}

func (h *Handlers) GetPost(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	post, threads, err := h.service.GetPost(appID, postID)
	if err != nil {
		return err
	}
	return dto.SuccessMap(c, fiber.StatusOK, "post fetched", fiber.Map{
		"Community": post,
		"Comments":  threads,
	})
}

func (h *Handlers) UpdatePost(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	post, err := h.service.UpdatePost(appID, postID, userID, req.Title, req.Content, req.ImageURL)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "post updated", "Community", post)
}

func (h *Handlers) DeletePost(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	if err := h.service.DeletePost(appID, postID, userID); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "post deleted", "", nil)
}

func (h *Handlers) CreateComment(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	comment, err := h.service.CreateComment(appID, postID, userID, req.ParentID, req.Content)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "comment created", "Comment", comment)
}

func (h *Handlers) UpdateComment(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	var req updateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	comment, err := h.service.UpdateComment(appID, postID, commentID, userID, req.Content)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "comment updated", "Comment", comment)
}

func (h *Handlers) DeleteComment(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	postID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid post ID")
	}
	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	if err := h.service.DeleteComment(appID, postID, commentID, userID); err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusOK, "comment deleted", "", nil)
}

func (h *Handlers) ReportPost(c *fiber.Ctx) error {
	return h.submitReport(c, models.ReportTypeCommunity, "communityId")
}

func (h *Handlers) ReportComment(c *fiber.Ctx) error {
	return h.submitReport(c, models.ReportTypeComment, "commentId")
}

func (h *Handlers) submitReport(c *fiber.Ctx, typ models.ReportType, param string) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return dto.Failure(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	targetID, err := uuid.Parse(c.Params(param))
	if err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid target ID")
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return dto.Failure(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.moderation.Submit(appID, userID, typ, targetID, models.ReportCategory(req.Category), req.Reason)
	if err != nil {
		return err
	}
	return dto.Success(c, fiber.StatusCreated, "report submitted", "Report", report)
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
