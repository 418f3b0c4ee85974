package community

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/adapter"
	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/middleware"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
)

type Plugin struct {
	moderation *services.ModerationService
	filter     *services.ContentFilter
	storage    *adapter.StorageAdapter
	validate   *validator.Validate
}

// New wires the community feature and registers its two moderation
// targets with the ledger.
func New(moderation *services.ModerationService, filter *services.ContentFilter, storage *adapter.StorageAdapter, validate *validator.Validate) *Plugin {
	moderation.RegisterTarget(models.ReportTypeCommunity, postTarget{})
	moderation.RegisterTarget(models.ReportTypeComment, commentTarget{})
	return &Plugin{moderation: moderation, filter: filter, storage: storage, validate: validate}
}

func (p *Plugin) ID() string {
	return "community"
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Post{}, &Comment{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db, p.filter, p.storage)
	h := NewHandlers(service, p.moderation, p.validate)

	grp := router.Group("/community", middleware.JWTProtected(cfg))
	grp.Get("/", h.ListPosts)
	grp.Post("/", h.CreatePost)
	grp.Get("/:communityId", h.GetPost)
	grp.Patch("/:communityId", h.UpdatePost)
	grp.Delete("/:communityId", h.DeletePost)
	grp.Post("/:communityId/report", h.ReportPost)
	grp.Post("/:communityId/comment", h.CreateComment)
	grp.Patch("/:communityId/comment/:commentId", h.UpdateComment)
	grp.Delete("/:communityId/comment/:commentId", h.DeleteComment)
	grp.Post("/:communityId/comment/:commentId/report", h.ReportComment)
}
