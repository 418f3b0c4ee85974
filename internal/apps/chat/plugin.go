package chat

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/middleware"
	"github.com/carelinkhq/carelink-backend/internal/services"
)

type Plugin struct {
	filter   *services.ContentFilter
	validate *validator.Validate
}

func New(filter *services.ContentFilter, validate *validator.Validate) *Plugin {
	return &Plugin{filter: filter, validate: validate}
}

func (p *Plugin) ID() string {
	return "chat"
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&ChatRoom{}, &ChatMessage{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db, p.filter)
	h := NewHandlers(service, p.validate)

	grp := router.Group("/chat", middleware.JWTProtected(cfg))
	grp.Post("/rooms", h.OpenRoom)
	grp.Get("/rooms", h.ListRooms)
	grp.Get("/rooms/:roomId/messages", h.ListMessages)
	grp.Post("/rooms/:roomId/messages", h.SendMessage)
}
