package facility

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
	cache      *adapter.CacheAdapter
	storage    *adapter.StorageAdapter
	validate   *validator.Validate
}

// New wires the facility directory feature and registers the review
// moderation target with the ledger.
func New(moderation *services.ModerationService, cache *adapter.CacheAdapter, storage *adapter.StorageAdapter, validate *validator.Validate) *Plugin {
	moderation.RegisterTarget(models.ReportTypeReview, reviewTarget{})
	return &Plugin{moderation: moderation, cache: cache, storage: storage, validate: validate}
}

func (p *Plugin) ID() string {
	return "facility"
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Facility{}, &Review{}, &Reservation{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db, p.cache, p.storage)
	h := NewHandlers(service, p.moderation, p.validate)

	grp := router.Group("/facilities")

	// Directory browsing is open to any tenant client.
	grp.Get("/", h.List)
	grp.Get("/search", h.Search)
	grp.Get("/:facilityId", h.Get)
	grp.Get("/:facilityId/review", h.ListReviews)

	// Reviews and reservations require a signed-in member.
	auth := middleware.JWTProtected(cfg)
	grp.Post("/:facilityId/review", auth, h.CreateReview)
	grp.Patch("/:facilityId/review/:reviewId", auth, h.UpdateReview)
	grp.Delete("/:facilityId/review/:reviewId", auth, h.DeleteReview)
	grp.Post("/:facilityId/review/:reviewId/report", auth, h.ReportReview)
	grp.Post("/:facilityId/reservation", auth, h.CreateReservation)

	res := router.Group("/reservations", auth)
	res.Get("/", h.ListReservations)
	res.Patch("/:reservationId/cancel", h.CancelReservation)
	res.Patch("/:reservationId/status", middleware.StaffRequired(db, cfg), h.SetReservationStatus)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db, p.cache, p.storage)
	h := NewHandlers(service, p.moderation, p.validate)

	router.Post("/facilities", h.Create)
	router.Patch("/facilities/:facilityId", h.Update)
	router.Delete("/facilities/:facilityId", h.Delete)
}
