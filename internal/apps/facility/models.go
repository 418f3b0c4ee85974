package facility

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

// Facility is one elder-care home in the directory.
type Facility struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID       string         `gorm:"size:50;not null;index" json:"-"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Address     string         `gorm:"size:300;not null" json:"address"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Description string         `gorm:"type:text" json:"description"`
	Latitude    float64        `gorm:"not null;index" json:"latitude"`
	Longitude   float64        `gorm:"not null;index" json:"longitude"`
	Capacity    int            `gorm:"default:0" json:"capacity"`
	Amenities   datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"amenities"`
	ImageURL    string         `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Review is a family member's rating of a facility; one per
// (user, facility). Reviews follow the shared content lifecycle and are
// the REVIEW moderation target.
type Review struct {
	ID         uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID      string               `gorm:"size:50;not null;uniqueIndex:idx_reviews_user_facility" json:"-"`
	FacilityID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_facility;index" json:"facility_id"`
	AuthorID   uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_facility" json:"author_id"`
	Rating     int                  `gorm:"not null" json:"rating"`
	Content    string               `gorm:"type:text" json:"content"`
	Status     models.ContentStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	DeletedAt  *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
	Author     models.User          `gorm:"foreignKey:AuthorID" json:"-"`
}

// Reservation statuses.
const (
	ReservationRequested = "REQUESTED"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
)

// Reservation is a scheduled facility visit.
type Reservation struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID        string      `gorm:"size:50;not null;index" json:"-"`
	FacilityID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"facility_id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	VisitDate    time.Time   `gorm:"not null;index" json:"visit_date"`
	VisitorCount int         `gorm:"default:1" json:"visitor_count"`
	Note         string      `gorm:"size:500" json:"note"`
	Status       string      `gorm:"size:20;not null;default:'REQUESTED';index" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	User         models.User `gorm:"foreignKey:UserID" json:"-"`
}
