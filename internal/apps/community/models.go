package community

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

// Post is a community board entry.
type Post struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID     string               `gorm:"size:50;not null;index" json:"-"`
	AuthorID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string               `gorm:"size:200;not null" json:"title"`
	Content   string               `gorm:"type:text;not null" json:"content"`
	ImageURL  string               `gorm:"size:500" json:"image_url,omitempty"`
	Status    models.ContentStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Author    models.User          `gorm:"foreignKey:AuthorID" json:"-"`
}

// Comment is a reply on a post. ParentID is the direct parent (nil for
// roots); RootID is the top of the reply chain, computed once at creation
// and never recomputed — for a root comment it equals the comment's own
// id. That flattens arbitrarily deep chains into a two-level display tree.
type Comment struct {
	ID        uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	AppID     string               `gorm:"size:50;not null;index" json:"-"`
	PostID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"author_id"`
	ParentID  *uuid.UUID           `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	RootID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"root_id"`
	Content   string               `gorm:"type:text;not null" json:"content"`
	Status    models.ContentStatus `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Author    models.User          `gorm:"foreignKey:AuthorID" json:"-"`
}
