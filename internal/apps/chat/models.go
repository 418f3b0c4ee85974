package chat

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is one conversation between a member and a facility's staff.
// A member has at most one open room per facility.
type ChatRoom struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID      string    `gorm:"size:50;not null;index;uniqueIndex:idx_chat_rooms_member_facility" json:"-"`
	FacilityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_member_facility" json:"facility_id"`
	MemberID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_rooms_member_facility" json:"member_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AppID     string    `gorm:"size:50;not null;index" json:"-"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
