package chat

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/apps/facility"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/services"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

// Service handles member-to-facility conversations. Chat is plain
// request/response; clients poll for new messages.
type Service struct {
	db     *gorm.DB
	filter *services.ContentFilter
}

func NewService(db *gorm.DB, filter *services.ContentFilter) *Service {
	return &Service{db: db, filter: filter}
}

// OpenRoom returns the member's room for the facility, creating it on
// first contact. The facility must exist in the caller's tenant.
func (s *Service) OpenRoom(appID string, facilityID, memberID uuid.UUID) (*ChatRoom, error) {
	var fac facility.Facility
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("id = ?", facilityID).
		First(&fac).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("facility not found")
		}
		return nil, err
	}

	var room ChatRoom
	err = s.db.Scopes(tenant.ForTenant(appID)).
		Where("facility_id = ? AND member_id = ?", facilityID, memberID).
		First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = ChatRoom{
		AppID:      appID,
		FacilityID: facilityID,
		MemberID:   memberID,
	}
	if err := s.db.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent open; reload the winner.
			loadErr := s.db.Scopes(tenant.ForTenant(appID)).
				Where("facility_id = ? AND member_id = ?", facilityID, memberID).
				First(&room).Error
			if loadErr != nil {
				return nil, loadErr
			}
			return &room, nil
		}
		return nil, err
	}
	return &room, nil
}

// ListRooms returns the caller's rooms. Staff see every room in the
// tenant so they can answer incoming conversations.
func (s *Service) ListRooms(appID string, callerID uuid.UUID, role string, page, limit int) ([]ChatRoom, int64, error) {
	var rooms []ChatRoom
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&ChatRoom{}).Scopes(tenant.ForTenant(appID))
	if role != models.RoleStaff && role != models.RoleAdmin {
		query = query.Where("member_id = ?", callerID)
	}
	query.Count(&total)

	err := query.Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (s *Service) SendMessage(appID string, roomID, senderID uuid.UUID, role, content string) (*ChatMessage, error) {
	if ok, reason := s.filter.Check(content); !ok {
		return nil, apperr.Validation(s.filter.RejectionMessage(reason))
	}

	room, err := s.memberRoom(appID, roomID, senderID, role)
	if err != nil {
		return nil, err
	}

	msg := &ChatMessage{
		AppID:    appID,
		RoomID:   room.ID,
		SenderID: senderID,
		Content:  content,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&ChatRoom{}).
			Where("id = ?", room.ID).
			Update("updated_at", gorm.Expr("NOW()")).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) ListMessages(appID string, roomID, callerID uuid.UUID, role string, page, limit int) ([]ChatMessage, int64, error) {
	room, err := s.memberRoom(appID, roomID, callerID, role)
	if err != nil {
		return nil, 0, err
	}

	var messages []ChatMessage
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&ChatMessage{}).
		Scopes(tenant.ForTenant(appID)).
		Where("room_id = ?", room.ID)
	query.Count(&total)

	err = query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// memberRoom loads the room and checks the caller may use it. Members
// only reach their own rooms; staff and admins reach any room.
func (s *Service) memberRoom(appID string, roomID, callerID uuid.UUID, role string) (*ChatRoom, error) {
	var room ChatRoom
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("id = ?", roomID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat room not found")
		}
		return nil, err
	}
	if room.MemberID != callerID && role != models.RoleStaff && role != models.RoleAdmin {
		return nil, apperr.Forbidden("you are not a participant of this room")
	}
	return &room, nil
}
