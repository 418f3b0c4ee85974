package facility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carelinkhq/carelink-backend/internal/adapter"
	"github.com/carelinkhq/carelink-backend/internal/apperr"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/carelinkhq/carelink-backend/internal/tenant"
)

const (
	searchCacheTTL = 5 * time.Minute
	detailCacheTTL = 10 * time.Minute
)

// Service handles the facility directory, reviews and reservations.
type Service struct {
	db      *gorm.DB
	cache   *adapter.CacheAdapter
	storage *adapter.StorageAdapter
}

func NewService(db *gorm.DB, cache *adapter.CacheAdapter, storage *adapter.StorageAdapter) *Service {
	return &Service{db: db, cache: cache, storage: storage}
}

func (s *Service) List(appID string, page, limit int) ([]Facility, int64, error) {
	var rows []Facility
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&Facility{}).Scopes(tenant.ForTenant(appID))
	query.Count(&total)

	err := query.Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Search runs a bounding-box query and ranks hits by haversine distance.
// Results are cached briefly; the window includes the radius so ranking
// never misses a candidate.
func (s *Service) Search(ctx context.Context, appID string, lat, lng, radiusKm float64) ([]FacilityWithDistance, error) {
	if radiusKm <= 0 || radiusKm > 100 {
		return nil, apperr.Validation("radius must be between 0 and 100 km")
	}

	cacheKey := searchCacheKey(appID, s.searchVersion(ctx, appID), lat, lng, radiusKm)
	var cached []FacilityWithDistance
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, radiusKm)

	var rows []Facility
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("latitude BETWEEN ? AND ?", minLat, maxLat).
		Where("longitude BETWEEN ? AND ?", minLng, maxLng).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ranked := rankByDistance(rows, lat, lng, radiusKm)
	s.cache.SetJSON(ctx, cacheKey, ranked, searchCacheTTL)
	return ranked, nil
}

// Get returns the facility with its review aggregate.
func (s *Service) Get(ctx context.Context, appID string, id uuid.UUID) (*Facility, float64, int64, error) {
	cacheKey := detailCacheKey(appID, id)

	var facility Facility
	if !s.cache.GetJSON(ctx, cacheKey, &facility) {
		err := s.db.Scopes(tenant.ForTenant(appID)).First(&facility, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, 0, apperr.NotFound("facility not found")
			}
			return nil, 0, 0, err
		}
		s.cache.SetJSON(ctx, cacheKey, &facility, detailCacheTTL)
	}

	var agg struct {
		Avg   float64
		Count int64
	}
	s.db.Model(&Review{}).
		Scopes(tenant.ForTenant(appID)).
		Where("facility_id = ? AND status IN ?", id, models.VisibleStatuses).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&agg)

	return &facility, agg.Avg, agg.Count, nil
}

func (s *Service) Create(ctx context.Context, appID string, f *Facility) error {
	f.ID = uuid.New()
	f.AppID = appID
	if err := s.db.Create(f).Error; err != nil {
		return err
	}
	s.cache.Incr(ctx, searchVersionKey(appID))
	return nil
}

func (s *Service) Update(ctx context.Context, appID string, id uuid.UUID, updates map[string]interface{}) (*Facility, error) {
	var facility Facility
	err := s.db.Scopes(tenant.ForTenant(appID)).First(&facility, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("facility not found")
		}
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&facility).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.cache.Delete(ctx, detailCacheKey(appID, id))
	s.cache.Incr(ctx, searchVersionKey(appID))
	return &facility, nil
}

func (s *Service) Delete(ctx context.Context, appID string, id uuid.UUID) error {
	var facility Facility
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&facility, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("facility not found")
		}
		return err
	}

	if err := s.db.Delete(&facility).Error; err != nil {
		return err
	}

	s.cache.Delete(ctx, detailCacheKey(appID, id))
	s.cache.Incr(ctx, searchVersionKey(appID))
	s.storage.CleanupObject(facility.ImageURL)
	return nil
}

// CreateReview enforces one review per (user, facility) through the
// composite unique index.
func (s *Service) CreateReview(appID string, facilityID, authorID uuid.UUID, rating int, content string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	var facility Facility
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&facility, "id = ?", facilityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("facility not found")
		}
		return nil, err
	}

	review := &Review{
		ID:         uuid.New(),
		AppID:      appID,
		FacilityID: facilityID,
		AuthorID:   authorID,
		Rating:     rating,
		Content:    content,
		Status:     models.StatusActive,
	}

	if err := s.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("you have already reviewed this facility")
		}
		return nil, err
	}
	return review, nil
}

func (s *Service) ListReviews(appID string, facilityID uuid.UUID, page, limit int) ([]Review, int64, error) {
	var rows []Review
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&Review{}).
		Scopes(tenant.ForTenant(appID)).
		Where("facility_id = ? AND status IN ?", facilityID, models.VisibleStatuses)
	query.Count(&total)

	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpdateReview is an author-only partial edit.
func (s *Service) UpdateReview(appID string, reviewID, callerID uuid.UUID, rating *int, content *string) (*Review, error) {
	review, err := s.visibleReview(appID, reviewID)
	if err != nil {
		return nil, err
	}
	if review.AuthorID != callerID {
		return nil, apperr.Forbidden("only the author can edit this review")
	}

	updates := map[string]interface{}{}
	if rating != nil {
		if *rating < 1 || *rating > 5 {
			return nil, apperr.Validation("rating must be between 1 and 5")
		}
		updates["rating"] = *rating
	}
	if content != nil {
		updates["content"] = *content
	}
	if len(updates) == 0 {
		return review, nil
	}

	if err := s.db.Model(review).Updates(updates).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview is the author self-delete path for reviews.
func (s *Service) DeleteReview(appID string, reviewID, callerID uuid.UUID) error {
	review, err := s.visibleReview(appID, reviewID)
	if err != nil {
		return err
	}
	if review.AuthorID != callerID {
		return apperr.Forbidden("only the author can delete this review")
	}

	now := time.Now()
	return softDeleteReview(s.db, appID, reviewID, &now)
}

func (s *Service) visibleReview(appID string, id uuid.UUID) (*Review, error) {
	var review Review
	err := s.db.Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status IN ?", id, models.VisibleStatuses).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	return &review, nil
}

func softDeleteReview(tx *gorm.DB, appID string, id uuid.UUID, deletedAt *time.Time) error {
	return tx.Model(&Review{}).
		Scopes(tenant.ForTenant(appID)).
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		Updates(map[string]interface{}{
			"status":     models.StatusDeleted,
			"deleted_at": deletedAt,
		}).Error
}

// CreateReservation requests a facility visit.
func (s *Service) CreateReservation(appID string, facilityID, userID uuid.UUID, visitDate time.Time, visitorCount int, note string) (*Reservation, error) {
	if visitDate.Before(time.Now()) {
		return nil, apperr.Validation("visit date must be in the future")
	}
	if visitorCount < 1 {
		return nil, apperr.Validation("visitor count must be at least 1")
	}

	var facility Facility
	if err := s.db.Scopes(tenant.ForTenant(appID)).First(&facility, "id = ?", facilityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("facility not found")
		}
		return nil, err
	}

	reservation := &Reservation{
		ID:           uuid.New(),
		AppID:        appID,
		FacilityID:   facilityID,
		UserID:       userID,
		VisitDate:    visitDate,
		VisitorCount: visitorCount,
		Note:         note,
		Status:       ReservationRequested,
	}

	if err := s.db.Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *Service) ListReservations(appID string, userID uuid.UUID, page, limit int) ([]Reservation, int64, error) {
	var rows []Reservation
	var total int64

	offset := (page - 1) * limit

	query := s.db.Model(&Reservation{}).
		Scopes(tenant.ForTenant(appID)).
		Where("user_id = ?", userID)
	query.Count(&total)

	err := query.Order("visit_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CancelReservation is owner-only; staff transitions go through
// SetReservationStatus.
func (s *Service) CancelReservation(appID string, reservationID, callerID uuid.UUID) error {
	var reservation Reservation
	err := s.db.Scopes(tenant.ForTenant(appID)).First(&reservation, "id = ?", reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("reservation not found")
		}
		return err
	}
	if reservation.UserID != callerID {
		return apperr.Forbidden("only the owner can cancel this reservation")
	}
	if reservation.Status == ReservationCancelled || reservation.Status == ReservationCompleted {
		return apperr.Validation("reservation already " + reservation.Status)
	}

	return s.db.Model(&reservation).Update("status", ReservationCancelled).Error
}

// SetReservationStatus is the staff/admin transition (confirm/complete).
func (s *Service) SetReservationStatus(appID string, reservationID uuid.UUID, status string) (*Reservation, error) {
	if status != ReservationConfirmed && status != ReservationCompleted && status != ReservationCancelled {
		return nil, apperr.Validation("invalid reservation status: " + status)
	}

	var reservation Reservation
	err := s.db.Scopes(tenant.ForTenant(appID)).First(&reservation, "id = ?", reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, err
	}

	if err := s.db.Model(&reservation).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func detailCacheKey(appID string, id uuid.UUID) string {
	return fmt.Sprintf("facility:detail:%s:%s", appID, id)
}

// Search keys embed a per-tenant version counter instead of being deleted
// individually: facility mutations bump the version, which orphans every
// search entry for the tenant at once and lets the old ones expire by TTL.
func searchVersionKey(appID string) string {
	return "facility:search:ver:" + appID
}

func searchCacheKey(appID string, version int64, lat, lng, radiusKm float64) string {
	return fmt.Sprintf("facility:search:%s:%d:%.4f:%.4f:%.1f", appID, version, lat, lng, radiusKm)
}

// searchVersion reads the tenant's current search-cache version; zero when
// the counter is unset or caching is disabled.
func (s *Service) searchVersion(ctx context.Context, appID string) int64 {
	var version int64
	s.cache.GetJSON(ctx, searchVersionKey(appID), &version)
	return version
}
