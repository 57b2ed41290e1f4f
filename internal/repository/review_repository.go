package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	reviewDomain "github.com/suitespot/service-booking/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomNo     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_reviews_guest_room,priority:2;index"`
	GuestEmail string    `gorm:"type:varchar(320);not null;uniqueIndex:idx_reviews_guest_room,priority:1"`
	GuestName  string    `gorm:"type:varchar(200)"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName sets the table name.
func (ReviewModel) TableName() string { return "reviews" }

// GormReviewRepository implements ReviewRepository using GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Save persists a new review. A second review by the same guest for the same
// room fails with review.ErrDuplicate.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := toReviewModel(rv)
	if err := conn(ctx, r.db).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return reviewDomain.ErrDuplicate
		}
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// ExistsForGuest reports whether the guest already reviewed the room.
func (r *GormReviewRepository) ExistsForGuest(ctx context.Context, guestEmail, roomNo string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).
		Model(&ReviewModel{}).
		Where("guest_email = ? AND room_no = ?", guestEmail, roomNo).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

// FindByRoomNo returns all reviews of a room, newest first.
func (r *GormReviewRepository) FindByRoomNo(ctx context.Context, roomNo string) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := conn(ctx, r.db).Where("room_no = ?", roomNo).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room reviews: %w", err)
	}
	return toReviewDomains(models), nil
}

// ListRecent returns reviews of every room, newest first.
func (r *GormReviewRepository) ListRecent(ctx context.Context, limit int) ([]*reviewDomain.Review, error) {
	q := conn(ctx, r.db).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []ReviewModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return toReviewDomains(models), nil
}

// CountByRoomNo returns how many reviews a room has.
func (r *GormReviewRepository) CountByRoomNo(ctx context.Context, roomNo string) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&ReviewModel{}).Where("room_no = ?", roomNo).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count room reviews: %w", err)
	}
	return count, nil
}

func toReviewModel(rv *reviewDomain.Review) ReviewModel {
	return ReviewModel{
		ID:         rv.ID(),
		RoomNo:     rv.RoomNo(),
		GuestEmail: rv.GuestEmail(),
		GuestName:  rv.GuestName(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt(),
	}
}

func toReviewDomain(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(
		m.ID,
		m.RoomNo,
		m.GuestEmail,
		m.GuestName,
		m.Rating,
		m.Comment,
		m.CreatedAt,
	)
}

func toReviewDomains(models []ReviewModel) []*reviewDomain.Review {
	reviews := make([]*reviewDomain.Review, len(models))
	for i := range models {
		reviews[i] = toReviewDomain(&models[i])
	}
	return reviews
}
