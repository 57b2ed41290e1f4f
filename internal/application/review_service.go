package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reviewDomain "github.com/suitespot/service-booking/internal/domain/review"
	roomDomain "github.com/suitespot/service-booking/internal/domain/room"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
	"github.com/suitespot/service-booking/internal/pkg/contracts"
)

const (
	DefaultTopReviews = 20
	MaxTopReviews     = 100
)

// SubmitReviewRequest holds the data needed to review a room.
type SubmitReviewRequest struct {
	RoomNo     string `json:"room_no" binding:"required,max=20"`
	GuestEmail string `json:"email" binding:"required,email"`
	GuestName  string `json:"name" binding:"max=200"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"max=2000"`
}

// ReviewDTO is the API response representation of a review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	RoomNo     string    `json:"room_no"`
	GuestEmail string    `json:"email"`
	GuestName  string    `json:"name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewService handles room review use cases.
type ReviewService struct {
	reviews   reviewDomain.ReviewRepository
	rooms     roomDomain.RoomRepository
	tx        Transactor
	publisher EventPublisher
	logger    *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews reviewDomain.ReviewRepository,
	rooms roomDomain.RoomRepository,
	tx Transactor,
	publisher EventPublisher,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		rooms:     rooms,
		tx:        tx,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitReview stores a guest's review of a room and bumps the room's review
// count in the same transaction. A second review of the same room by the same
// guest is refused with ALREADY_REVIEWED.
func (s *ReviewService) SubmitReview(ctx context.Context, callerEmail string, req SubmitReviewRequest) (*ReviewDTO, error) {
	rv, err := reviewDomain.NewReview(req.RoomNo, req.GuestEmail, req.GuestName, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if rv.GuestEmail() != strings.ToLower(strings.TrimSpace(callerEmail)) {
		return nil, apperror.NewForbiddenError("reviews can only be posted under your own email")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.rooms.FindByRoomNo(ctx, rv.RoomNo()); err != nil {
			return err
		}

		exists, err := s.reviews.ExistsForGuest(ctx, rv.GuestEmail(), rv.RoomNo())
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewAlreadyReviewed(rv.RoomNo())
		}

		if err := s.reviews.Save(ctx, rv); err != nil {
			if errors.Is(err, reviewDomain.ErrDuplicate) {
				return apperror.NewAlreadyReviewed(rv.RoomNo())
			}
			return err
		}
		return s.rooms.IncrementReviewCount(ctx, rv.RoomNo())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("review_id", rv.ID().String()),
		zap.String("room_no", rv.RoomNo()),
		zap.Int("rating", rv.Rating()),
	)

	publishEvent(ctx, s.publisher, s.logger, contracts.TopicReviewEvents, contracts.ReviewSubmitted, rv.RoomNo(),
		contracts.ReviewSubmittedEvent{
			ReviewID:   rv.ID(),
			RoomNo:     rv.RoomNo(),
			GuestEmail: rv.GuestEmail(),
			Rating:     rv.Rating(),
			OccurredAt: rv.CreatedAt(),
		})

	return toReviewDTO(rv), nil
}

// GetRoomReviews returns all reviews of a room, newest first.
func (s *ReviewService) GetRoomReviews(ctx context.Context, roomNo string) ([]*ReviewDTO, error) {
	reviews, err := s.reviews.FindByRoomNo(ctx, strings.TrimSpace(roomNo))
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

// GetTopReviews returns the most recent reviews across all rooms.
func (s *ReviewService) GetTopReviews(ctx context.Context, limit int) ([]*ReviewDTO, error) {
	if limit < 1 {
		limit = DefaultTopReviews
	}
	if limit > MaxTopReviews {
		limit = MaxTopReviews
	}
	reviews, err := s.reviews.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toReviewDTOs(reviews), nil
}

func toReviewDTO(r *reviewDomain.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:         r.ID(),
		RoomNo:     r.RoomNo(),
		GuestEmail: r.GuestEmail(),
		GuestName:  r.GuestName(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toReviewDTOs(reviews []*reviewDomain.Review) []*ReviewDTO {
	dtos := make([]*ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = toReviewDTO(r)
	}
	return dtos
}
