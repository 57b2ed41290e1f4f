package review

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a guest's rating of a room. A guest reviews a given room at most
// once; reviews are never edited or removed.
type Review struct {
	id         uuid.UUID
	roomNo     string
	guestEmail string
	guestName  string
	rating     int
	comment    string
	createdAt  time.Time
}

// NewReview creates a new review.
func NewReview(roomNo, guestEmail, guestName string, rating int, comment string) (*Review, error) {
	roomNo = strings.TrimSpace(roomNo)
	guestEmail = strings.ToLower(strings.TrimSpace(guestEmail))

	if roomNo == "" {
		return nil, apperror.NewValidationError("room number is required")
	}
	if guestEmail == "" {
		return nil, apperror.NewValidationError("guest email is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, apperror.NewValidationError("rating must be between 1 and 5")
	}

	return &Review{
		id:         uuid.New(),
		roomNo:     roomNo,
		guestEmail: guestEmail,
		guestName:  strings.TrimSpace(guestName),
		rating:     rating,
		comment:    strings.TrimSpace(comment),
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence.
func Reconstruct(id uuid.UUID, roomNo, guestEmail, guestName string, rating int, comment string, createdAt time.Time) *Review {
	return &Review{
		id:         id,
		roomNo:     roomNo,
		guestEmail: guestEmail,
		guestName:  guestName,
		rating:     rating,
		comment:    comment,
		createdAt:  createdAt,
	}
}

// Getters.
func (r *Review) ID() uuid.UUID        { return r.id }
func (r *Review) RoomNo() string       { return r.roomNo }
func (r *Review) GuestEmail() string   { return r.guestEmail }
func (r *Review) GuestName() string    { return r.guestName }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }
