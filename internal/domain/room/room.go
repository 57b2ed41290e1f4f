package room

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// Room is the aggregate root for a bookable hotel room. Rooms are created
// out-of-band (seed data, catalog events); this service only changes their
// status and review count.
type Room struct {
	id              uuid.UUID
	roomNo          string
	title           string
	description     string
	imageURL        string
	roomSize        string
	capacity        int
	pricePerNight   int64
	offer           bool
	discountPercent int
	status          RoomStatus
	reviewCount     int
	createdAt       time.Time
	updatedAt       time.Time
}

// Details holds the descriptive and pricing fields of a room.
type Details struct {
	Title           string
	Description     string
	ImageURL        string
	RoomSize        string
	Capacity        int
	PricePerNight   int64
	Offer           bool
	DiscountPercent int
}

// NewRoom creates an available room with no reviews.
func NewRoom(roomNo string, d Details) (*Room, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, apperror.NewValidationError("room number is required")
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &Room{
		id:        uuid.New(),
		roomNo:    roomNo,
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}
	r.apply(d)
	return r, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	roomNo string,
	d Details,
	status RoomStatus,
	reviewCount int,
	createdAt, updatedAt time.Time,
) *Room {
	r := &Room{
		id:          id,
		roomNo:      roomNo,
		status:      status,
		reviewCount: reviewCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
	r.apply(d)
	return r
}

// --- Getters ---

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) RoomNo() string       { return r.roomNo }
func (r *Room) Title() string        { return r.title }
func (r *Room) Description() string  { return r.description }
func (r *Room) ImageURL() string     { return r.imageURL }
func (r *Room) RoomSize() string     { return r.roomSize }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) PricePerNight() int64 { return r.pricePerNight }
func (r *Room) Offer() bool          { return r.offer }
func (r *Room) DiscountPercent() int { return r.discountPercent }
func (r *Room) Status() RoomStatus   { return r.status }
func (r *Room) ReviewCount() int     { return r.reviewCount }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// Details returns the descriptive and pricing fields.
func (r *Room) Details() Details {
	return Details{
		Title:           r.title,
		Description:     r.description,
		ImageURL:        r.imageURL,
		RoomSize:        r.roomSize,
		Capacity:        r.capacity,
		PricePerNight:   r.pricePerNight,
		Offer:           r.offer,
		DiscountPercent: r.discountPercent,
	}
}

// --- Behavior ---

// UpdateDetails replaces the catalog fields. Status and review count are kept.
func (r *Room) UpdateDetails(d Details) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.apply(d)
	r.updatedAt = time.Now().UTC()
	return nil
}

func (r *Room) apply(d Details) {
	r.title = strings.TrimSpace(d.Title)
	r.description = d.Description
	r.imageURL = d.ImageURL
	r.roomSize = d.RoomSize
	r.capacity = d.Capacity
	r.pricePerNight = d.PricePerNight
	r.offer = d.Offer
	r.discountPercent = d.DiscountPercent
}

func (d Details) validate() error {
	if d.PricePerNight < 0 {
		return apperror.NewValidationError("price per night cannot be negative")
	}
	if d.DiscountPercent < 0 || d.DiscountPercent > 100 {
		return apperror.NewValidationError("discount must be between 0 and 100 percent")
	}
	if d.Capacity < 0 {
		return apperror.NewValidationError("capacity cannot be negative")
	}
	return nil
}
