package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// Booking is the aggregate root for a guest's reservation of one room.
// A booking has no status of its own: it exists until it is cancelled, and
// cancellation deletes it.
type Booking struct {
	id         uuid.UUID
	roomNo     string
	guestEmail string
	guestName  string
	stay       StayPeriod
	totalPrice int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking creates a new Booking for an already validated stay.
func NewBooking(roomNo, guestEmail, guestName string, stay StayPeriod, totalPrice int64) (*Booking, error) {
	roomNo = strings.TrimSpace(roomNo)
	guestEmail = strings.ToLower(strings.TrimSpace(guestEmail))

	if roomNo == "" {
		return nil, apperror.NewValidationError("room number is required")
	}
	if guestEmail == "" {
		return nil, apperror.NewValidationError("guest email is required")
	}
	if !stay.CheckIn.Before(stay.CheckOut) {
		return nil, apperror.NewValidationError("check-in date must be before check-out date")
	}
	if totalPrice < 0 {
		return nil, apperror.NewValidationError("total price cannot be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:         uuid.New(),
		roomNo:     roomNo,
		guestEmail: guestEmail,
		guestName:  strings.TrimSpace(guestName),
		stay:       stay,
		totalPrice: totalPrice,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	roomNo string,
	guestEmail string,
	guestName string,
	stay StayPeriod,
	totalPrice int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		roomNo:     roomNo,
		guestEmail: guestEmail,
		guestName:  guestName,
		stay:       stay,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomNo returns the number of the booked room.
func (b *Booking) RoomNo() string { return b.roomNo }

// GuestEmail returns the identity of the guest who holds the booking.
func (b *Booking) GuestEmail() string { return b.guestEmail }

// GuestName returns the guest's display name.
func (b *Booking) GuestName() string { return b.guestName }

// Stay returns the booked period.
func (b *Booking) Stay() StayPeriod { return b.stay }

// TotalPrice returns the informational price of the stay in minor units.
func (b *Booking) TotalPrice() int64 { return b.totalPrice }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsHeldBy reports whether the booking belongs to the given guest.
func (b *Booking) IsHeldBy(email string) bool {
	return b.guestEmail == strings.ToLower(strings.TrimSpace(email))
}

// CanCancelAt reports whether the notice rule allows cancelling at now:
// cancellation is refused once now is strictly after check-in minus one day.
func (b *Booking) CanCancelAt(now time.Time) bool {
	return !now.After(b.stay.CancellationDeadline())
}

// Reschedule moves the booking to a new stay with its recalculated price.
func (b *Booking) Reschedule(stay StayPeriod, totalPrice int64) error {
	if !stay.CheckIn.Before(stay.CheckOut) {
		return apperror.NewValidationError("check-in date must be before check-out date")
	}
	b.stay = stay
	b.totalPrice = totalPrice
	b.updatedAt = time.Now().UTC()
	return nil
}
