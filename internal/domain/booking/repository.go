package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByRoomNo retrieves every booking of a room.
	FindByRoomNo(ctx context.Context, roomNo string) ([]*Booking, error)

	// FindByGuestEmail retrieves a guest's bookings, newest first.
	FindByGuestEmail(ctx context.Context, email string) ([]*Booking, error)

	// ListAll retrieves every booking.
	ListAll(ctx context.Context) ([]*Booking, error)

	// CountByRoomNo returns how many bookings a room has.
	CountByRoomNo(ctx context.Context, roomNo string) (int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// UpdateStay overwrites the stay dates and price of an existing booking.
	// It fails with a not-found error when no record matched.
	UpdateStay(ctx context.Context, booking *Booking) error

	// Delete removes a booking. It fails with a not-found error when no record matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
