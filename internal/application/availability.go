package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
)

// AvailabilityChecker decides whether a stay collides with a room's bookings.
type AvailabilityChecker struct {
	bookings bookingDomain.BookingRepository
}

// NewAvailabilityChecker creates a new AvailabilityChecker.
func NewAvailabilityChecker(bookings bookingDomain.BookingRepository) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// HasConflict reports whether stay overlaps any booking of roomNo other than
// excludeID. Boundaries count: a stay starting on another's check-out day conflicts.
func (a *AvailabilityChecker) HasConflict(ctx context.Context, roomNo string, stay bookingDomain.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	existing, err := a.bookings.FindByRoomNo(ctx, roomNo)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings of room %s: %w", roomNo, err)
	}
	for _, bk := range existing {
		if excludeID != nil && bk.ID() == *excludeID {
			continue
		}
		if bk.Stay().Overlaps(stay) {
			return true, nil
		}
	}
	return false, nil
}

// anyOverlap reports whether any of the stays overlaps window.
func anyOverlap(stays []bookingDomain.StayPeriod, window bookingDomain.StayPeriod) bool {
	for _, s := range stays {
		if s.Overlaps(window) {
			return true
		}
	}
	return false
}
