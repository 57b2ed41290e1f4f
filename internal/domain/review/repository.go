package review

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Save when the guest already reviewed the room.
var ErrDuplicate = errors.New("review already exists for this guest and room")

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Save(ctx context.Context, review *Review) error
	ExistsForGuest(ctx context.Context, guestEmail, roomNo string) (bool, error)

	// FindByRoomNo returns a room's reviews, newest first.
	FindByRoomNo(ctx context.Context, roomNo string) ([]*Review, error)

	// ListRecent returns reviews across all rooms, newest first. limit <= 0 means no limit.
	ListRecent(ctx context.Context, limit int) ([]*Review, error)

	CountByRoomNo(ctx context.Context, roomNo string) (int64, error)
}
