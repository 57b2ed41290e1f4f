package room

import (
	"context"

	"github.com/google/uuid"
)

// SortOrder selects the price ordering of a room listing.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "dsc"
)

// ListFilter narrows a room listing.
type ListFilter struct {
	Sort      SortOrder
	OfferOnly bool
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByRoomNo(ctx context.Context, roomNo string) (*Room, error)

	// LockByRoomNo loads the room and holds a row lock on it until the
	// surrounding transaction ends. Outside a transaction it behaves like FindByRoomNo.
	LockByRoomNo(ctx context.Context, roomNo string) (*Room, error)

	List(ctx context.Context, filter ListFilter) ([]*Room, error)

	// TopByPrice returns the limit most expensive rooms.
	TopByPrice(ctx context.Context, limit int) ([]*Room, error)

	// Upsert inserts the room or updates the catalog fields of the room with the same number.
	Upsert(ctx context.Context, room *Room) error

	SetStatus(ctx context.Context, roomNo string, status RoomStatus) error

	// IncrementReviewCount atomically adds one to the room's review counter.
	IncrementReviewCount(ctx context.Context, roomNo string) error
}
