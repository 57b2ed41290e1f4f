// Package contracts holds the topic names, event types and payloads this
// service exchanges over Kafka.
package contracts

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicReviewEvents  = "review.events"
	TopicRoomCatalog   = "room.catalog"
)

// Event types.
const (
	BookingCreated      = "booking.created"
	BookingCancelled    = "booking.cancelled"
	BookingDatesChanged = "booking.dates_changed"
	ReviewSubmitted     = "review.submitted"
	RoomUpserted        = "room.upserted"
)

// BookingCreatedEvent is published after a booking is stored.
type BookingCreatedEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	RoomNo       string    `json:"room_no"`
	GuestEmail   string    `json:"guest_email"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	TotalPrice   int64     `json:"total_price"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published after a booking is deleted.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	RoomNo      string    `json:"room_no"`
	GuestEmail  string    `json:"guest_email"`
	CheckInDate time.Time `json:"check_in_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingDatesChangedEvent is published after a booking moves to new dates.
type BookingDatesChangedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	RoomNo          string    `json:"room_no"`
	GuestEmail      string    `json:"guest_email"`
	OldCheckInDate  time.Time `json:"old_check_in_date"`
	OldCheckOutDate time.Time `json:"old_check_out_date"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
	TotalPrice      int64     `json:"total_price"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReviewSubmittedEvent is published after a review and its counter update commit.
type ReviewSubmittedEvent struct {
	ReviewID   uuid.UUID `json:"review_id"`
	RoomNo     string    `json:"room_no"`
	GuestEmail string    `json:"guest_email"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoomUpsertedEvent carries a room definition from the catalog.
type RoomUpsertedEvent struct {
	RoomNo          string `json:"room_no"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
	RoomSize        string `json:"room_size"`
	Capacity        int    `json:"capacity"`
	PricePerNight   int64  `json:"price_per_night"`
	Offer           bool   `json:"offer"`
	DiscountPercent int    `json:"discount_percent"`
}
