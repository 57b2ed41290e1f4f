package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	r, err := NewRoom(" 101 ", Details{Title: " Standard Queen ", PricePerNight: 12000, Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, "101", r.RoomNo())
	assert.Equal(t, "Standard Queen", r.Title())
	assert.Equal(t, StatusAvailable, r.Status())
	assert.Zero(t, r.ReviewCount())

	_, err = NewRoom(" ", Details{})
	assert.Error(t, err)

	_, err = NewRoom("102", Details{PricePerNight: -1})
	assert.Error(t, err)

	_, err = NewRoom("102", Details{DiscountPercent: 101})
	assert.Error(t, err)
}

func TestRoom_UpdateDetailsKeepsStatus(t *testing.T) {
	r, err := NewRoom("101", Details{Title: "Standard Queen", PricePerNight: 12000})
	require.NoError(t, err)
	r.status = StatusBooked
	r.reviewCount = 3

	require.NoError(t, r.UpdateDetails(Details{Title: "Superior Queen", PricePerNight: 14000, Offer: true, DiscountPercent: 10}))
	assert.Equal(t, "Superior Queen", r.Title())
	assert.True(t, r.Offer())
	assert.Equal(t, StatusBooked, r.Status())
	assert.Equal(t, 3, r.ReviewCount())

	assert.Error(t, r.UpdateDetails(Details{Capacity: -2}))
	assert.Equal(t, int64(14000), r.PricePerNight(), "rejected update leaves the room unchanged")
}

func TestParseRoomStatus(t *testing.T) {
	s, err := ParseRoomStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, s)

	s, err = ParseRoomStatus("Booked")
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, s)

	_, err = ParseRoomStatus("Cleaning")
	assert.Error(t, err)
}
