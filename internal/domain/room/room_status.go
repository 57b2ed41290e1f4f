package room

import "fmt"

// RoomStatus is the advisory occupancy label shown to guests. It never decides
// whether a stay can be booked; bookings themselves are the authority.
type RoomStatus string

const (
	StatusAvailable RoomStatus = "Available"
	StatusBooked    RoomStatus = "Booked"
)

// IsValid returns true if the status is a recognized room status.
func (s RoomStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBooked:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s RoomStatus) String() string {
	return string(s)
}

// ParseRoomStatus converts a string to a RoomStatus. An empty string means Available.
func ParseRoomStatus(s string) (RoomStatus, error) {
	if s == "" {
		return StatusAvailable, nil
	}
	status := RoomStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid room status: %s", s)
	}
	return status, nil
}
