package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomNo       string    `gorm:"type:varchar(20);not null;index:idx_bookings_room_stay,priority:1"`
	GuestEmail   string    `gorm:"type:varchar(320);not null;index"`
	GuestName    string    `gorm:"type:varchar(200)"`
	CheckInDate  time.Time `gorm:"not null;index:idx_bookings_room_stay,priority:2"`
	CheckOutDate time.Time `gorm:"not null"`
	TotalPrice   int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// FindByRoomNo retrieves all bookings of a room ordered by check-in.
func (r *GormBookingRepository) FindByRoomNo(ctx context.Context, roomNo string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := conn(ctx, r.db).
		Where("room_no = ?", roomNo).
		Order("check_in_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByGuestEmail retrieves a guest's bookings, newest first.
func (r *GormBookingRepository) FindByGuestEmail(ctx context.Context, email string) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := conn(ctx, r.db).
		Where("guest_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find guest bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// ListAll retrieves every booking ordered by room and check-in.
func (r *GormBookingRepository) ListAll(ctx context.Context) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := conn(ctx, r.db).
		Order("room_no ASC").
		Order("check_in_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// CountByRoomNo returns how many bookings a room has.
func (r *GormBookingRepository) CountByRoomNo(ctx context.Context, roomNo string) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&BookingModel{}).Where("room_no = ?", roomNo).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count room bookings: %w", err)
	}
	return count, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// UpdateStay overwrites the dates and price of an existing booking.
func (r *GormBookingRepository) UpdateStay(ctx context.Context, bk *bookingDomain.Booking) error {
	result := conn(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ?", bk.ID()).
		Updates(map[string]interface{}{
			"check_in_date":  bk.Stay().CheckIn,
			"check_out_date": bk.Stay().CheckOut,
			"total_price":    bk.TotalPrice(),
			"updated_at":     bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Booking", bk.ID().String())
	}
	return nil
}

// Delete removes a booking permanently.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:           bk.ID(),
		RoomNo:       bk.RoomNo(),
		GuestEmail:   bk.GuestEmail(),
		GuestName:    bk.GuestName(),
		CheckInDate:  bk.Stay().CheckIn,
		CheckOutDate: bk.Stay().CheckOut,
		TotalPrice:   bk.TotalPrice(),
		CreatedAt:    bk.CreatedAt(),
		UpdatedAt:    bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.RoomNo,
		m.GuestEmail,
		m.GuestName,
		bookingDomain.StayPeriod{CheckIn: m.CheckInDate.UTC(), CheckOut: m.CheckOutDate.UTC()},
		m.TotalPrice,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainBookings(models []BookingModel) []*bookingDomain.Booking {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings
}
