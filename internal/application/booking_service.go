package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	roomDomain "github.com/suitespot/service-booking/internal/domain/room"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
	"github.com/suitespot/service-booking/internal/pkg/contracts"
)

// CreateBookingRequest holds the data needed to reserve a room.
type CreateBookingRequest struct {
	RoomNo       string `json:"room_no" binding:"required,max=20"`
	GuestEmail   string `json:"email" binding:"required,email"`
	GuestName    string `json:"name" binding:"max=200"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required,stayorder=CheckInDate"`
}

// UpdateDatesRequest holds the data needed to move a booking to new dates.
type UpdateDatesRequest struct {
	BookingID    string `json:"booking_id" binding:"required,uuid"`
	RoomNo       string `json:"room_no" binding:"max=20"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required,stayorder=CheckInDate"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID           uuid.UUID `json:"id"`
	RoomNo       string    `json:"room_no"`
	GuestEmail   string    `json:"email"`
	GuestName    string    `json:"name,omitempty"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Nights       int       `json:"nights"`
	TotalPrice   int64     `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CancelResultDTO reports a completed cancellation.
type CancelResultDTO struct {
	BookingID uuid.UUID `json:"booking_id"`
	Deleted   bool      `json:"deleted"`
}

// BookingService orchestrates the booking lifecycle: create, cancel and date changes.
type BookingService struct {
	bookings     bookingDomain.BookingRepository
	rooms        roomDomain.RoomRepository
	availability *AvailabilityChecker
	pricing      bookingDomain.PricingStrategy
	tx           Transactor
	publisher    EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	rooms roomDomain.RoomRepository,
	pricing bookingDomain.PricingStrategy,
	tx Transactor,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		rooms:        rooms,
		availability: NewAvailabilityChecker(bookings),
		pricing:      pricing,
		tx:           tx,
		publisher:    publisher,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking reserves a room after checking that no existing booking overlaps the stay.
// The room row is locked for the check-and-insert, so two requests for the
// same room cannot both pass the availability check.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	stay, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	roomNo := strings.TrimSpace(req.RoomNo)

	var bk *bookingDomain.Booking
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rm, err := s.rooms.LockByRoomNo(ctx, roomNo)
		if err != nil {
			return err
		}

		conflict, err := s.availability.HasConflict(ctx, rm.RoomNo(), stay, nil)
		if err != nil {
			return err
		}
		if conflict {
			return apperror.NewScheduleConflict(rm.RoomNo())
		}

		total, err := s.priceStay(rm, stay)
		if err != nil {
			return err
		}

		bk, err = bookingDomain.NewBooking(rm.RoomNo(), req.GuestEmail, req.GuestName, stay, total)
		if err != nil {
			return err
		}
		if err := s.bookings.Save(ctx, bk); err != nil {
			return err
		}
		return s.rooms.SetStatus(ctx, rm.RoomNo(), roomDomain.StatusBooked)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_no", bk.RoomNo()),
		zap.Time("check_in", stay.CheckIn),
		zap.Time("check_out", stay.CheckOut),
	)

	publishEvent(ctx, s.publisher, s.logger, contracts.TopicBookingEvents, contracts.BookingCreated, bk.ID().String(),
		contracts.BookingCreatedEvent{
			BookingID:    bk.ID(),
			RoomNo:       bk.RoomNo(),
			GuestEmail:   bk.GuestEmail(),
			CheckInDate:  stay.CheckIn,
			CheckOutDate: stay.CheckOut,
			TotalPrice:   bk.TotalPrice(),
			OccurredAt:   s.now(),
		})

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking deletes a booking held by callerEmail. Inside the notice
// window the booking is kept and a NOTICE_TOO_SHORT refusal is returned.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, callerEmail string) (*CancelResultDTO, error) {
	var bk *bookingDomain.Booking
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !bk.IsHeldBy(callerEmail) {
			return apperror.NewForbiddenError("booking does not belong to this guest")
		}
		if !bk.CanCancelAt(s.now()) {
			return apperror.NewNoticeTooShort()
		}

		if err := s.bookings.Delete(ctx, bk.ID()); err != nil {
			return err
		}

		remaining, err := s.bookings.CountByRoomNo(ctx, bk.RoomNo())
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		if err := s.rooms.SetStatus(ctx, bk.RoomNo(), roomDomain.StatusAvailable); err != nil {
			if apperror.IsNotFound(err) {
				s.logger.Warn("cancelled booking references a missing room",
					zap.String("booking_id", bk.ID().String()),
					zap.String("room_no", bk.RoomNo()),
				)
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_no", bk.RoomNo()),
	)

	publishEvent(ctx, s.publisher, s.logger, contracts.TopicBookingEvents, contracts.BookingCancelled, bk.ID().String(),
		contracts.BookingCancelledEvent{
			BookingID:   bk.ID(),
			RoomNo:      bk.RoomNo(),
			GuestEmail:  bk.GuestEmail(),
			CheckInDate: bk.Stay().CheckIn,
			OccurredAt:  s.now(),
		})

	return &CancelResultDTO{BookingID: bk.ID(), Deleted: true}, nil
}

// UpdateDates moves a booking to a new stay. Its own current range is ignored
// by the availability check.
func (s *BookingService) UpdateDates(ctx context.Context, callerEmail string, req UpdateDatesRequest) (*BookingDTO, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperror.NewValidationError("invalid booking ID")
	}
	stay, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	var (
		bk       *bookingDomain.Booking
		previous bookingDomain.StayPeriod
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bk, err = s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !bk.IsHeldBy(callerEmail) {
			return apperror.NewForbiddenError("booking does not belong to this guest")
		}
		if roomNo := strings.TrimSpace(req.RoomNo); roomNo != "" && roomNo != bk.RoomNo() {
			return apperror.NewValidationError(fmt.Sprintf("booking %s is for room %s, not %s", bk.ID(), bk.RoomNo(), roomNo))
		}

		rm, err := s.rooms.LockByRoomNo(ctx, bk.RoomNo())
		if err != nil {
			return err
		}

		id := bk.ID()
		conflict, err := s.availability.HasConflict(ctx, bk.RoomNo(), stay, &id)
		if err != nil {
			return err
		}
		if conflict {
			return apperror.NewScheduleConflict(bk.RoomNo())
		}

		total, err := s.priceStay(rm, stay)
		if err != nil {
			return err
		}

		previous = bk.Stay()
		if err := bk.Reschedule(stay, total); err != nil {
			return err
		}
		return s.bookings.UpdateStay(ctx, bk)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking dates changed",
		zap.String("booking_id", bk.ID().String()),
		zap.String("room_no", bk.RoomNo()),
		zap.Time("check_in", stay.CheckIn),
		zap.Time("check_out", stay.CheckOut),
	)

	publishEvent(ctx, s.publisher, s.logger, contracts.TopicBookingEvents, contracts.BookingDatesChanged, bk.ID().String(),
		contracts.BookingDatesChangedEvent{
			BookingID:       bk.ID(),
			RoomNo:          bk.RoomNo(),
			GuestEmail:      bk.GuestEmail(),
			OldCheckInDate:  previous.CheckIn,
			OldCheckOutDate: previous.CheckOut,
			CheckInDate:     stay.CheckIn,
			CheckOutDate:    stay.CheckOut,
			TotalPrice:      bk.TotalPrice(),
			OccurredAt:      s.now(),
		})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetGuestBookings returns the bookings held by a guest, newest first.
func (s *BookingService) GetGuestBookings(ctx context.Context, email string) ([]BookingDTO, error) {
	bookings, err := s.bookings.FindByGuestEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(bookings), nil
}

// --- Helpers ---

func (s *BookingService) priceStay(rm *roomDomain.Room, stay bookingDomain.StayPeriod) (int64, error) {
	total, err := s.pricing.Calculate(bookingDomain.PricingParams{
		NightlyRate:     rm.PricePerNight(),
		Nights:          stay.Nights(),
		Offer:           rm.Offer(),
		DiscountPercent: rm.DiscountPercent(),
	})
	if err != nil {
		return 0, apperror.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}
	return total, nil
}

func parseStay(checkIn, checkOut string) (bookingDomain.StayPeriod, error) {
	in, err := bookingDomain.ParseDate(checkIn)
	if err != nil {
		return bookingDomain.StayPeriod{}, err
	}
	out, err := bookingDomain.ParseDate(checkOut)
	if err != nil {
		return bookingDomain.StayPeriod{}, err
	}
	return bookingDomain.NewStayPeriod(in, out)
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:           bk.ID(),
		RoomNo:       bk.RoomNo(),
		GuestEmail:   bk.GuestEmail(),
		GuestName:    bk.GuestName(),
		CheckInDate:  bk.Stay().CheckIn,
		CheckOutDate: bk.Stay().CheckOut,
		Nights:       bk.Stay().Nights(),
		TotalPrice:   bk.TotalPrice(),
		CreatedAt:    bk.CreatedAt(),
		UpdatedAt:    bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
