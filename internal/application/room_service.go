package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	roomDomain "github.com/suitespot/service-booking/internal/domain/room"
	"github.com/suitespot/service-booking/internal/pkg/apperror"
	"github.com/suitespot/service-booking/internal/pkg/cache"
)

const (
	DefaultFeaturedRooms = 6
	MaxFeaturedRooms     = 50

	featuredCacheKey = "featured-rooms"
)

// RoomFilterQuery holds the query parameters of the room filter.
type RoomFilterQuery struct {
	Sort     string `form:"filter" binding:"omitempty,oneof=asc dsc"`
	Offer    bool   `form:"offer"`
	FromDate string `form:"fromDate" binding:"required_with=ToDate"`
	ToDate   string `form:"toDate" binding:"required_with=FromDate"`
}

// UpsertRoomRequest describes a room from the catalog.
type UpsertRoomRequest struct {
	RoomNo          string `json:"room_no" binding:"required,max=20"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
	RoomSize        string `json:"room_size"`
	Capacity        int    `json:"capacity" binding:"min=0"`
	PricePerNight   int64  `json:"price_per_night" binding:"min=0"`
	Offer           bool   `json:"offer"`
	DiscountPercent int    `json:"discount_percent" binding:"min=0,max=100"`
}

// DateRangeDTO is a booked stay shown alongside a room.
type DateRangeDTO struct {
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
}

// RoomDTO is the API response representation of a room.
type RoomDTO struct {
	ID              uuid.UUID      `json:"id"`
	RoomNo          string         `json:"room_no"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	ImageURL        string         `json:"image_url,omitempty"`
	RoomSize        string         `json:"room_size,omitempty"`
	Capacity        int            `json:"capacity"`
	PricePerNight   int64          `json:"price_per_night"`
	Offer           bool           `json:"offer"`
	DiscountPercent int            `json:"discount_percent"`
	Status          string         `json:"status"`
	ReviewCount     int            `json:"review_count"`
	Bookings        []DateRangeDTO `json:"bookings,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// RoomService serves the read side of the room catalog and applies catalog updates.
type RoomService struct {
	rooms    roomDomain.RoomRepository
	bookings bookingDomain.BookingRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewRoomService creates a new RoomService. Pass cache.Noop{} to disable caching.
func NewRoomService(
	rooms roomDomain.RoomRepository,
	bookings bookingDomain.BookingRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		bookings: bookings,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListRooms returns every room. With withBookings set, each room carries the
// date ranges it is booked for.
func (s *RoomService) ListRooms(ctx context.Context, withBookings bool) ([]*RoomDTO, error) {
	rooms, err := s.rooms.List(ctx, roomDomain.ListFilter{})
	if err != nil {
		return nil, err
	}
	if !withBookings {
		return toRoomDTOs(rooms), nil
	}

	stays, err := s.staysByRoom(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*RoomDTO, len(rooms))
	for i, rm := range rooms {
		dto := toRoomDTO(rm)
		dto.Bookings = make([]DateRangeDTO, 0, len(stays[rm.RoomNo()]))
		for _, st := range stays[rm.RoomNo()] {
			dto.Bookings = append(dto.Bookings, DateRangeDTO{CheckInDate: st.CheckIn, CheckOutDate: st.CheckOut})
		}
		dtos[i] = dto
	}
	return dtos, nil
}

// GetFeaturedRooms returns the limit most expensive rooms.
func (s *RoomService) GetFeaturedRooms(ctx context.Context, limit int) ([]*RoomDTO, error) {
	if limit < 1 {
		limit = DefaultFeaturedRooms
	}
	if limit > MaxFeaturedRooms {
		limit = MaxFeaturedRooms
	}

	var cached []*RoomDTO
	hit, err := s.cache.Get(ctx, featuredCacheKey, &cached)
	if err != nil {
		s.logger.Warn("featured rooms cache read failed", zap.Error(err))
	}
	if hit {
		return truncateRooms(cached, limit), nil
	}

	rooms, err := s.rooms.TopByPrice(ctx, MaxFeaturedRooms)
	if err != nil {
		return nil, err
	}
	dtos := toRoomDTOs(rooms)
	if err := s.cache.Set(ctx, featuredCacheKey, dtos, s.cacheTTL); err != nil {
		s.logger.Warn("featured rooms cache write failed", zap.Error(err))
	}
	return truncateRooms(dtos, limit), nil
}

// GetRoom returns a room by its record key.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	rm, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoomDTO(rm), nil
}

// FilterRooms sorts rooms by price, keeps only rooms on offer when asked, and
// drops rooms with any booking overlapping [FromDate, ToDate].
func (s *RoomService) FilterRooms(ctx context.Context, q RoomFilterQuery) ([]*RoomDTO, error) {
	window, hasWindow, err := parseWindow(q.FromDate, q.ToDate)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.List(ctx, roomDomain.ListFilter{
		Sort:      roomDomain.SortOrder(q.Sort),
		OfferOnly: q.Offer,
	})
	if err != nil {
		return nil, err
	}
	if !hasWindow {
		return toRoomDTOs(rooms), nil
	}

	stays, err := s.staysByRoom(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*RoomDTO, 0, len(rooms))
	for _, rm := range rooms {
		if anyOverlap(stays[rm.RoomNo()], window) {
			continue
		}
		dtos = append(dtos, toRoomDTO(rm))
	}
	return dtos, nil
}

// UpsertRoom creates a room or refreshes the catalog fields of an existing one.
func (s *RoomService) UpsertRoom(ctx context.Context, req UpsertRoomRequest) (*RoomDTO, error) {
	details := roomDomain.Details{
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		RoomSize:        req.RoomSize,
		Capacity:        req.Capacity,
		PricePerNight:   req.PricePerNight,
		Offer:           req.Offer,
		DiscountPercent: req.DiscountPercent,
	}

	rm, err := s.rooms.FindByRoomNo(ctx, strings.TrimSpace(req.RoomNo))
	switch {
	case apperror.IsNotFound(err):
		rm, err = roomDomain.NewRoom(req.RoomNo, details)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := rm.UpdateDetails(details); err != nil {
			return nil, err
		}
	}

	if err := s.rooms.Upsert(ctx, rm); err != nil {
		return nil, err
	}
	if err := s.cache.Del(ctx, featuredCacheKey); err != nil {
		s.logger.Warn("featured rooms cache invalidation failed", zap.Error(err))
	}

	stored, err := s.rooms.FindByRoomNo(ctx, rm.RoomNo())
	if err != nil {
		return nil, err
	}
	s.logger.Info("room upserted", zap.String("room_no", stored.RoomNo()))
	return toRoomDTO(stored), nil
}

// --- Helpers ---

func (s *RoomService) staysByRoom(ctx context.Context) (map[string][]bookingDomain.StayPeriod, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stays := make(map[string][]bookingDomain.StayPeriod)
	for _, bk := range bookings {
		stays[bk.RoomNo()] = append(stays[bk.RoomNo()], bk.Stay())
	}
	return stays, nil
}

// parseWindow accepts both dates or neither. A one-day window (from == to) is allowed.
func parseWindow(from, to string) (bookingDomain.StayPeriod, bool, error) {
	if from == "" && to == "" {
		return bookingDomain.StayPeriod{}, false, nil
	}
	if from == "" || to == "" {
		return bookingDomain.StayPeriod{}, false, apperror.NewValidationError("fromDate and toDate must be given together")
	}
	start, err := bookingDomain.ParseDate(from)
	if err != nil {
		return bookingDomain.StayPeriod{}, false, err
	}
	end, err := bookingDomain.ParseDate(to)
	if err != nil {
		return bookingDomain.StayPeriod{}, false, err
	}
	if end.Before(start) {
		return bookingDomain.StayPeriod{}, false, apperror.NewValidationError("fromDate must not be after toDate")
	}
	return bookingDomain.StayPeriod{CheckIn: start, CheckOut: end}, true, nil
}

func truncateRooms(rooms []*RoomDTO, limit int) []*RoomDTO {
	if len(rooms) > limit {
		return rooms[:limit]
	}
	return rooms
}

func toRoomDTO(rm *roomDomain.Room) *RoomDTO {
	return &RoomDTO{
		ID:              rm.ID(),
		RoomNo:          rm.RoomNo(),
		Title:           rm.Title(),
		Description:     rm.Description(),
		ImageURL:        rm.ImageURL(),
		RoomSize:        rm.RoomSize(),
		Capacity:        rm.Capacity(),
		PricePerNight:   rm.PricePerNight(),
		Offer:           rm.Offer(),
		DiscountPercent: rm.DiscountPercent(),
		Status:          rm.Status().String(),
		ReviewCount:     rm.ReviewCount(),
		CreatedAt:       rm.CreatedAt(),
		UpdatedAt:       rm.UpdatedAt(),
	}
}

func toRoomDTOs(rooms []*roomDomain.Room) []*RoomDTO {
	dtos := make([]*RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos
}
