package application

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	"github.com/suitespot/service-booking/internal/pkg/cache"
	"github.com/suitespot/service-booking/internal/pkg/kafka"
	"github.com/suitespot/service-booking/internal/repository"
	"github.com/suitespot/service-booking/internal/testutil"
)

type publishedEvent struct {
	Topic string
	Event kafka.CloudEvent
}

// capturePublisher records every event instead of sending it.
type capturePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *capturePublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *capturePublisher) ofType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Event.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// memoryCache is a map-backed cache.Cache that counts reads served from memory.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, v interface{}, _ time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// testStack wires the three services over one in-memory database.
type testStack struct {
	bookings  *BookingService
	reviews   *ReviewService
	rooms     *RoomService
	publisher *capturePublisher
	roomRepo  *repository.GormRoomRepository
	bookRepo  *repository.GormBookingRepository
}

func newTestStack(t *testing.T, c cache.Cache) *testStack {
	t.Helper()
	db := testutil.NewDB(t)
	logger := zap.NewNop()

	roomRepo := repository.NewGormRoomRepository(db)
	bookRepo := repository.NewGormBookingRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	tx := repository.NewGormTransactor(db)
	pub := &capturePublisher{}

	if c == nil {
		c = cache.Noop{}
	}

	return &testStack{
		bookings:  NewBookingService(bookRepo, roomRepo, bookingDomain.NewStandardPricingStrategy(), tx, pub, logger),
		reviews:   NewReviewService(reviewRepo, roomRepo, tx, pub, logger),
		rooms:     NewRoomService(roomRepo, bookRepo, c, time.Minute, logger),
		publisher: pub,
		roomRepo:  roomRepo,
		bookRepo:  bookRepo,
	}
}

func (s *testStack) addRoom(t *testing.T, req UpsertRoomRequest) *RoomDTO {
	t.Helper()
	dto, err := s.rooms.UpsertRoom(context.Background(), req)
	require.NoError(t, err)
	return dto
}

func (s *testStack) book(t *testing.T, roomNo, email, checkIn, checkOut string) *BookingDTO {
	t.Helper()
	dto, err := s.bookings.CreateBooking(context.Background(), CreateBookingRequest{
		RoomNo: roomNo, GuestEmail: email, CheckInDate: checkIn, CheckOutDate: checkOut,
	})
	require.NoError(t, err)
	return dto
}

func (s *testStack) bookingCount(t *testing.T, roomNo string) int64 {
	t.Helper()
	n, err := s.bookRepo.CountByRoomNo(context.Background(), roomNo)
	require.NoError(t, err)
	return n
}

func fixedClock(at string) func() time.Time {
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
