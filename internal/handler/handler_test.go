package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/application"
	bookingDomain "github.com/suitespot/service-booking/internal/domain/booking"
	"github.com/suitespot/service-booking/internal/handler"
	"github.com/suitespot/service-booking/internal/pkg/auth"
	"github.com/suitespot/service-booking/internal/pkg/cache"
	"github.com/suitespot/service-booking/internal/pkg/response"
	"github.com/suitespot/service-booking/internal/repository"
	"github.com/suitespot/service-booking/internal/testutil"
)

type testServer struct {
	router *gin.Engine
	jwt    *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler.RegisterValidators()

	db := testutil.NewDB(t)
	logger := zap.NewNop()
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	tx := repository.NewGormTransactor(db)
	pub := application.NoopPublisher{}

	roomSvc := application.NewRoomService(roomRepo, bookingRepo, cache.Noop{}, time.Minute, logger)
	bookingSvc := application.NewBookingService(bookingRepo, roomRepo, bookingDomain.NewStandardPricingStrategy(), tx, pub, logger)
	reviewSvc := application.NewReviewService(reviewRepo, roomRepo, tx, pub, logger)

	_, err := roomSvc.UpsertRoom(t.Context(), application.UpsertRoomRequest{RoomNo: "101", Title: "Standard Queen", PricePerNight: 12000})
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager("handler-test-secret", time.Hour)

	router := gin.New()
	api := router.Group("/")
	handler.NewSessionHandler(jwtManager, false).RegisterRoutes(api)
	handler.NewRoomHandler(roomSvc).RegisterRoutes(api)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api, jwtManager)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(api, jwtManager)

	return &testServer{router: router, jwt: jwtManager}
}

func (s *testServer) do(t *testing.T, method, path, asEmail string, body interface{}) (*httptest.ResponseRecorder, response.Body) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asEmail != "" {
		token, err := s.jwt.GenerateToken(asEmail)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded response.Body
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func bookingBody(email, in, out string) gin.H {
	return gin.H{"room_no": "101", "email": email, "check_in_date": in, "check_out_date": out}
}

func TestSession_IssuesCookie(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/jwt", "", gin.H{"email": "Ana@Example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := s.jwt.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	w, _ = s.do(t, http.MethodGet, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies())
	assert.True(t, w.Result().Cookies()[0].MaxAge < 0)

	w, _ = s.do(t, http.MethodPost, "/jwt", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBooking_StatusCodes(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", "2025-03-10", "2025-03-15"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)

	w, body = s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ben@example.com", "2025-03-15", "2025-03-20"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, body.Refused)
	require.NotNil(t, body.Error)
	assert.Equal(t, "SCHEDULE_CONFLICT", body.Error.Code)

	w, body = s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ben@example.com", "2025-03-20", "2025-03-16"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)

	w, _ = s.do(t, http.MethodPost, "/add-booking", "", gin.H{"room_no": "101", "email": "ben@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/add-booking", "", gin.H{
		"room_no": "999", "email": "ben@example.com", "check_in_date": "2025-04-01", "check_out_date": "2025-04-02",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuestBookings_RequiresOwnIdentity(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", "2025-03-10", "2025-03-15"))

	w, _ := s.do(t, http.MethodGet, "/bookings/ana@example.com", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/bookings/ana@example.com", "ben@example.com", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := s.do(t, http.MethodGet, "/bookings/ana@example.com", "ana@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestCancelBooking_Routes(t *testing.T) {
	s := newTestServer(t)

	var created struct {
		Data application.BookingDTO `json:"data"`
	}
	w, _ := s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", "2099-03-10", "2099-03-15"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/booking/" + created.Data.ID.String()

	w, _ = s.do(t, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodDelete, path, "ben@example.com", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/booking/nope", "ana@example.com", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := s.do(t, http.MethodDelete, path, "ana@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
}

func TestCancelBooking_NoticeTooShortIsNotAnError(t *testing.T) {
	s := newTestServer(t)

	var created struct {
		Data application.BookingDTO `json:"data"`
	}
	checkIn := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	checkOut := time.Now().UTC().Add(50 * time.Hour).Format(time.RFC3339)
	w, _ := s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", checkIn, checkOut))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w, body := s.do(t, http.MethodDelete, "/booking/"+created.Data.ID.String(), "ana@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Refused)
	assert.False(t, body.Success)
	assert.Equal(t, "NOTICE_TOO_SHORT", body.Error.Code)
}

func TestUpdateDates_Route(t *testing.T) {
	s := newTestServer(t)

	var created struct {
		Data application.BookingDTO `json:"data"`
	}
	w, _ := s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", "2025-03-10", "2025-03-15"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ben@example.com", "2025-03-20", "2025-03-25"))

	update := gin.H{"booking_id": created.Data.ID.String(), "room_no": "101", "check_in_date": "2025-03-18", "check_out_date": "2025-03-21"}
	w, body := s.do(t, http.MethodPut, "/update-date", "ana@example.com", update)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SCHEDULE_CONFLICT", body.Error.Code)

	update["check_in_date"], update["check_out_date"] = "2025-03-11", "2025-03-16"
	w, body = s.do(t, http.MethodPut, "/update-date", "ana@example.com", update)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	w, _ = s.do(t, http.MethodPut, "/update-date", "", update)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReviews_Routes(t *testing.T) {
	s := newTestServer(t)
	review := gin.H{"room_no": "101", "email": "ana@example.com", "rating": 5, "comment": "great"}

	w, _ := s.do(t, http.MethodPost, "/reviews", "", review)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := s.do(t, http.MethodPost, "/reviews", "ana@example.com", review)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)

	w, body = s.do(t, http.MethodPost, "/reviews", "ana@example.com", review)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Refused)
	assert.Equal(t, "ALREADY_REVIEWED", body.Error.Code)

	w, _ = s.do(t, http.MethodPost, "/reviews", "ben@example.com", gin.H{"room_no": "101", "email": "ben@example.com", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(t, http.MethodGet, "/reviewDatas/101", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)

	w, body = s.do(t, http.MethodGet, "/top-reviews?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)
}

func TestRooms_Routes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/add-booking", "", bookingBody("ana@example.com", "2025-03-10", "2025-03-15"))

	w, body := s.do(t, http.MethodGet, "/rooms?bookings=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)

	w, body = s.do(t, http.MethodGet, "/all-rooms?filter=asc&fromDate=2025-03-12&toDate=2025-03-13", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Data)

	w, _ = s.do(t, http.MethodGet, "/all-rooms?filter=sideways", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/all-rooms?fromDate=2025-03-12", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(t, http.MethodGet, "/featured-rooms?limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)

	w, _ = s.do(t, http.MethodGet, "/rooms/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
