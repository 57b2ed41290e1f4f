package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
	"github.com/suitespot/service-booking/internal/pkg/contracts"
)

func TestSubmitReview_OncePerGuestAndRoom(t *testing.T) {
	s := newTestStack(t, nil)
	s.addRoom(t, UpsertRoomRequest{RoomNo: "101", PricePerNight: 12000})
	ctx := context.Background()

	rv, err := s.reviews.SubmitReview(ctx, "ana@example.com", SubmitReviewRequest{
		RoomNo: "101", GuestEmail: "ana@example.com", Rating: 5, Comment: "quiet and clean",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)

	_, err = s.reviews.SubmitReview(ctx, "ana@example.com", SubmitReviewRequest{
		RoomNo: "101", GuestEmail: "ana@example.com", Rating: 1,
	})
	assert.True(t, apperror.IsRefusal(err, apperror.ReasonAlreadyReviewed))

	rm, err := s.roomRepo.FindByRoomNo(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 1, rm.ReviewCount(), "refused review leaves the counter alone")

	reviews, err := s.reviews.GetRoomReviews(ctx, "101")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "quiet and clean", reviews[0].Comment)

	assert.Len(t, s.publisher.ofType(contracts.ReviewSubmitted), 1)
}

func TestSubmitReview_CountsPerRoom(t *testing.T) {
	s := newTestStack(t, nil)
	s.addRoom(t, UpsertRoomRequest{RoomNo: "101", PricePerNight: 12000})
	s.addRoom(t, UpsertRoomRequest{RoomNo: "102", PricePerNight: 9000})
	ctx := context.Background()

	for _, email := range []string{"ana@example.com", "ben@example.com"} {
		_, err := s.reviews.SubmitReview(ctx, email, SubmitReviewRequest{RoomNo: "101", GuestEmail: email, Rating: 4})
		require.NoError(t, err)
	}
	_, err := s.reviews.SubmitReview(ctx, "ana@example.com", SubmitReviewRequest{RoomNo: "102", GuestEmail: "ana@example.com", Rating: 3})
	require.NoError(t, err)

	rm, err := s.roomRepo.FindByRoomNo(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 2, rm.ReviewCount())

	rm, err = s.roomRepo.FindByRoomNo(ctx, "102")
	require.NoError(t, err)
	assert.Equal(t, 1, rm.ReviewCount())
}

func TestSubmitReview_Rejections(t *testing.T) {
	s := newTestStack(t, nil)
	s.addRoom(t, UpsertRoomRequest{RoomNo: "101", PricePerNight: 12000})
	ctx := context.Background()

	_, err := s.reviews.SubmitReview(ctx, "mallory@example.com", SubmitReviewRequest{
		RoomNo: "101", GuestEmail: "ana@example.com", Rating: 5,
	})
	var ferr *apperror.ForbiddenError
	assert.True(t, errors.As(err, &ferr))

	_, err = s.reviews.SubmitReview(ctx, "ana@example.com", SubmitReviewRequest{
		RoomNo: "999", GuestEmail: "ana@example.com", Rating: 5,
	})
	assert.True(t, apperror.IsNotFound(err))

	_, err = s.reviews.SubmitReview(ctx, "ana@example.com", SubmitReviewRequest{
		RoomNo: "101", GuestEmail: "ana@example.com", Rating: 6,
	})
	var verr *apperror.ValidationError
	assert.True(t, errors.As(err, &verr))

	reviews, err := s.reviews.GetRoomReviews(ctx, "101")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestGetTopReviews_Limit(t *testing.T) {
	s := newTestStack(t, nil)
	s.addRoom(t, UpsertRoomRequest{RoomNo: "101", PricePerNight: 12000})
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := s.reviews.SubmitReview(ctx, email, SubmitReviewRequest{RoomNo: "101", GuestEmail: email, Rating: 4})
		require.NoError(t, err)
	}

	top, err := s.reviews.GetTopReviews(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	all, err := s.reviews.GetTopReviews(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
