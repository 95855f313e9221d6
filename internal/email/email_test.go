package email

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestSender_ComposeCreated(t *testing.T) {
	users := &MockUserLookup{}
	sender := NewSender(users)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Username: "user1", FirstName: "Asha", Email: "asha@example.com"}, nil).Once()

	msg, err := sender.Compose(ctx, kafka.BookingEvent{Type: kafka.EventBookingCreated, BookingID: "BK1", TravelID: "FL1", UserID: 3, Seats: 2, TotalCents: 100050})
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "Booking BK1 confirmed", msg.Subject)
	assert.Contains(t, msg.Body, "Asha")
	assert.Contains(t, msg.Body, "1000.50")

	users.AssertExpectations(t)
}

func TestSender_ComposeCancelled(t *testing.T) {
	users := &MockUserLookup{}
	sender := NewSender(users)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Username: "user1", Email: "u1@example.com"}, nil).Once()

	msg, err := sender.Compose(ctx, kafka.BookingEvent{Type: kafka.EventBookingCancelled, BookingID: "BK1", TravelID: "FL1", UserID: 3, Seats: 2})
	require.NoError(t, err)
	assert.Equal(t, "Booking BK1 cancelled", msg.Subject)
	assert.Contains(t, msg.Body, "user1")
}

func TestSender_MissingUserIsSkipped(t *testing.T) {
	users := &MockUserLookup{}
	sender := NewSender(users)
	ctx := context.Background()

	users.On("GetByID", ctx, int64(9)).Return(nil, domain.NotFoundError{Resource: "user"}).Once()

	assert.NoError(t, sender.Send(ctx, kafka.BookingEvent{Type: kafka.EventBookingCreated, UserID: 9}))
}

func TestSender_LookupFailure(t *testing.T) {
	users := &MockUserLookup{}
	sender := NewSender(users)
	ctx := context.Background()

	expectedErr := errors.New("db down")
	users.On("GetByID", ctx, int64(9)).Return(nil, expectedErr).Once()

	assert.Equal(t, expectedErr, sender.Send(ctx, kafka.BookingEvent{Type: kafka.EventBookingCreated, UserID: 9}))
}
