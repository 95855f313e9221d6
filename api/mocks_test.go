package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/auth"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockTravelUseCase struct {
	mock.Mock
}

func (m *MockTravelUseCase) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.TravelOption, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TravelOption), args.Error(1)
}

func (m *MockTravelUseCase) Count(ctx context.Context, filter domain.SearchFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockTravelUseCase) Home(ctx context.Context) ([]domain.TravelOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TravelOption), args.Error(1)
}

func (m *MockTravelUseCase) Get(ctx context.Context, travelID string) (*domain.TravelOption, error) {
	args := m.Called(ctx, travelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravelOption), args.Error(1)
}

func (m *MockTravelUseCase) Create(ctx context.Context, option *domain.TravelOption) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockTravelUseCase) Delete(ctx context.Context, travelID string) error {
	args := m.Called(ctx, travelID)
	return args.Error(0)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Reserve(ctx context.Context, input booking.ReserveInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, bookingID string, userID int64) (*domain.Booking, bool, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1), args.Error(2)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, bookingID string, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CountForUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingUseCase) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CountAll(ctx context.Context, filter domain.BookingFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthUseCase) ParseToken(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *MockAuthUseCase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) UpdateProfile(ctx context.Context, userID int64, input auth.ProfileInput) (*domain.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type testServer struct {
	router   *gin.Engine
	travel   *MockTravelUseCase
	bookings *MockBookingUseCase
	auth     *MockAuthUseCase
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	s := &testServer{
		travel:   &MockTravelUseCase{},
		bookings: &MockBookingUseCase{},
		auth:     &MockAuthUseCase{},
	}
	s.auth.On("ParseToken", userToken).Return(domain.Identity{UserID: 3}, nil).Maybe()
	s.auth.On("ParseToken", adminToken).Return(domain.Identity{UserID: 1, IsAdmin: true}, nil).Maybe()
	s.auth.On("ParseToken", mock.Anything).Return(domain.Identity{}, domain.ErrUnauthorized).Maybe()

	s.router = NewRouter(config.HTTPConfig{}, 8, Services{Travel: s.travel, Bookings: s.bookings, Auth: s.auth})
	return s
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
