package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTravelHandler_search(t *testing.T) {
	s := newTestServer()

	filter := domain.SearchFilter{Type: domain.TravelTypeFlight, Source: "mumbai"}
	paged := filter
	paged.Limit = 8
	paged.Offset = 8
	options := []domain.TravelOption{{TravelID: "FL1", Source: "Mumbai", Destination: "Delhi", Type: domain.TravelTypeFlight}}

	s.travel.On("Count", mock.Anything, filter).Return(12, nil).Once()
	s.travel.On("Search", mock.Anything, paged).Return(options, nil).Once()

	w := s.do(http.MethodGet, "/api/travel?travel_type=Flight&source=mumbai&page=5", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp pagedResponse[domain.TravelOption]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Number)
	assert.Equal(t, 2, resp.Pages)
	assert.Equal(t, 12, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "FL1", resp.Items[0].TravelID)
	s.travel.AssertExpectations(t)
}

func TestTravelHandler_search_DepartureDate(t *testing.T) {
	s := newTestServer()

	s.travel.On("Count", mock.Anything, mock.MatchedBy(func(f domain.SearchFilter) bool {
		return f.DepartureDate != nil && f.DepartureDate.Format(dateLayout) == "2030-01-15"
	})).Return(0, domain.ValidationError{Field: "departure_date", Msg: "must not be in the past"}).Once()

	w := s.do(http.MethodGet, "/api/travel?departure_date=2030-01-15", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/travel?departure_date=15/01/2030", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "departure_date")
	s.travel.AssertExpectations(t)
}

func TestTravelHandler_home(t *testing.T) {
	s := newTestServer()
	s.travel.On("Home", mock.Anything).Return([]domain.TravelOption{{TravelID: "A"}, {TravelID: "B"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/travel/home", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"travel_id":"B"`)
}

func TestTravelHandler_get(t *testing.T) {
	s := newTestServer()
	s.travel.On("Get", mock.Anything, "FL1").Return(&domain.TravelOption{TravelID: "FL1", AvailableSeats: 3}, nil).Once()
	s.travel.On("Get", mock.Anything, "NOPE").Return(nil, domain.NotFoundError{Resource: "travel option"}).Once()

	w := s.do(http.MethodGet, "/api/travel/FL1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available_seats":3`)

	w = s.do(http.MethodGet, "/api/travel/NOPE", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTravelHandler_book(t *testing.T) {
	s := newTestServer()
	input := booking.ReserveInput{TravelID: "FL1", UserID: 3, Seats: 2}
	s.bookings.On("Reserve", mock.Anything, input).Return(&domain.Booking{
		BookingID:  "BK20260101000000-abcdef12",
		TravelID:   "FL1",
		UserID:     3,
		Seats:      2,
		TotalCents: 100000,
		Status:     domain.BookingStatusConfirmed,
		BookedAt:   time.Now(),
	}, nil).Once()

	w := s.do(http.MethodPost, "/api/travel/FL1/book", userToken, `{"number_of_seats":2}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BK20260101000000-abcdef12", resp.BookingID)
	assert.Equal(t, int64(100000), resp.TotalCents)
	s.bookings.AssertExpectations(t)
}

func TestTravelHandler_book_Unavailable(t *testing.T) {
	s := newTestServer()
	s.bookings.On("Reserve", mock.Anything, mock.Anything).Return(nil, domain.AvailabilityError{Requested: 2, Remaining: 1}).Once()

	w := s.do(http.MethodPost, "/api/travel/FL1/book", userToken, `{"number_of_seats":2}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["remaining_seats"])
}

func TestTravelHandler_book_RequiresAuth(t *testing.T) {
	s := newTestServer()

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/travel/FL1/book", "", `{"number_of_seats":1}`).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/travel/FL1/book", "forged", `{"number_of_seats":1}`).Code)
	s.bookings.AssertNotCalled(t, "Reserve")
}

func TestTravelHandler_book_BadBody(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodPost, "/api/travel/FL1/book", userToken, `{"number_of_seats":"two"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.bookings.AssertNotCalled(t, "Reserve")
}
