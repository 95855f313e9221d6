package booking

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/idgen"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/repository"
)

const (
	DefaultMaxSeats = 10
	idAttempts      = 3
)

type BookingUseCase interface {
	Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID string, userID int64) (*domain.Booking, bool, error)
	GetBooking(ctx context.Context, bookingID string, userID int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
	ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	CountAll(ctx context.Context, filter domain.BookingFilter) (int, error)
}

type Cache interface {
	InvalidateCatalog(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReserveInput struct {
	TravelID string `json:"travel_id"`
	UserID   int64  `json:"user_id"`
	Seats    int    `json:"number_of_seats"`
}

// BookingService is the only place that moves available_seats. Seat counts
// change exclusively through the repository's Reserve and Cancel, which run
// the check and the write in a single transaction.
type BookingService struct {
	bookings           repository.BookingRepository
	ids                idgen.Generator
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	maxSeats           int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMaxSeats(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.maxSeats = n
		}
	}
}

func WithIDGenerator(g idgen.Generator) BookingServiceOption {
	return func(s *BookingService) {
		s.ids = g
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		ids:          idgen.NewTimestampGenerator(),
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		maxSeats:     DefaultMaxSeats,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error) {
	input.TravelID = strings.TrimSpace(input.TravelID)
	switch {
	case input.TravelID == "":
		return nil, domain.ValidationError{Field: "travel_id", Msg: "is required"}
	case input.UserID <= 0:
		return nil, domain.ValidationError{Field: "user_id", Msg: "is required"}
	case input.Seats < 1:
		return nil, domain.ValidationError{Field: "number_of_seats", Msg: "must be at least 1"}
	case input.Seats > s.maxSeats:
		return nil, domain.ValidationError{Field: "number_of_seats", Msg: "must be at most " + strconv.Itoa(s.maxSeats)}
	}

	var (
		booking *domain.Booking
		err     error
	)
	for attempt := 1; attempt <= idAttempts; attempt++ {
		booking, err = s.bookings.Reserve(ctx, domain.ReservationRequest{
			BookingID: s.ids.NewBookingID(),
			TravelID:  input.TravelID,
			UserID:    input.UserID,
			Seats:     input.Seats,
		})
		if !isBookingIDConflict(err) {
			break
		}
		slog.Warn("booking id collision, retrying", "attempt", attempt, "travel_id", input.TravelID)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("booking reserved", "booking_id", booking.BookingID, "travel_id", booking.TravelID, "user_id", booking.UserID, "seats", booking.Seats)
	s.invalidate(ctx)
	if err := s.publish(ctx, kafka.EventBookingCreated, booking); err != nil {
		slog.Warn("failed to publish booking event", "type", kafka.EventBookingCreated, "booking_id", booking.BookingID, "error", err)
	}
	return booking, nil
}

// Cancel returns false without touching anything when the booking is
// already cancelled.
func (s *BookingService) Cancel(ctx context.Context, bookingID string, userID int64) (*domain.Booking, bool, error) {
	if _, err := s.GetBooking(ctx, bookingID, userID); err != nil {
		return nil, false, err
	}

	updated, cancelled, err := s.bookings.Cancel(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if !cancelled {
		return updated, false, nil
	}

	slog.Info("booking cancelled", "booking_id", updated.BookingID, "travel_id", updated.TravelID, "seats", updated.Seats)
	s.invalidate(ctx)
	if err := s.publish(ctx, kafka.EventBookingCancelled, updated); err != nil {
		slog.Warn("failed to publish booking event", "type", kafka.EventBookingCancelled, "booking_id", updated.BookingID, "error", err)
	}
	return updated, true, nil
}

// GetBooking answers ForbiddenError for bookings of other users without
// revealing anything about them.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string, userID int64) (*domain.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, domain.NotFoundError{Resource: "booking"}
	}
	b, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ForbiddenError{}
	}
	return b, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.ListAll(ctx, domain.BookingFilter{UserID: userID, Limit: limit, Offset: offset})
}

func (s *BookingService) CountForUser(ctx context.Context, userID int64) (int, error) {
	return s.CountAll(ctx, domain.BookingFilter{UserID: userID})
}

func (s *BookingService) ListAll(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	if err := validStatus(filter.Status); err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, filter)
}

// CountAll ignores the paging fields of filter.
func (s *BookingService) CountAll(ctx context.Context, filter domain.BookingFilter) (int, error) {
	if err := validStatus(filter.Status); err != nil {
		return 0, err
	}
	filter.Limit, filter.Offset = 0, 0
	return s.bookings.Count(ctx, filter)
}

func validStatus(status domain.BookingStatus) error {
	switch status {
	case "", domain.BookingStatusConfirmed, domain.BookingStatusCancelled:
		return nil
	default:
		return domain.ValidationError{Field: "status", Msg: "must be confirmed or cancelled"}
	}
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		slog.Warn("failed to invalidate catalog cache", "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.BookingID,
		TravelID:   booking.TravelID,
		UserID:     booking.UserID,
		Seats:      booking.Seats,
		TotalCents: booking.TotalCents,
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.BookingID, event)
	}
	return nil
}

func isBookingIDConflict(err error) bool {
	return err != nil && domain.IsConflict(err)
}

var _ BookingUseCase = (*BookingService)(nil)
