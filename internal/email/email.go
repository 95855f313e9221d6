package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/kafka"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender turns booking events into customer notifications. Delivery is a log
// line for now; the message is returned so callers can inspect it.
type Sender struct {
	users UserLookup
}

func NewSender(users UserLookup) *Sender {
	return &Sender{users: users}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	_, err := s.Compose(ctx, event)
	return err
}

func (s *Sender) Compose(ctx context.Context, event kafka.BookingEvent) (*Message, error) {
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			slog.Warn("notification skipped, user is gone", "booking_id", event.BookingID, "user_id", event.UserID)
			return nil, nil
		}
		return nil, err
	}

	msg := &Message{To: user.Email}
	switch event.Type {
	case kafka.EventBookingCreated:
		msg.Subject = fmt.Sprintf("Booking %s confirmed", event.BookingID)
		msg.Body = fmt.Sprintf("Hi %s, your booking of %d seat(s) on %s is confirmed. Total: %s.",
			displayName(user), event.Seats, event.TravelID, formatCents(event.TotalCents))
	case kafka.EventBookingCancelled:
		msg.Subject = fmt.Sprintf("Booking %s cancelled", event.BookingID)
		msg.Body = fmt.Sprintf("Hi %s, your booking of %d seat(s) on %s has been cancelled.",
			displayName(user), event.Seats, event.TravelID)
	default:
		slog.Debug("notification skipped, unknown event", "type", event.Type)
		return nil, nil
	}

	slog.Info("send email", "to", msg.To, "subject", msg.Subject)
	return msg, nil
}

func displayName(u *domain.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
