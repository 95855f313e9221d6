package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID             int64         `json:"-"`
	BookingID      string        `json:"booking_id"`
	UserID         int64         `json:"user_id"`
	TravelOptionID int64         `json:"-"`
	TravelID       string        `json:"travel_id"`
	Seats          int           `json:"number_of_seats"`
	TotalCents     int64         `json:"total_price_cents"`
	Status         BookingStatus `json:"status"`
	BookedAt       time.Time     `json:"booking_date"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Travel *TravelOption `json:"travel_option,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// ReservationRequest is what the inventory adjuster needs to hold seats.
type ReservationRequest struct {
	BookingID string
	TravelID  string
	UserID    int64
	Seats     int
}

// BookingFilter is used by the admin listing.
type BookingFilter struct {
	UserID int64
	Status BookingStatus
	Limit  int
	Offset int
}
