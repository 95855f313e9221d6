package domain

import (
	"strings"
	"time"
)

type TravelType string

const (
	TravelTypeFlight TravelType = "flight"
	TravelTypeTrain  TravelType = "train"
	TravelTypeBus    TravelType = "bus"
)

func (t TravelType) Valid() bool {
	switch t {
	case TravelTypeFlight, TravelTypeTrain, TravelTypeBus:
		return true
	default:
		return false
	}
}

type TravelOption struct {
	ID             int64      `json:"-"`
	TravelID       string     `json:"travel_id" validate:"required,max=50"`
	Type           TravelType `json:"travel_type" validate:"oneof=flight train bus"`
	Source         string     `json:"source" validate:"required,max=100"`
	Destination    string     `json:"destination" validate:"required,max=100"`
	DepartureTime  time.Time  `json:"departure_datetime"`
	ArrivalTime    time.Time  `json:"arrival_datetime" validate:"gtfield=DepartureTime"`
	PriceCents     int64      `json:"price_cents" validate:"gte=0"`
	AvailableSeats int        `json:"available_seats" validate:"gte=0"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsAvailable reports whether the option still has room for seats.
func (t *TravelOption) IsAvailable(seats int) bool {
	return t.AvailableSeats >= seats
}

// Validate checks the catalog invariants of a new travel option. Widths match
// the travel_options columns.
func (t *TravelOption) Validate() error {
	t.TravelID = strings.TrimSpace(t.TravelID)
	t.Source = strings.TrimSpace(t.Source)
	t.Destination = strings.TrimSpace(t.Destination)
	return ValidateStruct(t)
}

// SearchFilter narrows the catalog. Every set field is ANDed.
type SearchFilter struct {
	Type          TravelType
	Source        string
	Destination   string
	DepartureDate *time.Time
	// OnlyAvailable hides sold out options, as listing views do.
	OnlyAvailable bool
	Limit         int
	Offset        int
}

// Matches applies the filter to a single option at the given instant.
func (f SearchFilter) Matches(t *TravelOption, now time.Time) bool {
	if t.DepartureTime.Before(now) {
		return false
	}
	if f.OnlyAvailable && t.AvailableSeats <= 0 {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Source != "" && !containsFold(t.Source, f.Source) {
		return false
	}
	if f.Destination != "" && !containsFold(t.Destination, f.Destination) {
		return false
	}
	if f.DepartureDate != nil {
		y1, m1, d1 := f.DepartureDate.Date()
		y2, m2, d2 := t.DepartureTime.In(f.DepartureDate.Location()).Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
