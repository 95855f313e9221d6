package idgen

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const bookingPrefix = "BK"

// Generator produces booking identifiers.
type Generator interface {
	NewBookingID() string
}

// TimestampGenerator keeps the human readable BK<timestamp> shape and appends
// random bits so two bookings in the same second still get distinct IDs.
type TimestampGenerator struct {
	now     func() time.Time
	entropy func() string
}

type Option func(*TimestampGenerator)

func WithClock(now func() time.Time) Option {
	return func(g *TimestampGenerator) {
		g.now = now
	}
}

func WithEntropy(entropy func() string) Option {
	return func(g *TimestampGenerator) {
		g.entropy = entropy
	}
}

func NewTimestampGenerator(opts ...Option) *TimestampGenerator {
	g := &TimestampGenerator{
		now:     time.Now,
		entropy: randomSuffix,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *TimestampGenerator) NewBookingID() string {
	return bookingPrefix + g.now().UTC().Format("20060102150405") + "-" + g.entropy()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

var _ Generator = (*TimestampGenerator)(nil)
