package idgen

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingIDPattern = regexp.MustCompile(`^BK\d{14}-[0-9a-f]{8}$`)

func TestTimestampGenerator_Format(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))
	g := NewTimestampGenerator(
		WithClock(func() time.Time { return fixed }),
		WithEntropy(func() string { return "deadbeef" }),
	)

	assert.Equal(t, "BK20260101213405-deadbeef", g.NewBookingID())
}

func TestTimestampGenerator_UniqueWithinSameSecond(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewTimestampGenerator(WithClock(func() time.Time { return fixed }))

	const n = 500
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.NewBookingID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, n)
	for id := range ids {
		require.Regexp(t, bookingIDPattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}
