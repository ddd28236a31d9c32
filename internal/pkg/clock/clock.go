package clock

import (
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

// Now is truncated to microseconds, the precision of timestamptz, so values
// compare equal after a round trip through Postgres.
func (RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MockClock only moves when told to. Safe for concurrent use.
type MockClock struct {
	now atomic.Pointer[time.Time]
}

func NewMockClock(t time.Time) *MockClock {
	c := &MockClock{}
	c.Set(t)
	return c
}

func (c *MockClock) Now() time.Time {
	return *c.now.Load()
}

func (c *MockClock) Set(t time.Time) {
	t = t.UTC()
	c.now.Store(&t)
}

// Add advances the clock by d and returns the new time.
func (c *MockClock) Add(d time.Duration) time.Time {
	for {
		cur := c.now.Load()
		next := cur.Add(d)
		if c.now.CompareAndSwap(cur, &next) {
			return next
		}
	}
}
