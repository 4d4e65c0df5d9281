package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/lamdn/attendbot/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock,
// pinned to the bot's timezone so date keys and session windows line up
type DefaultClock struct {
	location *time.Location
}

// New creates a clock that reports wall time in the given location
func New(location *time.Location) *DefaultClock {
	if location == nil {
		location = time.Local
	}
	return &DefaultClock{location: location}
}

// Now returns the current time in the bot's timezone
func (c *DefaultClock) Now() time.Time {
	return time.Now().In(c.location)
}
