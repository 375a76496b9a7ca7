package engine

import "time"

// Clock supplies tick timestamps
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall clock with monotonic readings
type TimeProvider struct{}

// NewTimeProvider creates a wall clock
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}
