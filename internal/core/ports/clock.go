package ports

import "time"

// Clock returns the current instant. Handlers take one so tests can pin time.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time {
	return time.Now()
}
