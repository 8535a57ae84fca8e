package shared

import "time"

// Clock supplies the effective "now" for operations that accept an optional date
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Used in tests.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// EffectiveDate returns asOf when set, otherwise the clock's now
func EffectiveDate(clock Clock, asOf *time.Time) time.Time {
	if asOf != nil && !asOf.IsZero() {
		return *asOf
	}
	if clock == nil {
		return time.Now()
	}
	return clock.Now()
}
