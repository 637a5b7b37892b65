// Package system provides the wall clock that stamps scraped records.
package system

import "time"

// Clock reports UTC time at whole-second precision, the resolution at which
// scraped_date is stored.
type Clock struct{}

// New returns the wall clock.
func New() *Clock {
	return &Clock{}
}

// Now implements crawler.Clock.
func (Clock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
