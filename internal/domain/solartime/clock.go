package solartime

import (
	"fmt"
	"time"

	// The reference zone must resolve even when the host has no zoneinfo.
	_ "time/tzdata"
)

// Clock yields the current reference wall clock reading.
type Clock interface {
	Now() WallClock
}

// ReferenceClock reads the system clock as seen in the reference zone. The
// host's own time zone configuration plays no part.
type ReferenceClock struct {
	location *time.Location
	now      func() time.Time
}

// NewReferenceClock loads the reference zone. Failure is fatal for callers;
// there is no fallback zone.
func NewReferenceClock() (*ReferenceClock, error) {
	loc, err := time.LoadLocation(ReferenceZone)
	if err != nil {
		return nil, fmt.Errorf("load reference zone %s: %w", ReferenceZone, err)
	}
	return &ReferenceClock{location: loc, now: time.Now}, nil
}

// Now returns the current instant at whole-second resolution.
func (c *ReferenceClock) Now() WallClock {
	return WallClockOf(c.now().In(c.location).Truncate(time.Second))
}

// Location exposes the loaded reference zone.
func (c *ReferenceClock) Location() *time.Location {
	return c.location
}

// Instant converts a reference reading back to an absolute time.
func (c *ReferenceClock) Instant(w WallClock) time.Time {
	return w.In(c.location)
}

var _ Clock = (*ReferenceClock)(nil)
