package solartime

import "time"

const (
	// ReferenceZone is the IANA name of Indian Standard Time (UTC+5:30).
	ReferenceZone = "Asia/Kolkata"
	// ReferenceMeridian is the longitude, in degrees east, whose mean solar
	// time equals the reference wall clock.
	ReferenceMeridian = 82.5
	// MinutesPerDegree is the rate at which longitude converts to time.
	MinutesPerDegree = 4.0
	// ZawaalMargin is the half width of the window centred on solar noon.
	ZawaalMargin = 20 * time.Minute
)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

// WallClock is a timezone-naive calendar reading: the fields a wall clock in
// the reference zone would show. The zero value is invalid.
type WallClock struct {
	// t carries the fields in UTC; the zone has no meaning of its own.
	t     time.Time
	valid bool
}

// NewWallClock builds a reading from calendar fields. Fields that do not
// describe a real date and time yield an invalid reading.
func NewWallClock(year int, month time.Month, day, hour, minute, second int) WallClock {
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	if y != year || mo != month || d != day || h != hour || mi != minute || s != second {
		return WallClock{}
	}
	return WallClock{t: t, valid: true}
}

// WallClockOf reads the fields of t in t's own location.
func WallClockOf(t time.Time) WallClock {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return WallClock{t: time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC), valid: true}
}

// Valid reports whether the reading describes a real instant.
func (w WallClock) Valid() bool {
	return w.valid
}

// Date returns the calendar date of the reading.
func (w WallClock) Date() (year int, month time.Month, day int) {
	return w.t.Date()
}

// Clock returns the time of day of the reading.
func (w WallClock) Clock() (hour, minute, second int) {
	return w.t.Clock()
}

// Nanosecond returns the sub-second part of the reading.
func (w WallClock) Nanosecond() int {
	return w.t.Nanosecond()
}

// Add shifts the reading by d on absolute elapsed time, so minute, hour,
// day, month and year boundaries roll over together.
func (w WallClock) Add(d time.Duration) WallClock {
	if !w.valid {
		return w
	}
	return WallClock{t: w.t.Add(d), valid: true}
}

// Sub returns w-u. Either side being invalid yields zero.
func (w WallClock) Sub(u WallClock) time.Duration {
	if !w.valid || !u.valid {
		return 0
	}
	return w.t.Sub(u.t)
}

// Equal reports whether both readings show the same fields.
func (w WallClock) Equal(u WallClock) bool {
	if w.valid != u.valid {
		return false
	}
	return !w.valid || w.t.Equal(u.t)
}

// Noon returns 12:00:00 on the same calendar date.
func (w WallClock) Noon() WallClock {
	if !w.valid {
		return w
	}
	y, mo, d := w.t.Date()
	return WallClock{t: time.Date(y, mo, d, 12, 0, 0, 0, time.UTC), valid: true}
}

// In interprets the fields as a wall clock reading in loc.
func (w WallClock) In(loc *time.Location) time.Time {
	y, mo, d := w.t.Date()
	h, mi, s := w.t.Clock()
	return time.Date(y, mo, d, h, mi, s, w.t.Nanosecond(), loc)
}

// String renders the reading as "2006-01-02 15:04:05".
func (w WallClock) String() string {
	if !w.valid {
		return "invalid"
	}
	return w.t.Format("2006-01-02 15:04:05")
}

// DateString renders the calendar date as "2006-01-02".
func (w WallClock) DateString() string {
	if !w.valid {
		return ""
	}
	return w.t.Format("2006-01-02")
}
