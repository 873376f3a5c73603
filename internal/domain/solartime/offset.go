package solartime

import (
	"math"
	"time"
)

// maxOffsetMillis bounds offsets that still fit in a time.Duration.
const maxOffsetMillis = math.MaxInt64 / int64(time.Millisecond)

// OffsetMinutes maps a longitude to its signed offset from the reference
// meridian. Positive values lie east of the meridian and run ahead of the
// reference clock.
func OffsetMinutes(longitude float64) float64 {
	return (longitude - ReferenceMeridian) * MinutesPerDegree
}

// Offset returns the solar offset for longitude truncated to whole
// milliseconds. ok is false when the offset is not finite or does not fit in
// a time.Duration.
func Offset(longitude float64) (d time.Duration, ok bool) {
	millis := math.Trunc(OffsetMinutes(longitude) * 60 * 1000)
	if math.IsNaN(millis) || math.Abs(millis) > float64(maxOffsetMillis) {
		return 0, false
	}
	return time.Duration(millis) * time.Millisecond, true
}

// LongitudeDifference returns the signed distance in degrees from the
// reference meridian.
func LongitudeDifference(longitude float64) float64 {
	return longitude - ReferenceMeridian
}
