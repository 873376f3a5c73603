package solartime

import (
	"fmt"
	"math"
)

// Details are the display fields that stay fixed for a coordinate.
type Details struct {
	Latitude            string  `json:"latitude"`
	Longitude           string  `json:"longitude"`
	LongitudeDifference string  `json:"longitudeDifference"`
	TimeDifference      string  `json:"timeDifference"`
	DegreesFromMeridian string  `json:"degreesFromMeridian"`
	MinutesAdjustment   string  `json:"minutesAdjustment"`
	Direction           string  `json:"direction"`
	OffsetMinutes       float64 `json:"offsetMinutes"`
}

// Frame is everything a renderer shows for one tick.
type Frame struct {
	Date           string  `json:"date"`
	CurrentIST     string  `json:"currentIst"`
	LocalSolarTime string  `json:"localSolarTime"`
	SolarNoon      string  `json:"solarNoon"`
	ZawaalStart    string  `json:"zawaalStart"`
	ZawaalEnd      string  `json:"zawaalEnd"`
	Details        Details `json:"details"`
}

// CompassLabel names the side of the meridian: East for differences of
// zero or more, West otherwise.
func CompassLabel(longitudeDifference float64) string {
	if longitudeDifference >= 0 {
		return "East"
	}
	return "West"
}

// TimeLabel says whether local solar time runs ahead of or behind the
// reference clock.
func TimeLabel(longitudeDifference float64) string {
	if longitudeDifference >= 0 {
		return "ahead"
	}
	return "behind"
}

// Describe computes the static display fields for c.
func Describe(c Coordinate) Details {
	diff := LongitudeDifference(c.Longitude)
	minutes := OffsetMinutes(c.Longitude)
	degrees := fmt.Sprintf("%.2f", math.Abs(diff))
	adjustment := fmt.Sprintf("%.1f", math.Abs(minutes))

	direction := "West of IST meridian (time behind)"
	if diff >= 0 {
		direction = "East of IST meridian (time ahead)"
	}

	return Details{
		Latitude:            fmt.Sprintf("%.6f°", c.Latitude),
		Longitude:           fmt.Sprintf("%.6f°", c.Longitude),
		LongitudeDifference: fmt.Sprintf("%s° %s", degrees, CompassLabel(diff)),
		TimeDifference:      fmt.Sprintf("%s minutes %s", adjustment, TimeLabel(diff)),
		DegreesFromMeridian: degrees,
		MinutesAdjustment:   adjustment,
		Direction:           direction,
		OffsetMinutes:       minutes,
	}
}

// Render formats a snapshot for display.
func Render(s Snapshot, d Details) Frame {
	return Frame{
		Date:           s.ReferenceNow.DateString(),
		CurrentIST:     Format(s.ReferenceNow),
		LocalSolarTime: Format(s.LocalSolarTime),
		SolarNoon:      Format(s.SolarNoon),
		ZawaalStart:    Format(s.ZawaalStart),
		ZawaalEnd:      Format(s.ZawaalEnd),
		Details:        d,
	}
}
