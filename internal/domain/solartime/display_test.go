package solartime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDescribeEast(t *testing.T) {
	d := Describe(Coordinate{Latitude: 23.8103, Longitude: 90.5})

	require.Equal(t, "23.810300°", d.Latitude)
	require.Equal(t, "90.500000°", d.Longitude)
	require.Equal(t, "8.00° East", d.LongitudeDifference)
	require.Equal(t, "32.0 minutes ahead", d.TimeDifference)
	require.Equal(t, "East of IST meridian (time ahead)", d.Direction)
	require.Equal(t, 32.0, d.OffsetMinutes)
}

func TestDescribeWest(t *testing.T) {
	d := Describe(Coordinate{Latitude: 19.076, Longitude: 72.5})

	require.Equal(t, "10.00", d.DegreesFromMeridian)
	require.Equal(t, "40.0", d.MinutesAdjustment)
	require.Equal(t, "10.00° West", d.LongitudeDifference)
	require.Equal(t, "40.0 minutes behind", d.TimeDifference)
	require.Equal(t, "West of IST meridian (time behind)", d.Direction)
	require.Equal(t, -40.0, d.OffsetMinutes)
}

func TestDescribeOnMeridianCountsAsEast(t *testing.T) {
	d := Describe(Coordinate{Longitude: ReferenceMeridian})
	require.Equal(t, "0.00° East", d.LongitudeDifference)
	require.Equal(t, "0.0 minutes ahead", d.TimeDifference)
}

func TestRenderFrame(t *testing.T) {
	now := NewWallClock(2024, time.January, 15, 12, 0, 0)
	coord := Coordinate{Latitude: 23.81, Longitude: 90.5}

	frame := Render(Compute(now, coord.Longitude), Describe(coord))

	require.Equal(t, "2024-01-15", frame.Date)
	require.Equal(t, "12:00:00", frame.CurrentIST)
	require.Equal(t, "12:32:00", frame.LocalSolarTime)
	require.Equal(t, "12:32:00", frame.SolarNoon)
	require.Equal(t, "12:12:00", frame.ZawaalStart)
	require.Equal(t, "12:52:00", frame.ZawaalEnd)
	require.Equal(t, "8.00° East", frame.Details.LongitudeDifference)
}
