package solartime

// Snapshot holds every time marker derived for one refresh tick.
type Snapshot struct {
	ReferenceNow   WallClock
	LocalSolarTime WallClock
	SolarNoon      WallClock
	ZawaalStart    WallClock
	ZawaalEnd      WallClock
}

// LocalSolarTime shifts the reference reading by the solar offset of
// longitude.
func LocalSolarTime(referenceNow WallClock, longitude float64) WallClock {
	return shift(referenceNow, longitude)
}

// SolarNoon returns reference noon on referenceNow's calendar date shifted by
// the solar offset. The date stays pinned to the reference date even when the
// shift lands on the neighbouring day.
func SolarNoon(referenceNow WallClock, longitude float64) WallClock {
	return shift(referenceNow.Noon(), longitude)
}

// ZawaalWindow returns the interval ZawaalMargin either side of noon.
func ZawaalWindow(noon WallClock) (start, end WallClock) {
	return noon.Add(-ZawaalMargin), noon.Add(ZawaalMargin)
}

// Compute derives the full snapshot for one reference reading.
func Compute(referenceNow WallClock, longitude float64) Snapshot {
	noon := SolarNoon(referenceNow, longitude)
	start, end := ZawaalWindow(noon)
	return Snapshot{
		ReferenceNow:   referenceNow,
		LocalSolarTime: LocalSolarTime(referenceNow, longitude),
		SolarNoon:      noon,
		ZawaalStart:    start,
		ZawaalEnd:      end,
	}
}

func shift(w WallClock, longitude float64) WallClock {
	d, ok := Offset(longitude)
	if !ok {
		return WallClock{}
	}
	return w.Add(d)
}

// Calculator binds the computations to a clock.
type Calculator struct {
	clock Clock
}

// NewCalculator wires a calculator to the given clock.
func NewCalculator(clock Clock) *Calculator {
	return &Calculator{clock: clock}
}

// Snapshot computes the markers for longitude at the clock's current reading.
func (c *Calculator) Snapshot(longitude float64) Snapshot {
	return Compute(c.clock.Now(), longitude)
}

// Now returns the clock's current reading.
func (c *Calculator) Now() WallClock {
	return c.clock.Now()
}
