package location

import (
	"context"
	"fmt"
	"math"

	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

// Acquirer produces the caller's coordinate.
type Acquirer interface {
	Acquire(ctx context.Context) (solartime.Coordinate, error)
}

// AcquirerFunc adapts a function to Acquirer.
type AcquirerFunc func(ctx context.Context) (solartime.Coordinate, error)

// Acquire implements Acquirer.
func (f AcquirerFunc) Acquire(ctx context.Context) (solartime.Coordinate, error) {
	return f(ctx)
}

// Fixed returns an acquirer that always yields c, for coordinates the client
// supplied itself.
func Fixed(c solartime.Coordinate) Acquirer {
	return AcquirerFunc(func(ctx context.Context) (solartime.Coordinate, error) {
		if err := ctx.Err(); err != nil {
			return solartime.Coordinate{}, err
		}
		return c, nil
	})
}

// Unsupported is used when neither a fixed coordinate nor a lookup is configured.
func Unsupported() Acquirer {
	return AcquirerFunc(func(context.Context) (solartime.Coordinate, error) {
		return solartime.Coordinate{}, ErrUnsupported
	})
}

func checkCoordinate(c solartime.Coordinate) error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return PositionUnavailable(fmt.Errorf("non-finite coordinate %v,%v", c.Latitude, c.Longitude))
	}
	return nil
}
