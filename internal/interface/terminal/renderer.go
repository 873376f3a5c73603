// Package terminal drives a solar clock session from a text console.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

// Renderer prints session output to w. Ticks redraw a single status line.
type Renderer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Loading() {
	r.printf("Detecting your location...\n")
}

func (r *Renderer) Located(coord solartime.Coordinate, d solartime.Details) {
	r.printf("\nLatitude:              %s\n", d.Latitude)
	r.printf("Longitude:             %s\n", d.Longitude)
	r.printf("Longitude difference:  %s\n", d.LongitudeDifference)
	r.printf("Time difference:       %s\n", d.TimeDifference)
	r.printf("Direction:             %s\n\n", d.Direction)
}

func (r *Renderer) Tick(f solartime.Frame) {
	r.printf("\r%s  IST %s  Solar %s  Noon %s  Zawaal %s-%s ",
		f.Date, f.CurrentIST, f.LocalSolarTime, f.SolarNoon, f.ZawaalStart, f.ZawaalEnd)
}

func (r *Renderer) Failed(message string, _ error) {
	r.printf("\n%s\nPress r to retry.\n", message)
}

func (r *Renderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, args...)
}
