package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/session"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
	"github.com/Ahsan786123/solar-time-app/internal/infra/config"
)

// Locator resolves client addresses to coordinates.
type Locator interface {
	Acquirer(ip string) location.Acquirer
}

// Handler wires the HTTP transport to the solar time domain.
type Handler struct {
	calc      *solartime.Calculator
	locations *location.Service
	locator   Locator
	fixed     *solartime.Coordinate
	session   session.Config
	streams   *streamLimiter
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler. locator may be nil when IP
// lookups are disabled.
func NewHandler(cfg *config.Config, calc *solartime.Calculator, locations *location.Service, locator Locator, logger *slog.Logger) *Handler {
	h := &Handler{
		calc:      calc,
		locations: locations,
		locator:   locator,
		session:   session.Config{RefreshInterval: cfg.Solar.RefreshInterval},
		streams:   newStreamLimiter(cfg.HTTP.Stream.MaxPerIP),
		logger:    logger.With("component", "http.handler"),
	}
	if cfg.Location.HasFixedCoordinate() {
		h.fixed = &solartime.Coordinate{Latitude: *cfg.Location.Latitude, Longitude: *cfg.Location.Longitude}
	}
	return h
}

// LocationResponse is returned by the location endpoint.
type LocationResponse struct {
	Coordinate solartime.Coordinate `json:"coordinate"`
	Details    solartime.Details    `json:"details"`
}

// SnapshotResponse is a single rendered frame.
type SnapshotResponse struct {
	Coordinate solartime.Coordinate `json:"coordinate"`
	Frame      solartime.Frame      `json:"frame"`
}

// Health reports liveness and the current reference time.
func (h *Handler) Health(c *gin.Context) {
	now := h.calc.Now()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"referenceZone": solartime.ReferenceZone,
		"referenceTime": now.String(),
	})
}

// Locate acquires the caller's coordinate. Browsers call it again when the
// user presses retry.
func (h *Handler) Locate(c *gin.Context) {
	source, err := h.resolveSource(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	coord, acqErr := source.Acquire(c.Request.Context())
	if acqErr != nil {
		abortWithError(c, locationError(acqErr))
		return
	}
	c.JSON(http.StatusOK, LocationResponse{Coordinate: coord, Details: solartime.Describe(coord)})
}

// Snapshot renders one frame for the caller's coordinate.
func (h *Handler) Snapshot(c *gin.Context) {
	source, err := h.resolveSource(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	coord, acqErr := source.Acquire(c.Request.Context())
	if acqErr != nil {
		abortWithError(c, locationError(acqErr))
		return
	}
	frame := solartime.Render(h.calc.Snapshot(coord.Longitude), solartime.Describe(coord))
	c.JSON(http.StatusOK, SnapshotResponse{Coordinate: coord, Frame: frame})
}

// resolveSource picks where the coordinate comes from: explicit query
// parameters, then the configured fixed coordinate, then an IP lookup.
func (h *Handler) resolveSource(c *gin.Context) (location.Acquirer, *HTTPError) {
	coord, ok, err := parseCoordinate(c.Query("lat"), c.Query("lon"))
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err)
	}
	switch {
	case ok:
		return h.locations.Bind("", location.Fixed(coord)), nil
	case h.fixed != nil:
		return h.locations.Bind("", location.Fixed(*h.fixed)), nil
	case h.locator != nil:
		ip := c.ClientIP()
		return h.locations.Bind(ip, h.locator.Acquirer(ip)), nil
	default:
		return h.locations.Bind("", location.Unsupported()), nil
	}
}

func parseCoordinate(lat, lon string) (solartime.Coordinate, bool, error) {
	lat, lon = strings.TrimSpace(lat), strings.TrimSpace(lon)
	if lat == "" && lon == "" {
		return solartime.Coordinate{}, false, nil
	}
	if lat == "" || lon == "" {
		return solartime.Coordinate{}, false, fmt.Errorf("lat and lon must be provided together")
	}
	latitude, err := parseDegrees("lat", lat)
	if err != nil {
		return solartime.Coordinate{}, false, err
	}
	longitude, err := parseDegrees("lon", lon)
	if err != nil {
		return solartime.Coordinate{}, false, err
	}
	return solartime.Coordinate{Latitude: latitude, Longitude: longitude}, true, nil
}

func parseDegrees(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number of degrees", name)
	}
	return v, nil
}
