package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ahsan786123/solar-time-app/internal/domain/location"
	"github.com/Ahsan786123/solar-time-app/internal/domain/solartime"
)

const (
	defaultBaseURL = "http://ip-api.com/json"
	defaultTimeout = 10 * time.Second
	responseFields = "status,message,lat,lon"
)

// Client resolves IP addresses to coordinates using an ip-api.com compatible
// endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a lookup client. An empty baseURL selects ip-api.com.
func NewClient(baseURL string, timeout time.Duration) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Locate resolves ip. An empty ip asks the service for the caller's own
// public address.
func (c *Client) Locate(ctx context.Context, ip string) (solartime.Coordinate, error) {
	endpoint := c.baseURL
	if ip = strings.TrimSpace(ip); ip != "" {
		endpoint = fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(ip))
	}
	endpoint += "?fields=" + responseFields

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return solartime.Coordinate{}, location.Unknown(fmt.Errorf("build geoip request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return solartime.Coordinate{}, fmt.Errorf("geoip request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return solartime.Coordinate{}, statusError(resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&raw); err != nil {
		return solartime.Coordinate{}, location.Unknown(fmt.Errorf("decode geoip response: %w", err))
	}
	return normalize(raw)
}

// Acquirer binds Locate to one address.
func (c *Client) Acquirer(ip string) location.Acquirer {
	return location.AcquirerFunc(func(ctx context.Context) (solartime.Coordinate, error) {
		return c.Locate(ctx, ip)
	})
}

type apiResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

func normalize(raw apiResponse) (solartime.Coordinate, error) {
	if !strings.EqualFold(raw.Status, "success") {
		msg := strings.TrimSpace(raw.Message)
		if msg == "" {
			msg = "lookup failed"
		}
		return solartime.Coordinate{}, location.PositionUnavailable(fmt.Errorf("geoip: %s", msg))
	}
	if raw.Lat == nil || raw.Lon == nil {
		return solartime.Coordinate{}, location.PositionUnavailable(fmt.Errorf("geoip: response missing coordinates"))
	}
	return solartime.Coordinate{Latitude: *raw.Lat, Longitude: *raw.Lon}, nil
}

func statusError(status int, body string) error {
	err := fmt.Errorf("geoip request error: status=%d body=%s", status, body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return location.PermissionDenied(err)
	case status == http.StatusNotFound:
		return location.PositionUnavailable(err)
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return location.Timeout(err)
	default:
		return location.Unknown(err)
	}
}
