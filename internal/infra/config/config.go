package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Solar    SolarConfig    `yaml:"solar"`
	Location LocationConfig `yaml:"location"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
	Stream       StreamConfig    `yaml:"stream"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// StreamConfig bounds live clock streams.
type StreamConfig struct {
	MaxPerIP int `yaml:"maxPerIp"`
}

// SolarConfig controls the live clock.
type SolarConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval"`
}

// LocationConfig controls how coordinates are acquired.
type LocationConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxAge       time.Duration `yaml:"maxAge"`
	GeoIPEnabled bool          `yaml:"geoipEnabled"`
	GeoIPBaseURL string        `yaml:"geoipBaseUrl"`
	// Latitude and Longitude pin a fixed coordinate when both are set.
	Latitude  *float64    `yaml:"latitude"`
	Longitude *float64    `yaml:"longitude"`
	Cache     CacheConfig `yaml:"cache"`
}

// CacheConfig contains connection information for the shared fix cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// HasFixedCoordinate reports whether a static coordinate is configured.
func (c LocationConfig) HasFixedCoordinate() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_STREAM_MAX_PER_IP"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Stream.MaxPerIP = parsed
		}
	}
	if v := os.Getenv("SOLAR_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Solar.RefreshInterval = parsed
		}
	}
	if v := os.Getenv("LOCATION_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Location.Timeout = parsed
		}
	}
	if v := os.Getenv("LOCATION_MAX_AGE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Location.MaxAge = parsed
		}
	}
	if v := os.Getenv("LOCATION_GEOIP_ENABLED"); v != "" {
		cfg.Location.GeoIPEnabled = parseBool(v)
	}
	if v := os.Getenv("LOCATION_GEOIP_BASE_URL"); v != "" {
		cfg.Location.GeoIPBaseURL = v
	}
	if v := os.Getenv("LOCATION_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = &parsed
		}
	}
	if v := os.Getenv("LOCATION_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = &parsed
		}
	}
	if v := os.Getenv("LOCATION_CACHE_ENABLED"); v != "" {
		cfg.Location.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("LOCATION_CACHE_ADDR"); v != "" {
		cfg.Location.Cache.Addr = v
	}
	if v := os.Getenv("LOCATION_CACHE_PREFIX"); v != "" {
		cfg.Location.Cache.Prefix = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Stream: StreamConfig{
				MaxPerIP: 4,
			},
		},
		Solar: SolarConfig{
			RefreshInterval: time.Second,
		},
		Location: LocationConfig{
			Timeout:      10 * time.Second,
			MaxAge:       5 * time.Minute,
			GeoIPEnabled: true,
			GeoIPBaseURL: "http://ip-api.com/json",
			Cache: CacheConfig{
				Enabled: false,
				Prefix:  "solar",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Stream.MaxPerIP <= 0 {
		return errors.New("http.stream.maxPerIp must be positive")
	}
	if c.Solar.RefreshInterval <= 0 {
		return errors.New("solar.refreshInterval must be positive")
	}
	if c.Location.Timeout < 0 {
		return errors.New("location.timeout cannot be negative")
	}
	if c.Location.MaxAge < 0 {
		return errors.New("location.maxAge cannot be negative")
	}
	if c.Location.GeoIPEnabled && strings.TrimSpace(c.Location.GeoIPBaseURL) == "" {
		return errors.New("location.geoipBaseUrl cannot be empty when geoip is enabled")
	}
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return errors.New("location.latitude and location.longitude must be set together")
	}
	if c.Location.HasFixedCoordinate() {
		lat, lon := *c.Location.Latitude, *c.Location.Longitude
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return errors.New("location.latitude must be within [-90, 90]")
		}
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return errors.New("location.longitude must be within [-180, 180]")
		}
	}
	if c.Location.Cache.Enabled && strings.TrimSpace(c.Location.Cache.Addr) == "" {
		return errors.New("location.cache.addr cannot be empty when the cache is enabled")
	}
	return nil
}
