package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/couchcryptid/solar-almanac-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Almanac publishing configuration.
	Places          Places        `envconfig:"PLACES" default:"Québec City=46.805,-71.2316"`
	UTCOffset       float64       `envconfig:"UTC_OFFSET" default:"0"`
	HorizonDays     int           `envconfig:"HORIZON_DAYS" default:"7"`
	PublishInterval time.Duration `envconfig:"PUBLISH_INTERVAL" default:"24h"`

	KafkaEnabled   bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSinkTopic string   `envconfig:"KAFKA_SINK_TOPIC" default:"solar-almanac-entries"`

	// Mapbox geocoding configuration.
	MapboxToken     string        `envconfig:"MAPBOX_TOKEN"`
	MapboxEnabled   bool          `envconfig:"MAPBOX_ENABLED"`
	MapboxTimeout   time.Duration `envconfig:"MAPBOX_TIMEOUT" default:"5s"`
	MapboxCacheSize int           `envconfig:"MAPBOX_CACHE_SIZE" default:"1000"`
}

// Places is a semicolon-separated list of almanac places:
// "Name=lat,lon;Other=lat,lon". The name part is optional.
type Places []domain.Place

// Decode implements envconfig.Decoder.
func (p *Places) Decode(value string) error {
	var places []domain.Place
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name := ""
		coords := part
		if i := strings.LastIndex(part, "="); i >= 0 {
			name = strings.TrimSpace(part[:i])
			coords = part[i+1:]
		}

		latStr, lonStr, ok := strings.Cut(coords, ",")
		if !ok {
			return fmt.Errorf("place %q: want Name=lat,lon", part)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return fmt.Errorf("place %q: bad latitude: %w", part, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return fmt.Errorf("place %q: bad longitude: %w", part, err)
		}

		places = append(places, domain.Place{Name: name, Latitude: lat, Longitude: lon})
	}
	if len(places) == 0 {
		return errors.New("no places configured")
	}
	*p = places
	return nil
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates eagerly so bad geography or offsets are
// rejected before any calculation runs.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	// A token implies geocoding unless MAPBOX_ENABLED says otherwise.
	if os.Getenv("MAPBOX_ENABLED") == "" {
		cfg.MapboxEnabled = cfg.MapboxToken != ""
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.UTCOffset < -12 || c.UTCOffset > 14 {
		return fmt.Errorf("UTC_OFFSET %g out of range [-12, 14]", c.UTCOffset)
	}
	for _, place := range c.Places {
		if place.Latitude < -90 || place.Latitude > 90 {
			return fmt.Errorf("place %q: latitude %g out of range [-90, 90]", place.Name, place.Latitude)
		}
		if place.Longitude < -180 || place.Longitude > 180 {
			return fmt.Errorf("place %q: longitude %g out of range [-180, 180]", place.Name, place.Longitude)
		}
	}
	if c.HorizonDays < 1 {
		return errors.New("HORIZON_DAYS must be at least 1")
	}
	if c.PublishInterval <= 0 {
		return errors.New("PUBLISH_INTERVAL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if c.KafkaSinkTopic == "" {
			return errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is empty")
		}
	}
	if c.MapboxEnabled && c.MapboxToken == "" {
		return errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if c.MapboxCacheSize < 1 {
		return errors.New("MAPBOX_CACHE_SIZE must be at least 1")
	}
	return nil
}
