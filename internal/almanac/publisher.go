// Package almanac computes daily solar almanac entries for the configured
// places and hands them to a sink on a fixed schedule.
package almanac

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/solar-almanac-service/internal/config"
	"github.com/couchcryptid/solar-almanac-service/internal/domain"
	"github.com/couchcryptid/solar-almanac-service/internal/observability"
)

// Sink receives a batch of computed entries. Implemented by the Kafka writer.
type Sink interface {
	PublishBatch(ctx context.Context, entries []domain.AlmanacEntry) error
}

// Exponential backoff: start at 200ms, double each retry, cap at 5s.
// Keeps retry storms short while avoiding tight loops during sink outages.
const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Publisher runs the compute-and-publish loop: one cycle at startup, then
// one per interval. A nil sink computes and logs only (HTTP-only mode).
type Publisher struct {
	places      []domain.Place
	utcOffset   float64
	horizonDays int
	interval    time.Duration
	sink        Sink
	geocoder    domain.Geocoder
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Publisher. Pass a nil sink to disable publishing and a nil
// geocoder to disable place labeling.
func New(cfg *config.Config, sink Sink, geocoder domain.Geocoder, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	return &Publisher{
		places:      slices.Clone([]domain.Place(cfg.Places)),
		utcOffset:   cfg.UTCOffset,
		horizonDays: cfg.HorizonDays,
		interval:    cfg.PublishInterval,
		sink:        sink,
		geocoder:    geocoder,
		clock:       clock,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once at least one cycle has completed, or an
// error describing why the service is not yet ready.
func (p *Publisher) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("publisher has not completed a cycle yet")
	}
	return nil
}

// Run executes the publish loop until the context is cancelled. The first
// cycle runs immediately; failed cycles are retried with backoff before the
// loop returns to the interval schedule.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("publisher started",
		"places", len(p.places),
		"horizon_days", p.horizonDays,
		"interval", p.interval,
	)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	p.labelPlaces(ctx)

	backoff := initialBackoff
	if !p.cycleWithRetry(ctx, &backoff) {
		return nil
	}

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("publisher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if !p.cycleWithRetry(ctx, &backoff) {
				return nil
			}
		}
	}
}

// cycleWithRetry runs one cycle, retrying with backoff until it succeeds.
// Returns false if the publisher should stop.
func (p *Publisher) cycleWithRetry(ctx context.Context, backoff *time.Duration) bool {
	for {
		err := p.cycle(ctx)
		if err == nil {
			*backoff = initialBackoff
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("publish cycle failed", "error", err)
		if !sleepWithContext(ctx, *backoff) {
			return false
		}
		*backoff = nextBackoff(*backoff, maxBackoff)
	}
}

// cycle computes entries for every place over the horizon and publishes them.
func (p *Publisher) cycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	today := p.clock.Now()

	entries := make([]domain.AlmanacEntry, 0, len(p.places)*p.horizonDays)
	for day := range p.horizonDays {
		date := today.AddDate(0, 0, day)
		for _, place := range p.places {
			entry, err := domain.BuildEntry(place, p.utcOffset, date)
			if err != nil {
				p.logger.Warn("entry build failed, skipping place",
					"place", place.Name, "lat", place.Latitude, "lon", place.Longitude, "error", err)
				p.metrics.ComputeErrors.WithLabelValues("validation").Inc()
				continue
			}
			p.metrics.EntriesComputed.Inc()
			if entry.Status != domain.StatusOK {
				p.metrics.ComputeErrors.WithLabelValues(entry.Status).Inc()
			}
			entries = append(entries, entry)
		}
	}

	p.metrics.BatchSize.Observe(float64(len(entries)))

	if p.sink == nil {
		p.logger.Info("sink disabled, entries computed only", "entries", len(entries))
	} else if len(entries) > 0 {
		if err := p.sink.PublishBatch(ctx, entries); err != nil {
			p.metrics.PublishErrors.Inc()
			return err
		}
		p.metrics.EntriesPublished.Add(float64(len(entries)))
		p.logger.Info("entries published", "entries", len(entries))
	}

	p.metrics.PublishDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

// labelPlaces fills in missing place names by reverse geocoding, once at
// startup. Failures degrade to unlabeled entries.
func (p *Publisher) labelPlaces(ctx context.Context) {
	if p.geocoder == nil {
		return
	}
	for i := range p.places {
		if p.places[i].Name != "" {
			continue
		}
		result, err := p.geocoder.ReverseGeocode(ctx, p.places[i].Latitude, p.places[i].Longitude)
		if err != nil {
			p.logger.Warn("reverse geocoding failed",
				"lat", p.places[i].Latitude,
				"lon", p.places[i].Longitude,
				"error", err,
			)
			continue
		}
		if result.PlaceName != "" {
			p.places[i].Name = result.PlaceName
			p.logger.Info("place labeled", "name", result.PlaceName,
				"lat", p.places[i].Latitude, "lon", p.places[i].Longitude)
		}
	}
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
