package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/solar-almanac-service/internal/domain"
	"github.com/couchcryptid/solar-almanac-service/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the calculator API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	geocoder   domain.Geocoder // nil disables place-name lookup
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/sun, /healthz, /readyz, and
// /metrics routes. Pass a nil geocoder to disable the place query parameter.
func NewServer(addr string, ready ReadinessChecker, geocoder domain.Geocoder, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		geocoder: geocoder,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}

	mux.HandleFunc("GET /v1/sun", s.handleSun)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// sunResponse is the /v1/sun payload. Times are absent when the status says
// the event does not occur.
type sunResponse struct {
	Place     string     `json:"place,omitempty"`
	Latitude  float64    `json:"lat"`
	Longitude float64    `json:"lon"`
	Date      string     `json:"date"`
	UTCOffset float64    `json:"utc_offset"`
	Zenith    float64    `json:"zenith"`
	Status    string     `json:"status"`
	Sunrise   *time.Time `json:"sunrise,omitempty"`
	Sunset    *time.Time `json:"sunset,omitempty"`
}

// handleSun computes sunrise/sunset for the query's location and date.
// Invalid input is a 400. Geometry that forbids the event is still a 200,
// with a never_rises / never_sets status and no event times.
func (s *Server) handleSun(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp := sunResponse{Status: domain.StatusOK}

	var err error
	if place := q.Get("place"); place != "" {
		resp.Place = place
		resp.Latitude, resp.Longitude, err = s.resolvePlace(r.Context(), place, q.Get("region"))
	} else {
		resp.Latitude, resp.Longitude, err = parseCoordinates(q.Get("lat"), q.Get("lon"))
	}
	if err != nil {
		s.rejectSun(w, err)
		return
	}

	date := s.clock.Now()
	if v := q.Get("date"); v != "" {
		if date, err = time.Parse("2006-01-02", v); err != nil {
			s.rejectSun(w, fmt.Errorf("invalid date %q: want YYYY-MM-DD", v))
			return
		}
	}

	if resp.UTCOffset, err = parseFloatParam(q.Get("offset"), "offset", 0); err != nil {
		s.rejectSun(w, err)
		return
	}
	if resp.Zenith, err = parseZenith(q.Get("zenith")); err != nil {
		s.rejectSun(w, err)
		return
	}

	req, err := domain.NewRequest(resp.Latitude, resp.Longitude, resp.UTCOffset, resp.Zenith, date)
	if err != nil {
		s.rejectSun(w, err)
		return
	}
	resp.Date = req.Date.Format("2006-01-02")
	resp.Zenith = req.Zenith

	times, err := domain.Calculate(req)
	switch {
	case errors.Is(err, domain.ErrNeverRises):
		resp.Status = domain.StatusNeverRises
	case errors.Is(err, domain.ErrNeverSets):
		resp.Status = domain.StatusNeverSets
	default:
		resp.Sunrise = &times.Rise
		resp.Sunset = &times.Set
	}

	s.metrics.SunRequests.WithLabelValues(resp.Status).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) rejectSun(w http.ResponseWriter, err error) {
	s.metrics.SunRequests.WithLabelValues("invalid").Inc()
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// resolvePlace forward-geocodes a place name when the geocoder is enabled.
func (s *Server) resolvePlace(ctx context.Context, place, region string) (lat, lon float64, err error) {
	if s.geocoder == nil {
		return 0, 0, errors.New("place lookup is not enabled")
	}
	result, err := s.geocoder.ForwardGeocode(ctx, place, region)
	if err != nil {
		s.logger.Warn("forward geocoding failed", "place", place, "error", err)
		return 0, 0, fmt.Errorf("resolve place %q: %w", place, err)
	}
	if result.Lat == 0 && result.Lon == 0 {
		return 0, 0, fmt.Errorf("unknown place %q", place)
	}
	return result.Lat, result.Lon, nil
}

func parseCoordinates(latStr, lonStr string) (lat, lon float64, err error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, errors.New("lat and lon are required (or pass place=)")
	}
	if lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid lat %q", latStr)
	}
	if lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid lon %q", lonStr)
	}
	return lat, lon, nil
}

func parseFloatParam(value, name string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

// parseZenith accepts a named twilight zenith or a numeric angle in degrees.
func parseZenith(value string) (float64, error) {
	switch value {
	case "", "civil":
		return domain.ZenithCivil, nil
	case "nautical":
		return domain.ZenithNautical, nil
	case "astronomical":
		return domain.ZenithAstronomical, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid zenith %q: want degrees or civil/nautical/astronomical", value)
	}
	return v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
