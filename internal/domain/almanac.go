package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Place is a named coordinate the service publishes daily entries for.
// Name may be empty; the publisher can label it via reverse geocoding.
type Place struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Entry status values. A non-ok status means the civil rise/set pair does
// not exist for that date and the time fields are absent.
const (
	StatusOK         = "ok"
	StatusNeverRises = "never_rises"
	StatusNeverSets  = "never_sets"
)

// AlmanacEntry is the published daily record for one place: the civil
// rise/set pair plus nautical and astronomical twilight bounds. Twilight
// fields are nil when the sun does not cross that zenith on the date.
type AlmanacEntry struct {
	ID        string  `json:"id"`
	Place     Place   `json:"place"`
	Date      string  `json:"date"` // YYYY-MM-DD
	UTCOffset float64 `json:"utc_offset"`
	Status    string  `json:"status"`

	Sunrise          *time.Time `json:"sunrise,omitempty"`
	Sunset           *time.Time `json:"sunset,omitempty"`
	DayLengthMinutes int        `json:"day_length_minutes,omitempty"`

	NauticalDawn     *time.Time `json:"nautical_dawn,omitempty"`
	NauticalDusk     *time.Time `json:"nautical_dusk,omitempty"`
	AstronomicalDawn *time.Time `json:"astronomical_dawn,omitempty"`
	AstronomicalDusk *time.Time `json:"astronomical_dusk,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}

// BuildEntry computes the almanac entry for a place and date. Geometry that
// forbids the civil events degrades to a status field rather than an error;
// only invalid geography or offset fails the build.
func BuildEntry(place Place, utcOffset float64, date time.Time) (AlmanacEntry, error) {
	req, err := NewRequest(place.Latitude, place.Longitude, utcOffset, ZenithCivil, date)
	if err != nil {
		return AlmanacEntry{}, err
	}

	entry := AlmanacEntry{
		ID:         entryID(place, req.Date),
		Place:      place,
		Date:       req.Date.Format("2006-01-02"),
		UTCOffset:  utcOffset,
		Status:     StatusOK,
		ComputedAt: clock.Now(),
	}

	times, err := Calculate(req)
	switch {
	case errors.Is(err, ErrNeverRises):
		entry.Status = StatusNeverRises
	case errors.Is(err, ErrNeverSets):
		entry.Status = StatusNeverSets
	default:
		entry.Sunrise = &times.Rise
		entry.Sunset = &times.Set
		entry.DayLengthMinutes = dayLengthMinutes(times)
	}

	entry.NauticalDawn, entry.NauticalDusk = twilight(req, ZenithNautical)
	entry.AstronomicalDawn, entry.AstronomicalDusk = twilight(req, ZenithAstronomical)

	return entry, nil
}

// twilight reruns the calculation at a deeper zenith. Nil results mean the
// sun never crosses that zenith on the date.
func twilight(req Request, zenith float64) (dawn, dusk *time.Time) {
	req.Zenith = zenith
	times, err := Calculate(req)
	if err != nil {
		return nil, nil
	}
	return &times.Rise, &times.Set
}

// dayLengthMinutes measures rise-to-set at the output's minute resolution.
// Near the antimeridian the set clock time can precede the rise; the span
// still belongs to one solar day, so wrap by 24h.
func dayLengthMinutes(times SunTimes) int {
	d := times.Set.Sub(times.Rise)
	if d < 0 {
		d += 24 * time.Hour
	}
	return int(d.Minutes())
}

// entryID produces a deterministic ID from the entry's key fields, so
// republishing the same place and date yields the same ID.
func entryID(place Place, date time.Time) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%s", place.Name, place.Latitude, place.Longitude, date.Format("2006-01-02"))
	hash := sha256.Sum256([]byte(input))
	return "sun-" + hex.EncodeToString(hash[:8])
}
