package domain

import (
	"fmt"
	"time"
)

// Solar zenith angles in degrees from vertical.
const (
	// ZenithCivil marks the visible rise/set instant, accounting for
	// atmospheric refraction and the apparent solar disk radius.
	ZenithCivil = 90.83333

	ZenithNautical     = 96.0
	ZenithAstronomical = 108.0
)

// Request is a validated, immutable calculation input. Construct it with
// NewRequest; the zero value is not usable.
type Request struct {
	Latitude  float64 // degrees, [-90, 90]
	Longitude float64 // degrees, [-180, 180]
	UTCOffset float64 // hours, [-12, 14]
	Zenith    float64 // degrees from vertical
	Date      time.Time
}

// NewRequest validates the geography and offset and strips the time of day
// from the date: only year/month/day feed the day-of-year computation.
// A zenith of 0 selects the civil default. Bounds are inclusive; out-of-range
// values yield a *ValidationError and no partially usable request.
func NewRequest(latitude, longitude, utcOffset, zenith float64, date time.Time) (Request, error) {
	if latitude < -90 || latitude > 90 {
		return Request{}, &ValidationError{Field: "latitude", Value: latitude, Min: -90, Max: 90}
	}
	if longitude < -180 || longitude > 180 {
		return Request{}, &ValidationError{Field: "longitude", Value: longitude, Min: -180, Max: 180}
	}
	if utcOffset < -12 || utcOffset > 14 {
		return Request{}, &ValidationError{Field: "utc offset", Value: utcOffset, Min: -12, Max: 14}
	}
	if zenith == 0 {
		zenith = ZenithCivil
	}
	return Request{
		Latitude:  latitude,
		Longitude: longitude,
		UTCOffset: utcOffset,
		Zenith:    zenith,
		Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

// location builds the fixed-offset zone the result timestamps carry. Offsets
// are caller-supplied numeric hours, not IANA zones, so no tzdata lookup.
func (r Request) location() *time.Location {
	if r.UTCOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+g", r.UTCOffset), int(r.UTCOffset*3600))
}

// SunTimes is the pair of local civil timestamps produced by Calculate.
// Each carries the request's calendar date with the computed hour and
// minute; seconds are always zero.
type SunTimes struct {
	Rise time.Time
	Set  time.Time
}
