package domain

import (
	"fmt"
	"math"
	"time"
)

// Hour constants select which side of solar noon the approximate event time
// starts from: 6 for the rising event, 18 for the setting event.
const (
	riseHourConstant = 6.0
	setHourConstant  = 18.0

	degreesPerHour = 15.0
)

// Calculate computes the local civil sunrise and sunset for the request.
// It is a pure, deterministic mapping: identical requests always produce
// identical results, and it is safe for concurrent use.
//
// When the geometry makes an event impossible (polar day/night for the
// given zenith), the returned error wraps ErrNeverRises or ErrNeverSets.
func Calculate(req Request) (SunTimes, error) {
	n := float64(req.Date.YearDay())
	lngHour := req.Longitude / degreesPerHour

	rise, err := localEventHours(req, n, lngHour, true)
	if err != nil {
		return SunTimes{}, fmt.Errorf("sunrise: %w", err)
	}
	set, err := localEventHours(req, n, lngHour, false)
	if err != nil {
		return SunTimes{}, fmt.Errorf("sunset: %w", err)
	}

	loc := req.location()
	return SunTimes{
		Rise: clockTime(req.Date, rise, loc),
		Set:  clockTime(req.Date, set, loc),
	}, nil
}

// localEventHours runs the approximation for one event and returns the
// local civil time as fractional hours in [0, 24).
func localEventHours(req Request, n, lngHour float64, rise bool) (float64, error) {
	hourConstant := setHourConstant
	if rise {
		hourConstant = riseHourConstant
	}

	// Approximate time of the event, in fractional days of the year.
	t := n + ((hourConstant - lngHour) / 24)

	// Sun's mean anomaly.
	m := 0.9856*t - 3.289

	// Sun's true longitude, wrapped into [0, 360).
	l := wrapAngle(m + 1.916*sinDeg(m) + 0.020*sinDeg(2*m) + 282.634)

	// Right ascension, wrapped, then forced into the same quadrant as L.
	// atan resolves angles modulo 180 degrees only, so without the shift RA
	// can land a half-circle away from L.
	ra := wrapAngle(atanDeg(0.91764 * tanDeg(l)))
	ra += 90 * (math.Floor(l/90) - math.Floor(ra/90))
	raHours := ra / degreesPerHour

	// Sun's declination.
	sinDec := 0.39782 * sinDeg(l)
	cosDec := math.Cos(math.Asin(sinDec))

	// Local hour angle. Outside [-1, 1] the event does not occur today.
	cosH := (cosDeg(req.Zenith) - sinDec*sinDeg(req.Latitude)) / (cosDec * cosDeg(req.Latitude))
	if cosH > 1 {
		return 0, ErrNeverRises
	}
	if cosH < -1 {
		return 0, ErrNeverSets
	}

	// Rising happens on the ascending side of the hour-angle circle.
	var h float64
	if rise {
		h = (360 - acosDeg(cosH)) / degreesPerHour
	} else {
		h = acosDeg(cosH) / degreesPerHour
	}

	// Local mean time, back to UTC, then into the caller's civil offset.
	lmt := h + raHours - 0.06571*t - 6.622
	ut := wrapHours(lmt - lngHour)
	return wrapHours(ut + req.UTCOffset), nil
}

// clockTime attaches fractional local hours to the event's calendar date.
// The algorithm has minute resolution, so seconds stay zero.
func clockTime(date time.Time, localHours float64, loc *time.Location) time.Time {
	hour := int(localHours)
	minute := int((localHours - float64(hour)) * 60)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

// wrapAngle normalizes degrees into [0, 360) with a single wrap-around
// correction. The raw values stay within one period of range, so a general
// modulo is never needed and would change boundary behavior.
func wrapAngle(deg float64) float64 {
	if deg < 0 {
		return deg + 360
	}
	if deg >= 360 {
		return deg - 360
	}
	return deg
}

// wrapHours normalizes fractional hours into [0, 24), single-wrap as above.
func wrapHours(h float64) float64 {
	if h < 0 {
		return h + 24
	}
	if h >= 24 {
		return h - 24
	}
	return h
}

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func tanDeg(deg float64) float64 { return math.Tan(deg * math.Pi / 180) }

func atanDeg(x float64) float64 { return math.Atan(x) * 180 / math.Pi }
func acosDeg(x float64) float64 { return math.Acos(x) * 180 / math.Pi }
