// Package domain computes local civil sunrise and sunset times.
//
// # Algorithm
//
// The calculator implements the classical "Sunrise Equation" approximation
// from the Almanac for Computers (US Naval Observatory, 1990), as popularized
// by Paul Schlyter. Given a calendar date, a latitude/longitude, a numeric
// UTC offset in hours, and a solar zenith angle, it derives:
//
//	day of year → approximate event time → mean anomaly → true longitude
//	→ right ascension → declination → local hour angle → local mean time
//	→ UTC → local civil time
//
// The pipeline runs once per event: hour constant 6 for sunrise and 18 for
// sunset, with the hour-angle branch inverted for the rising side of the
// circle. All trigonometry works in degrees. The approximation carries an
// inherent error band of one to two minutes; output has minute resolution.
//
// # Angle and time normalization
//
// Intermediate angles (true longitude, right ascension) are normalized into
// [0, 360) and times into [0, 24) with a single conditional add/subtract of
// one period, never a general modulo. The raw values are guaranteed within
// one period of range by construction of the formula, and the published
// algorithm's behavior at the boundaries depends on the single-wrap form.
//
// Right ascension additionally needs a quadrant correction against the true
// longitude: atan alone resolves angles modulo 180 degrees, so RA is shifted
// by 90° * (floor(L/90) − floor(RA/90)) to land in L's quadrant.
//
// # Zenith angles
//
// The zenith is the sun's angle from vertical at which the event is deemed
// to occur. The civil zenith of 90.83333° (the default) accounts for
// atmospheric refraction and the apparent solar disk radius; 96° and 108°
// give nautical and astronomical twilight bounds.
//
// # Error conditions
//
// Inputs are validated eagerly: NewRequest rejects latitude outside
// [-90, 90], longitude outside [-180, 180], and UTC offset outside [-12, 14]
// with a *ValidationError before any calculation runs.
//
// Near the poles (or at extreme zenith values) the hour-angle cosine falls
// outside [-1, 1] and the event does not occur on that date: cosH > 1 means
// the sun never rises, cosH < -1 means it never sets. Calculate surfaces
// these as ErrNeverRises / ErrNeverSets rather than propagating a NaN from
// an undefined inverse cosine. Each event is checked independently; the
// approximate times t differ slightly between the two passes, so one event
// can fail while the other succeeds.
//
// # ID generation
//
// Almanac entry IDs are deterministic SHA-256 hashes of place|lat|lon|date.
// This enables idempotent upserts downstream (ON CONFLICT DO NOTHING) and
// replay safety without distributed coordination. See [entryID].
package domain
