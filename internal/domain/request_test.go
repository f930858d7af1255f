package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_Bounds(t *testing.T) {
	date := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		utcOffset float64
		wantField string // empty means the request is accepted
	}{
		{"all zero", 0, 0, 0, ""},
		{"latitude at north bound", 90, 0, 0, ""},
		{"latitude at south bound", -90, 0, 0, ""},
		{"latitude just over", 90.0001, 0, 0, "latitude"},
		{"latitude just under", -90.0001, 0, 0, "latitude"},
		{"longitude at east bound", 0, 180, 0, ""},
		{"longitude at west bound", 0, -180, 0, ""},
		{"longitude just over", 0, 180.0001, 0, "longitude"},
		{"longitude just under", 0, -180.0001, 0, "longitude"},
		{"offset at west bound", 0, 0, -12, ""},
		{"offset at east bound", 0, 0, 14, ""},
		{"offset just under", 0, 0, -12.0001, "utc offset"},
		{"offset just over", 0, 0, 14.0001, "utc offset"},
		{"fractional offset", 12.9716, 77.5946, 5.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.latitude, tt.longitude, tt.utcOffset, 0, date)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNewRequest_StripsTimeOfDay(t *testing.T) {
	withClock := time.Date(2014, time.January, 1, 17, 42, 31, 999, time.FixedZone("UTC-5", -5*3600))

	req, err := NewRequest(46.805, -71.2316, -5, 0, withClock)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC), req.Date)

	// The clock component must not influence the result.
	midnight, err := NewRequest(46.805, -71.2316, -5, 0,
		time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	a, err := Calculate(req)
	require.NoError(t, err)
	b, err := Calculate(midnight)
	require.NoError(t, err)
	assert.True(t, a.Rise.Equal(b.Rise))
	assert.True(t, a.Set.Equal(b.Set))
}

func TestNewRequest_ZenithDefault(t *testing.T) {
	date := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

	req, err := NewRequest(46.805, -71.2316, -5, 0, date)
	require.NoError(t, err)
	assert.Equal(t, ZenithCivil, req.Zenith)

	req, err = NewRequest(46.805, -71.2316, -5, ZenithAstronomical, date)
	require.NoError(t, err)
	assert.Equal(t, ZenithAstronomical, req.Zenith)
}

func TestRequest_Location(t *testing.T) {
	date := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

	req, err := NewRequest(46.805, -71.2316, -5, 0, date)
	require.NoError(t, err)
	times, err := Calculate(req)
	require.NoError(t, err)

	_, offsetSecs := times.Rise.Zone()
	assert.Equal(t, -5*3600, offsetSecs)

	utc, err := NewRequest(0, 0, 0, 0, date)
	require.NoError(t, err)
	times, err = Calculate(utc)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, times.Rise.Location())
}
