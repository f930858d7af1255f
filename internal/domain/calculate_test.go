package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden values pinned from the Almanac for Computers approximation.
// The Québec City 2014-01-01 case is the primary regression anchor.
func TestCalculate_GoldenValues(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		utcOffset float64
		zenith    float64
		date      time.Time
		rise      string
		set       string
	}{
		{
			name:     "Québec City 2014-01-01 civil",
			latitude: 46.805, longitude: -71.2316, utcOffset: -5,
			date: time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			rise: "07:30", set: "16:07",
		},
		{
			name:     "Québec City 2014-01-01 nautical",
			latitude: 46.805, longitude: -71.2316, utcOffset: -5, zenith: ZenithNautical,
			date: time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			rise: "06:55", set: "16:42",
		},
		{
			name:     "Québec City 2014-01-01 astronomical",
			latitude: 46.805, longitude: -71.2316, utcOffset: -5, zenith: ZenithAstronomical,
			date: time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			rise: "05:39", set: "17:57",
		},
		{
			name:     "Québec City summer solstice",
			latitude: 46.805, longitude: -71.2316, utcOffset: -4,
			date: time.Date(2014, time.June, 21, 0, 0, 0, 0, time.UTC),
			rise: "04:50", set: "20:42",
		},
		{
			name:     "Sydney southern hemisphere",
			latitude: -33.8688, longitude: 151.2093, utcOffset: 11,
			date: time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			rise: "05:47", set: "20:09",
		},
		{
			name:     "equator at Greenwich equinox",
			latitude: 0, longitude: 0, utcOffset: 0,
			date: time.Date(2014, time.March, 20, 0, 0, 0, 0, time.UTC),
			rise: "06:04", set: "18:10",
		},
		{
			name:     "Fiji east of antimeridian",
			latitude: -17.7134, longitude: 178.065, utcOffset: 12,
			date: time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
			rise: "05:35", set: "18:46",
		},
		{
			name:     "leap day",
			latitude: 46.805, longitude: -71.2316, utcOffset: -5,
			date: time.Date(2016, time.February, 29, 0, 0, 0, 0, time.UTC),
			rise: "06:25", set: "17:30",
		},
		{
			name:     "last day of year",
			latitude: 46.805, longitude: -71.2316, utcOffset: -5,
			date: time.Date(2014, time.December, 31, 0, 0, 0, 0, time.UTC),
			rise: "07:30", set: "16:06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.latitude, tt.longitude, tt.utcOffset, tt.zenith, tt.date)
			require.NoError(t, err)

			times, err := Calculate(req)
			require.NoError(t, err)

			assert.Equal(t, tt.rise, times.Rise.Format("15:04"))
			assert.Equal(t, tt.set, times.Set.Format("15:04"))

			// Same calendar date as the input, seconds zeroed.
			assert.Equal(t, tt.date.Format("2006-01-02"), times.Rise.Format("2006-01-02"))
			assert.Equal(t, tt.date.Format("2006-01-02"), times.Set.Format("2006-01-02"))
			assert.Zero(t, times.Rise.Second())
			assert.Zero(t, times.Set.Second())
		})
	}
}

func TestCalculate_PolarNight(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		utcOffset float64
	}{
		{"Alert, Nunavut", 82.5018, -62.3481, -5},
		{"Tromsø", 69.6492, 18.9553, 1},
		{"north pole", 90, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.latitude, tt.longitude, tt.utcOffset, 0,
				time.Date(2014, time.December, 21, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			_, err = Calculate(req)
			require.ErrorIs(t, err, ErrNeverRises)
			assert.NotErrorIs(t, err, ErrNeverSets)
		})
	}
}

func TestCalculate_PolarDay(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		utcOffset float64
	}{
		{"Alert, Nunavut", 82.5018, -62.3481, -4},
		{"north pole", 90, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.latitude, tt.longitude, tt.utcOffset, 0,
				time.Date(2014, time.June, 21, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)

			_, err = Calculate(req)
			require.ErrorIs(t, err, ErrNeverSets)
		})
	}
}

// Deeper zeniths shrink the forbidden window: at Tromsø's winter solstice
// the civil pair does not exist but the nautical one does.
func TestCalculate_ZenithControlsDomain(t *testing.T) {
	date := time.Date(2014, time.December, 21, 0, 0, 0, 0, time.UTC)

	civil, err := NewRequest(69.6492, 18.9553, 1, ZenithCivil, date)
	require.NoError(t, err)
	_, err = Calculate(civil)
	require.ErrorIs(t, err, ErrNeverRises)

	nautical, err := NewRequest(69.6492, 18.9553, 1, ZenithNautical, date)
	require.NoError(t, err)
	times, err := Calculate(nautical)
	require.NoError(t, err)
	assert.Equal(t, "09:31", times.Rise.Format("15:04"))
	assert.Equal(t, "13:53", times.Set.Format("15:04"))
}

func TestCalculate_Idempotent(t *testing.T) {
	req, err := NewRequest(46.805, -71.2316, -5, 0,
		time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	first, err := Calculate(req)
	require.NoError(t, err)
	second, err := Calculate(req)
	require.NoError(t, err)

	assert.True(t, first.Rise.Equal(second.Rise))
	assert.True(t, first.Set.Equal(second.Set))
}

// Shifting the UTC offset by +1 hour shifts both clock times by exactly
// one hour; the underlying instants are unchanged.
func TestCalculate_OffsetShift(t *testing.T) {
	date := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

	atFive, err := NewRequest(46.805, -71.2316, -5, 0, date)
	require.NoError(t, err)
	atFour, err := NewRequest(46.805, -71.2316, -4, 0, date)
	require.NoError(t, err)

	five, err := Calculate(atFive)
	require.NoError(t, err)
	four, err := Calculate(atFour)
	require.NoError(t, err)

	assert.Equal(t, "08:30", four.Rise.Format("15:04"))
	assert.Equal(t, "17:07", four.Set.Format("15:04"))
	assert.True(t, five.Rise.Equal(four.Rise))
	assert.True(t, five.Set.Equal(four.Set))
}

// Sweeping a full year walks the true longitude through all four quadrants,
// so a broken right-ascension correction would surface as a wild clock time.
func TestCalculate_FullYearSweep(t *testing.T) {
	for day := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == 2014; day = day.AddDate(0, 0, 1) {
		req, err := NewRequest(46.805, -71.2316, -5, 0, day)
		require.NoError(t, err)

		times, err := Calculate(req)
		require.NoError(t, err, "date %s", day.Format("2006-01-02"))

		rise := float64(times.Rise.Hour()) + float64(times.Rise.Minute())/60
		set := float64(times.Set.Hour()) + float64(times.Set.Minute())/60
		assert.InDelta(t, 5.7, rise, 2.0, "sunrise out of plausible band on %s", day.Format("2006-01-02"))
		assert.InDelta(t, 17.8, set, 2.1, "sunset out of plausible band on %s", day.Format("2006-01-02"))
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative wraps up once", -10, 350},
		{"over a period wraps down once", 370, 10},
		{"zero unchanged", 0, 0},
		{"upper bound wraps to zero", 360, 0},
		{"in range unchanged", 359.999, 359.999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapAngle(tt.in))
		})
	}
}

func TestWrapHours(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative wraps up once", -1.5, 22.5},
		{"over a period wraps down once", 25.25, 1.25},
		{"upper bound wraps to zero", 24, 0},
		{"in range unchanged", 23.999, 23.999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapHours(tt.in))
		})
	}
}
