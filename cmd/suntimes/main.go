// Command suntimes computes sunrise and sunset for a single location and
// date, printing the local clock times to stdout.
//
// Usage:
//
//	go run ./cmd/suntimes -lat 46.805 -lon -71.2316 -date 2014-01-01 -offset -5
//	go run ./cmd/suntimes -lat 69.6492 -lon 18.9553 -date 2014-12-21 -zenith nautical
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/solar-almanac-service/internal/domain"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude in decimal degrees (south negative)")
	lon := flag.Float64("lon", 0, "longitude in decimal degrees (west negative)")
	date := flag.String("date", "", "calendar date as YYYY-MM-DD (default today)")
	offset := flag.Float64("offset", 0, "UTC offset in hours, e.g. -5 or 5.5")
	zenith := flag.String("zenith", "civil", "zenith angle in degrees, or civil/nautical/astronomical")
	flag.Parse()

	latSet, lonSet := false, false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if !latSet || !lonSet {
		flag.Usage()
		os.Exit(2)
	}

	if code := run(*lat, *lon, *date, *offset, *zenith); code != 0 {
		os.Exit(code)
	}
}

func run(lat, lon float64, dateStr string, offset float64, zenithStr string) int {
	date := time.Now().UTC()
	if dateStr != "" {
		var err error
		if date, err = time.Parse("2006-01-02", dateStr); err != nil {
			fmt.Fprintf(os.Stderr, "invalid date %q: want YYYY-MM-DD\n", dateStr)
			return 2
		}
	}

	zenith, err := parseZenith(zenithStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	req, err := domain.NewRequest(lat, lon, offset, zenith, date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	fmt.Printf("latitude:  %g\n", req.Latitude)
	fmt.Printf("longitude: %g\n", req.Longitude)
	fmt.Printf("date:      %s\n", req.Date.Format("2006-01-02"))
	fmt.Printf("offset:    UTC%+g\n", req.UTCOffset)

	times, err := domain.Calculate(req)
	switch {
	case errors.Is(err, domain.ErrNeverRises):
		fmt.Println("the sun never rises on this date at this location")
		return 0
	case errors.Is(err, domain.ErrNeverSets):
		fmt.Println("the sun never sets on this date at this location")
		return 0
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("sunrise:   %s\n", times.Rise.Format("15:04"))
	fmt.Printf("sunset:    %s\n", times.Set.Format("15:04"))
	return 0
}

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
