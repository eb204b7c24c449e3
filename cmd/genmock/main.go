// Command genmock generates a synthetic multi-model briefing request fixture,
// and optionally the evaluated result, using the actual engine packages so the
// output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/briefing_request.json \
//	  -result-out data/mock/briefing_result.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/flightwx/briefing-engine/internal/advisory"
	"github.com/flightwx/briefing-engine/internal/briefing"
	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

var baseDate = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the briefing request fixture")
	resultOut := flag.String("result-out", "", "optional output path for the evaluated result fixture")
	points := flag.Int("points", 5, "number of route points")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	req := buildRequest(*points)

	if err := writeJSON(*out, req); err != nil {
		return err
	}
	fmt.Printf("wrote request fixture: %s (%d points, %d models)\n", *out, len(req.Points), len(req.Models))

	if *resultOut == "" {
		return nil
	}

	// Fixed clock for reproducible GeneratedAt timestamps.
	fakeClock := clockwork.NewFakeClockAt(baseDate)
	advisory.SetClock(fakeClock)
	defer advisory.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := briefing.NewRunner(advisory.Default(), logger, fakeClock, 4)

	result, err := runner.Run(req)
	if err != nil {
		return fmt.Errorf("evaluate fixture request: %w", err)
	}
	if err := writeJSON(*resultOut, result); err != nil {
		return err
	}
	fmt.Printf("wrote result fixture: %s (%d advisories)\n", *resultOut, len(result.Advisories))
	return nil
}

// buildRequest synthesizes a mountain crossing with a moist mid-level layer
// that deepens along the route, so cloud, icing, and escape-altitude logic all
// trigger. The two models disagree slightly to exercise divergence tracking.
func buildRequest(points int) briefing.Request {
	if points < 2 {
		points = 2
	}

	req := briefing.Request{
		ID:               "mock-briefing-1",
		Models:           []string{"gfs", "nam"},
		CruiseAltitudeFt: 10000,
		CeilingFt:        20000,
		TotalDistanceNm:  float64(points-1) * 40,
		Points:           make([]briefing.RequestPoint, 0, points),
	}

	// Terrain rises toward the middle of the route.
	for i := 0; i < points*4; i++ {
		d := float64(i) / float64(points*4-1) * req.TotalDistanceNm
		elev := 1200 + 5200*math.Sin(math.Pi*d/req.TotalDistanceNm)
		req.Terrain.Samples = append(req.Terrain.Samples, route.ElevationSample{
			DistanceNm:  d,
			ElevationFt: elev,
		})
	}

	for i := 0; i < points; i++ {
		frac := float64(i) / float64(points-1)
		req.Points = append(req.Points, briefing.RequestPoint{
			Location:   route.Waypoint{Lat: 39.5 + frac*1.2, Lon: -106.8 + frac*2.5},
			DistanceNm: frac * req.TotalDistanceNm,
			Samples: map[string][]sounding.PressureLevelSample{
				"gfs": buildProfile(frac, 0),
				"nam": buildProfile(frac, 1),
			},
		})
	}
	return req
}

// buildProfile returns one model's column. modelSkew perturbs temperature and
// wind so the models never agree exactly.
func buildProfile(routeFrac float64, modelSkew float64) []sounding.PressureLevelSample {
	var samples []sounding.PressureLevelSample
	for p := 1000.0; p >= 250; p -= 25 {
		heightM := 44330.8 * (1 - math.Pow(p/1013.25, 0.190263))
		temp := 12.0 - heightM*0.0062 + modelSkew*0.8

		// Moist layer between 750 and 550 hPa that deepens along the route.
		depression := 12.0
		if p <= 780 && p >= 540-routeFrac*60 {
			depression = 0.5 + modelSkew*0.4
		}
		dew := temp - depression

		speed := 18 + heightM*0.004 + modelSkew*6
		dir := math.Mod(240+heightM*0.002+modelSkew*12, 360)
		omega := -0.4 * math.Sin(math.Pi*(1000-p)/750) * (1 + routeFrac)

		h := heightM
		t := temp
		d := dew
		s := speed
		dg := dir
		o := omega
		samples = append(samples, sounding.PressureLevelSample{
			Pressure:           p,
			Temperature:        &t,
			Dewpoint:           &d,
			WindSpeed:          &s,
			WindDirection:      &dg,
			GeopotentialHeight: &h,
			Omega:              &o,
		})
	}
	return samples
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
