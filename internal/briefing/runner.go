package briefing

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/flightwx/briefing-engine/internal/advisory"
	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// ErrEmptyRoute is returned for a request with no points or no models.
var ErrEmptyRoute = errors.New("briefing: request has no points or no models")

// Runner executes briefing requests. Safe for concurrent use.
type Runner struct {
	registry *advisory.Registry
	logger   *slog.Logger
	clock    clockwork.Clock
	workers  int
}

// NewRunner creates a Runner evaluating against the given registry with a
// bounded analysis worker pool.
func NewRunner(registry *advisory.Registry, logger *slog.Logger, clock clockwork.Clock, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{registry: registry, logger: logger, clock: clock, workers: workers}
}

// Run analyzes every (point, model) pair, assembles the immutable route
// context, and evaluates the requested advisories. Analysis units are
// independent, so they fan out across the worker pool; results are identical
// to sequential execution because nothing is shared mutably.
func (r *Runner) Run(req Request) (*Result, error) {
	if len(req.Points) == 0 || len(req.Models) == 0 {
		return nil, ErrEmptyRoute
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	points := r.analyzePoints(req)

	rc := &route.Context{
		Points:           points,
		Terrain:          req.Terrain,
		Models:           req.Models,
		CruiseAltitudeFt: req.CruiseAltitudeFt,
		CeilingFt:        req.CeilingFt,
		TotalDistanceNm:  req.TotalDistanceNm,
	}

	bands := make([][]route.BandComparison, len(points))
	for i := range points {
		bands[i] = route.CompareAltitudeBands(points[i].Soundings)
	}

	return &Result{
		ID:          id,
		GeneratedAt: r.clock.Now(),
		Context:     rc,
		Bands:       bands,
		Advisories:  r.registry.EvaluateAll(r.logger, rc, req.AdvisoryIDs, req.ParameterOverrides),
	}, nil
}

// analyzePoints runs the per-(point, model) sounding analyses across the
// worker pool, then derives the per-point cross-model summaries.
func (r *Runner) analyzePoints(req Request) []route.PointAnalysis {
	type unit struct{ point int; model string }
	units := make([]unit, 0, len(req.Points)*len(req.Models))
	for i := range req.Points {
		for _, m := range req.Models {
			units = append(units, unit{point: i, model: m})
		}
	}

	points := make([]route.PointAnalysis, len(req.Points))
	for i, p := range req.Points {
		points[i] = route.PointAnalysis{
			Location:   p.Location,
			DistanceNm: p.DistanceNm,
			Soundings:  make(map[string]*sounding.SoundingAnalysis, len(req.Models)),
			Winds:      make(map[string]route.Wind, len(req.Models)),
		}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	work := make(chan unit)
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range work {
				r.analyzeUnit(req, u.point, u.model, points, &mu)
			}
		}()
	}
	for _, u := range units {
		work <- u
	}
	close(work)
	wg.Wait()

	for i := range points {
		points[i].Divergences = pointDivergences(points[i], req.CruiseAltitudeFt)
		points[i].AltitudeAdvisories = route.ComputeAltitudeAdvisories(points[i].Soundings, req.CeilingFt)
	}
	return points
}

func (r *Runner) analyzeUnit(req Request, point int, model string, points []route.PointAnalysis, mu *sync.Mutex) {
	p := req.Points[point]
	samples := p.Samples[model]
	var surface *sounding.PressureLevelSample
	if p.Surface != nil {
		surface = p.Surface[model]
	}

	a, err := sounding.Analyze(model, samples, surface)
	if err != nil {
		// Insufficient data: the model is simply absent at this point.
		r.logger.Debug("no analysis possible",
			"point", point, "model", model, "reason", err)
		return
	}

	mu.Lock()
	defer mu.Unlock()
	points[point].Soundings[model] = a
	if w := windAtAltitude(a, req.CruiseAltitudeFt); w != nil {
		points[point].Winds[model] = *w
	}
}

// windAtAltitude picks the wind at the derived level nearest to altFt.
func windAtAltitude(a *sounding.SoundingAnalysis, altFt float64) *route.Wind {
	var best *route.Wind
	bestDist := math.Inf(1)
	for _, lv := range a.Levels {
		if lv.WindSpeedKt == nil || lv.WindDirectionDeg == nil {
			continue
		}
		if d := math.Abs(lv.AltitudeFt - altFt); d < bestDist {
			bestDist = d
			best = &route.Wind{SpeedKt: *lv.WindSpeedKt, DirectionDeg: *lv.WindDirectionDeg}
		}
	}
	return best
}

// pointDivergences compares the tracked variables across models at one point.
func pointDivergences(pt route.PointAnalysis, cruiseFt float64) []route.ModelDivergence {
	dirs := make(map[string]float64)
	speeds := make(map[string]float64)
	temps := make(map[string]float64)
	fzls := make(map[string]float64)
	capes := make(map[string]float64)
	bases := make(map[string]float64)

	for model, a := range pt.Soundings {
		if w, ok := pt.Winds[model]; ok {
			dirs[model] = w.DirectionDeg
			speeds[model] = w.SpeedKt
		}
		if t := temperatureAtAltitude(a, cruiseFt); t != nil {
			temps[model] = *t
		}
		if a.Indices.FreezingLevelFt != nil {
			fzls[model] = *a.Indices.FreezingLevelFt
		}
		if a.Indices.SurfaceCAPE != nil {
			capes[model] = *a.Indices.SurfaceCAPE
		}
		if len(a.CloudLayers) > 0 {
			bases[model] = a.CloudLayers[0].BaseFt
		}
	}

	var out []route.ModelDivergence
	for _, c := range []struct {
		variable string
		values   map[string]float64
	}{
		{route.VarWindDirection, dirs},
		{"wind_speed", speeds},
		{"temperature", temps},
		{"freezing_level", fzls},
		{"cape", capes},
		{"cloud_base", bases},
	} {
		if d := route.Compare(c.variable, c.values); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

func temperatureAtAltitude(a *sounding.SoundingAnalysis, altFt float64) *float64 {
	var best *float64
	bestDist := math.Inf(1)
	for i := range a.Levels {
		lv := a.Levels[i]
		if d := math.Abs(lv.AltitudeFt - altFt); d < bestDist {
			bestDist = d
			t := lv.Temperature
			best = &t
		}
	}
	return best
}
