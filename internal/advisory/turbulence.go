package advisory

import (
	"math"

	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// turbulence flags CAT risk layers and strong vertical velocities near the
// cruise altitude. A single severe CAT layer at cruise forces RED for that
// model no matter how little of the route it covers.
type turbulence struct{}

func (turbulence) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "turbulence",
		Label:          "Turbulence at cruise",
		Description:    "Clear-air turbulence layers and strong vertical motion near cruise.",
		Category:       "turbulence",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "cruise_band_ft", Default: 2000, Min: 500, Max: 5000, Step: 500},
			{Key: "vv_threshold_fpm", Default: 500, Min: 100, Max: 2000, Step: 100},
		}, pctParams(20, 40)...),
	}
}

func (e turbulence) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	band := params.Get("cruise_band_ft")
	vvThreshold := params.Get("vv_threshold_fpm")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		affected, available, severe := scanModel(rc, model, func(_ route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict {
			var v pointVerdict
			for _, cat := range a.VerticalMotion.CATLayers {
				if !overlapsAltitude(cat.BaseFt, cat.TopFt, rc.CruiseAltitudeFt, band) {
					continue
				}
				v.affected = true
				if cat.Risk == sounding.CATSevere {
					v.severe = true
				}
			}
			for _, lv := range a.Levels {
				if lv.VerticalVelocityFpm == nil {
					continue
				}
				if math.Abs(lv.AltitudeFt-rc.CruiseAltitudeFt) <= band &&
					math.Abs(*lv.VerticalVelocityFpm) > vvThreshold {
					v.affected = true
				}
			}
			return v
		})
		perModel = append(perModel, pctLadderResult(rc, model, affected, available, severe, amber, red, "turbulence near cruise"))
	}
	return aggregate(e.Catalog(), perModel, params), nil
}

// mountainWind flags strong winds near terrain tops, evaluated only at
// points where the nearby terrain is high enough to generate mechanical
// turbulence and wave activity.
type mountainWind struct{}

func (mountainWind) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "mountain_wind",
		Label:          "Mountain winds",
		Description:    "Wind speed near terrain-top altitude over mountainous segments.",
		Category:       "turbulence",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "terrain_threshold_ft", Default: 3000, Min: 1000, Max: 10000, Step: 500},
			{Key: "wind_threshold_kt", Default: 25, Min: 10, Max: 60, Step: 5},
			{Key: "probe_margin_ft", Default: 2000, Min: 0, Max: 5000, Step: 500},
		}, pctParams(25, 50)...),
	}
}

func (e mountainWind) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	terrainThreshold := params.Get("terrain_threshold_ft")
	windThreshold := params.Get("wind_threshold_kt")
	margin := params.Get("probe_margin_ft")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		var affected, evaluated, available int
		for _, pt := range rc.Points {
			a := pt.Soundings[model]
			if a == nil {
				continue
			}
			available++
			elev := rc.Terrain.MaxElevationWithin(pt.DistanceNm, terrainWindowNm)
			if elev == nil || *elev < terrainThreshold {
				continue
			}
			evaluated++
			if speed := windNearAltitude(pt, model, a, *elev+margin); speed != nil && *speed > windThreshold {
				affected++
			}
		}

		if available == 0 {
			perModel = append(perModel, ModelAdvisoryResult{Model: model, Status: StatusUnavailable, Detail: "no sounding data"})
			continue
		}
		if evaluated == 0 {
			perModel = append(perModel, ModelAdvisoryResult{Model: model, Status: StatusGreen, Detail: "no mountainous terrain along route"})
			continue
		}
		m := pctLadderResult(rc, model, affected, evaluated, false, amber, red, "strong wind over high terrain")
		perModel = append(perModel, m)
	}
	return aggregate(e.Catalog(), perModel, params), nil
}

// windNearAltitude returns the wind speed at the sounding level nearest to
// targetFt, falling back to the point's near-cruise wind when the profile
// carries no wind data.
func windNearAltitude(pt route.PointAnalysis, model string, a *sounding.SoundingAnalysis, targetFt float64) *float64 {
	var best *float64
	bestDist := math.Inf(1)
	for _, lv := range a.Levels {
		if lv.WindSpeedKt == nil {
			continue
		}
		if d := math.Abs(lv.AltitudeFt - targetFt); d < bestDist {
			bestDist = d
			best = lv.WindSpeedKt
		}
	}
	if best != nil {
		return best
	}
	if w, ok := pt.Winds[model]; ok {
		speed := w.SpeedKt
		return &speed
	}
	return nil
}
