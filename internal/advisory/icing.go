package advisory

import (
	"fmt"

	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// fikiIcing judges icing for FIKI-equipped aircraft: moderate icing is
// tolerable unless the layers are deep, severe, or carry SLD risk.
type fikiIcing struct{}

func (fikiIcing) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "fiki_icing",
		Label:          "Icing (FIKI)",
		Description:    "Deep, severe, or SLD icing beyond known-icing certification limits.",
		Category:       "icing",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "max_layer_thickness_ft", Default: 3000, Min: 1000, Max: 10000, Step: 500},
		}, pctParams(25, 50)...),
	}
}

func (e fikiIcing) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	maxThickness := params.Get("max_layer_thickness_ft")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		affected, available, severe := scanModel(rc, model, func(_ route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict {
			var v pointVerdict
			for _, z := range a.IcingZones {
				if z.Risk == sounding.IcingSevere || z.SLD {
					v.affected = true
					v.severe = true
				}
				if sounding.IcingRiskRank(z.Risk) >= sounding.IcingRiskRank(sounding.IcingModerate) &&
					z.TopFt-z.BaseFt > maxThickness {
					v.affected = true
				}
			}
			return v
		})
		perModel = append(perModel, pctLadderResult(rc, model, affected, available, severe, amber, red, "icing beyond FIKI limits"))
	}
	return aggregate(e.Catalog(), perModel, params), nil
}

// icingEscape judges icing for non-FIKI aircraft: any icing is only
// acceptable when warm air below offers an escape route. A route with icing
// and no escape anywhere is RED outright.
type icingEscape struct{}

func (icingEscape) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "icing_escape",
		Label:          "Icing escape route",
		Description:    "Warm-air escape below icing: freezing-level clearance over terrain.",
		Category:       "icing",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "min_escape_clearance_ft", Default: 1000, Min: 0, Max: 5000, Step: 500},
		}, pctParams(25, 50)...),
	}
}

func (e icingEscape) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	minClearance := params.Get("min_escape_clearance_ft")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		var icingPoints, noEscape, available int
		for _, pt := range rc.Points {
			a := pt.Soundings[model]
			if a == nil {
				continue
			}
			available++
			if len(a.IcingZones) == 0 {
				continue
			}
			icingPoints++
			if !hasWarmEscape(a, pt, rc.Terrain, minClearance) {
				noEscape++
			}
		}

		m := pctLadderResult(rc, model, noEscape, available, false, amber, red, "icing without escape route")
		if icingPoints > 0 && noEscape == icingPoints {
			// No warm-air escape anywhere icing exists.
			m.Status = StatusRed
			m.Detail = fmt.Sprintf("icing at %d points with no warm-air escape anywhere on route", icingPoints)
		}
		perModel = append(perModel, m)
	}
	return aggregate(e.Catalog(), perModel, params), nil
}

// hasWarmEscape reports whether descending below the freezing level is both
// possible (freezing level known) and safe (it clears the terrain near the
// point by the required margin).
func hasWarmEscape(a *sounding.SoundingAnalysis, pt route.PointAnalysis, terrain route.ElevationProfile, minClearance float64) bool {
	fzl := a.Indices.FreezingLevelFt
	if fzl == nil {
		return false
	}
	elev := terrain.MaxElevationWithin(pt.DistanceNm, terrainWindowNm)
	if elev == nil {
		// No terrain data: assume sea level.
		zero := 0.0
		elev = &zero
	}
	return *fzl-*elev >= minClearance
}

// terrainWindowNm is the half-width of the terrain sampling window around a
// route point.
const terrainWindowNm = 5.0

// freezingLevel flags freezing levels pressed down close to terrain, which
// removes the option of descending into warm air.
type freezingLevel struct{}

func (freezingLevel) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "freezing_level",
		Label:          "Freezing level clearance",
		Description:    "Freezing-level height above terrain sampled within 5 nm of each point.",
		Category:       "icing",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "min_clearance_ft", Default: 2000, Min: 0, Max: 8000, Step: 500},
		}, pctParams(25, 50)...),
	}
}

func (e freezingLevel) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	minClearance := params.Get("min_clearance_ft")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		affected, available, _ := scanModel(rc, model, func(pt route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict {
			fzl := a.Indices.FreezingLevelFt
			if fzl == nil {
				return pointVerdict{}
			}
			elev := rc.Terrain.MaxElevationWithin(pt.DistanceNm, terrainWindowNm)
			if elev == nil {
				return pointVerdict{}
			}
			return pointVerdict{affected: *fzl-*elev < minClearance}
		})
		perModel = append(perModel, pctLadderResult(rc, model, affected, available, false, amber, red, "low freezing level over terrain"))
	}
	return aggregate(e.Catalog(), perModel, params), nil
}
