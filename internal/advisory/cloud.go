package advisory

import (
	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// vmcCruise flags cloud coverage overlapping the cruise altitude: overcast
// across too much of the route is RED, broken-or-worse is AMBER.
type vmcCruise struct{}

func (vmcCruise) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "vmc_cruise",
		Label:          "VMC at cruise",
		Description:    "Broken or overcast layers intersecting the cruise altitude.",
		Category:       "cloud",
		DefaultEnabled: true,
		Parameters:     pctParams(25, 50),
	}
}

func (e vmcCruise) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		var ovc, bknOrWorse, available int
		for _, pt := range rc.Points {
			a := pt.Soundings[model]
			if a == nil {
				continue
			}
			available++
			worst := worstCoverageAtCruise(a, rc.CruiseAltitudeFt)
			if worst == nil {
				continue
			}
			if *worst == sounding.CoverageOvercast {
				ovc++
			}
			bknOrWorse++
		}

		if available == 0 {
			perModel = append(perModel, ModelAdvisoryResult{Model: model, Status: StatusUnavailable, Detail: "no sounding data"})
			continue
		}

		ovcPct := float64(ovc) / float64(available) * 100
		bknPct := float64(bknOrWorse) / float64(available) * 100
		m := pctLadderResult(rc, model, bknOrWorse, available, false, amber, red, "BKN+ cloud at cruise")
		// Status ladder keys on OVC for RED, BKN-or-worse for AMBER.
		switch {
		case ovcPct >= red:
			m.Status = StatusRed
		case bknPct >= amber:
			m.Status = StatusAmber
		default:
			m.Status = StatusGreen
		}
		perModel = append(perModel, m)
	}
	return aggregate(e.Catalog(), perModel, params), nil
}

// worstCoverageAtCruise returns the thickest coverage among broken-or-worse
// layers intersecting the cruise altitude.
func worstCoverageAtCruise(a *sounding.SoundingAnalysis, cruiseFt float64) *sounding.Coverage {
	var worst *sounding.Coverage
	for _, c := range a.CloudLayers {
		if cruiseFt < c.BaseFt || cruiseFt > c.TopFt {
			continue
		}
		if sounding.CoverageRank(c.Coverage) < sounding.CoverageRank(sounding.CoverageBroken) {
			continue
		}
		if worst == nil || sounding.CoverageRank(c.Coverage) > sounding.CoverageRank(*worst) {
			cov := c.Coverage
			worst = &cov
		}
	}
	return worst
}

// cloudTop flags cloud decks whose tops, plus a climb margin, exceed the
// aircraft's service ceiling — VFR-on-top would be unreachable.
type cloudTop struct{}

func (cloudTop) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "cloud_top",
		Label:          "Cloud tops vs ceiling",
		Description:    "Cloud tops that cannot be out-climbed within the service ceiling.",
		Category:       "cloud",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			{Key: "margin_ft", Default: 2000, Min: 0, Max: 5000, Step: 500},
		}, pctParams(25, 50)...),
	}
}

func (e cloudTop) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	margin := params.Get("margin_ft")
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		affected, available, _ := scanModel(rc, model, func(_ route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict {
			for _, c := range a.CloudLayers {
				top := c.TopFt
				if c.TheoreticalMaxTopFt != nil && *c.TheoreticalMaxTopFt > top {
					top = *c.TheoreticalMaxTopFt
				}
				if sounding.CoverageRank(c.Coverage) >= sounding.CoverageRank(sounding.CoverageBroken) &&
					top+margin > rc.CeilingFt {
					return pointVerdict{affected: true}
				}
			}
			return pointVerdict{}
		})
		perModel = append(perModel, pctLadderResult(rc, model, affected, available, false, amber, red, "unclimbable cloud tops"))
	}
	return aggregate(e.Catalog(), perModel, params), nil
}
