package advisory

import (
	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// convective flags thunderstorm risk along the route. High or extreme risk
// at any point forces RED regardless of route percentage.
type convective struct{}

func (convective) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "convective",
		Label:          "Convective risk",
		Description:    "Thunderstorm potential from parcel instability along the route.",
		Category:       "convective",
		DefaultEnabled: true,
		Parameters: append([]ParameterDef{
			// Minimum risk rank that counts a point as affected:
			// marginal=1, low=2, moderate=3, high=4, extreme=5.
			{Key: "min_risk_rank", Default: 3, Min: 1, Max: 5, Step: 1},
		}, pctParams(25, 50)...),
	}
}

func (e convective) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	minRank := int(params.Get("min_risk_rank"))
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	perModel := make([]ModelAdvisoryResult, 0, len(rc.Models))
	for _, model := range rc.Models {
		affected, available, severe := scanModel(rc, model, func(_ route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict {
			rank := sounding.ConvectiveRiskRank(a.Convective.Risk)
			return pointVerdict{
				affected: rank >= minRank,
				severe:   rank >= sounding.ConvectiveRiskRank(sounding.ConvectiveHigh),
			}
		})
		perModel = append(perModel, pctLadderResult(rc, model, affected, available, severe, amber, red, "convective risk"))
	}
	return aggregate(e.Catalog(), perModel, params), nil
}
