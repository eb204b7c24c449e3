package advisory

import (
	"fmt"

	"github.com/flightwx/briefing-engine/internal/route"
)

// modelAgreement is the one cross-model advisory: it reports, under the
// pseudo-model "all", the fraction of route points where the forecast models
// disagree poorly on any tracked variable.
type modelAgreement struct{}

func (modelAgreement) Catalog() CatalogEntry {
	return CatalogEntry{
		ID:             "model_agreement",
		Label:          "Model agreement",
		Description:    "Cross-model divergence on tracked variables along the route.",
		Category:       "model",
		DefaultEnabled: true,
		Parameters:     pctParams(25, 50),
	}
}

func (e modelAgreement) Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error) {
	amber := params.Get("amber_pct")
	red := params.Get("red_pct")

	var poor, withDivergence int
	for _, pt := range rc.Points {
		if len(pt.Divergences) == 0 {
			continue
		}
		withDivergence++
		for _, d := range pt.Divergences {
			if d.Agreement == route.AgreementPoor {
				poor++
				break
			}
		}
	}

	var m ModelAdvisoryResult
	if withDivergence == 0 {
		m = ModelAdvisoryResult{Model: "all", Status: StatusUnavailable, Detail: "fewer than two models available"}
	} else {
		pct := float64(poor) / float64(withDivergence) * 100
		status := StatusGreen
		switch {
		case pct >= red:
			status = StatusRed
		case pct >= amber:
			status = StatusAmber
		}
		m = ModelAdvisoryResult{
			Model:          "all",
			Status:         status,
			Detail:         fmt.Sprintf("poor model agreement at %d of %d points (%.0f%%)", poor, withDivergence, pct),
			AffectedPoints: poor,
			AffectedPct:    pct,
		}
		if n := len(rc.Points); n > 0 {
			m.AffectedDistanceNm = float64(poor) / float64(n) * rc.TotalDistanceNm
		}
	}
	return aggregate(e.Catalog(), []ModelAdvisoryResult{m}, params), nil
}
