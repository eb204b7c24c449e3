package advisory

import (
	"fmt"

	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// pointVerdict is one point's contribution to a model's verdict.
type pointVerdict struct {
	affected bool
	severe   bool // forces RED for the model regardless of percentage
}

// scanModel applies judge to every point where the model has a sounding.
func scanModel(rc *route.Context, model string, judge func(pt route.PointAnalysis, a *sounding.SoundingAnalysis) pointVerdict) (affected, available int, severe bool) {
	for _, pt := range rc.Points {
		a := pt.Soundings[model]
		if a == nil {
			continue
		}
		available++
		v := judge(pt, a)
		if v.affected {
			affected++
		}
		if v.severe {
			severe = true
		}
	}
	return affected, available, severe
}

// pctLadderResult classifies a model from the fraction of affected points:
// below amberPct → GREEN, below redPct → AMBER, else RED. A severe event
// forces RED regardless of percentage. No available points → UNAVAILABLE.
func pctLadderResult(rc *route.Context, model string, affected, available int, severe bool, amberPct, redPct float64, subject string) ModelAdvisoryResult {
	if available == 0 {
		return ModelAdvisoryResult{Model: model, Status: StatusUnavailable, Detail: "no sounding data"}
	}
	pct := float64(affected) / float64(available) * 100
	distance := 0.0
	if n := len(rc.Points); n > 0 {
		distance = float64(affected) / float64(n) * rc.TotalDistanceNm
	}

	status := StatusGreen
	switch {
	case severe || pct >= redPct:
		status = StatusRed
	case pct >= amberPct:
		status = StatusAmber
	}

	detail := fmt.Sprintf("%s at %d of %d points (%.0f%%)", subject, affected, available, pct)
	if severe {
		detail += ", severe conditions present"
	}
	if affected == 0 && !severe {
		detail = fmt.Sprintf("no %s along route", subject)
	}

	return ModelAdvisoryResult{
		Model:              model,
		Status:             status,
		Detail:             detail,
		AffectedPoints:     affected,
		AffectedPct:        pct,
		AffectedDistanceNm: distance,
	}
}

// overlapsAltitude reports whether [baseFt, topFt] intersects the band
// centered on altFt with the given half-width.
func overlapsAltitude(baseFt, topFt, altFt, halfWidthFt float64) bool {
	return baseFt <= altFt+halfWidthFt && topFt >= altFt-halfWidthFt
}

// pctParams are the shared amber/red percentage parameter definitions most
// evaluators declare.
func pctParams(amberDefault, redDefault float64) []ParameterDef {
	return []ParameterDef{
		{Key: "amber_pct", Default: amberDefault, Min: 0, Max: 100, Step: 5},
		{Key: "red_pct", Default: redDefault, Min: 0, Max: 100, Step: 5},
	}
}
