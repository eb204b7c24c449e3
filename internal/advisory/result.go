// Package advisory evaluates route-wide go/no-go rules against a briefing
// context. Each advisory is an independent evaluator registered under a
// stable id; batch evaluation isolates failures so one broken rule never
// aborts the rest.
package advisory

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps results; tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the result time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Status is an advisory verdict.
type Status string

const (
	StatusGreen       Status = "GREEN"
	StatusAmber       Status = "AMBER"
	StatusRed         Status = "RED"
	StatusUnavailable Status = "UNAVAILABLE"
)

var statusRank = map[Status]int{
	StatusGreen: 0,
	StatusAmber: 1,
	StatusRed:   2,
}

// WorstStatus returns the worst status among the inputs, ignoring
// UNAVAILABLE. An empty or all-UNAVAILABLE input yields UNAVAILABLE. The
// result is monotonic: adding a worse status never improves it.
func WorstStatus(statuses []Status) Status {
	worst := StatusUnavailable
	for _, s := range statuses {
		if s == StatusUnavailable {
			continue
		}
		if worst == StatusUnavailable || statusRank[s] > statusRank[worst] {
			worst = s
		}
	}
	return worst
}

// ParameterDef declares one tunable numeric parameter of an advisory.
type ParameterDef struct {
	Key     string  `json:"key"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
}

// CatalogEntry is the static metadata of one advisory. Registered once at
// process start and never mutated.
type CatalogEntry struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	DefaultEnabled bool           `json:"default_enabled"`
	Parameters     []ParameterDef `json:"parameters,omitempty"`
}

// ModelAdvisoryResult is one model's verdict for one advisory.
type ModelAdvisoryResult struct {
	Model              string  `json:"model"`
	Status             Status  `json:"status"`
	Detail             string  `json:"detail,omitempty"`
	AffectedPoints     int     `json:"affected_points"`
	AffectedPct        float64 `json:"affected_pct"`
	AffectedDistanceNm float64 `json:"affected_distance_nm"`
}

// RouteAdvisoryResult is the route-level aggregate of one advisory: the worst
// per-model status with detail text copied from a model exhibiting it, plus
// the parameters actually used.
type RouteAdvisoryResult struct {
	AdvisoryID  string                `json:"advisory_id"`
	Label       string                `json:"label"`
	Category    string                `json:"category"`
	Status      Status                `json:"status"`
	Detail      string                `json:"detail,omitempty"`
	PerModel    []ModelAdvisoryResult `json:"per_model"`
	ParamsUsed  map[string]float64    `json:"params_used,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// aggregate builds the route-level result from per-model verdicts.
func aggregate(entry CatalogEntry, perModel []ModelAdvisoryResult, params Params) RouteAdvisoryResult {
	statuses := make([]Status, len(perModel))
	for i, m := range perModel {
		statuses[i] = m.Status
	}
	worst := WorstStatus(statuses)

	detail := ""
	for _, m := range perModel {
		if m.Status == worst {
			detail = m.Detail
			break
		}
	}

	return RouteAdvisoryResult{
		AdvisoryID:  entry.ID,
		Label:       entry.Label,
		Category:    entry.Category,
		Status:      worst,
		Detail:      detail,
		PerModel:    perModel,
		ParamsUsed:  params.Values(),
		GeneratedAt: clock.Now(),
	}
}
