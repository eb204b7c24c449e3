// Package briefing orchestrates a full route briefing run: per-point
// per-model sounding analysis, cross-model summaries, and advisory
// evaluation over the assembled route context.
package briefing

import (
	"context"
	"time"

	"github.com/flightwx/briefing-engine/internal/advisory"
	"github.com/flightwx/briefing-engine/internal/route"
	"github.com/flightwx/briefing-engine/internal/sounding"
)

// RawMessage is an unprocessed briefing request from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RequestPoint is one route point's forecast bundle in a briefing request.
type RequestPoint struct {
	Location   route.Waypoint `json:"location"`
	DistanceNm float64        `json:"distance_nm"`

	// Samples maps model name to that model's pressure-level samples at this
	// point, ordered as delivered by the forecast collector.
	Samples map[string][]sounding.PressureLevelSample `json:"samples"`

	// Surface is an optional per-model surface observation.
	Surface map[string]*sounding.PressureLevelSample `json:"surface,omitempty"`
}

// Request is one briefing job: route geometry, terrain, and the per-point
// per-model forecast samples.
type Request struct {
	ID               string                 `json:"id,omitempty"`
	Models           []string               `json:"models"`
	CruiseAltitudeFt float64                `json:"cruise_altitude_ft"`
	CeilingFt        float64                `json:"ceiling_ft"`
	TotalDistanceNm  float64                `json:"total_distance_nm"`
	Terrain          route.ElevationProfile `json:"terrain"`
	Points           []RequestPoint         `json:"points"`

	// AdvisoryIDs selects specific advisories; empty means all
	// default-enabled ones.
	AdvisoryIDs []string `json:"advisory_ids,omitempty"`

	// ParameterOverrides maps advisory id → parameter key → value.
	ParameterOverrides map[string]map[string]float64 `json:"parameter_overrides,omitempty"`
}

// Result is the serialized outcome of one briefing run.
type Result struct {
	ID          string                         `json:"id"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Context     *route.Context                 `json:"context"`
	Bands       [][]route.BandComparison       `json:"bands,omitempty"` // per point
	Advisories  []advisory.RouteAdvisoryResult `json:"advisories"`
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
