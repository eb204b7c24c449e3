// Package route aggregates per-point sounding analyses into route-wide
// summaries: cross-model divergence, altitude regimes, altitude-band
// comparison, and the immutable context consumed by advisory evaluators.
package route

import (
	"math"

	"github.com/flightwx/briefing-engine/internal/sounding"
)

// Waypoint is one point of the route geometry.
type Waypoint struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ElevationSample is one terrain sample along the route.
type ElevationSample struct {
	DistanceNm  float64 `json:"distance_nm"`
	ElevationFt float64 `json:"elevation_ft"`
}

// ElevationProfile is the terrain profile supplied by the terrain collaborator.
type ElevationProfile struct {
	Samples []ElevationSample `json:"samples"`
}

// MaxElevationWithin returns the highest terrain sample within windowNm of
// centerNm, or nil when no sample falls inside the window.
func (e ElevationProfile) MaxElevationWithin(centerNm, windowNm float64) *float64 {
	var best *float64
	for _, s := range e.Samples {
		if math.Abs(s.DistanceNm-centerNm) > windowNm {
			continue
		}
		if best == nil || s.ElevationFt > *best {
			el := s.ElevationFt
			best = &el
		}
	}
	return best
}

// Wind is the near-cruise wind for one model at one point.
type Wind struct {
	SpeedKt      float64 `json:"speed_kt"`
	DirectionDeg float64 `json:"direction_deg"`
}

// PointAnalysis bundles everything known about one route point. Soundings
// maps model name to analysis; a model with insufficient data is simply
// absent from the map.
type PointAnalysis struct {
	Location   Waypoint `json:"location"`
	DistanceNm float64  `json:"distance_nm"`

	Soundings          map[string]*sounding.SoundingAnalysis `json:"soundings"`
	Winds              map[string]Wind                       `json:"winds,omitempty"`
	AltitudeAdvisories *AltitudeAdvisories                   `json:"altitude_advisories,omitempty"`
	Divergences        []ModelDivergence                     `json:"divergences,omitempty"`
}

// Context is the immutable route-wide input consumed read-only by every
// advisory evaluator. It is constructed once per briefing run.
type Context struct {
	Points           []PointAnalysis  `json:"points"`
	Terrain          ElevationProfile `json:"terrain"`
	Models           []string         `json:"models"`
	CruiseAltitudeFt float64          `json:"cruise_altitude_ft"`
	CeilingFt        float64          `json:"ceiling_ft"`
	TotalDistanceNm  float64          `json:"total_distance_nm"`
}

// Sounding returns the analysis for a model at point i, or nil when absent.
func (c *Context) Sounding(i int, model string) *sounding.SoundingAnalysis {
	if i < 0 || i >= len(c.Points) {
		return nil
	}
	return c.Points[i].Soundings[model]
}
