package route

import (
	"math"
	"sort"

	"github.com/flightwx/briefing-engine/internal/sounding"
)

// Altitude-advisory constants.
const (
	regimeRoundFt       = 1000.0 // layer boundaries round to the nearest 1000 ft
	icingEscapeMarginFt = 500.0  // buffer below/above icing when advising altitude changes
)

// RegimeSlice is one vertical interval of one model's profile, classified by
// its midpoint state. Slices for a profile are contiguous and tile
// [0, ceiling] exactly.
type RegimeSlice struct {
	BaseFt    float64            `json:"base_ft"`
	TopFt     float64            `json:"top_ft"`
	InCloud   bool               `json:"in_cloud"`
	IcingRisk sounding.IcingRisk `json:"icing_risk"`
	IcingType sounding.IcingType `json:"icing_type"`
}

// Clear reports whether the slice is cloud- and icing-free.
func (s RegimeSlice) Clear() bool {
	return !s.InCloud && s.IcingRisk == sounding.IcingNone
}

// AltitudeRegimes slices [0, ceiling] into classified intervals for one
// model. Layer boundaries (cloud and icing bases/tops, freezing level) are
// rounded to the nearest 1000 ft and clamped; each interval takes the
// in-cloud and icing state of its midpoint; adjacent intervals with identical
// state merge. With fewer than two surviving boundaries the whole column is
// one clear slice.
func AltitudeRegimes(a *sounding.SoundingAnalysis, ceilingFt float64) []RegimeSlice {
	points := boundaryPoints(a, ceilingFt)
	if len(points) < 2 {
		return []RegimeSlice{{BaseFt: 0, TopFt: ceilingFt, IcingRisk: sounding.IcingNone, IcingType: sounding.IcingTypeNone}}
	}

	var slices []RegimeSlice
	for i := 0; i < len(points)-1; i++ {
		base, top := points[i], points[i+1]
		mid := (base + top) / 2
		s := RegimeSlice{
			BaseFt:    base,
			TopFt:     top,
			InCloud:   inCloudAt(a.CloudLayers, mid),
			IcingRisk: sounding.IcingNone,
			IcingType: sounding.IcingTypeNone,
		}
		if z := icingAt(a.IcingZones, mid); z != nil {
			s.IcingRisk = z.Risk
			s.IcingType = z.Type
		}
		slices = append(slices, s)
	}

	return mergeIdenticalSlices(slices, ceilingFt)
}

func boundaryPoints(a *sounding.SoundingAnalysis, ceilingFt float64) []float64 {
	var raw []float64
	raw = append(raw, 0, ceilingFt)
	for _, c := range a.CloudLayers {
		raw = append(raw, c.BaseFt, c.TopFt)
	}
	for _, z := range a.IcingZones {
		raw = append(raw, z.BaseFt, z.TopFt)
	}
	if a.Indices.FreezingLevelFt != nil {
		raw = append(raw, *a.Indices.FreezingLevelFt)
	}

	seen := make(map[float64]bool)
	var points []float64
	for _, v := range raw {
		r := math.Round(v/regimeRoundFt) * regimeRoundFt
		if r < 0 {
			r = 0
		}
		if r > ceilingFt {
			r = ceilingFt
		}
		if !seen[r] {
			seen[r] = true
			points = append(points, r)
		}
	}
	sort.Float64s(points)
	return points
}

func inCloudAt(clouds []sounding.CloudLayer, altFt float64) bool {
	for _, c := range clouds {
		if altFt >= c.BaseFt && altFt <= c.TopFt {
			return true
		}
	}
	return false
}

func icingAt(zones []sounding.IcingZone, altFt float64) *sounding.IcingZone {
	var worst *sounding.IcingZone
	for i := range zones {
		z := &zones[i]
		if altFt < z.BaseFt || altFt > z.TopFt {
			continue
		}
		if worst == nil || sounding.IcingRiskRank(z.Risk) > sounding.IcingRiskRank(worst.Risk) {
			worst = z
		}
	}
	return worst
}

func mergeIdenticalSlices(slices []RegimeSlice, ceilingFt float64) []RegimeSlice {
	if len(slices) == 0 {
		return []RegimeSlice{{BaseFt: 0, TopFt: ceilingFt, IcingRisk: sounding.IcingNone, IcingType: sounding.IcingTypeNone}}
	}
	merged := []RegimeSlice{slices[0]}
	for _, s := range slices[1:] {
		last := &merged[len(merged)-1]
		if last.InCloud == s.InCloud && last.IcingRisk == s.IcingRisk && last.IcingType == s.IcingType {
			last.TopFt = s.TopFt
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// AltitudeAdvisories carries the cross-model descend/climb guidance for one
// point. Per-model values key on model name; route values are the most
// conservative across models.
type AltitudeAdvisories struct {
	DescendBelowFt map[string]float64 `json:"descend_below_ft,omitempty"`
	RouteDescendFt *float64           `json:"route_descend_ft,omitempty"`
	ClimbAboveFt   map[string]float64 `json:"climb_above_ft,omitempty"`
	RouteClimbFt   *float64           `json:"route_climb_ft,omitempty"`
	ClimbFeasible  bool               `json:"climb_feasible"`
}

// ComputeAltitudeAdvisories derives descend-below-icing and climb-above-icing
// altitudes across models. Advisories exist only when at least one model
// shows icing. The route descend altitude is the minimum across models (most
// conservative); the route climb altitude is the maximum, feasible only when
// it stays at or below the flight ceiling.
func ComputeAltitudeAdvisories(soundings map[string]*sounding.SoundingAnalysis, ceilingFt float64) *AltitudeAdvisories {
	anyIcing := false
	for _, a := range soundings {
		if a != nil && len(a.IcingZones) > 0 {
			anyIcing = true
			break
		}
	}
	if !anyIcing {
		return nil
	}

	adv := &AltitudeAdvisories{
		DescendBelowFt: make(map[string]float64),
		ClimbAboveFt:   make(map[string]float64),
	}
	for model, a := range soundings {
		if a == nil || len(a.IcingZones) == 0 {
			continue
		}
		if d := descendAltitude(a); d != nil {
			adv.DescendBelowFt[model] = *d
			if adv.RouteDescendFt == nil || *d < *adv.RouteDescendFt {
				adv.RouteDescendFt = d
			}
		}
		c := climbAltitude(a)
		adv.ClimbAboveFt[model] = c
		if adv.RouteClimbFt == nil || c > *adv.RouteClimbFt {
			cc := c
			adv.RouteClimbFt = &cc
		}
	}
	adv.ClimbFeasible = adv.RouteClimbFt != nil && *adv.RouteClimbFt <= ceilingFt
	return adv
}

// descendAltitude is min(freezing level, lowest icing-overlapping cloud base)
// minus the escape margin, floored at zero. When neither exists, the lowest
// icing-zone base minus the margin serves as fallback.
func descendAltitude(a *sounding.SoundingAnalysis) *float64 {
	var candidate *float64
	if a.Indices.FreezingLevelFt != nil {
		v := *a.Indices.FreezingLevelFt
		candidate = &v
	}
	if base := lowestIcingCloudBase(a); base != nil {
		if candidate == nil || *base < *candidate {
			candidate = base
		}
	}
	if candidate == nil {
		if len(a.IcingZones) == 0 {
			return nil
		}
		v := a.IcingZones[0].BaseFt
		candidate = &v
	}
	alt := math.Max(0, *candidate-icingEscapeMarginFt)
	return &alt
}

// climbAltitude is the higher of the highest icing-zone top and the highest
// icing-overlapping cloud top, plus the escape margin.
func climbAltitude(a *sounding.SoundingAnalysis) float64 {
	var top float64
	for _, z := range a.IcingZones {
		top = math.Max(top, z.TopFt)
	}
	for _, c := range a.CloudLayers {
		if cloudOverlapsIcing(c, a.IcingZones) {
			top = math.Max(top, c.TopFt)
		}
	}
	return top + icingEscapeMarginFt
}

func lowestIcingCloudBase(a *sounding.SoundingAnalysis) *float64 {
	var base *float64
	for _, c := range a.CloudLayers {
		if !cloudOverlapsIcing(c, a.IcingZones) {
			continue
		}
		if base == nil || c.BaseFt < *base {
			v := c.BaseFt
			base = &v
		}
	}
	return base
}

func cloudOverlapsIcing(c sounding.CloudLayer, zones []sounding.IcingZone) bool {
	for _, z := range zones {
		if c.BaseFt <= z.TopFt && c.TopFt >= z.BaseFt {
			return true
		}
	}
	return false
}
