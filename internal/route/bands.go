package route

import (
	"math"

	"github.com/flightwx/briefing-engine/internal/sounding"
)

// AltitudeBand is one fixed comparison band.
type AltitudeBand struct {
	Name   string  `json:"name"`
	BaseFt float64 `json:"base_ft"`
	TopFt  float64 `json:"top_ft"`
}

// StandardBands are the fixed altitude bands used for cross-model comparison.
var StandardBands = []AltitudeBand{
	{Name: "SFC-6000", BaseFt: 0, TopFt: 6000},
	{Name: "6000-12000", BaseFt: 6000, TopFt: 12000},
	{Name: "12000-18000", BaseFt: 12000, TopFt: 18000},
	{Name: "18000-25000", BaseFt: 18000, TopFt: 25000},
	{Name: "25000+", BaseFt: 25000, TopFt: math.MaxFloat64},
}

// Agreement spreads: models agree on a band when their category indices span
// at most this many steps. Domain convention, kept tunable (see DESIGN.md).
var (
	IcingAgreementMaxSpread = 1
	CloudAgreementMaxSpread = 1
)

// BandModelSummary is one model's worst-case state within one band. Nil
// fields mean the model has nothing overlapping the band.
type BandModelSummary struct {
	IcingRisk *sounding.IcingRisk `json:"icing_risk,omitempty"`
	IcingType *sounding.IcingType `json:"icing_type,omitempty"`
	SLD       bool                `json:"sld"`
	Coverage  *sounding.Coverage  `json:"coverage,omitempty"`
	MinTempC  *float64            `json:"min_temp_c,omitempty"`
	MaxTempC  *float64            `json:"max_temp_c,omitempty"`
}

// BandComparison summarizes all models within one band and whether they
// agree on icing and cloud.
type BandComparison struct {
	Band           AltitudeBand                `json:"band"`
	PerModel       map[string]BandModelSummary `json:"per_model"`
	IcingAgreement bool                        `json:"icing_agreement"`
	CloudAgreement bool                        `json:"cloud_agreement"`
}

// CompareAltitudeBands builds the per-band cross-model comparison for one
// point's soundings.
func CompareAltitudeBands(soundings map[string]*sounding.SoundingAnalysis) []BandComparison {
	out := make([]BandComparison, 0, len(StandardBands))
	for _, band := range StandardBands {
		bc := BandComparison{Band: band, PerModel: make(map[string]BandModelSummary)}
		var icingRanks, cloudRanks []int
		for model, a := range soundings {
			if a == nil {
				continue
			}
			s := summarizeBand(a, band)
			bc.PerModel[model] = s
			if s.IcingRisk != nil {
				icingRanks = append(icingRanks, sounding.IcingRiskRank(*s.IcingRisk))
			} else {
				icingRanks = append(icingRanks, 0)
			}
			if s.Coverage != nil {
				cloudRanks = append(cloudRanks, sounding.CoverageRank(*s.Coverage))
			} else {
				cloudRanks = append(cloudRanks, -1)
			}
		}
		bc.IcingAgreement = rankSpread(icingRanks) <= IcingAgreementMaxSpread
		bc.CloudAgreement = rankSpread(cloudRanks) <= CloudAgreementMaxSpread
		out = append(out, bc)
	}
	return out
}

func summarizeBand(a *sounding.SoundingAnalysis, band AltitudeBand) BandModelSummary {
	var s BandModelSummary

	for _, z := range a.IcingZones {
		if !overlaps(z.BaseFt, z.TopFt, band) {
			continue
		}
		if s.IcingRisk == nil || sounding.IcingRiskRank(z.Risk) > sounding.IcingRiskRank(*s.IcingRisk) {
			risk := z.Risk
			s.IcingRisk = &risk
		}
		if s.IcingType == nil || sounding.IcingTypeRank(z.Type) > sounding.IcingTypeRank(*s.IcingType) {
			typ := z.Type
			s.IcingType = &typ
		}
		if z.SLD {
			s.SLD = true
		}
		s.MinTempC = minPtr(s.MinTempC, z.MeanTemperature)
		s.MaxTempC = maxPtr(s.MaxTempC, z.MeanTemperature)
	}

	for _, c := range a.CloudLayers {
		if !overlaps(c.BaseFt, c.TopFt, band) {
			continue
		}
		if s.Coverage == nil || sounding.CoverageRank(c.Coverage) > sounding.CoverageRank(*s.Coverage) {
			cov := c.Coverage
			s.Coverage = &cov
		}
		s.MinTempC = minPtr(s.MinTempC, c.MeanTemperature)
		s.MaxTempC = maxPtr(s.MaxTempC, c.MeanTemperature)
	}

	for _, lv := range a.Levels {
		if lv.AltitudeFt < band.BaseFt || lv.AltitudeFt >= band.TopFt {
			continue
		}
		s.MinTempC = minPtr(s.MinTempC, lv.Temperature)
		s.MaxTempC = maxPtr(s.MaxTempC, lv.Temperature)
	}
	return s
}

func overlaps(baseFt, topFt float64, band AltitudeBand) bool {
	return baseFt < band.TopFt && topFt >= band.BaseFt
}

func rankSpread(ranks []int) int {
	if len(ranks) < 2 {
		return 0
	}
	minR, maxR := ranks[0], ranks[0]
	for _, r := range ranks[1:] {
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}
	return maxR - minR
}

func minPtr(cur *float64, v float64) *float64 {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func maxPtr(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
