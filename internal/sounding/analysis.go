package sounding

// Cloud-cover altitude bands (ft MSL) and the percentage each coverage
// category contributes. The percentages are reporting conventions, not
// physics; keep them in one place.
const (
	lowCloudTopFt = 6500.0
	midCloudTopFt = 20000.0
)

var coveragePct = map[Coverage]float64{
	CoverageScattered: 40,
	CoverageBroken:    70,
	CoverageOvercast:  95,
}

// Analyze runs the full analysis chain on raw samples for one model at one
// route point. It returns ErrInsufficientData when no profile can be built;
// everything after a successful profile build degrades field-by-field
// instead of failing.
func Analyze(model string, samples []PressureLevelSample, surface *PressureLevelSample) (*SoundingAnalysis, error) {
	profile, err := BuildProfile(samples, surface)
	if err != nil {
		return nil, err
	}
	return AnalyzeProfile(model, profile), nil
}

// AnalyzeProfile composes indices, derived levels, layer detectors, and the
// convective and vertical-motion assessors into one immutable result.
func AnalyzeProfile(model string, profile *Profile) *SoundingAnalysis {
	indices := ComputeIndices(profile)
	levels := DeriveLevels(profile)
	clouds := DetectCloudLayers(levels, indices)
	icing := DetectIcingZones(levels, clouds, indices)

	a := &SoundingAnalysis{
		Model:          model,
		Indices:        indices,
		Levels:         levels,
		CloudLayers:    clouds,
		IcingZones:     icing,
		Inversions:     DetectInversions(levels),
		Convective:     AssessConvective(indices),
		VerticalMotion: AssessVerticalMotion(levels),
	}
	a.LowCloudPct, a.MidCloudPct, a.HighCloudPct = cloudCoverByBand(clouds)
	return a
}

// cloudCoverByBand reports the worst coverage percentage among layers
// overlapping the low (<6500 ft), mid (6500–20000 ft), and high (>20000 ft)
// bands.
func cloudCoverByBand(clouds []CloudLayer) (low, mid, high float64) {
	for _, c := range clouds {
		pct := coveragePct[c.Coverage]
		if c.BaseFt < lowCloudTopFt && pct > low {
			low = pct
		}
		if c.TopFt > lowCloudTopFt && c.BaseFt < midCloudTopFt && pct > mid {
			mid = pct
		}
		if c.TopFt > midCloudTopFt && pct > high {
			high = pct
		}
	}
	return low, mid, high
}
