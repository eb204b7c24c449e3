package sounding

import "math"

// Vertical-motion classification thresholds (Pa/s).
const (
	omegaConvective   = 10.0 // any level beyond this is convective overturning
	omegaQuiescent    = 1.0  // all levels below this is a quiet column
	omegaSignificant  = 0.5  // sign changes only count above this magnitude
	omegaContaminated = 5.0  // mid-level contamination threshold
)

// Convective contamination is judged in the mid-troposphere only.
const (
	contaminationTopHPa    = 400.0
	contaminationBottomHPa = 700.0
)

// CAT layer merge distance.
const catMergeGapHPa = 200.0

// Richardson-number turbulence thresholds.
const (
	riSevere   = 0.25
	riModerate = 0.5
	riLight    = 1.0
)

// AssessVerticalMotion classifies the omega field of a profile and collects
// Richardson-number turbulence layers.
func AssessVerticalMotion(levels []DerivedLevel) VerticalMotionAssessment {
	out := VerticalMotionAssessment{
		Class:     classifyMotion(levels),
		CATLayers: detectCATLayers(levels),
	}

	for _, lv := range levels {
		if lv.OmegaPaS == nil {
			continue
		}
		abs := math.Abs(*lv.OmegaPaS)
		if out.MaxAbsOmega == nil || abs > *out.MaxAbsOmega {
			absCopy := abs
			out.MaxAbsOmega = &absCopy
		}
		if lv.VerticalVelocityFpm != nil {
			if out.MaxVerticalVelocityFpm == nil || math.Abs(*lv.VerticalVelocityFpm) > math.Abs(*out.MaxVerticalVelocityFpm) {
				vv := *lv.VerticalVelocityFpm
				alt := lv.AltitudeFt
				out.MaxVerticalVelocityFpm = &vv
				out.MaxVVAltitudeFt = &alt
			}
		}
		if lv.Pressure >= contaminationTopHPa && lv.Pressure <= contaminationBottomHPa && abs > omegaContaminated {
			out.ConvectiveContamination = true
		}
	}
	return out
}

// classifyMotion buckets the omega series: convective overturning beats
// everything, then a quiet column, then oscillation counting, then the sign
// of the mean.
func classifyMotion(levels []DerivedLevel) MotionClass {
	var omegas []float64
	for _, lv := range levels {
		if lv.OmegaPaS != nil {
			omegas = append(omegas, *lv.OmegaPaS)
		}
	}
	if len(omegas) == 0 {
		return MotionUnavailable
	}

	allQuiet := true
	var sum float64
	for _, o := range omegas {
		abs := math.Abs(o)
		if abs > omegaConvective {
			return MotionConvective
		}
		if abs >= omegaQuiescent {
			allQuiet = false
		}
		sum += o
	}
	if allQuiet {
		return MotionQuiescent
	}

	signChanges := 0
	prevSign := 0
	for _, o := range omegas {
		if math.Abs(o) <= omegaSignificant {
			continue
		}
		sign := 1
		if o < 0 {
			sign = -1
		}
		if prevSign != 0 && sign != prevSign {
			signChanges++
		}
		prevSign = sign
	}
	if signChanges >= 2 {
		return MotionOscillating
	}

	if sum/float64(len(omegas)) < 0 {
		return MotionSynopticAscent
	}
	return MotionSynopticSubsidence
}

// detectCATLayers maps per-level Richardson numbers to risk and merges
// adjacent qualifying levels (pressure gap ≤ 200 hPa) into layers reporting
// the minimum Ri and the worst risk.
func detectCATLayers(levels []DerivedLevel) []CATRiskLayer {
	type member struct {
		level DerivedLevel
		ri    float64
		risk  CATRisk
	}
	var members []member
	for _, lv := range levels {
		if lv.Richardson == nil {
			continue
		}
		risk := catRiskFromRi(*lv.Richardson)
		if risk == CATNone {
			continue
		}
		members = append(members, member{level: lv, ri: *lv.Richardson, risk: risk})
	}
	if len(members) == 0 {
		return nil
	}

	var layers []CATRiskLayer
	group := []member{members[0]}
	flush := func() {
		minRi := group[0].ri
		worst := group[0].risk
		for _, m := range group[1:] {
			if m.ri < minRi {
				minRi = m.ri
			}
			if CATRiskRank(m.risk) > CATRiskRank(worst) {
				worst = m.risk
			}
		}
		layers = append(layers, CATRiskLayer{
			BaseFt:        group[0].level.AltitudeFt,
			TopFt:         group[len(group)-1].level.AltitudeFt,
			MinRichardson: minRi,
			Risk:          worst,
		})
	}
	for _, m := range members[1:] {
		prev := group[len(group)-1]
		if prev.level.Pressure-m.level.Pressure <= catMergeGapHPa {
			group = append(group, m)
			continue
		}
		flush()
		group = []member{m}
	}
	flush()
	return layers
}

func catRiskFromRi(ri float64) CATRisk {
	switch {
	case ri < riSevere:
		return CATSevere
	case ri < riModerate:
		return CATModerate
	case ri < riLight:
		return CATLight
	default:
		return CATNone
	}
}
