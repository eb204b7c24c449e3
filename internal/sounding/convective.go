package sounding

import "fmt"

// CAPE ladder thresholds (J/kg).
const (
	capeExtreme  = 3000.0
	capeHigh     = 1500.0
	capeModerate = 500.0
	capeLow      = 100.0
)

// cinStrongCap is the inhibition below which the risk is downgraded one step.
const cinStrongCap = -200.0

// Severity-modifier thresholds.
const (
	shearSupercellKt = 40.0
	shearMulticellKt = 25.0
	hailFZLFt        = 11500.0
	hailCAPE         = 1000.0
	kIndexActive     = 35.0
	totalTotalsActive = 55.0
	liftedIndexActive = -6.0
)

// AssessConvective classifies thunderstorm risk from the thermodynamic
// indices. The CAPE ladder sets the base risk; strong inhibition (CIN below
// −200 J/kg) downgrades one step with a floor at none. Modifiers are
// advisory text only and never change the risk category.
func AssessConvective(ix ThermodynamicIndices) ConvectiveAssessment {
	cape := bestCAPE(ix)
	out := ConvectiveAssessment{Risk: ConvectiveNone, CAPE: cape, CIN: ix.CIN}

	if cape != nil {
		switch {
		case *cape >= capeExtreme:
			out.Risk = ConvectiveExtreme
		case *cape >= capeHigh:
			out.Risk = ConvectiveHigh
		case *cape >= capeModerate:
			out.Risk = ConvectiveModerate
		case *cape >= capeLow:
			out.Risk = ConvectiveLow
		case *cape > 0 && ix.LFCPressure != nil && ix.ELPressure != nil:
			out.Risk = ConvectiveMarginal
		}
	}

	if ix.CIN != nil && *ix.CIN < cinStrongCap {
		out.Risk = downgradeOne(out.Risk)
	}

	out.Modifiers = convectiveModifiers(ix, cape)
	return out
}

// bestCAPE prefers the most-unstable parcel, falling back to the surface
// parcel when it is unavailable.
func bestCAPE(ix ThermodynamicIndices) *float64 {
	if ix.MostUnstableCAPE != nil {
		return ix.MostUnstableCAPE
	}
	return ix.SurfaceCAPE
}

func downgradeOne(r ConvectiveRisk) ConvectiveRisk {
	order := []ConvectiveRisk{
		ConvectiveNone, ConvectiveMarginal, ConvectiveLow,
		ConvectiveModerate, ConvectiveHigh, ConvectiveExtreme,
	}
	rank := ConvectiveRiskRank(r)
	if rank <= 0 {
		return ConvectiveNone
	}
	return order[rank-1]
}

func convectiveModifiers(ix ThermodynamicIndices, cape *float64) []string {
	var mods []string
	if ix.Shear06KmKt != nil {
		switch {
		case *ix.Shear06KmKt > shearSupercellKt:
			mods = append(mods, fmt.Sprintf("strong deep-layer shear (%.0f kt): organized storms or supercells possible", *ix.Shear06KmKt))
		case *ix.Shear06KmKt > shearMulticellKt:
			mods = append(mods, fmt.Sprintf("moderate deep-layer shear (%.0f kt): multicell storm organization possible", *ix.Shear06KmKt))
		}
	}
	if ix.FreezingLevelFt != nil && *ix.FreezingLevelFt > hailFZLFt &&
		cape != nil && *cape > hailCAPE {
		mods = append(mods, "high freezing level with strong instability: large hail risk")
	}
	if ix.KIndex != nil && *ix.KIndex > kIndexActive {
		mods = append(mods, fmt.Sprintf("K-index %.0f: abundant mid-level moisture for storm clusters", *ix.KIndex))
	}
	if ix.TotalTotals != nil && *ix.TotalTotals > totalTotalsActive {
		mods = append(mods, fmt.Sprintf("Total Totals %.0f: severe storm potential", *ix.TotalTotals))
	}
	if ix.LiftedIndex != nil && *ix.LiftedIndex < liftedIndexActive {
		mods = append(mods, fmt.Sprintf("lifted index %.1f: extreme instability", *ix.LiftedIndex))
	}
	return mods
}
