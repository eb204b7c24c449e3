package sounding

import "math"

// shearSquaredFloor guards the Richardson division against vanishing shear.
const shearSquaredFloor = 1e-10

// DeriveLevels enriches every profile level with per-level and per-layer
// quantities. The returned slice mirrors Profile.Levels index-for-index.
func DeriveLevels(p *Profile) []DerivedLevel {
	n := len(p.Levels)
	out := make([]DerivedLevel, n)

	for i, lv := range p.Levels {
		d := DerivedLevel{
			Pressure:           lv.Pressure,
			AltitudeFt:         p.AltitudeFt(i),
			Temperature:        lv.Temperature,
			Dewpoint:           lv.Dewpoint,
			DewpointDepression: lv.Temperature - lv.Dewpoint,
			PotentialTemp:      potentialTempK(lv.Pressure, lv.Temperature),
			WindSpeedKt:        lv.WindSpeed,
			WindDirectionDeg:   lv.WindDirection,
			OmegaPaS:           lv.Omega,
		}

		rh := relativeHumidity(lv.Temperature, lv.Dewpoint)
		if lv.RelativeHumidity != nil {
			rh = *lv.RelativeHumidity
		}
		rhCopy := rh
		d.RelativeHumidity = &rhCopy

		if wb, ok := wetBulbStull(lv.Temperature, rh); ok {
			d.WetBulb = &wb
		}
		thetaE := equivPotentialTempK(lv.Pressure, lv.Temperature, lv.Dewpoint)
		if !math.IsNaN(thetaE) && !math.IsInf(thetaE, 0) {
			d.EquivPotentialTemp = &thetaE
		}

		if lv.Omega != nil {
			vv := omegaToFpm(*lv.Omega, lv.Pressure, lv.Temperature)
			d.VerticalVelocityFpm = &vv
		}
		out[i] = d
	}

	for i := 0; i < n-1; i++ {
		dzFt := out[i+1].AltitudeFt - out[i].AltitudeFt
		if dzFt <= 0 {
			continue
		}
		dzKm := dzFt / metersToFeet / 1000
		lapse := (out[i].Temperature - out[i+1].Temperature) / dzKm
		out[i].LapseRateToNext = &lapse
	}

	for i := 1; i < n; i++ {
		below, here := i-1, i
		dzM := (out[here].AltitudeFt - out[below].AltitudeFt) / metersToFeet
		if dzM <= 0 {
			continue
		}
		thetaBar := (out[below].PotentialTemp + out[here].PotentialTemp) / 2
		n2 := gravity / thetaBar * (out[here].PotentialTemp - out[below].PotentialTemp) / dzM
		n2Copy := n2
		out[here].BruntVaisalaN2 = &n2Copy

		if !p.HasWind {
			continue
		}
		u1, v1 := windComponents(*p.Levels[below].WindSpeed, *p.Levels[below].WindDirection)
		u2, v2 := windComponents(*p.Levels[here].WindSpeed, *p.Levels[here].WindDirection)
		du := (u2 - u1) * ktToMps
		dv := (v2 - v1) * ktToMps
		shearSq := (du*du + dv*dv) / (dzM * dzM)
		if shearSq > shearSquaredFloor {
			ri := n2 / shearSq
			out[here].Richardson = &ri
		}
	}

	return out
}

// omegaToFpm converts pressure vertical velocity (Pa/s) to geometric vertical
// velocity in ft/min using the hydrostatic relation; negative omega (rising
// air) maps to positive ft/min.
func omegaToFpm(omega, pHPa, tC float64) float64 {
	rho := pHPa * 100 / (dryGas * (tC + kelvinZero))
	w := -omega / (rho * gravity) // m/s
	return w * mpsToFpm
}
