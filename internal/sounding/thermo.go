package sounding

import "math"

// Physical constants (SI unless noted).
const (
	gravity     = 9.80665  // m/s²
	dryGas      = 287.05   // J/(kg·K), gas constant for dry air
	cpDry       = 1005.7   // J/(kg·K), specific heat at constant pressure
	latentHeat  = 2.501e6  // J/kg, latent heat of vaporization
	epsilon     = 0.622    // Rd/Rv
	kelvinZero  = 273.15
	kappa       = dryGas / cpDry // ≈0.2854, Poisson exponent

	metersToFeet = 3.28084
	mpsToFpm     = 196.850394
	ktToMps      = 0.514444
	feetPerNm    = 6076.12
)

// satVaporPressure returns the saturation vapour pressure in hPa over liquid
// water for a temperature in °C (Bolton 1980, eq. 10).
func satVaporPressure(tC float64) float64 {
	return 6.112 * math.Exp(17.67*tC/(tC+243.5))
}

// mixingRatio returns the water-vapour mixing ratio in kg/kg for a vapour
// pressure e and total pressure p, both in hPa.
func mixingRatio(p, e float64) float64 {
	if e >= p {
		return 0
	}
	return epsilon * e / (p - e)
}

// dewpointFromRH derives dewpoint (°C) from temperature (°C) and relative
// humidity (%) with the Magnus formula. Fails for non-positive humidity.
func dewpointFromRH(tC, rh float64) (float64, bool) {
	if rh <= 0 || rh > 100.0001 || math.IsNaN(rh) {
		return 0, false
	}
	const b, c = 17.625, 243.04
	gamma := math.Log(rh/100) + b*tC/(c+tC)
	if b-gamma == 0 {
		return 0, false
	}
	return c * gamma / (b - gamma), true
}

// relativeHumidity returns RH in % from temperature and dewpoint in °C.
func relativeHumidity(tC, tdC float64) float64 {
	rh := 100 * satVaporPressure(tdC) / satVaporPressure(tC)
	if rh > 100 {
		rh = 100
	}
	return rh
}

// potentialTempK returns the potential temperature in K for pressure in hPa
// and temperature in °C.
func potentialTempK(p, tC float64) float64 {
	return (tC + kelvinZero) * math.Pow(1000/p, kappa)
}

// lclBolton returns the LCL pressure (hPa) and temperature (K) of a parcel at
// pressure p (hPa) with temperature t and dewpoint td (°C), per Bolton (1980)
// eq. 15.
func lclBolton(p, tC, tdC float64) (lclP, lclTK float64) {
	tK := tC + kelvinZero
	tdK := tdC + kelvinZero
	if tdK > tK {
		tdK = tK
	}
	lclTK = 1/(1/(tdK-56)+math.Log(tK/tdK)/800) + 56
	lclP = p * math.Pow(lclTK/tK, 1/kappa)
	return lclP, lclTK
}

// equivPotentialTempK returns the pseudoequivalent potential temperature in K
// (Bolton 1980, eq. 43) for pressure in hPa and temperature/dewpoint in °C.
func equivPotentialTempK(p, tC, tdC float64) float64 {
	r := mixingRatio(p, satVaporPressure(tdC))
	_, lclTK := lclBolton(p, tC, tdC)
	tK := tC + kelvinZero
	thetaDL := tK * math.Pow(1000/(p-satVaporPressure(tdC)), kappa) *
		math.Pow(tK/lclTK, 0.28*r)
	return thetaDL * math.Exp((3036.0/lclTK-1.78)*r*(1+0.448*r))
}

// moistLapseDTdp returns dT/dp (K per hPa) along a pseudoadiabat at pressure
// p (hPa) and temperature tK (K).
func moistLapseDTdp(p, tK float64) float64 {
	ws := mixingRatio(p, satVaporPressure(tK-kelvinZero))
	num := dryGas*tK + latentHeat*ws
	den := cpDry + latentHeat*latentHeat*ws*epsilon/(dryGas*tK*tK)
	return num / den / p
}

// wetBulbStull returns the wet-bulb temperature in °C via the Stull (2011)
// regression from temperature (°C) and relative humidity (%). The regression
// is valid for RH ≥ 5%; outside that it fails.
func wetBulbStull(tC, rh float64) (float64, bool) {
	if rh < 5 || rh > 100.0001 {
		return 0, false
	}
	tw := tC*math.Atan(0.151977*math.Sqrt(rh+8.313659)) +
		math.Atan(tC+rh) - math.Atan(rh-1.676331) +
		0.00391838*math.Pow(rh, 1.5)*math.Atan(0.023101*rh) -
		4.686035
	return tw, true
}

// pressureToAltitudeFt converts pressure (hPa) to ICAO standard-atmosphere
// pressure altitude in feet.
func pressureToAltitudeFt(p float64) float64 {
	return 145366.45 * (1 - math.Pow(p/1013.25, 0.190284))
}

// windComponents converts speed (kt) and meteorological direction (degrees
// the wind blows FROM) into eastward/northward components in kt.
func windComponents(speedKt, dirDeg float64) (u, v float64) {
	rad := dirDeg * math.Pi / 180
	return -speedKt * math.Sin(rad), -speedKt * math.Cos(rad)
}

// parcelPath is a lifted parcel's trajectory, sampled at descending pressures
// from its start level to the profile top.
type parcelPath struct {
	pressures []float64 // hPa, strictly descending
	tempsC    []float64
	lclP      float64
	lclTK     float64
}

const parcelStepHPa = 5.0

// liftParcel lifts a parcel from (p0, t0, td0) to topP: dry-adiabatically to
// the LCL, pseudoadiabatically above it, in 5 hPa steps.
func liftParcel(p0, t0C, td0C, topP float64) parcelPath {
	lclP, lclTK := lclBolton(p0, t0C, td0C)
	path := parcelPath{lclP: lclP, lclTK: lclTK}
	theta := potentialTempK(p0, t0C)

	p := p0
	for p >= topP {
		var tC float64
		if p >= lclP {
			tC = theta*math.Pow(p/1000, kappa) - kelvinZero
		} else {
			// Continue from the last appended (saturated) point.
			n := len(path.tempsC)
			prevP, prevT := path.pressures[n-1], path.tempsC[n-1]+kelvinZero
			dp := prevP - p
			tC = prevT - moistLapseDTdp(prevP, prevT)*dp - kelvinZero
		}
		path.pressures = append(path.pressures, p)
		path.tempsC = append(path.tempsC, tC)

		next := p - parcelStepHPa
		// Land exactly on the LCL so the saturated segment starts there.
		if p > lclP && next < lclP && lclP >= topP {
			next = lclP
		}
		if next == p {
			break
		}
		p = next
	}
	return path
}

// tempAt interpolates the parcel temperature at pressure p, linearly in
// pressure. Fails outside the path's range.
func (pp parcelPath) tempAt(p float64) (float64, bool) {
	n := len(pp.pressures)
	if n == 0 || p > pp.pressures[0] || p < pp.pressures[n-1] {
		return 0, false
	}
	for i := 0; i < n-1; i++ {
		p1, p2 := pp.pressures[i], pp.pressures[i+1]
		if p <= p1 && p >= p2 {
			if p1 == p2 {
				return pp.tempsC[i], true
			}
			f := (p1 - p) / (p1 - p2)
			return pp.tempsC[i] + f*(pp.tempsC[i+1]-pp.tempsC[i]), true
		}
	}
	return pp.tempsC[n-1], true
}
