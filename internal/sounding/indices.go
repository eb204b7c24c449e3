package sounding

import "math"

// ComputeIndices derives the scalar thermodynamic summary of a profile. Each
// quantity is independently fallible: a missing input or a parcel that never
// converges leaves that field nil and the rest of the computation proceeds.
func ComputeIndices(p *Profile) ThermodynamicIndices {
	var ix ThermodynamicIndices

	sfc := p.Levels[0]
	topP := p.Levels[len(p.Levels)-1].Pressure

	// Surface parcel: LCL/LFC/EL, surface CAPE, CIN.
	path := liftParcel(sfc.Pressure, sfc.Temperature, sfc.Dewpoint, topP)
	if path.lclP <= sfc.Pressure && path.lclP >= topP {
		lclP := path.lclP
		ix.LCLPressure = &lclP
		alt := p.altitudeAtPressure(lclP)
		ix.LCLAltitudeFt = &alt
	}
	res := integrateParcel(p, path)
	cape := res.cape
	cin := res.cin
	ix.SurfaceCAPE = &cape
	ix.CIN = &cin
	if res.lfcP != nil {
		ix.LFCPressure = res.lfcP
		alt := p.altitudeAtPressure(*res.lfcP)
		ix.LFCAltitudeFt = &alt
	}
	if res.elP != nil {
		ix.ELPressure = res.elP
		alt := p.altitudeAtPressure(*res.elP)
		ix.ELAltitudeFt = &alt
	}

	if mu := mostUnstableCAPE(p, topP); mu != nil {
		ix.MostUnstableCAPE = mu
	}
	if ml := mixedLayerCAPE(p, topP); ml != nil {
		ix.MixedLayerCAPE = ml
	}

	ix.LiftedIndex = liftedIndex(p, path)
	ix.ShowalterIndex = showalterIndex(p)
	ix.KIndex, ix.TotalTotals = stabilityIndices(p)
	ix.PrecipitableWaterMM = precipitableWater(p)

	ix.FreezingLevelFt = isothermAltitude(p, 0)
	ix.MinusTenLevelFt = isothermAltitude(p, -10)
	ix.MinusTwentyLevelFt = isothermAltitude(p, -20)

	ix.Shear01KmKt = bulkShear(p, 1000)
	ix.Shear06KmKt = bulkShear(p, 6000)

	return ix
}

// tempAt interpolates environment temperature and dewpoint at pressure pres,
// linearly in pressure between bracketing levels.
func (p *Profile) tempAt(pres float64) (t, td float64, ok bool) {
	levels := p.Levels
	n := len(levels)
	if pres > levels[0].Pressure || pres < levels[n-1].Pressure {
		return 0, 0, false
	}
	for i := 0; i < n-1; i++ {
		p1, p2 := levels[i].Pressure, levels[i+1].Pressure
		if pres <= p1 && pres >= p2 {
			if p1 == p2 {
				return levels[i].Temperature, levels[i].Dewpoint, true
			}
			f := (p1 - pres) / (p1 - p2)
			t = levels[i].Temperature + f*(levels[i+1].Temperature-levels[i].Temperature)
			td = levels[i].Dewpoint + f*(levels[i+1].Dewpoint-levels[i].Dewpoint)
			return t, td, true
		}
	}
	return levels[n-1].Temperature, levels[n-1].Dewpoint, true
}

// altitudeAtPressure interpolates altitude (ft) at a pressure within the
// profile, falling back to the standard atmosphere outside it.
func (p *Profile) altitudeAtPressure(pres float64) float64 {
	levels := p.Levels
	n := len(levels)
	if pres > levels[0].Pressure || pres < levels[n-1].Pressure {
		return pressureToAltitudeFt(pres)
	}
	for i := 0; i < n-1; i++ {
		p1, p2 := levels[i].Pressure, levels[i+1].Pressure
		if pres <= p1 && pres >= p2 {
			a1, a2 := p.AltitudeFt(i), p.AltitudeFt(i+1)
			if p1 == p2 {
				return a1
			}
			f := (p1 - pres) / (p1 - p2)
			return a1 + f*(a2-a1)
		}
	}
	return p.AltitudeFt(n - 1)
}

type parcelIntegration struct {
	cape, cin  float64
	lfcP, elP  *float64
}

// integrateParcel computes CAPE, CIN, LFC, and EL for a lifted parcel against
// the environment. CAPE is the positive buoyancy area between LFC and EL;
// CIN is the negative area between the start level and the LFC (reported as
// a negative number). A parcel that is never buoyant yields zero CAPE and no
// LFC/EL.
func integrateParcel(p *Profile, path parcelPath) parcelIntegration {
	type pt struct {
		pres float64
		buoy float64 // (Tp-Te)/TeK, dimensionless
	}
	pts := make([]pt, 0, len(path.pressures))
	for i, pres := range path.pressures {
		te, _, ok := p.tempAt(pres)
		if !ok {
			continue
		}
		teK := te + kelvinZero
		pts = append(pts, pt{pres: pres, buoy: (path.tempsC[i] - te) / teK})
	}
	var out parcelIntegration
	if len(pts) < 2 {
		return out
	}

	// LFC: first saturated point (at or above the LCL) with positive buoyancy.
	lfcIdx := -1
	for i, q := range pts {
		if q.pres <= path.lclP && q.buoy > 0 {
			lfcIdx = i
			break
		}
	}
	if lfcIdx < 0 {
		// Never buoyant: no free convection.
		return out
	}
	lfc := pts[lfcIdx].pres
	out.lfcP = &lfc

	// EL: last positively buoyant point above the LFC.
	elIdx := lfcIdx
	for i := lfcIdx; i < len(pts); i++ {
		if pts[i].buoy > 0 {
			elIdx = i
		}
	}
	el := pts[elIdx].pres
	out.elP = &el

	for i := 0; i < len(pts)-1; i++ {
		dlnp := math.Log(pts[i].pres / pts[i+1].pres)
		mean := (pts[i].buoy + pts[i+1].buoy) / 2
		// Buoyancy is normalized by TeK, so the slab's mean environment
		// temperature restores the Rd·(Tp−Te)·dlnp area.
		a := dryGas * mean * refTempK(p, pts[i].pres, pts[i+1].pres) * dlnp
		switch {
		case i+1 <= lfcIdx:
			if a < 0 {
				out.cin += a
			}
		case i >= lfcIdx && i < elIdx:
			if a > 0 {
				out.cape += a
			}
		}
	}
	return out
}

// refTempK returns the mean environment temperature (K) of a pressure slab,
// used to un-normalize buoyancy in the area integral.
func refTempK(p *Profile, p1, p2 float64) float64 {
	t1, _, ok1 := p.tempAt(p1)
	t2, _, ok2 := p.tempAt(p2)
	if !ok1 || !ok2 {
		return kelvinZero
	}
	return (t1+t2)/2 + kelvinZero
}

// mostUnstableCAPE lifts a parcel from the level with the highest equivalent
// potential temperature within 300 hPa of the surface.
func mostUnstableCAPE(p *Profile, topP float64) *float64 {
	sfcP := p.SurfacePressure()
	best := -1
	bestThetaE := math.Inf(-1)
	for i, lv := range p.Levels {
		if sfcP-lv.Pressure > 300 {
			break
		}
		te := equivPotentialTempK(lv.Pressure, lv.Temperature, lv.Dewpoint)
		if te > bestThetaE {
			bestThetaE = te
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	lv := p.Levels[best]
	path := liftParcel(lv.Pressure, lv.Temperature, lv.Dewpoint, topP)
	res := integrateParcel(p, path)
	return &res.cape
}

// mixedLayerCAPE lifts a parcel with the mean potential temperature and mean
// mixing ratio of the lowest 100 hPa, started at the surface pressure.
func mixedLayerCAPE(p *Profile, topP float64) *float64 {
	sfcP := p.SurfacePressure()
	var sumTheta, sumR float64
	n := 0
	for _, lv := range p.Levels {
		if sfcP-lv.Pressure > 100 {
			break
		}
		sumTheta += potentialTempK(lv.Pressure, lv.Temperature)
		sumR += mixingRatio(lv.Pressure, satVaporPressure(lv.Dewpoint))
		n++
	}
	if n < 2 {
		return nil
	}
	meanTheta := sumTheta / float64(n)
	meanR := sumR / float64(n)

	tC := meanTheta*math.Pow(sfcP/1000, kappa) - kelvinZero
	e := sfcP * meanR / (epsilon + meanR)
	td, ok := dewpointFromVaporPressure(e)
	if !ok {
		return nil
	}
	path := liftParcel(sfcP, tC, td, topP)
	res := integrateParcel(p, path)
	return &res.cape
}

// dewpointFromVaporPressure inverts the Bolton saturation relation.
func dewpointFromVaporPressure(e float64) (float64, bool) {
	if e <= 0 {
		return 0, false
	}
	ln := math.Log(e / 6.112)
	if 17.67-ln == 0 {
		return 0, false
	}
	return 243.5 * ln / (17.67 - ln), true
}

// liftedIndex is the 500 hPa environment temperature minus the surface
// parcel's temperature there. Negative values mean instability.
func liftedIndex(p *Profile, path parcelPath) *float64 {
	te, _, ok := p.tempAt(500)
	if !ok {
		return nil
	}
	tp, ok := path.tempAt(500)
	if !ok {
		return nil
	}
	li := te - tp
	return &li
}

// showalterIndex lifts a parcel from 850 hPa to 500 hPa.
func showalterIndex(p *Profile) *float64 {
	t850, td850, ok := p.tempAt(850)
	if !ok {
		return nil
	}
	te500, _, ok := p.tempAt(500)
	if !ok {
		return nil
	}
	path := liftParcel(850, t850, td850, 500)
	tp, ok := path.tempAt(500)
	if !ok {
		return nil
	}
	ssi := te500 - tp
	return &ssi
}

// stabilityIndices computes the K-index and Total Totals from the 850, 700,
// and 500 hPa levels.
func stabilityIndices(p *Profile) (kIndex, totalTotals *float64) {
	t850, td850, ok850 := p.tempAt(850)
	t700, td700, ok700 := p.tempAt(700)
	t500, _, ok500 := p.tempAt(500)
	if ok850 && ok500 {
		tt := t850 + td850 - 2*t500
		totalTotals = &tt
	}
	if ok850 && ok700 && ok500 {
		k := t850 - t500 + td850 - (t700 - td700)
		kIndex = &k
	}
	return kIndex, totalTotals
}

// precipitableWater integrates the mixing ratio through the whole profile,
// in mm of liquid water.
func precipitableWater(p *Profile) *float64 {
	levels := p.Levels
	if len(levels) < 2 {
		return nil
	}
	var pw float64
	for i := 0; i < len(levels)-1; i++ {
		w1 := mixingRatio(levels[i].Pressure, satVaporPressure(levels[i].Dewpoint))
		w2 := mixingRatio(levels[i+1].Pressure, satVaporPressure(levels[i+1].Dewpoint))
		dp := (levels[i].Pressure - levels[i+1].Pressure) * 100 // Pa
		pw += (w1 + w2) / 2 * dp / gravity                      // kg/m² == mm
	}
	return &pw
}

// isothermAltitude finds the altitude (ft) where the temperature first
// crosses target (°C), walking surface-upward and interpolating linearly
// within the crossing layer. A surface already colder than the target
// reports the surface altitude for the 0 °C case the same way: the first
// sign change decides.
func isothermAltitude(p *Profile, target float64) *float64 {
	levels := p.Levels
	prev := levels[0].Temperature - target
	if prev == 0 {
		alt := p.AltitudeFt(0)
		return &alt
	}
	for i := 1; i < len(levels); i++ {
		cur := levels[i].Temperature - target
		if cur == 0 || (cur < 0) != (prev < 0) {
			a1, a2 := p.AltitudeFt(i-1), p.AltitudeFt(i)
			f := prev / (prev - cur)
			alt := a1 + f*(a2-a1)
			return &alt
		}
		prev = cur
	}
	return nil
}

// bulkShear returns the magnitude (kt) of the vector wind difference between
// the surface and the sample nearest to heightM metres above ground. Nearest
// samples are used rather than interpolation; when both targets resolve to
// the same sample the shear is undefined.
func bulkShear(p *Profile, heightM float64) *float64 {
	if !p.HasWind {
		return nil
	}
	sfcAlt := p.AltitudeFt(0)
	targetFt := sfcAlt + heightM*metersToFeet

	upper := nearestLevelToAltitude(p, targetFt)
	if upper == 0 {
		return nil
	}
	u0, v0 := windComponents(*p.Levels[0].WindSpeed, *p.Levels[0].WindDirection)
	u1, v1 := windComponents(*p.Levels[upper].WindSpeed, *p.Levels[upper].WindDirection)
	shear := math.Hypot(u1-u0, v1-v0)
	return &shear
}

// nearestLevelToAltitude returns the index of the level closest to targetFt.
func nearestLevelToAltitude(p *Profile, targetFt float64) int {
	best := 0
	bestDist := math.Abs(p.AltitudeFt(0) - targetFt)
	for i := 1; i < len(p.Levels); i++ {
		d := math.Abs(p.AltitudeFt(i) - targetFt)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
