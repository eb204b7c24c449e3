package sounding

// Cloud detection thresholds (°C of dewpoint depression).
const (
	cloudDepressionMax = 3.0 // saturation gate and SCT ceiling
	overcastDepression = 1.0
	brokenDepression   = 2.0
)

// capeForELTop is the CAPE above which the equilibrium level, rather than the
// −20 °C level, caps convective cloud growth.
const capeForELTop = 500.0

// DetectCloudLayers groups consecutive saturated levels (dewpoint depression
// below 3 °C) into cloud layers. Coverage comes from the mean depression
// within the layer; a layer reaching the profile top is still emitted. A run
// of a single level is given vertical extent halfway to the adjacent level so
// that base < top always holds. The theoretical maximum top (EL altitude when
// CAPE exceeds 500 J/kg, otherwise the −20 °C level) is attached only when it
// exceeds the detected top.
func DetectCloudLayers(levels []DerivedLevel, ix ThermodynamicIndices) []CloudLayer {
	var layers []CloudLayer
	start := -1
	for i := 0; i <= len(levels); i++ {
		inCloud := i < len(levels) && levels[i].DewpointDepression < cloudDepressionMax
		if inCloud {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			layers = append(layers, buildCloudLayer(levels[start:i], levels, ix))
			start = -1
		}
	}
	return layers
}

func buildCloudLayer(members, all []DerivedLevel, ix ThermodynamicIndices) CloudLayer {
	var sumT, sumDep float64
	for _, m := range members {
		sumT += m.Temperature
		sumDep += m.DewpointDepression
	}
	n := float64(len(members))
	meanDep := sumDep / n

	base := members[0]
	top := members[len(members)-1]
	layer := CloudLayer{
		BaseFt:                 base.AltitudeFt,
		TopFt:                  top.AltitudeFt,
		BasePressure:           base.Pressure,
		TopPressure:            top.Pressure,
		ThicknessFt:            top.AltitudeFt - base.AltitudeFt,
		MeanTemperature:        sumT / n,
		Coverage:               coverageFromDepression(meanDep),
		MeanDewpointDepression: meanDep,
	}

	if len(members) == 1 {
		layer.BaseFt, layer.TopFt, layer.BasePressure, layer.TopPressure = singleLevelBounds(base, all)
		layer.ThicknessFt = layer.TopFt - layer.BaseFt
	}

	if maxTop := theoreticalMaxTop(ix); maxTop != nil && *maxTop > layer.TopFt {
		layer.TheoreticalMaxTopFt = maxTop
	}
	return layer
}

func coverageFromDepression(meanDep float64) Coverage {
	switch {
	case meanDep < overcastDepression:
		return CoverageOvercast
	case meanDep < brokenDepression:
		return CoverageBroken
	default:
		return CoverageScattered
	}
}

func theoreticalMaxTop(ix ThermodynamicIndices) *float64 {
	if ix.SurfaceCAPE != nil && *ix.SurfaceCAPE > capeForELTop && ix.ELAltitudeFt != nil {
		return ix.ELAltitudeFt
	}
	return ix.MinusTwentyLevelFt
}

// singleLevelBounds gives a one-level run real vertical extent: the top moves
// halfway to the next level above, or the base halfway to the level below when
// the run sits at the profile top.
func singleLevelBounds(lv DerivedLevel, all []DerivedLevel) (baseFt, topFt, basePressure, topPressure float64) {
	baseFt, topFt = lv.AltitudeFt, lv.AltitudeFt
	basePressure, topPressure = lv.Pressure, lv.Pressure
	if above := levelAbove(all, lv.Pressure); above != nil {
		topFt = (lv.AltitudeFt + above.AltitudeFt) / 2
		topPressure = (lv.Pressure + above.Pressure) / 2
	} else if below := levelBelow(all, lv.Pressure); below != nil {
		baseFt = (lv.AltitudeFt + below.AltitudeFt) / 2
		basePressure = (lv.Pressure + below.Pressure) / 2
	}
	return baseFt, topFt, basePressure, topPressure
}

// levelAbove returns the level immediately above the given pressure, or nil.
// Levels are sorted by descending pressure.
func levelAbove(levels []DerivedLevel, pressure float64) *DerivedLevel {
	for i := range levels {
		if levels[i].Pressure < pressure {
			return &levels[i]
		}
	}
	return nil
}

// levelBelow returns the level immediately below the given pressure, or nil.
func levelBelow(levels []DerivedLevel, pressure float64) *DerivedLevel {
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i].Pressure > pressure {
			return &levels[i]
		}
	}
	return nil
}
