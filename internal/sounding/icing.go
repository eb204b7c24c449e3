package sounding

import "math"

// Icing detection constants.
const (
	icingCloudProximityFt = 500.0  // "near cloud" margin around detected layers
	icingZoneMergeGapHPa  = 100.0  // max pressure gap between members of one zone
	icingHighRHPct        = 95.0   // humidity severity-upgrade threshold
	icingHighPWMM         = 25.0   // precipitable-water severity-upgrade threshold
	sldThickCloudFt       = 3000.0 // SLD: thick-cloud thickness threshold
	sldWarmCloudC         = -12.0  // SLD: thick-cloud mean-temperature threshold
)

// icingMember is one qualifying level before zone merging.
type icingMember struct {
	level DerivedLevel
	risk  IcingRisk
	typ   IcingType
}

// DetectIcingZones scans derived levels for airframe-icing conditions.
// A level qualifies only when it is near cloud (saturated itself, or within
// 500 ft of a detected cloud boundary) and its wet-bulb temperature falls in
// one of the fixed accretion bands. Qualifying levels within 100 hPa of each
// other merge into a zone carrying the worst risk and the most frequent type.
// A zone built from a single level is given vertical extent halfway to the
// adjacent profile level so that base < top always holds.
func DetectIcingZones(levels []DerivedLevel, clouds []CloudLayer, ix ThermodynamicIndices) []IcingZone {
	var members []icingMember
	for _, lv := range levels {
		if lv.WetBulb == nil || !nearCloud(lv, clouds) {
			continue
		}
		typ, risk := accretionBand(*lv.WetBulb)
		if risk == IcingNone {
			continue
		}
		risk = upgradeSeverity(risk, lv, ix)
		members = append(members, icingMember{level: lv, risk: risk, typ: typ})
	}
	if len(members) == 0 {
		return nil
	}

	sld := sldRisk(levels, clouds)

	var zones []IcingZone
	group := []icingMember{members[0]}
	for _, m := range members[1:] {
		prev := group[len(group)-1]
		if prev.level.Pressure-m.level.Pressure <= icingZoneMergeGapHPa {
			group = append(group, m)
			continue
		}
		zones = append(zones, buildIcingZone(group, levels, sld))
		group = []icingMember{m}
	}
	zones = append(zones, buildIcingZone(group, levels, sld))
	return zones
}

// nearCloud reports whether a level is saturated or within the proximity
// margin of any detected cloud boundary.
func nearCloud(lv DerivedLevel, clouds []CloudLayer) bool {
	if lv.DewpointDepression < cloudDepressionMax {
		return true
	}
	for _, c := range clouds {
		if math.Abs(lv.AltitudeFt-c.BaseFt) <= icingCloudProximityFt ||
			math.Abs(lv.AltitudeFt-c.TopFt) <= icingCloudProximityFt {
			return true
		}
	}
	return false
}

// accretionBand maps wet-bulb temperature to accretion type and base severity.
func accretionBand(wetBulbC float64) (IcingType, IcingRisk) {
	switch {
	case wetBulbC >= -3 && wetBulbC < 0:
		return IcingTypeClear, IcingSevere
	case wetBulbC >= -10 && wetBulbC < -3:
		return IcingTypeMixed, IcingModerate
	case wetBulbC >= -15 && wetBulbC < -10:
		return IcingTypeRime, IcingModerate
	case wetBulbC >= -20 && wetBulbC < -15:
		return IcingTypeRime, IcingLight
	default:
		return IcingTypeNone, IcingNone
	}
}

// upgradeSeverity bumps the base severity one step for very moist conditions:
// RH above 95% upgrades light→moderate and moderate→severe; precipitable
// water above 25 mm upgrades light→moderate.
func upgradeSeverity(risk IcingRisk, lv DerivedLevel, ix ThermodynamicIndices) IcingRisk {
	if lv.RelativeHumidity != nil && *lv.RelativeHumidity > icingHighRHPct {
		switch risk {
		case IcingLight:
			return IcingModerate
		case IcingModerate:
			return IcingSevere
		}
		return risk
	}
	if ix.PrecipitableWaterMM != nil && *ix.PrecipitableWaterMM > icingHighPWMM && risk == IcingLight {
		return IcingModerate
	}
	return risk
}

// sldRisk evaluates the whole-profile supercooled-large-droplet flag: a cloud
// layer thicker than 3000 ft with a mean temperature warmer than −12 °C, or a
// warm nose (a level warmer than the one below it while between 0 and −20 °C).
func sldRisk(levels []DerivedLevel, clouds []CloudLayer) bool {
	for _, c := range clouds {
		if c.ThicknessFt > sldThickCloudFt && c.MeanTemperature > sldWarmCloudC {
			return true
		}
	}
	for i := 1; i < len(levels); i++ {
		t := levels[i].Temperature
		if t > levels[i-1].Temperature && t <= 0 && t >= -20 {
			return true
		}
	}
	return false
}

// buildIcingZone collapses one merged group into a zone: worst risk, most
// frequent accretion type, mean temperature and wet-bulb across members.
func buildIcingZone(group []icingMember, all []DerivedLevel, sld bool) IcingZone {
	base := group[0].level
	top := group[len(group)-1].level

	worst := IcingNone
	typeCounts := make(map[IcingType]int)
	var sumT, sumWB float64
	for _, m := range group {
		if IcingRiskRank(m.risk) > IcingRiskRank(worst) {
			worst = m.risk
		}
		typeCounts[m.typ]++
		sumT += m.level.Temperature
		sumWB += *m.level.WetBulb
	}

	mostFrequent := IcingTypeNone
	bestCount := 0
	for _, typ := range []IcingType{IcingTypeRime, IcingTypeMixed, IcingTypeClear} {
		if c := typeCounts[typ]; c > bestCount {
			bestCount = c
			mostFrequent = typ
		}
	}

	n := float64(len(group))
	zone := IcingZone{
		BaseFt:          base.AltitudeFt,
		TopFt:           top.AltitudeFt,
		BasePressure:    base.Pressure,
		TopPressure:     top.Pressure,
		Risk:            worst,
		Type:            mostFrequent,
		SLD:             sld,
		MeanTemperature: sumT / n,
		MeanWetBulb:     sumWB / n,
	}
	if len(group) == 1 {
		zone.BaseFt, zone.TopFt, zone.BasePressure, zone.TopPressure = singleLevelBounds(base, all)
	}
	return zone
}
