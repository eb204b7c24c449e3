package sounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// icyLvl builds a saturated derived level with a wet-bulb temperature.
func icyLvl(p, altFt, tempC, wetBulbC float64) DerivedLevel {
	d := lvl(p, altFt, tempC, 1.0)
	d.WetBulb = fptr(wetBulbC)
	return d
}

func TestAccretionBand(t *testing.T) {
	tests := []struct {
		wetBulb  float64
		wantType IcingType
		wantRisk IcingRisk
	}{
		{0.5, IcingTypeNone, IcingNone},
		{-0.5, IcingTypeClear, IcingSevere},
		{-2.9, IcingTypeClear, IcingSevere},
		{-3, IcingTypeMixed, IcingModerate},
		{-9.9, IcingTypeMixed, IcingModerate},
		{-10, IcingTypeRime, IcingModerate},
		{-14.9, IcingTypeRime, IcingModerate},
		{-15, IcingTypeRime, IcingLight},
		{-19.9, IcingTypeRime, IcingLight},
		{-20, IcingTypeNone, IcingNone},
		{-30, IcingTypeNone, IcingNone},
	}
	for _, tt := range tests {
		typ, risk := accretionBand(tt.wetBulb)
		assert.Equal(t, tt.wantType, typ, "wetBulb=%v", tt.wetBulb)
		assert.Equal(t, tt.wantRisk, risk, "wetBulb=%v", tt.wetBulb)
	}
}

func TestDetectIcingZones(t *testing.T) {
	t.Run("warm saturated column has no zones", func(t *testing.T) {
		levels := []DerivedLevel{
			icyLvl(1000, 400, 12, 11),
			icyLvl(900, 3200, 8, 7),
			icyLvl(850, 4800, 6, 5),
		}
		assert.Empty(t, DetectIcingZones(levels, nil, ThermodynamicIndices{}))
	})

	t.Run("dry levels away from cloud are skipped", func(t *testing.T) {
		dry := lvl(800, 6400, -5, 10)
		dry.WetBulb = fptr(-6)
		assert.Empty(t, DetectIcingZones([]DerivedLevel{dry}, nil, ThermodynamicIndices{}))
	})

	t.Run("dry level near a cloud boundary qualifies", func(t *testing.T) {
		dry := lvl(800, 6400, -5, 10)
		dry.WetBulb = fptr(-6)
		clouds := []CloudLayer{{BaseFt: 6100, TopFt: 9000}}
		zones := DetectIcingZones([]DerivedLevel{dry}, clouds, ThermodynamicIndices{})
		require.Len(t, zones, 1)
		assert.Equal(t, IcingModerate, zones[0].Risk)
		assert.Equal(t, IcingTypeMixed, zones[0].Type)
	})

	t.Run("single qualifying level gains extent", func(t *testing.T) {
		levels := []DerivedLevel{
			lvl(900, 3200, 5, 10),
			icyLvl(850, 4800, -4, -5),
			lvl(800, 6400, -9, 10),
		}
		zones := DetectIcingZones(levels, nil, ThermodynamicIndices{})
		require.Len(t, zones, 1)

		z := zones[0]
		assert.Equal(t, 4800.0, z.BaseFt)
		assert.Equal(t, 5600.0, z.TopFt, "top extends halfway to the level above")
		assert.Equal(t, 850.0, z.BasePressure)
		assert.Equal(t, 825.0, z.TopPressure)
		assert.Less(t, z.BaseFt, z.TopFt)
	})

	t.Run("contiguous levels merge into one zone", func(t *testing.T) {
		levels := []DerivedLevel{
			icyLvl(850, 4800, -1, -2),  // clear, severe
			icyLvl(800, 6400, -4, -5),  // mixed, moderate
			icyLvl(750, 8100, -7, -8),  // mixed, moderate
		}
		zones := DetectIcingZones(levels, nil, ThermodynamicIndices{})
		require.Len(t, zones, 1)

		z := zones[0]
		assert.Equal(t, 4800.0, z.BaseFt)
		assert.Equal(t, 8100.0, z.TopFt)
		assert.Equal(t, IcingSevere, z.Risk, "zone carries the worst member risk")
		assert.Equal(t, IcingTypeMixed, z.Type, "zone carries the most frequent type")
		assert.InDelta(t, -4.0, z.MeanTemperature, 0.01)
		assert.InDelta(t, -5.0, z.MeanWetBulb, 0.01)
	})

	t.Run("gap beyond 100 hPa splits zones", func(t *testing.T) {
		levels := []DerivedLevel{
			icyLvl(850, 4800, -4, -5),
			icyLvl(600, 13800, -14, -16),
		}
		zones := DetectIcingZones(levels, nil, ThermodynamicIndices{})
		require.Len(t, zones, 2)
		assert.Equal(t, IcingModerate, zones[0].Risk)
		assert.Equal(t, IcingLight, zones[1].Risk)
	})
}

func TestUpgradeSeverity(t *testing.T) {
	t.Run("high humidity upgrades one step", func(t *testing.T) {
		wet := icyLvl(700, 9900, -12, -13) // rime, moderate
		wet.RelativeHumidity = fptr(97.0)
		zones := DetectIcingZones([]DerivedLevel{wet}, nil, ThermodynamicIndices{})
		require.Len(t, zones, 1)
		assert.Equal(t, IcingSevere, zones[0].Risk)
	})

	t.Run("high precipitable water upgrades light only", func(t *testing.T) {
		light := icyLvl(600, 13800, -16, -17) // rime, light
		ix := ThermodynamicIndices{PrecipitableWaterMM: fptr(30.0)}
		zones := DetectIcingZones([]DerivedLevel{light}, nil, ix)
		require.Len(t, zones, 1)
		assert.Equal(t, IcingModerate, zones[0].Risk)

		moderate := icyLvl(700, 9900, -6, -7) // mixed, moderate
		zones = DetectIcingZones([]DerivedLevel{moderate}, nil, ix)
		require.Len(t, zones, 1)
		assert.Equal(t, IcingModerate, zones[0].Risk, "precipitable water never upgrades moderate")
	})
}

func TestSLDRisk(t *testing.T) {
	t.Run("thick warm cloud", func(t *testing.T) {
		clouds := []CloudLayer{{BaseFt: 3000, TopFt: 7500, ThicknessFt: 4500, MeanTemperature: -6}}
		member := icyLvl(850, 4800, -4, -5)
		zones := DetectIcingZones([]DerivedLevel{member}, clouds, ThermodynamicIndices{})
		require.Len(t, zones, 1)
		assert.True(t, zones[0].SLD)
	})

	t.Run("cold thick cloud is not SLD", func(t *testing.T) {
		clouds := []CloudLayer{{BaseFt: 12000, TopFt: 17000, ThicknessFt: 5000, MeanTemperature: -18}}
		member := icyLvl(600, 13800, -14, -15)
		zones := DetectIcingZones([]DerivedLevel{member}, clouds, ThermodynamicIndices{})
		require.Len(t, zones, 1)
		assert.False(t, zones[0].SLD)
	})

	t.Run("warm nose aloft", func(t *testing.T) {
		levels := []DerivedLevel{
			icyLvl(900, 3200, -8, -9),
			icyLvl(850, 4800, -3, -4), // warmer than the level below, within 0..-20
			icyLvl(800, 6400, -6, -7),
		}
		zones := DetectIcingZones(levels, nil, ThermodynamicIndices{})
		require.NotEmpty(t, zones)
		assert.True(t, zones[0].SLD)
	})
}
