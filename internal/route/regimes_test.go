package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwx/briefing-engine/internal/sounding"
)

func fptr(v float64) *float64 { return &v }

func TestAltitudeRegimes(t *testing.T) {
	t.Run("empty analysis yields one clear slice", func(t *testing.T) {
		slices := AltitudeRegimes(&sounding.SoundingAnalysis{}, 18000)
		require.Len(t, slices, 1)
		assert.Equal(t, 0.0, slices[0].BaseFt)
		assert.Equal(t, 18000.0, slices[0].TopFt)
		assert.True(t, slices[0].Clear())
	})

	t.Run("cloud deck splits the column", func(t *testing.T) {
		a := &sounding.SoundingAnalysis{
			CloudLayers: []sounding.CloudLayer{{BaseFt: 4800, TopFt: 8100}},
		}
		slices := AltitudeRegimes(a, 12000)
		require.Len(t, slices, 3)

		assert.Equal(t, 0.0, slices[0].BaseFt)
		assert.Equal(t, 5000.0, slices[0].TopFt, "boundaries round to the nearest 1000 ft")
		assert.False(t, slices[0].InCloud)

		assert.Equal(t, 5000.0, slices[1].BaseFt)
		assert.Equal(t, 8000.0, slices[1].TopFt)
		assert.True(t, slices[1].InCloud)

		assert.Equal(t, 8000.0, slices[2].BaseFt)
		assert.Equal(t, 12000.0, slices[2].TopFt)
		assert.False(t, slices[2].InCloud)
	})

	t.Run("icing state comes from the worst overlapping zone", func(t *testing.T) {
		a := &sounding.SoundingAnalysis{
			IcingZones: []sounding.IcingZone{
				{BaseFt: 5000, TopFt: 9000, Risk: sounding.IcingLight, Type: sounding.IcingTypeRime},
				{BaseFt: 6000, TopFt: 8000, Risk: sounding.IcingSevere, Type: sounding.IcingTypeClear},
			},
		}
		slices := AltitudeRegimes(a, 12000)

		var severe *RegimeSlice
		for i := range slices {
			if slices[i].IcingRisk == sounding.IcingSevere {
				severe = &slices[i]
			}
		}
		require.NotNil(t, severe)
		assert.Equal(t, 6000.0, severe.BaseFt)
		assert.Equal(t, 8000.0, severe.TopFt)
		assert.Equal(t, sounding.IcingTypeClear, severe.IcingType)
	})

	t.Run("identical adjacent slices merge", func(t *testing.T) {
		a := &sounding.SoundingAnalysis{
			Indices: sounding.ThermodynamicIndices{FreezingLevelFt: fptr(6000)},
		}
		slices := AltitudeRegimes(a, 12000)
		require.Len(t, slices, 1, "a freezing level with no cloud or icing changes nothing")
		assert.True(t, slices[0].Clear())
	})

	t.Run("slices tile the column", func(t *testing.T) {
		a := &sounding.SoundingAnalysis{
			CloudLayers: []sounding.CloudLayer{
				{BaseFt: 2300, TopFt: 4700},
				{BaseFt: 9400, TopFt: 15600},
			},
			IcingZones: []sounding.IcingZone{
				{BaseFt: 9400, TopFt: 12100, Risk: sounding.IcingModerate, Type: sounding.IcingTypeMixed},
			},
			Indices: sounding.ThermodynamicIndices{FreezingLevelFt: fptr(9100)},
		}
		slices := AltitudeRegimes(a, 20000)
		require.NotEmpty(t, slices)
		assert.Equal(t, 0.0, slices[0].BaseFt)
		assert.Equal(t, 20000.0, slices[len(slices)-1].TopFt)
		for i := 1; i < len(slices); i++ {
			assert.Equal(t, slices[i-1].TopFt, slices[i].BaseFt)
		}
	})
}

func TestComputeAltitudeAdvisories(t *testing.T) {
	icyAnalysis := func(fzl *float64, clouds []sounding.CloudLayer, zones []sounding.IcingZone) *sounding.SoundingAnalysis {
		return &sounding.SoundingAnalysis{
			Indices:     sounding.ThermodynamicIndices{FreezingLevelFt: fzl},
			CloudLayers: clouds,
			IcingZones:  zones,
		}
	}

	t.Run("nil without icing anywhere", func(t *testing.T) {
		soundings := map[string]*sounding.SoundingAnalysis{
			"gfs": {CloudLayers: []sounding.CloudLayer{{BaseFt: 3000, TopFt: 6000}}},
			"nam": nil,
		}
		assert.Nil(t, ComputeAltitudeAdvisories(soundings, 18000))
	})

	t.Run("single model", func(t *testing.T) {
		a := icyAnalysis(
			fptr(7000),
			[]sounding.CloudLayer{{BaseFt: 5500, TopFt: 9500}},
			[]sounding.IcingZone{{BaseFt: 6000, TopFt: 9000, Risk: sounding.IcingModerate}},
		)
		adv := ComputeAltitudeAdvisories(map[string]*sounding.SoundingAnalysis{"gfs": a}, 18000)
		require.NotNil(t, adv)

		require.NotNil(t, adv.RouteDescendFt)
		assert.Equal(t, 5000.0, *adv.RouteDescendFt, "cloud base below freezing level wins, minus margin")
		assert.Equal(t, 5000.0, adv.DescendBelowFt["gfs"])

		require.NotNil(t, adv.RouteClimbFt)
		assert.Equal(t, 10000.0, *adv.RouteClimbFt, "highest icing-overlapping cloud top plus margin")
		assert.True(t, adv.ClimbFeasible)
	})

	t.Run("route values are the most conservative", func(t *testing.T) {
		low := icyAnalysis(fptr(4000), nil,
			[]sounding.IcingZone{{BaseFt: 4500, TopFt: 7000, Risk: sounding.IcingLight}})
		high := icyAnalysis(fptr(8000), nil,
			[]sounding.IcingZone{{BaseFt: 8500, TopFt: 13000, Risk: sounding.IcingModerate}})
		adv := ComputeAltitudeAdvisories(map[string]*sounding.SoundingAnalysis{"gfs": low, "nam": high}, 18000)
		require.NotNil(t, adv)

		require.NotNil(t, adv.RouteDescendFt)
		assert.Equal(t, 3500.0, *adv.RouteDescendFt, "minimum across models")
		require.NotNil(t, adv.RouteClimbFt)
		assert.Equal(t, 13500.0, *adv.RouteClimbFt, "maximum across models")
	})

	t.Run("climb infeasible above the ceiling", func(t *testing.T) {
		a := icyAnalysis(nil, nil,
			[]sounding.IcingZone{{BaseFt: 14000, TopFt: 21000, Risk: sounding.IcingSevere}})
		adv := ComputeAltitudeAdvisories(map[string]*sounding.SoundingAnalysis{"gfs": a}, 18000)
		require.NotNil(t, adv)
		require.NotNil(t, adv.RouteClimbFt)
		assert.Equal(t, 21500.0, *adv.RouteClimbFt)
		assert.False(t, adv.ClimbFeasible)
	})

	t.Run("descend floors at the surface", func(t *testing.T) {
		a := icyAnalysis(fptr(300), nil,
			[]sounding.IcingZone{{BaseFt: 500, TopFt: 3000, Risk: sounding.IcingLight}})
		adv := ComputeAltitudeAdvisories(map[string]*sounding.SoundingAnalysis{"gfs": a}, 18000)
		require.NotNil(t, adv)
		require.NotNil(t, adv.RouteDescendFt)
		assert.Equal(t, 0.0, *adv.RouteDescendFt)
	})

	t.Run("icing base is the fallback without freezing level or cloud", func(t *testing.T) {
		a := icyAnalysis(nil, nil,
			[]sounding.IcingZone{{BaseFt: 6000, TopFt: 9000, Risk: sounding.IcingLight}})
		adv := ComputeAltitudeAdvisories(map[string]*sounding.SoundingAnalysis{"gfs": a}, 18000)
		require.NotNil(t, adv)
		require.NotNil(t, adv.RouteDescendFt)
		assert.Equal(t, 5500.0, *adv.RouteDescendFt)
	})
}
