package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwx/briefing-engine/internal/sounding"
)

func TestStandardBands_TileTheColumn(t *testing.T) {
	require.NotEmpty(t, StandardBands)
	assert.Equal(t, 0.0, StandardBands[0].BaseFt)
	for i := 1; i < len(StandardBands); i++ {
		assert.Equal(t, StandardBands[i-1].TopFt, StandardBands[i].BaseFt)
	}
	assert.Equal(t, math.MaxFloat64, StandardBands[len(StandardBands)-1].TopFt)
}

func TestCompareAltitudeBands(t *testing.T) {
	withIcing := &sounding.SoundingAnalysis{
		IcingZones: []sounding.IcingZone{
			{BaseFt: 7000, TopFt: 10000, Risk: sounding.IcingSevere, Type: sounding.IcingTypeClear, SLD: true, MeanTemperature: -4},
		},
		CloudLayers: []sounding.CloudLayer{
			{BaseFt: 6500, TopFt: 10500, Coverage: sounding.CoverageOvercast, MeanTemperature: -3},
		},
	}
	clear := &sounding.SoundingAnalysis{}

	t.Run("disagreement when only one model shows weather", func(t *testing.T) {
		out := CompareAltitudeBands(map[string]*sounding.SoundingAnalysis{"gfs": withIcing, "nam": clear})
		require.Len(t, out, len(StandardBands))

		mid := out[1] // 6000-12000
		require.Equal(t, "6000-12000", mid.Band.Name)
		assert.False(t, mid.IcingAgreement)
		assert.False(t, mid.CloudAgreement)

		gfs := mid.PerModel["gfs"]
		require.NotNil(t, gfs.IcingRisk)
		assert.Equal(t, sounding.IcingSevere, *gfs.IcingRisk)
		require.NotNil(t, gfs.IcingType)
		assert.Equal(t, sounding.IcingTypeClear, *gfs.IcingType)
		assert.True(t, gfs.SLD)
		require.NotNil(t, gfs.Coverage)
		assert.Equal(t, sounding.CoverageOvercast, *gfs.Coverage)

		nam := mid.PerModel["nam"]
		assert.Nil(t, nam.IcingRisk)
		assert.Nil(t, nam.Coverage)
	})

	t.Run("agreement when models match", func(t *testing.T) {
		out := CompareAltitudeBands(map[string]*sounding.SoundingAnalysis{"gfs": withIcing, "nam": withIcing})
		assert.True(t, out[1].IcingAgreement)
		assert.True(t, out[1].CloudAgreement)
	})

	t.Run("one severity step still agrees", func(t *testing.T) {
		milder := &sounding.SoundingAnalysis{
			IcingZones: []sounding.IcingZone{
				{BaseFt: 7000, TopFt: 10000, Risk: sounding.IcingModerate, Type: sounding.IcingTypeMixed, MeanTemperature: -5},
			},
			CloudLayers: []sounding.CloudLayer{
				{BaseFt: 6500, TopFt: 10500, Coverage: sounding.CoverageBroken, MeanTemperature: -4},
			},
		}
		out := CompareAltitudeBands(map[string]*sounding.SoundingAnalysis{"gfs": withIcing, "nam": milder})
		assert.True(t, out[1].IcingAgreement)
		assert.True(t, out[1].CloudAgreement)
	})

	t.Run("empty bands agree on nothing weather", func(t *testing.T) {
		out := CompareAltitudeBands(map[string]*sounding.SoundingAnalysis{"gfs": withIcing, "nam": clear})
		top := out[len(out)-1]
		assert.True(t, top.IcingAgreement)
		assert.True(t, top.CloudAgreement)
	})

	t.Run("nil analyses are skipped", func(t *testing.T) {
		out := CompareAltitudeBands(map[string]*sounding.SoundingAnalysis{"gfs": withIcing, "nam": nil})
		require.Len(t, out, len(StandardBands))
		assert.Len(t, out[1].PerModel, 1)
		assert.True(t, out[1].IcingAgreement, "a single model cannot disagree")
	})
}

func TestSummarizeBand_WorstCaseWins(t *testing.T) {
	a := &sounding.SoundingAnalysis{
		IcingZones: []sounding.IcingZone{
			{BaseFt: 6200, TopFt: 7400, Risk: sounding.IcingLight, Type: sounding.IcingTypeRime, MeanTemperature: -12},
			{BaseFt: 8600, TopFt: 11000, Risk: sounding.IcingModerate, Type: sounding.IcingTypeMixed, MeanTemperature: -6},
		},
		CloudLayers: []sounding.CloudLayer{
			{BaseFt: 6000, TopFt: 8000, Coverage: sounding.CoverageScattered, MeanTemperature: -10},
			{BaseFt: 8500, TopFt: 11500, Coverage: sounding.CoverageBroken, MeanTemperature: -5},
		},
		Levels: []sounding.DerivedLevel{
			{AltitudeFt: 6400, Temperature: -2},
			{AltitudeFt: 9900, Temperature: -14},
			{AltitudeFt: 18300, Temperature: -30}, // outside the band
		},
	}
	s := summarizeBand(a, AltitudeBand{Name: "6000-12000", BaseFt: 6000, TopFt: 12000})

	require.NotNil(t, s.IcingRisk)
	assert.Equal(t, sounding.IcingModerate, *s.IcingRisk)
	require.NotNil(t, s.IcingType)
	assert.Equal(t, sounding.IcingTypeMixed, *s.IcingType)
	require.NotNil(t, s.Coverage)
	assert.Equal(t, sounding.CoverageBroken, *s.Coverage)
	require.NotNil(t, s.MinTempC)
	assert.Equal(t, -14.0, *s.MinTempC)
	require.NotNil(t, s.MaxTempC)
	assert.Equal(t, -2.0, *s.MaxTempC)
}

func TestMaxElevationWithin(t *testing.T) {
	profile := ElevationProfile{Samples: []ElevationSample{
		{DistanceNm: 0, ElevationFt: 1200},
		{DistanceNm: 20, ElevationFt: 8300},
		{DistanceNm: 40, ElevationFt: 4100},
	}}

	t.Run("picks the highest sample in the window", func(t *testing.T) {
		got := profile.MaxElevationWithin(25, 10)
		require.NotNil(t, got)
		assert.Equal(t, 8300.0, *got)
	})

	t.Run("window excludes distant samples", func(t *testing.T) {
		got := profile.MaxElevationWithin(0, 5)
		require.NotNil(t, got)
		assert.Equal(t, 1200.0, *got)
	})

	t.Run("nil when nothing falls inside", func(t *testing.T) {
		assert.Nil(t, profile.MaxElevationWithin(100, 10))
	})
}
