package sounding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	t.Run("insufficient data propagates", func(t *testing.T) {
		_, err := Analyze("gfs", nil, nil)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("full chain on an unstable profile", func(t *testing.T) {
		a, err := Analyze("gfs", unstableSamples(), nil)
		require.NoError(t, err)

		assert.Equal(t, "gfs", a.Model)
		assert.Len(t, a.Levels, len(unstableSamples()))
		require.NotNil(t, a.Indices.SurfaceCAPE)
		assert.Greater(t, *a.Indices.SurfaceCAPE, 0.0)
		assert.NotEqual(t, ConvectiveNone, a.Convective.Risk)
		assert.Equal(t, MotionUnavailable, a.VerticalMotion.Class, "no omega data in the fixture")
	})

	t.Run("repeated runs are identical", func(t *testing.T) {
		first, err := Analyze("gfs", unstableSamples(), nil)
		require.NoError(t, err)
		second, err := Analyze("gfs", unstableSamples(), nil)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(first, second))
	})
}

func TestCloudCoverByBand(t *testing.T) {
	t.Run("one layer per band", func(t *testing.T) {
		low, mid, high := cloudCoverByBand([]CloudLayer{
			{BaseFt: 2000, TopFt: 5000, Coverage: CoverageScattered},
			{BaseFt: 8000, TopFt: 15000, Coverage: CoverageBroken},
			{BaseFt: 22000, TopFt: 30000, Coverage: CoverageOvercast},
		})
		assert.Equal(t, 40.0, low)
		assert.Equal(t, 70.0, mid)
		assert.Equal(t, 95.0, high)
	})

	t.Run("a spanning layer contributes to both bands", func(t *testing.T) {
		low, mid, high := cloudCoverByBand([]CloudLayer{
			{BaseFt: 5000, TopFt: 9000, Coverage: CoverageOvercast},
		})
		assert.Equal(t, 95.0, low)
		assert.Equal(t, 95.0, mid)
		assert.Equal(t, 0.0, high)
	})

	t.Run("worst coverage wins within a band", func(t *testing.T) {
		low, _, _ := cloudCoverByBand([]CloudLayer{
			{BaseFt: 1000, TopFt: 2500, Coverage: CoverageScattered},
			{BaseFt: 3000, TopFt: 5000, Coverage: CoverageBroken},
		})
		assert.Equal(t, 70.0, low)
	})

	t.Run("clear sky", func(t *testing.T) {
		low, mid, high := cloudCoverByBand(nil)
		assert.Zero(t, low)
		assert.Zero(t, mid)
		assert.Zero(t, high)
	})
}
