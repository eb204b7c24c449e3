package sounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stableSamples is a dry, absolutely stable column: no parcel from it is ever
// buoyant.
func stableSamples() []PressureLevelSample {
	return []PressureLevelSample{
		sample(1000, 10, -5),
		sample(925, 6, -9),
		sample(850, 2, -13),
		sample(700, -5, -20),
		sample(500, -18, -35),
		sample(300, -45, -60),
	}
}

// unstableSamples is a classic loaded gun: warm moist surface air under a
// steep lapse rate.
func unstableSamples() []PressureLevelSample {
	return []PressureLevelSample{
		sample(1000, 30, 24),
		sample(925, 24, 19),
		sample(850, 20, 14),
		sample(700, 8, -2),
		sample(500, -12, -22),
		sample(300, -40, -55),
	}
}

func mustProfile(t *testing.T, samples []PressureLevelSample) *Profile {
	t.Helper()
	p, err := BuildProfile(samples, nil)
	require.NoError(t, err)
	return p
}

func TestComputeIndices_StableProfile(t *testing.T) {
	ix := ComputeIndices(mustProfile(t, stableSamples()))

	require.NotNil(t, ix.SurfaceCAPE)
	assert.Zero(t, *ix.SurfaceCAPE)
	assert.Nil(t, ix.LFCPressure)
	assert.Nil(t, ix.ELPressure)

	require.NotNil(t, ix.LiftedIndex)
	assert.Greater(t, *ix.LiftedIndex, 0.0, "stable column should have positive LI")

	require.NotNil(t, ix.PrecipitableWaterMM)
	assert.Greater(t, *ix.PrecipitableWaterMM, 0.0)

	assert.NotNil(t, ix.KIndex)
	assert.NotNil(t, ix.TotalTotals)
	assert.NotNil(t, ix.ShowalterIndex)

	// No wind data: shear undefined.
	assert.Nil(t, ix.Shear01KmKt)
	assert.Nil(t, ix.Shear06KmKt)
}

func TestComputeIndices_UnstableProfile(t *testing.T) {
	ix := ComputeIndices(mustProfile(t, unstableSamples()))

	require.NotNil(t, ix.SurfaceCAPE)
	assert.Greater(t, *ix.SurfaceCAPE, 100.0)
	require.NotNil(t, ix.MostUnstableCAPE)
	assert.GreaterOrEqual(t, *ix.MostUnstableCAPE, *ix.SurfaceCAPE*0.9,
		"most-unstable parcel should be at least as buoyant as the surface parcel")
	assert.NotNil(t, ix.MixedLayerCAPE)

	require.NotNil(t, ix.LFCPressure)
	require.NotNil(t, ix.ELPressure)
	assert.Greater(t, *ix.LFCPressure, *ix.ELPressure, "LFC sits below the EL")

	require.NotNil(t, ix.LCLPressure)
	assert.Less(t, *ix.LCLPressure, 1000.0)
	assert.NotNil(t, ix.LCLAltitudeFt)

	require.NotNil(t, ix.LiftedIndex)
	assert.Less(t, *ix.LiftedIndex, 0.0, "unstable column should have negative LI")

	require.NotNil(t, ix.CIN)
	assert.LessOrEqual(t, *ix.CIN, 0.0)
}

func TestComputeIndices_IsothermLevels(t *testing.T) {
	// Freezing level falls in the 850-700 layer: +2 at 850, -5 at 700.
	ix := ComputeIndices(mustProfile(t, stableSamples()))

	require.NotNil(t, ix.FreezingLevelFt)
	a850 := pressureToAltitudeFt(850)
	a700 := pressureToAltitudeFt(700)
	f := 2.0 / 7.0
	assert.InDelta(t, a850+f*(a700-a850), *ix.FreezingLevelFt, 1)

	require.NotNil(t, ix.MinusTenLevelFt)
	assert.Greater(t, *ix.MinusTenLevelFt, *ix.FreezingLevelFt)
	require.NotNil(t, ix.MinusTwentyLevelFt)
	assert.Greater(t, *ix.MinusTwentyLevelFt, *ix.MinusTenLevelFt)
}

func TestComputeIndices_WarmColumnHasNoFreezingLevel(t *testing.T) {
	ix := ComputeIndices(mustProfile(t, []PressureLevelSample{
		sample(1000, 25, 18),
		sample(925, 21, 15),
		sample(850, 18, 12),
	}))
	assert.Nil(t, ix.FreezingLevelFt)
}

func TestComputeIndices_BulkShear(t *testing.T) {
	mk := func(p, tc, td, spd, dir float64) PressureLevelSample {
		s := sample(p, tc, td)
		s.WindSpeed = fptr(spd)
		s.WindDirection = fptr(dir)
		return s
	}
	p := mustProfile(t, []PressureLevelSample{
		mk(1000, 10, -5, 10, 180),
		mk(850, 2, -13, 25, 200),
		mk(500, -18, -35, 40, 240),
		mk(300, -45, -60, 60, 250),
	})
	ix := ComputeIndices(p)

	// 0-1 km resolves to the 850 hPa sample, 0-6 km to the 500 hPa sample.
	require.NotNil(t, ix.Shear01KmKt)
	assert.InDelta(t, 16.0, *ix.Shear01KmKt, 0.5)
	require.NotNil(t, ix.Shear06KmKt)
	assert.InDelta(t, 36.1, *ix.Shear06KmKt, 0.5)
}

func TestComputeIndices_ShearUndefinedAtSameSample(t *testing.T) {
	mk := func(p, tc, td float64) PressureLevelSample {
		s := sample(p, tc, td)
		s.WindSpeed = fptr(20)
		s.WindDirection = fptr(270)
		return s
	}
	// With no sample between the surface and 500 hPa, the 1 km target resolves
	// to the surface sample itself and the shear is undefined.
	p := mustProfile(t, []PressureLevelSample{
		mk(1000, 10, 0),
		mk(500, -18, -35),
		mk(300, -45, -60),
	})
	ix := ComputeIndices(p)
	assert.Nil(t, ix.Shear01KmKt)
	assert.NotNil(t, ix.Shear06KmKt)
}

func TestStabilityIndices_KnownValues(t *testing.T) {
	p := mustProfile(t, stableSamples())
	k, tt := stabilityIndices(p)

	// T850=2, Td850=-13, T700=-5, Td700=-20, T500=-18.
	require.NotNil(t, tt)
	assert.InDelta(t, 2+(-13)-2*(-18), *tt, 0.01)
	require.NotNil(t, k)
	assert.InDelta(t, 2-(-18)+(-13)-((-5)-(-20)), *k, 0.01)
}
