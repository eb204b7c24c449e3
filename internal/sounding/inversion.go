package sounding

// DetectInversions finds layers where temperature increases with height.
// The lapse rate at level i describes the layer from i to i+1, so a run of
// consecutive negative-lapse levels forms one inversion spanning from the
// run's first level to the level immediately above the run's last level.
func DetectInversions(levels []DerivedLevel) []InversionLayer {
	var out []InversionLayer
	start := -1
	for i := 0; i <= len(levels); i++ {
		negative := i < len(levels) && levels[i].LapseRateToNext != nil && *levels[i].LapseRateToNext < 0
		if negative {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			base := levels[start]
			top := levels[i] // one above the run's last member; i ≤ len-1 here
			out = append(out, InversionLayer{
				BaseFt:       base.AltitudeFt,
				TopFt:        top.AltitudeFt,
				StrengthC:    top.Temperature - base.Temperature,
				SurfaceBased: start == 0,
			})
			start = -1
		}
	}
	return out
}
