package sounding

import (
	"errors"
	"sort"
)

// ErrInsufficientData is returned when fewer than three samples carry enough
// information to analyze. Callers treat it as "no analysis possible for this
// point/model", not as a fault.
var ErrInsufficientData = errors.New("sounding: insufficient data to build profile")

const minValidLevels = 3

// BuildProfile validates and normalizes raw samples into an analyzable
// profile. A sample is usable when it has a temperature and either a direct
// dewpoint or a relative humidity to derive one from (Magnus formula). The
// optional surface observation, when present, is treated as one more sample.
//
// Wind and height are all-or-nothing: the profile carries them only when
// every retained level has them. Partial coverage is treated as entirely
// absent rather than interpolated.
func BuildProfile(samples []PressureLevelSample, surface *PressureLevelSample) (*Profile, error) {
	all := samples
	if surface != nil {
		all = make([]PressureLevelSample, 0, len(samples)+1)
		all = append(all, *surface)
		all = append(all, samples...)
	}

	levels := make([]Level, 0, len(all))
	for _, s := range all {
		if s.Temperature == nil || s.Pressure <= 0 {
			continue
		}
		td, ok := resolveDewpoint(s)
		if !ok {
			continue
		}
		levels = append(levels, Level{
			Pressure:         s.Pressure,
			Temperature:      *s.Temperature,
			Dewpoint:         td,
			RelativeHumidity: s.RelativeHumidity,
			WindSpeed:        s.WindSpeed,
			WindDirection:    s.WindDirection,
			HeightM:          s.GeopotentialHeight,
			Omega:            s.Omega,
		})
	}

	if len(levels) < minValidLevels {
		return nil, ErrInsufficientData
	}

	// Surface first: descending pressure.
	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Pressure > levels[j].Pressure
	})

	p := &Profile{Levels: levels, HasWind: true, HasHeight: true}
	for i := range levels {
		if levels[i].WindSpeed == nil || levels[i].WindDirection == nil {
			p.HasWind = false
		}
		if levels[i].HeightM == nil {
			p.HasHeight = false
		}
	}
	if !p.HasWind {
		for i := range p.Levels {
			p.Levels[i].WindSpeed = nil
			p.Levels[i].WindDirection = nil
		}
	}
	if !p.HasHeight {
		for i := range p.Levels {
			p.Levels[i].HeightM = nil
		}
	}
	return p, nil
}

// resolveDewpoint returns a dewpoint for the sample, deriving one from
// relative humidity when no direct value exists.
func resolveDewpoint(s PressureLevelSample) (float64, bool) {
	if s.Dewpoint != nil {
		return *s.Dewpoint, true
	}
	if s.RelativeHumidity != nil && s.Temperature != nil {
		if td, ok := dewpointFromRH(*s.Temperature, *s.RelativeHumidity); ok {
			return td, true
		}
	}
	return 0, false
}

// AltitudeFt returns the altitude of level i in feet MSL, from geopotential
// height when the profile carries heights, otherwise from the ICAO standard
// atmosphere.
func (p *Profile) AltitudeFt(i int) float64 {
	lv := p.Levels[i]
	if p.HasHeight && lv.HeightM != nil {
		return *lv.HeightM * metersToFeet
	}
	return pressureToAltitudeFt(lv.Pressure)
}

// SurfacePressure returns the pressure of the lowest level.
func (p *Profile) SurfacePressure() float64 { return p.Levels[0].Pressure }
