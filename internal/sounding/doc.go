// Package sounding analyzes vertical atmospheric profiles for flight planning.
//
// # Input
//
// A sounding arrives as an ordered list of [PressureLevelSample] values for one
// forecast model at one route point, typically interpolated from GRIB pressure
// levels by the upstream forecast collector. Only pressure is mandatory per
// sample; every other field is optional and its absence degrades the analysis
// rather than failing it.
//
// # Units
//
//	pressure            hPa
//	temperature         °C
//	wind                knots, direction in degrees true
//	geopotential height metres (converted to feet internally)
//	vertical motion     omega in Pa/s (negative = rising air)
//	altitudes           feet MSL
//	CAPE/CIN            J/kg
//	precipitable water  mm
//
// When geopotential heights are missing, altitudes fall back to the ICAO
// standard atmosphere pressure-to-height relation.
//
// # Thermodynamic conventions
//
// Parcel computations follow Bolton (1980): saturation vapour pressure
// es = 6.112·exp(17.67·T/(T+243.5)), LCL temperature from eq. 15, equivalent
// potential temperature from eq. 43. Wet-bulb temperature uses the Stull
// (2011) regression. Parcels are lifted dry-adiabatically to the LCL and
// pseudo-adiabatically above it in 5 hPa steps; CAPE and CIN are trapezoid
// integrals of parcel buoyancy in ln(p).
//
// Lapse rates are reported in °C/km with the meteorological sign convention:
// positive means temperature decreases with height, so a negative lapse rate
// marks an inversion.
//
// # Failure model
//
// Building a profile from fewer than three usable samples returns
// [ErrInsufficientData]; everything downstream of a built profile is
// infallible in the error sense. Individual indices that cannot be computed
// (profile too shallow for the 850/500 hPa indices, parcel never buoyant,
// missing wind) are nil pointers in [ThermodynamicIndices], never sentinel
// values.
package sounding
