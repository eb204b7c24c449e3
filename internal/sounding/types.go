package sounding

// PressureLevelSample is one raw forecast level as delivered by the collector.
// Pressure is required; every other field may be absent.
type PressureLevelSample struct {
	Pressure           float64  `json:"pressure"` // hPa
	Temperature        *float64 `json:"temperature,omitempty"`
	Dewpoint           *float64 `json:"dewpoint,omitempty"`
	RelativeHumidity   *float64 `json:"relative_humidity,omitempty"` // %
	WindSpeed          *float64 `json:"wind_speed,omitempty"`        // kt
	WindDirection      *float64 `json:"wind_direction,omitempty"`    // degrees true
	GeopotentialHeight *float64 `json:"geopotential_height,omitempty"` // m
	Omega              *float64 `json:"omega,omitempty"`             // Pa/s
}

// Level is a validated profile level. Temperature and Dewpoint are always
// present after profile preparation; wind and height are present on every
// level or on none (see BuildProfile).
type Level struct {
	Pressure         float64
	Temperature      float64
	Dewpoint         float64
	RelativeHumidity *float64
	WindSpeed        *float64
	WindDirection    *float64
	HeightM          *float64
	Omega            *float64
}

// Profile is a sorted, analyzable sounding: surface first, pressure strictly
// descending with height.
type Profile struct {
	Levels    []Level
	HasWind   bool
	HasHeight bool
}

// DerivedLevel enriches one profile level with computed quantities. Slice
// indices mirror Profile.Levels. LapseRateToNext describes the layer from
// this level to the next one above and is nil at the profile top;
// BruntVaisalaN2 and Richardson describe the layer below and are nil at the
// surface.
type DerivedLevel struct {
	Pressure            float64  `json:"pressure"`
	AltitudeFt          float64  `json:"altitude_ft"`
	Temperature         float64  `json:"temperature"`
	Dewpoint            float64  `json:"dewpoint"`
	DewpointDepression  float64  `json:"dewpoint_depression"`
	WetBulb             *float64 `json:"wet_bulb,omitempty"`
	PotentialTemp       float64  `json:"potential_temp"`        // K
	EquivPotentialTemp  *float64 `json:"equiv_potential_temp,omitempty"` // K
	LapseRateToNext     *float64 `json:"lapse_rate_to_next,omitempty"`   // °C/km, positive = cooling with height
	RelativeHumidity    *float64 `json:"relative_humidity,omitempty"`
	WindSpeedKt         *float64 `json:"wind_speed_kt,omitempty"`
	WindDirectionDeg    *float64 `json:"wind_direction_deg,omitempty"`
	OmegaPaS            *float64 `json:"omega_pa_s,omitempty"`
	VerticalVelocityFpm *float64 `json:"vertical_velocity_fpm,omitempty"`
	BruntVaisalaN2      *float64 `json:"brunt_vaisala_n2,omitempty"` // s⁻²
	Richardson          *float64 `json:"richardson,omitempty"`
}

// ThermodynamicIndices is the scalar summary of one profile. Every field is
// optional: nil means the quantity could not be computed from the available
// levels, which is an expected outcome and never an error.
type ThermodynamicIndices struct {
	LCLPressure   *float64 `json:"lcl_pressure,omitempty"`
	LCLAltitudeFt *float64 `json:"lcl_altitude_ft,omitempty"`
	LFCPressure   *float64 `json:"lfc_pressure,omitempty"`
	LFCAltitudeFt *float64 `json:"lfc_altitude_ft,omitempty"`
	ELPressure    *float64 `json:"el_pressure,omitempty"`
	ELAltitudeFt  *float64 `json:"el_altitude_ft,omitempty"`

	SurfaceCAPE      *float64 `json:"surface_cape,omitempty"`
	MostUnstableCAPE *float64 `json:"most_unstable_cape,omitempty"`
	MixedLayerCAPE   *float64 `json:"mixed_layer_cape,omitempty"`
	CIN              *float64 `json:"cin,omitempty"`

	LiftedIndex    *float64 `json:"lifted_index,omitempty"`
	ShowalterIndex *float64 `json:"showalter_index,omitempty"`
	KIndex         *float64 `json:"k_index,omitempty"`
	TotalTotals    *float64 `json:"total_totals,omitempty"`

	PrecipitableWaterMM *float64 `json:"precipitable_water_mm,omitempty"`

	FreezingLevelFt    *float64 `json:"freezing_level_ft,omitempty"`
	MinusTenLevelFt    *float64 `json:"minus_ten_level_ft,omitempty"`
	MinusTwentyLevelFt *float64 `json:"minus_twenty_level_ft,omitempty"`

	Shear01KmKt *float64 `json:"shear_0_1km_kt,omitempty"`
	Shear06KmKt *float64 `json:"shear_0_6km_kt,omitempty"`
}

// Coverage is a cloud-layer coverage category.
type Coverage string

const (
	CoverageScattered Coverage = "SCT"
	CoverageBroken    Coverage = "BKN"
	CoverageOvercast  Coverage = "OVC"
)

// coverageRank orders coverage categories from thinnest to thickest.
var coverageRank = map[Coverage]int{
	CoverageScattered: 0,
	CoverageBroken:    1,
	CoverageOvercast:  2,
}

// CoverageRank returns the ordinal of a coverage category (SCT=0, BKN=1,
// OVC=2); unknown values rank below SCT.
func CoverageRank(c Coverage) int {
	if r, ok := coverageRank[c]; ok {
		return r
	}
	return -1
}

// CloudLayer is a detected cloud deck. Base < Top always holds, and layers
// within one profile are sorted by ascending base and never overlap.
type CloudLayer struct {
	BaseFt                 float64  `json:"base_ft"`
	TopFt                  float64  `json:"top_ft"`
	BasePressure           float64  `json:"base_pressure"`
	TopPressure            float64  `json:"top_pressure"`
	ThicknessFt            float64  `json:"thickness_ft"`
	MeanTemperature        float64  `json:"mean_temperature"`
	Coverage               Coverage `json:"coverage"`
	MeanDewpointDepression float64  `json:"mean_dewpoint_depression"`
	TheoreticalMaxTopFt    *float64 `json:"theoretical_max_top_ft,omitempty"`
}

// IcingRisk is a qualitative airframe-icing severity.
type IcingRisk string

const (
	IcingNone     IcingRisk = "none"
	IcingLight    IcingRisk = "light"
	IcingModerate IcingRisk = "moderate"
	IcingSevere   IcingRisk = "severe"
)

var icingRiskRank = map[IcingRisk]int{
	IcingNone:     0,
	IcingLight:    1,
	IcingModerate: 2,
	IcingSevere:   3,
}

// IcingRiskRank returns the ordinal severity of an icing risk (none=0 … severe=3).
func IcingRiskRank(r IcingRisk) int { return icingRiskRank[r] }

// IcingType is the expected ice accretion type.
type IcingType string

const (
	IcingTypeNone  IcingType = "none"
	IcingTypeRime  IcingType = "rime"
	IcingTypeMixed IcingType = "mixed"
	IcingTypeClear IcingType = "clear"
)

var icingTypeRank = map[IcingType]int{
	IcingTypeNone:  0,
	IcingTypeRime:  1,
	IcingTypeMixed: 2,
	IcingTypeClear: 3,
}

// IcingTypeRank orders accretion types by operational concern (none < rime <
// mixed < clear).
func IcingTypeRank(t IcingType) int { return icingTypeRank[t] }

// IcingZone is a merged run of icing-prone levels. Same ordering invariant as
// CloudLayer.
type IcingZone struct {
	BaseFt          float64   `json:"base_ft"`
	TopFt           float64   `json:"top_ft"`
	BasePressure    float64   `json:"base_pressure"`
	TopPressure     float64   `json:"top_pressure"`
	Risk            IcingRisk `json:"risk"`
	Type            IcingType `json:"type"`
	SLD             bool      `json:"sld"`
	MeanTemperature float64   `json:"mean_temperature"`
	MeanWetBulb     float64   `json:"mean_wet_bulb"`
}

// InversionLayer is a layer where temperature increases with height.
type InversionLayer struct {
	BaseFt       float64 `json:"base_ft"`
	TopFt        float64 `json:"top_ft"`
	StrengthC    float64 `json:"strength_c"` // top temperature minus base temperature
	SurfaceBased bool    `json:"surface_based"`
}

// CATRisk is a clear-air-turbulence risk category derived from the
// Richardson number.
type CATRisk string

const (
	CATNone     CATRisk = "none"
	CATLight    CATRisk = "light"
	CATModerate CATRisk = "moderate"
	CATSevere   CATRisk = "severe"
)

var catRiskRank = map[CATRisk]int{
	CATNone:     0,
	CATLight:    1,
	CATModerate: 2,
	CATSevere:   3,
}

// CATRiskRank returns the ordinal severity of a CAT risk.
func CATRiskRank(r CATRisk) int { return catRiskRank[r] }

// CATRiskLayer is a merged run of turbulence-prone levels.
type CATRiskLayer struct {
	BaseFt        float64 `json:"base_ft"`
	TopFt         float64 `json:"top_ft"`
	MinRichardson float64 `json:"min_richardson"`
	Risk          CATRisk `json:"risk"`
}

// ConvectiveRisk is the thunderstorm risk category.
type ConvectiveRisk string

const (
	ConvectiveNone     ConvectiveRisk = "none"
	ConvectiveMarginal ConvectiveRisk = "marginal"
	ConvectiveLow      ConvectiveRisk = "low"
	ConvectiveModerate ConvectiveRisk = "moderate"
	ConvectiveHigh     ConvectiveRisk = "high"
	ConvectiveExtreme  ConvectiveRisk = "extreme"
)

var convectiveRiskRank = map[ConvectiveRisk]int{
	ConvectiveNone:     0,
	ConvectiveMarginal: 1,
	ConvectiveLow:      2,
	ConvectiveModerate: 3,
	ConvectiveHigh:     4,
	ConvectiveExtreme:  5,
}

// ConvectiveRiskRank returns the ordinal severity of a convective risk.
func ConvectiveRiskRank(r ConvectiveRisk) int { return convectiveRiskRank[r] }

// ConvectiveAssessment classifies storm potential from indices alone.
// Modifiers are free-text qualifiers that never change the numeric risk.
type ConvectiveAssessment struct {
	Risk      ConvectiveRisk `json:"risk"`
	CAPE      *float64       `json:"cape,omitempty"`
	CIN       *float64       `json:"cin,omitempty"`
	Modifiers []string       `json:"modifiers,omitempty"`
}

// MotionClass categorizes the vertical-motion character of a profile.
type MotionClass string

const (
	MotionUnavailable        MotionClass = "unavailable"
	MotionQuiescent          MotionClass = "quiescent"
	MotionOscillating        MotionClass = "oscillating"
	MotionConvective         MotionClass = "convective"
	MotionSynopticAscent     MotionClass = "synoptic_ascent"
	MotionSynopticSubsidence MotionClass = "synoptic_subsidence"
)

// VerticalMotionAssessment summarizes the omega field and shear-driven
// turbulence of one profile.
type VerticalMotionAssessment struct {
	Class                   MotionClass    `json:"class"`
	MaxAbsOmega             *float64       `json:"max_abs_omega,omitempty"` // Pa/s
	MaxVerticalVelocityFpm  *float64       `json:"max_vertical_velocity_fpm,omitempty"`
	MaxVVAltitudeFt         *float64       `json:"max_vv_altitude_ft,omitempty"`
	CATLayers               []CATRiskLayer `json:"cat_layers,omitempty"`
	ConvectiveContamination bool           `json:"convective_contamination"`
}

// SoundingAnalysis is the complete analysis of one (model, point) profile.
// It is immutable after construction.
type SoundingAnalysis struct {
	Model string `json:"model"`

	Indices        ThermodynamicIndices     `json:"indices"`
	Levels         []DerivedLevel           `json:"levels"`
	CloudLayers    []CloudLayer             `json:"cloud_layers,omitempty"`
	IcingZones     []IcingZone              `json:"icing_zones,omitempty"`
	Inversions     []InversionLayer         `json:"inversions,omitempty"`
	Convective     ConvectiveAssessment     `json:"convective"`
	VerticalMotion VerticalMotionAssessment `json:"vertical_motion"`

	LowCloudPct  float64 `json:"low_cloud_pct"`
	MidCloudPct  float64 `json:"mid_cloud_pct"`
	HighCloudPct float64 `json:"high_cloud_pct"`
}
