package route

import (
	"math"
	"sort"
)

// Agreement classifies the spread of a variable across models.
type Agreement string

const (
	AgreementGood     Agreement = "good"
	AgreementModerate Agreement = "moderate"
	AgreementPoor     Agreement = "poor"
)

// ModelDivergence reports how far forecast models disagree on one variable
// at one point.
type ModelDivergence struct {
	Variable  string             `json:"variable"`
	Values    map[string]float64 `json:"values"` // model → raw value
	Mean      float64            `json:"mean"`
	Spread    float64            `json:"spread"`
	Agreement Agreement          `json:"agreement"`
}

// VarWindDirection is the single circular variable: its mean and spread are
// computed on the circle so that 350° and 10° are 20° apart, not 340°.
const VarWindDirection = "wind_direction"

// spreadThresholds maps variable name to the (good, poor) spread boundaries:
// spread ≤ good → good agreement, spread ≥ poor → poor, else moderate.
// Inherited domain conventions, deliberately variables rather than constants.
var spreadThresholds = map[string][2]float64{
	VarWindDirection: {30, 60},   // degrees
	"wind_speed":     {5, 15},    // kt
	"temperature":    {2, 5},     // °C
	"freezing_level": {1000, 3000}, // ft
	"cloud_base":     {1000, 3000}, // ft
	"cape":           {250, 1000},  // J/kg
}

// defaultSpreadThresholds applies to variables without a table entry.
var defaultSpreadThresholds = [2]float64{10, 25}

// Compare computes the cross-model divergence of one named variable. Only
// variables present for at least two models are comparable; otherwise nil.
func Compare(variable string, values map[string]float64) *ModelDivergence {
	if len(values) < 2 {
		return nil
	}

	vals := make([]float64, 0, len(values))
	snapshot := make(map[string]float64, len(values))
	for _, model := range sortedModels(values) {
		vals = append(vals, values[model])
		snapshot[model] = values[model]
	}

	var mean, spread float64
	if variable == VarWindDirection {
		mean = circularMeanDeg(vals)
		spread = maxPairwiseAngularDiff(vals)
	} else {
		minV, maxV := vals[0], vals[0]
		var sum float64
		for _, v := range vals {
			sum += v
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		mean = sum / float64(len(vals))
		spread = maxV - minV
	}

	thresholds, ok := spreadThresholds[variable]
	if !ok {
		thresholds = defaultSpreadThresholds
	}

	return &ModelDivergence{
		Variable:  variable,
		Values:    snapshot,
		Mean:      mean,
		Spread:    spread,
		Agreement: classifySpread(spread, thresholds),
	}
}

func classifySpread(spread float64, thresholds [2]float64) Agreement {
	switch {
	case spread <= thresholds[0]:
		return AgreementGood
	case spread >= thresholds[1]:
		return AgreementPoor
	default:
		return AgreementModerate
	}
}

func sortedModels(values map[string]float64) []string {
	models := make([]string, 0, len(values))
	for m := range values {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// circularMeanDeg averages angles on the circle, normalized to [0, 360).
func circularMeanDeg(degs []float64) float64 {
	var sumSin, sumCos float64
	for _, d := range degs {
		rad := d * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}
	mean := math.Atan2(sumSin, sumCos) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	return mean
}

// maxPairwiseAngularDiff returns the largest wrap-aware difference between
// any two angles, e.g. 350° vs 10° → 20°.
func maxPairwiseAngularDiff(degs []float64) float64 {
	var maxDiff float64
	for i := 0; i < len(degs); i++ {
		for j := i + 1; j < len(degs); j++ {
			d := angularDiff(degs[i], degs[j])
			if d > maxDiff {
				maxDiff = d
			}
		}
	}
	return maxDiff
}

func angularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
