package advisory

// Params is a resolved parameter set: the advisory's declared defaults merged
// with user overrides, each override clamped to its declared [Min, Max].
// Keys absent from the declaration are ignored entirely.
type Params struct {
	values map[string]float64
}

// ResolveParams merges overrides onto the declared defaults.
func ResolveParams(defs []ParameterDef, overrides map[string]float64) Params {
	values := make(map[string]float64, len(defs))
	for _, def := range defs {
		v := def.Default
		if o, ok := overrides[def.Key]; ok {
			v = clamp(o, def.Min, def.Max)
		}
		values[def.Key] = v
	}
	return Params{values: values}
}

// Get returns a resolved parameter value. Asking for an undeclared key is a
// programming error in the evaluator and panics; the batch runner isolates
// the panic like any other evaluator failure.
func (p Params) Get(key string) float64 {
	v, ok := p.values[key]
	if !ok {
		panic("advisory: undeclared parameter " + key)
	}
	return v
}

// Values returns a copy of all resolved values for result reporting.
func (p Params) Values() map[string]float64 {
	out := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
