package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDefs = []ParameterDef{
	{Key: "amber_pct", Default: 25, Min: 0, Max: 100, Step: 5},
	{Key: "margin_ft", Default: 2000, Min: 0, Max: 5000, Step: 500},
}

func TestResolveParams(t *testing.T) {
	t.Run("defaults without overrides", func(t *testing.T) {
		p := ResolveParams(testDefs, nil)
		assert.Equal(t, 25.0, p.Get("amber_pct"))
		assert.Equal(t, 2000.0, p.Get("margin_ft"))
	})

	t.Run("override within range", func(t *testing.T) {
		p := ResolveParams(testDefs, map[string]float64{"amber_pct": 40})
		assert.Equal(t, 40.0, p.Get("amber_pct"))
		assert.Equal(t, 2000.0, p.Get("margin_ft"), "untouched keys keep their defaults")
	})

	t.Run("overrides clamp to declared bounds", func(t *testing.T) {
		p := ResolveParams(testDefs, map[string]float64{
			"amber_pct": 150,
			"margin_ft": -300,
		})
		assert.Equal(t, 100.0, p.Get("amber_pct"))
		assert.Equal(t, 0.0, p.Get("margin_ft"))
	})

	t.Run("undeclared overrides are ignored", func(t *testing.T) {
		p := ResolveParams(testDefs, map[string]float64{"bogus": 7})
		assert.Equal(t, map[string]float64{"amber_pct": 25, "margin_ft": 2000}, p.Values())
	})
}

func TestParams_GetUndeclaredPanics(t *testing.T) {
	p := ResolveParams(testDefs, nil)
	assert.Panics(t, func() { p.Get("bogus") })
}

func TestParams_ValuesIsACopy(t *testing.T) {
	p := ResolveParams(testDefs, nil)
	values := p.Values()
	values["amber_pct"] = 99
	assert.Equal(t, 25.0, p.Get("amber_pct"))
}
