package advisory

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightwx/briefing-engine/internal/route"
)

// fakeEvaluator is a scriptable evaluator for registry tests.
type fakeEvaluator struct {
	entry  CatalogEntry
	result RouteAdvisoryResult
	err    error
	panics bool
}

func (f *fakeEvaluator) Catalog() CatalogEntry { return f.entry }

func (f *fakeEvaluator) Evaluate(_ *route.Context, _ Params) (RouteAdvisoryResult, error) {
	if f.panics {
		panic("scripted panic")
	}
	return f.result, f.err
}

func fake(id string, enabled bool) *fakeEvaluator {
	return &fakeEvaluator{
		entry:  CatalogEntry{ID: id, Label: "Fake " + id, DefaultEnabled: enabled},
		result: RouteAdvisoryResult{AdvisoryID: id, Status: StatusGreen},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	first := fake("dup", true)
	first.entry.Label = "first"
	second := fake("dup", true)
	second.entry.Label = "second"

	require.NoError(t, r.Register(first))
	err := r.Register(second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	entries := r.Catalog()
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Label, "first registration wins")
}

func TestRegistry_CatalogSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(fake(id, true)))
	}
	entries := r.Catalog()
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].ID)
	assert.Equal(t, "mid", entries[1].ID)
	assert.Equal(t, "zeta", entries[2].ID)
}

func TestRegistry_EvaluateAll(t *testing.T) {
	t.Run("empty ids run default-enabled only", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(fake("enabled", true)))
		require.NoError(t, r.Register(fake("disabled", false)))

		results := r.EvaluateAll(discardLogger(), &route.Context{}, nil, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "enabled", results[0].AdvisoryID)
	})

	t.Run("explicit ids select regardless of default flag", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(fake("enabled", true)))
		require.NoError(t, r.Register(fake("disabled", false)))

		results := r.EvaluateAll(discardLogger(), &route.Context{}, []string{"disabled"}, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "disabled", results[0].AdvisoryID)
	})

	t.Run("unknown ids are skipped", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(fake("known", true)))

		results := r.EvaluateAll(discardLogger(), &route.Context{}, []string{"known", "missing"}, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "known", results[0].AdvisoryID)
	})

	t.Run("results are ordered by id", func(t *testing.T) {
		r := NewRegistry()
		for _, id := range []string{"zeta", "alpha"} {
			require.NoError(t, r.Register(fake(id, true)))
		}
		results := r.EvaluateAll(discardLogger(), &route.Context{}, nil, nil)
		require.Len(t, results, 2)
		assert.Equal(t, "alpha", results[0].AdvisoryID)
		assert.Equal(t, "zeta", results[1].AdvisoryID)
	})

	t.Run("a panicking evaluator is omitted, the rest run", func(t *testing.T) {
		r := NewRegistry()
		broken := fake("broken", true)
		broken.panics = true
		require.NoError(t, r.Register(broken))
		require.NoError(t, r.Register(fake("healthy", true)))

		results := r.EvaluateAll(discardLogger(), &route.Context{}, nil, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "healthy", results[0].AdvisoryID)
	})

	t.Run("an erroring evaluator is omitted", func(t *testing.T) {
		r := NewRegistry()
		failing := fake("failing", true)
		failing.err = errors.New("scripted failure")
		require.NoError(t, r.Register(failing))
		require.NoError(t, r.Register(fake("healthy", true)))

		results := r.EvaluateAll(discardLogger(), &route.Context{}, nil, nil)
		require.Len(t, results, 1)
		assert.Equal(t, "healthy", results[0].AdvisoryID)
	})
}

func TestDefault_StandardCatalog(t *testing.T) {
	entries := Default().Catalog()
	require.Len(t, entries, 9)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
		assert.True(t, e.DefaultEnabled, "standard advisories are default-enabled")
	}
	assert.Equal(t, []string{
		"cloud_top", "convective", "fiki_icing", "freezing_level",
		"icing_escape", "model_agreement", "mountain_wind", "turbulence", "vmc_cruise",
	}, ids)
}
