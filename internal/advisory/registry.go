package advisory

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/flightwx/briefing-engine/internal/route"
)

// Evaluator is one route advisory: static catalog metadata plus a pure
// evaluation function over the immutable route context.
type Evaluator interface {
	Catalog() CatalogEntry
	Evaluate(rc *route.Context, params Params) (RouteAdvisoryResult, error)
}

// Registry maps advisory ids to evaluators. It is populated once at first
// use and read-only afterwards.
type Registry struct {
	mu         sync.Mutex
	evaluators map[string]Evaluator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[string]Evaluator)}
}

// Register adds an evaluator. Registering a second evaluator under an
// already-taken id is rejected with an error; the first registration wins.
func (r *Registry) Register(e Evaluator) error {
	id := e.Catalog().ID
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.evaluators[id]; exists {
		return fmt.Errorf("advisory %q already registered", id)
	}
	r.evaluators[id] = e
	return nil
}

// Catalog returns all registered catalog entries sorted by id.
func (r *Registry) Catalog() []CatalogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CatalogEntry, 0, len(r.evaluators))
	for _, e := range r.evaluators {
		out = append(out, e.Catalog())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EvaluateAll runs the requested advisories (explicit ids, or all
// default-enabled ones when ids is empty) against the route context. Each
// evaluator's failure — returned error or panic — is logged and its advisory
// omitted; all other advisories still run. Results are ordered by id.
func (r *Registry) EvaluateAll(logger *slog.Logger, rc *route.Context, ids []string, overrides map[string]map[string]float64) []RouteAdvisoryResult {
	selected := r.selectEvaluators(ids)

	results := make([]RouteAdvisoryResult, 0, len(selected))
	for _, e := range selected {
		entry := e.Catalog()
		params := ResolveParams(entry.Parameters, overrides[entry.ID])

		result, err := safeEvaluate(e, rc, params)
		if err != nil {
			logger.Error("advisory evaluation failed, omitting from results",
				"advisory_id", entry.ID,
				"error", err,
			)
			continue
		}
		results = append(results, result)
	}
	return results
}

func (r *Registry) selectEvaluators(ids []string) []Evaluator {
	r.mu.Lock()
	defer r.mu.Unlock()

	var selected []Evaluator
	if len(ids) > 0 {
		for _, id := range ids {
			if e, ok := r.evaluators[id]; ok {
				selected = append(selected, e)
			}
		}
	} else {
		for _, e := range r.evaluators {
			if e.Catalog().DefaultEnabled {
				selected = append(selected, e)
			}
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Catalog().ID < selected[j].Catalog().ID
	})
	return selected
}

// safeEvaluate converts evaluator panics into errors so the batch boundary
// can isolate them.
func safeEvaluate(e Evaluator, rc *route.Context, params Params) (result RouteAdvisoryResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("evaluator panicked: %v", rec)
		}
	}()
	return e.Evaluate(rc, params)
}

// Default returns the process-wide registry with the standard advisory
// catalog, populated exactly once.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, e := range standardEvaluators() {
			// Ids in the standard catalog are unique by construction.
			if err := defaultRegistry.Register(e); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// standardEvaluators lists the built-in advisory catalog.
func standardEvaluators() []Evaluator {
	return []Evaluator{
		&vmcCruise{},
		&cloudTop{},
		&fikiIcing{},
		&icingEscape{},
		&freezingLevel{},
		&turbulence{},
		&mountainWind{},
		&convective{},
		&modelAgreement{},
	}
}
