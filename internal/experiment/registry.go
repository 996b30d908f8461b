package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/integrators"
	"github.com/san-kum/lightpath/internal/metrics"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
)

type Registry struct {
	fields      map[string]func(physics.FieldParams) dynamo.Field
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		fields:      make(map[string]func(physics.FieldParams) dynamo.Field),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.fields[config.RegimeNewtonian] = func(p physics.FieldParams) dynamo.Field { return physics.NewNewtonian(p) }
	r.fields[config.RegimeSchwarzschild] = func(p physics.FieldParams) dynamo.Field { return physics.NewSchwarzschild(p) }
	r.fields[config.RegimeGeodesic] = func(p physics.FieldParams) dynamo.Field { return physics.NewSchwarzschildGeodesic(p) }
	r.fields[config.RegimeKerr] = func(p physics.FieldParams) dynamo.Field { return physics.NewKerr(p) }
	r.fields[config.RegimeKerrEquatorial] = func(p physics.FieldParams) dynamo.Field { return physics.NewKerrEquatorial(p) }

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["euler_cromer"] = func() dynamo.Integrator { return integrators.NewEulerCromer() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }

	return r
}

// GetField builds a fresh field for the regime after validating params.
func (r *Registry) GetField(regime string, p physics.FieldParams) (dynamo.Field, error) {
	fn, ok := r.fields[regime]
	if !ok {
		return nil, fmt.Errorf("unknown regime: %s", regime)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return fn(p), nil
}

// GetIntegrator returns a new instance on every call.
func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListRegimes() []string {
	return sortedKeys(r.fields)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) DefaultMetrics(field dynamo.Field) []sim.Metric {
	return metrics.ForField(field)
}

// DefaultHorizon is the capture radius used when a config leaves it unset.
func DefaultHorizon(regime string, p physics.FieldParams) float64 {
	switch regime {
	case config.RegimeNewtonian:
		return 1.5 * p.Mass
	case config.RegimeGeodesic:
		return p.SchwarzschildRadius()
	case config.RegimeKerrEquatorial:
		return (1 + physics.DefaultSafetyMargin) * p.HorizonRadius()
	default:
		return (1 + physics.DefaultSafetyMargin) * p.SchwarzschildRadius()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
