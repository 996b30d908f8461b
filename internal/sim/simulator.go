package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
)

type Simulator struct {
	field      dynamo.Field
	integrator dynamo.Integrator
	metrics    []Metric
	observers  []Observer
}

func New(field dynamo.Field, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		field:      field,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates x0 until a threshold fires or cfg.MaxSteps steps are
// taken. Before each step the current radius is tested against, in order,
// the horizon, the photon sphere and the escape radius, and then the state
// and its derivative are checked for non-finite values. Only states that
// pass every check are recorded. A photon-sphere radius inside the horizon
// never fires, since the horizon is tested first.
func (s *Simulator) Run(x0 dynamo.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.checkCompatible(x0); err != nil {
		return nil, err
	}
	if !x0.IsValid() {
		return nil, &dynamo.SimulationError{Step: 0, T: cfg.Start, State: x0.Clone(), Wrapped: dynamo.ErrInvalidState}
	}

	capacity := cfg.MaxSteps + 1
	if capacity > 1<<14 {
		capacity = 1 << 14
	}
	result := &Result{
		Samples:         make([]Sample, 0, capacity),
		Termination:     MaxStepsReached,
		ClosestApproach: math.Inf(1),
		Metrics:         make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := cfg.Start
	escape := cfg.Thresholds.EscapeRadius(s.field.Radius(x0))

	for step := 0; step < cfg.MaxSteps; step++ {
		r := s.field.Radius(x)
		if term, ok := s.classify(x, t, r, escape, cfg.Thresholds); ok {
			result.Termination = term
			if finite(r) && r < result.ClosestApproach {
				result.ClosestApproach = r
			}
			break
		}

		sample := s.sample(x, t, r)
		result.Samples = append(result.Samples, sample)
		if r < result.ClosestApproach {
			result.ClosestApproach = r
		}
		for _, m := range s.metrics {
			m.Observe(sample, x)
		}
		for _, obs := range s.observers {
			obs.OnStep(step, sample, x)
		}

		x = s.integrator.Step(s.field, x, t, cfg.Step)
		t += cfg.Step
		result.Steps++
	}

	result.FinalState = x
	result.Final = s.sample(x, t, s.field.Radius(x))
	if !finite(result.Final.X) || !finite(result.Final.Y) {
		if n := len(result.Samples); n > 0 {
			result.Final = result.Samples[n-1]
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) classify(x dynamo.State, t, r, escape float64, th Thresholds) (Termination, bool) {
	switch {
	case th.Horizon > 0 && r <= th.Horizon:
		return HorizonCapture, true
	case th.PhotonSphere > 0 && r <= th.PhotonSphere:
		return PhotonSphereCrossed, true
	case r > escape:
		return Escaped, true
	case !x.IsValid() || !finite(r):
		return NumericalDegenerate, true
	case !s.field.Derive(x, t).IsValid():
		return NumericalDegenerate, true
	}
	return 0, false
}

func (s *Simulator) sample(x dynamo.State, t, r float64) Sample {
	px, py := s.field.Position(x)
	return Sample{T: t, X: px, Y: py, R: r}
}

func (s *Simulator) checkCompatible(x0 dynamo.State) error {
	if len(x0) != s.field.StateDim() {
		return fmt.Errorf("state has %d components, field expects %d: %w",
			len(x0), s.field.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if _, ok := s.integrator.(dynamo.Splitting); !ok {
		return nil
	}
	c, ok := s.field.(dynamo.Canonical)
	if !ok || 2*c.PositionDim() != s.field.StateDim() {
		return fmt.Errorf("%T needs position/velocity state, %T does not provide one: %w",
			s.integrator, s.field, dynamo.ErrIncompatible)
	}
	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Step > 0) || math.IsInf(cfg.Step, 0) {
		return fmt.Errorf("step must be positive, got %v: %w", cfg.Step, dynamo.ErrInvalidConfig)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d: %w", cfg.MaxSteps, dynamo.ErrInvalidConfig)
	}
	th := cfg.Thresholds
	for name, v := range map[string]float64{
		"horizon":       th.Horizon,
		"photon sphere": th.PhotonSphere,
		"escape":        th.Escape,
		"escape factor": th.EscapeFactor,
	} {
		if math.IsNaN(v) {
			return fmt.Errorf("%s threshold is NaN: %w", name, dynamo.ErrInvalidConfig)
		}
	}
	return nil
}
