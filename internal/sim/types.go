package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// Termination is the reason a run stopped. Every run ends with exactly one.
type Termination int

const (
	MaxStepsReached Termination = iota
	HorizonCapture
	PhotonSphereCrossed
	Escaped
	NumericalDegenerate
)

var terminationNames = [...]string{
	MaxStepsReached:     "max_steps_reached",
	HorizonCapture:      "horizon_capture",
	PhotonSphereCrossed: "photon_sphere_crossed",
	Escaped:             "escaped",
	NumericalDegenerate: "numerical_degenerate",
}

func (t Termination) String() string {
	if t < 0 || int(t) >= len(terminationNames) {
		return fmt.Sprintf("termination(%d)", int(t))
	}
	return terminationNames[t]
}

// Captured reports whether the ray fell inside a tracked boundary.
func (t Termination) Captured() bool {
	return t == HorizonCapture || t == PhotonSphereCrossed
}

func (t Termination) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Termination) UnmarshalText(b []byte) error {
	v, err := ParseTermination(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParseTermination(s string) (Termination, error) {
	for i, name := range terminationNames {
		if name == s {
			return Termination(i), nil
		}
	}
	return 0, fmt.Errorf("unknown termination: %q", s)
}

const DefaultEscapeFactor = 50.0

// Thresholds are the stopping radii of a run. Horizon and PhotonSphere at
// or below zero are not tracked. Escape > 0 is an absolute radius;
// otherwise the escape radius is EscapeFactor times the starting radius.
type Thresholds struct {
	Horizon      float64 `yaml:"horizon" json:"horizon"`
	PhotonSphere float64 `yaml:"photon_sphere" json:"photon_sphere"`
	Escape       float64 `yaml:"escape" json:"escape"`
	EscapeFactor float64 `yaml:"escape_factor" json:"escape_factor"`
}

func (th Thresholds) EscapeRadius(r0 float64) float64 {
	if th.Escape > 0 {
		return th.Escape
	}
	factor := th.EscapeFactor
	if factor <= 0 {
		factor = DefaultEscapeFactor
	}
	return factor * r0
}

type Config struct {
	// Step is dt for time-parametrised fields and dφ for the geodesic form.
	Step       float64
	MaxSteps   int
	Start      float64
	Thresholds Thresholds
}

func DefaultConfig() Config {
	return Config{
		Step:     0.01,
		MaxSteps: 4000,
		Thresholds: Thresholds{
			EscapeFactor: DefaultEscapeFactor,
		},
	}
}

// Sample is one recorded point of the path.
type Sample struct {
	T float64 `json:"t"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

type Result struct {
	Samples         []Sample
	Termination     Termination
	Steps           int
	ClosestApproach float64
	Final           Sample
	FinalState      dynamo.State
	Metrics         map[string]float64
}

// Radii returns the radius of every sample in order.
func (r *Result) Radii() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.R
	}
	return out
}

// Metric accumulates a scalar over the recorded samples of a run.
type Metric interface {
	Name() string
	Observe(s Sample, x dynamo.State)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, s Sample, x dynamo.State)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
