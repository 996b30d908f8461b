package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is the right-hand side of an autonomous or parametrised ODE.
// The independent variable t is coordinate time for Cartesian forms and
// the azimuth φ for the inverse-radius geodesic form.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Field is a System whose state can be located in the equatorial plane.
type Field interface {
	System
	Radius(x State) float64
	Position(x State) (x0, y0 float64)
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Canonical marks states laid out as positions followed by velocities of
// equal dimension, as required by splitting integrators.
type Canonical interface {
	PositionDim() int
}

// Splitting marks integrators that update positions and velocities in
// separate stages and therefore need a Canonical system.
type Splitting interface {
	Integrator
	RequiresCanonical()
}

// Invariant is a quantity the exact flow conserves.
type Invariant interface {
	Invariant(x State) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
