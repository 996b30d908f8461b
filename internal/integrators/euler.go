package integrators

import "github.com/san-kum/lightpath/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// EulerCromer updates velocities first and then moves positions with the
// new velocities. It is first order but keeps orbits bounded far longer
// than plain Euler.
type EulerCromer struct{}

func NewEulerCromer() *EulerCromer {
	return &EulerCromer{}
}

func (e *EulerCromer) RequiresCanonical() {}

func (e *EulerCromer) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := dyn.Derive(x, t)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dt*dx[half+i]
		result[i] = x[i] + dt*result[half+i]
	}
	return result
}
