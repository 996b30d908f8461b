package integrators

import "github.com/san-kum/lightpath/internal/dynamo"

// Leapfrog is the kick-drift-kick scheme. For velocity-dependent forces,
// such as the Kerr drag term, it loses its symplectic property but stays
// second order in position.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) RequiresCanonical() {}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, t)
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := dyn.Derive(l.scratch, t+dt)

	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
