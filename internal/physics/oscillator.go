package physics

import (
	"fmt"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// Oscillator is the harmonic reference system a = -ω²x, state (x, v).
// Its energy ω²x² + v² is exactly conserved, which makes integrator
// error directly visible.
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1}
}

func (o *Oscillator) StateDim() int    { return 2 }
func (o *Oscillator) PositionDim() int { return 1 }

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -o.Omega * o.Omega * x[0]}
}

func (o *Oscillator) Invariant(x dynamo.State) float64 {
	return o.Omega*o.Omega*x[0]*x[0] + x[1]*x[1]
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"omega": o.Omega}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "omega":
		o.Omega = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
