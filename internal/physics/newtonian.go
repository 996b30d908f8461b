package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/soypat/geometry/md3"
)

// Newtonian pulls the ray toward the origin with a = -k·M·r/r³.
// Coupling k = 1 is plain Newtonian gravity; k = 2 doubles the pull to mimic
// the relativistic deflection of light at large r. Undefined at r = 0.
type Newtonian struct {
	Params   FieldParams
	Coupling float64
}

func NewNewtonian(p FieldParams) *Newtonian {
	return &Newtonian{Params: p, Coupling: 1}
}

func (n *Newtonian) StateDim() int    { return 4 }
func (n *Newtonian) PositionDim() int { return 2 }

func (n *Newtonian) Derive(x dynamo.State, t float64) dynamo.State {
	pos := planar(x)
	r := md3.Norm(pos)
	acc := md3.Scale(-n.Coupling*n.Params.Mass/(r*r*r), pos)
	return dynamo.State{x[2], x[3], acc.X, acc.Y}
}

func (n *Newtonian) Radius(x dynamo.State) float64 {
	return math.Hypot(x[0], x[1])
}

func (n *Newtonian) Position(x dynamo.State) (float64, float64) {
	return x[0], x[1]
}

// Invariant is the specific orbital energy ½v² - kM/r.
func (n *Newtonian) Invariant(x dynamo.State) float64 {
	v := md3.Vec{X: x[2], Y: x[3]}
	return 0.5*md3.Norm2(v) - n.Coupling*n.Params.Mass/md3.Norm(planar(x))
}

func (n *Newtonian) GetParams() map[string]float64 {
	m := n.Params.params()
	m["coupling"] = n.Coupling
	return m
}

func (n *Newtonian) SetParam(name string, value float64) error {
	if name == "coupling" {
		n.Coupling = value
		return nil
	}
	ok, err := n.Params.set(name, value)
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	return err
}

func planar(x dynamo.State) md3.Vec {
	return md3.Vec{X: x[0], Y: x[1]}
}
