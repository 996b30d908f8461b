package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/soypat/geometry/md3"
)

const (
	DefaultDrag       = 0.1
	DefaultDeltaFloor = 1e-10
)

// Kerr is a Cartesian toy model: the clamped Schwarzschild acceleration plus
// a velocity-rotating term Drag·a·(vy, -vx) standing in for frame dragging.
type Kerr struct {
	Schwarzschild
	Drag float64
}

func NewKerr(p FieldParams) *Kerr {
	return &Kerr{Schwarzschild: *NewSchwarzschild(p), Drag: DefaultDrag}
}

func (k *Kerr) Derive(x dynamo.State, t float64) dynamo.State {
	acc := k.acceleration(planar(x))
	drag := md3.Scale(k.Drag*k.Params.Spin, md3.Vec{X: x[3], Y: -x[2]})
	acc = md3.Add(acc, drag)
	return dynamo.State{x[2], x[3], acc.X, acc.Y}
}

func (k *Kerr) GetParams() map[string]float64 {
	m := k.Schwarzschild.GetParams()
	m["drag"] = k.Drag
	return m
}

func (k *Kerr) SetParam(name string, value float64) error {
	if name == "drag" {
		k.Drag = value
		return nil
	}
	return k.Schwarzschild.SetParam(name, value)
}

// KerrEquatorial is a simplified equatorial Kerr geodesic with state
// (r, φ, p_r, p_φ):
//
//	dr/dλ   = p_r
//	dφ/dλ   = 2Mar·p_r/(Δr²) + p_φ/r²
//	dp_r/dλ = -(M/r²)(r²-a²)p_r²/r² + (r-M)p_r²/Δ
//	dp_φ/dλ = 0
//
// with Δ = r² - 2Mr + a². Δ is held at ±DeltaFloor when it gets closer to
// zero than that, keeping its sign.
type KerrEquatorial struct {
	Params     FieldParams
	DeltaFloor float64
}

func NewKerrEquatorial(p FieldParams) *KerrEquatorial {
	return &KerrEquatorial{Params: p, DeltaFloor: DefaultDeltaFloor}
}

func (k *KerrEquatorial) StateDim() int { return 4 }

// Delta returns the floored Δ at radius r.
func (k *KerrEquatorial) Delta(r float64) float64 {
	m, a := k.Params.Mass, k.Params.Spin
	d := r*r - 2*m*r + a*a
	if math.Abs(d) < k.DeltaFloor {
		if d < 0 {
			return -k.DeltaFloor
		}
		return k.DeltaFloor
	}
	return d
}

func (k *KerrEquatorial) Derive(x dynamo.State, t float64) dynamo.State {
	r, pr, pphi := x[0], x[2], x[3]
	m, a := k.Params.Mass, k.Params.Spin
	r2 := r * r
	delta := k.Delta(r)

	dphi := 2*m*a*r*pr/(delta*r2) + pphi/r2
	dpr := -(m/r2)*(r2-a*a)*pr*pr/r2 + (r-m)*pr*pr/delta

	return dynamo.State{pr, dphi, dpr, 0}
}

func (k *KerrEquatorial) Radius(x dynamo.State) float64 {
	return x[0]
}

func (k *KerrEquatorial) Position(x dynamo.State) (float64, float64) {
	return x[0] * math.Cos(x[1]), x[0] * math.Sin(x[1])
}

func (k *KerrEquatorial) GetParams() map[string]float64 {
	m := k.Params.params()
	m["delta_floor"] = k.DeltaFloor
	return m
}

func (k *KerrEquatorial) SetParam(name string, value float64) error {
	if name == "delta_floor" {
		if !(value > 0) {
			return fmt.Errorf("delta_floor %v: %w", value, dynamo.ErrParameterBounds)
		}
		k.DeltaFloor = value
		return nil
	}
	ok, err := k.Params.set(name, value)
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	return err
}
