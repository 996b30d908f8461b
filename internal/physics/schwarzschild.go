package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/soypat/geometry/md3"
)

const (
	DefaultSafetyMargin = 0.05
	DefaultFactorFloor  = 0.01
)

// Schwarzschild is the Cartesian approximation a = -2M·r/(r³·(1-2M/r)).
//
// Inside r < Rs·(1+SafetyMargin) the factor 1-2M/r is replaced by
// max(1-2M/r, FactorFloor), so the acceleration stays finite down to and
// through the horizon. Trajectories inside the margin are not physical.
type Schwarzschild struct {
	Params       FieldParams
	SafetyMargin float64
	FactorFloor  float64
}

func NewSchwarzschild(p FieldParams) *Schwarzschild {
	return &Schwarzschild{
		Params:       p,
		SafetyMargin: DefaultSafetyMargin,
		FactorFloor:  DefaultFactorFloor,
	}
}

func (s *Schwarzschild) StateDim() int    { return 4 }
func (s *Schwarzschild) PositionDim() int { return 2 }

// Factor returns the possibly clamped 1-2M/r used at radius r.
func (s *Schwarzschild) Factor(r float64) float64 {
	return clampedFactor(r, s.Params.Mass, s.SafetyMargin, s.FactorFloor)
}

func (s *Schwarzschild) Derive(x dynamo.State, t float64) dynamo.State {
	acc := s.acceleration(planar(x))
	return dynamo.State{x[2], x[3], acc.X, acc.Y}
}

func (s *Schwarzschild) acceleration(pos md3.Vec) md3.Vec {
	r := md3.Norm(pos)
	return md3.Scale(-2*s.Params.Mass/(r*r*r*s.Factor(r)), pos)
}

func (s *Schwarzschild) Radius(x dynamo.State) float64 {
	return math.Hypot(x[0], x[1])
}

func (s *Schwarzschild) Position(x dynamo.State) (float64, float64) {
	return x[0], x[1]
}

func (s *Schwarzschild) GetParams() map[string]float64 {
	m := s.Params.params()
	m["safety_margin"] = s.SafetyMargin
	m["factor_floor"] = s.FactorFloor
	return m
}

func (s *Schwarzschild) SetParam(name string, value float64) error {
	switch name {
	case "safety_margin":
		if value < 0 {
			return fmt.Errorf("safety_margin %v: %w", value, dynamo.ErrParameterBounds)
		}
		s.SafetyMargin = value
		return nil
	case "factor_floor":
		if !(value > 0) {
			return fmt.Errorf("factor_floor %v: %w", value, dynamo.ErrParameterBounds)
		}
		s.FactorFloor = value
		return nil
	}
	ok, err := s.Params.set(name, value)
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	return err
}

func clampedFactor(r, mass, margin, floor float64) float64 {
	f := 1 - 2*mass/r
	if r < 2*mass*(1+margin) && f < floor {
		return floor
	}
	return f
}

// SchwarzschildGeodesic integrates the exact null geodesic
// d²u/dφ² = -u + 3Mu² with state (u, du/dφ, φ). The independent variable
// is the azimuth, so the step size is an angle.
type SchwarzschildGeodesic struct {
	Params FieldParams
}

func NewSchwarzschildGeodesic(p FieldParams) *SchwarzschildGeodesic {
	return &SchwarzschildGeodesic{Params: p}
}

func (g *SchwarzschildGeodesic) StateDim() int { return 3 }

func (g *SchwarzschildGeodesic) Derive(x dynamo.State, phi float64) dynamo.State {
	u, du := x[0], x[1]
	return dynamo.State{du, -u + 3*g.Params.Mass*u*u, 1}
}

// Radius is 1/u. A non-positive u means the ray has reached infinity.
func (g *SchwarzschildGeodesic) Radius(x dynamo.State) float64 {
	if x[0] <= 0 {
		return math.Inf(1)
	}
	return 1 / x[0]
}

func (g *SchwarzschildGeodesic) Position(x dynamo.State) (float64, float64) {
	r := g.Radius(x)
	return r * math.Cos(x[2]), r * math.Sin(x[2])
}

// Invariant is (du/dφ)² + u²(1-2Mu), equal to 1/b² on the exact flow.
func (g *SchwarzschildGeodesic) Invariant(x dynamo.State) float64 {
	u, du := x[0], x[1]
	return du*du + u*u*(1-2*g.Params.Mass*u)
}

func (g *SchwarzschildGeodesic) GetParams() map[string]float64 {
	return g.Params.params()
}

func (g *SchwarzschildGeodesic) SetParam(name string, value float64) error {
	ok, err := g.Params.set(name, value)
	if !ok {
		return fmt.Errorf("unknown param: %s", name)
	}
	return err
}
