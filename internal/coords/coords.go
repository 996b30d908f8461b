package coords

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// Direction says which way a ray launched off the x axis is heading.
type Direction int

const (
	// Inbound rays move toward the mass: u = 1/r grows with φ.
	Inbound Direction = 1
	// Outbound rays move away from it.
	Outbound Direction = -1
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "inbound", "in":
		return Inbound, nil
	case "outbound", "out":
		return Outbound, nil
	}
	return 0, fmt.Errorf("unknown direction: %q", s)
}

type CartesianState struct {
	X, Y, VX, VY float64
}

func (c CartesianState) State() dynamo.State {
	return dynamo.State{c.X, c.Y, c.VX, c.VY}
}

func (c CartesianState) Radius() float64 {
	return math.Hypot(c.X, c.Y)
}

func CartesianFromState(x dynamo.State) (CartesianState, error) {
	if len(x) != 4 {
		return CartesianState{}, fmt.Errorf("cartesian state needs 4 components, got %d: %w", len(x), dynamo.ErrDimensionMismatch)
	}
	return CartesianState{X: x[0], Y: x[1], VX: x[2], VY: x[3]}, nil
}

// PolarState holds both the inverse-radius pair (U, DU) the geodesic form
// integrates and the time rates (RDot, PhiDot) needed to rebuild the
// Cartesian velocity exactly.
type PolarState struct {
	R, Phi float64
	U, DU  float64
	RDot   float64
	PhiDot float64
}

// GeodesicState is (u, du/dφ, φ) for [physics.SchwarzschildGeodesic].
func (p PolarState) GeodesicState() dynamo.State {
	return dynamo.State{p.U, p.DU, p.Phi}
}

// ToPolar is defined for r > 0. On purely radial motion DU is ±Inf.
func ToPolar(c CartesianState) PolarState {
	r := c.Radius()
	p := PolarState{
		R:      r,
		Phi:    math.Atan2(c.Y, c.X),
		U:      1 / r,
		RDot:   (c.X*c.VX + c.Y*c.VY) / r,
		PhiDot: (c.X*c.VY - c.Y*c.VX) / (r * r),
	}

	// du/dφ = (du/dt)/(dφ/dt) = -RDot/(r²·PhiDot)
	switch {
	case p.PhiDot != 0:
		p.DU = -p.RDot / (r * r * p.PhiDot)
	case p.RDot < 0:
		p.DU = math.Inf(1)
	case p.RDot > 0:
		p.DU = math.Inf(-1)
	}
	return p
}

func ToCartesian(p PolarState) CartesianState {
	r := p.R
	if r == 0 && p.U > 0 {
		r = 1 / p.U
	}
	sin, cos := math.Sincos(p.Phi)
	return CartesianState{
		X:  r * cos,
		Y:  r * sin,
		VX: p.RDot*cos - r*p.PhiDot*sin,
		VY: p.RDot*sin + r*p.PhiDot*cos,
	}
}

// ImpactParameter is |L|/|v| for the ray, zero when it is at rest.
func ImpactParameter(c CartesianState) float64 {
	speed := math.Hypot(c.VX, c.VY)
	if speed == 0 {
		return 0
	}
	return math.Abs(c.X*c.VY-c.Y*c.VX) / speed
}
