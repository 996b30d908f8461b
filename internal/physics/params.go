package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// FieldParams describes the central body. Mass and spin are in geometric
// units (G = c = 1).
type FieldParams struct {
	Mass float64 `yaml:"mass" json:"mass"`
	Spin float64 `yaml:"spin" json:"spin"`
}

func (p FieldParams) Validate() error {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return fmt.Errorf("mass %v must be positive and finite: %w", p.Mass, dynamo.ErrParameterBounds)
	}
	if math.IsNaN(p.Spin) || math.Abs(p.Spin) > p.Mass {
		return fmt.Errorf("spin %v exceeds |a| <= M = %v: %w", p.Spin, p.Mass, dynamo.ErrParameterBounds)
	}
	return nil
}

// SchwarzschildRadius is the non-rotating event horizon 2M.
func (p FieldParams) SchwarzschildRadius() float64 {
	return 2 * p.Mass
}

// HorizonRadius is the outer horizon r+ = M + sqrt(M² - a²).
func (p FieldParams) HorizonRadius() float64 {
	d := p.Mass*p.Mass - p.Spin*p.Spin
	if d < 0 {
		d = 0
	}
	return p.Mass + math.Sqrt(d)
}

// PhotonSphereRadius is the unstable circular light orbit, 1.5 Rs = 3M.
func (p FieldParams) PhotonSphereRadius() float64 {
	return 1.5 * p.SchwarzschildRadius()
}

// ErgosphereRadius is the equatorial static limit.
func (p FieldParams) ErgosphereRadius() float64 {
	return 2 * p.Mass
}

// CriticalImpact is the Schwarzschild capture threshold √27 M.
func (p FieldParams) CriticalImpact() float64 {
	return math.Sqrt(27) * p.Mass
}

// EffectivePotential is the null-geodesic potential (1-2M/r)/r².
func EffectivePotential(r, mass float64) float64 {
	return (1 - 2*mass/r) / (r * r)
}

func (p *FieldParams) params() map[string]float64 {
	return map[string]float64{
		"mass": p.Mass,
		"spin": p.Spin,
	}
}

// set updates mass or spin, rejecting values that break Validate.
func (p *FieldParams) set(name string, value float64) (bool, error) {
	next := *p
	switch name {
	case "mass":
		next.Mass = value
	case "spin":
		next.Spin = value
	default:
		return false, nil
	}
	if err := next.Validate(); err != nil {
		return true, err
	}
	*p = next
	return true, nil
}
