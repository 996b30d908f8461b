package analysis

import (
	"math"

	"github.com/san-kum/lightpath/internal/physics"
)

type PotentialPoint struct {
	R float64
	V float64
}

// PotentialCurve samples V_eff(r) at n evenly spaced radii in [rMin, rMax].
func PotentialCurve(mass, rMin, rMax float64, n int) []PotentialPoint {
	if n < 2 {
		n = 2
	}
	step := (rMax - rMin) / float64(n-1)
	pts := make([]PotentialPoint, n)
	for i := range pts {
		r := rMin + float64(i)*step
		pts[i] = PotentialPoint{R: r, V: physics.EffectivePotential(r, mass)}
	}
	return pts
}

// PotentialPeak returns the sampled maximum of V_eff on [rMin, rMax]. For
// rMin > 2M it lies at the photon sphere, 3M.
func PotentialPeak(mass, rMin, rMax float64, n int) PotentialPoint {
	best := PotentialPoint{V: math.Inf(-1)}
	for _, p := range PotentialCurve(mass, rMin, rMax, n) {
		if p.V > best.V {
			best = p
		}
	}
	return best
}
