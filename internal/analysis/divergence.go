package analysis

import (
	"math"

	"github.com/san-kum/lightpath/internal/sim"
)

// Separation summarises how two recorded paths of the same launch drift
// apart, e.g. Euler against RK4.
type Separation struct {
	// Index of the first sample pair further apart than the tolerance,
	// or -1 if the common prefix never separates.
	Index int
	// Max distance over the common prefix.
	Max    float64
	Common int
}

// Divergence compares a and b sample by sample over their common length.
func Divergence(a, b *sim.Result, tol float64) Separation {
	n := min(len(a.Samples), len(b.Samples))
	sep := Separation{Index: -1, Common: n}
	for i := 0; i < n; i++ {
		d := math.Hypot(a.Samples[i].X-b.Samples[i].X, a.Samples[i].Y-b.Samples[i].Y)
		if d > sep.Max {
			sep.Max = d
		}
		if sep.Index < 0 && d > tol {
			sep.Index = i
		}
	}
	return sep
}
