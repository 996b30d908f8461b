package metrics

import (
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/sim"
)

// InvariantDrift tracks the largest relative departure of a conserved
// quantity from its value at the first sample. When the initial value is
// zero the drift is absolute.
type InvariantDrift struct {
	inv      dynamo.Invariant
	initial  float64
	maxDrift float64
	samples  int
}

func NewInvariantDrift(inv dynamo.Invariant) *InvariantDrift {
	return &InvariantDrift{inv: inv}
}

func (d *InvariantDrift) Name() string { return "invariant_drift" }

func (d *InvariantDrift) Observe(s sim.Sample, x dynamo.State) {
	q := d.inv.Invariant(x)
	if d.samples == 0 {
		d.initial = q
	}
	d.samples++

	drift := math.Abs(q - d.initial)
	if d.initial != 0 {
		drift /= math.Abs(d.initial)
	}
	d.maxDrift = math.Max(d.maxDrift, drift)
}

func (d *InvariantDrift) Value() float64 { return d.maxDrift }

func (d *InvariantDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// ForField returns the standard metric set for a field, adding
// InvariantDrift when the field has a conserved quantity.
func ForField(field dynamo.Field) []sim.Metric {
	ms := []sim.Metric{
		NewClosestApproach(),
		NewPathLength(),
		NewWinding(),
		NewDeflection(),
	}
	if inv, ok := field.(dynamo.Invariant); ok {
		ms = append(ms, NewInvariantDrift(inv))
	}
	return ms
}
