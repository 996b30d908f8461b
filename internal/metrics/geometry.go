package metrics

import (
	"math"

	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/sim"
	"github.com/soypat/geometry/md3"
)

type ClosestApproach struct {
	min float64
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return "closest_approach" }

func (c *ClosestApproach) Observe(s sim.Sample, x dynamo.State) {
	c.min = math.Min(c.min, s.R)
}

func (c *ClosestApproach) Value() float64 { return c.min }
func (c *ClosestApproach) Reset()         { c.min = math.Inf(1) }

// PathLength is the polyline length of the recorded samples.
type PathLength struct {
	prev   md3.Vec
	total  float64
	primed bool
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s sim.Sample, x dynamo.State) {
	pos := md3.Vec{X: s.X, Y: s.Y}
	if p.primed {
		p.total += md3.Norm(md3.Sub(pos, p.prev))
	}
	p.prev = pos
	p.primed = true
}

func (p *PathLength) Value() float64 { return p.total }

func (p *PathLength) Reset() {
	p.total = 0
	p.primed = false
}

// Winding is the unwrapped azimuth swept by the ray, in radians.
// Positive is counter-clockwise.
type Winding struct {
	prev   float64
	total  float64
	primed bool
}

func NewWinding() *Winding {
	return &Winding{}
}

func (w *Winding) Name() string { return "winding" }

func (w *Winding) Observe(s sim.Sample, x dynamo.State) {
	phi := math.Atan2(s.Y, s.X)
	if w.primed {
		w.total += wrapAngle(phi - w.prev)
	}
	w.prev = phi
	w.primed = true
}

func (w *Winding) Value() float64 { return w.total }

func (w *Winding) Reset() {
	w.total = 0
	w.primed = false
}

// Deflection is the signed angle from the initial to the final direction
// of travel, taken from the first and last pairs of samples.
type Deflection struct {
	first, last md3.Vec
	prev        md3.Vec
	samples     int
}

func NewDeflection() *Deflection {
	return &Deflection{}
}

func (d *Deflection) Name() string { return "deflection" }

func (d *Deflection) Observe(s sim.Sample, x dynamo.State) {
	pos := md3.Vec{X: s.X, Y: s.Y}
	if d.samples > 0 {
		d.last = md3.Sub(pos, d.prev)
		if d.samples == 1 {
			d.first = d.last
		}
	}
	d.prev = pos
	d.samples++
}

func (d *Deflection) Value() float64 {
	if d.samples < 3 {
		return 0
	}
	cross := d.first.X*d.last.Y - d.first.Y*d.last.X
	dot := d.first.X*d.last.X + d.first.Y*d.last.Y
	return math.Atan2(cross, dot)
}

func (d *Deflection) Reset() {
	d.samples = 0
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
