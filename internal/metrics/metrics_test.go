package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/lightpath/internal/coords"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/integrators"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
)

func feed(m sim.Metric, pts ...[2]float64) {
	m.Reset()
	for _, p := range pts {
		m.Observe(sim.Sample{X: p[0], Y: p[1], R: math.Hypot(p[0], p[1])}, nil)
	}
}

func TestPathLength(t *testing.T) {
	m := NewPathLength()
	feed(m, [2]float64{0, 0}, [2]float64{3, 4}, [2]float64{3, 8})

	if math.Abs(m.Value()-9) > 1e-12 {
		t.Errorf("expected 9, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected reset to clear length, got %f", m.Value())
	}
}

func TestClosestApproach(t *testing.T) {
	m := NewClosestApproach()
	feed(m, [2]float64{10, 0}, [2]float64{0, 3}, [2]float64{-5, 0})

	if m.Value() != 3 {
		t.Errorf("expected 3, got %f", m.Value())
	}
}

func TestWinding(t *testing.T) {
	m := NewWinding()
	pts := make([][2]float64, 0, 126)
	for k := 0; k <= 125; k++ {
		a := 0.1 * float64(k)
		pts = append(pts, [2]float64{math.Cos(a), math.Sin(a)})
	}
	feed(m, pts...)

	if math.Abs(m.Value()-12.5) > 1e-9 {
		t.Errorf("expected 12.5 rad, got %f", m.Value())
	}

	for i := range pts {
		pts[i][1] = -pts[i][1]
	}
	feed(m, pts...)
	if math.Abs(m.Value()+12.5) > 1e-9 {
		t.Errorf("expected -12.5 rad clockwise, got %f", m.Value())
	}
}

func TestDeflection(t *testing.T) {
	m := NewDeflection()
	feed(m, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{2, 0}, [2]float64{2, 1}, [2]float64{2, 2})

	if math.Abs(m.Value()-math.Pi/2) > 1e-12 {
		t.Errorf("expected π/2, got %f", m.Value())
	}

	feed(m, [2]float64{0, 0}, [2]float64{1, 0})
	if m.Value() != 0 {
		t.Errorf("expected 0 with too few samples, got %f", m.Value())
	}
}

func TestInvariantDrift(t *testing.T) {
	m := NewInvariantDrift(physics.NewOscillator())

	m.Observe(sim.Sample{}, dynamo.State{1, 0})
	m.Observe(sim.Sample{}, dynamo.State{1.1, 0})
	m.Observe(sim.Sample{}, dynamo.State{1, 0})

	if math.Abs(m.Value()-0.21) > 1e-12 {
		t.Errorf("expected max drift 0.21, got %f", m.Value())
	}
}

func TestForFieldOnGeodesic(t *testing.T) {
	field := physics.NewSchwarzschildGeodesic(physics.FieldParams{Mass: 1})
	start, err := coords.GeodesicStart(10, 0, 6, 1, coords.Inbound)
	if err != nil {
		t.Fatal(err)
	}

	s := sim.New(field, integrators.NewRK4())
	for _, m := range ForField(field) {
		s.AddMetric(m)
	}

	cfg := sim.DefaultConfig()
	cfg.Thresholds.Horizon = 2
	res, err := s.Run(start.GeodesicState(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := res.Metrics["invariant_drift"]; !ok {
		t.Fatal("geodesic should report invariant drift")
	}
	if d := res.Metrics["invariant_drift"]; d > 1e-6 {
		t.Errorf("RK4 invariant drift too large: %g", d)
	}
	if res.Metrics["closest_approach"] != res.ClosestApproach {
		t.Errorf("metric %f disagrees with result %f", res.Metrics["closest_approach"], res.ClosestApproach)
	}

	last := res.Samples[len(res.Samples)-1]
	swept := 0.01 * float64(len(res.Samples)-1)
	if math.Abs(res.Metrics["winding"]-swept) > 1e-6 {
		t.Errorf("winding %f should match swept azimuth %f (last sample %+v)", res.Metrics["winding"], swept, last)
	}

	if len(ForField(physics.NewKerr(physics.FieldParams{Mass: 1}))) != 4 {
		t.Error("Kerr has no invariant, expected four metrics")
	}
}
