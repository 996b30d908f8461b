package experiment

import (
	"bytes"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	regimes := reg.ListRegimes()
	if len(regimes) != 5 || !sort.StringsAreSorted(regimes) {
		t.Errorf("unexpected regimes %v", regimes)
	}
	if got := reg.ListIntegrators(); len(got) != 4 {
		t.Errorf("unexpected integrators %v", got)
	}

	if _, err := reg.GetField("wormhole", physics.FieldParams{Mass: 1}); err == nil {
		t.Error("expected error for unknown regime")
	}
	if _, err := reg.GetField(config.RegimeKerr, physics.FieldParams{Mass: 1, Spin: 3}); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected bounds error, got %v", err)
	}
	if _, err := reg.GetIntegrator("midpoint"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	a, _ := reg.GetIntegrator("rk4")
	b, _ := reg.GetIntegrator("rk4")
	if a == b {
		t.Error("integrators with scratch buffers must not be shared")
	}
}

func TestDefaultHorizon(t *testing.T) {
	p := physics.FieldParams{Mass: 1}
	tests := []struct {
		regime string
		want   float64
	}{
		{config.RegimeNewtonian, 1.5},
		{config.RegimeGeodesic, 2},
		{config.RegimeSchwarzschild, 2.1},
		{config.RegimeKerr, 2.1},
		{config.RegimeKerrEquatorial, 2.1},
	}
	for _, tt := range tests {
		if got := DefaultHorizon(tt.regime, p); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.regime, got, tt.want)
		}
	}
}

func TestPresetOutcomes(t *testing.T) {
	tests := []struct {
		preset string
		want   sim.Termination
	}{
		{"newton", sim.HorizonCapture},
		{"schwarzschild-euler", sim.HorizonCapture},
		{"geodesic-captured", sim.PhotonSphereCrossed},
		{"geodesic-escaping", sim.Escaped},
		{"geodesic-outbound", sim.Escaped},
		{"kerr-prograde", sim.HorizonCapture},
		{"kerr-equatorial-retrograde", sim.HorizonCapture},
	}

	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			res, err := New(config.GetPreset(tt.preset), reg, nil).Run()
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if res.Termination != tt.want {
				t.Errorf("got %v, want %v", res.Termination, tt.want)
			}
			if _, ok := res.Metrics["closest_approach"]; !ok {
				t.Error("default metrics missing")
			}
		})
	}
}

func TestParamsApplied(t *testing.T) {
	exp := New(config.GetPreset("newton-double"), NewRegistry(), nil)
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	params := exp.Field().(dynamo.Configurable).GetParams()
	if params["coupling"] != 2 {
		t.Errorf("expected coupling 2, got %v", params["coupling"])
	}

	cfg := config.GetPreset("newton")
	cfg.Params = map[string]float64{"warp": 9}
	if err := New(cfg, NewRegistry(), nil).Setup(); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestSetupErrors(t *testing.T) {
	cfg := config.GetPreset("geodesic-escaping")
	cfg.Init.B = 20
	if err := New(cfg, NewRegistry(), nil).Setup(); !errors.Is(err, dynamo.ErrInvalidInitialConditions) {
		t.Errorf("expected invalid initial conditions, got %v", err)
	}

	cfg = config.GetPreset("geodesic-escaping")
	cfg.Regime = "flat"
	if err := New(cfg, NewRegistry(), nil).Setup(); err == nil {
		t.Error("expected unknown regime error")
	}

	cfg = config.GetPreset("geodesic-escaping")
	cfg.Integrator = "leapfrog"
	if _, err := New(cfg, NewRegistry(), nil).Run(); !errors.Is(err, dynamo.ErrIncompatible) {
		t.Errorf("leapfrog cannot step the geodesic form, got %v", err)
	}
}

func TestSimConfigThresholds(t *testing.T) {
	cfg := config.GetPreset("geodesic-captured")
	sc := SimConfig(cfg)
	if sc.Thresholds.Horizon != 2 || sc.Thresholds.PhotonSphere != 3 {
		t.Errorf("unexpected thresholds %+v", sc.Thresholds)
	}

	cfg.Thresholds.Horizon = -1
	if SimConfig(cfg).Thresholds.Horizon != 0 {
		t.Error("negative horizon should disable capture")
	}
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := New(config.GetPreset("geodesic-captured"), NewRegistry(), log).Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"run starting", "run finished", "termination=photon_sphere_crossed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestCompare(t *testing.T) {
	names := []string{"euler", "rk4", "leapfrog", "euler_cromer"}
	out, err := Compare(config.GetPreset("schwarzschild-euler"), NewRegistry(), nil, names)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if len(out) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(out))
	}
	for i, c := range out {
		if c.Integrator != names[i] {
			t.Errorf("result %d out of order: %s", i, c.Integrator)
		}
		if c.Result.Termination != sim.HorizonCapture {
			t.Errorf("%s: %v", c.Integrator, c.Result.Termination)
		}
	}
	if out[0].Result.Steps == out[1].Result.Steps && out[0].Result.Final == out[1].Result.Final {
		t.Error("Euler and RK4 should not produce identical paths")
	}

	if _, err := Compare(config.GetPreset("geodesic-escaping"), NewRegistry(), nil, []string{"rk4", "leapfrog"}); !errors.Is(err, dynamo.ErrIncompatible) {
		t.Errorf("expected incompatible integrator error, got %v", err)
	}
}

func TestScan(t *testing.T) {
	points, err := Scan(config.GetPreset("newton"), NewRegistry(), nil, "coupling", 1, 2, 3)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points", len(points))
	}
	for i, want := range []float64{1, 1.5, 2} {
		if points[i].Param != want {
			t.Errorf("point %d param = %v, want %v", i, points[i].Param, want)
		}
		if points[i].Steps == 0 {
			t.Errorf("point %d did not run", i)
		}
	}

	if _, err := Scan(config.GetPreset("newton"), NewRegistry(), nil, "warp", 1, 2, 3); err == nil {
		t.Error("expected error for unknown param")
	}
}
