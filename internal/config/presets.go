package config

import (
	"slices"
	"sort"
)

var cartesianLaunch = InitConfig{X: -10, Y: 1, VX: 1, VY: 0, Direction: "inbound"}

var Presets = map[string]*Config{
	"newton": {
		Regime: RegimeNewtonian, Integrator: "rk4", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch, Thresholds: ThresholdConfig{Horizon: 1.5},
	},
	"newton-double": {
		Regime: RegimeNewtonian, Integrator: "rk4", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch, Thresholds: ThresholdConfig{Horizon: 1.5},
		Params: map[string]float64{"coupling": 2},
	},
	"schwarzschild-euler": {
		Regime: RegimeSchwarzschild, Integrator: "euler", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch,
	},
	"schwarzschild-cromer": {
		Regime: RegimeSchwarzschild, Integrator: "euler_cromer", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch,
	},
	"geodesic-captured": {
		Regime: RegimeGeodesic, Integrator: "rk4", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init:       InitConfig{R0: 10, B: 3, Direction: "inbound"},
		Thresholds: ThresholdConfig{PhotonSphere: 3},
	},
	"geodesic-escaping": {
		Regime: RegimeGeodesic, Integrator: "rk4", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init: InitConfig{R0: 10, B: 6, Direction: "inbound"},
	},
	"geodesic-outbound": {
		Regime: RegimeGeodesic, Integrator: "rk4", Mass: 1, Step: 0.01, MaxSteps: 4000,
		Init:       InitConfig{R0: 10, B: 3, Direction: "outbound"},
		Thresholds: ThresholdConfig{PhotonSphere: 3},
	},
	"kerr-prograde": {
		Regime: RegimeKerr, Integrator: "rk4", Mass: 1, Spin: 0.5, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch,
	},
	"kerr-retrograde": {
		Regime: RegimeKerr, Integrator: "rk4", Mass: 1, Spin: -0.5, Step: 0.01, MaxSteps: 4000,
		Init: cartesianLaunch,
	},
	"kerr-equatorial-prograde": {
		Regime: RegimeKerrEquatorial, Integrator: "rk4", Mass: 1, Spin: 0.5, Step: 0.01, MaxSteps: 50000,
		Init: InitConfig{R0: 10, B: 4.5, Direction: "inbound"},
	},
	"kerr-equatorial-retrograde": {
		Regime: RegimeKerrEquatorial, Integrator: "rk4", Mass: 1, Spin: -0.5, Step: 0.01, MaxSteps: 50000,
		Init: InitConfig{R0: 10, B: 4.5, Direction: "inbound"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns preset names in sorted order. With a regime it lists
// only that regime's presets.
func ListPresets(regime string) []string {
	names := make([]string, 0, len(Presets))
	for name, cfg := range Presets {
		if regime == "" || cfg.Regime == regime {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return slices.Clip(names)
}
