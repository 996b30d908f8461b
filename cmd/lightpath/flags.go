package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/lightpath/internal/config"
)

type floatFlag struct {
	name, usage string
	field       func(*config.Config) *float64
}

var floatFlags = []floatFlag{
	{"mass", "central mass M", func(c *config.Config) *float64 { return &c.Mass }},
	{"spin", "spin parameter a", func(c *config.Config) *float64 { return &c.Spin }},
	{"step", "step size (dt, or dphi for geodesic)", func(c *config.Config) *float64 { return &c.Step }},
	{"x", "initial x (cartesian regimes)", func(c *config.Config) *float64 { return &c.Init.X }},
	{"y", "initial y (cartesian regimes)", func(c *config.Config) *float64 { return &c.Init.Y }},
	{"vx", "initial vx (cartesian regimes)", func(c *config.Config) *float64 { return &c.Init.VX }},
	{"vy", "initial vy (cartesian regimes)", func(c *config.Config) *float64 { return &c.Init.VY }},
	{"r0", "initial radius (geodesic regimes)", func(c *config.Config) *float64 { return &c.Init.R0 }},
	{"phi0", "initial azimuth (geodesic regimes)", func(c *config.Config) *float64 { return &c.Init.Phi0 }},
	{"b", "impact parameter (geodesic regimes)", func(c *config.Config) *float64 { return &c.Init.B }},
	{"horizon", "capture radius (0 = regime default, <0 disables)", func(c *config.Config) *float64 { return &c.Thresholds.Horizon }},
	{"photon-sphere", "photon sphere crossing radius (0 disables)", func(c *config.Config) *float64 { return &c.Thresholds.PhotonSphere }},
	{"escape", "absolute escape radius", func(c *config.Config) *float64 { return &c.Thresholds.Escape }},
	{"escape-factor", "escape radius as a multiple of r0", func(c *config.Config) *float64 { return &c.Thresholds.EscapeFactor }},
}

// runFlags selects a run: defaults, then a preset, then a config file,
// then any flag set explicitly on the command line.
type runFlags struct {
	preset     string
	configFile string
	regime     string
	integrator string
	direction  string
	maxSteps   int
	params     map[string]string
	floats     map[string]*float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.preset, "preset", "", "start from a named preset")
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.regime, "regime", "", "field regime")
	fs.StringVar(&f.integrator, "integrator", "", "integrator")
	fs.StringVar(&f.direction, "direction", "", "launch direction: in or out")
	fs.IntVar(&f.maxSteps, "max-steps", 0, "step budget")
	fs.StringToStringVar(&f.params, "set", nil, "field parameter overrides, e.g. --set coupling=2")

	f.floats = make(map[string]*float64, len(floatFlags))
	for _, ff := range floatFlags {
		f.floats[ff.name] = fs.Float64(ff.name, 0, ff.usage)
	}
}

func (f *runFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.preset != "" {
		cfg = config.GetPreset(f.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", f.preset, strings.Join(config.ListPresets(""), ", "))
		}
	}
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("regime") {
		cfg.Regime = f.regime
	}
	if fs.Changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if fs.Changed("direction") {
		cfg.Init.Direction = f.direction
	}
	if fs.Changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}
	for _, ff := range floatFlags {
		if fs.Changed(ff.name) {
			*ff.field(cfg) = *f.floats[ff.name]
		}
	}
	for name, raw := range f.params {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s=%s: %w", name, raw, err)
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		cfg.Params[name] = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
