package config

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lightpath/internal/coords"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/physics"
)

const (
	RegimeNewtonian      = "newtonian"
	RegimeSchwarzschild  = "schwarzschild"
	RegimeGeodesic       = "geodesic"
	RegimeKerr           = "kerr"
	RegimeKerrEquatorial = "kerr_equatorial"
)

const (
	DefaultStep     = 0.01
	DefaultMaxSteps = 4000
	DefaultMass     = 1.0
	DefaultR0       = 10.0
	DefaultB        = 6.0
)

// Config describes one run. Cartesian regimes launch from Init.X..VY;
// the geodesic regimes launch from Init.R0, Phi0, B and Direction.
type Config struct {
	Regime     string             `yaml:"regime"`
	Integrator string             `yaml:"integrator"`
	Mass       float64            `yaml:"mass"`
	Spin       float64            `yaml:"spin"`
	Step       float64            `yaml:"step"`
	MaxSteps   int                `yaml:"max_steps"`
	Init       InitConfig         `yaml:"init"`
	Thresholds ThresholdConfig    `yaml:"thresholds"`
	Params     map[string]float64 `yaml:"params,omitempty"`
}

type InitConfig struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	VX        float64 `yaml:"vx"`
	VY        float64 `yaml:"vy"`
	R0        float64 `yaml:"r0"`
	Phi0      float64 `yaml:"phi0"`
	B         float64 `yaml:"b"`
	Direction string  `yaml:"direction"`
}

// ThresholdConfig holds absolute radii. A zero Horizon selects the regime
// default and a negative one disables capture. PhotonSphere is only
// tracked when positive. Escape and EscapeFactor follow sim.Thresholds.
type ThresholdConfig struct {
	Horizon      float64 `yaml:"horizon"`
	PhotonSphere float64 `yaml:"photon_sphere"`
	Escape       float64 `yaml:"escape"`
	EscapeFactor float64 `yaml:"escape_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Regime:     RegimeGeodesic,
		Integrator: "rk4",
		Mass:       DefaultMass,
		Step:       DefaultStep,
		MaxSteps:   DefaultMaxSteps,
		Init: InitConfig{
			X:         -DefaultR0,
			Y:         1,
			VX:        1,
			R0:        DefaultR0,
			B:         DefaultB,
			Direction: coords.Inbound.String(),
		},
		Thresholds: ThresholdConfig{EscapeFactor: 50},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) FieldParams() physics.FieldParams {
	return physics.FieldParams{Mass: c.Mass, Spin: c.Spin}
}

// Geodesic reports whether the regime launches from (r0, b) rather than a
// Cartesian state.
func (c *Config) Geodesic() bool {
	return c.Regime == RegimeGeodesic || c.Regime == RegimeKerrEquatorial
}

func (c *Config) Direction() (coords.Direction, error) {
	return coords.ParseDirection(c.Init.Direction)
}

func (c *Config) Cartesian() coords.CartesianState {
	return coords.CartesianState{X: c.Init.X, Y: c.Init.Y, VX: c.Init.VX, VY: c.Init.VY}
}

// Validate checks values that do not depend on the registry. Regime and
// integrator names are resolved by the experiment package.
func (c *Config) Validate() error {
	if err := c.FieldParams().Validate(); err != nil {
		return err
	}
	if !(c.Step > 0) {
		return fmt.Errorf("step must be positive, got %v: %w", c.Step, dynamo.ErrInvalidConfig)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d: %w", c.MaxSteps, dynamo.ErrInvalidConfig)
	}
	if _, err := c.Direction(); err != nil {
		return fmt.Errorf("%v: %w", err, dynamo.ErrInvalidConfig)
	}
	if !c.Geodesic() && c.Cartesian().Radius() == 0 {
		return fmt.Errorf("launch point at the origin: %w", dynamo.ErrInvalidInitialConditions)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	return &out
}
