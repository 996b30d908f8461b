package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/coords"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/sim"
)

// Experiment turns a config into a ready-to-run simulator.
type Experiment struct {
	cfg       *config.Config
	reg       *Registry
	log       *slog.Logger
	field     dynamo.Field
	x0        dynamo.State
	simCfg    sim.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config, reg *Registry, log *slog.Logger) *Experiment {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg, reg: reg, log: log}
}

func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	field, err := e.reg.GetField(e.cfg.Regime, e.cfg.FieldParams())
	if err != nil {
		return err
	}
	if err := applyParams(field, e.cfg.Params); err != nil {
		return err
	}
	integ, err := e.reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	x0, err := InitialState(e.cfg)
	if err != nil {
		return err
	}

	e.field = field
	e.x0 = x0
	e.simCfg = SimConfig(e.cfg)
	e.simulator = sim.New(field, integ)
	for _, m := range e.reg.DefaultMetrics(field) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run() (*sim.Result, error) {
	if e.simulator == nil {
		if err := e.Setup(); err != nil {
			return nil, err
		}
	}

	e.log.Debug("run starting",
		"regime", e.cfg.Regime,
		"integrator", e.cfg.Integrator,
		"step", e.simCfg.Step,
		"max_steps", e.simCfg.MaxSteps,
		"horizon", e.simCfg.Thresholds.Horizon,
	)

	res, err := e.simulator.Run(e.x0, e.simCfg)
	if err != nil {
		e.log.Error("run failed", "regime", e.cfg.Regime, "err", err)
		return nil, err
	}

	level := slog.LevelInfo
	if res.Termination == sim.MaxStepsReached || res.Termination == sim.NumericalDegenerate {
		level = slog.LevelWarn
	}
	e.log.Log(context.Background(), level, "run finished",
		"regime", e.cfg.Regime,
		"integrator", e.cfg.Integrator,
		"termination", res.Termination,
		"steps", res.Steps,
		"closest_approach", res.ClosestApproach,
	)
	return res, nil
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
func (e *Experiment) Field() dynamo.Field         { return e.field }
func (e *Experiment) InitialState() dynamo.State  { return e.x0.Clone() }
func (e *Experiment) SimConfig() sim.Config       { return e.simCfg }

// InitialState builds the launch state for the config's regime.
func InitialState(cfg *config.Config) (dynamo.State, error) {
	switch cfg.Regime {
	case config.RegimeGeodesic, config.RegimeKerrEquatorial:
		dir, err := cfg.Direction()
		if err != nil {
			return nil, err
		}
		if cfg.Regime == config.RegimeKerrEquatorial {
			return coords.KerrStart(cfg.Init.R0, cfg.Init.Phi0, cfg.Init.B, dir)
		}
		start, err := coords.GeodesicStart(cfg.Init.R0, cfg.Init.Phi0, cfg.Init.B, cfg.Mass, dir)
		if err != nil {
			return nil, err
		}
		return start.GeodesicState(), nil
	}
	return cfg.Cartesian().State(), nil
}

// SimConfig resolves the config's thresholds against the regime defaults.
func SimConfig(cfg *config.Config) sim.Config {
	th := sim.Thresholds{
		Horizon:      cfg.Thresholds.Horizon,
		PhotonSphere: cfg.Thresholds.PhotonSphere,
		Escape:       cfg.Thresholds.Escape,
		EscapeFactor: cfg.Thresholds.EscapeFactor,
	}
	switch {
	case th.Horizon == 0:
		th.Horizon = DefaultHorizon(cfg.Regime, cfg.FieldParams())
	case th.Horizon < 0:
		th.Horizon = 0
	}
	return sim.Config{
		Step:       cfg.Step,
		MaxSteps:   cfg.MaxSteps,
		Thresholds: th,
	}
}

func applyParams(field dynamo.Field, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	tunable, ok := field.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%T takes no params: %w", field, dynamo.ErrIncompatible)
	}
	var errs []error
	for _, name := range sortedKeys(params) {
		if err := tunable.SetParam(name, params[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
