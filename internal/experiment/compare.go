package experiment

import (
	"log/slog"

	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/sim"
)

type Comparison struct {
	Integrator string
	Result     *sim.Result
}

// Compare runs the same config once per integrator, concurrently. Every run
// gets its own field, integrator and metrics.
func Compare(cfg *config.Config, reg *Registry, log *slog.Logger, names []string) ([]Comparison, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	jobs := make([]sim.Job, 0, len(names))
	for _, name := range names {
		c := cfg.Clone()
		c.Integrator = name

		exp := New(c, reg, log)
		if err := exp.Setup(); err != nil {
			return nil, err
		}
		integ, err := reg.GetIntegrator(name)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, sim.Job{
			Name:       name,
			Field:      exp.Field(),
			Integrator: integ,
			Initial:    exp.InitialState(),
			Config:     exp.SimConfig(),
			Metrics:    reg.DefaultMetrics(exp.Field()),
		})
	}

	log.Debug("comparing integrators", "regime", cfg.Regime, "integrators", names)
	results, err := sim.NewEnsemble(0).RunAll(jobs)
	if err != nil {
		return nil, err
	}

	out := make([]Comparison, len(names))
	for i, name := range names {
		out[i] = Comparison{Integrator: name, Result: results[i]}
		log.Info("integrator finished",
			"integrator", name,
			"termination", results[i].Termination,
			"steps", results[i].Steps,
		)
	}
	return out, nil
}
