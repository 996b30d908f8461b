package experiment

import (
	"log/slog"

	"github.com/san-kum/lightpath/internal/analysis"
	"github.com/san-kum/lightpath/internal/config"
	"github.com/san-kum/lightpath/internal/dynamo"
)

// Scan repeats the config's launch for n values of one field parameter on
// [lo, hi]. Thresholds stay those resolved for the config as given.
func Scan(cfg *config.Config, reg *Registry, log *slog.Logger, param string, lo, hi float64, n int) ([]analysis.ParamPoint, error) {
	exp := New(cfg, reg, log)
	if err := exp.Setup(); err != nil {
		return nil, err
	}

	// Setup has already accepted these inputs.
	newField := func() dynamo.Field {
		f, _ := reg.GetField(cfg.Regime, cfg.FieldParams())
		_ = applyParams(f, cfg.Params)
		return f
	}
	newInteg := func() dynamo.Integrator {
		integ, _ := reg.GetIntegrator(cfg.Integrator)
		return integ
	}

	exp.log.Debug("scanning parameter", "regime", cfg.Regime, "param", param, "lo", lo, "hi", hi, "n", n)
	return analysis.ParamSweep(newField, newInteg, exp.InitialState(), exp.SimConfig(), param, lo, hi, n)
}
