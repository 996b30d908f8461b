package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lightpath/internal/coords"
	"github.com/san-kum/lightpath/internal/dynamo"
	"github.com/san-kum/lightpath/internal/integrators"
	"github.com/san-kum/lightpath/internal/physics"
	"github.com/san-kum/lightpath/internal/sim"
)

// SweepOptions describes the inbound geodesic rays used by ImpactSweep
// and CriticalImpact.
type SweepOptions struct {
	Mass     float64
	R0       float64
	Step     float64
	MaxSteps int
	// Horizon overrides the capture radius; zero means 2M.
	Horizon float64
}

func DefaultSweepOptions() SweepOptions {
	return SweepOptions{Mass: 1, R0: 10, Step: 0.01, MaxSteps: 4000}
}

type ImpactOutcome struct {
	B               float64
	Termination     sim.Termination
	ClosestApproach float64
	Steps           int
	Err             error
}

func (o SweepOptions) trace(b float64) ImpactOutcome {
	out := ImpactOutcome{B: b}
	params := physics.FieldParams{Mass: o.Mass}
	if err := params.Validate(); err != nil {
		out.Err = err
		return out
	}
	start, err := coords.GeodesicStart(o.R0, 0, b, o.Mass, coords.Inbound)
	if err != nil {
		out.Err = err
		return out
	}

	horizon := o.Horizon
	if horizon <= 0 {
		horizon = params.SchwarzschildRadius()
	}
	cfg := sim.Config{
		Step:       o.Step,
		MaxSteps:   o.MaxSteps,
		Thresholds: sim.Thresholds{Horizon: horizon},
	}

	res, err := sim.New(physics.NewSchwarzschildGeodesic(params), integrators.NewRK4()).Run(start.GeodesicState(), cfg)
	if err != nil {
		out.Err = err
		return out
	}
	out.Termination = res.Termination
	out.ClosestApproach = res.ClosestApproach
	out.Steps = res.Steps
	return out
}

// ImpactSweep runs one inbound geodesic per impact parameter, in parallel.
// Outcomes are returned in the order of bs; per-ray failures are kept in
// ImpactOutcome.Err.
func ImpactSweep(opts SweepOptions, bs []float64) []ImpactOutcome {
	out := make([]ImpactOutcome, len(bs))
	dynamo.ParallelFor(len(bs), 1, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = opts.trace(bs[i])
		}
	})
	return out
}

// LinearImpacts returns n impact parameters evenly spaced on [lo, hi].
func LinearImpacts(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	bs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range bs {
		bs[i] = lo + float64(i)*step
	}
	return bs
}

// CriticalImpact bisects [lo, hi] for the impact parameter separating
// capture from escape. lo must be captured and hi must escape.
func CriticalImpact(opts SweepOptions, lo, hi, tol float64) (float64, error) {
	if !(lo < hi) || !(tol > 0) {
		return 0, fmt.Errorf("bracket [%v, %v] with tolerance %v: %w", lo, hi, tol, dynamo.ErrInvalidConfig)
	}

	fate := func(b float64) (bool, error) {
		o := opts.trace(b)
		if o.Err != nil {
			return false, o.Err
		}
		switch o.Termination {
		case sim.HorizonCapture, sim.PhotonSphereCrossed:
			return true, nil
		case sim.Escaped:
			return false, nil
		}
		return false, fmt.Errorf("b = %v ended with %v", b, o.Termination)
	}

	if captured, err := fate(lo); err != nil {
		return 0, err
	} else if !captured {
		return 0, fmt.Errorf("lower bracket b = %v escapes", lo)
	}
	if captured, err := fate(hi); err != nil {
		return 0, err
	} else if captured {
		return 0, fmt.Errorf("upper bracket b = %v is captured", hi)
	}

	for hi-lo > tol {
		mid := 0.5 * (lo + hi)
		captured, err := fate(mid)
		if err != nil {
			return 0, err
		}
		if captured {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// ParamPoint is the outcome of one run in a ParamSweep.
type ParamPoint struct {
	Param           float64
	Termination     sim.Termination
	ClosestApproach float64
	FinalPhi        float64
	Steps           int
}

// ParamSweep runs the same launch for n values of one Configurable field
// parameter on [lo, hi]. newField and newInteg are called once per point.
func ParamSweep(
	newField func() dynamo.Field,
	newInteg func() dynamo.Integrator,
	x0 dynamo.State,
	cfg sim.Config,
	param string,
	lo, hi float64,
	n int,
) ([]ParamPoint, error) {
	if n < 2 {
		n = 2
	}
	step := (hi - lo) / float64(n-1)

	points := make([]ParamPoint, n)
	errs := make([]error, n)

	dynamo.ParallelFor(n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			value := lo + float64(i)*step
			field := newField()
			tunable, ok := field.(dynamo.Configurable)
			if !ok {
				errs[i] = fmt.Errorf("%T is not configurable: %w", field, dynamo.ErrIncompatible)
				continue
			}
			if err := tunable.SetParam(param, value); err != nil {
				errs[i] = fmt.Errorf("%s = %v: %w", param, value, err)
				continue
			}

			res, err := sim.New(field, newInteg()).Run(x0, cfg)
			if err != nil {
				errs[i] = err
				continue
			}
			points[i] = ParamPoint{
				Param:           value,
				Termination:     res.Termination,
				ClosestApproach: res.ClosestApproach,
				FinalPhi:        math.Atan2(res.Final.Y, res.Final.X),
				Steps:           res.Steps,
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}
