package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/lightpath/internal/dynamo"
)

// Job is one independent run. Each job must own its field, integrator and
// metrics; only read-only values may be shared between jobs.
type Job struct {
	Name       string
	Field      dynamo.Field
	Integrator dynamo.Integrator
	Initial    dynamo.State
	Config     Config
	Metrics    []Metric
	Observers  []Observer
}

// Ensemble runs jobs concurrently. Limit caps the number of runs in flight;
// zero or less starts one goroutine per job at once.
type Ensemble struct {
	Limit int
}

func NewEnsemble(limit int) *Ensemble {
	return &Ensemble{Limit: limit}
}

// RunAll returns results in job order. A failed job leaves a nil result
// and its error is joined into the returned error; the other jobs still
// complete.
func (e *Ensemble) RunAll(jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var sem chan struct{}
	if e.Limit > 0 {
		sem = make(chan struct{}, e.Limit)
	}

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			job := jobs[idx]
			sim := New(job.Field, job.Integrator)
			for _, m := range job.Metrics {
				sim.AddMetric(m)
			}
			for _, o := range job.Observers {
				sim.AddObserver(o)
			}

			res, err := sim.Run(job.Initial, job.Config)
			if err != nil {
				errs[idx] = fmt.Errorf("job %q: %w", job.Name, err)
				return
			}
			results[idx] = res
		}(i)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}
