package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/objstore/core/logger"
)

// Check probes one dependency, such as pg.Healthcheck(pool).
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Result is the outcome of one Check.
type Result struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Error   string        `json:"error,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Report is the outcome of a readiness run.
type Report struct {
	Ready   bool     `json:"ready"`
	Results []Result `json:"results"`
}

// ErrNotReady is returned by Report.Err when any check failed.
var ErrNotReady = errors.New("dependencies not ready")

// Readiness runs every check in order and reports each outcome.
// Failures are logged; a run with no checks is ready.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) Report {
	report := Report{Ready: true, Results: make([]Result, 0, len(checks))}
	for _, c := range checks {
		start := time.Now()
		err := c.Probe(ctx)
		r := Result{Name: c.Name, Healthy: err == nil, Elapsed: time.Since(start)}
		if err != nil {
			r.Error = err.Error()
			report.Ready = false
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component(c.Name),
				logger.Error(err),
			)
		}
		report.Results = append(report.Results, r)
	}
	return report
}

// Err returns ErrNotReady naming the failed checks, or nil.
func (r Report) Err() error {
	if r.Ready {
		return nil
	}
	var errs []error
	for _, res := range r.Results {
		if !res.Healthy {
			errs = append(errs, fmt.Errorf("%s: %s", res.Name, res.Error))
		}
	}
	return fmt.Errorf("%w: %w", ErrNotReady, errors.Join(errs...))
}
