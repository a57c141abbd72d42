package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// Check probes one component. Detail is printed on success.
type Check struct {
	Name string
	Run  func(ctx context.Context) (detail string, err error)
}

// Result is the outcome of one Check.
type Result struct {
	Name     string
	Detail   string
	Err      error
	Duration time.Duration
}

// OK reports whether the check passed.
func (r Result) OK() bool { return r.Err == nil }

// RunChecks runs all checks concurrently and returns results in input order.
// A failing check does not cancel the others.
func RunChecks(ctx context.Context, checks []Check) []Result {
	results := make([]Result, len(checks))
	g, ctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		g.Go(func() error {
			start := time.Now()
			detail, err := check.Run(ctx)
			results[i] = Result{Name: check.Name, Detail: detail, Err: err, Duration: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Report prints one line per result and returns the number of failures.
func Report(w io.Writer, results []Result) int {
	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "[ OK ] %-22s %s\n", r.Name, r.Detail)
			continue
		}
		failed++
		fmt.Fprintf(w, "[FAIL] %-22s %v\n", r.Name, r.Err)
	}
	return failed
}
