// Package harness repeatedly invokes named scenarios and aggregates their
// wall-clock timings into simple distributions.
package harness

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultIterations is the number of measured invocations per scenario.
	DefaultIterations = 50

	// DefaultWarmup is the number of untimed invocations before measuring.
	DefaultWarmup = 5
)

// Options controls how a scenario is repeated.
type Options struct {
	Iterations int
	Warmup     int
}

// DefaultOptions returns the harness defaults.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		Warmup:     DefaultWarmup,
	}
}

func (o Options) normalized() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Warmup < 0 {
		o.Warmup = 0
	}
	return o
}

// Result is the aggregated timing distribution of one scenario.
type Result struct {
	Name       string
	Iterations int
	Total      time.Duration
	Min        time.Duration
	Max        time.Duration
	Mean       time.Duration
	Median     time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s .. %s .. %s (%d iters)",
		r.Name, r.Min, r.Median, r.Max, r.Iterations)
}

// Run invokes fn opts.Warmup times untimed, then opts.Iterations times
// timed, and returns the aggregated result. The first error aborts the run;
// no partial result is reported for a failed scenario.
func Run(name string, fn func() error, opts Options) (Result, error) {
	opts = opts.normalized()

	for i := 0; i < opts.Warmup; i++ {
		if err := fn(); err != nil {
			return Result{}, fmt.Errorf("%s: warmup iteration %d: %w", name, i, err)
		}
	}

	samples := make([]time.Duration, 0, opts.Iterations)
	for i := 0; i < opts.Iterations; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return Result{}, fmt.Errorf("%s: iteration %d: %w", name, i, err)
		}
		samples = append(samples, time.Since(start))
	}

	return summarize(name, samples), nil
}

func summarize(name string, samples []time.Duration) Result {
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, s := range sorted {
		total += s
	}

	n := len(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Result{
		Name:       name,
		Iterations: n,
		Total:      total,
		Min:        sorted[0],
		Max:        sorted[n-1],
		Mean:       total / time.Duration(n),
		Median:     median,
	}
}

// Report collects the results of one harness run under a unique run ID.
type Report struct {
	ID      uuid.UUID
	Results []Result
}

// NewReport returns an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{ID: uuid.New()}
}

// Add appends a result to the report.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}
