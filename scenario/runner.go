// Package scenario implements the timed units of work of the benchmark
// suite: writing a freshly generated random buffer to a scratch file,
// optionally overlapped with a simulated computation, under several
// concurrency strategies.
package scenario

import (
	"fmt"
	"time"

	"github.com/creachadair/taskgroup"
	"golang.org/x/sync/errgroup"

	"github.com/fsbench/fsbench/libs/log"
	"github.com/fsbench/fsbench/libs/pool"
	"github.com/fsbench/fsbench/libs/rand"
	"github.com/fsbench/fsbench/libs/tempfile"
)

const fixtureFileName = "fixture"

// Runner executes scenarios. Each invocation is stateless request/response:
// it generates its own fixture, writes into its own scratch directory and
// removes it before returning, so invocations never interfere with each
// other and may run back to back or in parallel.
type Runner struct {
	cfg    Config
	logger log.Logger
	pool   *pool.Pool

	// onWrite, when set, observes the written file and the fixture bytes
	// after the write completes but before the scratch dir is removed.
	onWrite func(path string, fixture []byte)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the Runner's logger. Defaults to a nop logger so that
// logging cost never leaks into timed iterations unless asked for.
func WithLogger(logger log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithOnWrite registers a hook observing each completed write while the
// written file still exists. The hook runs inside the write unit and is
// therefore part of the measured time.
func WithOnWrite(fn func(path string, fixture []byte)) Option {
	return func(r *Runner) { r.onWrite = fn }
}

// NewRunner validates cfg and constructs a Runner. The worker pool backing
// StrategyWorkerPool is built here, once, the same way a second runtime
// would be constructed outside the bench loop. Callers must Close the
// Runner when done.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid scenario config: %w", err)
	}

	r := &Runner{
		cfg:    cfg,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.pool = pool.New(cfg.PoolSize)
	r.logger.Debug("scenario runner created",
		"fixture_bytes", cfg.FixtureBytes,
		"compute_delay", cfg.ComputeDelay,
		"pool_size", cfg.PoolSize,
	)
	return r, nil
}

// Close shuts down the worker pool.
func (r *Runner) Close() {
	r.pool.Close()
}

// writeFixture is the write unit: it generates a fresh fixture, creates a
// fresh scratch directory, writes the fixture in full and removes the
// directory again. Fixture generation is deliberately inside the unit, not
// hoisted out, since regeneration cost is part of the scenario and reusing a
// buffer would invite filesystem cache bias.
func (r *Runner) writeFixture() error {
	dir, err := tempfile.NewScratchDir("fsbench")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer dir.Remove()

	fixture := rand.Bytes(r.cfg.FixtureBytes)
	path := dir.Path(fixtureFileName)
	if err := tempfile.WriteFile(path, fixture, 0o600); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	if r.onWrite != nil {
		r.onWrite(path, fixture)
	}
	return nil
}

// compute is the compute unit: it blocks for the configured delay. It cannot
// fail.
func (r *Runner) compute() {
	time.Sleep(r.cfg.ComputeDelay)
}

// Write performs the write unit alone under the given strategy's scheduling,
// measuring write latency plus the strategy's scheduling overhead.
func (r *Runner) Write(strategy Strategy) error {
	switch strategy {
	case StrategySequential:
		return r.writeFixture()

	case StrategyTaskSpawn:
		g := taskgroup.New(nil)
		g.Go(r.writeFixture)
		return g.Wait()

	case StrategyCombinatorJoin:
		var g errgroup.Group
		g.Go(r.writeFixture)
		return g.Wait()

	case StrategyWorkerPool:
		return r.pool.Join(r.pool.Submit(r.writeFixture))

	default:
		return fmt.Errorf("unknown strategy %v", strategy)
	}
}

// WriteAndCompute runs the write unit and the compute unit under the given
// strategy and returns once both have fully completed. With
// StrategySequential the units run strictly one after the other; with every
// other strategy they run concurrently and their completion order is
// unspecified. Callers must not assume either unit finishes first.
func (r *Runner) WriteAndCompute(strategy Strategy) error {
	computeUnit := func() error {
		r.compute()
		return nil
	}

	switch strategy {
	case StrategySequential:
		if err := r.writeFixture(); err != nil {
			return err
		}
		r.compute()
		return nil

	case StrategyTaskSpawn:
		// One single-task group per unit, so each has its own handle. The
		// compute task keeps running while the write handle is waited on.
		write := taskgroup.New(nil)
		compute := taskgroup.New(nil)
		write.Go(r.writeFixture)
		compute.Go(computeUnit)

		err := write.Wait()
		if cerr := compute.Wait(); err == nil {
			err = cerr
		}
		return err

	case StrategyCombinatorJoin:
		var g errgroup.Group
		g.Go(r.writeFixture)
		g.Go(computeUnit)
		return g.Wait()

	case StrategyWorkerPool:
		writeHandle := r.pool.Submit(r.writeFixture)
		computeHandle := r.pool.Submit(computeUnit)
		return r.pool.Join(writeHandle, computeHandle)

	default:
		return fmt.Errorf("unknown strategy %v", strategy)
	}
}
