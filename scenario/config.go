package scenario

import (
	"fmt"
	"runtime"
	"time"
)

const (
	// DefaultFixtureBytes is the size of the generated byte buffer written to
	// disk each iteration.
	DefaultFixtureBytes = 100000

	// DefaultComputeDelay is the duration of the simulated lengthy
	// computation.
	DefaultComputeDelay = 2 * time.Millisecond
)

// Config holds the constants fixed for one benchmark run. Tests vary them
// per case instead of mutating process-wide globals.
type Config struct {
	// FixtureBytes is the number of random bytes generated and written per
	// iteration. Zero is valid and produces a zero-length file.
	FixtureBytes int

	// ComputeDelay is how long the simulated computation blocks.
	ComputeDelay time.Duration

	// PoolSize is the number of workers backing StrategyWorkerPool. At least
	// two are required so the write and compute units can overlap.
	PoolSize int
}

// DefaultConfig returns the run constants used by the benchmark suite.
func DefaultConfig() Config {
	poolSize := runtime.NumCPU()
	if poolSize < 2 {
		poolSize = 2
	}

	return Config{
		FixtureBytes: DefaultFixtureBytes,
		ComputeDelay: DefaultComputeDelay,
		PoolSize:     poolSize,
	}
}

// ValidateBasic performs basic validation returning an error if any check
// fails.
func (cfg Config) ValidateBasic() error {
	if cfg.FixtureBytes < 0 {
		return fmt.Errorf("fixture bytes must not be negative, got %d", cfg.FixtureBytes)
	}
	if cfg.ComputeDelay < 0 {
		return fmt.Errorf("compute delay must not be negative, got %s", cfg.ComputeDelay)
	}
	if cfg.PoolSize < 2 {
		return fmt.Errorf("pool size must be at least 2, got %d", cfg.PoolSize)
	}
	return nil
}
