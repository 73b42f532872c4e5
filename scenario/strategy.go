package scenario

import "fmt"

// Strategy selects how the write and compute units of a scenario are
// composed. All concurrent strategies share the same contract: both units
// have fully completed before the operation returns, and no ordering between
// them may be assumed.
type Strategy int

const (
	// StrategySequential runs the units one after the other on the calling
	// goroutine. This is the blocking baseline.
	StrategySequential Strategy = iota

	// StrategyTaskSpawn hands each unit to the scheduler as an independently
	// scheduled task and waits on the handles in sequence. Waiting on the
	// first handle does not stall the second task.
	StrategyTaskSpawn

	// StrategyCombinatorJoin drives both units through a single structured
	// join, without separate per-task handles.
	StrategyCombinatorJoin

	// StrategyWorkerPool submits both units to a fixed pool of reusable
	// workers and joins them through the pool's own barrier. Semantically
	// identical to StrategyCombinatorJoin; it exists to compare scheduler
	// implementations, not to change behavior.
	StrategyWorkerPool
)

const (
	strategyNameSequential     = "sequential"
	strategyNameTaskSpawn      = "task-spawn"
	strategyNameCombinatorJoin = "combinator-join"
	strategyNameWorkerPool     = "worker-pool"
)

// Strategies returns all supported strategies, blocking baseline first.
func Strategies() []Strategy {
	return []Strategy{
		StrategySequential,
		StrategyTaskSpawn,
		StrategyCombinatorJoin,
		StrategyWorkerPool,
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return strategyNameSequential
	case StrategyTaskSpawn:
		return strategyNameTaskSpawn
	case StrategyCombinatorJoin:
		return strategyNameCombinatorJoin
	case StrategyWorkerPool:
		return strategyNameWorkerPool
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a flag value into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case strategyNameSequential:
		return StrategySequential, nil
	case strategyNameTaskSpawn:
		return StrategyTaskSpawn, nil
	case strategyNameCombinatorJoin:
		return StrategyCombinatorJoin, nil
	case strategyNameWorkerPool:
		return StrategyWorkerPool, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}
