package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fsbench/fsbench/harness"
	"github.com/fsbench/fsbench/scenario"
)

const (
	groupWrite        = "write"
	groupComputeWrite = "compute-write"
	groupAll          = "all"
)

var (
	flagBytes      int
	flagDelay      time.Duration
	flagIterations int
	flagWarmup     int
	flagGroup      string
	flagStrategy   string
)

// RunCmd executes the benchmark scenarios and logs a timing report.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark scenarios",
	RunE:  runScenarios,
}

func init() {
	RunCmd.Flags().IntVar(&flagBytes, "bytes", scenario.DefaultFixtureBytes,
		"size of the random buffer written per iteration")
	RunCmd.Flags().DurationVar(&flagDelay, "delay", scenario.DefaultComputeDelay,
		"duration of the simulated computation")
	RunCmd.Flags().IntVar(&flagIterations, "iterations", harness.DefaultIterations,
		"measured iterations per scenario")
	RunCmd.Flags().IntVar(&flagWarmup, "warmup", harness.DefaultWarmup,
		"untimed warmup iterations per scenario")
	RunCmd.Flags().StringVar(&flagGroup, "group", groupAll,
		"scenario group to run (write|compute-write|all)")
	RunCmd.Flags().StringVar(&flagStrategy, "strategy", "",
		"restrict to a single strategy (sequential|task-spawn|combinator-join|worker-pool)")
}

func selectedStrategies() ([]scenario.Strategy, error) {
	if flagStrategy == "" {
		return scenario.Strategies(), nil
	}
	s, err := scenario.ParseStrategy(flagStrategy)
	if err != nil {
		return nil, err
	}
	return []scenario.Strategy{s}, nil
}

func runScenarios(cmd *cobra.Command, args []string) error {
	if flagGroup != groupWrite && flagGroup != groupComputeWrite && flagGroup != groupAll {
		return fmt.Errorf("unknown group %q", flagGroup)
	}

	strategies, err := selectedStrategies()
	if err != nil {
		return err
	}

	cfg := scenario.DefaultConfig()
	cfg.FixtureBytes = flagBytes
	cfg.ComputeDelay = flagDelay

	runner, err := scenario.NewRunner(cfg, scenario.WithLogger(logger))
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := harness.Options{Iterations: flagIterations, Warmup: flagWarmup}
	report := harness.NewReport()

	logger.Info("starting benchmark run",
		"run_id", report.ID,
		"bytes", cfg.FixtureBytes,
		"delay", cfg.ComputeDelay,
		"iterations", opts.Iterations,
	)

	if flagGroup == groupWrite || flagGroup == groupAll {
		for _, s := range strategies {
			s := s
			res, err := harness.Run("write/"+s.String(), func() error {
				return runner.Write(s)
			}, opts)
			if err != nil {
				return err
			}
			report.Add(res)
		}
	}

	if flagGroup == groupComputeWrite || flagGroup == groupAll {
		for _, s := range strategies {
			s := s
			res, err := harness.Run("compute-write/"+s.String(), func() error {
				return runner.WriteAndCompute(s)
			}, opts)
			if err != nil {
				return err
			}
			report.Add(res)
		}
	}

	for _, res := range report.Results {
		logger.Info("scenario complete",
			"name", res.Name,
			"min", res.Min,
			"median", res.Median,
			"mean", res.Mean,
			"max", res.Max,
			"iterations", res.Iterations,
		)
		fmt.Println(res.String())
	}
	logger.Info("benchmark run complete", "run_id", report.ID, "scenarios", len(report.Results))
	return nil
}
