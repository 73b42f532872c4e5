package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fsbench/fsbench/harness"
	"github.com/fsbench/fsbench/libs/log"
	"github.com/fsbench/fsbench/scenario"
)

func resetRunFlags() {
	flagBytes = scenario.DefaultFixtureBytes
	flagDelay = scenario.DefaultComputeDelay
	flagIterations = harness.DefaultIterations
	flagWarmup = harness.DefaultWarmup
	flagGroup = groupAll
	flagStrategy = ""
}

func TestRunScenariosSmoke(t *testing.T) {
	resetRunFlags()
	logger = log.NewNopLogger()

	flagBytes = 1024
	flagDelay = time.Millisecond
	flagIterations = 2
	flagWarmup = 0

	require.NoError(t, runScenarios(RunCmd, nil))
}

func TestRunScenariosSingleStrategy(t *testing.T) {
	resetRunFlags()
	logger = log.NewNopLogger()

	flagBytes = 1024
	flagDelay = time.Millisecond
	flagIterations = 2
	flagWarmup = 0
	flagGroup = groupWrite
	flagStrategy = "worker-pool"

	require.NoError(t, runScenarios(RunCmd, nil))
}

func TestRunScenariosRejectsUnknownGroup(t *testing.T) {
	resetRunFlags()
	flagGroup = "bogus"
	require.Error(t, runScenarios(RunCmd, nil))
}

func TestRunScenariosRejectsUnknownStrategy(t *testing.T) {
	resetRunFlags()
	flagStrategy = "bogus"
	require.Error(t, runScenarios(RunCmd, nil))
}
