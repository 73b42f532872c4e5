package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fsbench/fsbench/libs/cli"
	"github.com/fsbench/fsbench/libs/log"
)

var logger = log.MustNewDefaultLogger(log.LogFormatPlain, log.LogLevelInfo)

// RootCmd is the root command for the fsbench binary.
var RootCmd = &cobra.Command{
	Use:   "fsbench",
	Short: "Benchmarks for concurrent file writes overlapped with computation",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := log.NewDefaultLogger(
			viper.GetString(cli.LogFormatFlag),
			viper.GetString(cli.LogLevelFlag),
		)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}
