package main

import (
	"os"

	"github.com/fsbench/fsbench/cmd/fsbench/commands"
	"github.com/fsbench/fsbench/libs/cli"
)

func main() {
	rootCmd := commands.RootCmd
	rootCmd.AddCommand(
		commands.RunCmd,
		commands.VersionCmd,
	)

	cmd := cli.PrepareBaseCmd(rootCmd, "FSBENCH")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
