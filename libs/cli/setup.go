package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	LogLevelFlag  = "log-level"
	LogFormatFlag = "log-format"
)

// PrepareBaseCmd wires the common flags and viper/env binding into a root
// command and returns it.
func PrepareBaseCmd(cmd *cobra.Command, envPrefix string) *cobra.Command {
	cobra.OnInitialize(func() { InitEnv(envPrefix) })
	cmd.PersistentFlags().String(LogLevelFlag, "info", "log level")
	cmd.PersistentFlags().String(LogFormatFlag, "plain", "log format (plain|json)")
	cmd.PersistentPreRunE = concatCobraCmdFuncs(bindFlagsToViper, cmd.PersistentPreRunE)
	return cmd
}

// InitEnv sets to use ENV variables if set.
func InitEnv(prefix string) {
	// This copies all variables like FSBENCHROOT to FSBENCH_ROOT,
	// so we can support both formats for the user
	prefix = strings.ToUpper(prefix)
	ps := prefix + "_"
	for _, e := range os.Environ() {
		kv := strings.SplitN(e, "=", 2)
		if len(kv) == 2 {
			k, v := kv[0], kv[1]
			if strings.HasPrefix(k, prefix) && !strings.HasPrefix(k, ps) {
				k2 := strings.Replace(k, prefix, ps, 1)
				os.Setenv(k2, v)
			}
		}
	}

	// env variables with FSBENCH prefix (eg. FSBENCH_LOG_LEVEL)
	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

type cobraCmdFunc func(cmd *cobra.Command, args []string) error

// Returns a single function that calls each argument function in sequence
// RunE, PreRunE, PersistentPreRunE, etc. all have this same signature
func concatCobraCmdFuncs(fs ...cobraCmdFunc) cobraCmdFunc {
	return func(cmd *cobra.Command, args []string) error {
		for _, f := range fs {
			if f != nil {
				if err := f(cmd, args); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// bindFlagsToViper binds all flags, including persistent flags from the
// parent, into viper so env overrides apply uniformly.
func bindFlagsToViper(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}
