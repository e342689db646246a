package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	HomeKey     = "home"
	LogLevelKey = "log-level"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:          "vaultd",
		Short:        "Token vault node",
		SilenceUsage: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".vault")
	c.PersistentFlags().String(HomeKey, defaultHome, "directory to store files under")
	c.PersistentFlags().String(LogLevelKey, "info", `log level, for example "info" or "app:debug,*:error"`)

	c.AddCommand(
		initCommand(),
		startCommand(),
		versionCommand(),
	)
	return c
}

// logger returns the process logger configured with the log level flag.
func logger(c *cobra.Command) (log.Logger, error) {
	level, err := c.Flags().GetString(LogLevelKey)
	if err != nil {
		return nil, err
	}
	l := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "vault")
	return flags.ParseLogLevel(level, l, "info")
}
