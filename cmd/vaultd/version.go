package main

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/spf13/cobra"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), vault.Version())
		},
	}
}
