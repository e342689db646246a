package main

import (
	"encoding/json"
	"io"

	"github.com/iov-one/vault/orm"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(raw, '\n'))
	return err
}

func getLockCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get-lock <lock id>",
		Short: "Print a lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			conf, err := settings(c)
			if err != nil {
				return err
			}
			id, err := orm.ParseID(args[0])
			if err != nil {
				return err
			}
			lock, err := cl.client(conf).Lock(id)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), lock)
		},
	}
}

func getVestingCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get-vesting <vesting id>",
		Short: "Print a vesting schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			conf, err := settings(c)
			if err != nil {
				return err
			}
			id, err := orm.ParseID(args[0])
			if err != nil {
				return err
			}
			v, err := cl.client(conf).Vesting(id)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), v)
		},
	}
}

func statsCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print vault totals",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			conf, err := settings(c)
			if err != nil {
				return err
			}
			s, err := cl.client(conf).Stats()
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), s)
		},
	}
}
