package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/client"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x/admin"
	"github.com/iov-one/vault/x/emergency"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/upgrade"
	"github.com/iov-one/vault/x/vesting"
	"github.com/spf13/cobra"
)

const (
	MemoKey      = "memo"
	CliffKey     = "cliff"
	SignerKey    = "signer"
	ThresholdKey = "threshold"
)

// submit signs the message returned by build with the configured key and
// waits for it to be committed. The delivery result is handed to show.
func (cl *cli) submit(
	c *cobra.Command,
	build func(conf *Config) (vault.Msg, error),
	show func(w io.Writer, conf *Config, res *client.CommitResult) error,
) error {
	conf, err := settings(c)
	if err != nil {
		return err
	}
	msg, err := build(conf)
	if err != nil {
		return err
	}
	key, err := loadKey(conf.Key)
	if err != nil {
		return err
	}
	res, err := cl.client(conf).SignAndCommit(context.Background(), key, msg)
	if err != nil {
		return err
	}
	return show(c.OutOrStdout(), conf, res)
}

func showNothing(io.Writer, *Config, *client.CommitResult) error { return nil }

func showID(w io.Writer, _ *Config, res *client.CommitResult) error {
	_, err := fmt.Fprintln(w, orm.FormatID(res.Data))
	return err
}

func showAmount(w io.Writer, conf *Config, res *client.CommitResult) error {
	_, err := fmt.Fprintln(w, formatAmount(coin.Amount(res.Data), conf.Decimals))
	return err
}

func parseDuration(s string) (vault.UnixDuration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid duration %q", s)
	}
	return vault.AsUnixDuration(d), nil
}

func initializeCommand(cl *cli) *cobra.Command {
	c := &cobra.Command{
		Use:   "initialize",
		Short: "Initialize the vault, the signer becomes the administrator",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				signers, err := c.Flags().GetStringSlice(SignerKey)
				if err != nil {
					return nil, err
				}
				threshold, err := c.Flags().GetUint32(ThresholdKey)
				if err != nil {
					return nil, err
				}
				msg := admin.InitializeMsg{EmergencyThreshold: threshold}
				for _, s := range signers {
					addr, err := vault.ParseAddress(s)
					if err != nil {
						return nil, errors.Wrapf(err, "signer %q", s)
					}
					msg.EmergencySigners = append(msg.EmergencySigners, addr)
				}
				return &msg, nil
			}, showNothing)
		},
	}
	c.Flags().StringSlice(SignerKey, nil, "emergency signer address, can be repeated")
	c.Flags().Uint32(ThresholdKey, 0, "number of emergency approvals required (0 means 2)")
	return c
}

func lockCommand(cl *cli) *cobra.Command {
	c := &cobra.Command{
		Use:   "lock <amount> <duration>",
		Short: "Lock tokens until the duration, for example 720h, has passed",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(conf *Config) (vault.Msg, error) {
				amount, err := parseAmount(args[0], conf.Decimals)
				if err != nil {
					return nil, err
				}
				duration, err := parseDuration(args[1])
				if err != nil {
					return nil, err
				}
				memo, err := c.Flags().GetString(MemoKey)
				if err != nil {
					return nil, err
				}
				return &timelock.LockTokensMsg{Amount: amount, Duration: duration, Memo: memo}, nil
			}, showID)
		},
	}
	c.Flags().String(MemoKey, "", "short description of the lock")
	return c
}

func claimCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <lock id>",
		Short: "Withdraw the tokens of an expired lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				id, err := orm.ParseID(args[0])
				if err != nil {
					return nil, err
				}
				return &timelock.ClaimMsg{LockID: id}, nil
			}, showAmount)
		},
	}
}

func vestCommand(cl *cli) *cobra.Command {
	c := &cobra.Command{
		Use:   "vest <beneficiary> <amount> <duration>",
		Short: "Create a linear vesting schedule, administrator only",
		Args:  cobra.ExactArgs(3),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(conf *Config) (vault.Msg, error) {
				beneficiary, err := vault.ParseAddress(args[0])
				if err != nil {
					return nil, errors.Wrap(err, "beneficiary")
				}
				amount, err := parseAmount(args[1], conf.Decimals)
				if err != nil {
					return nil, err
				}
				duration, err := parseDuration(args[2])
				if err != nil {
					return nil, err
				}
				rawCliff, err := c.Flags().GetString(CliffKey)
				if err != nil {
					return nil, err
				}
				cliff, err := parseDuration(rawCliff)
				if err != nil {
					return nil, err
				}
				memo, err := c.Flags().GetString(MemoKey)
				if err != nil {
					return nil, err
				}
				return &vesting.CreateVestingMsg{
					Beneficiary: beneficiary,
					TotalAmount: amount,
					Duration:    duration,
					Cliff:       cliff,
					Memo:        memo,
				}, nil
			}, showID)
		},
	}
	c.Flags().String(CliffKey, "0s", "period after which the first tokens can be claimed")
	c.Flags().String(MemoKey, "", "short description of the schedule")
	return c
}

func claimVestedCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "claim-vested <vesting id>",
		Short: "Withdraw all vested and not yet claimed tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				id, err := orm.ParseID(args[0])
				if err != nil {
					return nil, err
				}
				return &vesting.ClaimVestedMsg{VestingID: id}, nil
			}, showAmount)
		},
	}
}

func approveCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <lock id>",
		Short: "Approve an emergency unlock, emergency signers only",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				id, err := orm.ParseID(args[0])
				if err != nil {
					return nil, err
				}
				return &emergency.ApproveEmergencyMsg{LockID: id}, nil
			}, func(w io.Writer, _ *Config, res *client.CommitResult) error {
				_, err := fmt.Fprintf(w, "approvals: %s\n", res.Data)
				return err
			})
		},
	}
}

func unlockCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock <lock id>",
		Short: "Release an approved lock before its expiration",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				id, err := orm.ParseID(args[0])
				if err != nil {
					return nil, err
				}
				return &emergency.EmergencyUnlockMsg{LockID: id}, nil
			}, showAmount)
		},
	}
}

func transferAdminCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer-admin <address>",
		Short: "Hand the administrator role to another address",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				addr, err := vault.ParseAddress(args[0])
				if err != nil {
					return nil, err
				}
				return &admin.TransferAdminMsg{NewAdmin: addr}, nil
			}, showNothing)
		},
	}
}

func upgradeCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <code hash>",
		Short: "Record a new code version given its hex encoded sha256 hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cl.submit(c, func(*Config) (vault.Msg, error) {
				hash, err := hex.DecodeString(args[0])
				if err != nil {
					return nil, errors.Wrap(errors.ErrInput, "code hash must be hex encoded")
				}
				return &admin.UpgradeMsg{CodeHash: hash}, nil
			}, func(w io.Writer, _ *Config, res *client.CommitResult) error {
				var v upgrade.CodeVersion
				if err := v.Unmarshal(res.Data); err != nil {
					return errors.Wrap(err, "code version")
				}
				_, err := fmt.Fprintf(w, "version: %d\n", v.Version)
				return err
			})
		},
	}
}
