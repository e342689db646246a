package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	AdminKey     = "admin"
	SignerKey    = "signer"
	ThresholdKey = "threshold"
	GenesisKey   = "genesis"
)

func initCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialize the vault configuration in the genesis file",
		Long: `Write the vault configuration as the app_state of an existing tendermint
genesis file. When no administrator is given, a new key is generated and
printed.`,
		RunE: initFunc,
	}
	addInitFlags(c.Flags())
	return c
}

func addInitFlags(flags *pflag.FlagSet) {
	flags.String(AdminKey, "", "administrator address, hex or bech32 encoded")
	flags.StringSlice(SignerKey, nil, "emergency signer address, can be repeated")
	flags.Uint32(ThresholdKey, 0, "number of emergency approvals required (0 means 2)")
	flags.String(GenesisKey, "", `genesis file path (default "<home>/config/genesis.json")`)
}

type initConfig struct {
	Admin     vault.Address
	Signers   []vault.Address
	Threshold uint32
	Genesis   string
}

func parseInitFlags(flags *pflag.FlagSet) (*initConfig, error) {
	var conf initConfig

	admin, err := flags.GetString(AdminKey)
	if err != nil {
		return nil, err
	}
	if admin != "" {
		if conf.Admin, err = vault.ParseAddress(admin); err != nil {
			return nil, errors.Wrap(err, "admin")
		}
	}

	signers, err := flags.GetStringSlice(SignerKey)
	if err != nil {
		return nil, err
	}
	for _, s := range signers {
		addr, err := vault.ParseAddress(s)
		if err != nil {
			return nil, errors.Wrapf(err, "signer %q", s)
		}
		conf.Signers = append(conf.Signers, addr)
	}

	if conf.Threshold, err = flags.GetUint32(ThresholdKey); err != nil {
		return nil, err
	}

	if conf.Genesis, err = flags.GetString(GenesisKey); err != nil {
		return nil, err
	}
	if conf.Genesis == "" {
		home, err := flags.GetString(HomeKey)
		if err != nil {
			return nil, err
		}
		conf.Genesis = filepath.Join(home, "config", "genesis.json")
	}
	return &conf, nil
}

func initFunc(c *cobra.Command, args []string) error {
	conf, err := parseInitFlags(c.Flags())
	if err != nil {
		return err
	}
	if len(conf.Admin) == 0 {
		addr, keys, err := app.GenerateKey()
		if err != nil {
			return errors.Wrap(err, "generate admin key")
		}
		fmt.Fprintln(c.OutOrStdout(), keys)
		conf.Admin = addr
	}
	state, err := app.GenesisState(conf.Admin, conf.Signers, conf.Threshold)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(conf.Genesis, state); err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "vault configuration written to %s\n", conf.Genesis)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", filename)
		}
		return err
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	if raw, ok := doc["app_state"]; ok && len(raw) != 0 && string(raw) != "null" && string(raw) != "{}" {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s", filename)
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
