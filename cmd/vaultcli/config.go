package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultNode = "http://localhost:26657"

// Config holds the settings shared by all commands. Values are read from
// the configuration file and can be overwritten by command line flags.
type Config struct {
	Node     string `yaml:"node"`
	Key      string `yaml:"key"`
	Decimals int32  `yaml:"decimals"`
}

// loadConfig reads the YAML configuration file. A missing file is not an
// error and results in the default configuration.
func loadConfig(path string) (*Config, error) {
	conf := Config{
		Node: defaultNode,
		Key:  filepath.Join(os.ExpandEnv("$HOME"), ".vaultcli.key"),
	}
	raw, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return &conf, nil
	case err != nil:
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %q: %s", path, err)
	}
	if conf.Decimals < 0 {
		return nil, errors.Wrap(errors.ErrInput, "decimals must not be negative")
	}
	return &conf, nil
}

// settings returns the configuration for given command, with any flag
// explicitly set taking precedence over the file content.
func settings(c *cobra.Command) (*Config, error) {
	flags := c.Flags()
	path, err := flags.GetString(ConfigKey)
	if err != nil {
		return nil, err
	}
	conf, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if flags.Changed(NodeKey) {
		if conf.Node, err = flags.GetString(NodeKey); err != nil {
			return nil, err
		}
	}
	if flags.Changed(KeyKey) {
		if conf.Key, err = flags.GetString(KeyKey); err != nil {
			return nil, err
		}
	}
	if flags.Changed(DecimalsKey) {
		if conf.Decimals, err = flags.GetInt32(DecimalsKey); err != nil {
			return nil, err
		}
		if conf.Decimals < 0 {
			return nil, errors.Wrap(errors.ErrInput, "decimals must not be negative")
		}
	}
	return conf, nil
}

// parseAmount reads a human readable amount with up to decimals fractional
// digits and returns it in base units.
func parseAmount(s string, decimals int32) (coin.Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrAmount, "invalid amount %q", s)
	}
	if d.IsNegative() {
		return nil, errors.Wrapf(errors.ErrAmount, "negative amount %q", s)
	}
	d = d.Shift(decimals)
	if !d.IsInteger() {
		return nil, errors.Wrapf(errors.ErrAmount, "%q has more than %d decimal places", s, decimals)
	}
	return coin.ParseAmount(d.StringFixed(0))
}

// formatAmount renders an amount given in base units.
func formatAmount(a coin.Amount, decimals int32) string {
	d, err := decimal.NewFromString(a.String())
	if err != nil {
		// Amount always renders as a base 10 integer.
		panic(err)
	}
	return d.Shift(-decimals).String()
}
