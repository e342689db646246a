package main

import (
	"crypto/rand"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ed25519"
)

func keygenCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Long: `Generate a new ed25519 private key and write it to the configured key
file. An existing key file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			conf, err := settings(c)
			if err != nil {
				return err
			}
			if _, err := os.Stat(conf.Key); err == nil {
				return errors.Wrapf(errors.ErrDuplicate, "private key file %q exists, not overwriting", conf.Key)
			} else if !os.IsNotExist(err) {
				return errors.Wrap(err, "stat key file")
			}
			_, priv, err := ed25519.GenerateKey(rand.Reader)
			if err != nil {
				return errors.Wrap(err, "generate key")
			}
			fd, err := os.OpenFile(conf.Key, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
			if err != nil {
				return errors.Wrap(err, "create key file")
			}
			if _, err := fd.Write(priv); err != nil {
				fd.Close()
				return errors.Wrap(err, "write key file")
			}
			if err := fd.Close(); err != nil {
				return errors.Wrap(err, "close key file")
			}
			key := &crypto.PrivateKey{Ed25519: priv}
			fmt.Fprintln(c.OutOrStdout(), key.PublicKey().Address())
			return nil
		},
	}
}

func addressCommand(cl *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of the configured private key",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			conf, err := settings(c)
			if err != nil {
				return err
			}
			key, err := loadKey(conf.Key)
			if err != nil {
				return err
			}
			addr := key.PublicKey().Address()
			bech, err := addr.Bech32()
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "hex:\t%s\nbech32:\t%s\n", addr, bech)
			return nil
		},
	}
}

// loadKey reads a raw ed25519 private key file as written by keygen.
func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read private key %q", path)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "invalid private key length %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}
