package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/vault/client"
	"github.com/spf13/cobra"
)

const (
	ConfigKey   = "config"
	NodeKey     = "node"
	KeyKey      = "key"
	DecimalsKey = "decimals"
)

func main() {
	if err := rootCommand(client.NewHTTPConnection).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// rootCommand returns the vaultcli command tree. All commands talking to a
// node obtain their connection from dial.
func rootCommand(dial func(node string) client.Conn) *cobra.Command {
	c := &cobra.Command{
		Use:          "vaultcli",
		Short:        "Command line client of the token vault",
		SilenceUsage: true,
	}
	home := os.ExpandEnv("$HOME")
	flags := c.PersistentFlags()
	flags.String(ConfigKey, filepath.Join(home, ".vaultcli.yaml"), "configuration file, ignored when missing")
	flags.String(NodeKey, "", `tendermint RPC address (default "`+defaultNode+`")`)
	flags.String(KeyKey, "", `private key file (default "$HOME/.vaultcli.key")`)
	flags.Int32(DecimalsKey, 0, "number of decimal places of displayed and entered amounts")

	cli := &cli{dial: dial}
	c.AddCommand(
		keygenCommand(cli),
		addressCommand(cli),
		initializeCommand(cli),
		lockCommand(cli),
		claimCommand(cli),
		vestCommand(cli),
		claimVestedCommand(cli),
		approveCommand(cli),
		unlockCommand(cli),
		transferAdminCommand(cli),
		upgradeCommand(cli),
		getLockCommand(cli),
		getVestingCommand(cli),
		statsCommand(cli),
	)
	return c
}

// cli carries state shared by all commands.
type cli struct {
	dial func(node string) client.Conn
}

// client returns a client connected to the configured node.
func (cl *cli) client(conf *Config) *client.Client {
	return client.NewClient(cl.dial(conf.Node))
}
