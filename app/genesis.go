package app

import (
	"github.com/iov-one/vault"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...vault.Initializer) vault.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []vault.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts vault.Options, kv vault.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
