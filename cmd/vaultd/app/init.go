package app

import (
	"encoding/json"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/guard"
)

// GenesisState returns the app_state section of a genesis file that
// initializes the vault with given configuration.
func GenesisState(admin vault.Address, signers []vault.Address, threshold uint32) (json.RawMessage, error) {
	conf := guard.Configuration{
		Admin:              admin,
		EmergencySigners:   signers,
		EmergencyThreshold: threshold,
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "vault configuration")
	}
	state := map[string]interface{}{
		"conf": map[string]interface{}{
			guard.ConfPackage: conf,
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateKey returns the address of a new key, along with a json
// representation of the key pair.
func GenerateKey() (vault.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return pubKey.Address(), string(keys), nil
}
