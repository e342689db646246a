package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

// conf is serialized as JSON to keep the test independent of protobuf.
type conf struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func (c *conf) Marshal() ([]byte, error) { return json.Marshal(c) }
func (c *conf) Unmarshal(b []byte) error { return json.Unmarshal(b, c) }
func (c *conf) Validate() error {
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var c conf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "vault", &c))
	ok, err := Exists(db, "vault")
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	assert.IsErr(t, errors.ErrEmpty, Save(db, "vault", &conf{}))
	assert.Nil(t, Save(db, "vault", &conf{Name: "a", Limit: 3}))

	assert.Nil(t, Load(db, "vault", &c))
	assert.Equal(t, conf{Name: "a", Limit: 3}, c)

	res, err := QueryHandler("vault").Query(db, vault.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"valid": {
			genesis: `{"conf": {"vault": {"name": "x", "limit": 2}}}`,
		},
		"missing package": {
			genesis: `{"conf": {"other": {"name": "x"}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"vault": {"limit": 2}}}`,
			wantErr: errors.ErrEmpty,
		},
		"malformed": {
			genesis: `{"conf": {"vault": {"limit": "two"}}}`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts vault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			db := store.MemStore()
			err := InitConfig(db, opts, "vault", &conf{})
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			var c conf
			assert.Nil(t, Load(db, "vault", &c))
			assert.Equal(t, "x", c.Name)
		})
	}
}
