package vault

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestReadOptions(t *testing.T) {
	var opts Options
	assert.Nil(t, json.Unmarshal([]byte(`{"vault": {"threshold": 3}, "broken": {"threshold": "x"}}`), &opts))

	var conf struct{ Threshold int }
	assert.Nil(t, opts.ReadOptions("vault", &conf))
	assert.Equal(t, 3, conf.Threshold)

	var missing struct{ Threshold int }
	assert.Nil(t, opts.ReadOptions("missing", &missing))
	assert.Equal(t, 0, missing.Threshold)

	var broken struct{ Threshold int }
	assert.IsErr(t, errors.ErrInput, opts.ReadOptions("broken", &broken))
}
