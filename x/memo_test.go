package x

import (
	"strings"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestValidateMemo(t *testing.T) {
	cases := map[string]struct {
		Memo    string
		WantErr *errors.Error
	}{
		"empty":      {Memo: ""},
		"tag":        {Memo: "team"},
		"underscore": {Memo: "seed_round_2"},
		"longest":    {Memo: strings.Repeat("a", MaxMemoLength)},
		"too long":   {Memo: strings.Repeat("a", MaxMemoLength+1), WantErr: errors.ErrInput},
		"space":      {Memo: "two words", WantErr: errors.ErrInput},
		"non ascii":  {Memo: "zażółć", WantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, ValidateMemo(tc.Memo))
		})
	}
}
