package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "vaultcli")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	cases := map[string]struct {
		Path    string
		Want    *Config
		WantErr *errors.Error
	}{
		"missing file gives defaults": {
			Path: filepath.Join(dir, "missing.yaml"),
			Want: &Config{Node: defaultNode, Decimals: 0},
		},
		"all values": {
			Path: write("full.yaml", "node: http://node:26657\nkey: /tmp/my.key\ndecimals: 6\n"),
			Want: &Config{Node: "http://node:26657", Key: "/tmp/my.key", Decimals: 6},
		},
		"partial file keeps defaults": {
			Path: write("partial.yaml", "decimals: 2\n"),
			Want: &Config{Node: defaultNode, Decimals: 2},
		},
		"negative decimals": {
			Path:    write("negative.yaml", "decimals: -1\n"),
			WantErr: errors.ErrInput,
		},
		"malformed": {
			Path:    write("malformed.yaml", "node: [\n"),
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conf, err := loadConfig(tc.Path)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr != nil {
				return
			}
			assert.Equal(t, tc.Want.Node, conf.Node)
			assert.Equal(t, tc.Want.Decimals, conf.Decimals)
			if tc.Want.Key != "" {
				assert.Equal(t, tc.Want.Key, conf.Key)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		Input    string
		Decimals int32
		Want     string
		WantErr  *errors.Error
	}{
		"integer": {
			Input: "42",
			Want:  "42",
		},
		"fraction": {
			Input:    "1.5",
			Decimals: 6,
			Want:     "1500000",
		},
		"all decimal places": {
			Input:    "0.000001",
			Decimals: 6,
			Want:     "1",
		},
		"trailing zeros": {
			Input:    "2.500",
			Decimals: 2,
			Want:     "250",
		},
		"zero": {
			Input: "0",
			Want:  "0",
		},
		"too many decimal places": {
			Input:    "0.001",
			Decimals: 2,
			WantErr:  errors.ErrAmount,
		},
		"negative": {
			Input:   "-1",
			WantErr: errors.ErrAmount,
		},
		"not a number": {
			Input:   "ten",
			WantErr: errors.ErrAmount,
		},
		"overflow": {
			Input:   "170141183460469231731687303715884105728",
			WantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := parseAmount(tc.Input, tc.Decimals)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.Want, got.String())
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]struct {
		Amount   coin.Amount
		Decimals int32
		Want     string
	}{
		"zero":        {Amount: nil, Decimals: 6, Want: "0"},
		"no decimals": {Amount: coin.NewAmount(1234), Want: "1234"},
		"fraction":    {Amount: coin.NewAmount(1500000), Decimals: 6, Want: "1.5"},
		"small":       {Amount: coin.NewAmount(1), Decimals: 3, Want: "0.001"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.Want, formatAmount(tc.Amount, tc.Decimals))
		})
	}
}
