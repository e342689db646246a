// Package bech32 converts between raw bytes and bech32 strings. The
// btcutil implementation works on 5 bit groups, this package does the
// regrouping.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/vault/errors"
)

// Encode returns the bech32 form of payload under the hrp prefix.
func Encode(hrp string, payload []byte) ([]byte, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	s, err := bech32.Encode(hrp, groups)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return []byte(s), nil
}

// Decode verifies the checksum of s and returns its prefix and payload.
func Decode(s string) (hrp string, payload []byte, err error) {
	hrp, groups, err := bech32.Decode(s)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if payload, err = bech32.ConvertBits(groups, 5, 8, false); err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}
