package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/stretchr/testify/require"
)

// 2^127 - 1
const maxAmount = "170141183460469231731687303715884105727"

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    string
		wantErr *errors.Error
	}{
		"zero":         {in: "0", want: "0"},
		"small":        {in: "1000000", want: "1000000"},
		"max":          {in: maxAmount, want: maxAmount},
		"too big":      {in: "170141183460469231731687303715884105728", wantErr: errors.ErrOverflow},
		"negative":     {in: "-5", wantErr: errors.ErrAmount},
		"not a number": {in: "ten", wantErr: errors.ErrAmount},
		"fraction":     {in: "1.5", wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, err := ParseAmount(tc.in)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Nil(t, a.Validate())
			assert.Equal(t, tc.want, a.String())
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := NewAmount(1000)
	b := NewAmount(300)

	sum, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, "1300", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	require.Equal(t, "700", diff.String())

	_, err = b.Sub(a)
	assert.IsErr(t, errors.ErrOverflow, err)

	zero, err := a.Sub(a)
	require.NoError(t, err)
	require.True(t, zero.IsZero())
	require.False(t, zero.IsPositive())
	require.Equal(t, "0", zero.String())

	_, err = MustParseAmount(maxAmount).Add(NewAmount(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	require.Equal(t, 1, a.Cmp(b))
	require.Equal(t, -1, b.Cmp(a))
	require.True(t, a.Equals(NewAmount(1000)))
}

func TestAmountMulDiv(t *testing.T) {
	cases := map[string]struct {
		amount   Amount
		num, den uint64
		want     string
	}{
		"half vested":     {NewAmount(10000000), 15768000, 31536000, "5000000"},
		"rounds down":     {NewAmount(10), 1, 3, "3"},
		"nothing elapsed": {NewAmount(10), 0, 3, "0"},
		"large amount":    {MustParseAmount(maxAmount), 1, 2, "85070591730234615865843651857942052863"},
		"no overflow in product": {
			MustParseAmount(maxAmount), 31535999, 31536000,
			"170141178065327696328680209230619528231",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.amount.MulDiv(tc.num, tc.den)
			require.NoError(t, err)
			require.Equal(t, tc.want, got.String())
		})
	}

	_, err := NewAmount(1).MulDiv(1, 0)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestAmountValidate(t *testing.T) {
	assert.IsErr(t, errors.ErrAmount, Amount{0, 1}.Validate())
	assert.IsErr(t, errors.ErrOverflow, make(Amount, 17).Validate())
	over := make(Amount, 16)
	over[0] = 0x80
	assert.IsErr(t, errors.ErrOverflow, over.Validate())
	assert.Nil(t, Amount(nil).Validate())
}

func TestAmountJSON(t *testing.T) {
	var v struct {
		Amount Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "1000000"}`), &v))
	require.Equal(t, "1000000", v.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 42}`), &v))
	require.Equal(t, "42", v.Amount.String())

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"amount": "42"}`, string(raw))
}
