package token2022

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-decoder-sol/pkg/types"
)

func TestDecodeTransferFeeInstruction(t *testing.T) {
	cases := []struct {
		name     string
		input    []byte
		want     TransferFeeInstruction
		wantRest []byte
	}{
		{
			name:  "initializeTransferFeeConfig",
			input: concat([]byte{0, 1}, testKeyA[:], []byte{0}, u16le(100), u64le(1_000_000), []byte{0xee}),
			want: InitializeTransferFeeConfig{
				TransferFeeConfigAuthority: types.SomePubkey(testKeyA),
				WithdrawWithheldAuthority:  types.NonePubkey(),
				TransferFeeBasisPoints:     100,
				MaximumFee:                 1_000_000,
			},
			wantRest: []byte{0xee},
		},
		{
			name:  "transferCheckedWithFee",
			input: concat([]byte{1}, u64le(16), []byte{6}, u64le(5)),
			want:  TransferCheckedWithFee{Amount: 16, Decimals: 6, Fee: 5},
		},
		{
			name:     "withdrawWithheldTokensFromMint",
			input:    []byte{2, 0x01},
			want:     WithdrawWithheldTokensFromMint{},
			wantRest: []byte{0x01},
		},
		{
			name:  "withdrawWithheldTokensFromAccounts",
			input: []byte{3, 4},
			want:  WithdrawWithheldTokensFromAccounts{NumTokenAccounts: 4},
		},
		{
			name:  "harvestWithheldTokensToMint",
			input: []byte{4},
			want:  HarvestWithheldTokensToMint{},
		},
		{
			name:  "setTransferFee",
			input: concat([]byte{5}, u16le(250), u64le(99)),
			want:  SetTransferFee{TransferFeeBasisPoints: 250, MaximumFee: 99},
		},
	}
	require.Len(t, cases, int(TransferFeeTagCount))

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, rest, err := DecodeTransferFeeInstruction(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, TransferFeeTag(i), got.Tag())
			assert.Equal(t, tc.name, got.Tag().String())
			assert.Equal(t, len(tc.wantRest), len(rest))
			if len(tc.wantRest) > 0 {
				assert.Equal(t, tc.wantRest, rest)
			}
		})
	}
}

func TestDecodeTransferFeeInstruction_Errors(t *testing.T) {
	_, _, err := DecodeTransferFeeInstruction(nil)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	_, _, err = DecodeTransferFeeInstruction([]byte{6})
	assert.ErrorIs(t, err, ErrUnknownTag)

	_, _, err = DecodeTransferFeeInstruction([]byte{3})
	assert.ErrorIs(t, err, ErrTruncatedInput)

	// 第二个 COption 标志非法
	_, _, err = DecodeTransferFeeInstruction([]byte{0, 0, 5})
	assert.ErrorIs(t, err, ErrInvalidOptionDiscriminant)

	full := concat([]byte{1}, u64le(16), []byte{6}, u64le(5))
	for n := 1; n < len(full); n++ {
		_, _, err = DecodeTransferFeeInstruction(full[:n])
		assert.ErrorIs(t, err, ErrTruncatedInput, "len=%d", n)
	}
}

func TestTransferFeeExtension_JSON(t *testing.T) {
	ix := TransferFeeExtension{Instruction: InitializeTransferFeeConfig{
		TransferFeeConfigAuthority: types.SomePubkey(testKeyA),
		TransferFeeBasisPoints:     30,
		MaximumFee:                 7,
	}}
	data, err := json.Marshal(ix)
	require.NoError(t, err)
	assert.JSONEq(t, `{"instruction":{
		"transferFeeConfigAuthority":"`+testKeyA.String()+`",
		"withdrawWithheldAuthority":null,
		"transferFeeBasisPoints":30,
		"maximumFee":7}}`, string(data))
}
