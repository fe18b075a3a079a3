package core

import (
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-decoder-sol/pkg/token2022"
	"token-decoder-sol/pkg/types"
)

func TestDecodedInstructionJSON(t *testing.T) {
	owner := types.PubkeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	sig := make([]byte, 64)
	sig[0] = 1

	d := &DecodedInstruction{
		Slot:       300,
		BlockTime:  1700000000,
		TxIndex:    2,
		IxIndex:    1,
		InnerIndex: 3,
		Signature:  sig,
		ProgramID:  owner,
		Instruction: token2022.TransferFeeExtension{
			Instruction: token2022.TransferCheckedWithFee{Amount: 16, Decimals: 6, Fee: 5},
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(300), got["slot"])
	assert.Equal(t, float64(1700000000), got["blockTime"])
	assert.Equal(t, float64(3), got["innerIndex"])
	assert.Equal(t, base58.Encode(sig), got["signature"])
	assert.Equal(t, owner.String(), got["programId"])
	assert.Equal(t, []any{}, got["accounts"])
	assert.Equal(t, "transferFeeExtension.transferCheckedWithFee", got["type"])
	assert.Equal(t, map[string]any{
		"instruction": map[string]any{"amount": float64(16), "decimals": float64(6), "fee": float64(5)},
	}, got["instruction"])
}

func TestDecodedInstructionKeys(t *testing.T) {
	d := &DecodedInstruction{TxIndex: 1, IxIndex: 2, InnerIndex: 3}
	assert.Nil(t, d.PartitionKey())
	assert.Equal(t, uint32(1<<16|2<<8|3), d.ID())

	account := types.PubkeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	d.Accounts = []types.Pubkey{account}
	assert.Equal(t, account[:], d.PartitionKey())
}
