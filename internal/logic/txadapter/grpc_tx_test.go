package txadapter

import (
	"testing"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/pkg/types"
)

func key(b byte) []byte {
	k := make([]byte, types.PubkeyBytes)
	for i := range k {
		k[i] = b
	}
	return k
}

func pubkey(b byte) types.Pubkey {
	pk, _ := types.PubkeyFromBytes(key(b))
	return pk
}

// 账户下标：0,1,2 为静态账户；3 来自 ALT writable；4 来自 ALT readonly
func newTestTx() *pb.SubscribeUpdateTransactionInfo {
	return &pb.SubscribeUpdateTransactionInfo{
		Signature: make([]byte, 64),
		Index:     7,
		Transaction: &pb.Transaction{
			Signatures: [][]byte{make([]byte, 64)},
			Message: &pb.Message{
				Header:      &pb.MessageHeader{NumRequiredSignatures: 1},
				AccountKeys: [][]byte{key(0), key(1), key(2)},
				Instructions: []*pb.CompiledInstruction{
					{ProgramIdIndex: 2, Accounts: []byte{0, 1}, Data: []byte{3, 1, 0, 0, 0, 0, 0, 0, 0}},
					{ProgramIdIndex: 1, Accounts: []byte{3}, Data: []byte{9}},
				},
			},
		},
		Meta: &pb.TransactionStatusMeta{
			LoadedWritableAddresses: [][]byte{key(3)},
			LoadedReadonlyAddresses: [][]byte{key(4)},
			InnerInstructions: []*pb.InnerInstructions{
				{
					Index: 1,
					Instructions: []*pb.InnerInstruction{
						{ProgramIdIndex: 4, Accounts: []byte{0}, Data: []byte{17}},
						{ProgramIdIndex: 2, Accounts: []byte{3, 4}, Data: []byte{9}},
					},
				},
			},
		},
	}
}

func TestAdaptGrpcTx(t *testing.T) {
	txCtx := &core.TxContext{Slot: 10, BlockTime: 1700000000}
	adapted, err := AdaptGrpcTx(txCtx, newTestTx())
	require.NoError(t, err)

	assert.Same(t, txCtx, adapted.TxCtx)
	assert.Equal(t, uint32(7), adapted.TxIndex)
	require.Len(t, adapted.Instructions, 4)

	positions := make([][2]uint16, 0, 4)
	for _, ix := range adapted.Instructions {
		positions = append(positions, [2]uint16{ix.IxIndex, ix.InnerIndex})
	}
	assert.Equal(t, [][2]uint16{{0, 0}, {1, 0}, {1, 1}, {1, 2}}, positions)

	first := adapted.Instructions[0]
	assert.Equal(t, pubkey(2), first.ProgramID)
	assert.Equal(t, []types.Pubkey{pubkey(0), pubkey(1)}, first.Accounts)
	assert.Equal(t, byte(3), first.Data[0])

	// ALT 中的账户按 writable / readonly 顺序追加
	assert.Equal(t, []types.Pubkey{pubkey(3)}, adapted.Instructions[1].Accounts)
	assert.Equal(t, pubkey(4), adapted.Instructions[2].ProgramID)
	assert.Equal(t, []types.Pubkey{pubkey(3), pubkey(4)}, adapted.Instructions[3].Accounts)
}

func TestAdaptGrpcTx_Errors(t *testing.T) {
	t.Run("account index out of range", func(t *testing.T) {
		tx := newTestTx()
		tx.Transaction.Message.Instructions[0].Accounts = []byte{0, 9}
		_, err := AdaptGrpcTx(&core.TxContext{}, tx)
		assert.Error(t, err)
	})

	t.Run("program index out of range", func(t *testing.T) {
		tx := newTestTx()
		tx.Meta.InnerInstructions[0].Instructions[0].ProgramIdIndex = 5
		_, err := AdaptGrpcTx(&core.TxContext{}, tx)
		assert.Error(t, err)
	})

	t.Run("bad account key length", func(t *testing.T) {
		tx := newTestTx()
		tx.Meta.LoadedReadonlyAddresses = [][]byte{make([]byte, 31)}
		_, err := AdaptGrpcTx(&core.TxContext{}, tx)
		assert.Error(t, err)
	})

	t.Run("missing meta", func(t *testing.T) {
		tx := newTestTx()
		tx.Meta = nil
		_, err := AdaptGrpcTx(&core.TxContext{}, tx)
		assert.Error(t, err)
	})
}

func TestShouldDecodeGrpcTx(t *testing.T) {
	assert.False(t, ShouldDecodeGrpcTx(nil, true))
	assert.True(t, ShouldDecodeGrpcTx(newTestTx(), false))

	vote := newTestTx()
	vote.IsVote = true
	assert.False(t, ShouldDecodeGrpcTx(vote, true))

	failed := newTestTx()
	failed.Meta.Err = &pb.TransactionError{Err: []byte{1}}
	assert.False(t, ShouldDecodeGrpcTx(failed, false))
	assert.True(t, ShouldDecodeGrpcTx(failed, true))

	badSig := newTestTx()
	badSig.Transaction.Signatures = [][]byte{make([]byte, 10)}
	assert.False(t, ShouldDecodeGrpcTx(badSig, true))
}
