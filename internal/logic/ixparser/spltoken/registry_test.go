package spltoken

import (
	"errors"
	"testing"

	sdktoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-decoder-sol/internal/consts"
	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/internal/logic/ixparser/common"
	"token-decoder-sol/pkg/token2022"
	"token-decoder-sol/pkg/types"
)

func newContext() *common.ParserContext {
	return common.BuildParserContext(&core.AdaptedTx{
		TxCtx:     &core.TxContext{Slot: 99, BlockTime: 1700000000},
		TxIndex:   4,
		Signature: make([]byte, 64),
	})
}

func TestRegisterHandlers(t *testing.T) {
	m := map[types.Pubkey]common.InstructionHandler{}
	require.NoError(t, RegisterHandlers(m, consts.TokenProgram, consts.TokenProgram2022))
	assert.Len(t, m, 2)

	err := RegisterHandlers(m, types.Pubkey{1})
	assert.Error(t, err)
}

func TestHandleToken2022Instruction(t *testing.T) {
	ix := &core.AdaptedInstruction{
		IxIndex:    2,
		InnerIndex: 1,
		ProgramID:  consts.TokenProgram2022,
		Accounts:   []types.Pubkey{{1}, {2}},
		Data:       []byte{byte(sdktoken.InstructionTransfer), 0x64, 0, 0, 0, 0, 0, 0, 0},
	}

	d, err := handleToken2022Instruction(newContext(), ix)
	require.NoError(t, err)
	assert.Equal(t, token2022.Transfer{Amount: 100}, d.Instruction)
	assert.Equal(t, uint64(99), d.Slot)
	assert.Equal(t, int64(1700000000), d.BlockTime)
	assert.Equal(t, uint32(4), d.TxIndex)
	assert.Equal(t, uint16(2), d.IxIndex)
	assert.Equal(t, uint16(1), d.InnerIndex)
	assert.Equal(t, consts.TokenProgram2022, d.ProgramID)

	_, err = handleToken2022Instruction(newContext(), &core.AdaptedInstruction{Data: []byte{40}})
	assert.ErrorIs(t, err, token2022.ErrUnknownTag)
}

func TestHandleLegacyTokenInstruction(t *testing.T) {
	ctx := newContext()

	d, err := handleLegacyTokenInstruction(ctx, &core.AdaptedInstruction{
		ProgramID: consts.TokenProgram,
		Data:      []byte{24, '1', '.', '5'},
	})
	require.NoError(t, err)
	assert.Equal(t, token2022.UiAmountToAmount{UiAmount: "1.5"}, d.Instruction)

	// 扩展指令不属于旧版 Token 程序
	_, err = handleLegacyTokenInstruction(ctx, &core.AdaptedInstruction{
		ProgramID: consts.TokenProgram,
		Data:      []byte{26, 4},
	})
	assert.ErrorIs(t, err, common.ErrSkipped)

	_, err = handleLegacyTokenInstruction(ctx, &core.AdaptedInstruction{ProgramID: consts.TokenProgram})
	assert.ErrorIs(t, err, token2022.ErrTruncatedInput)
	assert.False(t, errors.Is(err, common.ErrSkipped))
}
