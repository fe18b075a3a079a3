package spltoken

import (
	"fmt"

	"token-decoder-sol/internal/consts"
	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/internal/logic/ixparser/common"
	"token-decoder-sol/pkg/token2022"
	"token-decoder-sol/pkg/types"
)

// 合约源代码:
// SplToken: https://github.com/solana-program/token/blob/main/program/src/instruction.rs
// Token2022: https://github.com/solana-program/token-2022

// legacyMaxTag 旧版 Token 程序支持的最大指令编号，之后的均为 Token2022 扩展指令
const legacyMaxTag = token2022.TagUiAmountToAmount

// RegisterHandlers 按程序 ID 注册 Token / Token2022 的指令处理逻辑，未知程序返回 error
func RegisterHandlers(m map[types.Pubkey]common.InstructionHandler, programs ...types.Pubkey) error {
	for _, program := range programs {
		switch program {
		case consts.TokenProgram:
			m[program] = handleLegacyTokenInstruction
		case consts.TokenProgram2022:
			m[program] = handleToken2022Instruction
		default:
			return fmt.Errorf("spltoken: unsupported program %s", program)
		}
	}
	return nil
}

func handleToken2022Instruction(ctx *common.ParserContext, ix *core.AdaptedInstruction) (*core.DecodedInstruction, error) {
	decoded, err := token2022.DecodeInstruction(ix.Data)
	if err != nil {
		return nil, err
	}
	return ctx.NewDecoded(ix, decoded), nil
}

// handleLegacyTokenInstruction 旧版 Token 程序与 Token2022 前 25 个指令布局一致
func handleLegacyTokenInstruction(ctx *common.ParserContext, ix *core.AdaptedInstruction) (*core.DecodedInstruction, error) {
	if len(ix.Data) > 0 && token2022.InstructionTag(ix.Data[0]) > legacyMaxTag {
		return nil, fmt.Errorf("%w: legacy token program tag %d", common.ErrSkipped, ix.Data[0])
	}
	return handleToken2022Instruction(ctx, ix)
}
