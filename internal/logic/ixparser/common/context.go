package common

import (
	"errors"

	"github.com/mr-tron/base58"

	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/pkg/token2022"
)

// ErrSkipped handler 主动放弃的指令（不计入解码失败）
var ErrSkipped = errors.New("instruction skipped")

// ParserContext 是传入每个指令 handler 的解析上下文
type ParserContext struct {
	Tx      *core.AdaptedTx // 原始交易，包含 slot、指令、签名等
	TxIndex uint32          // 当前交易在区块中的位置
}

// InstructionHandler 定义统一的指令解码函数签名。
// 返回 ErrSkipped 表示该指令不需要输出，其他 error 视为解码失败。
type InstructionHandler func(ctx *ParserContext, ix *core.AdaptedInstruction) (*core.DecodedInstruction, error)

func BuildParserContext(tx *core.AdaptedTx) *ParserContext {
	return &ParserContext{
		Tx:      tx,
		TxIndex: tx.TxIndex,
	}
}

func (ctx *ParserContext) TxHashString() string {
	return base58.Encode(ctx.Tx.Signature)
}

// NewDecoded 用指令位置与区块信息填充 DecodedInstruction
func (ctx *ParserContext) NewDecoded(ix *core.AdaptedInstruction, decoded token2022.TokenInstruction) *core.DecodedInstruction {
	d := &core.DecodedInstruction{
		TxIndex:     ctx.TxIndex,
		IxIndex:     ix.IxIndex,
		InnerIndex:  ix.InnerIndex,
		Signature:   ctx.Tx.Signature,
		ProgramID:   ix.ProgramID,
		Accounts:    ix.Accounts,
		Instruction: decoded,
	}
	if ctx.Tx.TxCtx != nil {
		d.Slot = ctx.Tx.TxCtx.Slot
		d.BlockTime = ctx.Tx.TxCtx.BlockTime
	}
	return d
}
