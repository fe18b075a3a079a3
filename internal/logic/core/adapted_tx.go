package core

import "token-decoder-sol/pkg/types"

// TxContext 表示交易所属区块的上下文信息
type TxContext struct {
	BlockTime   int64  // 区块时间戳（Unix 秒）
	Slot        uint64 // 当前 Slot
	ParentSlot  uint64 // 父 Slot
	BlockHeight uint64 // 区块高度
}

// AdaptedInstruction 表示一条主指令或 inner 指令，来源于 message.instructions 或 innerInstructions。
// 所有指令在预处理阶段已展平，并补充了位置信息（IxIndex、InnerIndex）。
type AdaptedInstruction struct {
	IxIndex    uint16         // 主指令索引（从 0 开始）
	InnerIndex uint16         // Inner 指令在主指令中的序号，主指令本身为 0，CPI 调用从 1 开始
	ProgramID  types.Pubkey   // 指令对应的程序 ID
	Accounts   []types.Pubkey // 指令涉及的账户列表，保持原始顺序
	Data       []byte         // 指令原始数据
}

// AdaptedTx 表示已展平的链上交易
type AdaptedTx struct {
	TxCtx     *TxContext
	TxIndex   uint32 // 当前交易在区块中的序号
	Signature []byte // 交易签名（64 字节原始数据）

	// Instructions 按执行顺序展平后的主指令与 inner 指令
	Instructions []*AdaptedInstruction
}
