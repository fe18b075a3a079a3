package core

import (
	"encoding/json"

	"github.com/mr-tron/base58"

	"token-decoder-sol/pkg/token2022"
	"token-decoder-sol/pkg/types"
)

// DecodedInstruction 一条解码成功的 Token 指令及其链上位置
type DecodedInstruction struct {
	Slot        uint64
	BlockTime   int64
	TxIndex     uint32
	IxIndex     uint16
	InnerIndex  uint16
	Signature   []byte
	ProgramID   types.Pubkey
	Accounts    []types.Pubkey
	Instruction token2022.TokenInstruction
}

// ID slot 内唯一标识：[ 16 bits txIndex ] [ 8 bits ixIndex ] [ 8 bits innerIndex ]
func (d *DecodedInstruction) ID() uint32 {
	return BuildRecordID(d.TxIndex, d.IxIndex, d.InnerIndex)
}

// PartitionKey 首个账户作为 Kafka 分区 key，无账户时返回 nil
func (d *DecodedInstruction) PartitionKey() []byte {
	if len(d.Accounts) == 0 {
		return nil
	}
	return d.Accounts[0][:]
}

type decodedInstructionJSON struct {
	Slot        uint64                     `json:"slot"`
	BlockTime   int64                      `json:"blockTime"`
	TxIndex     uint32                     `json:"txIndex"`
	IxIndex     uint16                     `json:"ixIndex"`
	InnerIndex  uint16                     `json:"innerIndex"`
	Signature   string                     `json:"signature"`
	ProgramID   types.Pubkey               `json:"programId"`
	Accounts    []types.Pubkey             `json:"accounts"`
	Type        string                     `json:"type"`
	Instruction token2022.TokenInstruction `json:"instruction"`
}

func (d *DecodedInstruction) MarshalJSON() ([]byte, error) {
	accounts := d.Accounts
	if accounts == nil {
		accounts = []types.Pubkey{}
	}
	return json.Marshal(decodedInstructionJSON{
		Slot:        d.Slot,
		BlockTime:   d.BlockTime,
		TxIndex:     d.TxIndex,
		IxIndex:     d.IxIndex,
		InnerIndex:  d.InnerIndex,
		Signature:   base58.Encode(d.Signature),
		ProgramID:   d.ProgramID,
		Accounts:    accounts,
		Type:        token2022.InstructionName(d.Instruction),
		Instruction: d.Instruction,
	})
}

// ParsedTxResult 某笔交易的解码结果
type ParsedTxResult struct {
	TxIndex      int
	Instructions []*DecodedInstruction
	Failed       int // 解码失败的指令数
}

// BuildRecordID 由 txIndex、ixIndex、innerIndex 组合出 slot 内唯一 ID，
// ixIndex / innerIndex 超过 255 时高位被截断。
func BuildRecordID(txIndex uint32, ixIndex uint16, innerIndex uint16) uint32 {
	return (txIndex << 16) | (uint32(ixIndex&0xff) << 8) | uint32(innerIndex&0xff)
}
