package token2022

import "token-decoder-sol/pkg/types"

// 合约源代码:
// Token2022: https://github.com/solana-program/token-2022/blob/main/program/src/instruction.rs

const (
	// MinSigners 多签最少签名者数量（min N）
	MinSigners = 1
	// MaxSigners 多签最多签名者数量（max N）
	MaxSigners = 11

	// U16Bytes / U64Bytes 为定长整数的序列化长度
	U16Bytes = 2
	U64Bytes = 8

	PubkeyBytes = types.PubkeyBytes

	// ExtensionTypeBytes 扩展类型列表中单个元素的宽度
	ExtensionTypeBytes = 2
)
