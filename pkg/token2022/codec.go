package token2022

import (
	"encoding/binary"

	"token-decoder-sol/pkg/types"
)

// 以下解码函数均返回 (值, 剩余未消费字节, error)，
// 只读取自身字段宽度，不足时返回 ErrTruncatedInput，绝不补零。

// DecodeU8 读取单字节
func DecodeU8(input []byte) (uint8, []byte, error) {
	if len(input) < 1 {
		return 0, nil, truncated("u8", 1, len(input))
	}
	return input[0], input[1:], nil
}

// DecodeU16 读取 2 字节小端 u16
func DecodeU16(input []byte) (uint16, []byte, error) {
	if len(input) < U16Bytes {
		return 0, nil, truncated("u16", U16Bytes, len(input))
	}
	return binary.LittleEndian.Uint16(input[:U16Bytes]), input[U16Bytes:], nil
}

// DecodeU64 读取 8 字节小端 u64
func DecodeU64(input []byte) (uint64, []byte, error) {
	if len(input) < U64Bytes {
		return 0, nil, truncated("u64", U64Bytes, len(input))
	}
	return binary.LittleEndian.Uint64(input[:U64Bytes]), input[U64Bytes:], nil
}

// DecodePubkey 原样读取 32 字节公钥
func DecodePubkey(input []byte) (types.Pubkey, []byte, error) {
	if len(input) < PubkeyBytes {
		return types.Pubkey{}, nil, truncated("pubkey", PubkeyBytes, len(input))
	}
	var pk types.Pubkey
	copy(pk[:], input[:PubkeyBytes])
	return pk, input[PubkeyBytes:], nil
}

// DecodeAmountDecimals 读取 amount(u64) + decimals(u8)，*Checked 系列指令通用
func DecodeAmountDecimals(input []byte) (uint64, uint8, []byte, error) {
	amount, rest, err := DecodeU64(input)
	if err != nil {
		return 0, 0, nil, err
	}
	if len(rest) < 1 {
		return 0, 0, nil, truncated("decimals", 1, len(rest))
	}
	return amount, rest[0], rest[1:], nil
}

// DecodePubkeyOption 读取 COption<Pubkey>：
//   - 0x00 → None，仅消费 1 字节
//   - 0x01 → Some，再读取 32 字节公钥
//   - 其他值或空输入 → ErrInvalidOptionDiscriminant
func DecodePubkeyOption(input []byte) (types.OptionalPubkey, []byte, error) {
	if len(input) == 0 {
		return types.NonePubkey(), nil, &OptionDiscriminantError{Missing: true}
	}
	switch input[0] {
	case 0:
		return types.NonePubkey(), input[1:], nil
	case 1:
		pk, rest, err := DecodePubkey(input[1:])
		if err != nil {
			return types.NonePubkey(), nil, err
		}
		return types.SomePubkey(pk), rest, nil
	default:
		return types.NonePubkey(), nil, &OptionDiscriminantError{Discriminant: input[0]}
	}
}

// DecodeExtensionTypes 将剩余字节按 2 字节一组解析为扩展类型列表，直至耗尽。
// 末尾不足 2 字节时返回 ErrTruncatedInput，不做静默丢弃。
func DecodeExtensionTypes(input []byte) ([]ExtensionType, error) {
	extensionTypes := make([]ExtensionType, 0, len(input)/ExtensionTypeBytes)
	for len(input) > 0 {
		code, rest, err := DecodeU16(input)
		if err != nil {
			return nil, truncated("extension type", ExtensionTypeBytes, len(input))
		}
		et, err := ExtensionTypeFromCode(code)
		if err != nil {
			return nil, err
		}
		extensionTypes = append(extensionTypes, et)
		input = rest
	}
	return extensionTypes, nil
}
