package token2022

import (
	"fmt"
	"unicode/utf8"
)

// DecodeInstruction 解析一条 Token2022 指令数据（首字节为标志字节）。
//
// 定长变体只消费自身字段，多余的尾部字节直接忽略；
// GetAccountDataSize / Reallocate / UiAmountToAmount 消费全部剩余字节。
// 函数无状态，可并发调用，返回值不引用 input。
func DecodeInstruction(input []byte) (TokenInstruction, error) {
	if len(input) == 0 {
		return nil, truncated("instruction tag", 1, 0)
	}
	tag, rest := InstructionTag(input[0]), input[1:]

	switch tag {
	case TagInitializeMint, TagInitializeMint2:
		return decodeInitializeMint(tag, rest)

	case TagInitializeMultisig, TagInitializeMultisig2:
		m, _, err := DecodeU8(rest)
		if err != nil {
			return nil, err
		}
		if tag == TagInitializeMultisig {
			return InitializeMultisig{M: m}, nil
		}
		return InitializeMultisig2{M: m}, nil

	case TagTransfer, TagApprove, TagMintTo, TagBurn, TagAmountToUiAmount:
		amount, _, err := DecodeU64(rest)
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagTransfer:
			return Transfer{Amount: amount}, nil
		case TagApprove:
			return Approve{Amount: amount}, nil
		case TagMintTo:
			return MintTo{Amount: amount}, nil
		case TagBurn:
			return Burn{Amount: amount}, nil
		default:
			return AmountToUiAmount{Amount: amount}, nil
		}

	case TagTransferChecked, TagApproveChecked, TagMintToChecked, TagBurnChecked:
		amount, decimals, _, err := DecodeAmountDecimals(rest)
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagTransferChecked:
			return TransferChecked{Amount: amount, Decimals: decimals}, nil
		case TagApproveChecked:
			return ApproveChecked{Amount: amount, Decimals: decimals}, nil
		case TagMintToChecked:
			return MintToChecked{Amount: amount, Decimals: decimals}, nil
		default:
			return BurnChecked{Amount: amount, Decimals: decimals}, nil
		}

	case TagInitializeAccount2, TagInitializeAccount3, TagInitializePermanentDelegate:
		key, _, err := DecodePubkey(rest)
		if err != nil {
			return nil, err
		}
		switch tag {
		case TagInitializeAccount2:
			return InitializeAccount2{Owner: key}, nil
		case TagInitializeAccount3:
			return InitializeAccount3{Owner: key}, nil
		default:
			return InitializePermanentDelegate{Delegate: key}, nil
		}

	case TagSetAuthority:
		code, rest, err := DecodeU8(rest)
		if err != nil {
			return nil, err
		}
		authorityType, err := AuthorityTypeFromByte(code)
		if err != nil {
			return nil, err
		}
		newAuthority, _, err := DecodePubkeyOption(rest)
		if err != nil {
			return nil, err
		}
		return SetAuthority{AuthorityType: authorityType, NewAuthority: newAuthority}, nil

	case TagInitializeMintCloseAuthority:
		closeAuthority, _, err := DecodePubkeyOption(rest)
		if err != nil {
			return nil, err
		}
		return InitializeMintCloseAuthority{CloseAuthority: closeAuthority}, nil

	case TagGetAccountDataSize, TagReallocate:
		extensionTypes, err := DecodeExtensionTypes(rest)
		if err != nil {
			return nil, err
		}
		if tag == TagGetAccountDataSize {
			return GetAccountDataSize{ExtensionTypes: extensionTypes}, nil
		}
		return Reallocate{ExtensionTypes: extensionTypes}, nil

	case TagUiAmountToAmount:
		if !utf8.Valid(rest) {
			return nil, fmt.Errorf("%w: ui amount is not valid utf-8", ErrInvalidTextEncoding)
		}
		// string 转换会拷贝底层字节
		return UiAmountToAmount{UiAmount: string(rest)}, nil

	case TagTransferFeeExtension:
		feeIx, _, err := DecodeTransferFeeInstruction(rest)
		if err != nil {
			return nil, err
		}
		return TransferFeeExtension{Instruction: feeIx}, nil

	case TagInitializeAccount:
		return InitializeAccount{}, nil
	case TagRevoke:
		return Revoke{}, nil
	case TagCloseAccount:
		return CloseAccount{}, nil
	case TagFreezeAccount:
		return FreezeAccount{}, nil
	case TagThawAccount:
		return ThawAccount{}, nil
	case TagSyncNative:
		return SyncNative{}, nil
	case TagInitializeImmutableOwner:
		return InitializeImmutableOwner{}, nil
	case TagConfidentialTransferExtension:
		return ConfidentialTransferExtension{}, nil
	case TagDefaultAccountStateExtension:
		return DefaultAccountStateExtension{}, nil
	case TagMemoTransferExtension:
		return MemoTransferExtension{}, nil
	case TagCreateNativeMint:
		return CreateNativeMint{}, nil
	case TagInitializeNonTransferableMint:
		return InitializeNonTransferableMint{}, nil
	case TagInterestBearingMintExtension:
		return InterestBearingMintExtension{}, nil
	case TagCpiGuardExtension:
		return CpiGuardExtension{}, nil
	case TagTransferHookExtension:
		return TransferHookExtension{}, nil
	case TagConfidentialTransferFeeExtension:
		return ConfidentialTransferFeeExtension{}, nil
	case TagWithdrawExcessLamports:
		return WithdrawExcessLamports{}, nil
	case TagMetadataPointerExtension:
		return MetadataPointerExtension{}, nil

	default:
		return nil, &UnknownTagError{Scope: "instruction", Tag: uint8(tag)}
	}
}

// decodeInitializeMint InitializeMint / InitializeMint2 共用布局：
// decimals(u8) + mint authority(32) + COption<freeze authority>
func decodeInitializeMint(tag InstructionTag, input []byte) (TokenInstruction, error) {
	decimals, rest, err := DecodeU8(input)
	if err != nil {
		return nil, err
	}
	mintAuthority, rest, err := DecodePubkey(rest)
	if err != nil {
		return nil, err
	}
	freezeAuthority, _, err := DecodePubkeyOption(rest)
	if err != nil {
		return nil, err
	}
	if tag == TagInitializeMint {
		return InitializeMint{Decimals: decimals, MintAuthority: mintAuthority, FreezeAuthority: freezeAuthority}, nil
	}
	return InitializeMint2{Decimals: decimals, MintAuthority: mintAuthority, FreezeAuthority: freezeAuthority}, nil
}
