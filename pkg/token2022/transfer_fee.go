package token2022

import (
	"strconv"

	"token-decoder-sol/pkg/types"
)

// 合约源代码:
// https://github.com/solana-program/token-2022/blob/main/program/src/extension/transfer_fee/instruction.rs

// TransferFeeTag TransferFeeExtension(26) 之后的子指令标志字节
type TransferFeeTag uint8

const (
	TransferFeeTagInitializeTransferFeeConfig TransferFeeTag = iota
	TransferFeeTagTransferCheckedWithFee
	TransferFeeTagWithdrawWithheldTokensFromMint
	TransferFeeTagWithdrawWithheldTokensFromAccounts
	TransferFeeTagHarvestWithheldTokensToMint
	TransferFeeTagSetTransferFee

	TransferFeeTagCount
)

var transferFeeTagNames = [TransferFeeTagCount]string{
	"initializeTransferFeeConfig",
	"transferCheckedWithFee",
	"withdrawWithheldTokensFromMint",
	"withdrawWithheldTokensFromAccounts",
	"harvestWithheldTokensToMint",
	"setTransferFee",
}

func (t TransferFeeTag) IsValid() bool {
	return t < TransferFeeTagCount
}

func (t TransferFeeTag) String() string {
	if !t.IsValid() {
		return "TransferFeeTag(" + strconv.Itoa(int(t)) + ")"
	}
	return transferFeeTagNames[t]
}

// TransferFeeInstruction 转账手续费扩展的子指令（封闭集合）
type TransferFeeInstruction interface {
	Tag() TransferFeeTag
	isTransferFeeInstruction()
}

// InitializeTransferFeeConfig 必须在 InitializeMint 之前执行。
// TransferFeeBasisPoints 以万分之一为单位；MaximumFee 为单笔手续费上限。
type InitializeTransferFeeConfig struct {
	TransferFeeConfigAuthority types.OptionalPubkey `json:"transferFeeConfigAuthority" yaml:"transferFeeConfigAuthority"`
	WithdrawWithheldAuthority  types.OptionalPubkey `json:"withdrawWithheldAuthority" yaml:"withdrawWithheldAuthority"`
	TransferFeeBasisPoints     uint16               `json:"transferFeeBasisPoints" yaml:"transferFeeBasisPoints"`
	MaximumFee                 uint64               `json:"maximumFee" yaml:"maximumFee"`
}

// TransferCheckedWithFee Fee 必须与按当前 epoch 费率计算的结果一致，否则链上执行失败。
//
// #0 - [writable] 来源 TokenAccount
// #1 - []         Mint
// #2 - [writable] 目标 TokenAccount
// #3 - [signer]   owner / delegate
type TransferCheckedWithFee struct {
	Amount   uint64 `json:"amount" yaml:"amount"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
	Fee      uint64 `json:"fee" yaml:"fee"`
}

type WithdrawWithheldTokensFromMint struct{}

// WithdrawWithheldTokensFromAccounts NumTokenAccounts 为账户列表末尾来源账户的数量
type WithdrawWithheldTokensFromAccounts struct {
	NumTokenAccounts uint8 `json:"numTokenAccounts" yaml:"numTokenAccounts"`
}

type HarvestWithheldTokensToMint struct{}

// SetTransferFee 新费率在下一个 epoch 生效
type SetTransferFee struct {
	TransferFeeBasisPoints uint16 `json:"transferFeeBasisPoints" yaml:"transferFeeBasisPoints"`
	MaximumFee             uint64 `json:"maximumFee" yaml:"maximumFee"`
}

func (InitializeTransferFeeConfig) Tag() TransferFeeTag {
	return TransferFeeTagInitializeTransferFeeConfig
}
func (TransferCheckedWithFee) Tag() TransferFeeTag { return TransferFeeTagTransferCheckedWithFee }
func (WithdrawWithheldTokensFromMint) Tag() TransferFeeTag {
	return TransferFeeTagWithdrawWithheldTokensFromMint
}
func (WithdrawWithheldTokensFromAccounts) Tag() TransferFeeTag {
	return TransferFeeTagWithdrawWithheldTokensFromAccounts
}
func (HarvestWithheldTokensToMint) Tag() TransferFeeTag {
	return TransferFeeTagHarvestWithheldTokensToMint
}
func (SetTransferFee) Tag() TransferFeeTag { return TransferFeeTagSetTransferFee }

func (InitializeTransferFeeConfig) isTransferFeeInstruction()        {}
func (TransferCheckedWithFee) isTransferFeeInstruction()             {}
func (WithdrawWithheldTokensFromMint) isTransferFeeInstruction()     {}
func (WithdrawWithheldTokensFromAccounts) isTransferFeeInstruction() {}
func (HarvestWithheldTokensToMint) isTransferFeeInstruction()        {}
func (SetTransferFee) isTransferFeeInstruction()                     {}

// DecodeTransferFeeInstruction 解析转账手续费子指令，返回未消费的剩余字节。
func DecodeTransferFeeInstruction(input []byte) (TransferFeeInstruction, []byte, error) {
	if len(input) == 0 {
		return nil, nil, truncated("transfer fee tag", 1, 0)
	}
	tag, rest := TransferFeeTag(input[0]), input[1:]

	switch tag {
	case TransferFeeTagInitializeTransferFeeConfig:
		configAuthority, rest, err := DecodePubkeyOption(rest)
		if err != nil {
			return nil, nil, err
		}
		withdrawAuthority, rest, err := DecodePubkeyOption(rest)
		if err != nil {
			return nil, nil, err
		}
		basisPoints, rest, err := DecodeU16(rest)
		if err != nil {
			return nil, nil, err
		}
		maximumFee, rest, err := DecodeU64(rest)
		if err != nil {
			return nil, nil, err
		}
		return InitializeTransferFeeConfig{
			TransferFeeConfigAuthority: configAuthority,
			WithdrawWithheldAuthority:  withdrawAuthority,
			TransferFeeBasisPoints:     basisPoints,
			MaximumFee:                 maximumFee,
		}, rest, nil

	case TransferFeeTagTransferCheckedWithFee:
		amount, decimals, rest, err := DecodeAmountDecimals(rest)
		if err != nil {
			return nil, nil, err
		}
		fee, rest, err := DecodeU64(rest)
		if err != nil {
			return nil, nil, err
		}
		return TransferCheckedWithFee{Amount: amount, Decimals: decimals, Fee: fee}, rest, nil

	case TransferFeeTagWithdrawWithheldTokensFromMint:
		return WithdrawWithheldTokensFromMint{}, rest, nil

	case TransferFeeTagWithdrawWithheldTokensFromAccounts:
		num, rest, err := DecodeU8(rest)
		if err != nil {
			return nil, nil, err
		}
		return WithdrawWithheldTokensFromAccounts{NumTokenAccounts: num}, rest, nil

	case TransferFeeTagHarvestWithheldTokensToMint:
		return HarvestWithheldTokensToMint{}, rest, nil

	case TransferFeeTagSetTransferFee:
		basisPoints, rest, err := DecodeU16(rest)
		if err != nil {
			return nil, nil, err
		}
		maximumFee, rest, err := DecodeU64(rest)
		if err != nil {
			return nil, nil, err
		}
		return SetTransferFee{TransferFeeBasisPoints: basisPoints, MaximumFee: maximumFee}, rest, nil

	default:
		return nil, nil, &UnknownTagError{Scope: "transfer fee instruction", Tag: uint8(tag)}
	}
}
