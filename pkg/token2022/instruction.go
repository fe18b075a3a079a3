package token2022

import (
	"strconv"

	"token-decoder-sol/pkg/types"
)

// InstructionTag 指令数据首字节，决定后续 payload 布局。
type InstructionTag uint8

const (
	TagInitializeMint InstructionTag = iota
	TagInitializeAccount
	TagInitializeMultisig
	TagTransfer
	TagApprove
	TagRevoke
	TagSetAuthority
	TagMintTo
	TagBurn
	TagCloseAccount
	TagFreezeAccount
	TagThawAccount
	TagTransferChecked
	TagApproveChecked
	TagMintToChecked
	TagBurnChecked
	TagInitializeAccount2
	TagSyncNative
	TagInitializeAccount3
	TagInitializeMultisig2
	TagInitializeMint2
	TagGetAccountDataSize
	TagInitializeImmutableOwner
	TagAmountToUiAmount
	TagUiAmountToAmount
	TagInitializeMintCloseAuthority
	TagTransferFeeExtension
	TagConfidentialTransferExtension
	TagDefaultAccountStateExtension
	TagReallocate
	TagMemoTransferExtension
	TagCreateNativeMint
	TagInitializeNonTransferableMint
	TagInterestBearingMintExtension
	TagCpiGuardExtension
	TagInitializePermanentDelegate
	TagTransferHookExtension
	TagConfidentialTransferFeeExtension
	TagWithdrawExcessLamports
	TagMetadataPointerExtension

	// InstructionTagCount 已定义的指令数量，>= 该值的标志字节均为未知指令
	InstructionTagCount
)

var instructionTagNames = [InstructionTagCount]string{
	"initializeMint",
	"initializeAccount",
	"initializeMultisig",
	"transfer",
	"approve",
	"revoke",
	"setAuthority",
	"mintTo",
	"burn",
	"closeAccount",
	"freezeAccount",
	"thawAccount",
	"transferChecked",
	"approveChecked",
	"mintToChecked",
	"burnChecked",
	"initializeAccount2",
	"syncNative",
	"initializeAccount3",
	"initializeMultisig2",
	"initializeMint2",
	"getAccountDataSize",
	"initializeImmutableOwner",
	"amountToUiAmount",
	"uiAmountToAmount",
	"initializeMintCloseAuthority",
	"transferFeeExtension",
	"confidentialTransferExtension",
	"defaultAccountStateExtension",
	"reallocate",
	"memoTransferExtension",
	"createNativeMint",
	"initializeNonTransferableMint",
	"interestBearingMintExtension",
	"cpiGuardExtension",
	"initializePermanentDelegate",
	"transferHookExtension",
	"confidentialTransferFeeExtension",
	"withdrawExcessLamports",
	"metadataPointerExtension",
}

func (t InstructionTag) IsValid() bool {
	return t < InstructionTagCount
}

func (t InstructionTag) String() string {
	if !t.IsValid() {
		return "InstructionTag(" + strconv.Itoa(int(t)) + ")"
	}
	return instructionTagNames[t]
}

// TokenInstruction 是所有 Token2022 指令变体的公共接口（封闭集合，仅本包实现）。
type TokenInstruction interface {
	Tag() InstructionTag
	isTokenInstruction()
}

// InstructionName 返回指令的可读名称，TransferFee 扩展会带上子指令名，
// 例如 "transferFeeExtension.transferCheckedWithFee"。
func InstructionName(ix TokenInstruction) string {
	if ix == nil {
		return ""
	}
	if fee, ok := ix.(TransferFeeExtension); ok && fee.Instruction != nil {
		return ix.Tag().String() + "." + fee.Instruction.Tag().String()
	}
	return ix.Tag().String()
}

// InitializeMint 初始化 Mint。
//
// 账户布局：
//
// #0 - [writable] 待初始化的 Mint
// #1 - []         Rent sysvar
type InitializeMint struct {
	Decimals        uint8                `json:"decimals" yaml:"decimals"`
	MintAuthority   types.Pubkey         `json:"mintAuthority" yaml:"mintAuthority"`
	FreezeAuthority types.OptionalPubkey `json:"freezeAuthority" yaml:"freezeAuthority"`
}

// InitializeAccount 初始化 TokenAccount，owner 通过账户列表传入。
//
// #0 - [writable] 待初始化的 TokenAccount
// #1 - []         Mint
// #2 - []         Owner
// #3 - []         Rent sysvar
type InitializeAccount struct{}

// InitializeMultisig M 为所需签名数，取值应在 MinSigners ~ MaxSigners 之间（解码阶段不校验）。
type InitializeMultisig struct {
	M uint8 `json:"m" yaml:"m"`
}

// Transfer 旧版转账，不携带 decimals。
//
// Deprecated: 链上已推荐使用 TransferChecked / TransferCheckedWithFee，这里仅用于解析历史数据。
//
// #0 - [writable] 来源 TokenAccount
// #1 - [writable] 目标 TokenAccount
// #2 - [signer]   来源账户 owner / delegate
type Transfer struct {
	Amount uint64 `json:"amount" yaml:"amount"`
}

type Approve struct {
	Amount uint64 `json:"amount" yaml:"amount"`
}

type Revoke struct{}

// SetAuthority 变更 Mint 或 TokenAccount 的某项权限，NewAuthority 为 None 表示取消该权限。
type SetAuthority struct {
	AuthorityType AuthorityType        `json:"authorityType" yaml:"authorityType"`
	NewAuthority  types.OptionalPubkey `json:"newAuthority" yaml:"newAuthority"`
}

// MintTo
//
// #0 - [writable] Mint
// #1 - [writable] 目标 TokenAccount
// #2 - [signer]   Mint authority
type MintTo struct {
	Amount uint64 `json:"amount" yaml:"amount"`
}

// Burn
//
// #0 - [writable] 来源 TokenAccount
// #1 - [writable] Mint
// #2 - [signer]   owner / delegate
type Burn struct {
	Amount uint64 `json:"amount" yaml:"amount"`
}

type CloseAccount struct{}

type FreezeAccount struct{}

type ThawAccount struct{}

// TransferChecked
//
// #0 - [writable] 来源 TokenAccount
// #1 - []         Mint
// #2 - [writable] 目标 TokenAccount
// #3 - [signer]   owner / delegate
type TransferChecked struct {
	Amount   uint64 `json:"amount" yaml:"amount"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

type ApproveChecked struct {
	Amount   uint64 `json:"amount" yaml:"amount"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

type MintToChecked struct {
	Amount   uint64 `json:"amount" yaml:"amount"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

type BurnChecked struct {
	Amount   uint64 `json:"amount" yaml:"amount"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// InitializeAccount2 与 InitializeAccount 相同，但 owner 放在指令数据中。
type InitializeAccount2 struct {
	Owner types.Pubkey `json:"owner" yaml:"owner"`
}

// SyncNative 将 wrapped SOL 账户的 amount 同步为 lamports 余额。
type SyncNative struct{}

// InitializeAccount3 与 InitializeAccount2 相同，但不需要 Rent sysvar。
type InitializeAccount3 struct {
	Owner types.Pubkey `json:"owner" yaml:"owner"`
}

type InitializeMultisig2 struct {
	M uint8 `json:"m" yaml:"m"`
}

// InitializeMint2 与 InitializeMint 相同，但不需要 Rent sysvar。
type InitializeMint2 struct {
	Decimals        uint8                `json:"decimals" yaml:"decimals"`
	MintAuthority   types.Pubkey         `json:"mintAuthority" yaml:"mintAuthority"`
	FreezeAuthority types.OptionalPubkey `json:"freezeAuthority" yaml:"freezeAuthority"`
}

// GetAccountDataSize 查询带指定扩展的 TokenAccount 所需空间，结果通过 return data 返回。
type GetAccountDataSize struct {
	ExtensionTypes []ExtensionType `json:"extensionTypes" yaml:"extensionTypes"`
}

type InitializeImmutableOwner struct{}

// AmountToUiAmount 将原始数量按 Mint 精度转换为 UI 字符串。
type AmountToUiAmount struct {
	Amount uint64 `json:"amount" yaml:"amount"`
}

// UiAmountToAmount UiAmount 为解码时拷贝出的字符串，不引用输入缓冲区。
type UiAmountToAmount struct {
	UiAmount string `json:"uiAmount" yaml:"uiAmount"`
}

type InitializeMintCloseAuthority struct {
	CloseAuthority types.OptionalPubkey `json:"closeAuthority" yaml:"closeAuthority"`
}

// TransferFeeExtension 转账手续费扩展，payload 为嵌套的 TransferFeeInstruction。
type TransferFeeExtension struct {
	Instruction TransferFeeInstruction `json:"instruction" yaml:"instruction"`
}

// 以下扩展指令只解析到外层标志字节，内部子指令不展开。

type ConfidentialTransferExtension struct{}

type DefaultAccountStateExtension struct{}

// Reallocate 为 TokenAccount 追加扩展所需空间。
//
// #0 - [writable]        TokenAccount
// #1 - [signer writable] 付款账户
// #2 - []                System program
// #3 - [signer]          owner
type Reallocate struct {
	ExtensionTypes []ExtensionType `json:"extensionTypes" yaml:"extensionTypes"`
}

type MemoTransferExtension struct{}

type CreateNativeMint struct{}

type InitializeNonTransferableMint struct{}

type InterestBearingMintExtension struct{}

type CpiGuardExtension struct{}

type InitializePermanentDelegate struct {
	Delegate types.Pubkey `json:"delegate" yaml:"delegate"`
}

type TransferHookExtension struct{}

type ConfidentialTransferFeeExtension struct{}

// WithdrawExcessLamports 取回 Mint / TokenAccount / Multisig 上多余的 lamports。
type WithdrawExcessLamports struct{}

type MetadataPointerExtension struct{}

func (InitializeMint) Tag() InstructionTag                   { return TagInitializeMint }
func (InitializeAccount) Tag() InstructionTag                { return TagInitializeAccount }
func (InitializeMultisig) Tag() InstructionTag               { return TagInitializeMultisig }
func (Transfer) Tag() InstructionTag                         { return TagTransfer }
func (Approve) Tag() InstructionTag                          { return TagApprove }
func (Revoke) Tag() InstructionTag                           { return TagRevoke }
func (SetAuthority) Tag() InstructionTag                     { return TagSetAuthority }
func (MintTo) Tag() InstructionTag                           { return TagMintTo }
func (Burn) Tag() InstructionTag                             { return TagBurn }
func (CloseAccount) Tag() InstructionTag                     { return TagCloseAccount }
func (FreezeAccount) Tag() InstructionTag                    { return TagFreezeAccount }
func (ThawAccount) Tag() InstructionTag                      { return TagThawAccount }
func (TransferChecked) Tag() InstructionTag                  { return TagTransferChecked }
func (ApproveChecked) Tag() InstructionTag                   { return TagApproveChecked }
func (MintToChecked) Tag() InstructionTag                    { return TagMintToChecked }
func (BurnChecked) Tag() InstructionTag                      { return TagBurnChecked }
func (InitializeAccount2) Tag() InstructionTag               { return TagInitializeAccount2 }
func (SyncNative) Tag() InstructionTag                       { return TagSyncNative }
func (InitializeAccount3) Tag() InstructionTag               { return TagInitializeAccount3 }
func (InitializeMultisig2) Tag() InstructionTag              { return TagInitializeMultisig2 }
func (InitializeMint2) Tag() InstructionTag                  { return TagInitializeMint2 }
func (GetAccountDataSize) Tag() InstructionTag               { return TagGetAccountDataSize }
func (InitializeImmutableOwner) Tag() InstructionTag         { return TagInitializeImmutableOwner }
func (AmountToUiAmount) Tag() InstructionTag                 { return TagAmountToUiAmount }
func (UiAmountToAmount) Tag() InstructionTag                 { return TagUiAmountToAmount }
func (InitializeMintCloseAuthority) Tag() InstructionTag     { return TagInitializeMintCloseAuthority }
func (TransferFeeExtension) Tag() InstructionTag             { return TagTransferFeeExtension }
func (ConfidentialTransferExtension) Tag() InstructionTag    { return TagConfidentialTransferExtension }
func (DefaultAccountStateExtension) Tag() InstructionTag     { return TagDefaultAccountStateExtension }
func (Reallocate) Tag() InstructionTag                       { return TagReallocate }
func (MemoTransferExtension) Tag() InstructionTag            { return TagMemoTransferExtension }
func (CreateNativeMint) Tag() InstructionTag                 { return TagCreateNativeMint }
func (InitializeNonTransferableMint) Tag() InstructionTag    { return TagInitializeNonTransferableMint }
func (InterestBearingMintExtension) Tag() InstructionTag     { return TagInterestBearingMintExtension }
func (CpiGuardExtension) Tag() InstructionTag                { return TagCpiGuardExtension }
func (InitializePermanentDelegate) Tag() InstructionTag      { return TagInitializePermanentDelegate }
func (TransferHookExtension) Tag() InstructionTag            { return TagTransferHookExtension }
func (ConfidentialTransferFeeExtension) Tag() InstructionTag { return TagConfidentialTransferFeeExtension }
func (WithdrawExcessLamports) Tag() InstructionTag           { return TagWithdrawExcessLamports }
func (MetadataPointerExtension) Tag() InstructionTag         { return TagMetadataPointerExtension }

func (InitializeMint) isTokenInstruction()                   {}
func (InitializeAccount) isTokenInstruction()                {}
func (InitializeMultisig) isTokenInstruction()               {}
func (Transfer) isTokenInstruction()                         {}
func (Approve) isTokenInstruction()                          {}
func (Revoke) isTokenInstruction()                           {}
func (SetAuthority) isTokenInstruction()                     {}
func (MintTo) isTokenInstruction()                           {}
func (Burn) isTokenInstruction()                             {}
func (CloseAccount) isTokenInstruction()                     {}
func (FreezeAccount) isTokenInstruction()                    {}
func (ThawAccount) isTokenInstruction()                      {}
func (TransferChecked) isTokenInstruction()                  {}
func (ApproveChecked) isTokenInstruction()                   {}
func (MintToChecked) isTokenInstruction()                    {}
func (BurnChecked) isTokenInstruction()                      {}
func (InitializeAccount2) isTokenInstruction()               {}
func (SyncNative) isTokenInstruction()                       {}
func (InitializeAccount3) isTokenInstruction()               {}
func (InitializeMultisig2) isTokenInstruction()              {}
func (InitializeMint2) isTokenInstruction()                  {}
func (GetAccountDataSize) isTokenInstruction()               {}
func (InitializeImmutableOwner) isTokenInstruction()         {}
func (AmountToUiAmount) isTokenInstruction()                 {}
func (UiAmountToAmount) isTokenInstruction()                 {}
func (InitializeMintCloseAuthority) isTokenInstruction()     {}
func (TransferFeeExtension) isTokenInstruction()             {}
func (ConfidentialTransferExtension) isTokenInstruction()    {}
func (DefaultAccountStateExtension) isTokenInstruction()     {}
func (Reallocate) isTokenInstruction()                       {}
func (MemoTransferExtension) isTokenInstruction()            {}
func (CreateNativeMint) isTokenInstruction()                 {}
func (InitializeNonTransferableMint) isTokenInstruction()    {}
func (InterestBearingMintExtension) isTokenInstruction()     {}
func (CpiGuardExtension) isTokenInstruction()                {}
func (InitializePermanentDelegate) isTokenInstruction()      {}
func (TransferHookExtension) isTokenInstruction()            {}
func (ConfidentialTransferFeeExtension) isTokenInstruction() {}
func (WithdrawExcessLamports) isTokenInstruction()           {}
func (MetadataPointerExtension) isTokenInstruction()         {}
