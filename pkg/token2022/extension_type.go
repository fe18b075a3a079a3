package token2022

import "strconv"

// ExtensionType Mint / TokenAccount 可选扩展种类，线上为 2 字节小端编码。
// 只包含生产环境的取值；合约测试夹具使用的 u16::MAX-2 ~ u16::MAX 不属于合法集合。
type ExtensionType uint16

const (
	ExtensionTypeUninitialized ExtensionType = iota
	ExtensionTypeTransferFeeConfig
	ExtensionTypeTransferFeeAmount
	ExtensionTypeMintCloseAuthority
	ExtensionTypeConfidentialTransferMint
	ExtensionTypeConfidentialTransferAccount
	ExtensionTypeDefaultAccountState
	ExtensionTypeImmutableOwner
	ExtensionTypeMemoTransfer
	ExtensionTypeNonTransferable
	ExtensionTypeInterestBearingConfig
	ExtensionTypeCpiGuard
	ExtensionTypePermanentDelegate
	ExtensionTypeNonTransferableAccount
	ExtensionTypeTransferHook
	ExtensionTypeTransferHookAccount
	ExtensionTypeConfidentialTransferFeeConfig
	ExtensionTypeConfidentialTransferFeeAmount
	ExtensionTypeMetadataPointer
	ExtensionTypeTokenMetadata

	extensionTypeCount
)

var extensionTypeNames = [extensionTypeCount]string{
	"uninitialized",
	"transferFeeConfig",
	"transferFeeAmount",
	"mintCloseAuthority",
	"confidentialTransferMint",
	"confidentialTransferAccount",
	"defaultAccountState",
	"immutableOwner",
	"memoTransfer",
	"nonTransferable",
	"interestBearingConfig",
	"cpiGuard",
	"permanentDelegate",
	"nonTransferableAccount",
	"transferHook",
	"transferHookAccount",
	"confidentialTransferFeeConfig",
	"confidentialTransferFeeAmount",
	"metadataPointer",
	"tokenMetadata",
}

// ExtensionTypeFromCode 校验 u16 编码是否为已定义的扩展类型
func ExtensionTypeFromCode(code uint16) (ExtensionType, error) {
	if code >= uint16(extensionTypeCount) {
		return 0, &InvalidEnumCodeError{Enum: "extension type", Code: code}
	}
	return ExtensionType(code), nil
}

func (e ExtensionType) IsValid() bool {
	return e < extensionTypeCount
}

func (e ExtensionType) String() string {
	if !e.IsValid() {
		return "ExtensionType(" + strconv.Itoa(int(e)) + ")"
	}
	return extensionTypeNames[e]
}

func (e ExtensionType) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return []byte(strconv.Itoa(int(e))), nil
	}
	return []byte(extensionTypeNames[e]), nil
}
