package token2022

import "strconv"

// AuthorityType 指定 SetAuthority 要变更的权限种类，线上占 1 字节，合法范围 0~12。
type AuthorityType uint8

const (
	AuthorityTypeMintTokens                    AuthorityType = iota // Mint 铸币权限
	AuthorityTypeFreezeAccount                                      // 冻结账户权限
	AuthorityTypeAccountOwner                                       // TokenAccount 所有者
	AuthorityTypeCloseAccount                                       // 关闭 TokenAccount 的权限
	AuthorityTypeTransferFeeConfig                                  // 修改转账手续费配置
	AuthorityTypeWithheldWithdraw                                   // 提取预扣手续费
	AuthorityTypeCloseMint                                          // 关闭 Mint
	AuthorityTypeInterestRate                                       // 修改利率
	AuthorityTypePermanentDelegate                                  // 永久委托
	AuthorityTypeConfidentialTransferMint                           // 机密转账 Mint 配置
	AuthorityTypeTransferHookProgramId                              // TransferHook 程序 ID
	AuthorityTypeConfidentialTransferFeeConfig                      // 机密转账手续费配置
	AuthorityTypeMetadataPointer                                    // MetadataPointer 地址

	authorityTypeCount
)

var authorityTypeNames = [authorityTypeCount]string{
	"mintTokens",
	"freezeAccount",
	"accountOwner",
	"closeAccount",
	"transferFeeConfig",
	"withheldWithdraw",
	"closeMint",
	"interestRate",
	"permanentDelegate",
	"confidentialTransferMint",
	"transferHookProgramId",
	"confidentialTransferFeeConfig",
	"metadataPointer",
}

// AuthorityTypeFromByte 将线上字节映射为 AuthorityType，超出范围返回 ErrInvalidEnumCode
func AuthorityTypeFromByte(b uint8) (AuthorityType, error) {
	if b >= uint8(authorityTypeCount) {
		return 0, &InvalidEnumCodeError{Enum: "authority type", Code: uint16(b)}
	}
	return AuthorityType(b), nil
}

func (a AuthorityType) IsValid() bool {
	return a < authorityTypeCount
}

func (a AuthorityType) String() string {
	if !a.IsValid() {
		return "AuthorityType(" + strconv.Itoa(int(a)) + ")"
	}
	return authorityTypeNames[a]
}

func (a AuthorityType) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return []byte(strconv.Itoa(int(a))), nil
	}
	return []byte(authorityTypeNames[a]), nil
}
