package consts

import "token-decoder-sol/pkg/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	TokenProgramStr     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

// 配置中使用的程序名
const (
	ProgramNameToken     = "token"
	ProgramNameToken2022 = "token2022"
)

var (
	TokenProgram     = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022 = types.PubkeyFromBase58(TokenProgram2022Str)
)

// ProgramIDByName 配置名 → 程序 ID
var ProgramIDByName = map[string]types.Pubkey{
	ProgramNameToken:     TokenProgram,
	ProgramNameToken2022: TokenProgram2022,
}
