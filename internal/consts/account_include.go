package consts

// GrpcAccountInclude 用于 gRPC 区块订阅过滤器的默认值，只保留涉及 Token 程序的交易
var GrpcAccountInclude = []string{
	TokenProgramStr,
	TokenProgram2022Str,
}
