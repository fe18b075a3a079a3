package txadapter

import (
	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
)

const signatureBytes = 64

// IsWellFormedGrpcTx 结构完整性检查：消息、签名、meta 均存在且签名长度正确
func IsWellFormedGrpcTx(tx *pb.SubscribeUpdateTransactionInfo) bool {
	return tx != nil &&
		tx.Transaction != nil &&
		tx.Transaction.Message != nil &&
		len(tx.Transaction.Signatures) > 0 &&
		len(tx.Transaction.Signatures[0]) == signatureBytes &&
		tx.Meta != nil
}

// ShouldDecodeGrpcTx 过滤 vote 交易；includeFailed 为 false 时同时跳过执行失败的交易
func ShouldDecodeGrpcTx(tx *pb.SubscribeUpdateTransactionInfo, includeFailed bool) bool {
	if !IsWellFormedGrpcTx(tx) || tx.IsVote {
		return false
	}
	return includeFailed || tx.Meta.Err == nil
}
