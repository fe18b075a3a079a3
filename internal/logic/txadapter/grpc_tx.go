package txadapter

import (
	"fmt"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"

	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/pkg/types"
)

// buildFullAccountKeys 构造交易中完整的账户 Pubkey 列表。
// 拼接 message.accountKeys 与 Address Lookup Table 中的 writable / readonly 地址，
// 顺序与链上 accountIndex 一致。
func buildFullAccountKeys(accountKeys, loadedWritable, loadedReadonly [][]byte) ([]types.Pubkey, error) {
	total := len(accountKeys) + len(loadedWritable) + len(loadedReadonly)
	pubkeys := make([]types.Pubkey, total)

	i := 0
	for _, group := range [][][]byte{accountKeys, loadedWritable, loadedReadonly} {
		for _, b := range group {
			if len(b) != types.PubkeyBytes {
				return nil, fmt.Errorf("invalid pubkey length %d at account index %d", len(b), i)
			}
			copy(pubkeys[i][:], b)
			i++
		}
	}
	return pubkeys, nil
}

// resolveInstruction 把编译后的账户下标还原为公钥
func resolveInstruction(
	accountKeys []types.Pubkey,
	programIDIndex uint32,
	accountIndexes []byte,
	data []byte,
	ixIndex, innerIndex uint16,
) (*core.AdaptedInstruction, error) {
	if int(programIDIndex) >= len(accountKeys) {
		return nil, fmt.Errorf("ix %d/%d: program index %d out of range (%d keys)",
			ixIndex, innerIndex, programIDIndex, len(accountKeys))
	}
	accounts := make([]types.Pubkey, 0, len(accountIndexes))
	for _, idx := range accountIndexes {
		if int(idx) >= len(accountKeys) {
			return nil, fmt.Errorf("ix %d/%d: account index %d out of range (%d keys)",
				ixIndex, innerIndex, idx, len(accountKeys))
		}
		accounts = append(accounts, accountKeys[idx])
	}
	return &core.AdaptedInstruction{
		IxIndex:    ixIndex,
		InnerIndex: innerIndex,
		ProgramID:  accountKeys[programIDIndex],
		Accounts:   accounts,
		Data:       data,
	}, nil
}

// buildAdaptedInstructions 扁平化解析主指令与 inner 指令：
//   - IxIndex：主指令索引；
//   - InnerIndex：0 表示主指令，1及以上表示对应的 inner 指令序号。
func buildAdaptedInstructions(tx *pb.SubscribeUpdateTransactionInfo, accountKeys []types.Pubkey) ([]*core.AdaptedInstruction, error) {
	rawInstructions := tx.Transaction.Message.Instructions
	rawInners := tx.Meta.InnerInstructions

	instructions := make([]*core.AdaptedInstruction, 0, max(len(rawInstructions)*2, 32))
	innerIndex := 0

	for i, inst := range rawInstructions {
		ix, err := resolveInstruction(accountKeys, inst.ProgramIdIndex, inst.Accounts, inst.Data, uint16(i), 0)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, ix)

		// inner 列表按主指令索引递增排列，每个主指令最多对应一个 inner 块，顺序匹配即可
		if innerIndex < len(rawInners) && int(rawInners[innerIndex].Index) == i {
			for j, inner := range rawInners[innerIndex].Instructions {
				innerIx, err := resolveInstruction(accountKeys, inner.ProgramIdIndex, inner.Accounts, inner.Data, uint16(i), uint16(j+1))
				if err != nil {
					return nil, err
				}
				instructions = append(instructions, innerIx)
			}
			innerIndex++
		}
	}
	return instructions, nil
}

// AdaptGrpcTx 将 gRPC 推送的交易数据展平为 AdaptedTx。
//  1. 构建 accountKeys（含 Address Lookup）；
//  2. 构建指令（主 + inner）；
//  3. 如 panic 会被 recover 并以 error 返回。
func AdaptGrpcTx(txCtx *core.TxContext, tx *pb.SubscribeUpdateTransactionInfo) (_ *core.AdaptedTx, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("AdaptGrpcTx panic: %v", r)
		}
	}()

	if !IsWellFormedGrpcTx(tx) {
		return nil, fmt.Errorf("malformed transaction")
	}

	accountKeys, err := buildFullAccountKeys(
		tx.Transaction.Message.AccountKeys,
		tx.Meta.LoadedWritableAddresses,
		tx.Meta.LoadedReadonlyAddresses,
	)
	if err != nil {
		return nil, fmt.Errorf("buildFullAccountKeys error: %w", err)
	}
	if len(accountKeys) == 0 {
		return nil, fmt.Errorf("invalid transaction: empty accountKeys")
	}

	instructions, err := buildAdaptedInstructions(tx, accountKeys)
	if err != nil {
		return nil, fmt.Errorf("buildAdaptedInstructions error: %w", err)
	}

	return &core.AdaptedTx{
		TxCtx:        txCtx,
		TxIndex:      uint32(tx.Index),
		Signature:    tx.Transaction.Signatures[0],
		Instructions: instructions,
	}, nil
}
