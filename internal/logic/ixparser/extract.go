package ixparser

import (
	"errors"
	"fmt"
	"runtime/debug"

	"token-decoder-sol/internal/consts"
	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/internal/logic/ixparser/common"
	"token-decoder-sol/internal/logic/ixparser/spltoken"
	"token-decoder-sol/pkg/logger"
	"token-decoder-sol/pkg/types"
)

// Parser 按 ProgramID 把指令路由到对应的 handler
type Parser struct {
	handlers map[types.Pubkey]common.InstructionHandler
}

// NewParser 根据配置的程序名构建路由表，programs 为空时只解码 Token2022
func NewParser(programs []string) (*Parser, error) {
	if len(programs) == 0 {
		programs = []string{consts.ProgramNameToken2022}
	}

	ids := make([]types.Pubkey, 0, len(programs))
	for _, name := range programs {
		id, ok := consts.ProgramIDByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown program name %q", name)
		}
		ids = append(ids, id)
	}

	handlers := make(map[types.Pubkey]common.InstructionHandler, len(ids))
	if err := spltoken.RegisterHandlers(handlers, ids...); err != nil {
		return nil, err
	}
	return &Parser{handlers: handlers}, nil
}

// ProgramIDs 返回已注册的程序，用于构造订阅过滤器
func (p *Parser) ProgramIDs() []string {
	ids := make([]string, 0, len(p.handlers))
	for id := range p.handlers {
		ids = append(ids, id.String())
	}
	return ids
}

// ExtractFromTx 解码交易中所有命中路由表的指令（含 inner 指令）。
// 单条指令失败只记录日志与计数，不影响同一交易中的其他指令。
func (p *Parser) ExtractFromTx(adaptedTx *core.AdaptedTx) (result core.ParsedTxResult) {
	result.TxIndex = int(adaptedTx.TxIndex)

	ctx := common.BuildParserContext(adaptedTx)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[ixparser::ExtractFromTx] panic tx=%s: %+v\nstack: %s", ctx.TxHashString(), r, debug.Stack())
			result.Instructions = nil
		}
	}()

	for _, ix := range adaptedTx.Instructions {
		handler, ok := p.handlers[ix.ProgramID]
		if !ok {
			continue
		}
		decoded, err := handler(ctx, ix)
		if err != nil {
			if errors.Is(err, common.ErrSkipped) {
				logger.Debugf("[ixparser] skip tx=%s ix=%d inner=%d: %v", ctx.TxHashString(), ix.IxIndex, ix.InnerIndex, err)
				continue
			}
			result.Failed++
			logger.Warnf("[ixparser] decode failed tx=%s ix=%d inner=%d program=%s: %v",
				ctx.TxHashString(), ix.IxIndex, ix.InnerIndex, ix.ProgramID, err)
			continue
		}
		result.Instructions = append(result.Instructions, decoded)
	}
	return result
}
