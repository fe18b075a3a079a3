package grpc

import (
	"context"
	"errors"
	"time"

	pb "github.com/rpcpool/yellowstone-grpc/examples/golang/proto"
	"github.com/zeromicro/go-zero/core/logx"

	"token-decoder-sol/internal/config"
	"token-decoder-sol/internal/consts"
	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/internal/logic/dispatcher"
	"token-decoder-sol/internal/logic/ixparser"
	"token-decoder-sol/internal/logic/txadapter"
	"token-decoder-sol/internal/mq"
	"token-decoder-sol/internal/svc"
	"token-decoder-sol/pkg/utils"
)

type BlockProcessor struct {
	conf      config.GrpcConfig
	parser    *ixparser.Parser
	producer  mq.Producer
	blockChan chan *pb.SubscribeUpdateBlock // 接收 block 的 channel
	ctx       context.Context
	cancel    func(err error)
	logx.Logger
}

// blockStats 单个区块的处理统计
type blockStats struct {
	TotalTxs     int
	DecodedTxs   int
	Instructions int
	Failed       int
	SentJobs     int
	FailedJobs   int
}

func NewBlockProcessor(sc *svc.GrpcServiceContext, blockChan chan *pb.SubscribeUpdateBlock) *BlockProcessor {
	return newBlockProcessor(sc.Config, sc.Parser, sc.Producer, blockChan)
}

func newBlockProcessor(
	conf config.GrpcConfig,
	parser *ixparser.Parser,
	producer mq.Producer,
	blockChan chan *pb.SubscribeUpdateBlock,
) *BlockProcessor {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &BlockProcessor{
		conf:      conf,
		parser:    parser,
		producer:  producer,
		blockChan: blockChan,
		Logger:    logx.WithContext(ctx).WithFields(logx.Field("service", "block_processor")),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (p *BlockProcessor) Start() {
	for {
		select {
		case <-p.ctx.Done():
			return // 退出
		case block, ok := <-p.blockChan:
			if !ok {
				return
			}
			p.procBlock(block)
			if len(p.blockChan) > 10 {
				p.Debugf("block chan len:%v", len(p.blockChan))
			}
		}
	}
}

func (p *BlockProcessor) Stop() {
	p.cancel(errors.New("service stop"))
}

func (p *BlockProcessor) workers() int {
	if p.conf.DecodeConf.Workers > 0 {
		return p.conf.DecodeConf.Workers
	}
	return consts.CpuCount + 2
}

func (p *BlockProcessor) procBlock(block *pb.SubscribeUpdateBlock) blockStats {
	startTime := time.Now()
	defer func() {
		p.Infof("区块处理总耗时: %v, slot: %d", time.Since(startTime), block.Slot)
	}()

	// 1. 过滤交易
	includeFailed := p.conf.DecodeConf.IncludeFailedTx
	validTxs := make([]*pb.SubscribeUpdateTransactionInfo, 0, len(block.Transactions))
	for _, tx := range block.Transactions {
		if txadapter.ShouldDecodeGrpcTx(tx, includeFailed) {
			validTxs = append(validTxs, tx)
		}
	}

	// 2. 构造上下文
	txCtx := buildTxContext(block)

	// 3. 并发解码
	parseStart := time.Now()
	results := utils.ParallelMap(validTxs, p.workers(), func(tx *pb.SubscribeUpdateTransactionInfo) core.ParsedTxResult {
		return p.parseTx(txCtx, tx)
	})
	p.Debugf("指令解码耗时: %v", time.Since(parseStart))

	stats := blockStats{TotalTxs: len(block.Transactions), DecodedTxs: len(validTxs)}
	for _, res := range results {
		stats.Failed += res.Failed
	}
	if stats.Failed > 0 {
		p.Errorf("slot %d 解码失败指令数: %d", block.Slot, stats.Failed)
	}

	// 4. 分区打包并发送
	kafkaConf := p.conf.KafkaProducerConf
	jobs, total, err := dispatcher.BuildDecodedKafkaJobs(block.Slot, kafkaConf.Topic, kafkaConf.Partitions, results)
	stats.Instructions = total
	if err != nil {
		p.Errorf("slot %d 构造 Kafka 消息失败: %v", block.Slot, err)
		return stats
	}
	p.Infof("总tx数量: %v, 有效tx数量: %v, 解码指令数量: %v", stats.TotalTxs, stats.DecodedTxs, total)
	if len(jobs) == 0 {
		return stats
	}

	ok, failed := mq.SendKafkaJobs(p.ctx, p.producer, jobs, time.Duration(kafkaConf.SendTimeoutMs)*time.Millisecond)
	stats.SentJobs = len(ok)
	stats.FailedJobs = len(failed)
	for _, f := range failed {
		p.Errorf("slot %d partition %d 发送失败: %v", block.Slot, f.Job.Partition, f.Err)
	}
	return stats
}

func (p *BlockProcessor) parseTx(txCtx *core.TxContext, tx *pb.SubscribeUpdateTransactionInfo) core.ParsedTxResult {
	adaptedTx, err := txadapter.AdaptGrpcTx(txCtx, tx)
	if err != nil {
		p.Errorf("slot %d tx %d 适配失败: %v", txCtx.Slot, tx.Index, err)
		return core.ParsedTxResult{TxIndex: int(tx.Index)}
	}
	return p.parser.ExtractFromTx(adaptedTx)
}

func buildTxContext(block *pb.SubscribeUpdateBlock) *core.TxContext {
	txCtx := &core.TxContext{
		Slot:       block.Slot,
		ParentSlot: block.ParentSlot,
	}
	if bt := block.GetBlockTime(); bt != nil {
		txCtx.BlockTime = bt.Timestamp
	}
	if bh := block.GetBlockHeight(); bh != nil {
		txCtx.BlockHeight = bh.BlockHeight
	}
	return txCtx
}
