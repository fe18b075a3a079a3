package svc

import (
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"token-decoder-sol/internal/config"
	"token-decoder-sol/internal/logic/ixparser"
	"token-decoder-sol/internal/mq"
	"token-decoder-sol/pkg/logger"
)

// GrpcServiceContext 包含 gRPC 解码服务共享的资源
type GrpcServiceContext struct {
	Config   config.GrpcConfig
	Producer *kafka.Producer
	Parser   *ixparser.Parser
}

// NewGrpcServiceContext 创建一个新的 gRPC 服务上下文
func NewGrpcServiceContext(c config.GrpcConfig) (*GrpcServiceContext, error) {
	parser, err := ixparser.NewParser(c.DecodeConf.Programs)
	if err != nil {
		return nil, fmt.Errorf("init parser: %w", err)
	}

	producer, err := mq.NewKafkaProducer(c.KafkaProducerConf.ToKafkaOption())
	if err != nil {
		logger.Errorf("Kafka producer 初始化失败: %v", err)
		return nil, err
	}

	logger.Infof("gRPC 服务上下文初始化完成, programs=%v", parser.ProgramIDs())
	return &GrpcServiceContext{
		Config:   c,
		Producer: producer,
		Parser:   parser,
	}, nil
}

// Close 关闭服务上下文中的资源
func (ctx *GrpcServiceContext) Close() {
	if ctx.Producer != nil {
		ctx.Producer.Flush(3000)
		ctx.Producer.Close()
	}
}
