package config

import (
	"token-decoder-sol/internal/mq"
	"token-decoder-sol/pkg/logger"
)

type LogConfig struct {
	Format   string `json:"format,default=console,options=console|json"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional"`                            // 日志目录（可为相对路径或绝对路径）
	Level    string `json:"level,default=info"`                          // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional"`                           // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// KafkaProducerConfig 表示 Kafka 生产者相关配置
type KafkaProducerConfig struct {
	Brokers   string `json:"brokers"`                    // Kafka broker 地址，多个用英文逗号分隔
	BatchSize int    `json:"batch_size,default=32768"`   // 批处理大小（单位字节）
	LingerMs  int    `json:"linger_ms,default=5"`        // 批处理最大延迟（毫秒）
	Topic     string `json:"topic,default=token2022-ix"` // 解码结果的 Kafka topic
	// Partitions topic 的分区数，记录按首个账户分区
	Partitions int `json:"partitions,default=8"`
	// SendTimeoutMs 单条消息发送到 Kafka 并等待 ack 的超时时间
	SendTimeoutMs int `json:"send_timeout_ms,default=3000"`
}

func (c *KafkaProducerConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics: []mq.TopicOption{
			{Topic: c.Topic, Partitions: c.Partitions},
		},
	}
}

// DecodeConfig 指令解码相关配置
type DecodeConfig struct {
	// Programs 需要解码的程序，可选 token / token2022，为空时只解码 token2022
	Programs []string `json:"programs,optional"`
	// IncludeFailedTx 是否解码执行失败的交易，默认跳过
	IncludeFailedTx bool `json:"include_failed_tx,optional"`
	// Workers 并发解码的协程数，<=0 时取 CPU 核数 + 2
	Workers int `json:"workers,optional"`
	// BlockChanSize 区块缓冲通道长度
	BlockChanSize int `json:"block_chan_size,default=200"`
}

// GrpcConfig 是主配置结构体，用于驱动解码服务
type GrpcConfig struct {
	LogConf           LogConfig           `json:"logger"`         // 日志配置
	KafkaProducerConf KafkaProducerConfig `json:"kafka_producer"` // Kafka 生产者配置
	DecodeConf        DecodeConfig        `json:"decode"`         // 解码配置

	// gRPC 客户端连接相关配置
	Grpc struct {
		Endpoint string `json:"endpoint"`         // gRPC 服务端地址
		XToken   string `json:"x_token,optional"` // x-token 认证

		// 应用级逻辑心跳（ping）配置
		StreamPingIntervalSec int `json:"stream_ping_interval_sec,default=10"` // 应用层 ping 心跳间隔（秒）

		// gRPC Keepalive 底层连接检测配置
		KeepalivePingIntervalSec int `json:"keepalive_ping_interval_sec,default=10"` // 底层 keepalive 间隔（秒）
		KeepalivePingTimeoutSec  int `json:"keepalive_ping_timeout_sec,default=5"`   // 底层 keepalive 超时（秒）

		// gRPC 窗口大小调优（用于大数据流推送）
		InitialWindowSize     int `json:"initial_window_size,default=1073741824"`      // 单流窗口大小（字节）
		InitialConnWindowSize int `json:"initial_conn_window_size,default=1073741824"` // 整体连接窗口大小（字节）

		// 消息体大小限制
		MaxCallSendMsgSize int `json:"max_call_send_msg_size,default=67108864"` // 单条消息最大发送字节数
		MaxCallRecvMsgSize int `json:"max_call_recv_msg_size,default=67108864"` // 单条消息最大接收字节数

		// 超时与重连策略
		ReconnectIntervalSec int  `json:"reconnect_interval_sec,default=2"`  // 重连最小间隔（秒）
		ConnectTimeoutSec    int  `json:"connect_timeout_sec,default=10"`    // 连接建立超时（秒）
		SendTimeoutSec       int  `json:"send_timeout_sec,default=5"`        // 发送超时（秒）
		BlockRecvTimeoutSec  int  `json:"block_recv_timeout_sec,default=30"` // 超过该时间未收到 block 则重连（秒）
		Insecure             bool `json:"insecure,optional"`                 // 不使用 TLS（本地调试）
	} `json:"grpc"`
}
