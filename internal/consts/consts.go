package consts

import "runtime"

const (
	// RecordTypeDecodedInstructions Kafka 消息头部的记录类型：解码后的指令列表
	RecordTypeDecodedInstructions uint32 = 1
)

// CpuCount 表示逻辑 CPU 核心数，用于控制并发任务调度上限
var CpuCount = runtime.NumCPU()
