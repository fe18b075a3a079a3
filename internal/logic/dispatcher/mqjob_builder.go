package dispatcher

import (
	"fmt"

	"token-decoder-sol/internal/consts"
	"token-decoder-sol/internal/logic/core"
	"token-decoder-sol/internal/mq"
	"token-decoder-sol/internal/utils"
)

// BuildDecodedKafkaJobs 将一个区块内所有解码结果按分区分组，每个分区生成一个 KafkaJob。
// 分区由首个账户决定，同一账户的指令落在同一分区，分区内保持交易与指令顺序。
func BuildDecodedKafkaJobs(
	slot uint64,
	topic string,
	partitions int,
	results []core.ParsedTxResult,
) ([]*mq.KafkaJob, int, error) {
	if partitions <= 0 {
		partitions = 1
	}

	total := 0
	for _, res := range results {
		total += len(res.Instructions)
	}
	if total == 0 {
		return nil, 0, nil
	}

	buckets := make([][]*core.DecodedInstruction, partitions)
	capacity := utils.CalcCapPerPartition(total, partitions, 10)
	for i := range buckets {
		buckets[i] = make([]*core.DecodedInstruction, 0, capacity)
	}

	for _, res := range results {
		for _, d := range res.Instructions {
			pid := utils.PartitionHashBytes(d.PartitionKey(), uint32(partitions))
			buckets[pid] = append(buckets[pid], d)
		}
	}

	jobs := make([]*mq.KafkaJob, 0, len(buckets))
	for pid, list := range buckets {
		if len(list) == 0 {
			continue
		}
		value, err := utils.EncodeRecord(consts.RecordTypeDecodedInstructions, list)
		if err != nil {
			return nil, 0, fmt.Errorf("slot %d partition %d: %w", slot, pid, err)
		}
		jobs = append(jobs, &mq.KafkaJob{
			Topic:     topic,
			Partition: int32(pid),
			Key:       fmt.Appendf(nil, "%d", slot),
			Value:     value,
		})
	}
	return jobs, total, nil
}
