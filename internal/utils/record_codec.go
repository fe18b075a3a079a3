package utils

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/jsonx"
)

// RecordTypeBytes 消息头部记录类型的长度
const RecordTypeBytes = 4

var ErrShortRecord = errors.New("record shorter than type prefix")

// EncodeRecord 将 v 编码为带类型前缀的消息体：
// - 前 4 字节为记录类型（uint32，小端序）
// - 后续为 JSON 数据
func EncodeRecord(recordType uint32, v any) ([]byte, error) {
	body, err := jsonx.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("EncodeRecord: marshal %T: %w", v, err)
	}

	buf := make([]byte, RecordTypeBytes, RecordTypeBytes+len(body))
	binary.LittleEndian.PutUint32(buf, recordType)
	return append(buf, body...), nil
}

// DecodeRecord 拆出记录类型，并把 JSON 部分解到 v 中（v 为 nil 时只返回类型）
func DecodeRecord(data []byte, v any) (uint32, error) {
	if len(data) < RecordTypeBytes {
		return 0, ErrShortRecord
	}
	recordType := binary.LittleEndian.Uint32(data[:RecordTypeBytes])
	if v == nil {
		return recordType, nil
	}
	if err := jsonx.Unmarshal(data[RecordTypeBytes:], v); err != nil {
		return recordType, fmt.Errorf("DecodeRecord: unmarshal %T: %w", v, err)
	}
	return recordType, nil
}
