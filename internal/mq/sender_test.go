package mq

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "token-decoder-test"

// fakeProducer 按 topic 决定投递结果，不依赖真实 broker
type fakeProducer struct {
	mu        sync.Mutex
	produced  []*kafka.Message
	produceFn func(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

func (p *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	p.mu.Lock()
	p.produced = append(p.produced, msg)
	p.mu.Unlock()
	return p.produceFn(msg, deliveryChan)
}

func ackAll(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	deliveryChan <- msg
	return nil
}

func TestSendKafkaJobs_AllDelivered(t *testing.T) {
	producer := &fakeProducer{produceFn: ackAll}
	jobs := make([]*KafkaJob, 10)
	for i := range jobs {
		jobs[i] = &KafkaJob{Topic: testTopic, Partition: int32(i % 3), Value: []byte("msg " + strconv.Itoa(i))}
	}

	ok, failed := SendKafkaJobs(context.Background(), producer, jobs, time.Second)
	assert.Len(t, ok, 10)
	assert.Empty(t, failed)
	assert.Len(t, producer.produced, 10)
	for _, msg := range producer.produced {
		assert.Equal(t, testTopic, *msg.TopicPartition.Topic)
	}
}

func TestSendKafkaJobs_Empty(t *testing.T) {
	ok, failed := SendKafkaJobs(context.Background(), &fakeProducer{produceFn: ackAll}, nil, time.Second)
	assert.Empty(t, ok)
	assert.Empty(t, failed)
}

func TestSendKafkaJobs_Failures(t *testing.T) {
	produceErr := errors.New("queue full")
	deliveryErr := kafka.NewError(kafka.ErrMsgTimedOut, "timed out", false)

	producer := &fakeProducer{produceFn: func(msg *kafka.Message, deliveryChan chan kafka.Event) error {
		switch string(msg.Value) {
		case "produce-error":
			return produceErr
		case "delivery-error":
			msg.TopicPartition.Error = deliveryErr
			deliveryChan <- msg
			return nil
		case "no-ack":
			return nil
		default:
			deliveryChan <- msg
			return nil
		}
	}}

	jobs := []*KafkaJob{
		{Topic: testTopic, Value: []byte("fine")},
		{Topic: testTopic, Value: []byte("produce-error")},
		{Topic: testTopic, Value: []byte("delivery-error")},
		{Topic: testTopic, Value: []byte("no-ack")},
	}

	ok, failed := SendKafkaJobs(context.Background(), producer, jobs, 20*time.Millisecond)
	require.Len(t, ok, 1)
	assert.Equal(t, "fine", string(ok[0].Value))
	require.Len(t, failed, 3)

	byValue := make(map[string]error, len(failed))
	for _, f := range failed {
		byValue[string(f.Job.Value)] = f.Err
	}
	assert.ErrorIs(t, byValue["produce-error"], produceErr)
	assert.Equal(t, deliveryErr, byValue["delivery-error"])
	assert.ErrorIs(t, byValue["no-ack"], ErrDeliveryTimeout)
}

func TestSendKafkaJobs_ContextCancelled(t *testing.T) {
	producer := &fakeProducer{produceFn: func(*kafka.Message, chan kafka.Event) error { return nil }}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, failed := SendKafkaJobs(ctx, producer, []*KafkaJob{{Topic: testTopic, Value: []byte("x")}}, time.Minute)
	assert.Empty(t, ok)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, context.Canceled)
}

func TestMissingTopics(t *testing.T) {
	existing := map[string]kafka.TopicMetadata{
		"exists": {Topic: "exists"},
	}
	specs := missingTopics(existing, []TopicOption{
		{Topic: "exists", Partitions: 4},
		{Topic: "new", Partitions: 0},
		{Topic: ""},
	}, 2)

	require.Len(t, specs, 1)
	assert.Equal(t, "new", specs[0].Topic)
	assert.Equal(t, 1, specs[0].NumPartitions)
	assert.Equal(t, 2, specs[0].ReplicationFactor)
}

func TestProducerConfigMapDefaults(t *testing.T) {
	cm := producerConfigMap(KafkaProducerOption{Brokers: "127.0.0.1:9092", LingerMs: -1})

	v, err := cm.Get("batch.size", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBatchSize, v)

	v, err = cm.Get("linger.ms", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultLingerMs, v)

	v, err = cm.Get("bootstrap.servers", nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9092", v)
}

// 需要真实 broker，通过 KAFKA_BROKERS 指定
func TestSendKafkaJobs_RealKafka(t *testing.T) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_BROKERS not set")
	}

	producer, err := NewKafkaProducer(KafkaProducerOption{
		Brokers: brokers,
		Topics:  []TopicOption{{Topic: testTopic, Partitions: 1}},
	})
	require.NoError(t, err)
	defer producer.Close()

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          "token-decoder-test-" + time.Now().Format("20060102150405"),
		"auto.offset.reset": "earliest",
	})
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.Subscribe(testTopic, nil))

	jobs := []*KafkaJob{
		{Topic: testTopic, Value: []byte("test message 1")},
		{Topic: testTopic, Value: []byte("test message 2")},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ok, failed := SendKafkaJobs(ctx, producer, jobs, 5*time.Second)
	assert.Len(t, ok, 2)
	assert.Empty(t, failed)
	producer.Flush(1000)

	received := make(map[string]bool)
	for i := 0; i < 2; i++ {
		msg, err := consumer.ReadMessage(10 * time.Second)
		require.NoError(t, err)
		received[string(msg.Value)] = true
	}
	assert.True(t, received["test message 1"])
	assert.True(t, received["test message 2"])
}
