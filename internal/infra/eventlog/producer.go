package eventlog

import (
	"context"
	"log/slog"
	"strconv"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Producer publishes rent intents and completion events. Both topics are
// redundancy/notification channels: a publish failure is the caller's to log
// and swallow, never to propagate into the request path.
type Producer struct {
	producer sarama.SyncProducer
	cfg      config.KafkaConfig
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka producer")
	}
	return &Producer{producer: producer, cfg: cfg}, nil
}

// PublishRentIntent puts a rent intent on the intent topic, keyed by cabinet
// id so all intents for one cabinet land on one partition in order.
func (p *Producer) PublishRentIntent(_ context.Context, taskID string, cabinetID int64, userID uuid.UUID) error {
	payload, err := IntentMessage{
		Op:        OpRent,
		TaskID:    taskID,
		CabinetID: cabinetID,
		UserID:    userID,
	}.encode()
	if err != nil {
		return errs.Wrap(err, "failed to encode rent intent")
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.cfg.IntentTopic,
		Key:   sarama.StringEncoder(strconv.FormatInt(cabinetID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish rent intent")
	}
	return nil
}

// PublishReturned records a return completion on the event topic. Best-effort
// by contract; failures only get logged here.
func (p *Producer) PublishReturned(_ context.Context, cabinetID int64, userID uuid.UUID) {
	payload, err := IntentMessage{
		Op:        OpReturned,
		CabinetID: cabinetID,
		UserID:    userID,
	}.encode()
	if err != nil {
		slog.Warn("failed to encode return event", "cabinet_id", cabinetID, "error", err.Error())
		return
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.cfg.EventTopic,
		Key:   sarama.StringEncoder(strconv.FormatInt(cabinetID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		slog.Warn("failed to publish return event", "cabinet_id", cabinetID, "error", err.Error())
	}
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
