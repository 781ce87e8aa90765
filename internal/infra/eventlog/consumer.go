package eventlog

import (
	"context"
	"log/slog"
	"sync"

	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// RentExecutor is the domain operation the consumer replays. The executor
// acquires the rent lock itself, so a message that lost the race against
// another execution path fails harmlessly.
type RentExecutor interface {
	ExecuteRent(ctx context.Context, taskID string, cabinetID int64, userID uuid.UUID) error
}

// Consumer is the long-lived listener on the intent topic. It is the third
// redundant execution path for rent tasks.
type Consumer struct {
	group  sarama.ConsumerGroup
	exec   RentExecutor
	topic  string
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(cfg config.KafkaConfig, exec RentExecutor) (*Consumer, error) {
	saramaCfg := sarama.NewConfig()
	// Replay from the earliest offset on first run; afterwards the committed
	// group offset wins.
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaCfg.Consumer.Offsets.AutoCommit.Enable = false

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.Group, saramaCfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka consumer group")
	}
	return &Consumer{group: group, exec: exec, topic: cfg.IntentTopic}, nil
}

func (c *Consumer) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			// Consume returns on rebalance; loop until the context is gone.
			if err := c.group.Consume(ctx, []string{c.topic}, &intentHandler{exec: c.exec}); err != nil {
				slog.Error("intent consumer error", "topic", c.topic, "error", err.Error())
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.group.Close()
}

type intentHandler struct {
	exec RentExecutor
}

func (h *intentHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *intentHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *intentHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handle(session.Context(), message)
		// Manual commit: the offset moves only after the message was handled,
		// errors included. A failed rent is a terminal outcome, not a reason
		// to redeliver.
		session.MarkMessage(message, "")
		session.Commit()
	}
	return nil
}

func (h *intentHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	intent, err := decodeIntent(message.Value)
	if err != nil {
		slog.Warn("dropping malformed intent message",
			"topic", message.Topic, "offset", message.Offset, "error", err.Error())
		return
	}
	if intent.Op != OpRent {
		return
	}
	if intent.TaskID == "" || intent.UserID == uuid.Nil {
		slog.Warn("dropping incomplete rent intent",
			"topic", message.Topic, "offset", message.Offset, "cabinet_id", intent.CabinetID)
		return
	}

	if err := h.exec.ExecuteRent(ctx, intent.TaskID, intent.CabinetID, intent.UserID); err != nil {
		// Expected when another path won the race; the outcome store already
		// holds the terminal result.
		slog.Debug("rent intent did not win",
			"task_id", intent.TaskID, "cabinet_id", intent.CabinetID, "error", err.Error())
	}
}
