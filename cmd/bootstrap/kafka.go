package bootstrap

import (
	"context"

	"cabinet-keeper/internal/infra/eventlog"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/usecase/commands"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewEventLogProducer,
		NewReturnNotifier,
	),
	fx.Invoke(StartIntentConsumer),
)

// NewEventLogProducer returns nil when Kafka is disabled; downstream
// providers treat a nil producer as "no event log path".
func NewEventLogProducer(lc fx.Lifecycle, cfg config.Config) (*eventlog.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := eventlog.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

func NewReturnNotifier(producer *eventlog.Producer) commands.Notifier {
	if producer == nil {
		return nil
	}
	return eventlog.NewNotifier(producer)
}

func StartIntentConsumer(lc fx.Lifecycle, cfg config.Config, alloc commands.AllocationCommands) error {
	if !cfg.Kafka.Enabled {
		return nil
	}

	consumer, err := eventlog.NewConsumer(cfg.Kafka, alloc)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			consumer.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return consumer.Stop()
		},
	})

	return nil
}
