package bootstrap

import (
	"context"
	"log/slog"

	"grillbox/internal/infra/messaging"
	"grillbox/internal/infra/mqtt"
	"grillbox/internal/pkg/config"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewMQTTClient,
		NewTopics,
		NewAMQPPublisher,
		NewAMQPConsumer,
		messaging.NewPaymentEventPublisher,
	),
)

func NewMQTTClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*mqtt.Client, error) {
	client, err := mqtt.Connect(cfg.MQTT, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			client.Close()
			return nil
		},
	})
	return client, nil
}

func NewTopics(cfg config.Config) mqtt.Topics {
	return mqtt.Topics{Prefix: cfg.MQTT.TopicPrefix}
}

func NewAMQPPublisher(lc fx.Lifecycle, cfg config.Config) (messaging.MessagePublisher, error) {
	pub, err := messaging.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func NewAMQPConsumer(lc fx.Lifecycle, cfg config.Config) (*messaging.Consumer, error) {
	c, err := messaging.NewConsumer(
		cfg.AMQP.URL,
		cfg.AMQP.Exchange,
		cfg.AMQP.Queue,
		messaging.PaymentRoutingKeys(),
		cfg.AMQP.Prefetch,
	)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return c.Close()
		},
	})
	return c, nil
}
