package components

import (
	"context"
	"log/slog"
	"sync"

	"grillbox/internal/handler/consumer"
	"grillbox/internal/infra/messaging"
	"grillbox/internal/infra/mqtt"

	"go.uber.org/fx"
)

var ConsumerModule = fx.Module("consumer",
	fx.Provide(
		consumer.NewPaymentConsumer,
		consumer.NewDeviceStateConsumer,
	),
	fx.Invoke(
		runPaymentConsumer,
		subscribeDeviceState,
	),
)

// runPaymentConsumer stops before the AMQP connection closes: fx runs OnStop
// hooks in reverse registration order.
func runPaymentConsumer(lc fx.Lifecycle, pc *consumer.PaymentConsumer, amqpConsumer *messaging.Consumer, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			deliveries, err := amqpConsumer.Deliveries(ctx)
			if err != nil {
				cancel()
				return err
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				pc.Run(ctx, deliveries)
			}()
			logger.Info("Payment consumer started")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				logger.Info("Payment consumer stopped")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func subscribeDeviceState(lc fx.Lifecycle, client *mqtt.Client, topics mqtt.Topics, dc *consumer.DeviceStateConsumer) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return client.Subscribe(topics.AllDeviceStates(), dc.Handle)
		},
	})
}
