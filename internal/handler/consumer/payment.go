package consumer

import (
	"context"
	"log/slog"
	"sync"

	"grillbox/internal/infra/messaging"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ackDecision int

const (
	ack ackDecision = iota
	requeue
	drop
)

func (d ackDecision) String() string {
	switch d {
	case ack:
		return "ack"
	case requeue:
		return "requeue"
	default:
		return "drop"
	}
}

// PaymentConsumer hands payment outcomes to the reconciler. Each delivery runs
// in its own goroutine; the channel prefetch bounds how many are in flight.
type PaymentConsumer struct {
	handler saga.PaymentEventHandler
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewPaymentConsumer(handler saga.PaymentEventHandler, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{handler: handler, logger: logger}
}

// Run returns when ctx is done or the delivery channel closes, after every
// started delivery has been acknowledged.
func (c *PaymentConsumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				c.Handle(ctx, d)
			}()
		}
	}
}

func (c *PaymentConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	logger := c.logger.With(
		slog.String("routing_key", d.RoutingKey),
		slog.String("message_id", d.MessageId),
		slog.Bool("redelivered", d.Redelivered),
	)

	evt, err := messaging.DecodePaymentEvent(d.RoutingKey, d.Body)
	if err != nil {
		logger.Error("Dropping undecodable payment event", slog.String("error", err.Error()))
		c.settle(logger, d, drop)
		return
	}

	result, err := c.handler.HandlePaymentEvent(ctx, evt)
	decision := decide(err, d.Redelivered)
	if err != nil {
		logger.Warn("Payment event not applied",
			slog.String("payment_ref", evt.PaymentRef),
			slog.String("error", err.Error()),
			slog.String("decision", decision.String()))
	} else {
		logger.Info("Payment event handled",
			slog.String("payment_ref", evt.PaymentRef),
			slog.String("result", string(result)))
	}
	c.settle(logger, d, decision)
}

// decide maps a reconciliation error to an acknowledgement. An unknown
// payment reference gets one more delivery because the booking write may
// still be in flight.
func decide(err error, redelivered bool) ackDecision {
	switch {
	case err == nil:
		return ack
	case errs.Is(err, saga.ErrDeviceUnlockFailed):
		return ack
	case errs.Is(err, errs.ErrDomainValidation):
		return drop
	case errs.Is(err, saga.ErrBookingNotFound):
		if redelivered {
			return drop
		}
		return requeue
	default:
		return requeue
	}
}

func (c *PaymentConsumer) settle(logger *slog.Logger, d amqp.Delivery, decision ackDecision) {
	var err error
	switch decision {
	case ack:
		err = d.Ack(false)
	case requeue:
		err = d.Nack(false, true)
	case drop:
		err = d.Nack(false, false)
	}
	if err != nil {
		logger.Error("Failed to acknowledge delivery", slog.String("error", err.Error()))
	}
}
