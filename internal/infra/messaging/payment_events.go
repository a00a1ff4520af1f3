package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
)

const (
	RoutingKeySettled = "payment.settled"
	RoutingKeyFailed  = "payment.failed"
)

func PaymentRoutingKeys() []string {
	return []string{RoutingKeySettled, RoutingKeyFailed}
}

type PaymentOutcomeMessage struct {
	Event      string          `json:"event"`
	Version    int             `json:"version"`
	EventID    string          `json:"event_id"`
	PaymentRef string          `json:"payment_ref"`
	OccurredAt time.Time       `json:"occurred_at"`
	Attempt    *AttemptMessage `json:"attempt,omitempty"`
}

type AttemptMessage struct {
	AttemptID        string `json:"attempt_id"`
	DeviceID         string `json:"device_id"`
	UserID           string `json:"user_id"`
	Timeslot         string `json:"timeslot"`
	AmountCents      int64  `json:"amount_cents"`
	Currency         string `json:"currency"`
	PaymentMethodRef string `json:"payment_method_ref"`
}

func RoutingKeyFor(outcome saga.PaymentOutcome) (string, error) {
	switch outcome {
	case saga.OutcomeSettled:
		return RoutingKeySettled, nil
	case saga.OutcomeFailed:
		return RoutingKeyFailed, nil
	default:
		return "", fmt.Errorf("unknown payment outcome %q", outcome)
	}
}

func EncodePaymentEvent(evt saga.PaymentEvent) (string, []byte, error) {
	key, err := RoutingKeyFor(evt.Outcome)
	if err != nil {
		return "", nil, err
	}
	msg := PaymentOutcomeMessage{
		Event:      key,
		Version:    1,
		EventID:    evt.EventID,
		PaymentRef: evt.PaymentRef,
		OccurredAt: evt.OccurredAt,
	}
	if m := evt.Attempt; m != nil {
		msg.Attempt = &AttemptMessage{
			AttemptID:        m.AttemptID.String(),
			DeviceID:         m.DeviceID.String(),
			UserID:           m.UserID.String(),
			Timeslot:         m.Timeslot.Name(),
			AmountCents:      m.AmountCents,
			Currency:         m.Currency,
			PaymentMethodRef: m.PaymentMethodRef,
		}
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return "", nil, err
	}
	return key, body, nil
}

// DecodePaymentEvent reads the outcome from the routing key; the body event
// name is informational.
func DecodePaymentEvent(routingKey string, body []byte) (saga.PaymentEvent, error) {
	var msg PaymentOutcomeMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return saga.PaymentEvent{}, fmt.Errorf("unmarshal payment outcome: %w", err)
	}

	evt := saga.PaymentEvent{
		EventID:    msg.EventID,
		PaymentRef: msg.PaymentRef,
		OccurredAt: msg.OccurredAt,
	}
	switch routingKey {
	case RoutingKeySettled:
		evt.Outcome = saga.OutcomeSettled
	case RoutingKeyFailed:
		evt.Outcome = saga.OutcomeFailed
	default:
		return saga.PaymentEvent{}, fmt.Errorf("unexpected routing key %q", routingKey)
	}

	if a := msg.Attempt; a != nil {
		attempt, err := decodeAttempt(*a)
		if err == nil {
			evt.Attempt = attempt
		}
	}
	return evt, nil
}

func decodeAttempt(a AttemptMessage) (*saga.AttemptMetadata, error) {
	attemptID, err := uuid.Parse(a.AttemptID)
	if err != nil {
		return nil, err
	}
	deviceID, err := uuid.Parse(a.DeviceID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(a.UserID)
	if err != nil {
		return nil, err
	}
	slot, err := booking.ParseTimeslot(a.Timeslot)
	if err != nil {
		return nil, err
	}
	return &saga.AttemptMetadata{
		AttemptID:        attemptID,
		DeviceID:         deviceID,
		UserID:           userID,
		Timeslot:         slot,
		AmountCents:      a.AmountCents,
		Currency:         a.Currency,
		PaymentMethodRef: a.PaymentMethodRef,
	}, nil
}

type MessagePublisher interface {
	Publish(ctx context.Context, key, messageID string, body []byte) error
}

// PaymentEventPublisher forwards verified webhook outcomes to the payment exchange.
type PaymentEventPublisher struct {
	publisher MessagePublisher
}

func NewPaymentEventPublisher(publisher MessagePublisher) *PaymentEventPublisher {
	return &PaymentEventPublisher{publisher: publisher}
}

func (p *PaymentEventPublisher) PublishPaymentEvent(ctx context.Context, evt saga.PaymentEvent) error {
	key, body, err := EncodePaymentEvent(evt)
	if err != nil {
		return err
	}
	if err := p.publisher.Publish(ctx, key, evt.EventID, body); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}
