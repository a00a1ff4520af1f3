package payment

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	// ErrIgnoredEvent marks event types that carry no payment outcome.
	ErrIgnoredEvent = errs.New("event type carries no payment outcome")
)

// WebhookParser verifies Stripe-Signature and turns PaymentIntent events into
// payment outcomes.
type WebhookParser struct {
	secret string
	logger *slog.Logger
}

func NewWebhookParser(secret string, logger *slog.Logger) *WebhookParser {
	return &WebhookParser{secret: secret, logger: logger}
}

func (p *WebhookParser) Parse(payload []byte, signature string) (*saga.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stripe webhook verification failed"), ErrInvalidSignature)
	}

	var outcome saga.PaymentOutcome
	switch string(event.Type) {
	case EventPaymentSucceeded:
		outcome = saga.OutcomeSettled
	case EventPaymentFailed:
		outcome = saga.OutcomeFailed
	default:
		return nil, errs.Mark(errs.Newf("stripe event %s of type %s", event.ID, event.Type), ErrIgnoredEvent)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to decode payment intent"), errs.ErrDomainValidation)
	}

	return &saga.PaymentEvent{
		EventID:    event.ID,
		PaymentRef: pi.ID,
		Outcome:    outcome,
		Attempt:    p.attemptFromMetadata(pi),
		OccurredAt: time.Unix(event.Created, 0).UTC(),
	}, nil
}

// attemptFromMetadata returns nil when the intent was not created by the
// gateway or its metadata is incomplete.
func (p *WebhookParser) attemptFromMetadata(pi stripe.PaymentIntent) *saga.AttemptMetadata {
	md := pi.Metadata
	if len(md) == 0 {
		return nil
	}
	attemptID, err1 := uuid.Parse(md[MetaAttemptID])
	deviceID, err2 := uuid.Parse(md[MetaDeviceID])
	userID, err3 := uuid.Parse(md[MetaUserID])
	slot, err4 := booking.ParseTimeslot(md[MetaTimeslot])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		p.logger.Warn("Payment intent carries incomplete attempt metadata",
			slog.String("payment_ref", pi.ID))
		return nil
	}

	amount := pi.Amount
	if v, err := strconv.ParseInt(md[MetaAmountCents], 10, 64); err == nil && amount == 0 {
		amount = v
	}
	methodRef := ""
	if pi.PaymentMethod != nil {
		methodRef = pi.PaymentMethod.ID
	}

	return &saga.AttemptMetadata{
		AttemptID:        attemptID,
		DeviceID:         deviceID,
		UserID:           userID,
		Timeslot:         slot,
		AmountCents:      amount,
		Currency:         string(pi.Currency),
		PaymentMethodRef: methodRef,
	}
}
