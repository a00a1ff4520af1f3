package payment

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strconv"

	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Metadata keys attached to every PaymentIntent.
const (
	MetaAttemptID   = "attempt_id"
	MetaDeviceID    = "device_id"
	MetaUserID      = "user_id"
	MetaTimeslot    = "timeslot"
	MetaAmountCents = "amount_cents"
)

type PaymentIntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway authorizes off-session card payments. The attempt id is the
// Stripe idempotency key, so repeating an attempt replays the first answer.
type StripeGateway struct {
	intents PaymentIntentCreator
	logger  *slog.Logger
}

func NewStripeClient(apiKey string) *client.API {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return sc
}

func NewStripeGateway(intents PaymentIntentCreator, logger *slog.Logger) *StripeGateway {
	return &StripeGateway{intents: intents, logger: logger}
}

func (g *StripeGateway) Authorize(ctx context.Context, req saga.AuthorizationRequest) (*saga.Authorization, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		Customer:      stripe.String(req.CustomerRef),
		PaymentMethod: stripe.String(req.PaymentMethodRef),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.AttemptID.String())
	params.AddMetadata(MetaAttemptID, req.AttemptID.String())
	params.AddMetadata(MetaDeviceID, req.DeviceID.String())
	params.AddMetadata(MetaUserID, req.UserID.String())
	params.AddMetadata(MetaTimeslot, req.Timeslot.Name())
	params.AddMetadata(MetaAmountCents, strconv.FormatInt(req.AmountCents, 10))

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, classify(ctx, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded,
		stripe.PaymentIntentStatusRequiresCapture,
		stripe.PaymentIntentStatusProcessing:
		g.logger.Info("Payment authorized",
			slog.String("payment_ref", pi.ID),
			slog.String("status", string(pi.Status)),
			slog.String("attempt_id", req.AttemptID.String()))
		return &saga.Authorization{
			PaymentRef:       pi.ID,
			AmountCents:      pi.Amount,
			Currency:         string(pi.Currency),
			PaymentMethodRef: req.PaymentMethodRef,
		}, nil
	default:
		// requires_action cannot be completed off-session.
		return nil, errs.Mark(
			errs.Newf("payment intent %s ended in status %s", pi.ID, pi.Status),
			errs.ErrDeclined,
		)
	}
}

func classify(ctx context.Context, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			return errs.Mark(errs.Wrapf(err, "card declined: %s", stripeErr.DeclineCode), errs.ErrDeclined)
		}
		if stripeErr.Type == stripe.ErrorTypeIdempotency {
			return errs.Mark(errs.Wrap(err, "idempotency key reused with different parameters"), errs.ErrConflict)
		}
		return errs.Wrap(err, "payment processor error")
	}

	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return errs.Mark(errs.Wrap(err, "payment processor timed out"), errs.ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.Mark(errs.Wrap(err, "payment processor timed out"), errs.ErrTimeout)
	}
	// A transport failure leaves the outcome unknown just like a timeout.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errs.Mark(errs.Wrap(err, "payment processor unreachable"), errs.ErrTimeout)
	}
	return errs.Wrap(err, "payment authorization failed")
}
