package payment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentmethod"
)

type PaymentMethodAPI interface {
	List(listParams *stripe.PaymentMethodListParams) *paymentmethod.Iter
	Get(id string, params *stripe.PaymentMethodParams) (*stripe.PaymentMethod, error)
	Detach(id string, params *stripe.PaymentMethodDetachParams) (*stripe.PaymentMethod, error)
}

type SetupIntentCreator interface {
	New(params *stripe.SetupIntentParams) (*stripe.SetupIntent, error)
}

// StripeCardVault manages the card payment methods saved to a Stripe customer.
type StripeCardVault struct {
	methods PaymentMethodAPI
	setups  SetupIntentCreator
	logger  *slog.Logger
}

func NewStripeCardVault(methods PaymentMethodAPI, setups SetupIntentCreator, logger *slog.Logger) *StripeCardVault {
	return &StripeCardVault{methods: methods, setups: setups, logger: logger}
}

func (v *StripeCardVault) ListCards(ctx context.Context, customerRef string) ([]commands.Card, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerRef),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	cards := make([]commands.Card, 0)
	it := v.methods.List(params)
	for it.Next() {
		cards = append(cards, toCard(it.PaymentMethod()))
	}
	if err := it.Err(); err != nil {
		return nil, classifyCardErr(err, "failed to list payment methods")
	}
	return cards, nil
}

// CreateSetup opens an off-session SetupIntent so saved cards can later be
// charged without the customer present.
func (v *StripeCardVault) CreateSetup(ctx context.Context, customerRef string) (*commands.CardSetup, error) {
	params := &stripe.SetupIntentParams{
		Customer:           stripe.String(customerRef),
		PaymentMethodTypes: stripe.StringSlice([]string{string(stripe.PaymentMethodTypeCard)}),
		Usage:              stripe.String(string(stripe.SetupIntentUsageOffSession)),
	}
	params.Context = ctx

	si, err := v.setups.New(params)
	if err != nil {
		return nil, classifyCardErr(err, "failed to create setup intent")
	}
	return &commands.CardSetup{SetupRef: si.ID, ClientSecret: si.ClientSecret}, nil
}

func (v *StripeCardVault) DetachCard(ctx context.Context, customerRef, cardID string) (*commands.Card, error) {
	pm, err := v.methods.Get(cardID, &stripe.PaymentMethodParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, classifyCardErr(err, "failed to read payment method")
	}
	if pm.Customer == nil || pm.Customer.ID != customerRef {
		v.logger.Warn("Refused to detach a payment method of another customer",
			slog.String("payment_method", cardID))
		return nil, errs.Mark(errs.Newf("payment method %s is not saved to the customer", cardID), errs.ErrNotFound)
	}

	detached, err := v.methods.Detach(cardID, &stripe.PaymentMethodDetachParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, classifyCardErr(err, "failed to detach payment method")
	}
	card := toCard(detached)
	return &card, nil
}

func toCard(pm *stripe.PaymentMethod) commands.Card {
	card := commands.Card{ID: pm.ID}
	if pm.Card != nil {
		card.Brand = string(pm.Card.Brand)
		card.Last4 = pm.Card.Last4
		card.ExpMonth = pm.Card.ExpMonth
		card.ExpYear = pm.Card.ExpYear
	}
	return card
}

func classifyCardErr(err error, msg string) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) &&
		(stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound) {
		return errs.Mark(errs.Wrap(err, msg), errs.ErrNotFound)
	}
	return errs.Wrap(err, msg)
}
