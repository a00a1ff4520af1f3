package bootstrap

import (
	"log/slog"

	"grillbox/internal/infra/payment"
	"grillbox/internal/pkg/config"
	"grillbox/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewStripeClient,
		NewStripeGateway,
		fx.Annotate(
			NewStripeCardVault,
			fx.As(new(commands.CardVault)),
		),
		NewWebhookParser,
	),
)

func NewStripeClient(cfg config.Config) *client.API {
	return payment.NewStripeClient(cfg.Stripe.APIKey)
}

func NewStripeGateway(sc *client.API, logger *slog.Logger) *payment.StripeGateway {
	return payment.NewStripeGateway(sc.PaymentIntents, logger)
}

func NewStripeCardVault(sc *client.API, logger *slog.Logger) *payment.StripeCardVault {
	return payment.NewStripeCardVault(sc.PaymentMethods, sc.SetupIntents, logger)
}

func NewWebhookParser(cfg config.Config, logger *slog.Logger) *payment.WebhookParser {
	return payment.NewWebhookParser(cfg.Stripe.WebhookSecret, logger)
}
