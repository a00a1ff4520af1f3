package components

import (
	"grillbox/internal/handler"
	"grillbox/internal/handler/api"
	"grillbox/internal/handler/middleware"
	"grillbox/internal/infra/messaging"
	"grillbox/internal/infra/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewEngine,
		api.NewBookingHandler,
		api.NewDeviceHandler,
		api.NewCardHandler,
		fx.Annotate(
			func(p *payment.WebhookParser) *payment.WebhookParser { return p },
			fx.As(new(api.WebhookParser)),
		),
		fx.Annotate(
			func(p *messaging.PaymentEventPublisher) *messaging.PaymentEventPublisher { return p },
			fx.As(new(api.PaymentEventPublisher)),
		),
		api.NewStripeWebhookHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewEngine() *gin.Engine {
	return gin.New()
}

func NewHandlers(
	booking *api.BookingHandler,
	device *api.DeviceHandler,
	card *api.CardHandler,
	webhook *api.StripeWebhookHandler,
) handler.Handlers {
	return handler.Handlers{
		Booking:       booking,
		Device:        device,
		Card:          card,
		StripeWebhook: webhook,
	}
}
