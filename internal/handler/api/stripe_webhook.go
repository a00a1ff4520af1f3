package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"grillbox/internal/handler/httperr"
	"grillbox/internal/infra/payment"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	"github.com/gin-gonic/gin"
)

const maxWebhookBodyBytes = int64(65536)

type WebhookParser interface {
	Parse(payload []byte, signature string) (*saga.PaymentEvent, error)
}

type PaymentEventPublisher interface {
	PublishPaymentEvent(ctx context.Context, evt saga.PaymentEvent) error
}

// StripeWebhookHandler only verifies and forwards. Reconciliation happens
// on the consumer side so a slow device unlock never holds the webhook open.
type StripeWebhookHandler struct {
	parser    WebhookParser
	publisher PaymentEventPublisher
	logger    *slog.Logger
}

func NewStripeWebhookHandler(parser WebhookParser, publisher PaymentEventPublisher, logger *slog.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{parser: parser, publisher: publisher, logger: logger}
}

// @Summary Stripe webhook
// @Description Receives payment intent events and forwards payment outcomes
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /stripe/webhook [post]
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	evt, err := h.parser.Parse(payload, c.GetHeader("Stripe-Signature"))
	switch {
	case errs.Is(err, payment.ErrIgnoredEvent):
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	case err != nil:
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook", nil)
		return
	}

	if err := h.publisher.PublishPaymentEvent(c.Request.Context(), *evt); err != nil {
		// A non-2xx answer makes Stripe deliver the event again.
		h.logger.Error("Failed to forward payment event",
			slog.String("event_id", evt.EventID),
			slog.String("payment_ref", evt.PaymentRef),
			slog.String("error", err.Error()))
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Event not accepted, retry later", nil)
		return
	}

	h.logger.Info("Payment event forwarded",
		slog.String("event_id", evt.EventID),
		slog.String("payment_ref", evt.PaymentRef),
		slog.String("outcome", string(evt.Outcome)))
	c.JSON(http.StatusOK, gin.H{"received": true})
}
