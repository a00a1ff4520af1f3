//go:build unit

package payment_test

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/infra/payment"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test_secret"

func signed(t *testing.T, payload string) (string, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	return string(sp.Payload), sp.Header
}

func eventJSON(eventType, intent string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"created":1777636800,"data":{"object":%s}}`, eventType, intent)
}

func TestParse_Outcomes(t *testing.T) {
	attemptID, deviceID, userID := uuid.New(), uuid.New(), uuid.New()
	intent := fmt.Sprintf(`{"id":"pi_123","object":"payment_intent","amount":800,"currency":"eur","payment_method":"pm_card4242",`+
		`"metadata":{"attempt_id":%q,"device_id":%q,"user_id":%q,"timeslot":"FORTY_FIVE","amount_cents":"800"}}`,
		attemptID, deviceID, userID)

	tests := []struct {
		eventType string
		want      saga.PaymentOutcome
	}{
		{payment.EventPaymentSucceeded, saga.OutcomeSettled},
		{payment.EventPaymentFailed, saga.OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			payload, header := signed(t, eventJSON(tt.eventType, intent))
			p := payment.NewWebhookParser(testSecret, slog.New(slog.DiscardHandler))

			evt, err := p.Parse([]byte(payload), header)
			require.NoError(t, err)
			assert.Equal(t, "evt_1", evt.EventID)
			assert.Equal(t, "pi_123", evt.PaymentRef)
			assert.Equal(t, tt.want, evt.Outcome)
			assert.Equal(t, time.Unix(1777636800, 0).UTC(), evt.OccurredAt)

			require.NotNil(t, evt.Attempt)
			assert.Equal(t, attemptID, evt.Attempt.AttemptID)
			assert.Equal(t, deviceID, evt.Attempt.DeviceID)
			assert.Equal(t, userID, evt.Attempt.UserID)
			assert.Equal(t, booking.FortyFive, evt.Attempt.Timeslot)
			assert.Equal(t, int64(800), evt.Attempt.AmountCents)
			assert.Equal(t, "eur", evt.Attempt.Currency)
			assert.Equal(t, "pm_card4242", evt.Attempt.PaymentMethodRef)
		})
	}
}

func TestParse_IncompleteMetadataHasNoAttempt(t *testing.T) {
	intent := `{"id":"pi_9","object":"payment_intent","amount":800,"currency":"eur","metadata":{"attempt_id":"nope"}}`
	payload, header := signed(t, eventJSON(payment.EventPaymentSucceeded, intent))

	evt, err := payment.NewWebhookParser(testSecret, slog.New(slog.DiscardHandler)).Parse([]byte(payload), header)
	require.NoError(t, err)
	assert.Equal(t, "pi_9", evt.PaymentRef)
	assert.Nil(t, evt.Attempt)
}

func TestParse_Rejections(t *testing.T) {
	p := payment.NewWebhookParser(testSecret, slog.New(slog.DiscardHandler))
	intent := `{"id":"pi_1","object":"payment_intent"}`

	t.Run("bad signature", func(t *testing.T) {
		payload, _ := signed(t, eventJSON(payment.EventPaymentSucceeded, intent))
		_, err := p.Parse([]byte(payload), "t=1,v1=deadbeef")
		assert.True(t, errs.Is(err, payment.ErrInvalidSignature), "got %v", err)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		other := payment.NewWebhookParser("whsec_other", slog.New(slog.DiscardHandler))
		payload, header := signed(t, eventJSON(payment.EventPaymentSucceeded, intent))
		_, err := other.Parse([]byte(payload), header)
		assert.True(t, errs.Is(err, payment.ErrInvalidSignature), "got %v", err)
	})

	t.Run("event without payment outcome", func(t *testing.T) {
		payload, header := signed(t, eventJSON("payment_intent.created", intent))
		_, err := p.Parse([]byte(payload), header)
		assert.True(t, errs.Is(err, payment.ErrIgnoredEvent), "got %v", err)
	})
}
