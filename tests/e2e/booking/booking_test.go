//go:build e2e

package booking_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"grillbox/internal/handler/dto/request"
	"grillbox/internal/handler/dto/response"
	"grillbox/internal/infra/payment"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/saga"
	"grillbox/tests/common/authtest"
	"grillbox/tests/common/dbtest"
	"grillbox/tests/common/httptest"
	"grillbox/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	bookingsURL       = "/api/bookings"
	bookingURL        = "/api/bookings/%s"
	deviceBookingsURL = "/api/devices/%s/bookings"
	webhookURL        = "/stripe/webhook"
)

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) deviceBlocked(deviceID uuid.UUID) bool {
	var blocked bool
	err := s.DB.QueryRow(context.Background(), "SELECT blocked FROM devices WHERE id = $1", deviceID).Scan(&blocked)
	require.NoError(s.T(), err)
	return blocked
}

func (s *BookingSuite) bookingStatus(id uuid.UUID) (string, *time.Time) {
	var status string
	var sessionStart *time.Time
	err := s.DB.QueryRow(context.Background(), "SELECT status, session_start FROM bookings WHERE id = $1", id).Scan(&status, &sessionStart)
	require.NoError(s.T(), err)
	return status, sessionStart
}

func (s *BookingSuite) createBooking(token string, deviceID uuid.UUID) response.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
		DeviceID:         deviceID,
		PaymentMethodRef: "pm_card4242",
		Timeslot:         "FORTY_FIVE",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

// postWebhook signs a payment intent event the way Stripe does.
func (s *BookingSuite) postWebhook(eventType, paymentRef string) *nethttptest.ResponseRecorder {
	payload := fmt.Sprintf(`{"id":"evt_%s","object":"event","type":%q,"created":%d,"data":{"object":{"id":%q,"object":"payment_intent"}}}`,
		uuid.NewString(), eventType, time.Now().Unix(), paymentRef)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    s.Config.Stripe.WebhookSecret,
		Timestamp: time.Now(),
	})

	req := nethttptest.NewRequest(http.MethodPost, webhookURL, bytes.NewReader(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	w := nethttptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: pending booking, device reserved, price from timeslot", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "griller@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0001")
		token := s.jwt.GenerateToken(t, userID)

		created := s.createBooking(token, deviceID)

		require.Equal(t, "pending", created.Status)
		require.Equal(t, int64(800), created.AmountCents)
		require.Equal(t, "eur", created.Currency)
		require.Equal(t, "pm_****4242", created.PaymentMethodRef)
		require.True(t, s.deviceBlocked(deviceID))

		status, sessionStart := s.bookingStatus(created.ID)
		require.Equal(t, "pending", status)
		require.Nil(t, sessionStart)
		require.Empty(t, s.Fakes.Commands.Sent(), "unlock waits for settlement")
	})

	s.Run("Error case: device already booked", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "second@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0002")
		dbtest.ReserveDevice(t, s.DB, deviceID, uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			DeviceID: deviceID, PaymentMethodRef: "pm_card4242", Timeslot: "NINETY",
		}, s.jwt.GenerateToken(t, userID))

		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Device is already booked")
	})

	s.Run("Error case: declined payment releases the device", func() {
		t := s.T()
		s.Fakes.Payments.AuthorizeFunc = func(context.Context, saga.AuthorizationRequest) (*saga.Authorization, error) {
			return nil, errs.Mark(errs.New("card_declined"), errs.ErrDeclined)
		}
		userID := dbtest.CreateTestUser(t, s.DB, "broke@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0003")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			DeviceID: deviceID, PaymentMethodRef: "pm_card0002", Timeslot: "FORTY_FIVE",
		}, s.jwt.GenerateToken(t, userID))

		httptest.AssertErrorResponse(t, w, http.StatusPaymentRequired, "Payment declined")
		require.Eventually(t, func() bool { return !s.deviceBlocked(deviceID) }, 5*time.Second, 50*time.Millisecond)

		var count int
		require.NoError(t, s.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM bookings").Scan(&count))
		require.Zero(t, count)
	})

	s.Run("Error case: unknown device", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "lost@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			DeviceID: uuid.New(), PaymentMethodRef: "pm_card4242", Timeslot: "FORTY_FIVE",
		}, s.jwt.GenerateToken(t, userID))

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Device not found")
	})

	s.Run("Error case: no token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			DeviceID: uuid.New(), PaymentMethodRef: "pm_card4242", Timeslot: "FORTY_FIVE",
		}, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestPaymentWebhook
// =============================================================================

func (s *BookingSuite) TestPaymentWebhook() {
	s.Run("Normal case: settlement unlocks once and starts the session", func() {
		t := s.T()
		s.Fakes.Commands.OnSend = func(externalID string) {
			_ = dbtest.SetDeviceLockedByExternalID(context.Background(), s.DB, externalID, false)
		}
		userID := dbtest.CreateTestUser(t, s.DB, "payer@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0010")
		created := s.createBooking(s.jwt.GenerateToken(t, userID), deviceID)

		w := s.postWebhook(payment.EventPaymentSucceeded, created.PaymentRef)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		// Stripe delivers at least once.
		w = s.postWebhook(payment.EventPaymentSucceeded, created.PaymentRef)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		status, sessionStart := s.bookingStatus(created.ID)
		require.Equal(t, "payed", status)
		require.NotNil(t, sessionStart)
		require.Equal(t, []string{"gb-0010"}, s.Fakes.Commands.Sent())
		require.True(t, s.deviceBlocked(deviceID), "device stays reserved for the session")
	})

	s.Run("Normal case: failed payment releases the device", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "failer@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0011")
		created := s.createBooking(s.jwt.GenerateToken(t, userID), deviceID)

		w := s.postWebhook(payment.EventPaymentFailed, created.PaymentRef)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		status, _ := s.bookingStatus(created.ID)
		require.Equal(t, "payment_failed", status)
		require.False(t, s.deviceBlocked(deviceID))
		require.Empty(t, s.Fakes.Commands.Sent())

		// A late settlement cannot resurrect the booking.
		w = s.postWebhook(payment.EventPaymentSucceeded, created.PaymentRef)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		status, _ = s.bookingStatus(created.ID)
		require.Equal(t, "payment_failed", status)
	})

	s.Run("Normal case: other event types are acknowledged", func() {
		w := s.postWebhook("payment_intent.created", "pi_whatever")
		require.Equal(s.T(), http.StatusOK, w.Code)
	})

	s.Run("Error case: forged signature", func() {
		t := s.T()
		req := nethttptest.NewRequest(http.MethodPost, webhookURL, bytes.NewBufferString(`{"type":"payment_intent.succeeded"}`))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		w := nethttptest.NewRecorder()
		s.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestBookingQueries
// =============================================================================

func (s *BookingSuite) TestBookingQueries() {
	s.Run("Normal case: keyset pagination newest first", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "history@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0020")
		base := time.Now().UTC().Truncate(time.Second)
		var ids []uuid.UUID
		for i := range 3 {
			ids = append(ids, dbtest.CreateTestBooking(t, s.DB, dbtest.BookingRow{
				DeviceID:    deviceID,
				UserID:      userID,
				Status:      "payed",
				RequestedAt: base.Add(-time.Duration(i) * time.Hour),
			}))
		}
		token := s.jwt.GenerateToken(t, userID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var page1 response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page1))
		require.Len(t, page1.Items, 2)
		require.Equal(t, ids[0], page1.Items[0].ID)
		require.Equal(t, ids[1], page1.Items[1].ID)
		require.NotEmpty(t, page1.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2&after="+page1.NextCursor, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var page2 response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page2))
		require.Len(t, page2.Items, 1)
		require.Equal(t, ids[2], page2.Items[0].ID)
		require.Empty(t, page2.NextCursor)
	})

	s.Run("Error case: another user's booking is not found", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "owner@example.com")
		stranger := dbtest.CreateTestUser(t, s.DB, "stranger@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0021")
		id := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingRow{DeviceID: deviceID, UserID: owner})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, id), nil, s.jwt.GenerateToken(t, stranger))
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, id), nil, s.jwt.GenerateToken(t, owner))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Normal case: bookings of a device", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "device-view@example.com")
		deviceID := dbtest.CreateTestDevice(t, s.DB, "gb-0022")
		otherDevice := dbtest.CreateTestDevice(t, s.DB, "gb-0023")
		id := dbtest.CreateTestBooking(t, s.DB, dbtest.BookingRow{DeviceID: deviceID, UserID: userID})
		dbtest.CreateTestBooking(t, s.DB, dbtest.BookingRow{DeviceID: otherDevice, UserID: userID})

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(deviceBookingsURL, deviceID), nil, s.jwt.GenerateToken(t, userID))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var items []response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Len(t, items, 1)
		require.Equal(t, id, items[0].ID)
	})
}
