//go:build unit

package booking_test

import (
	"testing"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestTimeslot(t *testing.T) {
	tests := []struct {
		input       string
		want        booking.Timeslot
		wantMinutes int
		wantCost    int64
		wantErr     bool
	}{
		{input: "FORTY_FIVE", want: booking.FortyFive, wantMinutes: 45, wantCost: 800},
		{input: "forty_five", want: booking.FortyFive, wantMinutes: 45, wantCost: 800},
		{input: "NINETY", want: booking.Ninety, wantMinutes: 90, wantCost: 1300},
		{input: "90", want: booking.Ninety, wantMinutes: 90, wantCost: 1300},
		{input: " 45 ", want: booking.FortyFive, wantMinutes: 45, wantCost: 800},
		{input: "60", wantErr: true},
		{input: "", wantErr: true},
		{input: "THIRTY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := booking.ParseTimeslot(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, booking.ErrInvalidTimeslot)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMinutes, got.Minutes())
			assert.Equal(t, tt.wantCost, got.CostCents())
			assert.Equal(t, time.Duration(tt.wantMinutes)*time.Minute, got.Duration())
		})
	}

	t.Run("enumeration is a copy", func(t *testing.T) {
		slots := booking.Timeslots()
		require.Len(t, slots, 2)
		slots[0] = booking.Timeslot{}
		assert.False(t, booking.Timeslots()[0].IsZero())
	})
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to booking.Status
		allowed  bool
	}{
		{booking.StatusPending, booking.StatusPayed, true},
		{booking.StatusPending, booking.StatusPaymentFailed, true},
		{booking.StatusPending, booking.StatusPending, false},
		{booking.StatusPayed, booking.StatusPaymentFailed, false},
		{booking.StatusPayed, booking.StatusPending, false},
		{booking.StatusPaymentFailed, booking.StatusPayed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			b := builder.NewBookingBuilder().WithStatus(tt.from).BuildDomain()
			err := b.CheckTransition(tt.to)
			switch {
			case tt.allowed:
				assert.NoError(t, err)
			case tt.from.IsTerminal():
				assert.ErrorIs(t, err, booking.ErrAlreadyFinalized)
			default:
				assert.ErrorIs(t, err, booking.ErrInvalidTransition)
			}
		})
	}

	_, err := booking.NewStatus("cancelled")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestNewPendingBooking(t *testing.T) {
	payment, err := booking.NewPaymentSnapshot(800, "EUR", "pm_1234567890")
	require.NoError(t, err)
	attemptID, deviceID, userID := uuid.New(), uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		b, err := booking.NewPendingBooking(attemptID, "pi_1", deviceID, userID, booking.FortyFive, payment, requestedAt)
		require.NoError(t, err)

		assert.Equal(t, attemptID, b.ID())
		assert.True(t, b.IsPending())
		assert.True(t, b.IsOwnedBy(userID))
		assert.False(t, b.IsOwnedBy(uuid.New()))
		assert.Nil(t, b.SessionStart())
		assert.Nil(t, b.SessionEnd())
		assert.Equal(t, "eur", b.Payment().Currency())
		assert.Equal(t, "pm_****7890", b.Payment().MethodRef())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := booking.NewPendingBooking(uuid.Nil, "pi_1", deviceID, userID, booking.FortyFive, payment, requestedAt)
		assert.ErrorIs(t, err, booking.ErrMissingBookingFields)

		_, err = booking.NewPendingBooking(attemptID, "  ", deviceID, userID, booking.FortyFive, payment, requestedAt)
		assert.ErrorIs(t, err, booking.ErrMissingPaymentRef)

		_, err = booking.NewPendingBooking(attemptID, "pi_1", deviceID, userID, booking.Timeslot{}, payment, requestedAt)
		assert.ErrorIs(t, err, booking.ErrInvalidTimeslot)
	})
}

func TestPaymentSnapshot(t *testing.T) {
	_, err := booking.NewPaymentSnapshot(0, "eur", "pm_1")
	assert.ErrorIs(t, err, booking.ErrInvalidPayment)

	_, err = booking.NewPaymentSnapshot(800, "", "pm_1")
	assert.ErrorIs(t, err, booking.ErrInvalidPayment)

	masks := map[string]string{
		"":              "",
		"pm_12":         "pm_**",
		"pm_card4242":   "pm_****4242",
		"abcdefgh":      "****efgh",
		"card_1234":     "card_****",
		"pm_1234567890": "pm_****7890",
	}
	for in, want := range masks {
		assert.Equal(t, want, booking.MaskMethodRef(in), "mask %q", in)
	}
}

func TestHoldsDeviceAt(t *testing.T) {
	now := requestedAt.Add(30 * time.Minute)
	tests := []struct {
		name string
		b    *builder.BookingBuilder
		want bool
	}{
		{name: "pending always holds", b: builder.NewBookingBuilder().WithRequestedAt(requestedAt.Add(-24 * time.Hour)), want: true},
		{name: "failed never holds", b: builder.NewBookingBuilder().WithStatus(booking.StatusPaymentFailed), want: false},
		{name: "payed within session", b: builder.NewBookingBuilder().WithStatus(booking.StatusPayed).WithSessionStart(requestedAt), want: true},
		{name: "payed session over", b: builder.NewBookingBuilder().WithStatus(booking.StatusPayed).WithSessionStart(requestedAt.Add(-time.Hour)), want: false},
		{name: "payed never unlocked within slot", b: builder.NewBookingBuilder().WithStatus(booking.StatusPayed).WithRequestedAt(requestedAt), want: true},
		{name: "payed never unlocked past slot", b: builder.NewBookingBuilder().WithStatus(booking.StatusPayed).WithRequestedAt(requestedAt.Add(-20 * time.Minute)), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.BuildDomain().HoldsDeviceAt(now))
		})
	}

	started := builder.NewBookingBuilder().WithStatus(booking.StatusPayed).WithSessionStart(requestedAt).BuildDomain()
	require.NotNil(t, started.SessionEnd())
	assert.Equal(t, requestedAt.Add(45*time.Minute), *started.SessionEnd())
}
