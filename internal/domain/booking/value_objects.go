package booking

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeslot = errors.New("invalid timeslot")
	ErrInvalidPayment  = errors.New("invalid payment snapshot")
)

// Timeslot is a fixed (duration, price) pair. Prices live here and never come
// from the caller.
type Timeslot struct {
	name      string
	minutes   int
	costCents int64
}

var (
	FortyFive = Timeslot{name: "FORTY_FIVE", minutes: 45, costCents: 800}
	Ninety    = Timeslot{name: "NINETY", minutes: 90, costCents: 1300}
)

var timeslots = []Timeslot{FortyFive, Ninety}

func Timeslots() []Timeslot {
	out := make([]Timeslot, len(timeslots))
	copy(out, timeslots)
	return out
}

// ParseTimeslot accepts the enum name ("FORTY_FIVE") or the duration in minutes ("45").
func ParseTimeslot(s string) (Timeslot, error) {
	s = strings.TrimSpace(s)
	for _, ts := range timeslots {
		if strings.EqualFold(ts.name, s) {
			return ts, nil
		}
	}
	if minutes, err := strconv.Atoi(s); err == nil {
		return TimeslotFromMinutes(minutes)
	}
	return Timeslot{}, ErrInvalidTimeslot
}

func TimeslotFromMinutes(minutes int) (Timeslot, error) {
	for _, ts := range timeslots {
		if ts.minutes == minutes {
			return ts, nil
		}
	}
	return Timeslot{}, ErrInvalidTimeslot
}

func (ts Timeslot) Name() string            { return ts.name }
func (ts Timeslot) Minutes() int            { return ts.minutes }
func (ts Timeslot) CostCents() int64        { return ts.costCents }
func (ts Timeslot) Duration() time.Duration { return time.Duration(ts.minutes) * time.Minute }
func (ts Timeslot) IsZero() bool            { return ts.minutes == 0 }

// PaymentSnapshot records what was charged; the method reference is stored masked.
type PaymentSnapshot struct {
	amountCents int64
	currency    string
	methodRef   string
}

func NewPaymentSnapshot(amountCents int64, currency, methodRef string) (PaymentSnapshot, error) {
	if amountCents <= 0 || strings.TrimSpace(currency) == "" {
		return PaymentSnapshot{}, ErrInvalidPayment
	}
	return PaymentSnapshot{
		amountCents: amountCents,
		currency:    strings.ToLower(currency),
		methodRef:   MaskMethodRef(methodRef),
	}, nil
}

// ReconstructPaymentSnapshot trusts an already-masked stored reference.
func ReconstructPaymentSnapshot(amountCents int64, currency, maskedMethodRef string) PaymentSnapshot {
	return PaymentSnapshot{amountCents: amountCents, currency: currency, methodRef: maskedMethodRef}
}

// MaskMethodRef keeps the type prefix and the last four characters: pm_****1234.
func MaskMethodRef(ref string) string {
	if ref == "" {
		return ""
	}
	prefix := ""
	body := ref
	if i := strings.Index(ref, "_"); i >= 0 {
		prefix, body = ref[:i+1], ref[i+1:]
	}
	if len(body) <= 4 {
		return prefix + strings.Repeat("*", len(body))
	}
	return prefix + "****" + body[len(body)-4:]
}

func (p PaymentSnapshot) AmountCents() int64 { return p.amountCents }
func (p PaymentSnapshot) Currency() string   { return p.currency }
func (p PaymentSnapshot) MethodRef() string  { return p.methodRef }
