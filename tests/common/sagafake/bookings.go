//go:build unit || e2e

package sagafake

import (
	"context"
	"sort"
	"sync"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
)

type Bookings struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	devices  *Devices

	SaveErrs      []error
	SetStatusErrs []error
	SaveCalls     int
	// Transitions counts conditional status writes that changed a row.
	Transitions int
}

// NewBookings takes the device fake so ReservationHolders can see reservations.
func NewBookings(devices *Devices, bookings ...*booking.Booking) *Bookings {
	f := &Bookings{
		bookings: make(map[uuid.UUID]*booking.Booking),
		devices:  devices,
	}
	for _, b := range bookings {
		f.bookings[b.ID()] = b
	}
	return f
}

func (f *Bookings) Save(_ context.Context, b *booking.Booking) (*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveCalls++
	if err := pop(&f.SaveErrs); err != nil {
		return nil, err
	}
	if existing, ok := f.bookings[b.ID()]; ok {
		return existing, nil
	}
	f.bookings[b.ID()] = b
	return b, nil
}

func (f *Bookings) FindByPaymentRef(_ context.Context, paymentRef string) (*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.PaymentRef() == paymentRef {
			return b, nil
		}
	}
	return nil, errs.Mark(errs.Newf("payment ref %s", paymentRef), errs.ErrNotFound)
}

func (f *Bookings) ConditionalSetStatus(_ context.Context, id uuid.UUID, expected, next booking.Status) (*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := pop(&f.SetStatusErrs); err != nil {
		return nil, err
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, errs.Mark(errs.Newf("booking %s", id), errs.ErrNotFound)
	}
	if b.Status() != expected {
		return nil, errs.Mark(errs.Newf("booking %s is %s", id, b.Status()), errs.ErrConflict)
	}
	updated := rebuild(b, next, b.SessionStart())
	f.bookings[id] = updated
	f.Transitions++
	return updated, nil
}

func (f *Bookings) SetSessionStart(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return errs.Mark(errs.Newf("booking %s", id), errs.ErrNotFound)
	}
	f.bookings[id] = rebuild(b, b.Status(), &at)
	return nil
}

func (f *Bookings) ReservationHolders(_ context.Context) ([]*booking.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*booking.Booking
	for _, b := range f.bookings {
		d := f.devices.Snapshot(b.DeviceID())
		if d != nil && d.IsReservedBy(b.ID()) {
			out = append(out, b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (f *Bookings) Get(id uuid.UUID) *booking.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[id]
}

func (f *Bookings) All() []*booking.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*booking.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	sortNewestFirst(out)
	return out
}

func rebuild(b *booking.Booking, status booking.Status, sessionStart *time.Time) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(),
		b.PaymentRef(),
		b.DeviceID(),
		b.UserID(),
		status,
		b.RequestedAt(),
		sessionStart,
		b.Timeslot(),
		b.Payment(),
	)
}

func sortNewestFirst(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		return bs[i].RequestedAt().After(bs[j].RequestedAt())
	})
}
