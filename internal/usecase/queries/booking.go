package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grillbox/internal/infra"
	"grillbox/internal/pkg/errs"
)

var ErrBookingNotFound = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
	FindByDevice(ctx context.Context, deviceID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetForUser hides bookings of other users behind ErrBookingNotFound.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListByDevice(ctx context.Context, deviceID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	devices  DeviceReadStore
}

func NewBookingQueries(bookings BookingReadStore, devices DeviceReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, devices: devices}
}

func (q *bookingQueriesImpl) GetForUser(ctx context.Context, id, userID uuid.UUID) (*BookingView, error) {
	b, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*BookingView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.bookings.FindByUserFirstPage(ctx, userID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	} else {
		lastRequestedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.bookings.FindByUserKeyset(ctx, userID, lastRequestedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.RequestedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *bookingQueriesImpl) ListByDevice(ctx context.Context, deviceID uuid.UUID) ([]*BookingView, error) {
	if _, err := q.devices.FindByID(ctx, deviceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return q.bookings.FindByDevice(ctx, deviceID)
}
