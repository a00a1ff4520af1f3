package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"grillbox/internal/domain/booking"
	"grillbox/internal/infra"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
	"grillbox/internal/usecase/queries"
)

type BookingReadQueries interface {
	GetBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListBookingsByUserPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserPageParams) ([]sqlc.Bookings, error)
	ListBookingsByDevice(ctx context.Context, db sqlc.DBTX, deviceID uuid.UUID) ([]sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, infra.NotFoundOr("failed to find booking by ID", err)
	}
	return toBookingView(row), nil
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUserPage(ctx, r.db, sqlc.ListBookingsByUserPageParams{
		UserID:    userID,
		PageLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	return toBookingViews(rows), nil
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUserPage(ctx, r.db, sqlc.ListBookingsByUserPageParams{
		UserID:           userID,
		AfterRequestedAt: pgconv.TimeToPgtype(lastRequestedAt),
		AfterID:          lastID,
		PageLimit:        limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	return toBookingViews(rows), nil
}

func (r *BookingReadStore) FindByDevice(ctx context.Context, deviceID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByDevice(ctx, r.db, deviceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by device", err)
	}
	return toBookingViews(rows), nil
}

func toBookingView(row sqlc.Bookings) *queries.BookingView {
	return &queries.BookingView{
		ID:               row.ID,
		PaymentRef:       row.PaymentRef,
		DeviceID:         row.DeviceID,
		UserID:           row.UserID,
		Status:           row.Status,
		RequestedAt:      pgconv.TimeFromPgtype(row.RequestedAt),
		SessionStart:     pgconv.TimePtrFromPgtype(row.SessionStart),
		Timeslot:         row.Timeslot,
		TimeslotMinutes:  row.TimeslotMinutes,
		AmountCents:      row.AmountCents,
		Currency:         row.Currency,
		PaymentMethodRef: booking.MaskMethodRef(row.PaymentMethodRef),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toBookingViews(rows []sqlc.Bookings) []*queries.BookingView {
	views := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toBookingView(row))
	}
	return views
}
