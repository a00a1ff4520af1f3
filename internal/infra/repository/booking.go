package repository

import (
	"context"
	"time"

	"grillbox/internal/domain/booking"
	"grillbox/internal/infra"
	"grillbox/internal/infra/repository/converter"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingQueries interface {
	InsertBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertBookingParams) (sqlc.Bookings, error)
	GetBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByPaymentRef(ctx context.Context, db sqlc.DBTX, paymentRef string) (sqlc.Bookings, error)
	ListBookingsByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.Bookings, error)
	ListBookingsByDevice(ctx context.Context, db sqlc.DBTX, deviceID uuid.UUID) ([]sqlc.Bookings, error)
	ListReservationHolders(ctx context.Context, db sqlc.DBTX) ([]sqlc.ListReservationHoldersRow, error)
	ConditionalSetBookingStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.ConditionalSetBookingStatusParams) (sqlc.Bookings, error)
	BookingExists(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (bool, error)
	SetBookingSessionStart(ctx context.Context, db sqlc.DBTX, arg sqlc.SetBookingSessionStartParams) (int64, error)
}

type BookingRepository struct {
	queries BookingQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries *sqlc.Queries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

// Save inserts the booking or, when a row with the same id already exists,
// returns that row. A different booking holding the payment reference is a
// DUPLICATE_KEY error.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) (*booking.Booking, error) {
	row, err := r.queries.InsertBooking(ctx, r.db, converter.BookingToInfra(b))
	if err == nil {
		return r.toDomain(row)
	}
	if !infra.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	existing, err := r.queries.GetBooking(ctx, r.db, b.ID())
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment reference already booked", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to read existing booking", err)
	}
	return r.toDomain(existing)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBooking(ctx, r.db, id)
	if err != nil {
		return nil, infra.NotFoundOr("failed to get booking", err)
	}
	return r.toDomain(row)
}

func (r *BookingRepository) FindByPaymentRef(ctx context.Context, paymentRef string) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByPaymentRef(ctx, r.db, paymentRef)
	if err != nil {
		return nil, infra.NotFoundOr("failed to get booking by payment reference", err)
	}
	return r.toDomain(row)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user bookings", err)
	}
	return r.toDomainList(rows)
}

func (r *BookingRepository) ListByDevice(ctx context.Context, deviceID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.queries.ListBookingsByDevice(ctx, r.db, deviceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list device bookings", err)
	}
	return r.toDomainList(rows)
}

// ReservationHolders returns the bookings that own a device reservation.
func (r *BookingRepository) ReservationHolders(ctx context.Context) ([]*booking.Booking, error) {
	rows, err := r.queries.ListReservationHolders(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation holders", err)
	}
	bookings := make([]sqlc.Bookings, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, sqlc.Bookings(row))
	}
	return r.toDomainList(bookings)
}

// ConditionalSetStatus is a single UPDATE ... WHERE status = expected; it is the
// idempotency boundary for payment events.
func (r *BookingRepository) ConditionalSetStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status) (*booking.Booking, error) {
	row, err := r.queries.ConditionalSetBookingStatus(ctx, r.db, sqlc.ConditionalSetBookingStatusParams{
		Next:     next.String(),
		ID:       id,
		Expected: expected.String(),
	})
	if err == nil {
		return r.toDomain(row)
	}
	if !infra.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to set booking status", err)
	}

	exists, existsErr := r.queries.BookingExists(ctx, r.db, id)
	if existsErr != nil {
		return nil, infra.WrapRepoErr("failed to check booking existence", existsErr)
	}
	if !exists {
		return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("booking status changed concurrently", err, infra.KindConflict)
}

func (r *BookingRepository) SetSessionStart(ctx context.Context, id uuid.UUID, at time.Time) error {
	affected, err := r.queries.SetBookingSessionStart(ctx, r.db, sqlc.SetBookingSessionStartParams{
		ID:           id,
		SessionStart: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to set session start", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) toDomain(row sqlc.Bookings) (*booking.Booking, error) {
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "corrupt booking row"), errs.ErrDatabaseOperationFailed)
	}
	return b, nil
}

func (r *BookingRepository) toDomainList(rows []sqlc.Bookings) ([]*booking.Booking, error) {
	out, err := converter.BookingsToDomain(rows)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "corrupt booking row"), errs.ErrDatabaseOperationFailed)
	}
	return out, nil
}
