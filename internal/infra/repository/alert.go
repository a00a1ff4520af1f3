package repository

import (
	"context"

	"grillbox/internal/infra"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/pkg/pgconv"
	"grillbox/internal/usecase/saga"

	"github.com/google/uuid"
)

type AlertQueries interface {
	CreateSagaAlert(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSagaAlertParams) (uuid.UUID, error)
}

type AlertRepository struct {
	queries AlertQueries
	db      sqlc.DBTX
}

func NewAlertRepository(queries *sqlc.Queries, db sqlc.DBTX) *AlertRepository {
	return &AlertRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AlertRepository) Create(ctx context.Context, alert saga.Alert) (uuid.UUID, error) {
	params := sqlc.CreateSagaAlertParams{
		Kind:       string(alert.Kind),
		DeviceID:   pgconv.UUIDToPgtype(alert.DeviceID),
		BookingID:  pgconv.UUIDToPgtype(alert.BookingID),
		PaymentRef: alert.PaymentRef,
		Message:    alert.Message,
	}
	if alert.Err != nil {
		params.Error = alert.Err.Error()
	}

	id, err := r.queries.CreateSagaAlert(ctx, r.db, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to record saga alert", err)
	}
	return id, nil
}
