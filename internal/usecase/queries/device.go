package queries

import (
	"context"

	"github.com/google/uuid"

	"grillbox/internal/infra"
	"grillbox/internal/pkg/errs"
)

var ErrDeviceNotFound = errs.Mark(errs.New("device not found"), errs.ErrNotFound)

type DeviceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeviceView, error)
	List(ctx context.Context) ([]*DeviceView, error)
}

type DeviceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DeviceView, error)
	List(ctx context.Context) ([]*DeviceView, error)
}

type deviceQueriesImpl struct {
	readStore DeviceReadStore
}

func NewDeviceQueries(readStore DeviceReadStore) DeviceQueries {
	return &deviceQueriesImpl{readStore: readStore}
}

func (q *deviceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DeviceView, error) {
	d, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return d, nil
}

func (q *deviceQueriesImpl) List(ctx context.Context) ([]*DeviceView, error) {
	return q.readStore.List(ctx)
}
