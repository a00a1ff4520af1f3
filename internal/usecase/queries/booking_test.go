//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grillbox/internal/infra"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/queries"
	"grillbox/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingReadStore struct {
	mock.Mock
}

func (m *MockBookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	args := m.Called(ctx, userID, limit)
	v, _ := args.Get(0).([]*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastRequestedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	args := m.Called(ctx, userID, lastRequestedAt, lastID, limit)
	v, _ := args.Get(0).([]*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByDevice(ctx context.Context, deviceID uuid.UUID) ([]*queries.BookingView, error) {
	args := m.Called(ctx, deviceID)
	v, _ := args.Get(0).([]*queries.BookingView)
	return v, args.Error(1)
}

type MockDeviceReadStore struct {
	mock.Mock
}

func (m *MockDeviceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DeviceView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.DeviceView)
	return v, args.Error(1)
}

func (m *MockDeviceReadStore) List(ctx context.Context) ([]*queries.DeviceView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*queries.DeviceView)
	return v, args.Error(1)
}

var errNotFound = infra.WrapRepoErr("no rows", nil, infra.KindNotFound)

func TestGetForUser(t *testing.T) {
	owner := uuid.New()
	view := builder.NewBookingBuilder().WithUserID(owner).BuildView()

	tests := []struct {
		name      string
		caller    uuid.UUID
		storeView *queries.BookingView
		storeErr  error
		wantErr   error
	}{
		{name: "owner sees booking", caller: owner, storeView: view},
		{name: "other user gets not found", caller: uuid.New(), storeView: view, wantErr: queries.ErrBookingNotFound},
		{name: "missing row", caller: owner, storeErr: errNotFound, wantErr: queries.ErrBookingNotFound},
		{name: "db failure passes through", caller: owner, storeErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockBookingReadStore)
			store.On("FindByID", mock.Anything, view.ID).Return(tt.storeView, tt.storeErr)
			q := queries.NewBookingQueries(store, new(MockDeviceReadStore))

			got, err := q.GetForUser(context.Background(), view.ID, tt.caller)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errs.Is(err, errs.ErrNotFound))
				assert.Nil(t, got)
			case tt.storeErr != nil:
				require.Error(t, err)
				assert.False(t, errs.Is(err, errs.ErrNotFound))
			default:
				require.NoError(t, err)
				assert.Equal(t, view, got)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestListByUser(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	views := make([]*queries.BookingView, 0, 3)
	for i := range 3 {
		views = append(views, builder.NewBookingBuilder().
			WithUserID(userID).
			WithRequestedAt(base.Add(-time.Duration(i)*time.Hour)).
			BuildView())
	}

	t.Run("first page with more rows returns a cursor", func(t *testing.T) {
		store := new(MockBookingReadStore)
		store.On("FindByUserFirstPage", mock.Anything, userID, int32(3)).Return(views, nil)
		q := queries.NewBookingQueries(store, new(MockDeviceReadStore))

		got, next, err := q.ListByUser(context.Background(), userID, nil, 2)
		require.NoError(t, err)
		assert.Equal(t, views[:2], got)
		require.NotNil(t, next)

		at, id, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.True(t, at.Equal(views[1].RequestedAt))
		assert.Equal(t, views[1].ID, id)
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		store := new(MockBookingReadStore)
		after := queries.EncodeAfterCursor(views[0].RequestedAt, views[0].ID)
		store.On("FindByUserKeyset", mock.Anything, userID, mock.MatchedBy(func(at time.Time) bool {
			return at.Equal(views[0].RequestedAt)
		}), views[0].ID, int32(queries.DefaultListLimit+1)).Return(views[1:], nil)
		q := queries.NewBookingQueries(store, new(MockDeviceReadStore))

		got, next, err := q.ListByUser(context.Background(), userID, &queries.Cursor{After: after}, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Nil(t, next)
		store.AssertExpectations(t)
	})

	t.Run("garbage cursor is a validation error", func(t *testing.T) {
		q := queries.NewBookingQueries(new(MockBookingReadStore), new(MockDeviceReadStore))

		_, _, err := q.ListByUser(context.Background(), userID, &queries.Cursor{After: "nope"}, 10)
		require.ErrorIs(t, err, queries.ErrInvalidCursor)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestListByDevice(t *testing.T) {
	deviceID := uuid.New()

	t.Run("unknown device", func(t *testing.T) {
		devices := new(MockDeviceReadStore)
		devices.On("FindByID", mock.Anything, deviceID).Return(nil, errNotFound)
		bookings := new(MockBookingReadStore)
		q := queries.NewBookingQueries(bookings, devices)

		_, err := q.ListByDevice(context.Background(), deviceID)
		require.ErrorIs(t, err, queries.ErrDeviceNotFound)
		bookings.AssertNotCalled(t, "FindByDevice", mock.Anything, mock.Anything)
	})

	t.Run("bookings of the device", func(t *testing.T) {
		devices := new(MockDeviceReadStore)
		devices.On("FindByID", mock.Anything, deviceID).Return(builder.NewDeviceBuilder().WithID(deviceID).BuildView(), nil)
		bookings := new(MockBookingReadStore)
		want := []*queries.BookingView{builder.NewBookingBuilder().WithDeviceID(deviceID).BuildView()}
		bookings.On("FindByDevice", mock.Anything, deviceID).Return(want, nil)
		q := queries.NewBookingQueries(bookings, devices)

		got, err := q.ListByDevice(context.Background(), deviceID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestDeviceQueries(t *testing.T) {
	id := uuid.New()
	store := new(MockDeviceReadStore)
	store.On("FindByID", mock.Anything, id).Return(nil, errNotFound)
	q := queries.NewDeviceQueries(store)

	_, err := q.GetByID(context.Background(), id)
	require.ErrorIs(t, err, queries.ErrDeviceNotFound)
}
