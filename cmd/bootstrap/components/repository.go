package components

import (
	"grillbox/internal/infra/alert"
	"grillbox/internal/infra/readstore"
	"grillbox/internal/infra/repository"
	sqlc "grillbox/internal/infra/sqlc/generated"
	"grillbox/internal/usecase/commands"
	"grillbox/internal/usecase/queries"
	"grillbox/internal/usecase/saga"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	baseOption,
	readstoreModule,
	writeModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("repository/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingReadQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Device
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.DeviceReadQueries)),
		),
		fx.Annotate(
			readstore.NewDeviceReadStore,
			fx.As(new(queries.DeviceReadStore)),
		),
	),
)

var writeModule = fx.Module("repository/write",
	fx.Provide(
		// Device: the saga owns blocked, the device owns the rest
		fx.Annotate(
			repository.NewDeviceRepository,
			fx.As(new(saga.DeviceRegistry)),
			fx.As(new(saga.DeviceReader)),
			fx.As(new(commands.DeviceStateWriter)),
		),
		// Booking
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(saga.BookingStore)),
		),
		// User
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(saga.UserDirectory)),
			fx.As(new(commands.CardOwnerDirectory)),
		),
		// Alert log
		fx.Annotate(
			repository.NewAlertRepository,
			fx.As(new(alert.Store)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
