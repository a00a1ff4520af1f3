package components

import (
	"context"
	"log/slog"

	"grillbox/internal/infra/alert"
	"grillbox/internal/infra/metrics"
	"grillbox/internal/infra/mqtt"
	"grillbox/internal/infra/payment"
	"grillbox/internal/infra/telemetry"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/config"
	"grillbox/internal/pkg/retry"
	"grillbox/internal/usecase"
	"grillbox/internal/usecase/commands"
	"grillbox/internal/usecase/queries"
	"grillbox/internal/usecase/saga"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseSagaModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		alert.NewAlerter,
		fx.As(new(saga.Alerter)),
	),
	NewPaymentGateway,
	fx.Annotate(
		NewCommandChannel,
		fx.As(new(saga.DeviceCommandChannel)),
	),
	NewTelemetryRecorder,
)

var usecaseSagaModule = fx.Module("usecase/saga",
	fx.Provide(
		NewCoordinatorConfig,
		NewReconcilerConfig,
		saga.NewCoordinator,
		fx.Annotate(
			saga.NewWatcher,
			fx.As(new(saga.UnlockConfirmer)),
		),
		saga.NewReconciler,
		NewSessionReleaser,
		NewBookingSaga,
		NewPaymentEventHandler,
	),
	fx.Invoke(
		drainCompensationsOnStop,
		runSessionReleaser,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewDeviceQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDeviceStateUseCase,
		commands.NewCardUseCase,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPaymentGateway(g *payment.StripeGateway) saga.PaymentGateway {
	return g
}

func NewTelemetryRecorder(sink telemetry.Sink) commands.TelemetryRecorder {
	return sink
}

// NewBookingSaga is the coordinator as seen by the HTTP layer, with metrics.
func NewBookingSaga(c *saga.Coordinator, m *metrics.Metrics) saga.BookingSaga {
	return metrics.NewInstrumentedBookingSaga(c, m)
}

func NewPaymentEventHandler(r *saga.Reconciler, m *metrics.Metrics) saga.PaymentEventHandler {
	return metrics.NewInstrumentedPaymentEventHandler(r, m)
}

func NewCoordinatorConfig(cfg config.Config) saga.CoordinatorConfig {
	return saga.CoordinatorConfig{
		PaymentTimeout:       cfg.Saga.PaymentTimeout,
		StoreWriteAttempts:   cfg.Saga.StoreWriteAttempts,
		CompensationAttempts: cfg.Saga.CompensationAttempts,
		RetryBaseDelay:       cfg.Saga.RetryBaseDelay,
		CompensationTimeout:  cfg.Saga.CompensationTimeout,
		Currency:             cfg.Saga.Currency,
	}
}

func NewReconcilerConfig(cfg config.Config) saga.ReconcilerConfig {
	return saga.ReconcilerConfig{
		Unlock: saga.UnlockPolicy{
			MaxAttempts: cfg.Saga.UnlockMaxAttempts,
			Interval:    cfg.Saga.UnlockInterval,
		},
		ReleaseAttempts: cfg.Saga.CompensationAttempts,
		RetryBaseDelay:  cfg.Saga.RetryBaseDelay,
	}
}

func NewCommandChannel(client *mqtt.Client, topics mqtt.Topics, cfg config.Config, clk clock.Clock, logger *slog.Logger) *mqtt.CommandChannel {
	return mqtt.NewCommandChannel(client, topics, cfg.MQTT.UnlockPayload, clk, logger)
}

func NewSessionReleaser(devices saga.DeviceRegistry, bookings saga.BookingStore, clk clock.Clock, logger *slog.Logger, cfg config.Config) *saga.SessionReleaser {
	return saga.NewSessionReleaser(devices, bookings, clk, logger, retry.Policy{
		Attempts:  cfg.Saga.CompensationAttempts,
		BaseDelay: cfg.Saga.RetryBaseDelay,
	})
}

// drainCompensationsOnStop keeps shutdown from abandoning a half-released device.
func drainCompensationsOnStop(lc fx.Lifecycle, coordinator *saga.Coordinator, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			done := make(chan struct{})
			go func() {
				coordinator.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				logger.Warn("Shutdown deadline reached with compensations still running")
				return ctx.Err()
			}
		},
	})
}

func runSessionReleaser(lc fx.Lifecycle, releaser *saga.SessionReleaser, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				releaser.Run(ctx, cfg.Saga.ReleaseInterval)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
