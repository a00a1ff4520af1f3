package bootstrap

import (
	"context"
	"log/slog"

	"grillbox/internal/infra/telemetry"
	"grillbox/internal/pkg/config"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Provide(
		NewTelemetrySink,
	),
)

func NewTelemetrySink(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (telemetry.Sink, error) {
	sink, err := telemetry.NewSink(cfg.Influx, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sink.Close()
			return nil
		},
	})
	return sink, nil
}
