package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"grillbox/internal/domain/device"
	"grillbox/internal/pkg/config"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const (
	measurementDeviceState = "device_state"
	defaultConnectTimeout  = 10 * time.Second
	flushIntervalMs        = 5000
	batchSize              = 100
)

var ErrConnectionFailed = errors.New("influxdb connection failed")

// Sink records device telemetry history. Record never blocks on the network.
type Sink interface {
	Record(ctx context.Context, d *device.Device)
	Close()
}

type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	logger   *slog.Logger
}

func NewSink(cfg config.InfluxConfig, logger *slog.Logger) (Sink, error) {
	if !cfg.Enabled() {
		logger.Info("Telemetry history disabled")
		return NopSink{}, nil
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(batchSize).
			SetFlushInterval(flushIntervalMs),
	)

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	return newInfluxSink(client, client.WriteAPI(cfg.Org, cfg.Bucket), logger), nil
}

func newInfluxSink(client influxdb2.Client, writeAPI api.WriteAPI, logger *slog.Logger) *InfluxSink {
	s := &InfluxSink{client: client, writeAPI: writeAPI, logger: logger}
	go s.handleWriteErrors(writeAPI.Errors())
	return s
}

func (s *InfluxSink) handleWriteErrors(errorsCh <-chan error) {
	for err := range errorsCh {
		s.logger.Warn("Telemetry write failed", slog.String("error", err.Error()))
	}
}

func (s *InfluxSink) Record(_ context.Context, d *device.Device) {
	s.writeAPI.WritePoint(DevicePoint(d))
}

func (s *InfluxSink) Close() {
	s.writeAPI.Flush()
	s.client.Close()
}

// DevicePoint maps a device state to one point; unreported telemetry is omitted.
func DevicePoint(d *device.Device) *write.Point {
	flags := d.Flags()
	t := d.Telemetry()

	fields := map[string]interface{}{
		"locked":  flags.Locked,
		"closed":  flags.Closed,
		"blocked": flags.Blocked,
	}
	if t.WifiSignal != nil {
		fields["wifi_signal"] = int64(*t.WifiSignal)
	}
	if t.Plate1Temp != nil {
		fields["plate1_temp"] = *t.Plate1Temp
	}
	if t.Plate2Temp != nil {
		fields["plate2_temp"] = *t.Plate2Temp
	}
	if t.Plate1SetTemp != nil {
		fields["plate1_set_temp"] = *t.Plate1SetTemp
	}
	if t.Plate2SetTemp != nil {
		fields["plate2_set_temp"] = *t.Plate2SetTemp
	}

	ts := d.PublishTime()
	if ts.IsZero() {
		ts = time.Now()
	}
	return write.NewPoint(
		measurementDeviceState,
		map[string]string{
			"device_id":   d.ID().String(),
			"external_id": d.ExternalID(),
			"number":      d.Number(),
		},
		fields,
		ts,
	)
}

type NopSink struct{}

func (NopSink) Record(context.Context, *device.Device) {}
func (NopSink) Close()                                 {}
