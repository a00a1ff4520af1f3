package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"grillbox/internal/domain/device"
	"grillbox/internal/infra/metrics"
	"grillbox/internal/infra/mqtt"
	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"
	"grillbox/internal/usecase/commands"
)

const stateReportTimeout = 5 * time.Second

// stateMessage is the JSON a device publishes on its state topic.
type stateMessage struct {
	Locked        *bool      `json:"locked"`
	Closed        *bool      `json:"closed"`
	WifiSignal    *int32     `json:"wifi_signal"`
	Plate1Temp    *float64   `json:"plate1_temp"`
	Plate2Temp    *float64   `json:"plate2_temp"`
	Plate1SetTemp *float64   `json:"plate1_set_temp"`
	Plate2SetTemp *float64   `json:"plate2_set_temp"`
	PublishedAt   *time.Time `json:"published_at"`
}

type DeviceStateConsumer struct {
	topics   mqtt.Topics
	commands commands.DeviceStateCommands
	metrics  *metrics.Metrics
	clock    clock.Clock
	logger   *slog.Logger
}

func NewDeviceStateConsumer(
	topics mqtt.Topics,
	cmds commands.DeviceStateCommands,
	m *metrics.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) *DeviceStateConsumer {
	return &DeviceStateConsumer{topics: topics, commands: cmds, metrics: m, clock: clk, logger: logger}
}

// Handle is an mqtt.MessageHandler. Errors are logged by the client; MQTT
// has no redelivery to ask for, the next report supersedes this one.
func (c *DeviceStateConsumer) Handle(topic string, payload []byte) error {
	externalID, ok := c.topics.ParseDeviceState(topic)
	if !ok {
		c.count("invalid")
		return errs.Wrapf(mqtt.ErrInvalidTopic, "topic %q", topic)
	}

	var msg stateMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.count("invalid")
		return errs.Wrapf(err, "device %s sent malformed state", externalID)
	}

	report := device.StateReport{
		Locked: msg.Locked,
		Closed: msg.Closed,
		Telemetry: device.Telemetry{
			WifiSignal:    msg.WifiSignal,
			Plate1Temp:    msg.Plate1Temp,
			Plate2Temp:    msg.Plate2Temp,
			Plate1SetTemp: msg.Plate1SetTemp,
			Plate2SetTemp: msg.Plate2SetTemp,
		},
		PublishedAt: c.clock.Now(),
	}
	if msg.PublishedAt != nil && !msg.PublishedAt.IsZero() {
		report.PublishedAt = *msg.PublishedAt
	}

	ctx, cancel := context.WithTimeout(context.Background(), stateReportTimeout)
	defer cancel()

	result, err := c.commands.ApplyStateReport(ctx, externalID, report)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrUnknownDevice):
			c.count("unknown_device")
		case errs.Is(err, errs.ErrDomainValidation):
			c.count("invalid")
		default:
			c.count("error")
		}
		return err
	}
	c.count(string(result))

	c.logger.Debug("Device state applied",
		slog.String("external_id", externalID),
		slog.String("result", string(result)))
	return nil
}

func (c *DeviceStateConsumer) count(result string) {
	c.metrics.DeviceStateReports.WithLabelValues(result).Inc()
}
