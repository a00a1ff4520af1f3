package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"grillbox/internal/pkg/clock"
	"grillbox/internal/pkg/errs"

	"github.com/google/uuid"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

type commandMessage struct {
	CommandID string    `json:"command_id"`
	Command   string    `json:"command"`
	SentAt    time.Time `json:"sent_at"`
}

// CommandChannel delivers unlock commands. Delivery is at-least-once; the
// command id lets a device drop a duplicate.
type CommandChannel struct {
	publisher     Publisher
	topics        Topics
	unlockCommand string
	clock         clock.Clock
	logger        *slog.Logger
}

func NewCommandChannel(publisher Publisher, topics Topics, unlockCommand string, clk clock.Clock, logger *slog.Logger) *CommandChannel {
	return &CommandChannel{
		publisher:     publisher,
		topics:        topics,
		unlockCommand: unlockCommand,
		clock:         clk,
		logger:        logger,
	}
}

func (c *CommandChannel) SendUnlock(ctx context.Context, externalDeviceID string) error {
	if externalDeviceID == "" {
		return errs.Mark(ErrInvalidTopic, errs.ErrDomainValidation)
	}

	msg := commandMessage{
		CommandID: uuid.NewString(),
		Command:   c.unlockCommand,
		SentAt:    c.clock.Now().UTC(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "failed to encode unlock command")
	}

	topic := c.topics.DeviceCommand(externalDeviceID)
	if err := c.publisher.Publish(ctx, topic, payload); err != nil {
		return errs.Wrapf(err, "failed to publish unlock to %s", topic)
	}

	c.logger.Info("Unlock command sent",
		slog.String("device", externalDeviceID),
		slog.String("command_id", msg.CommandID))
	return nil
}
